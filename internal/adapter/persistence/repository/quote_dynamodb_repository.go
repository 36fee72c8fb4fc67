package repository

import (
	"context"
	"sort"

	"topspot/internal/domain/entities"
	"topspot/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

type quoteItem struct {
	ID             string           `dynamodbav:"id"`
	ServiceID      string           `dynamodbav:"service_id"`
	AuthorID       string           `dynamodbav:"author_id"`
	AuthorRole     string           `dynamodbav:"author_role"`
	Description    string           `dynamodbav:"description"`
	EstimatedCost  string           `dynamodbav:"estimated_cost"`
	Currency       string           `dynamodbav:"currency"`
	Availability   availabilityItem `dynamodbav:"availability"`
	ApprovalState  string           `dynamodbav:"approval_state"`
	CounterOfferOf string           `dynamodbav:"counter_offer_of,omitempty"`
	DecidedBy      string           `dynamodbav:"decided_by,omitempty"`
	CreatedAt      string           `dynamodbav:"created_at"`
	UpdatedAt      string           `dynamodbav:"updated_at"`
}

// QuoteDynamoRepository persists Quote entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - GSI service_id-index: service_id (string)
//   - GSI author_id-index: author_id (string)
//
// CommitNegotiation also writes to the services table, so both tables must
// live in the same account and region.
type QuoteDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
	services  *ServiceDynamoRepository
}

var _ interfaces.IQuoteRepository = (*QuoteDynamoRepository)(nil)

func NewQuoteDynamoRepository(ddb *dynamodb.Client, tableName, servicesTableName string) *QuoteDynamoRepository {
	return &QuoteDynamoRepository{
		ddb:       ddb,
		tableName: tableName,
		services:  NewServiceDynamoRepository(ddb, servicesTableName),
	}
}

func (r *QuoteDynamoRepository) Create(ctx context.Context, q entities.Quote) (entities.Quote, error) {
	av, err := attributevalue.MarshalMap(toQuoteItem(q))
	if err != nil {
		return entities.Quote{}, err
	}
	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(#id)"),
		ExpressionAttributeNames: map[string]string{
			"#id": "id",
		},
	})
	if err != nil {
		return entities.Quote{}, translateWrite(err, errDuplicateID)
	}
	return q, nil
}

func (r *QuoteDynamoRepository) GetByID(ctx context.Context, id string) (entities.Quote, error) {
	it, ok, err := getItem[quoteItem](ctx, r.ddb, r.tableName, id)
	if err != nil || !ok {
		return entities.Quote{}, err
	}
	return fromQuoteItem(it), nil
}

func (r *QuoteDynamoRepository) ListByServiceID(ctx context.Context, serviceID string) ([]entities.Quote, error) {
	items, err := queryIndex[quoteItem](ctx, r.ddb, r.tableName, "service_id-index", "service_id", serviceID)
	if err != nil {
		return nil, err
	}
	return fromQuoteItems(items), nil
}

func (r *QuoteDynamoRepository) ListByAuthorID(ctx context.Context, authorID string) ([]entities.Quote, error) {
	items, err := queryIndex[quoteItem](ctx, r.ddb, r.tableName, "author_id-index", "author_id", authorID)
	if err != nil {
		return nil, err
	}
	return fromQuoteItems(items), nil
}

func (r *QuoteDynamoRepository) TransitionState(ctx context.Context, t entities.QuoteTransition) (entities.Quote, error) {
	upd := r.transitionUpdate(t)
	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 upd.TableName,
		Key:                       upd.Key,
		ConditionExpression:       upd.ConditionExpression,
		UpdateExpression:          upd.UpdateExpression,
		ExpressionAttributeNames:  upd.ExpressionAttributeNames,
		ExpressionAttributeValues: upd.ExpressionAttributeValues,
		ReturnValues:              types.ReturnValueAllNew,
	})
	if err != nil {
		return entities.Quote{}, translateWrite(err, errStateConflict)
	}
	var it quoteItem
	if err := attributevalue.UnmarshalMap(out.Attributes, &it); err != nil {
		return entities.Quote{}, err
	}
	return fromQuoteItem(it), nil
}

// CommitNegotiation writes the service and every quote transition in one
// transaction. A cancellation is reported as the conflict of whichever
// precondition failed first.
func (r *QuoteDynamoRepository) CommitNegotiation(ctx context.Context, c entities.NegotiationCommit) error {
	if len(c.Transitions)+1 > maxTransactItems {
		return errTooManyWrites
	}
	put, err := r.services.versionedPut(c.Service, c.ExpectedVersion)
	if err != nil {
		return err
	}
	items := make([]types.TransactWriteItem, 0, len(c.Transitions)+1)
	items = append(items, types.TransactWriteItem{Put: put})
	for _, t := range c.Transitions {
		items = append(items, types.TransactWriteItem{Update: r.transitionUpdate(t)})
	}

	_, err = r.ddb.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{TransactItems: items})
	if err == nil {
		return nil
	}
	if tce, ok := asCanceled(err); ok {
		for i, reason := range tce.CancellationReasons {
			if !reasonFailed(reason) {
				continue
			}
			if i == 0 {
				return errVersionConflict
			}
			return errStateConflict
		}
		return errVersionConflict
	}
	return translateWrite(err, errVersionConflict)
}

func (r *QuoteDynamoRepository) transitionUpdate(t entities.QuoteTransition) *types.Update {
	return &types.Update{
		TableName:           aws.String(r.tableName),
		Key:                 idKey(t.QuoteID),
		ConditionExpression: aws.String("attribute_exists(#id) AND #state = :from"),
		UpdateExpression:    aws.String("SET #state = :to, #decided_by = :by, #updated_at = :at"),
		ExpressionAttributeNames: mergeNames(map[string]string{
			"#state":      "approval_state",
			"#decided_by": "decided_by",
			"#updated_at": "updated_at",
		}, map[string]string{"#id": "id"}),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":from": &types.AttributeValueMemberS{Value: string(t.From)},
			":to":   &types.AttributeValueMemberS{Value: string(t.To)},
			":by":   &types.AttributeValueMemberS{Value: t.By},
			":at":   &types.AttributeValueMemberS{Value: formatTime(t.At)},
		},
	}
}

func fromQuoteItems(items []quoteItem) []entities.Quote {
	out := make([]entities.Quote, 0, len(items))
	for _, it := range items {
		out = append(out, fromQuoteItem(it))
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func toQuoteItem(q entities.Quote) quoteItem {
	return quoteItem{
		ID:             q.ID,
		ServiceID:      q.ServiceID,
		AuthorID:       q.AuthorID,
		AuthorRole:     string(q.AuthorRole),
		Description:    q.Description,
		EstimatedCost:  q.EstimatedCost.String(),
		Currency:       q.Currency,
		Availability:   toAvailabilityItem(q.Availability),
		ApprovalState:  string(q.ApprovalState),
		CounterOfferOf: q.CounterOfferOf,
		DecidedBy:      q.DecidedBy,
		CreatedAt:      formatTime(q.CreatedAt),
		UpdatedAt:      formatTime(q.UpdatedAt),
	}
}

func fromQuoteItem(it quoteItem) entities.Quote {
	return entities.Quote{
		ID:             it.ID,
		ServiceID:      it.ServiceID,
		AuthorID:       it.AuthorID,
		AuthorRole:     entities.Role(it.AuthorRole),
		Description:    it.Description,
		EstimatedCost:  parseAmount(it.EstimatedCost),
		Currency:       it.Currency,
		Availability:   fromAvailabilityItem(it.Availability),
		ApprovalState:  entities.ApprovalState(it.ApprovalState),
		CounterOfferOf: it.CounterOfferOf,
		DecidedBy:      it.DecidedBy,
		CreatedAt:      parseTime(it.CreatedAt),
		UpdatedAt:      parseTime(it.UpdatedAt),
	}
}
