package repository

import (
	"context"
	"sort"
	"strconv"

	"topspot/internal/domain/entities"
	"topspot/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

type serviceItem struct {
	ID           string           `dynamodbav:"id"`
	OwnerID      string           `dynamodbav:"owner_id"`
	ContractorID string           `dynamodbav:"contractor_id,omitempty"`
	Name         string           `dynamodbav:"name"`
	Categories   []string         `dynamodbav:"categories,omitempty"`
	Description  string           `dynamodbav:"description"`
	Amount       string           `dynamodbav:"amount"`
	Currency     string           `dynamodbav:"currency"`
	Availability availabilityItem `dynamodbav:"availability"`
	Status       string           `dynamodbav:"status"`
	Paid         bool             `dynamodbav:"paid"`
	Media        []string         `dynamodbav:"media,omitempty"`
	Version      int64            `dynamodbav:"version"`
	CreatedAt    string           `dynamodbav:"created_at"`
	UpdatedAt    string           `dynamodbav:"updated_at"`
}

// ServiceDynamoRepository persists Service entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - GSI owner_id-index: owner_id (string)
//   - GSI contractor_id-index: contractor_id (string), sparse
type ServiceDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.IServiceRepository = (*ServiceDynamoRepository)(nil)

func NewServiceDynamoRepository(ddb *dynamodb.Client, tableName string) *ServiceDynamoRepository {
	return &ServiceDynamoRepository{ddb: ddb, tableName: tableName}
}

func (r *ServiceDynamoRepository) Create(ctx context.Context, s entities.Service) (entities.Service, error) {
	av, err := attributevalue.MarshalMap(toServiceItem(s))
	if err != nil {
		return entities.Service{}, err
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
		return entities.Service{}, translateWrite(err, errDuplicateID)
	}
	return s, nil
}

func (r *ServiceDynamoRepository) GetByID(ctx context.Context, id string) (entities.Service, error) {
	it, ok, err := getItem[serviceItem](ctx, r.ddb, r.tableName, id)
	if err != nil || !ok {
		return entities.Service{}, err
	}
	return fromServiceItem(it), nil
}

func (r *ServiceDynamoRepository) Update(ctx context.Context, s entities.Service, expectedVersion int64) (entities.Service, error) {
	put, err := r.versionedPut(s, expectedVersion)
	if err != nil {
		return entities.Service{}, err
	}
	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:                 put.TableName,
		Item:                      put.Item,
		ConditionExpression:       put.ConditionExpression,
		ExpressionAttributeNames:  put.ExpressionAttributeNames,
		ExpressionAttributeValues: put.ExpressionAttributeValues,
	})
	if err != nil {
		return entities.Service{}, translateWrite(err, errVersionConflict)
	}
	return s, nil
}

// versionedPut replaces the service only while its stored version matches.
func (r *ServiceDynamoRepository) versionedPut(s entities.Service, expectedVersion int64) (*types.Put, error) {
	av, err := attributevalue.MarshalMap(toServiceItem(s))
	if err != nil {
		return nil, err
	}
	return &types.Put{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("#version = :expected"),
		ExpressionAttributeNames: map[string]string{
			"#version": "version",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":expected": &types.AttributeValueMemberN{Value: strconv.FormatInt(expectedVersion, 10)},
		},
	}, nil
}

func (r *ServiceDynamoRepository) ListByOwnerID(ctx context.Context, ownerID string) ([]entities.Service, error) {
	items, err := queryIndex[serviceItem](ctx, r.ddb, r.tableName, "owner_id-index", "owner_id", ownerID)
	if err != nil {
		return nil, err
	}
	return fromServiceItems(items), nil
}

func (r *ServiceDynamoRepository) ListByContractorID(ctx context.Context, contractorID string) ([]entities.Service, error) {
	items, err := queryIndex[serviceItem](ctx, r.ddb, r.tableName, "contractor_id-index", "contractor_id", contractorID)
	if err != nil {
		return nil, err
	}
	return fromServiceItems(items), nil
}

func (r *ServiceDynamoRepository) ListAll(ctx context.Context) ([]entities.Service, error) {
	items, err := scanAll[serviceItem](ctx, r.ddb, &dynamodb.ScanInput{TableName: aws.String(r.tableName)})
	if err != nil {
		return nil, err
	}
	return fromServiceItems(items), nil
}

func fromServiceItems(items []serviceItem) []entities.Service {
	out := make([]entities.Service, 0, len(items))
	for _, it := range items {
		out = append(out, fromServiceItem(it))
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func toServiceItem(s entities.Service) serviceItem {
	return serviceItem{
		ID:           s.ID,
		OwnerID:      s.OwnerID,
		ContractorID: s.ContractorID,
		Name:         s.Name,
		Categories:   s.Categories,
		Description:  s.Description,
		Amount:       s.Amount.String(),
		Currency:     s.Currency,
		Availability: toAvailabilityItem(s.Availability),
		Status:       string(s.Status),
		Paid:         s.Paid,
		Media:        s.Media,
		Version:      s.Version,
		CreatedAt:    formatTime(s.CreatedAt),
		UpdatedAt:    formatTime(s.UpdatedAt),
	}
}

func fromServiceItem(it serviceItem) entities.Service {
	return entities.Service{
		ID:           it.ID,
		OwnerID:      it.OwnerID,
		ContractorID: it.ContractorID,
		Name:         it.Name,
		Categories:   it.Categories,
		Description:  it.Description,
		Amount:       parseAmount(it.Amount),
		Currency:     it.Currency,
		Availability: fromAvailabilityItem(it.Availability),
		Status:       entities.ServiceStatus(it.Status),
		Paid:         it.Paid,
		Media:        it.Media,
		Version:      it.Version,
		CreatedAt:    parseTime(it.CreatedAt),
		UpdatedAt:    parseTime(it.UpdatedAt),
	}
}
