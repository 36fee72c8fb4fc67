package repository

import (
	"context"
	"sort"
	"time"

	"topspot/internal/domain/entities"
	"topspot/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

type paymentItem struct {
	ID                string `dynamodbav:"id"`
	UserID            string `dynamodbav:"user_id"`
	ServiceID         string `dynamodbav:"service_id"`
	Amount            string `dynamodbav:"amount"`
	Currency          string `dynamodbav:"currency"`
	PaymentMethod     string `dynamodbav:"payment_method"`
	ExternalPaymentID string `dynamodbav:"external_id,omitempty"`
	CheckoutURL       string `dynamodbav:"checkout_url"`
	Status            string `dynamodbav:"status"`
	ResumeApproval    bool   `dynamodbav:"resume_approval"`
	ApproverID        string `dynamodbav:"approver_id,omitempty"`
	CreatedAt         string `dynamodbav:"created_at"`
	UpdatedAt         string `dynamodbav:"updated_at"`
	SettledAt         string `dynamodbav:"settled_at,omitempty"`
}

// PaymentDynamoRepository persists Payment entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - GSI service_id-index: service_id (string)
//   - GSI external_id-index: external_id (string)
type PaymentDynamoRepository struct {
	ddb               *dynamodb.Client
	tableName         string
	servicesTableName string
}

var _ interfaces.IPaymentRepository = (*PaymentDynamoRepository)(nil)

func NewPaymentDynamoRepository(ddb *dynamodb.Client, tableName, servicesTableName string) *PaymentDynamoRepository {
	return &PaymentDynamoRepository{ddb: ddb, tableName: tableName, servicesTableName: servicesTableName}
}

func (r *PaymentDynamoRepository) Create(ctx context.Context, p entities.Payment) (entities.Payment, error) {
	av, err := attributevalue.MarshalMap(toPaymentItem(p))
	if err != nil {
		return entities.Payment{}, err
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
		return entities.Payment{}, translateWrite(err, errDuplicateID)
	}
	return p, nil
}

func (r *PaymentDynamoRepository) GetByID(ctx context.Context, id string) (entities.Payment, error) {
	it, ok, err := getItem[paymentItem](ctx, r.ddb, r.tableName, id)
	if err != nil || !ok {
		return entities.Payment{}, err
	}
	return fromPaymentItem(it), nil
}

func (r *PaymentDynamoRepository) GetByExternalID(ctx context.Context, externalID string) (entities.Payment, error) {
	items, err := queryIndex[paymentItem](ctx, r.ddb, r.tableName, "external_id-index", "external_id", externalID)
	if err != nil {
		return entities.Payment{}, err
	}
	if len(items) == 0 {
		return entities.Payment{}, nil
	}
	// GSI reads are eventually consistent; return the authoritative record.
	return r.GetByID(ctx, items[0].ID)
}

func (r *PaymentDynamoRepository) ListByServiceID(ctx context.Context, serviceID string) ([]entities.Payment, error) {
	items, err := queryIndex[paymentItem](ctx, r.ddb, r.tableName, "service_id-index", "service_id", serviceID)
	if err != nil {
		return nil, err
	}
	out := make([]entities.Payment, 0, len(items))
	for _, it := range items {
		out = append(out, fromPaymentItem(it))
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *PaymentDynamoRepository) Update(ctx context.Context, p entities.Payment, expected entities.PaymentStatus) (entities.Payment, error) {
	av, err := attributevalue.MarshalMap(toPaymentItem(p))
	if err != nil {
		return entities.Payment{}, err
	}
	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("#status = :expected"),
		ExpressionAttributeNames: map[string]string{
			"#status": "status",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":expected": &types.AttributeValueMemberS{Value: string(expected)},
		},
	})
	if err != nil {
		return entities.Payment{}, translateWrite(err, errPaymentConflict)
	}
	return p, nil
}

// Settle marks the payment and its service paid in one transaction. A
// payment that another caller already settled yields (false, nil).
func (r *PaymentDynamoRepository) Settle(ctx context.Context, paymentID, serviceID string, at time.Time) (bool, error) {
	now := &types.AttributeValueMemberS{Value: formatTime(at)}
	_, err := r.ddb.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{Update: &types.Update{
				TableName:           aws.String(r.tableName),
				Key:                 idKey(paymentID),
				ConditionExpression: aws.String("attribute_exists(#id) AND #status <> :paid"),
				UpdateExpression:    aws.String("SET #status = :paid, #settled_at = :at, #updated_at = :at"),
				ExpressionAttributeNames: map[string]string{
					"#id":         "id",
					"#status":     "status",
					"#settled_at": "settled_at",
					"#updated_at": "updated_at",
				},
				ExpressionAttributeValues: map[string]types.AttributeValue{
					":paid": &types.AttributeValueMemberS{Value: string(entities.PaymentStatusPaid)},
					":at":   now,
				},
			}},
			{Update: &types.Update{
				TableName:           aws.String(r.servicesTableName),
				Key:                 idKey(serviceID),
				ConditionExpression: aws.String("attribute_exists(#id)"),
				UpdateExpression:    aws.String("SET #paid = :true, #updated_at = :at ADD #version :one"),
				ExpressionAttributeNames: map[string]string{
					"#id":         "id",
					"#paid":       "paid",
					"#version":    "version",
					"#updated_at": "updated_at",
				},
				ExpressionAttributeValues: map[string]types.AttributeValue{
					":true": &types.AttributeValueMemberBOOL{Value: true},
					":one":  &types.AttributeValueMemberN{Value: "1"},
					":at":   now,
				},
			}},
		},
	})
	if err == nil {
		return true, nil
	}
	if !isConditionFailed(err) {
		return false, err
	}

	current, getErr := r.GetByID(ctx, paymentID)
	if getErr != nil {
		return false, getErr
	}
	if current.Paid() {
		return false, nil
	}
	return false, errPaymentConflict
}

func toPaymentItem(p entities.Payment) paymentItem {
	return paymentItem{
		ID:                p.ID,
		UserID:            p.UserID,
		ServiceID:         p.ServiceID,
		Amount:            p.Amount.String(),
		Currency:          p.Currency,
		PaymentMethod:     p.PaymentMethod,
		ExternalPaymentID: p.ExternalPaymentID,
		CheckoutURL:       p.CheckoutURL,
		Status:            string(p.Status),
		ResumeApproval:    p.ResumeApproval,
		ApproverID:        p.ApproverID,
		CreatedAt:         formatTime(p.CreatedAt),
		UpdatedAt:         formatTime(p.UpdatedAt),
		SettledAt:         formatTime(p.SettledAt),
	}
}

func fromPaymentItem(it paymentItem) entities.Payment {
	return entities.Payment{
		ID:                it.ID,
		UserID:            it.UserID,
		ServiceID:         it.ServiceID,
		Amount:            parseAmount(it.Amount),
		Currency:          it.Currency,
		PaymentMethod:     it.PaymentMethod,
		ExternalPaymentID: it.ExternalPaymentID,
		CheckoutURL:       it.CheckoutURL,
		Status:            entities.PaymentStatus(it.Status),
		ResumeApproval:    it.ResumeApproval,
		ApproverID:        it.ApproverID,
		CreatedAt:         parseTime(it.CreatedAt),
		UpdatedAt:         parseTime(it.UpdatedAt),
		SettledAt:         parseTime(it.SettledAt),
	}
}
