package repository

import (
	"context"
	"errors"
	"time"

	"topspot/internal/domain"
	"topspot/internal/domain/entities"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/shopspring/decimal"
)

// maxTransactItems is the DynamoDB limit for one TransactWriteItems call.
const maxTransactItems = 100

var (
	errVersionConflict = domain.New(domain.KindConflict, "SERVICE_VERSION_CONFLICT", "service was modified concurrently")
	errStateConflict   = domain.New(domain.KindConflict, "QUOTE_STATE_CONFLICT", "quote state changed concurrently")
	errPaymentConflict = domain.New(domain.KindConflict, "PAYMENT_STATE_CONFLICT", "payment state changed concurrently")
	errEmailTaken      = domain.New(domain.KindConflict, "EMAIL_ALREADY_REGISTERED", "email already registered")
	errDuplicateID     = domain.New(domain.KindConflict, "DUPLICATE_ID", "record already exists")
	errTooManyWrites   = domain.New(domain.KindInvalidInput, "TOO_MANY_QUOTES", "too many quotes to update in one change")
)

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, _ := time.Parse(time.RFC3339Nano, s)
	return t
}

// Amounts are stored as decimal strings so no precision is lost.
func parseAmount(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

type availabilityItem struct {
	FromDate string `dynamodbav:"from_date,omitempty"`
	ToDate   string `dynamodbav:"to_date,omitempty"`
	FromTime string `dynamodbav:"from_time,omitempty"`
	ToTime   string `dynamodbav:"to_time,omitempty"`
}

func toAvailabilityItem(a entities.Availability) availabilityItem {
	return availabilityItem{
		FromDate: entities.FormatDate(a.FromDate),
		ToDate:   entities.FormatDate(a.ToDate),
		FromTime: a.FromTime,
		ToTime:   a.ToTime,
	}
}

func fromAvailabilityItem(it availabilityItem) entities.Availability {
	from, _ := entities.ParseDate(it.FromDate)
	to, _ := entities.ParseDate(it.ToDate)
	return entities.Availability{FromDate: from, ToDate: to, FromTime: it.FromTime, ToTime: it.ToTime}
}

func idKey(id string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"id": &types.AttributeValueMemberS{Value: id},
	}
}

func isConditionFailed(err error) bool {
	var cfe *types.ConditionalCheckFailedException
	if errors.As(err, &cfe) {
		return true
	}
	var tce *types.TransactionCanceledException
	return errors.As(err, &tce)
}

func asCanceled(err error) (*types.TransactionCanceledException, bool) {
	var tce *types.TransactionCanceledException
	if errors.As(err, &tce) {
		return tce, true
	}
	return nil, false
}

func reasonFailed(r types.CancellationReason) bool {
	return r.Code != nil && *r.Code == "ConditionalCheckFailed"
}

// translateWrite maps a failed write precondition to conflict.
func translateWrite(err error, conflict error) error {
	if err == nil {
		return nil
	}
	if isConditionFailed(err) {
		return conflict
	}
	return err
}

func getItem[T any](ctx context.Context, ddb *dynamodb.Client, table, id string) (T, bool, error) {
	var it T
	out, err := ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(table),
		Key:            idKey(id),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return it, false, err
	}
	if len(out.Item) == 0 {
		return it, false, nil
	}
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return it, false, err
	}
	return it, true, nil
}

// queryIndex reads every page of a single-key GSI query.
func queryIndex[T any](ctx context.Context, ddb *dynamodb.Client, table, index, attr, value string) ([]T, error) {
	p := dynamodb.NewQueryPaginator(ddb, &dynamodb.QueryInput{
		TableName:              aws.String(table),
		IndexName:              aws.String(index),
		KeyConditionExpression: aws.String("#k = :v"),
		ExpressionAttributeNames: map[string]string{
			"#k": attr,
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":v": &types.AttributeValueMemberS{Value: value},
		},
	})
	items := []T{}
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		var batch []T
		if err := attributevalue.UnmarshalListOfMaps(page.Items, &batch); err != nil {
			return nil, err
		}
		items = append(items, batch...)
	}
	return items, nil
}

func scanAll[T any](ctx context.Context, ddb *dynamodb.Client, in *dynamodb.ScanInput) ([]T, error) {
	p := dynamodb.NewScanPaginator(ddb, in)
	items := []T{}
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		var batch []T
		if err := attributevalue.UnmarshalListOfMaps(page.Items, &batch); err != nil {
			return nil, err
		}
		items = append(items, batch...)
	}
	return items, nil
}

func mergeNames(a, b map[string]string) map[string]string {
	if len(a) == 0 {
		return b
	}
	if len(b) == 0 {
		return a
	}
	out := make(map[string]string, len(a)+len(b))
	for k, v := range a {
		out[k] = v
	}
	for k, v := range b {
		out[k] = v
	}
	return out
}
