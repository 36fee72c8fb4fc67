package repository

import (
	"context"
	"sort"
	"strconv"
	"strings"

	"topspot/internal/domain/entities"
	"topspot/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const emailGuardPrefix = "email#"

type userItem struct {
	ID           string `dynamodbav:"id"`
	Email        string `dynamodbav:"email"`
	PasswordHash string `dynamodbav:"password_hash"`

	FirstName   string `dynamodbav:"first_name"`
	LastName    string `dynamodbav:"last_name"`
	Phone       string `dynamodbav:"phone"`
	Address     string `dynamodbav:"address"`
	ServiceArea string `dynamodbav:"service_area"`
	AvatarURL   string `dynamodbav:"avatar_url"`

	Role             string `dynamodbav:"role"`
	Verified         bool   `dynamodbav:"verified"`
	AdminVerified    bool   `dynamodbav:"admin_verified"`
	ContractorStatus string `dynamodbav:"contractor_status,omitempty"`

	LodgeName  string `dynamodbav:"lodge_name,omitempty"`
	RoomNumber string `dynamodbav:"room_number,omitempty"`
	TenantID   string `dynamodbav:"tenant_id,omitempty"`

	Categories        []string `dynamodbav:"categories,omitempty"`
	YearsOfExperience int      `dynamodbav:"years_of_experience,omitempty"`

	VerificationToken     string `dynamodbav:"verification_token,omitempty"`
	VerificationExpiresAt string `dynamodbav:"verification_expires_at,omitempty"`
	ResetToken            string `dynamodbav:"reset_token,omitempty"`
	ResetExpiresAt        string `dynamodbav:"reset_expires_at,omitempty"`
	SessionVersion        int64  `dynamodbav:"session_version"`

	CreatedAt string `dynamodbav:"created_at"`
	UpdatedAt string `dynamodbav:"updated_at"`
}

// UserDynamoRepository persists User entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - GSI email-index: email (string)
//
// Each user is written together with a guard item keyed "email#<email>" so
// two sign-ups with the same address cannot both succeed.
type UserDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.IUserRepository = (*UserDynamoRepository)(nil)

func NewUserDynamoRepository(ddb *dynamodb.Client, tableName string) *UserDynamoRepository {
	return &UserDynamoRepository{ddb: ddb, tableName: tableName}
}

func (r *UserDynamoRepository) Create(ctx context.Context, u entities.User) (entities.User, error) {
	av, err := attributevalue.MarshalMap(toUserItem(u))
	if err != nil {
		return entities.User{}, err
	}
	guard := map[string]types.AttributeValue{
		"id":      &types.AttributeValueMemberS{Value: emailGuardPrefix + strings.ToLower(u.Email)},
		"user_id": &types.AttributeValueMemberS{Value: u.ID},
	}
	notExists := aws.String("attribute_not_exists(#id)")
	names := map[string]string{"#id": "id"}

	_, err = r.ddb.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{Put: &types.Put{
				TableName:                aws.String(r.tableName),
				Item:                     av,
				ConditionExpression:      notExists,
				ExpressionAttributeNames: names,
			}},
			{Put: &types.Put{
				TableName:                aws.String(r.tableName),
				Item:                     guard,
				ConditionExpression:      notExists,
				ExpressionAttributeNames: names,
			}},
		},
	})
	if err != nil {
		if tce, ok := asCanceled(err); ok && len(tce.CancellationReasons) == 2 {
			if reasonFailed(tce.CancellationReasons[1]) {
				return entities.User{}, errEmailTaken
			}
		}
		return entities.User{}, translateWrite(err, errDuplicateID)
	}
	return u, nil
}

func (r *UserDynamoRepository) GetByID(ctx context.Context, id string) (entities.User, error) {
	if strings.HasPrefix(id, emailGuardPrefix) {
		return entities.User{}, nil
	}
	it, ok, err := getItem[userItem](ctx, r.ddb, r.tableName, id)
	if err != nil || !ok {
		return entities.User{}, err
	}
	return fromUserItem(it), nil
}

func (r *UserDynamoRepository) GetByEmail(ctx context.Context, email string) (entities.User, error) {
	items, err := queryIndex[userItem](ctx, r.ddb, r.tableName, "email-index", "email", strings.ToLower(email))
	if err != nil {
		return entities.User{}, err
	}
	for _, it := range items {
		if it.Role != "" {
			return fromUserItem(it), nil
		}
	}
	return entities.User{}, nil
}

// Update replaces the user record. The email is never changed here.
func (r *UserDynamoRepository) Update(ctx context.Context, u entities.User) (entities.User, error) {
	av, err := attributevalue.MarshalMap(toUserItem(u))
	if err != nil {
		return entities.User{}, err
	}
	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_exists(#id)"),
		ExpressionAttributeNames: map[string]string{
			"#id": "id",
		},
	})
	if err != nil {
		if isConditionFailed(err) {
			return entities.User{}, nil
		}
		return entities.User{}, err
	}
	return u, nil
}

func (r *UserDynamoRepository) ListByRoles(ctx context.Context, roles ...entities.Role) ([]entities.User, error) {
	in := &dynamodb.ScanInput{
		TableName:        aws.String(r.tableName),
		FilterExpression: aws.String("attribute_exists(#role)"),
		ExpressionAttributeNames: map[string]string{
			"#role": "role",
		},
	}
	if len(roles) > 0 {
		values := map[string]types.AttributeValue{}
		keys := make([]string, 0, len(roles))
		for i, role := range roles {
			k := ":r" + strconv.Itoa(i)
			keys = append(keys, k)
			values[k] = &types.AttributeValueMemberS{Value: string(role)}
		}
		in.FilterExpression = aws.String("#role IN (" + strings.Join(keys, ", ") + ")")
		in.ExpressionAttributeValues = values
	}

	items, err := scanAll[userItem](ctx, r.ddb, in)
	if err != nil {
		return nil, err
	}
	out := make([]entities.User, 0, len(items))
	for _, it := range items {
		out = append(out, fromUserItem(it))
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func toUserItem(u entities.User) userItem {
	return userItem{
		ID:                    u.ID,
		Email:                 strings.ToLower(u.Email),
		PasswordHash:          u.PasswordHash,
		FirstName:             u.FirstName,
		LastName:              u.LastName,
		Phone:                 u.Phone,
		Address:               u.Address,
		ServiceArea:           u.ServiceArea,
		AvatarURL:             u.AvatarURL,
		Role:                  string(u.Role),
		Verified:              u.Verified,
		AdminVerified:         u.AdminVerified,
		ContractorStatus:      string(u.ContractorStatus),
		LodgeName:             u.LodgeName,
		RoomNumber:            u.RoomNumber,
		TenantID:              u.TenantID,
		Categories:            u.Categories,
		YearsOfExperience:     u.YearsOfExperience,
		VerificationToken:     u.VerificationToken,
		VerificationExpiresAt: formatTime(u.VerificationExpiresAt),
		ResetToken:            u.ResetToken,
		ResetExpiresAt:        formatTime(u.ResetExpiresAt),
		SessionVersion:        u.SessionVersion,
		CreatedAt:             formatTime(u.CreatedAt),
		UpdatedAt:             formatTime(u.UpdatedAt),
	}
}

func fromUserItem(it userItem) entities.User {
	return entities.User{
		ID:                    it.ID,
		Email:                 it.Email,
		PasswordHash:          it.PasswordHash,
		FirstName:             it.FirstName,
		LastName:              it.LastName,
		Phone:                 it.Phone,
		Address:               it.Address,
		ServiceArea:           it.ServiceArea,
		AvatarURL:             it.AvatarURL,
		Role:                  entities.Role(it.Role),
		Verified:              it.Verified,
		AdminVerified:         it.AdminVerified,
		ContractorStatus:      entities.ContractorStatus(it.ContractorStatus),
		LodgeName:             it.LodgeName,
		RoomNumber:            it.RoomNumber,
		TenantID:              it.TenantID,
		Categories:            it.Categories,
		YearsOfExperience:     it.YearsOfExperience,
		VerificationToken:     it.VerificationToken,
		VerificationExpiresAt: parseTime(it.VerificationExpiresAt),
		ResetToken:            it.ResetToken,
		ResetExpiresAt:        parseTime(it.ResetExpiresAt),
		SessionVersion:        it.SessionVersion,
		CreatedAt:             parseTime(it.CreatedAt),
		UpdatedAt:             parseTime(it.UpdatedAt),
	}
}
