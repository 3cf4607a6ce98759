package repository

import (
	"context"
	"strings"

	"scmicro_tracker/internal/domain/entities"
	"scmicro_tracker/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/pkg/errors"
)

const customersCompanyKeyIndex = "company_key-index"

type customerItem struct {
	ID         string `dynamodbav:"id"`
	Company    string `dynamodbav:"company"`
	CompanyKey string `dynamodbav:"company_key"`
	Contact    string `dynamodbav:"contact"`
	ContactKey string `dynamodbav:"contact_key"`
	Email      string `dynamodbav:"email,omitempty"`
	Phone      string `dynamodbav:"phone,omitempty"`
	Address    string `dynamodbav:"address,omitempty"`
	Tier       string `dynamodbav:"tier"`
	Notes      string `dynamodbav:"notes,omitempty"`
	CreatedAt  string `dynamodbav:"created_at"`
	UpdatedAt  string `dynamodbav:"updated_at"`
}

// CustomerDynamoRepository persists Customer entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - GSI: company_key-index (PK: company_key)
//
// Each customer is written together with a sentinel item
// "customer#<company_key>#<contact_key>" so two batches cannot create the
// same identity.

type CustomerDynamoRepository struct {
	ddb       DynamoAPI
	tableName string
}

var _ interfaces.ICustomerRepository = (*CustomerDynamoRepository)(nil)

func NewCustomerDynamoRepository(ddb DynamoAPI, tableName string) *CustomerDynamoRepository {
	return &CustomerDynamoRepository{ddb: ddb, tableName: tableName}
}

func (r *CustomerDynamoRepository) FindByCompany(ctx context.Context, company string) ([]entities.Customer, error) {
	raw, err := queryIndex(ctx, r.ddb, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(customersCompanyKeyIndex),
		KeyConditionExpression: aws.String("company_key = :ck"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":ck": &types.AttributeValueMemberS{Value: entities.CompanyKey(company)},
		},
	})
	if err != nil {
		return nil, err
	}

	items := make([]entities.Customer, 0, len(raw))
	for _, av := range raw {
		var it customerItem
		if err := attributevalue.UnmarshalMap(av, &it); err != nil {
			return nil, errors.Wrap(err, "decode customer")
		}
		items = append(items, fromCustomerItem(it))
	}
	return items, nil
}

// FindByCompanyContact reads the identity sentinel first, which is strongly
// consistent, and falls back to the company index for customers stored
// without one.
func (r *CustomerDynamoRepository) FindByCompanyContact(ctx context.Context, company, contact string) (entities.Customer, error) {
	ref, err := lookupSentinel(ctx, r.ddb, r.tableName, customerSentinel(company, contact))
	if err != nil {
		return entities.Customer{}, err
	}
	if ref != "" {
		return r.getByID(ctx, ref)
	}

	candidates, err := r.FindByCompany(ctx, company)
	if err != nil {
		return entities.Customer{}, err
	}
	for _, c := range candidates {
		if c.SameIdentity(company, contact) {
			return c, nil
		}
	}
	return entities.Customer{}, nil
}

func (r *CustomerDynamoRepository) Create(ctx context.Context, c entities.Customer) (entities.Customer, error) {
	if strings.TrimSpace(c.ID) == "" || strings.TrimSpace(c.Company) == "" {
		return entities.Customer{}, errors.Wrap(interfaces.ErrRejected, "customer id and company are required")
	}
	err := putWithSentinel(ctx, r.ddb, r.tableName, toCustomerItem(c), c.ID, customerSentinel(c.Company, c.Contact))
	if err != nil {
		return entities.Customer{}, err
	}
	return c, nil
}

func (r *CustomerDynamoRepository) getByID(ctx context.Context, id string) (entities.Customer, error) {
	raw, err := getItem(ctx, r.ddb, r.tableName, id)
	if err != nil || len(raw) == 0 {
		return entities.Customer{}, err
	}
	var it customerItem
	if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
		return entities.Customer{}, errors.Wrap(err, "decode customer")
	}
	return fromCustomerItem(it), nil
}

func customerSentinel(company, contact string) string {
	return sentinelID("customer", entities.CompanyKey(company), entities.ContactKey(contact))
}

func toCustomerItem(c entities.Customer) customerItem {
	return customerItem{
		ID:         c.ID,
		Company:    c.Company,
		CompanyKey: entities.CompanyKey(c.Company),
		Contact:    c.Contact,
		ContactKey: entities.ContactKey(c.Contact),
		Email:      c.Email,
		Phone:      c.Phone,
		Address:    c.Address,
		Tier:       string(c.Tier),
		Notes:      c.Notes,
		CreatedAt:  formatTime(c.CreatedAt),
		UpdatedAt:  formatTime(c.UpdatedAt),
	}
}

func fromCustomerItem(it customerItem) entities.Customer {
	return entities.Customer{
		ID:        it.ID,
		Company:   it.Company,
		Contact:   it.Contact,
		Email:     it.Email,
		Phone:     it.Phone,
		Address:   it.Address,
		Tier:      entities.ParseCustomerTier(it.Tier),
		Notes:     it.Notes,
		CreatedAt: parseTime(it.CreatedAt),
		UpdatedAt: parseTime(it.UpdatedAt),
	}
}
