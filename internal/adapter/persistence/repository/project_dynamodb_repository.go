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

const (
	projectsQuoteNumberIndex = "quote_number-index"
	projectsCustomerIDIndex  = "customer_id-index"
)

type projectItem struct {
	ID             string `dynamodbav:"id"`
	CustomerID     string `dynamodbav:"customer_id"`
	Name           string `dynamodbav:"name"`
	Description    string `dynamodbav:"description,omitempty"`
	Type           string `dynamodbav:"type"`
	Status         string `dynamodbav:"status"`
	Priority       string `dynamodbav:"priority"`
	Budget         string `dynamodbav:"budget"`
	ActualCost     string `dynamodbav:"actual_cost"`
	StartDate      string `dynamodbav:"start_date,omitempty"`
	TargetDate     string `dynamodbav:"target_date,omitempty"`
	CompletionDate string `dynamodbav:"completion_date,omitempty"`
	QuoteNumber    string `dynamodbav:"quote_number,omitempty"`
	PONumber       string `dynamodbav:"po_number,omitempty"`
	InvoiceNumber  string `dynamodbav:"invoice_number,omitempty"`
	Manager        string `dynamodbav:"manager,omitempty"`
	TechnicalLead  string `dynamodbav:"technical_lead,omitempty"`
	Notes          string `dynamodbav:"notes,omitempty"`
	CreatedAt      string `dynamodbav:"created_at"`
	UpdatedAt      string `dynamodbav:"updated_at"`
}

// ProjectDynamoRepository persists Project entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - GSI: quote_number-index (PK: quote_number), sparse
//   - GSI: customer_id-index (PK: customer_id)
//
// Quoted projects own a sentinel "project#quote#<quote_number>"; unquoted ones
// own "project#name#<customer_id>#<name>".

type ProjectDynamoRepository struct {
	ddb       DynamoAPI
	tableName string
}

var _ interfaces.IProjectRepository = (*ProjectDynamoRepository)(nil)

func NewProjectDynamoRepository(ddb DynamoAPI, tableName string) *ProjectDynamoRepository {
	return &ProjectDynamoRepository{ddb: ddb, tableName: tableName}
}

func (r *ProjectDynamoRepository) FindByQuoteNumberOrNameAndCustomer(ctx context.Context, quoteNumber, name, customerID string) ([]entities.Project, error) {
	ref, err := lookupSentinel(ctx, r.ddb, r.tableName, projectSentinel(quoteNumber, name, customerID))
	if err != nil {
		return nil, err
	}
	if ref != "" {
		p, err := r.getByID(ctx, ref)
		if err != nil || p.ID == "" {
			return nil, err
		}
		return []entities.Project{p}, nil
	}

	in := &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(projectsQuoteNumberIndex),
		KeyConditionExpression: aws.String("quote_number = :q"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":q": &types.AttributeValueMemberS{Value: quoteNumber},
		},
	}
	if quoteNumber == "" {
		in = &dynamodb.QueryInput{
			TableName:              aws.String(r.tableName),
			IndexName:              aws.String(projectsCustomerIDIndex),
			KeyConditionExpression: aws.String("customer_id = :c"),
			FilterExpression:       aws.String("#name = :n"),
			ExpressionAttributeNames: map[string]string{
				"#name": "name",
			},
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":c": &types.AttributeValueMemberS{Value: customerID},
				":n": &types.AttributeValueMemberS{Value: name},
			},
		}
	}
	raw, err := queryIndex(ctx, r.ddb, in)
	if err != nil {
		return nil, err
	}
	items := make([]entities.Project, 0, len(raw))
	for _, av := range raw {
		var it projectItem
		if err := attributevalue.UnmarshalMap(av, &it); err != nil {
			return nil, errors.Wrap(err, "decode project")
		}
		items = append(items, fromProjectItem(it))
	}
	return items, nil
}

func (r *ProjectDynamoRepository) Create(ctx context.Context, p entities.Project) (entities.Project, error) {
	if strings.TrimSpace(p.ID) == "" || strings.TrimSpace(p.CustomerID) == "" || strings.TrimSpace(p.Name) == "" {
		return entities.Project{}, errors.Wrap(interfaces.ErrRejected, "project id, customer and name are required")
	}
	sentinel := projectSentinel(p.QuoteNumber, p.Name, p.CustomerID)
	if err := putWithSentinel(ctx, r.ddb, r.tableName, toProjectItem(p), p.ID, sentinel); err != nil {
		return entities.Project{}, err
	}
	return p, nil
}

func (r *ProjectDynamoRepository) Update(ctx context.Context, p entities.Project) (entities.Project, error) {
	attrs, err := replaceItem(ctx, r.ddb, r.tableName, p.ID, toProjectItem(p))
	if err != nil || len(attrs) == 0 {
		return entities.Project{}, err
	}
	var it projectItem
	if err := attributevalue.UnmarshalMap(attrs, &it); err != nil {
		return entities.Project{}, errors.Wrap(err, "decode project")
	}
	return fromProjectItem(it), nil
}

func (r *ProjectDynamoRepository) getByID(ctx context.Context, id string) (entities.Project, error) {
	raw, err := getItem(ctx, r.ddb, r.tableName, id)
	if err != nil || len(raw) == 0 {
		return entities.Project{}, err
	}
	var it projectItem
	if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
		return entities.Project{}, errors.Wrap(err, "decode project")
	}
	return fromProjectItem(it), nil
}

func projectSentinel(quoteNumber, name, customerID string) string {
	if quoteNumber != "" {
		return sentinelID("project", "quote", quoteNumber)
	}
	return sentinelID("project", "name", customerID, name)
}

func toProjectItem(p entities.Project) projectItem {
	return projectItem{
		ID:             p.ID,
		CustomerID:     p.CustomerID,
		Name:           p.Name,
		Description:    p.Description,
		Type:           string(p.Type),
		Status:         string(p.Status),
		Priority:       string(p.Priority),
		Budget:         p.Budget.String(),
		ActualCost:     p.ActualCost.String(),
		StartDate:      formatDate(p.StartDate),
		TargetDate:     formatDate(p.TargetDate),
		CompletionDate: formatDate(p.CompletionDate),
		QuoteNumber:    p.QuoteNumber,
		PONumber:       p.PONumber,
		InvoiceNumber:  p.InvoiceNumber,
		Manager:        p.Manager,
		TechnicalLead:  p.TechnicalLead,
		Notes:          p.Notes,
		CreatedAt:      formatTime(p.CreatedAt),
		UpdatedAt:      formatTime(p.UpdatedAt),
	}
}

func fromProjectItem(it projectItem) entities.Project {
	return entities.Project{
		ID:             it.ID,
		CustomerID:     it.CustomerID,
		Name:           it.Name,
		Description:    it.Description,
		Type:           entities.ParseProjectType(it.Type),
		Status:         entities.ParseProjectStatus(it.Status),
		Priority:       entities.ParsePriority(it.Priority),
		Budget:         parseDecimal(it.Budget),
		ActualCost:     parseDecimal(it.ActualCost),
		StartDate:      parseDate(it.StartDate),
		TargetDate:     parseDate(it.TargetDate),
		CompletionDate: parseDate(it.CompletionDate),
		QuoteNumber:    it.QuoteNumber,
		PONumber:       it.PONumber,
		InvoiceNumber:  it.InvoiceNumber,
		Manager:        it.Manager,
		TechnicalLead:  it.TechnicalLead,
		Notes:          it.Notes,
		CreatedAt:      parseTime(it.CreatedAt),
		UpdatedAt:      parseTime(it.UpdatedAt),
	}
}
