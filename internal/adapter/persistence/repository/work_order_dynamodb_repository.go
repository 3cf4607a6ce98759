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

const workOrdersQuoteNumberIndex = "quote_number-index"

type workOrderItem struct {
	ID             string `dynamodbav:"id"`
	CustomerID     string `dynamodbav:"customer_id"`
	Details        string `dynamodbav:"details"`
	Type           string `dynamodbav:"type"`
	Status         string `dynamodbav:"status"`
	Priority       string `dynamodbav:"priority"`
	QuoteNumber    string `dynamodbav:"quote_number,omitempty"`
	PONumber       string `dynamodbav:"po_number,omitempty"`
	InvoiceNumber  string `dynamodbav:"invoice_number,omitempty"`
	ReportRef      string `dynamodbav:"report_ref,omitempty"`
	Quantity       int    `dynamodbav:"quantity"`
	AmountInvoiced string `dynamodbav:"amount_invoiced"`
	EnteredDate    string `dynamodbav:"entered_date,omitempty"`
	TargetDate     string `dynamodbav:"target_date,omitempty"`
	CompletionDate string `dynamodbav:"completion_date,omitempty"`
	Notes          string `dynamodbav:"notes,omitempty"`
	CreatedAt      string `dynamodbav:"created_at"`
	UpdatedAt      string `dynamodbav:"updated_at"`
}

// WorkOrderDynamoRepository persists WorkOrder entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - GSI: quote_number-index (PK: quote_number), sparse
//
// Quoted work orders also own a sentinel item "work_order#quote#<quote_number>".

type WorkOrderDynamoRepository struct {
	ddb       DynamoAPI
	tableName string
}

var _ interfaces.IWorkOrderRepository = (*WorkOrderDynamoRepository)(nil)

func NewWorkOrderDynamoRepository(ddb DynamoAPI, tableName string) *WorkOrderDynamoRepository {
	return &WorkOrderDynamoRepository{ddb: ddb, tableName: tableName}
}

func (r *WorkOrderDynamoRepository) FindByQuoteNumber(ctx context.Context, quoteNumber string) ([]entities.WorkOrder, error) {
	if quoteNumber == "" {
		return nil, nil
	}
	ref, err := lookupSentinel(ctx, r.ddb, r.tableName, workOrderSentinel(quoteNumber))
	if err != nil {
		return nil, err
	}
	if ref != "" {
		w, err := r.getByID(ctx, ref)
		if err != nil || w.ID == "" {
			return nil, err
		}
		return []entities.WorkOrder{w}, nil
	}

	raw, err := queryIndex(ctx, r.ddb, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(workOrdersQuoteNumberIndex),
		KeyConditionExpression: aws.String("quote_number = :q"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":q": &types.AttributeValueMemberS{Value: quoteNumber},
		},
	})
	if err != nil {
		return nil, err
	}
	items := make([]entities.WorkOrder, 0, len(raw))
	for _, av := range raw {
		var it workOrderItem
		if err := attributevalue.UnmarshalMap(av, &it); err != nil {
			return nil, errors.Wrap(err, "decode work order")
		}
		items = append(items, fromWorkOrderItem(it))
	}
	return items, nil
}

func (r *WorkOrderDynamoRepository) Create(ctx context.Context, w entities.WorkOrder) (entities.WorkOrder, error) {
	if strings.TrimSpace(w.ID) == "" || strings.TrimSpace(w.CustomerID) == "" {
		return entities.WorkOrder{}, errors.Wrap(interfaces.ErrRejected, "work order id and customer are required")
	}
	var sentinel string
	if w.QuoteNumber != "" {
		sentinel = workOrderSentinel(w.QuoteNumber)
	}
	if err := putWithSentinel(ctx, r.ddb, r.tableName, toWorkOrderItem(w), w.ID, sentinel); err != nil {
		return entities.WorkOrder{}, err
	}
	return w, nil
}

func (r *WorkOrderDynamoRepository) Update(ctx context.Context, w entities.WorkOrder) (entities.WorkOrder, error) {
	attrs, err := replaceItem(ctx, r.ddb, r.tableName, w.ID, toWorkOrderItem(w))
	if err != nil || len(attrs) == 0 {
		return entities.WorkOrder{}, err
	}
	var it workOrderItem
	if err := attributevalue.UnmarshalMap(attrs, &it); err != nil {
		return entities.WorkOrder{}, errors.Wrap(err, "decode work order")
	}
	return fromWorkOrderItem(it), nil
}

func (r *WorkOrderDynamoRepository) getByID(ctx context.Context, id string) (entities.WorkOrder, error) {
	raw, err := getItem(ctx, r.ddb, r.tableName, id)
	if err != nil || len(raw) == 0 {
		return entities.WorkOrder{}, err
	}
	var it workOrderItem
	if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
		return entities.WorkOrder{}, errors.Wrap(err, "decode work order")
	}
	return fromWorkOrderItem(it), nil
}

func workOrderSentinel(quoteNumber string) string {
	return sentinelID("work_order", "quote", quoteNumber)
}

func toWorkOrderItem(w entities.WorkOrder) workOrderItem {
	return workOrderItem{
		ID:             w.ID,
		CustomerID:     w.CustomerID,
		Details:        w.Details,
		Type:           string(w.Type),
		Status:         string(w.Status),
		Priority:       string(w.Priority),
		QuoteNumber:    w.QuoteNumber,
		PONumber:       w.PONumber,
		InvoiceNumber:  w.InvoiceNumber,
		ReportRef:      w.ReportRef,
		Quantity:       w.Quantity,
		AmountInvoiced: w.AmountInvoiced.String(),
		EnteredDate:    formatDate(w.EnteredDate),
		TargetDate:     formatDate(w.TargetDate),
		CompletionDate: formatDate(w.CompletionDate),
		Notes:          w.Notes,
		CreatedAt:      formatTime(w.CreatedAt),
		UpdatedAt:      formatTime(w.UpdatedAt),
	}
}

func fromWorkOrderItem(it workOrderItem) entities.WorkOrder {
	return entities.WorkOrder{
		ID:             it.ID,
		CustomerID:     it.CustomerID,
		Details:        it.Details,
		Type:           entities.ParseProjectType(it.Type),
		Status:         entities.ParseWorkOrderStatus(it.Status),
		Priority:       entities.ParsePriority(it.Priority),
		QuoteNumber:    it.QuoteNumber,
		PONumber:       it.PONumber,
		InvoiceNumber:  it.InvoiceNumber,
		ReportRef:      it.ReportRef,
		Quantity:       it.Quantity,
		AmountInvoiced: parseDecimal(it.AmountInvoiced),
		EnteredDate:    parseDate(it.EnteredDate),
		TargetDate:     parseDate(it.TargetDate),
		CompletionDate: parseDate(it.CompletionDate),
		Notes:          it.Notes,
		CreatedAt:      parseTime(it.CreatedAt),
		UpdatedAt:      parseTime(it.UpdatedAt),
	}
}
