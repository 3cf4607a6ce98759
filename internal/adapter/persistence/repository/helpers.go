package repository

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"scmicro_tracker/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// DynamoAPI is the subset of *dynamodb.Client the repositories use.
type DynamoAPI interface {
	GetItem(ctx context.Context, in *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, in *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	UpdateItem(ctx context.Context, in *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
	Query(ctx context.Context, in *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
	TransactWriteItems(ctx context.Context, in *dynamodb.TransactWriteItemsInput, optFns ...func(*dynamodb.Options)) (*dynamodb.TransactWriteItemsOutput, error)
}

var _ DynamoAPI = (*dynamodb.Client)(nil)

// sentinelItem reserves a natural key inside an entity table. It carries no
// index attributes, so the sparse GSIs never see it.
type sentinelItem struct {
	ID    string `dynamodbav:"id"`
	RefID string `dynamodbav:"ref_id"`
	Kind  string `dynamodbav:"kind"`
}

const sentinelKind = "sentinel"

func sentinelID(parts ...string) string {
	return strings.Join(parts, "#")
}

func idKey(id string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"id": &types.AttributeValueMemberS{Value: id},
	}
}

func getItem(ctx context.Context, ddb DynamoAPI, table, id string) (map[string]types.AttributeValue, error) {
	out, err := ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(table),
		Key:            idKey(id),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return nil, errors.Wrapf(err, "get %s/%s", table, id)
	}
	return out.Item, nil
}

// lookupSentinel returns the id the sentinel points at, or "" when the key is free.
func lookupSentinel(ctx context.Context, ddb DynamoAPI, table, id string) (string, error) {
	raw, err := getItem(ctx, ddb, table, id)
	if err != nil || len(raw) == 0 {
		return "", err
	}
	var s sentinelItem
	if err := attributevalue.UnmarshalMap(raw, &s); err != nil {
		return "", errors.Wrapf(err, "decode sentinel %s", id)
	}
	return s.RefID, nil
}

func queryIndex(ctx context.Context, ddb DynamoAPI, in *dynamodb.QueryInput) ([]map[string]types.AttributeValue, error) {
	var items []map[string]types.AttributeValue
	p := dynamodb.NewQueryPaginator(ddb, in)
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, errors.Wrapf(err, "query %s", aws.ToString(in.IndexName))
		}
		items = append(items, page.Items...)
	}
	return items, nil
}

// putWithSentinel writes item and, when sentinel is non-empty, a sentinel row
// in one transaction. Both puts require their key to be unused.
func putWithSentinel(ctx context.Context, ddb DynamoAPI, table string, item any, id, sentinel string) error {
	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return errors.Wrapf(interfaces.ErrRejected, "marshal %s/%s: %v", table, id, err)
	}
	names := map[string]string{"#id": "id"}

	if sentinel == "" {
		_, err = ddb.PutItem(ctx, &dynamodb.PutItemInput{
			TableName:                aws.String(table),
			Item:                     av,
			ConditionExpression:      aws.String("attribute_not_exists(#id)"),
			ExpressionAttributeNames: names,
		})
		return writeError(err, table, id)
	}

	sv, err := attributevalue.MarshalMap(sentinelItem{ID: sentinel, RefID: id, Kind: sentinelKind})
	if err != nil {
		return errors.Wrapf(interfaces.ErrRejected, "marshal sentinel %s: %v", sentinel, err)
	}
	_, err = ddb.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{Put: &types.Put{
				TableName:                aws.String(table),
				Item:                     av,
				ConditionExpression:      aws.String("attribute_not_exists(#id)"),
				ExpressionAttributeNames: names,
			}},
			{Put: &types.Put{
				TableName:                aws.String(table),
				Item:                     sv,
				ConditionExpression:      aws.String("attribute_not_exists(#id)"),
				ExpressionAttributeNames: names,
			}},
		},
	})
	return writeError(err, table, sentinel)
}

// replaceItem overwrites every attribute of an existing item except its id.
// A missing item yields (nil, nil).
func replaceItem(ctx context.Context, ddb DynamoAPI, table, id string, item any) (map[string]types.AttributeValue, error) {
	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return nil, errors.Wrapf(interfaces.ErrRejected, "marshal %s/%s: %v", table, id, err)
	}
	expr, values, names := setExpression(av, "id")

	out, err := ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(table),
		Key:                       idKey(id),
		ConditionExpression:       aws.String("attribute_exists(#id)"),
		UpdateExpression:          aws.String(expr),
		ExpressionAttributeValues: values,
		ExpressionAttributeNames:  mergeNames(names, map[string]string{"#id": "id"}),
		ReturnValues:              types.ReturnValueAllNew,
	})
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if errors.As(err, &cfe) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, "update %s/%s", table, id)
	}
	return out.Attributes, nil
}

// setExpression builds "SET #a0 = :a0, ..." over av in attribute name order.
func setExpression(av map[string]types.AttributeValue, skip ...string) (string, map[string]types.AttributeValue, map[string]string) {
	keys := make([]string, 0, len(av))
	for k := range av {
		if !contains(skip, k) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	values := make(map[string]types.AttributeValue, len(keys))
	names := make(map[string]string, len(keys))
	for i, k := range keys {
		n, v := fmt.Sprintf("#a%d", i), fmt.Sprintf(":a%d", i)
		parts = append(parts, n+" = "+v)
		names[n] = k
		values[v] = av[k]
	}
	return "SET " + strings.Join(parts, ", "), values, names
}

func writeError(err error, table, id string) error {
	if err == nil {
		return nil
	}
	if isConditionFailure(err) {
		return errors.Wrapf(interfaces.ErrConflict, "%s/%s already exists", table, id)
	}
	return errors.Wrapf(err, "write %s/%s", table, id)
}

func isConditionFailure(err error) bool {
	var cfe *types.ConditionalCheckFailedException
	if errors.As(err, &cfe) {
		return true
	}
	var tce *types.TransactionCanceledException
	if errors.As(err, &tce) {
		for _, r := range tce.CancellationReasons {
			if aws.ToString(r.Code) == "ConditionalCheckFailed" {
				return true
			}
		}
	}
	return false
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
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

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) time.Time {
	t, _ := time.Parse(time.RFC3339Nano, s)
	return t
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return formatTime(*t)
}

func parseDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return nil
	}
	return &t
}

func parseDecimal(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}
