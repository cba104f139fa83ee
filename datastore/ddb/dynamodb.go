/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	sdk "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	storeerrors "github.com/suparena/entitymapper/errors"
	"github.com/suparena/entitymapper/storagemodels"
)

// MaxTransactItems is the largest batch DynamoDB accepts in one TransactWriteItems call.
const MaxTransactItems = 100

// EntityTypeAttribute is injected into every item with the row's entity name.
const EntityTypeAttribute = "EntityType"

// API is the subset of the DynamoDB client used by the executor.
type API interface {
	PutItem(ctx context.Context, params *sdk.PutItemInput, optFns ...func(*sdk.Options)) (*sdk.PutItemOutput, error)
	TransactWriteItems(ctx context.Context, params *sdk.TransactWriteItemsInput, optFns ...func(*sdk.Options)) (*sdk.TransactWriteItemsOutput, error)
}

// DynamodbExecutor implements datastore.Executor on a single DynamoDB table.
type DynamodbExecutor struct {
	client        API
	tableName     string
	indexMaps     map[string]map[string]string
	conditionAttr string
}

// Option configures a DynamodbExecutor.
type Option func(*DynamodbExecutor)

// WithIndexMap registers key templates for entity. Templates use {Column} macros
// that are replaced with the row's stored values:
//
//	ddb.WithIndexMap("people", map[string]string{"PK": "PERSON#{Id}", "SK": "PERSON#{Id}"})
func WithIndexMap(entity string, indexMap map[string]string) Option {
	return func(e *DynamodbExecutor) {
		e.indexMaps[entity] = indexMap
	}
}

// WithConditionAttribute makes every write conditional on attr not existing yet,
// so an existing item is reported as ErrAlreadyExists instead of being replaced.
func WithConditionAttribute(attr string) Option {
	return func(e *DynamodbExecutor) {
		e.conditionAttr = attr
	}
}

// New constructs an executor over an existing client.
func New(client API, tableName string, opts ...Option) *DynamodbExecutor {
	e := &DynamodbExecutor{
		client:    client,
		tableName: tableName,
		indexMaps: make(map[string]map[string]string),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// NewDynamoDBClient initializes a DynamoDB client using AWS credentials.
// Empty keys fall back to the default credential chain.
func NewDynamoDBClient(awsAccessKey, awsSecretKey, awsRegion, tableName string) (*sdk.Client, error) {
	opts := []func(*config.LoadOptions) error{config.WithRegion(awsRegion)}
	if awsAccessKey != "" || awsSecretKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(awsAccessKey, awsSecretKey, ""),
		))
	}

	cfg, err := config.LoadDefaultConfig(context.TODO(), opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	client := sdk.NewFromConfig(cfg)

	slog.Debug("DynamoDB client initialized", "table", tableName, "region", awsRegion)
	return client, nil
}

// NewDynamodbExecutor constructs an executor with static AWS credentials.
func NewDynamodbExecutor(awsAccessKey, awsSecretKey, awsRegion, tableName string, opts ...Option) (*DynamodbExecutor, error) {
	client, err := NewDynamoDBClient(awsAccessKey, awsSecretKey, awsRegion, tableName)
	if err != nil {
		return nil, fmt.Errorf("failed to create DynamoDB client: %w", err)
	}
	return New(client, tableName, opts...), nil
}

// ExecuteInsert writes one row with PutItem.
func (d *DynamodbExecutor) ExecuteInsert(ctx context.Context, row storagemodels.Row) error {
	item, err := d.buildItem(row)
	if err != nil {
		return err
	}

	input := &sdk.PutItemInput{
		TableName: aws.String(d.tableName),
		Item:      item,
	}
	if d.conditionAttr != "" {
		input.ConditionExpression = aws.String("attribute_not_exists(#c)")
		input.ExpressionAttributeNames = map[string]string{"#c": d.conditionAttr}
	}

	if _, err := d.client.PutItem(ctx, input); err != nil {
		var cfe *types.ConditionalCheckFailedException
		if errors.As(err, &cfe) {
			return fmt.Errorf("%w: %w", storeerrors.NewAlreadyExistsError(row.Entity, conditionValue(item, d.conditionAttr)), err)
		}
		return fmt.Errorf("PutItem failed: %w", err)
	}
	return nil
}

// ExecuteBulkInsert writes rows in one TransactWriteItems call, so the batch
// succeeds or fails as a unit. Batches above MaxTransactItems are rejected
// without contacting DynamoDB.
func (d *DynamodbExecutor) ExecuteBulkInsert(ctx context.Context, rows []storagemodels.Row) (int64, error) {
	if len(rows) == 0 {
		return 0, nil
	}
	if len(rows) > MaxTransactItems {
		return 0, storeerrors.NewValidationError("rows",
			fmt.Sprintf("bulk insert of %d rows exceeds the DynamoDB transaction limit of %d", len(rows), MaxTransactItems))
	}

	items := make([]types.TransactWriteItem, 0, len(rows))
	for _, row := range rows {
		item, err := d.buildItem(row)
		if err != nil {
			return 0, err
		}
		put := &types.Put{
			TableName: aws.String(d.tableName),
			Item:      item,
		}
		if d.conditionAttr != "" {
			put.ConditionExpression = aws.String("attribute_not_exists(#c)")
			put.ExpressionAttributeNames = map[string]string{"#c": d.conditionAttr}
		}
		items = append(items, types.TransactWriteItem{Put: put})
	}

	_, err := d.client.TransactWriteItems(ctx, &sdk.TransactWriteItemsInput{
		TransactItems: items,
	})
	if err != nil {
		var tce *types.TransactionCanceledException
		if errors.As(err, &tce) {
			for i, reason := range tce.CancellationReasons {
				if aws.ToString(reason.Code) == "ConditionalCheckFailed" {
					return 0, fmt.Errorf("%w: %w",
						storeerrors.NewAlreadyExistsError(rows[i].Entity, conditionValue(items[i].Put.Item, d.conditionAttr)), err)
				}
			}
		}
		return 0, fmt.Errorf("TransactWriteItems failed: %w", err)
	}
	return int64(len(rows)), nil
}

// buildItem marshals the row's values and adds the entity type and expanded key templates.
func (d *DynamodbExecutor) buildItem(row storagemodels.Row) (map[string]types.AttributeValue, error) {
	item, err := attributevalue.MarshalMap(row.Map())
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s row: %w", row.Entity, err)
	}
	item[EntityTypeAttribute] = &types.AttributeValueMemberS{Value: row.Entity}

	if indexMap, ok := d.indexMaps[row.Entity]; ok {
		for k, v := range expandMacros(indexMap, item) {
			item[k] = &types.AttributeValueMemberS{Value: v}
		}
	}
	return item, nil
}

var macroPattern = regexp.MustCompile(`{([^}]+)}`)

// expandMacros replaces {Column} macros in every template with the item's scalar values.
func expandMacros(indexMap map[string]string, item map[string]types.AttributeValue) map[string]string {
	res := make(map[string]string, len(indexMap))

	for fieldName, template := range indexMap {
		res[fieldName] = macroPattern.ReplaceAllStringFunc(template, func(macro string) string {
			key := strings.Trim(macro, "{}")

			val, ok := item[key]
			if !ok {
				return ""
			}
			return scalarString(val)
		})
	}
	return res
}

func scalarString(val types.AttributeValue) string {
	switch tv := val.(type) {
	case *types.AttributeValueMemberS:
		return tv.Value
	case *types.AttributeValueMemberN:
		return tv.Value
	case *types.AttributeValueMemberBOOL:
		return fmt.Sprintf("%v", tv.Value)
	default:
		// sets, lists, maps, binary and NULL have no key form
		return ""
	}
}

func conditionValue(item map[string]types.AttributeValue, attr string) string {
	if v, ok := item[attr]; ok {
		return scalarString(v)
	}
	return ""
}
