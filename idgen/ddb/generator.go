/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"context"
	"fmt"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	sdk "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	storeddb "github.com/suparena/entitymapper/datastore/ddb"
	"github.com/suparena/entitymapper/errors"
	"github.com/suparena/entitymapper/idgen"
)

const (
	// DefaultKeyAttribute is the partition key attribute of the counter table.
	DefaultKeyAttribute = "EntityKey"
	// DefaultValueAttribute holds the last issued key.
	DefaultValueAttribute = "LastValue"
)

// UpdateItemAPI is the subset of the DynamoDB client used by the generator.
type UpdateItemAPI interface {
	UpdateItem(ctx context.Context, params *sdk.UpdateItemInput, optFns ...func(*sdk.Options)) (*sdk.UpdateItemOutput, error)
}

// DynamodbGenerator implements idgen.Generator with an atomic counter item per entity key.
type DynamodbGenerator struct {
	client    UpdateItemAPI
	tableName string
	keyAttr   string
	valueAttr string
}

// Option configures a DynamodbGenerator.
type Option func(*DynamodbGenerator)

// WithAttributes overrides the counter table's key and value attribute names.
func WithAttributes(keyAttr, valueAttr string) Option {
	return func(g *DynamodbGenerator) {
		g.keyAttr = keyAttr
		g.valueAttr = valueAttr
	}
}

// New constructs a generator over an existing client.
func New(client UpdateItemAPI, tableName string, opts ...Option) *DynamodbGenerator {
	g := &DynamodbGenerator{
		client:    client,
		tableName: tableName,
		keyAttr:   DefaultKeyAttribute,
		valueAttr: DefaultValueAttribute,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// NewDynamodbGenerator constructs a generator with static AWS credentials.
func NewDynamodbGenerator(awsAccessKey, awsSecretKey, awsRegion, tableName string, opts ...Option) (*DynamodbGenerator, error) {
	client, err := storeddb.NewDynamoDBClient(awsAccessKey, awsSecretKey, awsRegion, tableName)
	if err != nil {
		return nil, fmt.Errorf("failed to create DynamoDB client: %w", err)
	}
	return New(client, tableName, opts...), nil
}

// Reserve adds count to the counter of entityKey in one UpdateItem call and
// returns the first key of the reserved block. A missing counter item starts at zero.
func (g *DynamodbGenerator) Reserve(ctx context.Context, entityKey string, count int64) (int64, error) {
	proceed, err := idgen.CheckCount(entityKey, count)
	if err != nil || !proceed {
		return 0, err
	}

	out, err := g.client.UpdateItem(ctx, &sdk.UpdateItemInput{
		TableName: aws.String(g.tableName),
		Key: map[string]types.AttributeValue{
			g.keyAttr: &types.AttributeValueMemberS{Value: entityKey},
		},
		UpdateExpression: aws.String("ADD #v :n"),
		ExpressionAttributeNames: map[string]string{
			"#v": g.valueAttr,
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":n": &types.AttributeValueMemberN{Value: strconv.FormatInt(count, 10)},
		},
		ReturnValues: types.ReturnValueUpdatedNew,
	})
	if err != nil {
		return 0, errors.NewGenerationError(entityKey, count, fmt.Errorf("UpdateItem failed: %w", err))
	}

	attr, ok := out.Attributes[g.valueAttr]
	if !ok {
		return 0, errors.NewGenerationError(entityKey, count, fmt.Errorf("UpdateItem returned no %s attribute", g.valueAttr))
	}
	var last int64
	if err := attributevalue.Unmarshal(attr, &last); err != nil {
		return 0, errors.NewGenerationError(entityKey, count, fmt.Errorf("failed to unmarshal counter: %w", err))
	}

	return idgen.BlockFromLast(last, count).Start, nil
}
