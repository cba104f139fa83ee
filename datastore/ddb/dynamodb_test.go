/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	sdk "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/suparena/entitymapper/errors"
	"github.com/suparena/entitymapper/storagemodels"
)

type fakeAPI struct {
	puts         []*sdk.PutItemInput
	transactions []*sdk.TransactWriteItemsInput
	putErr       error
	transactErr  error
}

func (f *fakeAPI) PutItem(ctx context.Context, in *sdk.PutItemInput, _ ...func(*sdk.Options)) (*sdk.PutItemOutput, error) {
	f.puts = append(f.puts, in)
	if f.putErr != nil {
		return nil, f.putErr
	}
	return &sdk.PutItemOutput{}, nil
}

func (f *fakeAPI) TransactWriteItems(ctx context.Context, in *sdk.TransactWriteItemsInput, _ ...func(*sdk.Options)) (*sdk.TransactWriteItemsOutput, error) {
	f.transactions = append(f.transactions, in)
	if f.transactErr != nil {
		return nil, f.transactErr
	}
	return &sdk.TransactWriteItemsOutput{}, nil
}

func personRow(id int64, name string) storagemodels.Row {
	return storagemodels.Row{
		Entity:  "people",
		Columns: []string{"Id", "FirstName", "Tags"},
		Values:  []any{id, name, "a;b"},
	}
}

func TestExecuteInsert(t *testing.T) {
	api := &fakeAPI{}
	exec := New(api, "app-table",
		WithIndexMap("people", map[string]string{
			"PK": "PERSON#{Id}",
			"SK": "PROFILE",
		}),
	)

	if err := exec.ExecuteInsert(context.Background(), personRow(7, "Milan")); err != nil {
		t.Fatalf("ExecuteInsert failed: %v", err)
	}
	if len(api.puts) != 1 {
		t.Fatalf("Expected 1 PutItem call, got %d", len(api.puts))
	}

	in := api.puts[0]
	if aws.ToString(in.TableName) != "app-table" {
		t.Errorf("Expected app-table, got %s", aws.ToString(in.TableName))
	}
	if in.ConditionExpression != nil {
		t.Errorf("Expected unconditional put, got %s", aws.ToString(in.ConditionExpression))
	}

	checks := map[string]string{
		"PK":         "PERSON#7",
		"SK":         "PROFILE",
		"EntityType": "people",
		"FirstName":  "Milan",
		"Tags":       "a;b",
	}
	for attr, want := range checks {
		got, ok := in.Item[attr].(*types.AttributeValueMemberS)
		if !ok || got.Value != want {
			t.Errorf("Attribute %s: expected %q, got %#v", attr, want, in.Item[attr])
		}
	}
	if id, ok := in.Item["Id"].(*types.AttributeValueMemberN); !ok || id.Value != "7" {
		t.Errorf("Expected numeric Id 7, got %#v", in.Item["Id"])
	}
}

func TestExecuteInsertConditional(t *testing.T) {
	api := &fakeAPI{putErr: &types.ConditionalCheckFailedException{Message: aws.String("exists")}}
	exec := New(api, "app-table",
		WithIndexMap("people", map[string]string{"PK": "PERSON#{Id}", "SK": "PROFILE"}),
		WithConditionAttribute("PK"),
	)

	err := exec.ExecuteInsert(context.Background(), personRow(7, "Milan"))
	if !errors.IsAlreadyExists(err) {
		t.Fatalf("Expected already exists, got: %v", err)
	}
	in := api.puts[0]
	if aws.ToString(in.ConditionExpression) != "attribute_not_exists(#c)" || in.ExpressionAttributeNames["#c"] != "PK" {
		t.Errorf("Unexpected condition %s %v", aws.ToString(in.ConditionExpression), in.ExpressionAttributeNames)
	}
}

func TestExecuteInsertError(t *testing.T) {
	api := &fakeAPI{putErr: stderrors.New("throttled")}
	exec := New(api, "app-table")

	err := exec.ExecuteInsert(context.Background(), personRow(1, "a"))
	if err == nil || errors.IsAlreadyExists(err) {
		t.Fatalf("Expected plain PutItem error, got: %v", err)
	}
}

func TestExecuteBulkInsert(t *testing.T) {
	api := &fakeAPI{}
	exec := New(api, "app-table", WithConditionAttribute("PK"),
		WithIndexMap("people", map[string]string{"PK": "PERSON#{Id}"}))

	rows := []storagemodels.Row{personRow(1, "Milan"), personRow(2, "Peter"), personRow(3, "Milada")}
	n, err := exec.ExecuteBulkInsert(context.Background(), rows)
	if err != nil {
		t.Fatalf("ExecuteBulkInsert failed: %v", err)
	}
	if n != 3 {
		t.Fatalf("Expected 3 affected rows, got %d", n)
	}
	if len(api.transactions) != 1 {
		t.Fatalf("Expected one transaction, got %d", len(api.transactions))
	}

	items := api.transactions[0].TransactItems
	if len(items) != 3 {
		t.Fatalf("Expected 3 transact items, got %d", len(items))
	}
	for i, want := range []string{"PERSON#1", "PERSON#2", "PERSON#3"} {
		pk := items[i].Put.Item["PK"].(*types.AttributeValueMemberS).Value
		if pk != want {
			t.Errorf("Item %d: expected %s, got %s", i, want, pk)
		}
		if items[i].Put.ConditionExpression == nil {
			t.Errorf("Item %d should be conditional", i)
		}
	}
}

func TestExecuteBulkInsertLimits(t *testing.T) {
	api := &fakeAPI{}
	exec := New(api, "app-table")

	n, err := exec.ExecuteBulkInsert(context.Background(), nil)
	if err != nil || n != 0 {
		t.Fatalf("Expected (0, nil) for an empty batch, got (%d, %v)", n, err)
	}

	rows := make([]storagemodels.Row, MaxTransactItems+1)
	for i := range rows {
		rows[i] = personRow(int64(i+1), "x")
	}
	_, err = exec.ExecuteBulkInsert(context.Background(), rows)
	if !errors.IsValidationError(err) {
		t.Fatalf("Expected validation error for oversized batch, got: %v", err)
	}
	if len(api.transactions) != 0 {
		t.Fatal("Oversized batches must not reach DynamoDB")
	}
}

func TestExecuteBulkInsertCancelled(t *testing.T) {
	api := &fakeAPI{transactErr: &types.TransactionCanceledException{
		Message: aws.String("cancelled"),
		CancellationReasons: []types.CancellationReason{
			{Code: aws.String("None")},
			{Code: aws.String("ConditionalCheckFailed")},
		},
	}}
	exec := New(api, "app-table", WithConditionAttribute("Id"))

	_, err := exec.ExecuteBulkInsert(context.Background(), []storagemodels.Row{personRow(1, "a"), personRow(2, "b")})
	if !errors.IsAlreadyExists(err) {
		t.Fatalf("Expected already exists, got: %v", err)
	}
	var ae *errors.AlreadyExistsError
	if !stderrors.As(err, &ae) || ae.Key != "2" {
		t.Errorf("Expected conflict on key 2, got %#v", ae)
	}
}

func TestExpandMacros(t *testing.T) {
	item := map[string]types.AttributeValue{
		"Id":     &types.AttributeValueMemberN{Value: "42"},
		"Name":   &types.AttributeValueMemberS{Value: "Milan"},
		"Active": &types.AttributeValueMemberBOOL{Value: true},
		"Tags":   &types.AttributeValueMemberSS{Value: []string{"x"}},
	}

	got := expandMacros(map[string]string{
		"PK":     "PERSON#{Id}",
		"SK":     "{Name}#{Active}",
		"GSI1PK": "TAGS#{Tags}",
		"GSI1SK": "MISSING#{Nope}",
	}, item)

	expected := map[string]string{
		"PK":     "PERSON#42",
		"SK":     "Milan#true",
		"GSI1PK": "TAGS#",
		"GSI1SK": "MISSING#",
	}
	for k, want := range expected {
		if got[k] != want {
			t.Errorf("%s: expected %q, got %q", k, want, got[k])
		}
	}
}
