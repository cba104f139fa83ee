/*
Package ddb provides a DynamoDB implementation of idgen.Generator.

Each entity key owns one counter item in a dedicated table. A reservation is a
single UpdateItem call:

	UpdateExpression: "ADD #v :n"
	ReturnValues:     UPDATED_NEW

DynamoDB applies ADD atomically and creates the item on first use, so the counter
never hands out the same key twice, across any number of processes. The table
needs only a string partition key (EntityKey by default):

	gen := ddb.New(client, "entity_counters")
	start, err := gen.Reserve(ctx, "people", 3) // 1, then 4, 7, ...
*/
package ddb
