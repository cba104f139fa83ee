/*
Package entitymapper provides change tracking and commit for typed entities, with
surrogate keys reserved in contiguous blocks from an external id store.

The pipeline of one commit:
  - the tracked batch is materialized once
  - keys are planned: items whose key is still zero receive the next values of one
    reserved block, in order; items that already carry a key are left alone
  - each item is converted into a storagemodels.Row, applying column converters
  - rows are written one by one (CommitChanges) or as one bulk load (BulkInsert)

Entities are plain structs described by `entity` struct tags:

	type Person struct {
	    ID        int64    `entity:"Id,key,gen=custom"`
	    FirstName string   `entity:"FirstName"`
	    Tags      []string `entity:"Tags,conv=stringlist"`
	}

Basic Usage:

	session := entitymapper.NewSession(generator, executor)

	people, err := entitymapper.SetFor[Person](session)
	if err != nil {
	    return err
	}
	people.Add(&Person{FirstName: "Milan"}, &Person{FirstName: "Peter"})

	n, err := people.CommitChanges(ctx)

A failed commit leaves the batch pending. Keys already assigned stay assigned, so a
retry never reserves new keys for the same items; a block partly used by a failed
commit is retired, not returned to the store.

Generators live under idgen (DynamoDB, PostgreSQL, Redis, mock) and executors under
datastore (DynamoDB, PostgreSQL, mock).
*/
package entitymapper
