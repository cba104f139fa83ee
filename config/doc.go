/*
Package config loads the configuration of entitymapper binaries.

Sources, lowest precedence first:
  - DefaultConfig (in-memory id store and storage)
  - a YAML file
  - a .env file in the working directory
  - ENTITYMAPPER_* environment variables, plus AWS_ACCESS_KEY, AWS_SECRET_KEY,
    AWS_REGION and AWS_DDB_TABLE

Example file:

	logging:
	  level: debug
	  format: json
	idStore:
	  backend: dynamodb
	  table: entity_counters
	storage:
	  backend: dynamodb
	  table: app-table
	  conditionAttribute: PK
	  indexMaps:
	    people:
	      PK: "PERSON#{Id}"
	      SK: "PROFILE"
	aws:
	  region: eu-central-1
*/
package config
