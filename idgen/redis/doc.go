/*
Package redis provides a Redis implementation of idgen.Generator on go-redis/v9.

Each entity key maps to one integer key, advanced with INCRBY. Redis executes
INCRBY atomically and returns the new value, which is the last key of the
reserved block:

	gen, client := redis.NewRedisGenerator(redis.DefaultOptions(), "")
	defer client.Close()
	start, err := gen.Reserve(ctx, "people", 3)

Counters must be persisted (AOF or RDB) for keys to stay unique across restarts.
*/
package redis
