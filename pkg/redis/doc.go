// Package redis provides helpers for connecting to the Redis instance that
// backs the email data cache.
//
// The package wraps the go-redis client and adds:
//
//   - Connect, which retries the connection using the supplied configuration
//     so a briefly unavailable Redis does not kill a worker at startup.
//   - A health-check helper for liveness and readiness probes.
//
// Configuration is described by the Config struct whose fields are populated
// from environment variables via github.com/caarlos0/env.
//
// # Usage
//
//	ctx := context.Background()
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//	    // handle error, probably terminate the application
//	}
//	defer client.Close()
//
// Register a health-check in your observability stack:
//
//	checker := redis.Healthcheck(client)
//	if err := checker(ctx); err != nil {
//	    // redis is not healthy
//	}
package redis
