// Package redis provides Redis client initialization and health checking.
//
// Connect validates the URL (redis:// or rediss://), retries the initial ping with
// exponential backoff and returns a ready client:
//
//	var cfg redis.Config
//	config.MustLoad(&cfg)
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer client.Close()
//
//	r.Get("/ready", health.Readiness(log, redis.Healthcheck(client)))
//
// Errors wrap ErrEmptyConnectionURL, ErrFailedToParseRedisConnString, ErrRedisNotReady
// or ErrHealthcheckFailed and can be matched with errors.Is.
package redis
