// Package ratelimit paces calls to the Flickr API.
//
// Flickr grants each API key a fixed number of calls per hour. The indexer
// never retries a failed call, so instead of reacting to rate-limit errors it
// spreads its calls out ahead of time with a token bucket:
//
//	limiter := ratelimit.NewTokenBucket(3600, time.Hour)
//	if err := limiter.Wait(ctx); err != nil {
//	    return err // context cancelled
//	}
//	// issue the request
//
// Unlimited() returns a Limiter that never blocks.
package ratelimit
