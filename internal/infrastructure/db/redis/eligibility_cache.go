package redis

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/99minutos/user-service/internal/api/metrics"
	"github.com/99minutos/user-service/internal/core/ports"
)

const defaultVerdictTTL = 10 * time.Minute

// EligibilityCache remembers blocked screening verdicts in Redis so repeated
// attempts by a blacklisted identity skip the external round trip.
// Key format: eligibility:blocked:<sha256 of the length-prefixed first, last, email>
//
// Only "blocked" is cached. An allowed identity is always screened again.
type EligibilityCache struct {
	client *redis.Client
	next   ports.EligibilityGate
	ttl    time.Duration
	log    zerolog.Logger
}

// NewEligibilityCache wraps next with a Redis-backed verdict cache.
func NewEligibilityCache(client *redis.Client, next ports.EligibilityGate, ttl time.Duration, log zerolog.Logger) *EligibilityCache {
	if ttl <= 0 {
		ttl = defaultVerdictTTL
	}
	return &EligibilityCache{client: client, next: next, ttl: ttl, log: log}
}

// Check answers from the cache when a blocked verdict is stored, otherwise
// delegates to the wrapped gate. Cache failures never turn into verdicts.
func (c *EligibilityCache) Check(ctx context.Context, firstName, lastName, email string) (bool, error) {
	key := c.key(firstName, lastName, email)

	n, err := c.client.Exists(ctx, key).Result()
	switch {
	case err != nil:
		c.log.Warn().Err(err).Msg("eligibility cache read failed, screening anyway")
	case n > 0:
		metrics.EligibilityChecksTotal.WithLabelValues("cache_hit").Inc()
		return true, nil
	}

	blocked, err := c.next.Check(ctx, firstName, lastName, email)
	if err != nil || !blocked {
		return blocked, err
	}

	if err := c.client.Set(ctx, key, "1", c.ttl).Err(); err != nil && !errors.Is(err, context.Canceled) {
		c.log.Warn().Err(err).Msg("failed to cache blocked verdict")
	}
	return true, nil
}

// key hashes the length-prefixed fields so no two distinct identities share
// an encoding.
func (c *EligibilityCache) key(firstName, lastName, email string) string {
	h := sha256.New()
	for _, field := range []string{firstName, lastName, email} {
		_, _ = fmt.Fprintf(h, "%d:%s", len(field), field)
	}
	return "eligibility:blocked:" + hex.EncodeToString(h.Sum(nil))
}
