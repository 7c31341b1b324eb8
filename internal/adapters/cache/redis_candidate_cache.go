package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"multidrop-routing-service/internal/domain"
	"multidrop-routing-service/internal/ports"
)

// RedisCandidateCache is a read-through cache in front of a
// RouteCandidateRepository. It only accelerates corridor lookups; capacity
// reservation stays atomic in the underlying repository, so a stale cache
// entry can at worst cause one extra reservation attempt, never an
// overcommitted route. Cache failures fall back to the repository.
type RedisCandidateCache struct {
	next ports.RouteCandidateRepository
	rdb  *redis.Client
	ttl  time.Duration
	log  zerolog.Logger
}

func NewRedisCandidateCache(next ports.RouteCandidateRepository, rdb *redis.Client, ttl time.Duration, log zerolog.Logger) *RedisCandidateCache {
	return &RedisCandidateCache{next: next, rdb: rdb, ttl: ttl, log: log}
}

func corridorKey(corridor string, from, to time.Time) string {
	return fmt.Sprintf("routes:corridor:%s:%s:%s", corridor, from.Format("2006-01-02"), to.Format("2006-01-02"))
}

func (c *RedisCandidateCache) CandidatesInCorridor(
	ctx context.Context,
	corridor string,
	from, to time.Time,
) ([]domain.RouteCandidate, error) {
	key := corridorKey(corridor, from, to)

	payload, err := c.rdb.Get(ctx, key).Bytes()
	if err == nil {
		var candidates []domain.RouteCandidate
		if jsonErr := json.Unmarshal(payload, &candidates); jsonErr == nil {
			return candidates, nil
		}
		// Unreadable entry; drop it and fall through to the repository.
		c.rdb.Del(ctx, key)
	} else if err != redis.Nil {
		c.log.Warn().Err(err).Str("key", key).Msg("candidate cache read failed")
	}

	candidates, err := c.next.CandidatesInCorridor(ctx, corridor, from, to)
	if err != nil {
		return nil, err
	}

	if payload, jsonErr := json.Marshal(candidates); jsonErr == nil {
		if setErr := c.rdb.Set(ctx, key, payload, c.ttl).Err(); setErr != nil {
			c.log.Warn().Err(setErr).Str("key", key).Msg("candidate cache write failed")
		}
	}

	return candidates, nil
}

func (c *RedisCandidateCache) CreateCandidate(ctx context.Context, candidate domain.RouteCandidate) error {
	if err := c.next.CreateCandidate(ctx, candidate); err != nil {
		return err
	}
	c.invalidateCorridor(ctx, candidate.Corridor)
	return nil
}

func (c *RedisCandidateCache) UpdateStatus(ctx context.Context, routeID string, status domain.RouteStatus) error {
	if err := c.next.UpdateStatus(ctx, routeID, status); err != nil {
		return err
	}
	c.invalidateAll(ctx)
	return nil
}

func (c *RedisCandidateCache) ReserveCapacity(
	ctx context.Context,
	routeID string,
	weightKg, volumeM3, buffer float64,
) (bool, error) {
	claimed, err := c.next.ReserveCapacity(ctx, routeID, weightKg, volumeM3, buffer)
	if err != nil || !claimed {
		return claimed, err
	}
	c.invalidateAll(ctx)
	return true, nil
}

func (c *RedisCandidateCache) invalidateCorridor(ctx context.Context, corridor string) {
	c.deleteByPattern(ctx, fmt.Sprintf("routes:corridor:%s:*", corridor))
}

// invalidateAll clears every corridor entry. Status and capacity writes only
// carry a route id, so the corridor is unknown here; the entry count is small
// and the TTL short, which keeps the blunt sweep cheap.
func (c *RedisCandidateCache) invalidateAll(ctx context.Context) {
	c.deleteByPattern(ctx, "routes:corridor:*")
}

func (c *RedisCandidateCache) deleteByPattern(ctx context.Context, pattern string) {
	iter := c.rdb.Scan(ctx, 0, pattern, 100).Iterator()
	for iter.Next(ctx) {
		if err := c.rdb.Del(ctx, iter.Val()).Err(); err != nil {
			c.log.Warn().Err(err).Str("key", iter.Val()).Msg("candidate cache invalidation failed")
			return
		}
	}
	if err := iter.Err(); err != nil {
		c.log.Warn().Err(err).Str("pattern", pattern).Msg("candidate cache scan failed")
	}
}
