package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"multidrop-routing-service/internal/domain"
)

type countingRepo struct {
	candidates []domain.RouteCandidate
	calls      int
}

func (r *countingRepo) CandidatesInCorridor(ctx context.Context, corridor string, from, to time.Time) ([]domain.RouteCandidate, error) {
	r.calls++
	return r.candidates, nil
}

func (r *countingRepo) CreateCandidate(ctx context.Context, c domain.RouteCandidate) error {
	r.candidates = append(r.candidates, c)
	return nil
}

func (r *countingRepo) UpdateStatus(ctx context.Context, routeID string, status domain.RouteStatus) error {
	return nil
}

func (r *countingRepo) ReserveCapacity(ctx context.Context, routeID string, weightKg, volumeM3, buffer float64) (bool, error) {
	return true, nil
}

func setupCache(t *testing.T, repo *countingRepo) *RedisCandidateCache {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	return NewRedisCandidateCache(repo, rdb, time.Minute, zerolog.Nop())
}

func testCandidate(id string) domain.RouteCandidate {
	return domain.RouteCandidate{
		ID:          id,
		Corridor:    "5149_5151_-16_-13",
		Date:        time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC),
		Window:      domain.WindowAM,
		MaxWeightKg: 1000,
		MaxVolumeM3: 15,
		Status:      domain.RoutePlanning,
	}
}

func TestCandidatesInCorridorCachesSecondRead(t *testing.T) {
	repo := &countingRepo{candidates: []domain.RouteCandidate{testCandidate("route-1")}}
	cache := setupCache(t, repo)
	ctx := context.Background()
	from := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 14)

	first, err := cache.CandidatesInCorridor(ctx, "5149_5151_-16_-13", from, to)
	if err != nil {
		t.Fatalf("first read: %v", err)
	}
	second, err := cache.CandidatesInCorridor(ctx, "5149_5151_-16_-13", from, to)
	if err != nil {
		t.Fatalf("second read: %v", err)
	}

	if repo.calls != 1 {
		t.Errorf("repository calls = %d, want 1 (second read served from cache)", repo.calls)
	}
	if len(first) != 1 || len(second) != 1 || second[0].ID != "route-1" {
		t.Errorf("cached read returned %+v, want route-1", second)
	}
}

func TestCreateCandidateInvalidatesCorridor(t *testing.T) {
	repo := &countingRepo{candidates: []domain.RouteCandidate{testCandidate("route-1")}}
	cache := setupCache(t, repo)
	ctx := context.Background()
	from := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 14)

	if _, err := cache.CandidatesInCorridor(ctx, "5149_5151_-16_-13", from, to); err != nil {
		t.Fatalf("warm cache: %v", err)
	}

	if err := cache.CreateCandidate(ctx, testCandidate("route-2")); err != nil {
		t.Fatalf("create candidate: %v", err)
	}

	candidates, err := cache.CandidatesInCorridor(ctx, "5149_5151_-16_-13", from, to)
	if err != nil {
		t.Fatalf("read after create: %v", err)
	}
	if len(candidates) != 2 {
		t.Errorf("candidates = %d, want 2 after invalidation", len(candidates))
	}
	if repo.calls != 2 {
		t.Errorf("repository calls = %d, want 2", repo.calls)
	}
}

func TestReserveCapacityInvalidates(t *testing.T) {
	repo := &countingRepo{candidates: []domain.RouteCandidate{testCandidate("route-1")}}
	cache := setupCache(t, repo)
	ctx := context.Background()
	from := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 14)

	if _, err := cache.CandidatesInCorridor(ctx, "5149_5151_-16_-13", from, to); err != nil {
		t.Fatalf("warm cache: %v", err)
	}

	claimed, err := cache.ReserveCapacity(ctx, "route-1", 100, 1, 0.10)
	if err != nil {
		t.Fatalf("reserve: %v", err)
	}
	if !claimed {
		t.Fatal("reserve should pass through the repository result")
	}

	if _, err := cache.CandidatesInCorridor(ctx, "5149_5151_-16_-13", from, to); err != nil {
		t.Fatalf("read after reserve: %v", err)
	}
	if repo.calls != 2 {
		t.Errorf("repository calls = %d, want 2 (reservation invalidated the cache)", repo.calls)
	}
}

func TestCacheFallsBackWhenRedisDown(t *testing.T) {
	repo := &countingRepo{candidates: []domain.RouteCandidate{testCandidate("route-1")}}

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("start miniredis: %v", err)
	}
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	cache := NewRedisCandidateCache(repo, rdb, time.Minute, zerolog.Nop())

	mr.Close()

	candidates, err := cache.CandidatesInCorridor(context.Background(), "5149_5151_-16_-13",
		time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 3, 24, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("read with redis down: %v", err)
	}
	if len(candidates) != 1 {
		t.Errorf("candidates = %d, want 1 from repository fallback", len(candidates))
	}
}
