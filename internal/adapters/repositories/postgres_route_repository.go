package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"multidrop-routing-service/internal/domain"
	"multidrop-routing-service/internal/logger"
	"multidrop-routing-service/internal/platform/obs"

	"github.com/rs/zerolog"
)

// Postgres-backed implementation of the RouteCandidateRepository port.
type PostgresRouteRepository struct {
	DB  *sql.DB
	log zerolog.Logger
}

func NewPostgresRouteRepository(db *sql.DB) *PostgresRouteRepository {
	return &PostgresRouteRepository{DB: db, log: logger.New("route-repo")}
}

// Return open candidates on the corridor within the date range, oldest first.
// Dispatched and completed routes are never offered to new bookings.
func (r *PostgresRouteRepository) CandidatesInCorridor(
	ctx context.Context,
	corridor string,
	from, to time.Time,
) (candidates []domain.RouteCandidate, err error) {
	defer obs.Time(ctx, r.log, "candidates_in_corridor")(&err)

	if r.DB == nil {
		return nil, errors.New("route repository: DB is nil")
	}
	if corridor == "" {
		return nil, errors.New("candidates in corridor: corridor must not be empty")
	}

	query := `
	SELECT
		id,
		corridor,
		date,
		time_window,
		current_weight_kg,
		current_volume_m3,
		max_weight_kg,
		max_volume_m3,
		stop_count,
		status,
		vehicle_id,
		driver_id
	FROM route_candidates
	WHERE corridor = $1
		AND date >= $2
		AND date <= $3
		AND status IN ('planning', 'ready')
	ORDER BY date, id;
	`
	rows, err := r.DB.QueryContext(ctx, query, corridor, from, to)
	if err != nil {
		return nil, fmt.Errorf("candidates in corridor: query route_candidates table: %w", err)
	}
	defer rows.Close()

	candidates = make([]domain.RouteCandidate, 0, 8)
	for rows.Next() {
		var c domain.RouteCandidate
		err := rows.Scan(
			&c.ID, &c.Corridor, &c.Date, &c.Window,
			&c.CurrentWeightKg, &c.CurrentVolumeM3,
			&c.MaxWeightKg, &c.MaxVolumeM3,
			&c.StopCount, &c.Status, &c.VehicleID, &c.DriverID,
		)
		if err != nil {
			return nil, fmt.Errorf("candidates in corridor: scan row: %w", err)
		}
		if c.MaxWeightKg > 0 {
			c.FillRate = c.CurrentWeightKg / c.MaxWeightKg * 100
			if c.MaxVolumeM3 > 0 {
				if v := c.CurrentVolumeM3 / c.MaxVolumeM3 * 100; v > c.FillRate {
					c.FillRate = v
				}
			}
		}
		candidates = append(candidates, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("candidates in corridor: row iteration: %w", err)
	}

	return candidates, nil
}

func (r *PostgresRouteRepository) CreateCandidate(ctx context.Context, c domain.RouteCandidate) error {
	if r.DB == nil {
		return errors.New("route repository: DB is nil")
	}
	if c.ID == "" {
		return errors.New("create candidate: id must not be empty")
	}

	query := `
	INSERT INTO route_candidates (
		id, corridor, date, time_window,
		current_weight_kg, current_volume_m3,
		max_weight_kg, max_volume_m3,
		stop_count, status, vehicle_id, driver_id
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := r.DB.ExecContext(ctx, query,
		c.ID, c.Corridor, c.Date, c.Window,
		c.CurrentWeightKg, c.CurrentVolumeM3,
		c.MaxWeightKg, c.MaxVolumeM3,
		c.StopCount, c.Status, c.VehicleID, c.DriverID,
	)
	if err != nil {
		return fmt.Errorf("create candidate id=%q: %w", c.ID, err)
	}
	return nil
}

// Move a candidate through its lifecycle. The transition rules are enforced
// here so no caller can skip a state.
func (r *PostgresRouteRepository) UpdateStatus(ctx context.Context, routeID string, status domain.RouteStatus) error {
	if r.DB == nil {
		return errors.New("route repository: DB is nil")
	}

	var current domain.RouteStatus
	err := r.DB.QueryRowContext(ctx,
		`SELECT status FROM route_candidates WHERE id = $1;`, routeID,
	).Scan(&current)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("update status: route %q not found", routeID)
	}
	if err != nil {
		return fmt.Errorf("update status: read route %q: %w", routeID, err)
	}

	if !current.CanTransitionTo(status) {
		return fmt.Errorf("update status: route %q cannot move from %s to %s", routeID, current, status)
	}

	result, err := r.DB.ExecContext(ctx,
		`UPDATE route_candidates SET status = $2 WHERE id = $1 AND status = $3;`,
		routeID, status, current,
	)
	if err != nil {
		return fmt.Errorf("update status: route %q: %w", routeID, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update status: rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("update status: route %q changed concurrently", routeID)
	}
	return nil
}

// Atomically claim capacity on a candidate. The conditional UPDATE succeeds
// only when the load fits inside the remaining capacity after the buffer is
// held back; a false return means another booking won the race or the route
// is full.
func (r *PostgresRouteRepository) ReserveCapacity(
	ctx context.Context,
	routeID string,
	weightKg, volumeM3, buffer float64,
) (claimed bool, err error) {
	defer obs.Time(ctx, r.log, "reserve_capacity")(&err)

	if r.DB == nil {
		return false, errors.New("route repository: DB is nil")
	}

	query := `
	UPDATE route_candidates
	SET current_weight_kg = current_weight_kg + $2,
		current_volume_m3 = current_volume_m3 + $3,
		stop_count = stop_count + 1
	WHERE id = $1
		AND status IN ('planning', 'ready')
		AND $2 <= (max_weight_kg - current_weight_kg) * (1 - $4)
		AND $3 <= (max_volume_m3 - current_volume_m3) * (1 - $4);
	`
	result, err := r.DB.ExecContext(ctx, query, routeID, weightKg, volumeM3, buffer)
	if err != nil {
		return false, fmt.Errorf("reserve capacity: route %q: %w", routeID, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("reserve capacity: rows affected: %w", err)
	}
	return affected == 1, nil
}
