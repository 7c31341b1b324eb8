package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"multidrop-routing-service/internal/domain"
)

// Postgres-backed implementation of the BookingRepository port.
type PostgresBookingRepository struct{ DB *sql.DB }

func NewPostgresBookingRepository(db *sql.DB) *PostgresBookingRepository {
	return &PostgresBookingRepository{DB: db}
}

// Return unassigned bookings on the corridor scheduled within the range,
// highest priority first so the grouping optimizer can consume the order
// directly.
func (b *PostgresBookingRepository) PendingInCorridor(
	ctx context.Context,
	corridor string,
	from, to time.Time,
) ([]domain.BookingLite, error) {
	if b.DB == nil {
		return nil, errors.New("booking repository: DB is nil")
	}
	if corridor == "" {
		return nil, errors.New("pending in corridor: corridor must not be empty")
	}

	query := `
	SELECT
		booking_id,
		pickup_lat,
		pickup_lng,
		dropoff_lat,
		dropoff_lng,
		scheduled_at,
		load_fraction,
		priority,
		value_gbp
	FROM pending_bookings
	WHERE corridor = $1
		AND scheduled_at >= $2
		AND scheduled_at <= $3
	ORDER BY priority DESC, booking_id;
	`
	rows, err := b.DB.QueryContext(ctx, query, corridor, from, to)
	if err != nil {
		return nil, fmt.Errorf("pending in corridor: query pending_bookings table: %w", err)
	}
	defer rows.Close()

	bookings := make([]domain.BookingLite, 0, 32)
	for rows.Next() {
		var bk domain.BookingLite
		if err := rows.Scan(
			&bk.BookingID,
			&bk.Pickup.Lat, &bk.Pickup.Lng,
			&bk.Dropoff.Lat, &bk.Dropoff.Lng,
			&bk.ScheduledAt, &bk.LoadFraction, &bk.Priority, &bk.ValueGBP,
		); err != nil {
			return nil, fmt.Errorf("pending in corridor: scan row: %w", err)
		}
		bookings = append(bookings, bk)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("pending in corridor: row iteration: %w", err)
	}

	return bookings, nil
}
