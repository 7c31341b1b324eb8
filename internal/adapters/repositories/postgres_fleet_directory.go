package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"multidrop-routing-service/internal/domain"
)

// Postgres-backed implementation of the FleetDirectory port.
type PostgresFleetDirectory struct{ DB *sql.DB }

func NewPostgresFleetDirectory(db *sql.DB) *PostgresFleetDirectory {
	return &PostgresFleetDirectory{DB: db}
}

// Return shifts marked available on the given date.
func (f *PostgresFleetDirectory) AvailableDrivers(ctx context.Context, date time.Time) ([]domain.DriverShift, error) {
	if f.DB == nil {
		return nil, errors.New("fleet directory: DB is nil")
	}

	query := `
	SELECT
		driver_id,
		date,
		start_time,
		end_time,
		max_working_hours,
		vehicle_id,
		status
	FROM driver_shifts
	WHERE date = $1
		AND status = 'available'
	ORDER BY driver_id;
	`
	rows, err := f.DB.QueryContext(ctx, query, date)
	if err != nil {
		return nil, fmt.Errorf("available drivers: query driver_shifts table: %w", err)
	}
	defer rows.Close()

	shifts := make([]domain.DriverShift, 0, 16)
	for rows.Next() {
		var s domain.DriverShift
		if err := rows.Scan(
			&s.DriverID, &s.Date, &s.StartTime, &s.EndTime,
			&s.MaxWorkingHours, &s.VehicleID, &s.Status,
		); err != nil {
			return nil, fmt.Errorf("available drivers: scan row: %w", err)
		}
		shifts = append(shifts, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("available drivers: row iteration: %w", err)
	}

	return shifts, nil
}

// Return vehicles whose capacity covers the load on both axes.
func (f *PostgresFleetDirectory) SuitableVehicles(ctx context.Context, load domain.LoadSummary) ([]domain.VehicleCapacity, error) {
	if f.DB == nil {
		return nil, errors.New("fleet directory: DB is nil")
	}

	query := `
	SELECT
		id,
		type,
		max_weight_kg,
		max_volume_m3,
		crew_size
	FROM vehicles
	WHERE max_weight_kg >= $1
		AND max_volume_m3 >= $2
	ORDER BY max_weight_kg, id;
	`
	rows, err := f.DB.QueryContext(ctx, query, load.TotalWeightKg, load.TotalVolumeM3)
	if err != nil {
		return nil, fmt.Errorf("suitable vehicles: query vehicles table: %w", err)
	}
	defer rows.Close()

	vehicles := make([]domain.VehicleCapacity, 0, 8)
	for rows.Next() {
		var v domain.VehicleCapacity
		if err := rows.Scan(&v.ID, &v.Type, &v.MaxWeightKg, &v.MaxVolumeM3, &v.CrewSize); err != nil {
			return nil, fmt.Errorf("suitable vehicles: scan row: %w", err)
		}
		vehicles = append(vehicles, v)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("suitable vehicles: row iteration: %w", err)
	}

	return vehicles, nil
}
