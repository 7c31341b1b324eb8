package repositories

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
)

// Initialize the Postgres schema.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createRouteCandidatesQuery := `
	CREATE TABLE IF NOT EXISTS route_candidates (
		id TEXT PRIMARY KEY,
		corridor TEXT NOT NULL,
		date DATE NOT NULL,
		time_window TEXT NOT NULL,
		current_weight_kg DOUBLE PRECISION NOT NULL DEFAULT 0,
		current_volume_m3 DOUBLE PRECISION NOT NULL DEFAULT 0,
		max_weight_kg DOUBLE PRECISION NOT NULL,
		max_volume_m3 DOUBLE PRECISION NOT NULL,
		stop_count INTEGER NOT NULL DEFAULT 0,
		status TEXT NOT NULL DEFAULT 'planning',
		vehicle_id TEXT NOT NULL DEFAULT '',
		driver_id TEXT NOT NULL DEFAULT ''
	);
	`

	createDriverShiftsQuery := `
	CREATE TABLE IF NOT EXISTS driver_shifts (
		driver_id TEXT NOT NULL,
		date DATE NOT NULL,
		start_time TEXT NOT NULL,
		end_time TEXT NOT NULL,
		max_working_hours DOUBLE PRECISION NOT NULL,
		vehicle_id TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'available',
		PRIMARY KEY (driver_id, date)
	);
	`

	createVehiclesQuery := `
	CREATE TABLE IF NOT EXISTS vehicles (
		id TEXT PRIMARY KEY,
		type TEXT NOT NULL,
		max_weight_kg DOUBLE PRECISION NOT NULL,
		max_volume_m3 DOUBLE PRECISION NOT NULL,
		crew_size INTEGER NOT NULL
	);
	`

	createBookingsQuery := `
	CREATE TABLE IF NOT EXISTS pending_bookings (
		booking_id TEXT PRIMARY KEY,
		corridor TEXT NOT NULL,
		pickup_lat DOUBLE PRECISION NOT NULL,
		pickup_lng DOUBLE PRECISION NOT NULL,
		dropoff_lat DOUBLE PRECISION NOT NULL,
		dropoff_lng DOUBLE PRECISION NOT NULL,
		scheduled_at TIMESTAMPTZ NOT NULL,
		load_fraction DOUBLE PRECISION NOT NULL,
		priority INTEGER NOT NULL DEFAULT 5,
		value_gbp DOUBLE PRECISION NOT NULL DEFAULT 0
	);
	`

	createCorridorIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_route_candidates_corridor_date
	ON route_candidates(corridor, date);
	`

	createBookingIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_pending_bookings_corridor_scheduled
	ON pending_bookings(corridor, scheduled_at);
	`

	statements := []string{
		createRouteCandidatesQuery,
		createDriverShiftsQuery,
		createVehiclesQuery,
		createBookingsQuery,
		createCorridorIndexQuery,
		createBookingIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

type ShiftSeed struct {
	DriverID        string  `json:"driver_id"`
	Date            string  `json:"date"`
	StartTime       string  `json:"start_time"`
	EndTime         string  `json:"end_time"`
	MaxWorkingHours float64 `json:"max_working_hours"`
	VehicleID       string  `json:"vehicle_id"`
	Status          string  `json:"status"`
}

type VehicleSeed struct {
	ID          string  `json:"id"`
	Type        string  `json:"type"`
	MaxWeightKg float64 `json:"max_weight_kg"`
	MaxVolumeM3 float64 `json:"max_volume_m3"`
	CrewSize    int     `json:"crew_size"`
}

type FleetSeed struct {
	Shifts   []ShiftSeed   `json:"shifts"`
	Vehicles []VehicleSeed `json:"vehicles"`
}

// Populate the fleet tables from a JSON file. Existing rows are replaced so
// the tool can run repeatedly against the same database.
func SeedFromJSON(db *sql.DB, jsonPath string) error {
	bytes, err := os.ReadFile(jsonPath)
	if err != nil {
		return fmt.Errorf("seed fleet: read %q: %w", jsonPath, err)
	}

	var data FleetSeed
	if err := json.Unmarshal(bytes, &data); err != nil {
		return fmt.Errorf("seed fleet: parse json: %w", err)
	}

	for i, shift := range data.Shifts {
		if strings.TrimSpace(shift.DriverID) == "" {
			return fmt.Errorf("seed fleet: shift at index %d: driver_id cannot be empty", i+1)
		}
		if _, err := time.Parse("2006-01-02", shift.Date); err != nil {
			return fmt.Errorf("seed fleet: shift at index %d: invalid date %q: %w", i+1, shift.Date, err)
		}
	}
	for i, vehicle := range data.Vehicles {
		if strings.TrimSpace(vehicle.ID) == "" {
			return fmt.Errorf("seed fleet: vehicle at index %d: id cannot be empty", i+1)
		}
		if vehicle.MaxWeightKg <= 0 || vehicle.MaxVolumeM3 <= 0 {
			return fmt.Errorf("seed fleet: vehicle %q: capacity must be positive", vehicle.ID)
		}
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("seed fleet: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	shiftQuery := `
	INSERT INTO driver_shifts (driver_id, date, start_time, end_time, max_working_hours, vehicle_id, status)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
	ON CONFLICT (driver_id, date) DO UPDATE
	SET start_time = EXCLUDED.start_time,
		end_time = EXCLUDED.end_time,
		max_working_hours = EXCLUDED.max_working_hours,
		vehicle_id = EXCLUDED.vehicle_id,
		status = EXCLUDED.status;
	`
	shiftStmt, err := tx.Prepare(shiftQuery)
	if err != nil {
		return fmt.Errorf("seed fleet: prepare shift insert: %w", err)
	}
	defer shiftStmt.Close()

	for _, shift := range data.Shifts {
		status := shift.Status
		if status == "" {
			status = "available"
		}
		if _, err := shiftStmt.Exec(
			shift.DriverID, shift.Date, shift.StartTime, shift.EndTime,
			shift.MaxWorkingHours, shift.VehicleID, status,
		); err != nil {
			return fmt.Errorf("seed fleet: insert shift driver=%q: %w", shift.DriverID, err)
		}
	}

	vehicleQuery := `
	INSERT INTO vehicles (id, type, max_weight_kg, max_volume_m3, crew_size)
	VALUES ($1, $2, $3, $4, $5)
	ON CONFLICT (id) DO UPDATE
	SET type = EXCLUDED.type,
		max_weight_kg = EXCLUDED.max_weight_kg,
		max_volume_m3 = EXCLUDED.max_volume_m3,
		crew_size = EXCLUDED.crew_size;
	`
	vehicleStmt, err := tx.Prepare(vehicleQuery)
	if err != nil {
		return fmt.Errorf("seed fleet: prepare vehicle insert: %w", err)
	}
	defer vehicleStmt.Close()

	for _, vehicle := range data.Vehicles {
		if _, err := vehicleStmt.Exec(
			vehicle.ID, vehicle.Type, vehicle.MaxWeightKg, vehicle.MaxVolumeM3, vehicle.CrewSize,
		); err != nil {
			return fmt.Errorf("seed fleet: insert vehicle id=%q: %w", vehicle.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed fleet: commit tx: %w", err)
	}

	return nil
}
