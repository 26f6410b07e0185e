package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"fleetlink-report/internal/domain"
)

// PostgresDriversRepo 司机查询Repository实现
type PostgresDriversRepo struct {
	db *sql.DB
}

func NewPostgresDriversRepo(db *sql.DB) *PostgresDriversRepo {
	return &PostgresDriversRepo{db: db}
}

var _ DriversRepo = (*PostgresDriversRepo)(nil)

// GetDriver 按 id 查司机
func (r *PostgresDriversRepo) GetDriver(ctx context.Context, driverID string) (*domain.Driver, error) {
	if driverID == "" {
		return nil, fmt.Errorf("driver_id is required")
	}

	query := `
		SELECT
			driver_id::text,
			company_id::text,
			display_name,
			status
		FROM drivers
		WHERE driver_id = $1
	`

	var driver domain.Driver
	err := r.db.QueryRowContext(ctx, query, driverID).Scan(
		&driver.DriverID,
		&driver.CompanyID,
		&driver.DisplayName,
		&driver.Status,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("driver not found: %w", err)
		}
		return nil, fmt.Errorf("failed to get driver: %w", err)
	}

	return &driver, nil
}

// PostgresVehiclesRepo 车辆分配查询Repository实现
type PostgresVehiclesRepo struct {
	db *sql.DB
}

func NewPostgresVehiclesRepo(db *sql.DB) *PostgresVehiclesRepo {
	return &PostgresVehiclesRepo{db: db}
}

var _ VehiclesRepo = (*PostgresVehiclesRepo)(nil)

// GetActiveRegistration 查司机在给定时刻有效的车辆牌照
// 多条有效分配时取最新开始的一条
func (r *PostgresVehiclesRepo) GetActiveRegistration(ctx context.Context, driverID string, at time.Time) (string, bool, error) {
	if driverID == "" {
		return "", false, fmt.Errorf("driver_id is required")
	}

	query := `
		SELECT v.registration
		FROM vehicle_assignments a
		JOIN vehicles v ON v.vehicle_id = a.vehicle_id
		WHERE a.driver_id = $1
		  AND a.valid_from <= $2
		  AND (a.valid_until IS NULL OR a.valid_until > $2)
		ORDER BY a.valid_from DESC
		LIMIT 1
	`

	var registration string
	err := r.db.QueryRowContext(ctx, query, driverID, at).Scan(&registration)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to get active vehicle registration: %w", err)
	}
	return registration, true, nil
}
