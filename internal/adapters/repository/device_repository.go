package repository

import (
	"context"
	"database/sql"

	"github.com/funaab-ict/clearance-service/internal/core/domain"
	"github.com/funaab-ict/clearance-service/internal/core/ports"
)

type DeviceRepository struct {
	db *sql.DB
}

var _ ports.DeviceRepository = (*DeviceRepository)(nil)

func NewDeviceRepository(db *sql.DB) *DeviceRepository {
	return &DeviceRepository{db: db}
}

const deviceColumns = "id, device_name, location, department, api_key, is_active, created_at"

func scanDevice(row *sql.Row) (*domain.Device, error) {
	var device domain.Device
	err := row.Scan(
		&device.ID, &device.Name, &device.Location, &device.Department,
		&device.APIKey, &device.IsActive, &device.CreatedAt,
	)
	if err != nil {
		return nil, mapError(err)
	}
	return &device, nil
}

func (r *DeviceRepository) Create(ctx context.Context, device domain.Device) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO devices ("+deviceColumns+") VALUES ($1, $2, $3, $4, $5, $6, $7)",
		device.ID, device.Name, device.Location, device.Department,
		device.APIKey, device.IsActive, device.CreatedAt,
	)
	return mapError(err)
}

func (r *DeviceRepository) GetByID(ctx context.Context, id string) (*domain.Device, error) {
	return scanDevice(r.db.QueryRowContext(ctx,
		"SELECT "+deviceColumns+" FROM devices WHERE id = $1", id))
}

// GetByAPIKey only matches active devices, so deactivating a device revokes
// its credential without deleting the row.
func (r *DeviceRepository) GetByAPIKey(ctx context.Context, apiKey string) (*domain.Device, error) {
	return scanDevice(r.db.QueryRowContext(ctx,
		"SELECT "+deviceColumns+" FROM devices WHERE api_key = $1 AND is_active", apiKey))
}

func (r *DeviceRepository) GetByName(ctx context.Context, name string) (*domain.Device, error) {
	return scanDevice(r.db.QueryRowContext(ctx,
		"SELECT "+deviceColumns+" FROM devices WHERE device_name = $1", name))
}

func (r *DeviceRepository) GetByLocation(ctx context.Context, location string) (*domain.Device, error) {
	return scanDevice(r.db.QueryRowContext(ctx,
		"SELECT "+deviceColumns+" FROM devices WHERE location = $1", location))
}

func (r *DeviceRepository) List(ctx context.Context, offset, limit int) ([]domain.Device, error) {
	query := "SELECT " + deviceColumns + " FROM devices ORDER BY created_at"
	args := []any{}
	if limit > 0 {
		query += " OFFSET $1 LIMIT $2"
		args = append(args, offset, limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var devices []domain.Device
	for rows.Next() {
		var device domain.Device
		if err := rows.Scan(
			&device.ID, &device.Name, &device.Location, &device.Department,
			&device.APIKey, &device.IsActive, &device.CreatedAt,
		); err != nil {
			return nil, err
		}
		devices = append(devices, device)
	}
	return devices, rows.Err()
}

func (r *DeviceRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM devices WHERE id = $1", id)
	if err != nil {
		return mapError(err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
