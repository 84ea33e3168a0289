package repository

import (
	"context"
	"database/sql"

	"github.com/funaab-ict/clearance-service/internal/core/domain"
	"github.com/funaab-ict/clearance-service/internal/core/ports"
)

type UserRepository struct {
	db *sql.DB
}

var _ ports.UserRepository = (*UserRepository)(nil)

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = "id, username, email, full_name, hashed_password, role, department, clearance_department, created_at"

func scanUser(row *sql.Row) (*domain.User, error) {
	var user domain.User
	var dept, clearanceDept sql.NullString
	err := row.Scan(
		&user.ID, &user.Username, &user.Email, &user.FullName,
		&user.HashedPassword, &user.Role, &dept, &clearanceDept, &user.CreatedAt,
	)
	if err != nil {
		return nil, mapError(err)
	}
	user.Department = domain.Department(dept.String)
	user.ClearanceDepartment = domain.ClearanceDepartment(clearanceDept.String)
	return &user, nil
}

func (r *UserRepository) Create(ctx context.Context, user domain.User) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO users ("+userColumns+") VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)",
		user.ID, user.Username, user.Email, user.FullName, user.HashedPassword,
		user.Role, nullable(string(user.Department)), nullable(string(user.ClearanceDepartment)), user.CreatedAt,
	)
	return mapError(err)
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return scanUser(r.db.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE id = $1", id))
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return scanUser(r.db.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE username = $1", username))
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return scanUser(r.db.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE email = $1", email))
}

func (r *UserRepository) GetByTagID(ctx context.Context, tagID string) (*domain.User, error) {
	return scanUser(r.db.QueryRowContext(ctx,
		"SELECT u.id, u.username, u.email, u.full_name, u.hashed_password, u.role, u.department, u.clearance_department, u.created_at "+
			"FROM users u JOIN rfid_tags t ON t.user_id = u.id WHERE t.tag_id = $1", tagID))
}

func (r *UserRepository) List(ctx context.Context, offset, limit int) ([]domain.User, error) {
	query := "SELECT " + userColumns + " FROM users ORDER BY created_at"
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

	var users []domain.User
	for rows.Next() {
		var user domain.User
		var dept, clearanceDept sql.NullString
		if err := rows.Scan(
			&user.ID, &user.Username, &user.Email, &user.FullName,
			&user.HashedPassword, &user.Role, &dept, &clearanceDept, &user.CreatedAt,
		); err != nil {
			return nil, err
		}
		user.Department = domain.Department(dept.String)
		user.ClearanceDepartment = domain.ClearanceDepartment(clearanceDept.String)
		users = append(users, user)
	}
	return users, rows.Err()
}

func (r *UserRepository) Update(ctx context.Context, user domain.User) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE users SET email = $2, full_name = $3, hashed_password = $4, role = $5,
		 department = $6, clearance_department = $7 WHERE id = $1`,
		user.ID, user.Email, user.FullName, user.HashedPassword, user.Role,
		nullable(string(user.Department)), nullable(string(user.ClearanceDepartment)),
	)
	return mapError(err)
}

func (r *UserRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM users WHERE id = $1", id)
	if err != nil {
		return mapError(err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
