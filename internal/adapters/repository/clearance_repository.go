package repository

import (
	"context"
	"database/sql"

	"github.com/funaab-ict/clearance-service/internal/core/domain"
	"github.com/funaab-ict/clearance-service/internal/core/ports"
)

type ClearanceRepository struct {
	db *sql.DB
}

var _ ports.ClearanceRepository = (*ClearanceRepository)(nil)

func NewClearanceRepository(db *sql.DB) *ClearanceRepository {
	return &ClearanceRepository{db: db}
}

func (r *ClearanceRepository) GetStatus(ctx context.Context, studentID string, dept domain.ClearanceDepartment) (*domain.ClearanceStatus, error) {
	var status domain.ClearanceStatus
	var remarks sql.NullString
	err := r.db.QueryRowContext(ctx,
		"SELECT id, student_id, department, status, remarks FROM clearance_statuses WHERE student_id = $1 AND department = $2",
		studentID, dept,
	).Scan(&status.ID, &status.StudentID, &status.Department, &status.Status, &remarks)
	if err != nil {
		return nil, mapError(err)
	}
	status.Remarks = remarks.String
	return &status, nil
}

func (r *ClearanceRepository) ListByStudent(ctx context.Context, studentID string) ([]domain.ClearanceStatus, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, student_id, department, status, remarks FROM clearance_statuses WHERE student_id = $1 ORDER BY department",
		studentID,
	)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()
	return collectStatuses(rows)
}

// ListAll returns every status row keyed by student id.
func (r *ClearanceRepository) ListAll(ctx context.Context) (map[string][]domain.ClearanceStatus, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, student_id, department, status, remarks FROM clearance_statuses")
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	statuses, err := collectStatuses(rows)
	if err != nil {
		return nil, err
	}
	grouped := make(map[string][]domain.ClearanceStatus)
	for _, status := range statuses {
		grouped[status.StudentID] = append(grouped[status.StudentID], status)
	}
	return grouped, nil
}

// Save updates the status row and, when payload is non-nil, writes the
// matching outbox event in the same transaction.
func (r *ClearanceRepository) Save(ctx context.Context, status domain.ClearanceStatus, outboxPayload []byte) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx,
		"UPDATE clearance_statuses SET status = $2, remarks = $3 WHERE id = $1",
		status.ID, status.Status, nullable(status.Remarks),
	)
	if err != nil {
		return mapError(err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return domain.ErrNotFound
	}

	if outboxPayload != nil {
		if err := insertOutboxEvent(ctx, tx, ports.EventClearanceUpdated, outboxPayload); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func collectStatuses(rows *sql.Rows) ([]domain.ClearanceStatus, error) {
	var statuses []domain.ClearanceStatus
	for rows.Next() {
		var status domain.ClearanceStatus
		var remarks sql.NullString
		if err := rows.Scan(&status.ID, &status.StudentID, &status.Department, &status.Status, &remarks); err != nil {
			return nil, err
		}
		status.Remarks = remarks.String
		statuses = append(statuses, status)
	}
	return statuses, rows.Err()
}
