package repository

import (
	"context"
	"database/sql"

	"github.com/funaab-ict/clearance-service/internal/core/domain"
	"github.com/funaab-ict/clearance-service/internal/core/ports"
)

type StudentRepository struct {
	db *sql.DB
}

var _ ports.StudentRepository = (*StudentRepository)(nil)

func NewStudentRepository(db *sql.DB) *StudentRepository {
	return &StudentRepository{db: db}
}

const studentColumns = "id, matric_no, full_name, email, department, created_at"

func scanStudent(row *sql.Row) (*domain.Student, error) {
	var student domain.Student
	err := row.Scan(
		&student.ID, &student.MatricNo, &student.FullName,
		&student.Email, &student.Department, &student.CreatedAt,
	)
	if err != nil {
		return nil, mapError(err)
	}
	return &student, nil
}

// Create inserts the student, the paired login user, the initial clearance
// status rows and the outbox event in a single transaction. A failure at any
// step rolls everything back.
func (r *StudentRepository) Create(ctx context.Context, student domain.Student, pairedUser domain.User, statuses []domain.ClearanceStatus, outboxPayload []byte) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		"INSERT INTO students ("+studentColumns+") VALUES ($1, $2, $3, $4, $5, $6)",
		student.ID, student.MatricNo, student.FullName, student.Email, student.Department, student.CreatedAt,
	); err != nil {
		return mapError(err)
	}

	if _, err := tx.ExecContext(ctx,
		"INSERT INTO users ("+userColumns+") VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)",
		pairedUser.ID, pairedUser.Username, pairedUser.Email, pairedUser.FullName,
		pairedUser.HashedPassword, pairedUser.Role,
		nullable(string(pairedUser.Department)), nullable(string(pairedUser.ClearanceDepartment)), pairedUser.CreatedAt,
	); err != nil {
		return mapError(err)
	}

	for _, status := range statuses {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO clearance_statuses (id, student_id, department, status, remarks) VALUES ($1, $2, $3, $4, $5)",
			status.ID, status.StudentID, status.Department, status.Status, nullable(status.Remarks),
		); err != nil {
			return mapError(err)
		}
	}

	if outboxPayload != nil {
		if err := insertOutboxEvent(ctx, tx, ports.EventStudentCreated, outboxPayload); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (r *StudentRepository) GetByID(ctx context.Context, id string) (*domain.Student, error) {
	return scanStudent(r.db.QueryRowContext(ctx,
		"SELECT "+studentColumns+" FROM students WHERE id = $1", id))
}

func (r *StudentRepository) GetByMatricNo(ctx context.Context, matricNo string) (*domain.Student, error) {
	return scanStudent(r.db.QueryRowContext(ctx,
		"SELECT "+studentColumns+" FROM students WHERE matric_no = $1", matricNo))
}

func (r *StudentRepository) GetByTagID(ctx context.Context, tagID string) (*domain.Student, error) {
	return scanStudent(r.db.QueryRowContext(ctx,
		"SELECT s.id, s.matric_no, s.full_name, s.email, s.department, s.created_at "+
			"FROM students s JOIN rfid_tags t ON t.student_id = s.id WHERE t.tag_id = $1", tagID))
}

func (r *StudentRepository) List(ctx context.Context, offset, limit int) ([]domain.Student, error) {
	query := "SELECT " + studentColumns + " FROM students ORDER BY created_at"
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

	var students []domain.Student
	for rows.Next() {
		var student domain.Student
		if err := rows.Scan(
			&student.ID, &student.MatricNo, &student.FullName,
			&student.Email, &student.Department, &student.CreatedAt,
		); err != nil {
			return nil, err
		}
		students = append(students, student)
	}
	return students, rows.Err()
}

func (r *StudentRepository) Update(ctx context.Context, student domain.Student) error {
	_, err := r.db.ExecContext(ctx,
		"UPDATE students SET full_name = $2, email = $3, department = $4 WHERE id = $1",
		student.ID, student.FullName, student.Email, student.Department,
	)
	return mapError(err)
}

// Delete removes the student and every dependent row: the paired user
// (matched by username = matric_no), any linked tag and all status rows.
func (r *StudentRepository) Delete(ctx context.Context, id string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var matricNo string
	if err := tx.QueryRowContext(ctx,
		"SELECT matric_no FROM students WHERE id = $1", id,
	).Scan(&matricNo); err != nil {
		return mapError(err)
	}

	for _, stmt := range []struct {
		query string
		arg   string
	}{
		{"DELETE FROM rfid_tags WHERE student_id = $1", id},
		{"DELETE FROM clearance_statuses WHERE student_id = $1", id},
		{"DELETE FROM users WHERE username = $1", matricNo},
		{"DELETE FROM students WHERE id = $1", id},
	} {
		if _, err := tx.ExecContext(ctx, stmt.query, stmt.arg); err != nil {
			return mapError(err)
		}
	}
	return tx.Commit()
}
