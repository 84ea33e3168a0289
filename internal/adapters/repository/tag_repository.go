package repository

import (
	"context"
	"database/sql"

	"github.com/funaab-ict/clearance-service/internal/core/domain"
	"github.com/funaab-ict/clearance-service/internal/core/ports"
)

type TagRepository struct {
	db *sql.DB
}

var _ ports.TagRepository = (*TagRepository)(nil)

func NewTagRepository(db *sql.DB) *TagRepository {
	return &TagRepository{db: db}
}

func scanTag(row *sql.Row) (*domain.RFIDTag, error) {
	var tag domain.RFIDTag
	var studentID, userID sql.NullString
	if err := row.Scan(&tag.TagID, &studentID, &userID); err != nil {
		return nil, mapError(err)
	}
	tag.StudentID = studentID.String
	tag.UserID = userID.String
	return &tag, nil
}

func (r *TagRepository) Get(ctx context.Context, tagID string) (*domain.RFIDTag, error) {
	return scanTag(r.db.QueryRowContext(ctx,
		"SELECT tag_id, student_id, user_id FROM rfid_tags WHERE tag_id = $1", tagID))
}

func (r *TagRepository) GetByStudentID(ctx context.Context, studentID string) (*domain.RFIDTag, error) {
	return scanTag(r.db.QueryRowContext(ctx,
		"SELECT tag_id, student_id, user_id FROM rfid_tags WHERE student_id = $1", studentID))
}

// Create relies on unique indexes over student_id and user_id to enforce the
// one-tag-per-person rule.
func (r *TagRepository) Create(ctx context.Context, tag domain.RFIDTag) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO rfid_tags (tag_id, student_id, user_id) VALUES ($1, $2, $3)",
		tag.TagID, nullable(tag.StudentID), nullable(tag.UserID),
	)
	return mapError(err)
}

func (r *TagRepository) Delete(ctx context.Context, tagID string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM rfid_tags WHERE tag_id = $1", tagID)
	if err != nil {
		return mapError(err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
