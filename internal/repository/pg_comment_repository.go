package repository

import (
	"context"
	"errors"
	"fmt"

	"storyweaver-server/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

const (
	addCommentQuery = `
		WITH inserted AS (
			INSERT INTO comments (story_id, user_id, text)
			VALUES ($1, $2, $3)
			RETURNING id, user_id, text, created_at
		)
		SELECT i.id, i.user_id, u.username, i.text, i.created_at
		FROM inserted i
		JOIN users u ON u.id = i.user_id`

	listCommentsQuery = `
		SELECT c.id, c.user_id, u.username, c.text, c.created_at
		FROM comments c
		JOIN users u ON u.id = c.user_id
		WHERE c.story_id = $1
		ORDER BY c.created_at DESC`
)

// Compile-time check
var _ CommentRepository = (*pgCommentRepository)(nil)

type pgCommentRepository struct {
	db     DBTX
	logger *zap.Logger
}

// NewPgCommentRepository creates a new PostgreSQL-backed CommentRepository.
func NewPgCommentRepository(db DBTX, logger *zap.Logger) CommentRepository {
	return &pgCommentRepository{
		db:     db,
		logger: logger.Named("PgCommentRepo"),
	}
}

// AddComment inserts a comment and returns it with the author populated.
func (r *pgCommentRepository) AddComment(ctx context.Context, storyID, userID uuid.UUID, text string) (*models.Comment, error) {
	logFields := []zap.Field{
		zap.String("storyID", storyID.String()),
		zap.String("userID", userID.String()),
	}

	comment, err := scanComment(r.db.QueryRow(ctx, addCommentQuery, storyID, userID, text))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" { // foreign_key_violation
			r.logger.Warn("Story not found for comment", logFields...)
			return nil, models.ErrStoryNotFound
		}
		r.logger.Error("Failed to add comment", append(logFields, zap.Error(err))...)
		return nil, fmt.Errorf("failed to add comment: %w", err)
	}

	r.logger.Info("Comment added", append(logFields, zap.String("commentID", comment.ID))...)
	return comment, nil
}

// ListByStory returns the story's comments, newest first.
func (r *pgCommentRepository) ListByStory(ctx context.Context, storyID uuid.UUID) ([]models.Comment, error) {
	rows, err := r.db.Query(ctx, listCommentsQuery, storyID)
	if err != nil {
		r.logger.Error("Failed to list comments", zap.String("storyID", storyID.String()), zap.Error(err))
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	defer rows.Close()

	comments := make([]models.Comment, 0)
	for rows.Next() {
		comment, err := scanComment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan comment row: %w", err)
		}
		comments = append(comments, *comment)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate comment rows: %w", err)
	}
	return comments, nil
}

func scanComment(row interface{ Scan(dest ...any) error }) (*models.Comment, error) {
	var (
		id       uuid.UUID
		authorID uuid.UUID
		comment  models.Comment
	)
	err := row.Scan(&id, &authorID, &comment.Author.Username, &comment.Text, &comment.CreatedAt)
	if err != nil {
		return nil, err
	}
	comment.ID = id.String()
	comment.Author.ID = authorID.String()
	return &comment, nil
}
