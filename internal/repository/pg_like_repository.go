package repository

import (
	"context"
	"errors"
	"fmt"

	"storyweaver-server/internal/models"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

const (
	addLikeQuery = `
		INSERT INTO story_likes (user_id, story_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id, story_id) DO NOTHING`
	removeLikeQuery = `DELETE FROM story_likes WHERE user_id = $1 AND story_id = $2`
	checkLikeQuery  = `SELECT EXISTS (SELECT 1 FROM story_likes WHERE user_id = $1 AND story_id = $2)`
	listLikersQuery = `
		SELECT user_id FROM story_likes WHERE story_id = $1 ORDER BY created_at`
)

// Compile-time check
var _ LikeRepository = (*pgLikeRepository)(nil)

type pgLikeRepository struct {
	db     DBTX
	logger *zap.Logger
}

// NewPgLikeRepository creates a new PostgreSQL-backed LikeRepository.
func NewPgLikeRepository(db DBTX, logger *zap.Logger) LikeRepository {
	return &pgLikeRepository{
		db:     db,
		logger: logger.Named("PgLikeRepo"),
	}
}

// AddLike records a like. Liking the same story twice is a no-op.
func (r *pgLikeRepository) AddLike(ctx context.Context, userID, storyID uuid.UUID) error {
	logFields := []zap.Field{
		zap.String("userID", userID.String()),
		zap.String("storyID", storyID.String()),
	}

	_, err := r.db.Exec(ctx, addLikeQuery, userID, storyID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" { // foreign_key_violation
			r.logger.Warn("Story not found for like", logFields...)
			return models.ErrStoryNotFound
		}
		r.logger.Error("Failed to add like", append(logFields, zap.Error(err))...)
		return fmt.Errorf("failed to add like: %w", err)
	}

	r.logger.Debug("Like recorded", logFields...)
	return nil
}

// RemoveLike removes a like. Removing an absent like is a no-op.
func (r *pgLikeRepository) RemoveLike(ctx context.Context, userID, storyID uuid.UUID) error {
	_, err := r.db.Exec(ctx, removeLikeQuery, userID, storyID)
	if err != nil {
		r.logger.Error("Failed to remove like",
			zap.String("userID", userID.String()),
			zap.String("storyID", storyID.String()),
			zap.Error(err),
		)
		return fmt.Errorf("failed to remove like: %w", err)
	}
	return nil
}

// CheckLike reports whether the user currently likes the story.
func (r *pgLikeRepository) CheckLike(ctx context.Context, userID, storyID uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, checkLikeQuery, userID, storyID).Scan(&exists)
	if err != nil {
		r.logger.Error("Failed to check like",
			zap.String("userID", userID.String()),
			zap.String("storyID", storyID.String()),
			zap.Error(err),
		)
		return false, fmt.Errorf("failed to check like: %w", err)
	}
	return exists, nil
}

// ListLikerIDs returns the IDs of everyone who likes the story, oldest like
// first.
func (r *pgLikeRepository) ListLikerIDs(ctx context.Context, storyID uuid.UUID) ([]string, error) {
	ids := make([]uuid.UUID, 0)
	if err := pgxscan.Select(ctx, r.db, &ids, listLikersQuery, storyID); err != nil {
		r.logger.Error("Failed to list likers", zap.String("storyID", storyID.String()), zap.Error(err))
		return nil, fmt.Errorf("failed to list likers: %w", err)
	}
	likers := make([]string, 0, len(ids))
	for _, id := range ids {
		likers = append(likers, id.String())
	}
	return likers, nil
}
