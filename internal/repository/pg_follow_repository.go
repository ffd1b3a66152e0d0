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
	followQuery = `
		INSERT INTO user_follows (follower_id, followee_id)
		VALUES ($1, $2)
		ON CONFLICT (follower_id, followee_id) DO NOTHING`
	unfollowQuery    = `DELETE FROM user_follows WHERE follower_id = $1 AND followee_id = $2`
	isFollowingQuery = `SELECT EXISTS (SELECT 1 FROM user_follows WHERE follower_id = $1 AND followee_id = $2)`
	followersQuery   = `
		SELECT follower_id FROM user_follows WHERE followee_id = $1 ORDER BY created_at`
	followingQuery = `
		SELECT followee_id FROM user_follows WHERE follower_id = $1 ORDER BY created_at`
)

// Compile-time check
var _ FollowRepository = (*pgFollowRepository)(nil)

type pgFollowRepository struct {
	db     DBTX
	logger *zap.Logger
}

// NewPgFollowRepository creates a new PostgreSQL-backed FollowRepository.
func NewPgFollowRepository(db DBTX, logger *zap.Logger) FollowRepository {
	return &pgFollowRepository{
		db:     db,
		logger: logger.Named("PgFollowRepo"),
	}
}

// Follow records a follow edge. Following twice is a no-op.
func (r *pgFollowRepository) Follow(ctx context.Context, followerID, followeeID uuid.UUID) error {
	logFields := []zap.Field{
		zap.String("followerID", followerID.String()),
		zap.String("followeeID", followeeID.String()),
	}

	_, err := r.db.Exec(ctx, followQuery, followerID, followeeID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" { // foreign_key_violation
			r.logger.Warn("Followee not found", logFields...)
			return models.ErrUserNotFound
		}
		r.logger.Error("Failed to record follow", append(logFields, zap.Error(err))...)
		return fmt.Errorf("failed to record follow: %w", err)
	}

	r.logger.Debug("Follow recorded", logFields...)
	return nil
}

// Unfollow removes a follow edge. Removing an absent edge is a no-op.
func (r *pgFollowRepository) Unfollow(ctx context.Context, followerID, followeeID uuid.UUID) error {
	_, err := r.db.Exec(ctx, unfollowQuery, followerID, followeeID)
	if err != nil {
		r.logger.Error("Failed to remove follow",
			zap.String("followerID", followerID.String()),
			zap.String("followeeID", followeeID.String()),
			zap.Error(err),
		)
		return fmt.Errorf("failed to remove follow: %w", err)
	}
	return nil
}

// IsFollowing reports whether follower currently follows followee.
func (r *pgFollowRepository) IsFollowing(ctx context.Context, followerID, followeeID uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, isFollowingQuery, followerID, followeeID).Scan(&exists)
	if err != nil {
		r.logger.Error("Failed to check follow",
			zap.String("followerID", followerID.String()),
			zap.String("followeeID", followeeID.String()),
			zap.Error(err),
		)
		return false, fmt.Errorf("failed to check follow: %w", err)
	}
	return exists, nil
}

// ListFollowerIDs returns the IDs of the user's followers.
func (r *pgFollowRepository) ListFollowerIDs(ctx context.Context, userID uuid.UUID) ([]string, error) {
	return r.listIDs(ctx, followersQuery, userID)
}

// ListFollowingIDs returns the IDs of the users this user follows.
func (r *pgFollowRepository) ListFollowingIDs(ctx context.Context, userID uuid.UUID) ([]string, error) {
	return r.listIDs(ctx, followingQuery, userID)
}

func (r *pgFollowRepository) listIDs(ctx context.Context, query string, userID uuid.UUID) ([]string, error) {
	ids := make([]uuid.UUID, 0)
	if err := pgxscan.Select(ctx, r.db, &ids, query, userID); err != nil {
		r.logger.Error("Failed to list follow edges", zap.String("userID", userID.String()), zap.Error(err))
		return nil, fmt.Errorf("failed to list follow edges: %w", err)
	}
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, id.String())
	}
	return out, nil
}
