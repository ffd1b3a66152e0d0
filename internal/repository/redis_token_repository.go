package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"storyweaver-server/internal/models"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Compile-time check
var _ TokenRepository = (*redisTokenRepository)(nil)

type redisTokenRepository struct {
	client *redis.Client
	logger *zap.Logger
}

// NewRedisTokenRepository creates a new Redis-backed TokenRepository.
func NewRedisTokenRepository(client *redis.Client, logger *zap.Logger) TokenRepository {
	return &redisTokenRepository{
		client: client,
		logger: logger.Named("RedisTokenRepo"),
	}
}

func accessKey(accessUUID string) string   { return fmt.Sprintf("access_uuid:%s", accessUUID) }
func refreshKey(refreshUUID string) string { return fmt.Sprintf("refresh_uuid:%s", refreshUUID) }

// SetToken stores two key-value pairs per session:
// access_uuid:{AccessUUID} -> UserID with the access token TTL, and
// refresh_uuid:{RefreshUUID} -> UserID with the refresh token TTL.
func (r *redisTokenRepository) SetToken(ctx context.Context, userID uuid.UUID, td *models.TokenDetails) error {
	now := time.Now()
	accessTTL := time.Unix(td.AtExpires, 0).Sub(now)
	refreshTTL := time.Unix(td.RtExpires, 0).Sub(now)
	userIDStr := userID.String()

	pipe := r.client.Pipeline()
	pipe.Set(ctx, accessKey(td.AccessUUID), userIDStr, accessTTL)
	pipe.Set(ctx, refreshKey(td.RefreshUUID), userIDStr, refreshTTL)

	if _, err := pipe.Exec(ctx); err != nil {
		r.logger.Error("Failed to store token details", zap.Error(err), zap.String("userID", userIDStr))
		return fmt.Errorf("failed to store token details: %w", err)
	}

	r.logger.Debug("Token details stored",
		zap.String("userID", userIDStr),
		zap.Duration("accessTTL", accessTTL),
		zap.Duration("refreshTTL", refreshTTL),
	)
	return nil
}

// GetUserIDByAccessUUID resolves an access token UUID to the user it belongs to.
func (r *redisTokenRepository) GetUserIDByAccessUUID(ctx context.Context, accessUUID string) (uuid.UUID, error) {
	return r.getUserID(ctx, accessKey(accessUUID))
}

// GetUserIDByRefreshUUID resolves a refresh token UUID to the user it belongs to.
func (r *redisTokenRepository) GetUserIDByRefreshUUID(ctx context.Context, refreshUUID string) (uuid.UUID, error) {
	return r.getUserID(ctx, refreshKey(refreshUUID))
}

func (r *redisTokenRepository) getUserID(ctx context.Context, key string) (uuid.UUID, error) {
	val, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return uuid.Nil, models.ErrTokenNotFound
		}
		r.logger.Error("Failed to look up token", zap.String("key", key), zap.Error(err))
		return uuid.Nil, fmt.Errorf("failed to look up token: %w", err)
	}

	userID, err := uuid.Parse(val)
	if err != nil {
		r.logger.Error("Stored token maps to a malformed user ID", zap.String("key", key), zap.Error(err))
		return uuid.Nil, fmt.Errorf("malformed user id in token store: %w", err)
	}
	return userID, nil
}

// DeleteTokens removes the given token UUIDs. Missing keys are not an error.
func (r *redisTokenRepository) DeleteTokens(ctx context.Context, userID uuid.UUID, accessUUID, refreshUUID string) (int64, error) {
	keys := make([]string, 0, 2)
	if accessUUID != "" {
		keys = append(keys, accessKey(accessUUID))
	}
	if refreshUUID != "" {
		keys = append(keys, refreshKey(refreshUUID))
	}
	if len(keys) == 0 {
		r.logger.Warn("DeleteTokens called with no UUIDs", zap.String("userID", userID.String()))
		return 0, nil
	}

	deleted, err := r.client.Del(ctx, keys...).Result()
	if err != nil {
		r.logger.Error("Failed to delete tokens", zap.String("userID", userID.String()), zap.Error(err))
		return 0, fmt.Errorf("failed to delete tokens: %w", err)
	}

	r.logger.Debug("Tokens deleted", zap.String("userID", userID.String()), zap.Int64("count", deleted))
	return deleted, nil
}
