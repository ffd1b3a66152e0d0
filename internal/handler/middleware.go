package handler

import (
	"errors"
	"net/http"
	"strings"

	"storyweaver-server/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AuthMiddleware verifies the Bearer access token and stores the caller's
// identity in the request context.
func (h *Handler) AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			zap.L().Warn("Authorization header missing")
			tokenVerificationsTotal.WithLabelValues("access", "failure").Inc()
			handleServiceError(c, models.ErrTokenInvalid)
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			zap.L().Warn("Invalid Authorization header format", zap.String("header", authHeader))
			tokenVerificationsTotal.WithLabelValues("access", "failure").Inc()
			handleServiceError(c, models.ErrTokenInvalid)
			return
		}

		claims, err := h.authService.VerifyAccessToken(c.Request.Context(), parts[1])
		if err != nil {
			zap.L().Warn("Access token verification failed", zap.Error(err))
			tokenVerificationsTotal.WithLabelValues("access", "failure").Inc()
			handleServiceError(c, err)
			return
		}

		tokenVerificationsTotal.WithLabelValues("access", "success").Inc()
		c.Set("user_id", claims.UserID)
		c.Set("access_uuid", claims.ID)
		c.Next()
	}
}

// OptionalAuthMiddleware stores the caller's identity when a valid Bearer
// token is present and lets anonymous requests pass through untouched.
func (h *Handler) OptionalAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Next()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			c.Next()
			return
		}

		claims, err := h.authService.VerifyAccessToken(c.Request.Context(), parts[1])
		if err != nil {
			c.Next()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("access_uuid", claims.ID)
		c.Next()
	}
}

// getUserIDFromContext extracts the authenticated user ID set by
// AuthMiddleware. It aborts the request itself on failure.
func getUserIDFromContext(c *gin.Context) (uuid.UUID, error) {
	raw, exists := c.Get("user_id")
	if !exists {
		zap.L().Error("User ID missing in request context")
		c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse{Code: models.ErrCodeTokenInvalid, Message: "Authentication required"})
		return uuid.Nil, errors.New("user_id missing in context")
	}
	userID, ok := raw.(uuid.UUID)
	if !ok || userID == uuid.Nil {
		zap.L().Error("Invalid user ID in request context", zap.Any("user_id_raw", raw))
		c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse{Code: models.ErrCodeTokenInvalid, Message: "Authentication required"})
		return uuid.Nil, errors.New("invalid user_id in context")
	}
	return userID, nil
}

// optionalUserID returns the caller's ID when authenticated, uuid.Nil
// otherwise. It never aborts.
func optionalUserID(c *gin.Context) uuid.UUID {
	raw, exists := c.Get("user_id")
	if !exists {
		return uuid.Nil
	}
	userID, ok := raw.(uuid.UUID)
	if !ok {
		return uuid.Nil
	}
	return userID
}
