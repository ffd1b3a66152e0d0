package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"storyweaver-server/internal/models"
)

// @Summary Current user's profile
// @Tags users
// @Produce json
// @Success 200 {object} models.Profile
// @Failure 401 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /api/users/me [get]
func (h *Handler) getMe(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return
	}

	profile, err := h.userService.Me(c.Request.Context(), userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

// @Summary Public profile of a user
// @Tags users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} models.Profile
// @Failure 404 {object} models.ErrorResponse
// @Router /api/users/{id} [get]
func (h *Handler) getProfile(c *gin.Context) {
	profile, err := h.userService.Profile(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

// @Summary Update username and email
// @Tags users
// @Accept json
// @Produce json
// @Param request body updateProfileRequest true "New profile data"
// @Success 200 {object} models.Profile
// @Failure 409 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /api/users/profile [put]
func (h *Handler) updateProfile(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return
	}

	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, models.ErrorResponse{Code: models.ErrCodeBadRequest, Message: "Invalid request body: " + err.Error()})
		return
	}

	if len(req.Username) < minUsernameLength || len(req.Username) > maxUsernameLength || !usernameRegex.MatchString(req.Username) {
		c.AbortWithStatusJSON(http.StatusBadRequest, models.ErrorResponse{Code: models.ErrCodeBadRequest, Message: "Invalid username"})
		return
	}

	profile, err := h.userService.UpdateProfile(c.Request.Context(), userID, req.Username, req.Email)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	zap.L().Info("Profile updated", zap.String("userID", userID.String()), zap.String("username", profile.Username))
	c.JSON(http.StatusOK, profile)
}

// @Summary Toggle following a user
// @Tags users
// @Produce json
// @Param id path string true "Target user ID"
// @Success 200 {object} followResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /api/users/{id}/follow [post]
func (h *Handler) toggleFollow(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return
	}

	following, err := h.userService.ToggleFollow(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, followResponse{Following: following})
}
