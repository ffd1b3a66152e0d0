package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"storyweaver-server/internal/models"
)

// @Summary Create a reading group
// @Tags groups
// @Accept json
// @Produce json
// @Param request body createGroupRequest true "Group data"
// @Success 201 {object} models.Group
// @Failure 400 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /api/groups [post]
func (h *Handler) createGroup(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return
	}

	var req createGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, models.ErrorResponse{Code: models.ErrCodeBadRequest, Message: "Invalid request body: " + err.Error()})
		return
	}

	group, err := h.groupService.CreateGroup(c.Request.Context(), userID, req.Name, req.Description, req.IsPrivate)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, group)
}

// @Summary Groups the caller belongs to
// @Tags groups
// @Produce json
// @Success 200 {array} models.Group
// @Security BearerAuth
// @Router /api/groups/my-groups [get]
func (h *Handler) myGroups(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return
	}

	groups, err := h.groupService.MyGroups(c.Request.Context(), userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, groups)
}

// @Summary Page of joinable public groups
// @Tags groups
// @Produce json
// @Param page query int false "Page number, 1-based"
// @Success 200 {array} models.Group
// @Router /api/groups/public [get]
func (h *Handler) publicGroups(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))

	groups, err := h.groupService.PublicGroups(c.Request.Context(), page)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, groups)
}

// @Summary Join a public group
// @Tags groups
// @Produce json
// @Param id path string true "Group ID"
// @Success 200 {object} models.Group
// @Failure 400 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /api/groups/{id}/join [post]
func (h *Handler) joinGroup(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return
	}

	group, err := h.groupService.JoinGroup(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, group)
}

// @Summary Share an owned story into a group
// @Tags groups
// @Produce json
// @Param id path string true "Group ID"
// @Param storyId path string true "Story ID"
// @Success 200 {object} models.Group
// @Failure 401 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /api/groups/{id}/share/{storyId} [post]
func (h *Handler) shareStoryToGroup(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return
	}

	group, err := h.groupService.ShareStoryToGroup(c.Request.Context(), c.Param("id"), c.Param("storyId"), userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, group)
}
