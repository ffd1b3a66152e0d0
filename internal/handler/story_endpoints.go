package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"storyweaver-server/internal/models"
)

// @Summary Create a story draft
// @Tags stories
// @Accept json
// @Produce json
// @Param request body createStoryRequest true "Story document"
// @Success 201 {object} models.Story
// @Failure 400 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /api/stories [post]
func (h *Handler) createStory(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return
	}

	var req createStoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, models.ErrorResponse{Code: models.ErrCodeBadRequest, Message: "Invalid request body: " + err.Error()})
		return
	}

	story, err := h.storyService.CreateStory(c.Request.Context(), userID, &models.Story{
		TitlePage: req.TitlePage,
		Slides:    req.Slides,
		Tags:      req.Tags,
	})
	if err != nil {
		handleServiceError(c, err)
		return
	}

	storiesCreatedTotal.Inc()
	c.JSON(http.StatusCreated, story)
}

// @Summary Overwrite a story document
// @Tags stories
// @Accept json
// @Produce json
// @Param id path string true "Story ID"
// @Param request body updateStoryRequest true "Story document"
// @Success 200 {object} models.Story
// @Failure 401 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /api/stories/{id} [put]
func (h *Handler) updateStory(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return
	}

	var req updateStoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, models.ErrorResponse{Code: models.ErrCodeBadRequest, Message: "Invalid request body: " + err.Error()})
		return
	}

	story, err := h.storyService.UpdateStory(c.Request.Context(), c.Param("id"), userID, &models.Story{
		TitlePage: req.TitlePage,
		Slides:    req.Slides,
		Tags:      req.Tags,
		IsPublic:  req.IsPublic,
	})
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, story)
}

// @Summary Fetch a story with likes and comments
// @Tags stories
// @Produce json
// @Param id path string true "Story ID"
// @Success 200 {object} models.Story
// @Failure 404 {object} models.ErrorResponse
// @Router /api/stories/{id} [get]
func (h *Handler) getStory(c *gin.Context) {
	story, err := h.storyService.GetStory(c.Request.Context(), c.Param("id"), optionalUserID(c))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, story)
}

// @Summary The caller's stories, newest first
// @Tags stories
// @Produce json
// @Success 200 {array} models.Story
// @Security BearerAuth
// @Router /api/stories/my-stories [get]
func (h *Handler) myStories(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return
	}

	stories, err := h.storyService.ListMyStories(c.Request.Context(), userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, stories)
}

// @Summary Page of public stories, newest first
// @Tags stories
// @Produce json
// @Param page query int false "Page number, 1-based"
// @Success 200 {array} models.Story
// @Router /api/stories/feed/public [get]
func (h *Handler) publicFeed(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))

	stories, err := h.storyService.Feed(c.Request.Context(), page)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, stories)
}

// @Summary Make a story public
// @Tags stories
// @Produce json
// @Param id path string true "Story ID"
// @Success 200 {object} models.Story
// @Failure 401 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /api/stories/{id}/share [post]
func (h *Handler) shareStory(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return
	}

	story, err := h.storyService.ShareStory(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	storiesSharedTotal.Inc()
	c.JSON(http.StatusOK, story)
}

// @Summary Delete an owned story
// @Tags stories
// @Param id path string true "Story ID"
// @Success 204
// @Failure 401 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /api/stories/{id} [delete]
func (h *Handler) deleteStory(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return
	}

	if err := h.storyService.DeleteStory(c.Request.Context(), c.Param("id"), userID); err != nil {
		handleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary Toggle the caller's like on a story
// @Tags stories
// @Produce json
// @Param id path string true "Story ID"
// @Success 200 {array} string
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /api/stories/{id}/like [post]
func (h *Handler) toggleLike(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return
	}

	likes, err := h.storyService.ToggleLike(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	likeTogglesTotal.Inc()
	c.JSON(http.StatusOK, likes)
}

// @Summary Comment on a story
// @Tags stories
// @Accept json
// @Produce json
// @Param id path string true "Story ID"
// @Param request body commentRequest true "Comment text"
// @Success 201 {object} models.Comment
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /api/stories/{id}/comment [post]
func (h *Handler) addComment(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return
	}

	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, models.ErrorResponse{Code: models.ErrCodeBadRequest, Message: "Invalid request body: " + err.Error()})
		return
	}

	comment, err := h.storyService.AddComment(c.Request.Context(), c.Param("id"), userID, req.Text)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	commentsTotal.Inc()
	c.JSON(http.StatusCreated, comment)
}
