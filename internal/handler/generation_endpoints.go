package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storyweaver-server/internal/models"
)

// @Summary Generate one image for a prompt
// @Tags generate
// @Accept json
// @Produce json
// @Param request body generateImageRequest true "Prompt and story tags"
// @Success 200 {object} generateImageResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /api/generate/image [post]
func (h *Handler) generateImage(c *gin.Context) {
	var req generateImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, models.ErrorResponse{Code: models.ErrCodeBadRequest, Message: "Invalid request body: " + err.Error()})
		return
	}

	imageURL, err := h.generationService.GenerateImage(c.Request.Context(), req.Prompt, req.Tags)
	if err != nil {
		generationsTotal.WithLabelValues("image", "failure").Inc()
		handleServiceError(c, err)
		return
	}

	generationsTotal.WithLabelValues("image", "success").Inc()
	c.JSON(http.StatusOK, generateImageResponse{ImageURL: imageURL})
}

// @Summary Generate several candidate images for one prompt
// @Tags generate
// @Accept json
// @Produce json
// @Param request body generateRenditionsRequest true "Prompt, count and story tags"
// @Success 200 {array} models.Rendition
// @Failure 400 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /api/generate/renditions [post]
func (h *Handler) generateRenditions(c *gin.Context) {
	var req generateRenditionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, models.ErrorResponse{Code: models.ErrCodeBadRequest, Message: "Invalid request body: " + err.Error()})
		return
	}

	renditions, err := h.generationService.GenerateRenditions(c.Request.Context(), req.Prompt, req.Count, req.Tags)
	if err != nil {
		generationsTotal.WithLabelValues("renditions", "failure").Inc()
		handleServiceError(c, err)
		return
	}

	generationsTotal.WithLabelValues("renditions", "success").Inc()
	c.JSON(http.StatusOK, renditions)
}

// @Summary Write a short story opening for a slide image
// @Tags generate
// @Accept json
// @Produce json
// @Param request body generateStoryRequest true "Image prompt of the slide"
// @Success 200 {object} generateStoryResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /api/generate/story [post]
func (h *Handler) generateStoryText(c *gin.Context) {
	var req generateStoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, models.ErrorResponse{Code: models.ErrCodeBadRequest, Message: "Invalid request body: " + err.Error()})
		return
	}

	text, err := h.generationService.GenerateStoryText(c.Request.Context(), req.Prompt)
	if err != nil {
		generationsTotal.WithLabelValues("story", "failure").Inc()
		handleServiceError(c, err)
		return
	}

	generationsTotal.WithLabelValues("story", "success").Inc()
	c.JSON(http.StatusOK, generateStoryResponse{Text: text})
}
