package service

import (
	"context"
	"strings"

	"storyweaver-server/internal/models"

	"go.uber.org/zap"
)

// ImageGenerator is the generation backend surface GenerationService needs.
type ImageGenerator interface {
	GenerateImage(ctx context.Context, prompt string, tags []string) (string, error)
	GenerateImageRenditions(ctx context.Context, prompt string, count int, tags []string) ([]models.Rendition, error)
	GenerateStoryForImage(ctx context.Context, imagePrompt string) (string, error)
}

// GenerationService validates generation requests and delegates to the
// backend.
type GenerationService interface {
	// GenerateImage produces one image for the prompt, styled with the
	// story's tags.
	GenerateImage(ctx context.Context, prompt string, tags []string) (string, error)

	// GenerateRenditions produces several candidate images for one prompt.
	GenerateRenditions(ctx context.Context, prompt string, count int, tags []string) ([]models.Rendition, error)

	// GenerateStoryText writes a short story opening for a slide based on its
	// image prompt.
	GenerateStoryText(ctx context.Context, imagePrompt string) (string, error)
}

// Compile-time check
var _ GenerationService = (*generationServiceImpl)(nil)

const maxRenditions = 4

type generationServiceImpl struct {
	generator ImageGenerator
	logger    *zap.Logger
}

// NewGenerationService creates a new GenerationService.
func NewGenerationService(generator ImageGenerator, logger *zap.Logger) GenerationService {
	return &generationServiceImpl{
		generator: generator,
		logger:    logger.Named("GenerationService"),
	}
}

// GenerateImage produces one image for the prompt.
func (s *generationServiceImpl) GenerateImage(ctx context.Context, prompt string, tags []string) (string, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return "", models.ErrInvalidInput
	}

	url, err := s.generator.GenerateImage(ctx, prompt, tags)
	if err != nil {
		s.logger.Error("Image generation failed", zap.Error(err))
		return "", models.ErrGenerationFailed
	}
	return url, nil
}

// GenerateRenditions produces up to maxRenditions candidate images.
func (s *generationServiceImpl) GenerateRenditions(ctx context.Context, prompt string, count int, tags []string) ([]models.Rendition, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return nil, models.ErrInvalidInput
	}
	if count <= 0 {
		count = 1
	}
	if count > maxRenditions {
		count = maxRenditions
	}

	renditions, err := s.generator.GenerateImageRenditions(ctx, prompt, count, tags)
	if err != nil {
		s.logger.Error("Rendition generation failed", zap.Error(err), zap.Int("count", count))
		return nil, models.ErrGenerationFailed
	}
	return renditions, nil
}

// GenerateStoryText writes a short slide opening from the image prompt.
func (s *generationServiceImpl) GenerateStoryText(ctx context.Context, imagePrompt string) (string, error) {
	imagePrompt = strings.TrimSpace(imagePrompt)
	if imagePrompt == "" {
		return "", models.ErrInvalidInput
	}

	text, err := s.generator.GenerateStoryForImage(ctx, imagePrompt)
	if err != nil {
		s.logger.Error("Story text generation failed", zap.Error(err))
		return "", models.ErrGenerationFailed
	}
	if text == "" {
		return "", models.ErrEmptyGeneration
	}
	return text, nil
}
