package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"storyweaver-server/internal/models"
	"storyweaver-server/internal/service"
)

type mockImageGenerator struct {
	mock.Mock
}

func (m *mockImageGenerator) GenerateImage(ctx context.Context, prompt string, tags []string) (string, error) {
	args := m.Called(ctx, prompt, tags)
	return args.String(0), args.Error(1)
}

func (m *mockImageGenerator) GenerateImageRenditions(ctx context.Context, prompt string, count int, tags []string) ([]models.Rendition, error) {
	args := m.Called(ctx, prompt, count, tags)
	renditions, _ := args.Get(0).([]models.Rendition)
	return renditions, args.Error(1)
}

func (m *mockImageGenerator) GenerateStoryForImage(ctx context.Context, imagePrompt string) (string, error) {
	args := m.Called(ctx, imagePrompt)
	return args.String(0), args.Error(1)
}

func TestGenerateImage(t *testing.T) {
	ctx := context.Background()

	t.Run("Successful generation", func(t *testing.T) {
		gen := new(mockImageGenerator)
		svc := service.NewGenerationService(gen, zap.NewNop())

		gen.On("GenerateImage", ctx, "a clockwork fox", []string{"steampunk"}).
			Return("data:image/png;base64,abc", nil).Once()

		url, err := svc.GenerateImage(ctx, "  a clockwork fox  ", []string{"steampunk"})
		require.NoError(t, err)
		assert.Equal(t, "data:image/png;base64,abc", url)
		gen.AssertExpectations(t)
	})

	t.Run("Empty prompt rejected before any call", func(t *testing.T) {
		gen := new(mockImageGenerator)
		svc := service.NewGenerationService(gen, zap.NewNop())

		url, err := svc.GenerateImage(ctx, "   ", nil)
		assert.Empty(t, url)
		assert.ErrorIs(t, err, models.ErrInvalidInput)
		gen.AssertNotCalled(t, "GenerateImage", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Backend failure wrapped", func(t *testing.T) {
		gen := new(mockImageGenerator)
		svc := service.NewGenerationService(gen, zap.NewNop())

		gen.On("GenerateImage", ctx, "a fox", mock.Anything).
			Return("", errors.New("upstream timeout")).Once()

		url, err := svc.GenerateImage(ctx, "a fox", nil)
		assert.Empty(t, url)
		assert.ErrorIs(t, err, models.ErrGenerationFailed)
	})
}

func TestGenerateRenditionsClampsCount(t *testing.T) {
	ctx := context.Background()

	t.Run("Count above the cap is clamped", func(t *testing.T) {
		gen := new(mockImageGenerator)
		svc := service.NewGenerationService(gen, zap.NewNop())

		gen.On("GenerateImageRenditions", ctx, "a fox", 4, mock.Anything).
			Return(make([]models.Rendition, 4), nil).Once()

		renditions, err := svc.GenerateRenditions(ctx, "a fox", 99, nil)
		require.NoError(t, err)
		assert.Len(t, renditions, 4)
		gen.AssertExpectations(t)
	})

	t.Run("Zero count defaults to one", func(t *testing.T) {
		gen := new(mockImageGenerator)
		svc := service.NewGenerationService(gen, zap.NewNop())

		gen.On("GenerateImageRenditions", ctx, "a fox", 1, mock.Anything).
			Return(make([]models.Rendition, 1), nil).Once()

		renditions, err := svc.GenerateRenditions(ctx, "a fox", 0, nil)
		require.NoError(t, err)
		assert.Len(t, renditions, 1)
	})
}

func TestGenerateStoryText(t *testing.T) {
	ctx := context.Background()

	t.Run("Successful generation", func(t *testing.T) {
		gen := new(mockImageGenerator)
		svc := service.NewGenerationService(gen, zap.NewNop())

		gen.On("GenerateStoryForImage", ctx, "a clockwork fox").
			Return("The fox ticked softly as it crossed the garden.", nil).Once()

		text, err := svc.GenerateStoryText(ctx, "a clockwork fox")
		require.NoError(t, err)
		assert.NotEmpty(t, text)
	})

	t.Run("Empty completion surfaces as empty-generation", func(t *testing.T) {
		gen := new(mockImageGenerator)
		svc := service.NewGenerationService(gen, zap.NewNop())

		gen.On("GenerateStoryForImage", ctx, "a fox").Return("", nil).Once()

		text, err := svc.GenerateStoryText(ctx, "a fox")
		assert.Empty(t, text)
		assert.ErrorIs(t, err, models.ErrEmptyGeneration)
	})
}
