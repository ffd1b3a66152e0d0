// Package ai wraps the generative backend behind the three calls the
// authoring flow needs: character/cover images, image renditions, and short
// narrative text for a slide.
package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"storyweaver-server/internal/models"

	"github.com/rs/zerolog"
	"github.com/sashabaranov/go-openai"
)

var log = zerolog.New(zerolog.NewConsoleWriter()).With().Timestamp().Logger()

const (
	// imageStylePrefix matches the portrait style the asset library expects.
	imageStylePrefix = "A high-quality, vibrant, digital art style character portrait: "
	storyPromptTmpl  = `Write a short, engaging story opening (2-3 sentences) for a fantasy book based on this character or scene: %q`
)

// Client talks to the generation API. Failures are surfaced per-operation;
// callers keep prior state untouched on error.
type Client struct {
	client     *openai.Client
	textModel  string
	imageModel string
	timeout    time.Duration
	maxRetries int
}

// Config holds generation client settings.
type Config struct {
	APIKey     string
	BaseURL    string
	TextModel  string
	ImageModel string
	Timeout    int // seconds
	MaxRetries int
}

// New creates a generation client.
func New(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("generation API key is not set")
	}
	if cfg.TextModel == "" {
		cfg.TextModel = openai.GPT4oMini
	}
	if cfg.ImageModel == "" {
		cfg.ImageModel = openai.CreateImageModelDallE3
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 120
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = 3
	}

	config := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		config.BaseURL = cfg.BaseURL
	}

	return &Client{
		client:     openai.NewClientWithConfig(config),
		textModel:  cfg.TextModel,
		imageModel: cfg.ImageModel,
		timeout:    time.Duration(cfg.Timeout) * time.Second,
		maxRetries: cfg.MaxRetries,
	}, nil
}

// fullImagePrompt prepends the style prefix and the story's tags.
func fullImagePrompt(prompt string, tags []string) string {
	tagString := ""
	if len(tags) > 0 {
		tagString = strings.Join(tags, ", ") + ", "
	}
	return imageStylePrefix + tagString + prompt
}

// GenerateImage produces a single image for the prompt and returns it as a
// data URL.
func (c *Client) GenerateImage(ctx context.Context, prompt string, tags []string) (string, error) {
	urls, err := c.generateImages(ctx, prompt, 1, tags)
	if err != nil {
		return "", err
	}
	if len(urls) == 0 {
		return "", models.ErrEmptyGeneration
	}
	return urls[0], nil
}

// GenerateImageRenditions produces several candidate images for the same
// prompt. Renditions carry no identity until the user promotes one into the
// asset library.
func (c *Client) GenerateImageRenditions(ctx context.Context, prompt string, count int, tags []string) ([]models.Rendition, error) {
	if count <= 0 {
		count = 1
	}
	urls, err := c.generateImages(ctx, prompt, count, tags)
	if err != nil {
		return nil, err
	}
	renditions := make([]models.Rendition, 0, len(urls))
	for _, u := range urls {
		renditions = append(renditions, models.Rendition{Prompt: prompt, ImageURL: u})
	}
	return renditions, nil
}

func (c *Client) generateImages(ctx context.Context, prompt string, count int, tags []string) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req := openai.ImageRequest{
		Model:          c.imageModel,
		Prompt:         fullImagePrompt(prompt, tags),
		N:              count,
		Size:           openai.CreateImageSize1024x1024,
		ResponseFormat: openai.CreateImageResponseFormatB64JSON,
	}

	var lastErr error
	for attempt := 1; attempt <= c.maxRetries; attempt++ {
		resp, err := c.client.CreateImage(ctx, req)
		if err != nil {
			log.Warn().Err(err).Int("attempt", attempt).Msg("image generation attempt failed")
			lastErr = err
			continue
		}
		if len(resp.Data) == 0 {
			lastErr = models.ErrEmptyGeneration
			continue
		}
		urls := make([]string, 0, len(resp.Data))
		for _, d := range resp.Data {
			urls = append(urls, "data:image/png;base64,"+d.B64JSON)
		}
		return urls, nil
	}
	return nil, fmt.Errorf("image generation failed after %d attempts: %w", c.maxRetries, lastErr)
}

// GenerateStoryForImage writes a short story opening for the given image
// prompt.
func (c *Client) GenerateStoryForImage(ctx context.Context, imagePrompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req := openai.ChatCompletionRequest{
		Model: c.textModel,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: fmt.Sprintf(storyPromptTmpl, imagePrompt),
			},
		},
		Temperature: 0.8,
		TopP:        0.95,
		MaxTokens:   300,
	}

	var lastErr error
	for attempt := 1; attempt <= c.maxRetries; attempt++ {
		resp, err := c.client.CreateChatCompletion(ctx, req)
		if err != nil {
			log.Warn().Err(err).Int("attempt", attempt).Msg("story generation attempt failed")
			lastErr = err
			continue
		}
		if len(resp.Choices) == 0 {
			lastErr = models.ErrEmptyGeneration
			continue
		}
		return strings.TrimSpace(resp.Choices[0].Message.Content), nil
	}
	return "", fmt.Errorf("story generation failed after %d attempts: %w", c.maxRetries, lastErr)
}
