package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"storyweaver-server/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

const (
	insertStoryQuery = `
		INSERT INTO stories (owner_id, title_page, slides, tags, is_public)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`

	updateStoryQuery = `
		UPDATE stories
		SET title_page = $3, slides = $4, tags = $5, is_public = $6, updated_at = NOW()
		WHERE id = $1 AND owner_id = $2`

	selectStoryQuery = `
		SELECT s.id, s.owner_id, u.username, s.title_page, s.slides, s.tags, s.is_public, s.created_at
		FROM stories s
		JOIN users u ON u.id = s.owner_id`

	setStoryPublicQuery = `UPDATE stories SET is_public = $3, updated_at = NOW() WHERE id = $1 AND owner_id = $2`
	deleteStoryQuery    = `DELETE FROM stories WHERE id = $1 AND owner_id = $2`
	storyOwnerQuery     = `SELECT owner_id FROM stories WHERE id = $1`
)

// Compile-time check
var _ StoryRepository = (*pgStoryRepository)(nil)

type pgStoryRepository struct {
	db     DBTX
	logger *zap.Logger
}

// NewPgStoryRepository creates a new PostgreSQL-backed StoryRepository.
func NewPgStoryRepository(db DBTX, logger *zap.Logger) StoryRepository {
	return &pgStoryRepository{
		db:     db,
		logger: logger.Named("PgStoryRepo"),
	}
}

// Create inserts a new story document for the owner.
func (r *pgStoryRepository) Create(ctx context.Context, ownerID uuid.UUID, story *models.Story) (uuid.UUID, error) {
	titlePage, slides, err := marshalStoryDoc(story)
	if err != nil {
		return uuid.Nil, err
	}

	var id uuid.UUID
	err = r.db.QueryRow(ctx, insertStoryQuery, ownerID, titlePage, slides, story.Tags, story.IsPublic).
		Scan(&id, &story.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" { // foreign_key_violation
			return uuid.Nil, models.ErrUserNotFound
		}
		r.logger.Error("Failed to insert story", zap.String("ownerID", ownerID.String()), zap.Error(err))
		return uuid.Nil, fmt.Errorf("failed to insert story: %w", err)
	}

	story.ID = id.String()
	r.logger.Info("Story created", zap.String("storyID", story.ID), zap.String("ownerID", ownerID.String()))
	return id, nil
}

// Update overwrites the story document after an ownership check.
func (r *pgStoryRepository) Update(ctx context.Context, storyID, ownerID uuid.UUID, story *models.Story) error {
	titlePage, slides, err := marshalStoryDoc(story)
	if err != nil {
		return err
	}

	tag, err := r.db.Exec(ctx, updateStoryQuery, storyID, ownerID, titlePage, slides, story.Tags, story.IsPublic)
	if err != nil {
		r.logger.Error("Failed to update story", zap.String("storyID", storyID.String()), zap.Error(err))
		return fmt.Errorf("failed to update story: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return r.notFoundOrNotOwner(ctx, storyID)
	}
	return nil
}

// GetByID returns a story with its owner reference populated.
func (r *pgStoryRepository) GetByID(ctx context.Context, storyID uuid.UUID) (*models.Story, error) {
	row := r.db.QueryRow(ctx, selectStoryQuery+` WHERE s.id = $1`, storyID)
	story, err := scanStory(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrStoryNotFound
		}
		r.logger.Error("Failed to get story", zap.String("storyID", storyID.String()), zap.Error(err))
		return nil, fmt.Errorf("failed to get story: %w", err)
	}
	return story, nil
}

// GetOwnerID returns the owner of a story.
func (r *pgStoryRepository) GetOwnerID(ctx context.Context, storyID uuid.UUID) (uuid.UUID, error) {
	var ownerID uuid.UUID
	err := r.db.QueryRow(ctx, storyOwnerQuery, storyID).Scan(&ownerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return uuid.Nil, models.ErrStoryNotFound
		}
		r.logger.Error("Failed to get story owner", zap.String("storyID", storyID.String()), zap.Error(err))
		return uuid.Nil, fmt.Errorf("failed to get story owner: %w", err)
	}
	return ownerID, nil
}

// ListByOwner returns the owner's stories, newest first.
func (r *pgStoryRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Story, error) {
	rows, err := r.db.Query(ctx, selectStoryQuery+` WHERE s.owner_id = $1 ORDER BY s.created_at DESC`, ownerID)
	if err != nil {
		r.logger.Error("Failed to list stories by owner", zap.String("ownerID", ownerID.String()), zap.Error(err))
		return nil, fmt.Errorf("failed to list stories: %w", err)
	}
	defer rows.Close()
	return collectStories(rows)
}

// ListPublic returns public stories, newest first.
func (r *pgStoryRepository) ListPublic(ctx context.Context, limit, offset int) ([]models.Story, error) {
	rows, err := r.db.Query(ctx, selectStoryQuery+` WHERE s.is_public ORDER BY s.created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		r.logger.Error("Failed to list public stories", zap.Error(err))
		return nil, fmt.Errorf("failed to list public stories: %w", err)
	}
	defer rows.Close()
	return collectStories(rows)
}

// SetPublic flips a story's sharing flag after an ownership check.
func (r *pgStoryRepository) SetPublic(ctx context.Context, storyID, ownerID uuid.UUID, isPublic bool) error {
	tag, err := r.db.Exec(ctx, setStoryPublicQuery, storyID, ownerID, isPublic)
	if err != nil {
		r.logger.Error("Failed to set story visibility", zap.String("storyID", storyID.String()), zap.Error(err))
		return fmt.Errorf("failed to set story visibility: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return r.notFoundOrNotOwner(ctx, storyID)
	}
	r.logger.Info("Story visibility changed", zap.String("storyID", storyID.String()), zap.Bool("isPublic", isPublic))
	return nil
}

// Delete removes a story after an ownership check.
func (r *pgStoryRepository) Delete(ctx context.Context, storyID, ownerID uuid.UUID) error {
	tag, err := r.db.Exec(ctx, deleteStoryQuery, storyID, ownerID)
	if err != nil {
		r.logger.Error("Failed to delete story", zap.String("storyID", storyID.String()), zap.Error(err))
		return fmt.Errorf("failed to delete story: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return r.notFoundOrNotOwner(ctx, storyID)
	}
	r.logger.Info("Story deleted", zap.String("storyID", storyID.String()))
	return nil
}

// notFoundOrNotOwner distinguishes a missing story from a foreign one after a
// zero-row owner-scoped write.
func (r *pgStoryRepository) notFoundOrNotOwner(ctx context.Context, storyID uuid.UUID) error {
	if _, err := r.GetOwnerID(ctx, storyID); err != nil {
		return err
	}
	return models.ErrNotOwner
}

func marshalStoryDoc(story *models.Story) (titlePage, slides []byte, err error) {
	titlePage, err = json.Marshal(story.TitlePage)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to marshal title page: %w", err)
	}
	slides, err = json.Marshal(story.Slides)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to marshal slides: %w", err)
	}
	return titlePage, slides, nil
}

func scanStory(row pgx.Row) (*models.Story, error) {
	var (
		id        uuid.UUID
		ownerID   uuid.UUID
		owner     models.UserRef
		titlePage []byte
		slides    []byte
		story     models.Story
	)
	err := row.Scan(&id, &ownerID, &owner.Username, &titlePage, &slides, &story.Tags, &story.IsPublic, &story.CreatedAt)
	if err != nil {
		return nil, err
	}
	story.ID = id.String()
	owner.ID = ownerID.String()
	story.Owner = &owner
	if err := json.Unmarshal(titlePage, &story.TitlePage); err != nil {
		return nil, fmt.Errorf("failed to unmarshal title page: %w", err)
	}
	if err := json.Unmarshal(slides, &story.Slides); err != nil {
		return nil, fmt.Errorf("failed to unmarshal slides: %w", err)
	}
	if story.Slides == nil {
		story.Slides = []models.Slide{}
	}
	return &story, nil
}

func collectStories(rows pgx.Rows) ([]models.Story, error) {
	stories := make([]models.Story, 0)
	for rows.Next() {
		story, err := scanStory(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan story row: %w", err)
		}
		stories = append(stories, *story)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate story rows: %w", err)
	}
	return stories, nil
}
