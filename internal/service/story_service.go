package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"storyweaver-server/internal/messaging"
	"storyweaver-server/internal/models"
	"storyweaver-server/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// StoryService covers the story document lifecycle and its social surface.
type StoryService interface {
	// CreateStory persists a draft under the owner and returns it with its
	// assigned ID.
	CreateStory(ctx context.Context, ownerID uuid.UUID, story *models.Story) (*models.Story, error)

	// UpdateStory overwrites the story document. Last write wins.
	UpdateStory(ctx context.Context, storyID string, ownerID uuid.UUID, story *models.Story) (*models.Story, error)

	// GetStory returns the story populated with likes and comments. The
	// only failure for a well-formed id is ErrStoryNotFound.
	GetStory(ctx context.Context, storyID string, requesterID uuid.UUID) (*models.Story, error)

	// ListMyStories returns the requester's stories, newest first.
	ListMyStories(ctx context.Context, ownerID uuid.UUID) ([]models.Story, error)

	// Feed returns a page of public stories, newest first.
	Feed(ctx context.Context, page int) ([]models.Story, error)

	// ShareStory makes a story public and announces it.
	ShareStory(ctx context.Context, storyID string, ownerID uuid.UUID) (*models.Story, error)

	// DeleteStory removes an owned story.
	DeleteStory(ctx context.Context, storyID string, ownerID uuid.UUID) error

	// ToggleLike flips the caller's like on a story and returns the
	// canonical list of liker user IDs.
	ToggleLike(ctx context.Context, storyID string, userID uuid.UUID) ([]string, error)

	// AddComment appends a comment to a story and returns it with the
	// author populated.
	AddComment(ctx context.Context, storyID string, userID uuid.UUID, text string) (*models.Comment, error)
}

// Compile-time check
var _ StoryService = (*storyServiceImpl)(nil)

type storyServiceImpl struct {
	storyRepo   repository.StoryRepository
	likeRepo    repository.LikeRepository
	commentRepo repository.CommentRepository
	userRepo    repository.UserRepository
	publisher   messaging.StoryEventPublisher
	feedPage    int
	logger      *zap.Logger
}

// NewStoryService creates a new StoryService.
func NewStoryService(
	storyRepo repository.StoryRepository,
	likeRepo repository.LikeRepository,
	commentRepo repository.CommentRepository,
	userRepo repository.UserRepository,
	publisher messaging.StoryEventPublisher,
	feedPageSize int,
	logger *zap.Logger,
) StoryService {
	if feedPageSize <= 0 {
		feedPageSize = 20
	}
	return &storyServiceImpl{
		storyRepo:   storyRepo,
		likeRepo:    likeRepo,
		commentRepo: commentRepo,
		userRepo:    userRepo,
		publisher:   publisher,
		feedPage:    feedPageSize,
		logger:      logger.Named("StoryService"),
	}
}

func parseStoryID(storyID string) (uuid.UUID, error) {
	id, err := uuid.Parse(storyID)
	if err != nil {
		return uuid.Nil, models.ErrStoryNotFound
	}
	return id, nil
}

// CreateStory persists a new story document.
func (s *storyServiceImpl) CreateStory(ctx context.Context, ownerID uuid.UUID, story *models.Story) (*models.Story, error) {
	if story == nil {
		return nil, models.ErrInvalidInput
	}
	if story.Slides == nil {
		story.Slides = []models.Slide{}
	}
	if story.Tags == nil {
		story.Tags = []string{}
	}

	if _, err := s.storyRepo.Create(ctx, ownerID, story); err != nil {
		return nil, err
	}
	return s.populate(ctx, story, ownerID)
}

// UpdateStory overwrites a story document after an ownership check.
// Concurrent saves resolve last-write-wins.
func (s *storyServiceImpl) UpdateStory(ctx context.Context, storyID string, ownerID uuid.UUID, story *models.Story) (*models.Story, error) {
	id, err := parseStoryID(storyID)
	if err != nil {
		return nil, err
	}
	if story == nil {
		return nil, models.ErrInvalidInput
	}

	if err := s.storyRepo.Update(ctx, id, ownerID, story); err != nil {
		return nil, err
	}

	updated, err := s.storyRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.populate(ctx, updated, ownerID)
}

// GetStory returns a story with likes and comments populated.
func (s *storyServiceImpl) GetStory(ctx context.Context, storyID string, requesterID uuid.UUID) (*models.Story, error) {
	id, err := parseStoryID(storyID)
	if err != nil {
		return nil, err
	}

	story, err := s.storyRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.populate(ctx, story, requesterID)
}

// ListMyStories returns the requester's stories, newest first.
func (s *storyServiceImpl) ListMyStories(ctx context.Context, ownerID uuid.UUID) ([]models.Story, error) {
	stories, err := s.storyRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return s.populateAll(ctx, stories, ownerID)
}

// Feed returns a page of public stories. Pages are 1-based; anything below
// that reads as the first page.
func (s *storyServiceImpl) Feed(ctx context.Context, page int) ([]models.Story, error) {
	if page < 1 {
		page = 1
	}
	stories, err := s.storyRepo.ListPublic(ctx, s.feedPage, (page-1)*s.feedPage)
	if err != nil {
		return nil, err
	}
	return s.populateAll(ctx, stories, uuid.Nil)
}

// ShareStory makes a story public and publishes a story_shared event.
func (s *storyServiceImpl) ShareStory(ctx context.Context, storyID string, ownerID uuid.UUID) (*models.Story, error) {
	id, err := parseStoryID(storyID)
	if err != nil {
		return nil, err
	}

	if err := s.storyRepo.SetPublic(ctx, id, ownerID, true); err != nil {
		return nil, err
	}

	story, err := s.storyRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.publishEvent(ctx, messaging.StoryEventShared, story, ownerID, "")
	return s.populate(ctx, story, ownerID)
}

// DeleteStory removes an owned story.
func (s *storyServiceImpl) DeleteStory(ctx context.Context, storyID string, ownerID uuid.UUID) error {
	id, err := parseStoryID(storyID)
	if err != nil {
		return err
	}
	return s.storyRepo.Delete(ctx, id, ownerID)
}

// ToggleLike flips the caller's like and returns the canonical liker list.
// The returned list is the server's authoritative state; callers reconcile
// their optimistic view against it.
func (s *storyServiceImpl) ToggleLike(ctx context.Context, storyID string, userID uuid.UUID) ([]string, error) {
	id, err := parseStoryID(storyID)
	if err != nil {
		return nil, err
	}

	story, err := s.storyRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	liked, err := s.likeRepo.CheckLike(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	eventType := messaging.StoryEventLiked
	if liked {
		err = s.likeRepo.RemoveLike(ctx, userID, id)
		eventType = messaging.StoryEventUnliked
	} else {
		err = s.likeRepo.AddLike(ctx, userID, id)
	}
	if err != nil {
		return nil, err
	}

	likers, err := s.likeRepo.ListLikerIDs(ctx, id)
	if err != nil {
		return nil, err
	}

	s.publishEvent(ctx, eventType, story, userID, "")
	s.logger.Info("Like toggled",
		zap.String("storyID", storyID),
		zap.String("userID", userID.String()),
		zap.Bool("nowLiked", !liked),
		zap.Int("likeCount", len(likers)),
	)
	return likers, nil
}

// AddComment appends a comment to a story and announces it to the owner.
func (s *storyServiceImpl) AddComment(ctx context.Context, storyID string, userID uuid.UUID, text string) (*models.Comment, error) {
	id, err := parseStoryID(storyID)
	if err != nil {
		return nil, err
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, models.ErrInvalidInput
	}

	story, err := s.storyRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	comment, err := s.commentRepo.AddComment(ctx, id, userID, text)
	if err != nil {
		return nil, err
	}

	s.publishEvent(ctx, messaging.StoryEventCommented, story, userID, comment.ID)
	return comment, nil
}

// populate fills in the likes and comments arrays.
func (s *storyServiceImpl) populate(ctx context.Context, story *models.Story, _ uuid.UUID) (*models.Story, error) {
	id, err := parseStoryID(story.ID)
	if err != nil {
		return nil, err
	}

	likers, err := s.likeRepo.ListLikerIDs(ctx, id)
	if err != nil {
		return nil, err
	}
	comments, err := s.commentRepo.ListByStory(ctx, id)
	if err != nil {
		return nil, err
	}

	story.Likes = likers
	story.Comments = comments
	return story, nil
}

func (s *storyServiceImpl) populateAll(ctx context.Context, stories []models.Story, requesterID uuid.UUID) ([]models.Story, error) {
	for i := range stories {
		if _, err := s.populate(ctx, &stories[i], requesterID); err != nil {
			return nil, err
		}
	}
	return stories, nil
}

// publishEvent resolves the actor's username and fires the event. Publishing
// failures are logged but never fail the user-facing operation.
func (s *storyServiceImpl) publishEvent(ctx context.Context, eventType messaging.StoryEventType, story *models.Story, actorID uuid.UUID, commentID string) {
	if s.publisher == nil {
		return
	}

	actorName := ""
	actor, err := s.userRepo.GetUserByID(ctx, actorID)
	if err != nil {
		if !errors.Is(err, models.ErrUserNotFound) {
			s.logger.Warn("Failed to resolve event actor", zap.Error(err), zap.String("actorID", actorID.String()))
		}
	} else {
		actorName = actor.Username
	}

	event := messaging.StoryEvent{
		EventType:  eventType,
		StoryID:    story.ID,
		StoryTitle: story.TitlePage.Title,
		OwnerID:    story.Owner.ID,
		ActorID:    actorID.String(),
		Actor:      actorName,
		CommentID:  commentID,
		OccurredAt: time.Now().UTC(),
	}
	if err := s.publisher.PublishStoryEvent(ctx, event); err != nil {
		s.logger.Error("Failed to publish story event",
			zap.String("eventType", string(eventType)),
			zap.String("storyID", story.ID),
			zap.Error(fmt.Errorf("publish: %w", err)),
		)
	}
}
