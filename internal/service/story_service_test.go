package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"storyweaver-server/internal/messaging"
	messagingMocks "storyweaver-server/internal/messaging/mocks"
	"storyweaver-server/internal/models"
	"storyweaver-server/internal/repository/mocks"
	"storyweaver-server/internal/service"
)

type storyServiceMocks struct {
	storyRepo   *mocks.StoryRepository
	likeRepo    *mocks.LikeRepository
	commentRepo *mocks.CommentRepository
	userRepo    *mocks.UserRepository
	publisher   *messagingMocks.StoryEventPublisher
}

func newStoryService(t *testing.T) (service.StoryService, *storyServiceMocks) {
	t.Helper()
	m := &storyServiceMocks{
		storyRepo:   new(mocks.StoryRepository),
		likeRepo:    new(mocks.LikeRepository),
		commentRepo: new(mocks.CommentRepository),
		userRepo:    new(mocks.UserRepository),
		publisher:   new(messagingMocks.StoryEventPublisher),
	}
	svc := service.NewStoryService(m.storyRepo, m.likeRepo, m.commentRepo, m.userRepo, m.publisher, 20, zap.NewNop())
	return svc, m
}

func publicStory(id, ownerID uuid.UUID) *models.Story {
	return &models.Story{
		ID: id.String(),
		Owner: &models.UserRef{
			ID:       ownerID.String(),
			Username: "author",
		},
		TitlePage: models.TitlePage{Title: "The Clockwork Garden"},
		Slides:    []models.Slide{},
		Tags:      []string{"steampunk"},
		IsPublic:  true,
	}
}

func TestCreateStory(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New()
	storyID := uuid.New()

	svc, m := newStoryService(t)

	m.storyRepo.On("Create", ctx, ownerID, mock.AnythingOfType("*models.Story")).
		Run(func(args mock.Arguments) {
			story := args.Get(2).(*models.Story)
			story.ID = storyID.String()
			story.Owner = &models.UserRef{ID: ownerID.String(), Username: "author"}
		}).
		Return(storyID, nil).Once()
	m.likeRepo.On("ListLikerIDs", ctx, storyID).Return([]string{}, nil).Once()
	m.commentRepo.On("ListByStory", ctx, storyID).Return([]models.Comment{}, nil).Once()

	created, err := svc.CreateStory(ctx, ownerID, &models.Story{
		TitlePage: models.TitlePage{Title: "The Clockwork Garden"},
	})
	require.NoError(t, err)
	assert.Equal(t, storyID.String(), created.ID)
	assert.False(t, created.IsPublic)
	assert.NotNil(t, created.Slides, "nil slides must be normalized to an empty list")
	assert.NotNil(t, created.Tags, "nil tags must be normalized to an empty list")
	assert.Empty(t, created.Likes)
	m.storyRepo.AssertExpectations(t)
}

func TestGetStory(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New()
	storyID := uuid.New()

	t.Run("Private story is served to any requester", func(t *testing.T) {
		svc, m := newStoryService(t)
		story := publicStory(storyID, ownerID)
		story.IsPublic = false
		m.storyRepo.On("GetByID", ctx, storyID).Return(story, nil).Once()
		m.likeRepo.On("ListLikerIDs", ctx, storyID).Return([]string{}, nil).Once()
		m.commentRepo.On("ListByStory", ctx, storyID).Return([]models.Comment{}, nil).Once()

		got, err := svc.GetStory(ctx, storyID.String(), uuid.New())
		require.NoError(t, err)
		assert.Equal(t, storyID.String(), got.ID)
		assert.False(t, got.IsPublic)
	})

	t.Run("Malformed ID is a not-found", func(t *testing.T) {
		svc, _ := newStoryService(t)
		got, err := svc.GetStory(ctx, "not-a-uuid", ownerID)
		assert.Nil(t, got)
		assert.ErrorIs(t, err, models.ErrStoryNotFound)
	})
}

func TestFeedPagination(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New()

	newest := publicStory(uuid.New(), ownerID)
	older := publicStory(uuid.New(), ownerID)

	expectPopulate := func(m *storyServiceMocks, stories ...*models.Story) {
		for _, st := range stories {
			id := uuid.MustParse(st.ID)
			m.likeRepo.On("ListLikerIDs", ctx, id).Return([]string{}, nil).Once()
			m.commentRepo.On("ListByStory", ctx, id).Return([]models.Comment{}, nil).Once()
		}
	}

	t.Run("First page reads from offset zero", func(t *testing.T) {
		svc, m := newStoryService(t)
		m.storyRepo.On("ListPublic", ctx, 20, 0).Return([]models.Story{*newest, *older}, nil).Once()
		expectPopulate(m, newest, older)

		stories, err := svc.Feed(ctx, 1)
		require.NoError(t, err)
		require.Len(t, stories, 2)
		assert.Equal(t, newest.ID, stories[0].ID, "repository order preserved, newest first")
		assert.Equal(t, older.ID, stories[1].ID)
		m.storyRepo.AssertExpectations(t)
	})

	t.Run("Later pages advance by whole pages", func(t *testing.T) {
		svc, m := newStoryService(t)
		m.storyRepo.On("ListPublic", ctx, 20, 40).Return([]models.Story{}, nil).Once()

		stories, err := svc.Feed(ctx, 3)
		require.NoError(t, err)
		assert.Empty(t, stories)
		m.storyRepo.AssertExpectations(t)
	})

	t.Run("Zero and negative pages clamp to the first", func(t *testing.T) {
		svc, m := newStoryService(t)
		m.storyRepo.On("ListPublic", ctx, 20, 0).Return([]models.Story{}, nil).Twice()

		_, err := svc.Feed(ctx, 0)
		require.NoError(t, err)
		_, err = svc.Feed(ctx, -2)
		require.NoError(t, err)
		m.storyRepo.AssertExpectations(t)
	})
}

func TestToggleLike(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New()
	likerID := uuid.New()
	storyID := uuid.New()

	t.Run("First toggle adds the like and publishes story_liked", func(t *testing.T) {
		svc, m := newStoryService(t)
		m.storyRepo.On("GetByID", ctx, storyID).Return(publicStory(storyID, ownerID), nil).Once()
		m.likeRepo.On("CheckLike", ctx, likerID, storyID).Return(false, nil).Once()
		m.likeRepo.On("AddLike", ctx, likerID, storyID).Return(nil).Once()
		m.likeRepo.On("ListLikerIDs", ctx, storyID).Return([]string{likerID.String()}, nil).Once()
		m.userRepo.On("GetUserByID", ctx, likerID).Return(&models.User{ID: likerID, Username: "reader"}, nil).Once()
		m.publisher.On("PublishStoryEvent", mock.Anything, mock.MatchedBy(func(e messaging.StoryEvent) bool {
			assert.Equal(t, messaging.StoryEventLiked, e.EventType)
			assert.Equal(t, storyID.String(), e.StoryID)
			assert.Equal(t, ownerID.String(), e.OwnerID)
			assert.Equal(t, likerID.String(), e.ActorID)
			assert.Equal(t, "reader", e.Actor)
			return true
		})).Return(nil).Once()

		likers, err := svc.ToggleLike(ctx, storyID.String(), likerID)
		require.NoError(t, err)
		assert.Equal(t, []string{likerID.String()}, likers)
		m.likeRepo.AssertExpectations(t)
		m.publisher.AssertExpectations(t)
	})

	t.Run("Second toggle removes the like and publishes story_unliked", func(t *testing.T) {
		svc, m := newStoryService(t)
		m.storyRepo.On("GetByID", ctx, storyID).Return(publicStory(storyID, ownerID), nil).Once()
		m.likeRepo.On("CheckLike", ctx, likerID, storyID).Return(true, nil).Once()
		m.likeRepo.On("RemoveLike", ctx, likerID, storyID).Return(nil).Once()
		m.likeRepo.On("ListLikerIDs", ctx, storyID).Return([]string{}, nil).Once()
		m.userRepo.On("GetUserByID", ctx, likerID).Return(&models.User{ID: likerID, Username: "reader"}, nil).Once()
		m.publisher.On("PublishStoryEvent", mock.Anything, mock.MatchedBy(func(e messaging.StoryEvent) bool {
			return e.EventType == messaging.StoryEventUnliked
		})).Return(nil).Once()

		likers, err := svc.ToggleLike(ctx, storyID.String(), likerID)
		require.NoError(t, err)
		assert.Empty(t, likers)
		m.likeRepo.AssertExpectations(t)
	})

	t.Run("Private stories take likes too", func(t *testing.T) {
		svc, m := newStoryService(t)
		story := publicStory(storyID, ownerID)
		story.IsPublic = false
		m.storyRepo.On("GetByID", ctx, storyID).Return(story, nil).Once()
		m.likeRepo.On("CheckLike", ctx, likerID, storyID).Return(false, nil).Once()
		m.likeRepo.On("AddLike", ctx, likerID, storyID).Return(nil).Once()
		m.likeRepo.On("ListLikerIDs", ctx, storyID).Return([]string{likerID.String()}, nil).Once()
		m.userRepo.On("GetUserByID", ctx, likerID).Return(&models.User{ID: likerID, Username: "reader"}, nil).Once()
		m.publisher.On("PublishStoryEvent", mock.Anything, mock.Anything).Return(nil).Once()

		likers, err := svc.ToggleLike(ctx, storyID.String(), likerID)
		require.NoError(t, err)
		assert.Equal(t, []string{likerID.String()}, likers)
		m.likeRepo.AssertExpectations(t)
	})
}

func TestAddComment(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New()
	authorID := uuid.New()
	storyID := uuid.New()

	t.Run("Comment on public story is persisted and announced", func(t *testing.T) {
		svc, m := newStoryService(t)
		persisted := &models.Comment{
			ID:     uuid.New().String(),
			Author: models.UserRef{ID: authorID.String(), Username: "reader"},
			Text:   "Loved the garden reveal!",
		}

		m.storyRepo.On("GetByID", ctx, storyID).Return(publicStory(storyID, ownerID), nil).Once()
		m.commentRepo.On("AddComment", ctx, storyID, authorID, "Loved the garden reveal!").Return(persisted, nil).Once()
		m.userRepo.On("GetUserByID", ctx, authorID).Return(&models.User{ID: authorID, Username: "reader"}, nil).Once()
		m.publisher.On("PublishStoryEvent", mock.Anything, mock.MatchedBy(func(e messaging.StoryEvent) bool {
			return e.EventType == messaging.StoryEventCommented && e.CommentID == persisted.ID
		})).Return(nil).Once()

		comment, err := svc.AddComment(ctx, storyID.String(), authorID, "  Loved the garden reveal!  ")
		require.NoError(t, err)
		assert.Equal(t, persisted.ID, comment.ID)
		assert.Equal(t, "reader", comment.Author.Username)
		m.commentRepo.AssertExpectations(t)
	})

	t.Run("Blank comment rejected before any call", func(t *testing.T) {
		svc, m := newStoryService(t)
		comment, err := svc.AddComment(ctx, storyID.String(), authorID, "   ")
		assert.Nil(t, comment)
		assert.ErrorIs(t, err, models.ErrInvalidInput)
		m.commentRepo.AssertNotCalled(t, "AddComment", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestShareStory(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New()
	storyID := uuid.New()

	svc, m := newStoryService(t)
	story := publicStory(storyID, ownerID)

	m.storyRepo.On("SetPublic", ctx, storyID, ownerID, true).Return(nil).Once()
	m.storyRepo.On("GetByID", ctx, storyID).Return(story, nil).Once()
	m.userRepo.On("GetUserByID", ctx, ownerID).Return(&models.User{ID: ownerID, Username: "author"}, nil).Once()
	m.publisher.On("PublishStoryEvent", mock.Anything, mock.MatchedBy(func(e messaging.StoryEvent) bool {
		return e.EventType == messaging.StoryEventShared && e.StoryID == storyID.String()
	})).Return(nil).Once()
	m.likeRepo.On("ListLikerIDs", ctx, storyID).Return([]string{}, nil).Once()
	m.commentRepo.On("ListByStory", ctx, storyID).Return([]models.Comment{}, nil).Once()

	shared, err := svc.ShareStory(ctx, storyID.String(), ownerID)
	require.NoError(t, err)
	assert.True(t, shared.IsPublic)
	m.storyRepo.AssertExpectations(t)
	m.publisher.AssertExpectations(t)
}

func TestShareStoryNotOwner(t *testing.T) {
	ctx := context.Background()
	storyID := uuid.New()

	svc, m := newStoryService(t)
	m.storyRepo.On("SetPublic", ctx, storyID, mock.Anything, true).Return(models.ErrNotOwner).Once()

	shared, err := svc.ShareStory(ctx, storyID.String(), uuid.New())
	assert.Nil(t, shared)
	assert.ErrorIs(t, err, models.ErrNotOwner)
}
