package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"storyweaver-server/internal/models"
	"storyweaver-server/internal/repository/mocks"
	"storyweaver-server/internal/service"
)

func newGroupService(t *testing.T) (service.GroupService, *mocks.GroupRepository, *mocks.StoryRepository) {
	t.Helper()
	groupRepo := new(mocks.GroupRepository)
	storyRepo := new(mocks.StoryRepository)
	return service.NewGroupService(groupRepo, storyRepo, 20, zap.NewNop()), groupRepo, storyRepo
}

func TestPublicGroupsPagination(t *testing.T) {
	ctx := context.Background()

	t.Run("First page reads from offset zero", func(t *testing.T) {
		svc, groupRepo, _ := newGroupService(t)
		listed := []models.Group{{ID: uuid.NewString(), Name: "Night Writers"}}
		groupRepo.On("ListPublic", ctx, 20, 0).Return(listed, nil).Once()

		groups, err := svc.PublicGroups(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, listed, groups)
		groupRepo.AssertExpectations(t)
	})

	t.Run("Later pages advance by whole pages", func(t *testing.T) {
		svc, groupRepo, _ := newGroupService(t)
		groupRepo.On("ListPublic", ctx, 20, 20).Return([]models.Group{}, nil).Once()

		_, err := svc.PublicGroups(ctx, 2)
		require.NoError(t, err)
		groupRepo.AssertExpectations(t)
	})

	t.Run("Zero page clamps to the first", func(t *testing.T) {
		svc, groupRepo, _ := newGroupService(t)
		groupRepo.On("ListPublic", ctx, 20, 0).Return([]models.Group{}, nil).Once()

		_, err := svc.PublicGroups(ctx, 0)
		require.NoError(t, err)
		groupRepo.AssertExpectations(t)
	})
}

func TestCreateGroup(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New()
	groupID := uuid.New()

	t.Run("Creator becomes first member", func(t *testing.T) {
		svc, groupRepo, _ := newGroupService(t)

		created := &models.Group{
			ID:      groupID.String(),
			Name:    "Night Writers",
			Owner:   models.UserRef{ID: ownerID.String(), Username: "alice"},
			Members: []string{ownerID.String()},
			Stories: []string{},
		}
		groupRepo.On("CreateGroup", ctx, ownerID, mock.MatchedBy(func(g *models.Group) bool {
			assert.Equal(t, "Night Writers", g.Name)
			assert.False(t, g.IsPrivate)
			return true
		})).Return(groupID, nil).Once()
		groupRepo.On("GetByID", ctx, groupID).Return(created, nil).Once()

		group, err := svc.CreateGroup(ctx, ownerID, "  Night Writers  ", "", false)
		require.NoError(t, err)
		assert.Equal(t, []string{ownerID.String()}, group.Members)
		groupRepo.AssertExpectations(t)
	})

	t.Run("Blank name rejected", func(t *testing.T) {
		svc, _, _ := newGroupService(t)
		group, err := svc.CreateGroup(ctx, ownerID, "   ", "", false)
		assert.Nil(t, group)
		assert.ErrorIs(t, err, models.ErrInvalidInput)
	})
}

func TestJoinGroup(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	groupID := uuid.New()

	t.Run("Join public group", func(t *testing.T) {
		svc, groupRepo, _ := newGroupService(t)
		open := &models.Group{ID: groupID.String(), Name: "Open Circle", Members: []string{}}
		joined := &models.Group{ID: groupID.String(), Name: "Open Circle", Members: []string{userID.String()}}

		groupRepo.On("GetByID", ctx, groupID).Return(open, nil).Once()
		groupRepo.On("AddMember", ctx, groupID, userID).Return(nil).Once()
		groupRepo.On("GetByID", ctx, groupID).Return(joined, nil).Once()

		group, err := svc.JoinGroup(ctx, groupID.String(), userID)
		require.NoError(t, err)
		assert.Contains(t, group.Members, userID.String())
		groupRepo.AssertExpectations(t)
	})

	t.Run("Private group rejects public join", func(t *testing.T) {
		svc, groupRepo, _ := newGroupService(t)
		private := &models.Group{ID: groupID.String(), Name: "Secret Society", IsPrivate: true}

		groupRepo.On("GetByID", ctx, groupID).Return(private, nil).Once()

		group, err := svc.JoinGroup(ctx, groupID.String(), userID)
		assert.Nil(t, group)
		assert.ErrorIs(t, err, models.ErrGroupPrivate)
		groupRepo.AssertNotCalled(t, "AddMember", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Duplicate join surfaces already-member", func(t *testing.T) {
		svc, groupRepo, _ := newGroupService(t)
		open := &models.Group{ID: groupID.String(), Name: "Open Circle"}

		groupRepo.On("GetByID", ctx, groupID).Return(open, nil).Once()
		groupRepo.On("AddMember", ctx, groupID, userID).Return(models.ErrAlreadyMember).Once()

		group, err := svc.JoinGroup(ctx, groupID.String(), userID)
		assert.Nil(t, group)
		assert.ErrorIs(t, err, models.ErrAlreadyMember)
	})
}

func TestShareStoryToGroup(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	groupID := uuid.New()
	storyID := uuid.New()

	t.Run("Member shares own story", func(t *testing.T) {
		svc, groupRepo, storyRepo := newGroupService(t)
		result := &models.Group{ID: groupID.String(), Stories: []string{storyID.String()}}

		groupRepo.On("IsMember", ctx, groupID, userID).Return(true, nil).Once()
		storyRepo.On("GetOwnerID", ctx, storyID).Return(userID, nil).Once()
		groupRepo.On("AddStory", ctx, groupID, storyID).Return(nil).Once()
		groupRepo.On("GetByID", ctx, groupID).Return(result, nil).Once()

		group, err := svc.ShareStoryToGroup(ctx, groupID.String(), storyID.String(), userID)
		require.NoError(t, err)
		assert.Contains(t, group.Stories, storyID.String())
		groupRepo.AssertExpectations(t)
	})

	t.Run("Non-member cannot share", func(t *testing.T) {
		svc, groupRepo, _ := newGroupService(t)
		groupRepo.On("IsMember", ctx, groupID, userID).Return(false, nil).Once()

		group, err := svc.ShareStoryToGroup(ctx, groupID.String(), storyID.String(), userID)
		assert.Nil(t, group)
		assert.ErrorIs(t, err, models.ErrNotGroupMember)
	})

	t.Run("Member cannot share someone else's story", func(t *testing.T) {
		svc, groupRepo, storyRepo := newGroupService(t)
		groupRepo.On("IsMember", ctx, groupID, userID).Return(true, nil).Once()
		storyRepo.On("GetOwnerID", ctx, storyID).Return(uuid.New(), nil).Once()

		group, err := svc.ShareStoryToGroup(ctx, groupID.String(), storyID.String(), userID)
		assert.Nil(t, group)
		assert.ErrorIs(t, err, models.ErrNotOwner)
		groupRepo.AssertNotCalled(t, "AddStory", mock.Anything, mock.Anything, mock.Anything)
	})
}
