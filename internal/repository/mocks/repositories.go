package mocks

import (
	"context"

	"storyweaver-server/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// Mock UserRepository
type UserRepository struct {
	mock.Mock
}

func (m *UserRepository) CreateUser(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}
func (m *UserRepository) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}
func (m *UserRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}
func (m *UserRepository) GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, id)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}
func (m *UserRepository) GetUsersByIDs(ctx context.Context, ids []uuid.UUID) ([]models.User, error) {
	args := m.Called(ctx, ids)
	users, _ := args.Get(0).([]models.User)
	return users, args.Error(1)
}
func (m *UserRepository) UpdateProfile(ctx context.Context, userID uuid.UUID, username, email string) error {
	args := m.Called(ctx, userID, username, email)
	return args.Error(0)
}

// Mock TokenRepository
type TokenRepository struct {
	mock.Mock
}

func (m *TokenRepository) SetToken(ctx context.Context, userID uuid.UUID, td *models.TokenDetails) error {
	args := m.Called(ctx, userID, td)
	return args.Error(0)
}
func (m *TokenRepository) GetUserIDByAccessUUID(ctx context.Context, accessUUID string) (uuid.UUID, error) {
	args := m.Called(ctx, accessUUID)
	id, _ := args.Get(0).(uuid.UUID)
	return id, args.Error(1)
}
func (m *TokenRepository) GetUserIDByRefreshUUID(ctx context.Context, refreshUUID string) (uuid.UUID, error) {
	args := m.Called(ctx, refreshUUID)
	id, _ := args.Get(0).(uuid.UUID)
	return id, args.Error(1)
}
func (m *TokenRepository) DeleteTokens(ctx context.Context, userID uuid.UUID, accessUUID, refreshUUID string) (int64, error) {
	args := m.Called(ctx, userID, accessUUID, refreshUUID)
	return args.Get(0).(int64), args.Error(1)
}

// Mock StoryRepository
type StoryRepository struct {
	mock.Mock
}

func (m *StoryRepository) Create(ctx context.Context, ownerID uuid.UUID, story *models.Story) (uuid.UUID, error) {
	args := m.Called(ctx, ownerID, story)
	id, _ := args.Get(0).(uuid.UUID)
	return id, args.Error(1)
}
func (m *StoryRepository) Update(ctx context.Context, storyID, ownerID uuid.UUID, story *models.Story) error {
	args := m.Called(ctx, storyID, ownerID, story)
	return args.Error(0)
}
func (m *StoryRepository) GetByID(ctx context.Context, storyID uuid.UUID) (*models.Story, error) {
	args := m.Called(ctx, storyID)
	story, _ := args.Get(0).(*models.Story)
	return story, args.Error(1)
}
func (m *StoryRepository) GetOwnerID(ctx context.Context, storyID uuid.UUID) (uuid.UUID, error) {
	args := m.Called(ctx, storyID)
	id, _ := args.Get(0).(uuid.UUID)
	return id, args.Error(1)
}
func (m *StoryRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Story, error) {
	args := m.Called(ctx, ownerID)
	stories, _ := args.Get(0).([]models.Story)
	return stories, args.Error(1)
}
func (m *StoryRepository) ListPublic(ctx context.Context, limit, offset int) ([]models.Story, error) {
	args := m.Called(ctx, limit, offset)
	stories, _ := args.Get(0).([]models.Story)
	return stories, args.Error(1)
}
func (m *StoryRepository) SetPublic(ctx context.Context, storyID, ownerID uuid.UUID, isPublic bool) error {
	args := m.Called(ctx, storyID, ownerID, isPublic)
	return args.Error(0)
}
func (m *StoryRepository) Delete(ctx context.Context, storyID, ownerID uuid.UUID) error {
	args := m.Called(ctx, storyID, ownerID)
	return args.Error(0)
}

// Mock LikeRepository
type LikeRepository struct {
	mock.Mock
}

func (m *LikeRepository) AddLike(ctx context.Context, userID, storyID uuid.UUID) error {
	args := m.Called(ctx, userID, storyID)
	return args.Error(0)
}
func (m *LikeRepository) RemoveLike(ctx context.Context, userID, storyID uuid.UUID) error {
	args := m.Called(ctx, userID, storyID)
	return args.Error(0)
}
func (m *LikeRepository) CheckLike(ctx context.Context, userID, storyID uuid.UUID) (bool, error) {
	args := m.Called(ctx, userID, storyID)
	return args.Bool(0), args.Error(1)
}
func (m *LikeRepository) ListLikerIDs(ctx context.Context, storyID uuid.UUID) ([]string, error) {
	args := m.Called(ctx, storyID)
	ids, _ := args.Get(0).([]string)
	return ids, args.Error(1)
}

// Mock CommentRepository
type CommentRepository struct {
	mock.Mock
}

func (m *CommentRepository) AddComment(ctx context.Context, storyID, userID uuid.UUID, text string) (*models.Comment, error) {
	args := m.Called(ctx, storyID, userID, text)
	comment, _ := args.Get(0).(*models.Comment)
	return comment, args.Error(1)
}
func (m *CommentRepository) ListByStory(ctx context.Context, storyID uuid.UUID) ([]models.Comment, error) {
	args := m.Called(ctx, storyID)
	comments, _ := args.Get(0).([]models.Comment)
	return comments, args.Error(1)
}

// Mock GroupRepository
type GroupRepository struct {
	mock.Mock
}

func (m *GroupRepository) CreateGroup(ctx context.Context, ownerID uuid.UUID, group *models.Group) (uuid.UUID, error) {
	args := m.Called(ctx, ownerID, group)
	id, _ := args.Get(0).(uuid.UUID)
	return id, args.Error(1)
}
func (m *GroupRepository) GetByID(ctx context.Context, groupID uuid.UUID) (*models.Group, error) {
	args := m.Called(ctx, groupID)
	group, _ := args.Get(0).(*models.Group)
	return group, args.Error(1)
}
func (m *GroupRepository) ListByMember(ctx context.Context, userID uuid.UUID) ([]models.Group, error) {
	args := m.Called(ctx, userID)
	groups, _ := args.Get(0).([]models.Group)
	return groups, args.Error(1)
}
func (m *GroupRepository) ListPublic(ctx context.Context, limit, offset int) ([]models.Group, error) {
	args := m.Called(ctx, limit, offset)
	groups, _ := args.Get(0).([]models.Group)
	return groups, args.Error(1)
}
func (m *GroupRepository) AddMember(ctx context.Context, groupID, userID uuid.UUID) error {
	args := m.Called(ctx, groupID, userID)
	return args.Error(0)
}
func (m *GroupRepository) IsMember(ctx context.Context, groupID, userID uuid.UUID) (bool, error) {
	args := m.Called(ctx, groupID, userID)
	return args.Bool(0), args.Error(1)
}
func (m *GroupRepository) AddStory(ctx context.Context, groupID, storyID uuid.UUID) error {
	args := m.Called(ctx, groupID, storyID)
	return args.Error(0)
}

// Mock FollowRepository
type FollowRepository struct {
	mock.Mock
}

func (m *FollowRepository) Follow(ctx context.Context, followerID, followeeID uuid.UUID) error {
	args := m.Called(ctx, followerID, followeeID)
	return args.Error(0)
}
func (m *FollowRepository) Unfollow(ctx context.Context, followerID, followeeID uuid.UUID) error {
	args := m.Called(ctx, followerID, followeeID)
	return args.Error(0)
}
func (m *FollowRepository) IsFollowing(ctx context.Context, followerID, followeeID uuid.UUID) (bool, error) {
	args := m.Called(ctx, followerID, followeeID)
	return args.Bool(0), args.Error(1)
}
func (m *FollowRepository) ListFollowerIDs(ctx context.Context, userID uuid.UUID) ([]string, error) {
	args := m.Called(ctx, userID)
	ids, _ := args.Get(0).([]string)
	return ids, args.Error(1)
}
func (m *FollowRepository) ListFollowingIDs(ctx context.Context, userID uuid.UUID) ([]string, error) {
	args := m.Called(ctx, userID)
	ids, _ := args.Get(0).([]string)
	return ids, args.Error(1)
}
