package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"storyweaver-server/internal/models"
)

// Mock AuthService
type AuthService struct {
	mock.Mock
}

func (m *AuthService) Register(ctx context.Context, username, email, password string) (*models.User, error) {
	args := m.Called(ctx, username, email, password)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}
func (m *AuthService) Login(ctx context.Context, email, password string) (*models.TokenDetails, error) {
	args := m.Called(ctx, email, password)
	td, _ := args.Get(0).(*models.TokenDetails)
	return td, args.Error(1)
}
func (m *AuthService) Logout(ctx context.Context, accessUUID, refreshUUID string) error {
	args := m.Called(ctx, accessUUID, refreshUUID)
	return args.Error(0)
}
func (m *AuthService) Refresh(ctx context.Context, refreshToken string) (*models.TokenDetails, error) {
	args := m.Called(ctx, refreshToken)
	td, _ := args.Get(0).(*models.TokenDetails)
	return td, args.Error(1)
}
func (m *AuthService) VerifyAccessToken(ctx context.Context, tokenString string) (*models.Claims, error) {
	args := m.Called(ctx, tokenString)
	claims, _ := args.Get(0).(*models.Claims)
	return claims, args.Error(1)
}

// Mock UserService
type UserService struct {
	mock.Mock
}

func (m *UserService) Profile(ctx context.Context, userID string) (*models.Profile, error) {
	args := m.Called(ctx, userID)
	profile, _ := args.Get(0).(*models.Profile)
	return profile, args.Error(1)
}
func (m *UserService) Me(ctx context.Context, userID uuid.UUID) (*models.Profile, error) {
	args := m.Called(ctx, userID)
	profile, _ := args.Get(0).(*models.Profile)
	return profile, args.Error(1)
}
func (m *UserService) UpdateProfile(ctx context.Context, userID uuid.UUID, username, email string) (*models.Profile, error) {
	args := m.Called(ctx, userID, username, email)
	profile, _ := args.Get(0).(*models.Profile)
	return profile, args.Error(1)
}
func (m *UserService) ToggleFollow(ctx context.Context, followerID uuid.UUID, targetID string) ([]string, error) {
	args := m.Called(ctx, followerID, targetID)
	following, _ := args.Get(0).([]string)
	return following, args.Error(1)
}

// Mock StoryService
type StoryService struct {
	mock.Mock
}

func (m *StoryService) CreateStory(ctx context.Context, ownerID uuid.UUID, story *models.Story) (*models.Story, error) {
	args := m.Called(ctx, ownerID, story)
	result, _ := args.Get(0).(*models.Story)
	return result, args.Error(1)
}
func (m *StoryService) UpdateStory(ctx context.Context, storyID string, ownerID uuid.UUID, story *models.Story) (*models.Story, error) {
	args := m.Called(ctx, storyID, ownerID, story)
	result, _ := args.Get(0).(*models.Story)
	return result, args.Error(1)
}
func (m *StoryService) GetStory(ctx context.Context, storyID string, requesterID uuid.UUID) (*models.Story, error) {
	args := m.Called(ctx, storyID, requesterID)
	result, _ := args.Get(0).(*models.Story)
	return result, args.Error(1)
}
func (m *StoryService) ListMyStories(ctx context.Context, ownerID uuid.UUID) ([]models.Story, error) {
	args := m.Called(ctx, ownerID)
	stories, _ := args.Get(0).([]models.Story)
	return stories, args.Error(1)
}
func (m *StoryService) Feed(ctx context.Context, page int) ([]models.Story, error) {
	args := m.Called(ctx, page)
	stories, _ := args.Get(0).([]models.Story)
	return stories, args.Error(1)
}
func (m *StoryService) ShareStory(ctx context.Context, storyID string, ownerID uuid.UUID) (*models.Story, error) {
	args := m.Called(ctx, storyID, ownerID)
	result, _ := args.Get(0).(*models.Story)
	return result, args.Error(1)
}
func (m *StoryService) DeleteStory(ctx context.Context, storyID string, ownerID uuid.UUID) error {
	args := m.Called(ctx, storyID, ownerID)
	return args.Error(0)
}
func (m *StoryService) ToggleLike(ctx context.Context, storyID string, userID uuid.UUID) ([]string, error) {
	args := m.Called(ctx, storyID, userID)
	likes, _ := args.Get(0).([]string)
	return likes, args.Error(1)
}
func (m *StoryService) AddComment(ctx context.Context, storyID string, userID uuid.UUID, text string) (*models.Comment, error) {
	args := m.Called(ctx, storyID, userID, text)
	comment, _ := args.Get(0).(*models.Comment)
	return comment, args.Error(1)
}

// Mock GroupService
type GroupService struct {
	mock.Mock
}

func (m *GroupService) CreateGroup(ctx context.Context, ownerID uuid.UUID, name, description string, isPrivate bool) (*models.Group, error) {
	args := m.Called(ctx, ownerID, name, description, isPrivate)
	group, _ := args.Get(0).(*models.Group)
	return group, args.Error(1)
}
func (m *GroupService) MyGroups(ctx context.Context, userID uuid.UUID) ([]models.Group, error) {
	args := m.Called(ctx, userID)
	groups, _ := args.Get(0).([]models.Group)
	return groups, args.Error(1)
}
func (m *GroupService) PublicGroups(ctx context.Context, page int) ([]models.Group, error) {
	args := m.Called(ctx, page)
	groups, _ := args.Get(0).([]models.Group)
	return groups, args.Error(1)
}
func (m *GroupService) JoinGroup(ctx context.Context, groupID string, userID uuid.UUID) (*models.Group, error) {
	args := m.Called(ctx, groupID, userID)
	group, _ := args.Get(0).(*models.Group)
	return group, args.Error(1)
}
func (m *GroupService) ShareStoryToGroup(ctx context.Context, groupID, storyID string, userID uuid.UUID) (*models.Group, error) {
	args := m.Called(ctx, groupID, storyID, userID)
	group, _ := args.Get(0).(*models.Group)
	return group, args.Error(1)
}

// Mock GenerationService
type GenerationService struct {
	mock.Mock
}

func (m *GenerationService) GenerateImage(ctx context.Context, prompt string, tags []string) (string, error) {
	args := m.Called(ctx, prompt, tags)
	return args.String(0), args.Error(1)
}
func (m *GenerationService) GenerateRenditions(ctx context.Context, prompt string, count int, tags []string) ([]models.Rendition, error) {
	args := m.Called(ctx, prompt, count, tags)
	renditions, _ := args.Get(0).([]models.Rendition)
	return renditions, args.Error(1)
}
func (m *GenerationService) GenerateStoryText(ctx context.Context, imagePrompt string) (string, error) {
	args := m.Called(ctx, imagePrompt)
	return args.String(0), args.Error(1)
}
