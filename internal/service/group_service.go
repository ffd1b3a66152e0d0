package service

import (
	"context"
	"strings"

	"storyweaver-server/internal/models"
	"storyweaver-server/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// GroupService covers reading-group creation, discovery, and sharing.
type GroupService interface {
	// CreateGroup creates a group owned by the caller, who becomes its first
	// member.
	CreateGroup(ctx context.Context, ownerID uuid.UUID, name, description string, isPrivate bool) (*models.Group, error)

	// MyGroups returns all groups the caller belongs to.
	MyGroups(ctx context.Context, userID uuid.UUID) ([]models.Group, error)

	// PublicGroups returns a page of joinable public groups.
	PublicGroups(ctx context.Context, page int) ([]models.Group, error)

	// JoinGroup enrolls the caller into a public group.
	JoinGroup(ctx context.Context, groupID string, userID uuid.UUID) (*models.Group, error)

	// ShareStoryToGroup shares a caller-owned story into a group the caller
	// is a member of.
	ShareStoryToGroup(ctx context.Context, groupID, storyID string, userID uuid.UUID) (*models.Group, error)
}

// Compile-time check
var _ GroupService = (*groupServiceImpl)(nil)

type groupServiceImpl struct {
	groupRepo repository.GroupRepository
	storyRepo repository.StoryRepository
	pageSize  int
	logger    *zap.Logger
}

// NewGroupService creates a new GroupService.
func NewGroupService(groupRepo repository.GroupRepository, storyRepo repository.StoryRepository, pageSize int, logger *zap.Logger) GroupService {
	if pageSize <= 0 {
		pageSize = 20
	}
	return &groupServiceImpl{
		groupRepo: groupRepo,
		storyRepo: storyRepo,
		pageSize:  pageSize,
		logger:    logger.Named("GroupService"),
	}
}

func parseGroupID(groupID string) (uuid.UUID, error) {
	id, err := uuid.Parse(groupID)
	if err != nil {
		return uuid.Nil, models.ErrGroupNotFound
	}
	return id, nil
}

// CreateGroup creates a group with the caller enrolled as its first member.
func (s *groupServiceImpl) CreateGroup(ctx context.Context, ownerID uuid.UUID, name, description string, isPrivate bool) (*models.Group, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, models.ErrInvalidInput
	}

	group := &models.Group{
		Name:        name,
		Description: strings.TrimSpace(description),
		IsPrivate:   isPrivate,
	}
	id, err := s.groupRepo.CreateGroup(ctx, ownerID, group)
	if err != nil {
		return nil, err
	}
	return s.groupRepo.GetByID(ctx, id)
}

// MyGroups returns all groups the caller belongs to.
func (s *groupServiceImpl) MyGroups(ctx context.Context, userID uuid.UUID) ([]models.Group, error) {
	return s.groupRepo.ListByMember(ctx, userID)
}

// PublicGroups returns a page of public groups. Pages are 1-based; anything
// below that reads as the first page.
func (s *groupServiceImpl) PublicGroups(ctx context.Context, page int) ([]models.Group, error) {
	if page < 1 {
		page = 1
	}
	return s.groupRepo.ListPublic(ctx, s.pageSize, (page-1)*s.pageSize)
}

// JoinGroup enrolls the caller into a public group. Private groups reject
// the public join path.
func (s *groupServiceImpl) JoinGroup(ctx context.Context, groupID string, userID uuid.UUID) (*models.Group, error) {
	id, err := parseGroupID(groupID)
	if err != nil {
		return nil, err
	}

	group, err := s.groupRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if group.IsPrivate {
		s.logger.Warn("Join attempt on private group",
			zap.String("groupID", groupID),
			zap.String("userID", userID.String()),
		)
		return nil, models.ErrGroupPrivate
	}

	if err := s.groupRepo.AddMember(ctx, id, userID); err != nil {
		return nil, err
	}

	s.logger.Info("User joined group", zap.String("groupID", groupID), zap.String("userID", userID.String()))
	return s.groupRepo.GetByID(ctx, id)
}

// ShareStoryToGroup shares a caller-owned story into a group the caller
// belongs to.
func (s *groupServiceImpl) ShareStoryToGroup(ctx context.Context, groupID, storyID string, userID uuid.UUID) (*models.Group, error) {
	gid, err := parseGroupID(groupID)
	if err != nil {
		return nil, err
	}
	sid, err := parseStoryID(storyID)
	if err != nil {
		return nil, err
	}

	isMember, err := s.groupRepo.IsMember(ctx, gid, userID)
	if err != nil {
		return nil, err
	}
	if !isMember {
		return nil, models.ErrNotGroupMember
	}

	ownerID, err := s.storyRepo.GetOwnerID(ctx, sid)
	if err != nil {
		return nil, err
	}
	if ownerID != userID {
		return nil, models.ErrNotOwner
	}

	if err := s.groupRepo.AddStory(ctx, gid, sid); err != nil {
		return nil, err
	}

	s.logger.Info("Story shared to group",
		zap.String("groupID", groupID),
		zap.String("storyID", storyID),
		zap.String("userID", userID.String()),
	)
	return s.groupRepo.GetByID(ctx, gid)
}
