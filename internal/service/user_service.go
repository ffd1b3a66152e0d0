package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"storyweaver-server/internal/models"
	"storyweaver-server/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// UserService covers public profiles and the follow graph.
type UserService interface {
	// Profile returns a user's public profile with follower and following ID
	// lists.
	Profile(ctx context.Context, userID string) (*models.Profile, error)

	// Me returns the caller's own profile.
	Me(ctx context.Context, userID uuid.UUID) (*models.Profile, error)

	// UpdateProfile changes the caller's username and email and returns the
	// refreshed profile.
	UpdateProfile(ctx context.Context, userID uuid.UUID, username, email string) (*models.Profile, error)

	// ToggleFollow flips the caller's follow on the target user and returns
	// the caller's resulting following list. Following yourself is rejected.
	ToggleFollow(ctx context.Context, followerID uuid.UUID, targetID string) ([]string, error)
}

// Compile-time check
var _ UserService = (*userServiceImpl)(nil)

type userServiceImpl struct {
	userRepo   repository.UserRepository
	followRepo repository.FollowRepository
	logger     *zap.Logger
}

// NewUserService creates a new UserService.
func NewUserService(userRepo repository.UserRepository, followRepo repository.FollowRepository, logger *zap.Logger) UserService {
	return &userServiceImpl{
		userRepo:   userRepo,
		followRepo: followRepo,
		logger:     logger.Named("UserService"),
	}
}

func parseUserID(userID string) (uuid.UUID, error) {
	id, err := uuid.Parse(userID)
	if err != nil {
		return uuid.Nil, models.ErrUserNotFound
	}
	return id, nil
}

// Profile returns a user's public profile.
func (s *userServiceImpl) Profile(ctx context.Context, userID string) (*models.Profile, error) {
	id, err := parseUserID(userID)
	if err != nil {
		return nil, err
	}
	user, err := s.userRepo.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.buildProfile(ctx, user)
}

// Me returns the caller's own profile.
func (s *userServiceImpl) Me(ctx context.Context, userID uuid.UUID) (*models.Profile, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.buildProfile(ctx, user)
}

// UpdateProfile changes the caller's username and email.
func (s *userServiceImpl) UpdateProfile(ctx context.Context, userID uuid.UUID, username, email string) (*models.Profile, error) {
	username = strings.TrimSpace(username)
	email = strings.ToLower(strings.TrimSpace(email))
	if username == "" {
		return nil, models.ErrInvalidInput
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, fmt.Errorf("invalid email format: %w", models.ErrInvalidInput)
	}

	if err := s.userRepo.UpdateProfile(ctx, userID, username, email); err != nil {
		return nil, err
	}

	s.logger.Info("Profile updated", zap.String("userID", userID.String()), zap.String("username", username))
	return s.Me(ctx, userID)
}

// ToggleFollow flips the follow edge from the caller to the target user and
// returns the caller's resulting following list.
func (s *userServiceImpl) ToggleFollow(ctx context.Context, followerID uuid.UUID, targetID string) ([]string, error) {
	followeeID, err := parseUserID(targetID)
	if err != nil {
		return nil, err
	}
	if followeeID == followerID {
		return nil, models.ErrSelfFollow
	}

	// Confirm the target exists so unfollow of an unknown user still 404s.
	if _, err := s.userRepo.GetUserByID(ctx, followeeID); err != nil {
		return nil, err
	}

	following, err := s.followRepo.IsFollowing(ctx, followerID, followeeID)
	if err != nil {
		return nil, err
	}

	if following {
		err = s.followRepo.Unfollow(ctx, followerID, followeeID)
	} else {
		err = s.followRepo.Follow(ctx, followerID, followeeID)
	}
	if err != nil && !errors.Is(err, models.ErrUserNotFound) {
		return nil, err
	}

	s.logger.Info("Follow toggled",
		zap.String("followerID", followerID.String()),
		zap.String("followeeID", followeeID.String()),
		zap.Bool("nowFollowing", !following),
	)
	return s.followRepo.ListFollowingIDs(ctx, followerID)
}

func (s *userServiceImpl) buildProfile(ctx context.Context, user *models.User) (*models.Profile, error) {
	followers, err := s.followRepo.ListFollowerIDs(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	following, err := s.followRepo.ListFollowingIDs(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	return &models.Profile{
		ID:        user.ID.String(),
		Username:  user.Username,
		Email:     user.Email,
		Followers: followers,
		Following: following,
	}, nil
}
