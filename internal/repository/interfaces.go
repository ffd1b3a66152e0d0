package repository

import (
	"context"

	"storyweaver-server/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX abstracts a pgx pool or transaction so repositories can run inside
// either.
type DBTX interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

// UserRepository persists user accounts in PostgreSQL.
type UserRepository interface {
	// CreateUser inserts a new user and fills in the generated ID.
	// Returns models.ErrUserAlreadyExists or models.ErrEmailAlreadyExists on
	// unique violations.
	CreateUser(ctx context.Context, user *models.User) error

	// GetUserByUsername returns models.ErrUserNotFound if no such user exists.
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)

	// GetUserByEmail returns models.ErrUserNotFound if no such user exists.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// GetUserByID returns models.ErrUserNotFound if no such user exists.
	GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error)

	// GetUsersByIDs returns the users for the given IDs; missing IDs are
	// silently skipped.
	GetUsersByIDs(ctx context.Context, ids []uuid.UUID) ([]models.User, error)

	// UpdateProfile changes the user's username and email. Returns the same
	// unique-violation sentinels as CreateUser.
	UpdateProfile(ctx context.Context, userID uuid.UUID, username, email string) error
}

// TokenRepository stores session token UUIDs (e.g. in Redis) so tokens can
// be revoked before their JWT expiry.
type TokenRepository interface {
	// SetToken stores the access and refresh UUIDs mapped to the user ID with
	// TTLs derived from the token expiries.
	SetToken(ctx context.Context, userID uuid.UUID, td *models.TokenDetails) error

	// GetUserIDByAccessUUID returns models.ErrTokenNotFound if the access UUID
	// is absent or expired.
	GetUserIDByAccessUUID(ctx context.Context, accessUUID string) (uuid.UUID, error)

	// GetUserIDByRefreshUUID returns models.ErrTokenNotFound if the refresh
	// UUID is absent or expired.
	GetUserIDByRefreshUUID(ctx context.Context, refreshUUID string) (uuid.UUID, error)

	// DeleteTokens removes the given token UUIDs. Returns the number of keys
	// deleted.
	DeleteTokens(ctx context.Context, userID uuid.UUID, accessUUID, refreshUUID string) (int64, error)
}

// StoryRepository persists story documents. Title page and slides are stored
// as JSONB; likes and comments live in join tables handled by their own
// repositories.
type StoryRepository interface {
	// Create inserts a new story for the owner and returns its generated ID.
	Create(ctx context.Context, ownerID uuid.UUID, story *models.Story) (uuid.UUID, error)

	// Update overwrites the story document. Returns models.ErrStoryNotFound
	// if the story does not exist and models.ErrNotOwner if it belongs to
	// someone else.
	Update(ctx context.Context, storyID, ownerID uuid.UUID, story *models.Story) error

	// GetByID returns the story with its owner reference populated.
	// Returns models.ErrStoryNotFound if absent.
	GetByID(ctx context.Context, storyID uuid.UUID) (*models.Story, error)

	// GetOwnerID returns the owner of a story, or models.ErrStoryNotFound.
	GetOwnerID(ctx context.Context, storyID uuid.UUID) (uuid.UUID, error)

	// ListByOwner returns the owner's stories, newest first.
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Story, error)

	// ListPublic returns public stories, newest first.
	ListPublic(ctx context.Context, limit, offset int) ([]models.Story, error)

	// SetPublic flips the sharing flag. Same error contract as Update.
	SetPublic(ctx context.Context, storyID, ownerID uuid.UUID, isPublic bool) error

	// Delete removes a story. Same error contract as Update.
	Delete(ctx context.Context, storyID, ownerID uuid.UUID) error
}

// LikeRepository manages the story_likes join table.
type LikeRepository interface {
	// AddLike returns models.ErrStoryNotFound if the story does not exist.
	// Adding a like twice is not an error.
	AddLike(ctx context.Context, userID, storyID uuid.UUID) error

	// RemoveLike removes a like; removing an absent like is not an error.
	RemoveLike(ctx context.Context, userID, storyID uuid.UUID) error

	// CheckLike reports whether the user currently likes the story.
	CheckLike(ctx context.Context, userID, storyID uuid.UUID) (bool, error)

	// ListLikerIDs returns the IDs of everyone who likes the story, oldest
	// like first.
	ListLikerIDs(ctx context.Context, storyID uuid.UUID) ([]string, error)
}

// CommentRepository manages story comments.
type CommentRepository interface {
	// AddComment inserts a comment and returns it with the author reference
	// populated. Returns models.ErrStoryNotFound if the story does not exist.
	AddComment(ctx context.Context, storyID, userID uuid.UUID, text string) (*models.Comment, error)

	// ListByStory returns the story's comments, newest first.
	ListByStory(ctx context.Context, storyID uuid.UUID) ([]models.Comment, error)
}

// GroupRepository persists reading groups and their membership.
type GroupRepository interface {
	// CreateGroup inserts the group and its owner as the first member.
	CreateGroup(ctx context.Context, ownerID uuid.UUID, group *models.Group) (uuid.UUID, error)

	// GetByID returns the group with members and story IDs populated.
	// Returns models.ErrGroupNotFound if absent.
	GetByID(ctx context.Context, groupID uuid.UUID) (*models.Group, error)

	// ListByMember returns all groups the user belongs to.
	ListByMember(ctx context.Context, userID uuid.UUID) ([]models.Group, error)

	// ListPublic returns public groups, newest first.
	ListPublic(ctx context.Context, limit, offset int) ([]models.Group, error)

	// AddMember returns models.ErrAlreadyMember if the user is already in the
	// group, models.ErrGroupNotFound if the group does not exist.
	AddMember(ctx context.Context, groupID, userID uuid.UUID) error

	// IsMember reports whether the user belongs to the group.
	IsMember(ctx context.Context, groupID, userID uuid.UUID) (bool, error)

	// AddStory shares a story into the group. Returns
	// models.ErrStoryAlreadyShared if it is already there.
	AddStory(ctx context.Context, groupID, storyID uuid.UUID) error
}

// FollowRepository manages the user_follows table.
type FollowRepository interface {
	// Follow returns models.ErrUserNotFound if the followee does not exist.
	// Following twice is not an error.
	Follow(ctx context.Context, followerID, followeeID uuid.UUID) error

	// Unfollow removes a follow edge; removing an absent edge is not an error.
	Unfollow(ctx context.Context, followerID, followeeID uuid.UUID) error

	// IsFollowing reports whether follower currently follows followee.
	IsFollowing(ctx context.Context, followerID, followeeID uuid.UUID) (bool, error)

	// ListFollowerIDs returns the IDs of the user's followers.
	ListFollowerIDs(ctx context.Context, userID uuid.UUID) ([]string, error)

	// ListFollowingIDs returns the IDs of the users this user follows.
	ListFollowingIDs(ctx context.Context, userID uuid.UUID) ([]string, error)
}
