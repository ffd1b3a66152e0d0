package repository

import (
	"context"
	"errors"
	"fmt"

	"storyweaver-server/internal/models"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

const (
	insertGroupQuery = `
		INSERT INTO groups (owner_id, name, description, is_private)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`

	insertGroupMemberQuery = `INSERT INTO group_members (group_id, user_id) VALUES ($1, $2)`

	selectGroupQuery = `
		SELECT g.id, g.name, g.description, g.is_private, g.owner_id, u.username, g.created_at
		FROM groups g
		JOIN users u ON u.id = g.owner_id`

	groupMembersQuery = `
		SELECT user_id FROM group_members WHERE group_id = $1 ORDER BY joined_at`

	groupStoriesQuery = `
		SELECT story_id FROM group_stories WHERE group_id = $1 ORDER BY shared_at`

	isGroupMemberQuery = `SELECT EXISTS (SELECT 1 FROM group_members WHERE group_id = $1 AND user_id = $2)`

	addGroupStoryQuery = `INSERT INTO group_stories (group_id, story_id) VALUES ($1, $2)`
)

// Compile-time check
var _ GroupRepository = (*pgGroupRepository)(nil)

type pgGroupRepository struct {
	db     DBTX
	logger *zap.Logger
}

// NewPgGroupRepository creates a new PostgreSQL-backed GroupRepository.
func NewPgGroupRepository(db DBTX, logger *zap.Logger) GroupRepository {
	return &pgGroupRepository{
		db:     db,
		logger: logger.Named("PgGroupRepo"),
	}
}

// CreateGroup inserts the group and enrolls the owner as its first member.
// Both writes run in one transaction.
func (r *pgGroupRepository) CreateGroup(ctx context.Context, ownerID uuid.UUID, group *models.Group) (uuid.UUID, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	var id uuid.UUID
	err = tx.QueryRow(ctx, insertGroupQuery, ownerID, group.Name, group.Description, group.IsPrivate).
		Scan(&id, &group.CreatedAt)
	if err != nil {
		r.logger.Error("Failed to insert group", zap.String("ownerID", ownerID.String()), zap.Error(err))
		return uuid.Nil, fmt.Errorf("failed to insert group: %w", err)
	}

	if _, err := tx.Exec(ctx, insertGroupMemberQuery, id, ownerID); err != nil {
		r.logger.Error("Failed to enroll group owner", zap.String("groupID", id.String()), zap.Error(err))
		return uuid.Nil, fmt.Errorf("failed to enroll group owner: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return uuid.Nil, fmt.Errorf("failed to commit group creation: %w", err)
	}

	group.ID = id.String()
	r.logger.Info("Group created", zap.String("groupID", group.ID), zap.String("name", group.Name))
	return id, nil
}

// GetByID returns the group with members and shared story IDs populated.
func (r *pgGroupRepository) GetByID(ctx context.Context, groupID uuid.UUID) (*models.Group, error) {
	group, err := scanGroup(r.db.QueryRow(ctx, selectGroupQuery+` WHERE g.id = $1`, groupID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrGroupNotFound
		}
		r.logger.Error("Failed to get group", zap.String("groupID", groupID.String()), zap.Error(err))
		return nil, fmt.Errorf("failed to get group: %w", err)
	}
	if err := r.populate(ctx, group); err != nil {
		return nil, err
	}
	return group, nil
}

// ListByMember returns all groups the user belongs to.
func (r *pgGroupRepository) ListByMember(ctx context.Context, userID uuid.UUID) ([]models.Group, error) {
	query := selectGroupQuery + `
		JOIN group_members m ON m.group_id = g.id
		WHERE m.user_id = $1
		ORDER BY g.created_at DESC`
	return r.list(ctx, query, userID)
}

// ListPublic returns public groups, newest first.
func (r *pgGroupRepository) ListPublic(ctx context.Context, limit, offset int) ([]models.Group, error) {
	query := selectGroupQuery + ` WHERE NOT g.is_private ORDER BY g.created_at DESC LIMIT $1 OFFSET $2`
	return r.list(ctx, query, limit, offset)
}

// AddMember enrolls a user into the group.
func (r *pgGroupRepository) AddMember(ctx context.Context, groupID, userID uuid.UUID) error {
	logFields := []zap.Field{
		zap.String("groupID", groupID.String()),
		zap.String("userID", userID.String()),
	}

	_, err := r.db.Exec(ctx, insertGroupMemberQuery, groupID, userID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case "23505": // unique_violation
				r.logger.Warn("User already in group", logFields...)
				return models.ErrAlreadyMember
			case "23503": // foreign_key_violation
				r.logger.Warn("Group not found for join", logFields...)
				return models.ErrGroupNotFound
			}
		}
		r.logger.Error("Failed to add group member", append(logFields, zap.Error(err))...)
		return fmt.Errorf("failed to add group member: %w", err)
	}

	r.logger.Info("Group member added", logFields...)
	return nil
}

// IsMember reports whether the user belongs to the group.
func (r *pgGroupRepository) IsMember(ctx context.Context, groupID, userID uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, isGroupMemberQuery, groupID, userID).Scan(&exists)
	if err != nil {
		r.logger.Error("Failed to check group membership",
			zap.String("groupID", groupID.String()),
			zap.String("userID", userID.String()),
			zap.Error(err),
		)
		return false, fmt.Errorf("failed to check group membership: %w", err)
	}
	return exists, nil
}

// AddStory shares a story into the group.
func (r *pgGroupRepository) AddStory(ctx context.Context, groupID, storyID uuid.UUID) error {
	logFields := []zap.Field{
		zap.String("groupID", groupID.String()),
		zap.String("storyID", storyID.String()),
	}

	_, err := r.db.Exec(ctx, addGroupStoryQuery, groupID, storyID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case "23505": // unique_violation
				r.logger.Warn("Story already shared to group", logFields...)
				return models.ErrStoryAlreadyShared
			case "23503": // foreign_key_violation
				r.logger.Warn("Group or story missing for share", logFields...)
				return models.ErrNotFound
			}
		}
		r.logger.Error("Failed to share story to group", append(logFields, zap.Error(err))...)
		return fmt.Errorf("failed to share story to group: %w", err)
	}

	r.logger.Info("Story shared to group", logFields...)
	return nil
}

func (r *pgGroupRepository) list(ctx context.Context, query string, args ...any) ([]models.Group, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.logger.Error("Failed to list groups", zap.Error(err))
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}
	defer rows.Close()

	groups := make([]models.Group, 0)
	for rows.Next() {
		group, err := scanGroup(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan group row: %w", err)
		}
		groups = append(groups, *group)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate group rows: %w", err)
	}

	for i := range groups {
		if err := r.populate(ctx, &groups[i]); err != nil {
			return nil, err
		}
	}
	return groups, nil
}

// populate loads the membership roster and shared story IDs.
func (r *pgGroupRepository) populate(ctx context.Context, group *models.Group) error {
	memberIDs := make([]uuid.UUID, 0)
	groupID := uuid.MustParse(group.ID)
	if err := pgxscan.Select(ctx, r.db, &memberIDs, groupMembersQuery, groupID); err != nil {
		r.logger.Error("Failed to list group members", zap.String("groupID", group.ID), zap.Error(err))
		return fmt.Errorf("failed to list group members: %w", err)
	}
	group.Members = make([]string, 0, len(memberIDs))
	for _, id := range memberIDs {
		group.Members = append(group.Members, id.String())
	}

	storyIDs := make([]uuid.UUID, 0)
	if err := pgxscan.Select(ctx, r.db, &storyIDs, groupStoriesQuery, groupID); err != nil {
		r.logger.Error("Failed to list group stories", zap.String("groupID", group.ID), zap.Error(err))
		return fmt.Errorf("failed to list group stories: %w", err)
	}
	group.Stories = make([]string, 0, len(storyIDs))
	for _, id := range storyIDs {
		group.Stories = append(group.Stories, id.String())
	}
	return nil
}

func scanGroup(row pgx.Row) (*models.Group, error) {
	var (
		id      uuid.UUID
		ownerID uuid.UUID
		group   models.Group
	)
	err := row.Scan(&id, &group.Name, &group.Description, &group.IsPrivate, &ownerID, &group.Owner.Username, &group.CreatedAt)
	if err != nil {
		return nil, err
	}
	group.ID = id.String()
	group.Owner.ID = ownerID.String()
	return &group, nil
}
