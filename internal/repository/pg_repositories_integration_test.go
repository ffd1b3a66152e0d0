package repository_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	dockerclient "github.com/docker/docker/client"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"

	"storyweaver-server/internal/models"
	"storyweaver-server/internal/repository"
	"storyweaver-server/migrations"
	"storyweaver-server/pkg/migration"
)

// RepositoryTestSuite exercises the PostgreSQL and Redis repositories against
// real containers, with the embedded migrations applied.
type RepositoryTestSuite struct {
	suite.Suite
	ctx         context.Context
	pgContainer *tcpostgres.PostgresContainer
	rdContainer *tcredis.RedisContainer
	pool        *pgxpool.Pool
	redisClient *redis.Client

	userRepo    repository.UserRepository
	tokenRepo   repository.TokenRepository
	storyRepo   repository.StoryRepository
	likeRepo    repository.LikeRepository
	commentRepo repository.CommentRepository
	groupRepo   repository.GroupRepository
	followRepo  repository.FollowRepository
}

func (s *RepositoryTestSuite) SetupSuite() {
	s.ctx = context.Background()
	logger := zap.NewNop()

	pgContainer, err := tcpostgres.Run(s.ctx,
		"postgres:15-alpine",
		tcpostgres.WithDatabase("test_db"),
		tcpostgres.WithUsername("testuser"),
		tcpostgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(5*time.Minute),
		),
	)
	require.NoError(s.T(), err, "Failed to start postgres container")
	s.pgContainer = pgContainer

	pgConnStr, err := pgContainer.ConnectionString(s.ctx, "sslmode=disable")
	require.NoError(s.T(), err)

	s.pool, err = pgxpool.New(s.ctx, pgConnStr)
	require.NoError(s.T(), err, "Failed to connect to test postgres")

	migrator := migration.NewMigrator(migration.Config{
		MigrationsPath: ".",
		MigrationsFS:   migrations.Files(),
	}, s.pool)
	require.NoError(s.T(), migrator.Up(s.ctx), "Failed to apply migrations")

	rdContainer, err := tcredis.Run(s.ctx,
		"docker.io/redis:7-alpine",
		testcontainers.WithWaitStrategy(
			wait.ForLog("* Ready to accept connections").
				WithOccurrence(1).
				WithStartupTimeout(1*time.Minute),
		),
	)
	require.NoError(s.T(), err, "Failed to start redis container")
	s.rdContainer = rdContainer

	redisHost, err := rdContainer.Host(s.ctx)
	require.NoError(s.T(), err)
	redisPort, err := rdContainer.MappedPort(s.ctx, "6379/tcp")
	require.NoError(s.T(), err)
	s.redisClient = redis.NewClient(&redis.Options{Addr: fmt.Sprintf("%s:%s", redisHost, redisPort.Port())})
	require.NoError(s.T(), s.redisClient.Ping(s.ctx).Err())

	s.userRepo = repository.NewPgUserRepository(s.pool, logger)
	s.tokenRepo = repository.NewRedisTokenRepository(s.redisClient, logger)
	s.storyRepo = repository.NewPgStoryRepository(s.pool, logger)
	s.likeRepo = repository.NewPgLikeRepository(s.pool, logger)
	s.commentRepo = repository.NewPgCommentRepository(s.pool, logger)
	s.groupRepo = repository.NewPgGroupRepository(s.pool, logger)
	s.followRepo = repository.NewPgFollowRepository(s.pool, logger)
}

func (s *RepositoryTestSuite) TearDownSuite() {
	if s.pool != nil {
		s.pool.Close()
	}
	if s.redisClient != nil {
		s.redisClient.Close()
	}
	if s.pgContainer != nil {
		_ = s.pgContainer.Terminate(s.ctx)
	}
	if s.rdContainer != nil {
		_ = s.rdContainer.Terminate(s.ctx)
	}
}

func (s *RepositoryTestSuite) SetupTest() {
	require.NoError(s.T(), s.redisClient.FlushDB(s.ctx).Err())
	_, err := s.pool.Exec(s.ctx, "TRUNCATE TABLE users RESTART IDENTITY CASCADE")
	require.NoError(s.T(), err)
}

// mustCreateUser inserts a user row and returns it with its generated ID.
func (s *RepositoryTestSuite) mustCreateUser(username string) *models.User {
	user := &models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "x",
	}
	require.NoError(s.T(), s.userRepo.CreateUser(s.ctx, user))
	require.NotEqual(s.T(), uuid.Nil, user.ID)
	return user
}

func (s *RepositoryTestSuite) mustCreateStory(ownerID uuid.UUID, title string, public bool) uuid.UUID {
	story := &models.Story{
		TitlePage: models.TitlePage{Title: title, Authors: "tester"},
		Slides:    []models.Slide{},
		Tags:      []string{"test"},
		IsPublic:  public,
	}
	id, err := s.storyRepo.Create(s.ctx, ownerID, story)
	require.NoError(s.T(), err)
	return id
}

func (s *RepositoryTestSuite) TestUserUniqueViolations() {
	s.mustCreateUser("writer")

	dupName := &models.User{Username: "writer", Email: "other@example.com", PasswordHash: "x"}
	err := s.userRepo.CreateUser(s.ctx, dupName)
	s.Require().ErrorIs(err, models.ErrUserAlreadyExists)

	dupEmail := &models.User{Username: "other", Email: "writer@example.com", PasswordHash: "x"}
	err = s.userRepo.CreateUser(s.ctx, dupEmail)
	s.Require().ErrorIs(err, models.ErrEmailAlreadyExists)

	_, err = s.userRepo.GetUserByUsername(s.ctx, "nobody")
	s.Require().ErrorIs(err, models.ErrUserNotFound)
}

func (s *RepositoryTestSuite) TestStoryLifecycle() {
	owner := s.mustCreateUser("owner")
	stranger := s.mustCreateUser("stranger")
	storyID := s.mustCreateStory(owner.ID, "First Draft", false)

	got, err := s.storyRepo.GetByID(s.ctx, storyID)
	s.Require().NoError(err)
	s.Require().NotNil(got.Owner)
	s.Equal(owner.ID.String(), got.Owner.ID)
	s.Equal("First Draft", got.TitlePage.Title)
	s.False(got.IsPublic)

	// Last write wins on the whole document.
	got.TitlePage.Title = "Second Draft"
	got.Slides = []models.Slide{{ID: "s1", StoryText: "Once upon a time"}}
	s.Require().NoError(s.storyRepo.Update(s.ctx, storyID, owner.ID, got))

	got, err = s.storyRepo.GetByID(s.ctx, storyID)
	s.Require().NoError(err)
	s.Equal("Second Draft", got.TitlePage.Title)
	s.Require().Len(got.Slides, 1)
	s.Equal("Once upon a time", got.Slides[0].StoryText)

	err = s.storyRepo.Update(s.ctx, storyID, stranger.ID, got)
	s.Require().ErrorIs(err, models.ErrNotOwner)

	err = s.storyRepo.Delete(s.ctx, storyID, stranger.ID)
	s.Require().ErrorIs(err, models.ErrNotOwner)
	s.Require().NoError(s.storyRepo.Delete(s.ctx, storyID, owner.ID))

	_, err = s.storyRepo.GetByID(s.ctx, storyID)
	s.Require().ErrorIs(err, models.ErrStoryNotFound)
}

func (s *RepositoryTestSuite) TestPublicListingOrder() {
	owner := s.mustCreateUser("owner")

	first := s.mustCreateStory(owner.ID, "Older", true)
	time.Sleep(5 * time.Millisecond)
	second := s.mustCreateStory(owner.ID, "Newer", true)
	s.mustCreateStory(owner.ID, "Hidden", false)

	listed, err := s.storyRepo.ListPublic(s.ctx, 10, 0)
	s.Require().NoError(err)
	s.Require().Len(listed, 2)
	s.Equal(second.String(), listed[0].ID)
	s.Equal(first.String(), listed[1].ID)
}

func (s *RepositoryTestSuite) TestLikesAndComments() {
	owner := s.mustCreateUser("owner")
	reader := s.mustCreateUser("reader")
	storyID := s.mustCreateStory(owner.ID, "Liked Story", true)

	s.Require().NoError(s.likeRepo.AddLike(s.ctx, reader.ID, storyID))
	// Duplicate likes are absorbed.
	s.Require().NoError(s.likeRepo.AddLike(s.ctx, reader.ID, storyID))

	liked, err := s.likeRepo.CheckLike(s.ctx, reader.ID, storyID)
	s.Require().NoError(err)
	s.True(liked)

	likers, err := s.likeRepo.ListLikerIDs(s.ctx, storyID)
	s.Require().NoError(err)
	s.Equal([]string{reader.ID.String()}, likers)

	s.Require().NoError(s.likeRepo.RemoveLike(s.ctx, reader.ID, storyID))
	likers, err = s.likeRepo.ListLikerIDs(s.ctx, storyID)
	s.Require().NoError(err)
	s.Empty(likers)

	comment, err := s.commentRepo.AddComment(s.ctx, storyID, reader.ID, "Great twist")
	s.Require().NoError(err)
	s.Equal("reader", comment.Author.Username)
	s.Equal("Great twist", comment.Text)

	time.Sleep(5 * time.Millisecond)
	later, err := s.commentRepo.AddComment(s.ctx, storyID, owner.ID, "Thanks!")
	s.Require().NoError(err)

	comments, err := s.commentRepo.ListByStory(s.ctx, storyID)
	s.Require().NoError(err)
	s.Require().Len(comments, 2)
	s.Equal(later.ID, comments[0].ID, "newest comment listed first")
	s.Equal(comment.ID, comments[1].ID)
}

func (s *RepositoryTestSuite) TestGroupMembershipAndSharing() {
	owner := s.mustCreateUser("owner")
	member := s.mustCreateUser("member")
	storyID := s.mustCreateStory(owner.ID, "Group Story", true)

	groupID, err := s.groupRepo.CreateGroup(s.ctx, owner.ID, &models.Group{
		Name:        "Writers Circle",
		Description: "weekly drafts",
	})
	s.Require().NoError(err)

	// The owner is seeded as the first member.
	isMember, err := s.groupRepo.IsMember(s.ctx, groupID, owner.ID)
	s.Require().NoError(err)
	s.True(isMember)

	s.Require().NoError(s.groupRepo.AddMember(s.ctx, groupID, member.ID))
	err = s.groupRepo.AddMember(s.ctx, groupID, member.ID)
	s.Require().ErrorIs(err, models.ErrAlreadyMember)

	s.Require().NoError(s.groupRepo.AddStory(s.ctx, groupID, storyID))
	err = s.groupRepo.AddStory(s.ctx, groupID, storyID)
	s.Require().ErrorIs(err, models.ErrStoryAlreadyShared)

	group, err := s.groupRepo.GetByID(s.ctx, groupID)
	s.Require().NoError(err)
	s.Len(group.Members, 2)
	s.Equal([]string{storyID.String()}, group.Stories)

	mine, err := s.groupRepo.ListByMember(s.ctx, member.ID)
	s.Require().NoError(err)
	s.Require().Len(mine, 1)
	s.Equal(groupID.String(), mine[0].ID)
}

func (s *RepositoryTestSuite) TestFollowGraph() {
	alice := s.mustCreateUser("alice")
	bob := s.mustCreateUser("bob")

	s.Require().NoError(s.followRepo.Follow(s.ctx, alice.ID, bob.ID))
	// Re-following is absorbed.
	s.Require().NoError(s.followRepo.Follow(s.ctx, alice.ID, bob.ID))

	following, err := s.followRepo.IsFollowing(s.ctx, alice.ID, bob.ID)
	s.Require().NoError(err)
	s.True(following)

	followers, err := s.followRepo.ListFollowerIDs(s.ctx, bob.ID)
	s.Require().NoError(err)
	s.Equal([]string{alice.ID.String()}, followers)

	err = s.followRepo.Follow(s.ctx, alice.ID, uuid.New())
	s.Require().ErrorIs(err, models.ErrUserNotFound)

	s.Require().NoError(s.followRepo.Unfollow(s.ctx, alice.ID, bob.ID))
	followingIDs, err := s.followRepo.ListFollowingIDs(s.ctx, alice.ID)
	s.Require().NoError(err)
	s.Empty(followingIDs)
}

func (s *RepositoryTestSuite) TestTokenStoreRoundTrip() {
	user := s.mustCreateUser("session")
	td := &models.TokenDetails{
		AccessUUID:  uuid.NewString(),
		RefreshUUID: uuid.NewString(),
		AtExpires:   time.Now().Add(5 * time.Minute).Unix(),
		RtExpires:   time.Now().Add(10 * time.Minute).Unix(),
	}

	s.Require().NoError(s.tokenRepo.SetToken(s.ctx, user.ID, td))

	gotID, err := s.tokenRepo.GetUserIDByAccessUUID(s.ctx, td.AccessUUID)
	s.Require().NoError(err)
	s.Equal(user.ID, gotID)

	gotID, err = s.tokenRepo.GetUserIDByRefreshUUID(s.ctx, td.RefreshUUID)
	s.Require().NoError(err)
	s.Equal(user.ID, gotID)

	deleted, err := s.tokenRepo.DeleteTokens(s.ctx, user.ID, td.AccessUUID, td.RefreshUUID)
	s.Require().NoError(err)
	s.Equal(int64(2), deleted)

	_, err = s.tokenRepo.GetUserIDByAccessUUID(s.ctx, td.AccessUUID)
	s.Require().ErrorIs(err, models.ErrTokenNotFound)
}

func TestRepositoryTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration tests in short mode")
	}

	cli, err := dockerclient.NewClientWithOpts(dockerclient.FromEnv)
	if err != nil {
		t.Fatalf("Docker client init error: %v. Ensure Docker is running and accessible.", err)
	}
	if _, err := cli.Ping(context.Background()); err != nil {
		t.Fatalf("Docker daemon is not running or accessible: %v", err)
	}
	cli.Close()

	suite.Run(t, new(RepositoryTestSuite))
}
