package handler

import (
	"regexp"

	"storyweaver-server/internal/config"
	"storyweaver-server/internal/repository"
	"storyweaver-server/internal/service"

	"github.com/gin-gonic/gin"
)

// Validation constraints for registration input.
const (
	minUsernameLength = 3
	maxUsernameLength = 30
	minPasswordLength = 8
	maxPasswordLength = 100
)

var usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// Handler wires all HTTP endpoints to the service layer.
type Handler struct {
	authService       service.AuthService
	userService       service.UserService
	storyService      service.StoryService
	groupService      service.GroupService
	generationService service.GenerationService
	userRepo          repository.UserRepository
	cfg               *config.Config
}

// NewHandler creates a new Handler.
func NewHandler(
	authService service.AuthService,
	userService service.UserService,
	storyService service.StoryService,
	groupService service.GroupService,
	generationService service.GenerationService,
	userRepo repository.UserRepository,
	cfg *config.Config,
) *Handler {
	return &Handler{
		authService:       authService,
		userService:       userService,
		storyService:      storyService,
		groupService:      groupService,
		generationService: generationService,
		userRepo:          userRepo,
		cfg:               cfg,
	}
}

// RegisterRoutes attaches all API routes to the router. authLimiter, when
// non-nil, is applied to the credential endpoints only.
func (h *Handler) RegisterRoutes(router *gin.Engine, authLimiter gin.HandlerFunc) {
	api := router.Group("/api")

	authGroup := api.Group("/auth")
	{
		if authLimiter != nil {
			authGroup.POST("/register", authLimiter, h.register)
			authGroup.POST("/login", authLimiter, h.login)
		} else {
			authGroup.POST("/register", h.register)
			authGroup.POST("/login", h.login)
		}
		authGroup.POST("/refresh", h.refresh)
		authGroup.POST("/logout", h.AuthMiddleware(), h.logout)
		authGroup.GET("/me", h.AuthMiddleware(), h.getMe)
	}

	users := api.Group("/users")
	{
		users.GET("/me", h.AuthMiddleware(), h.getMe)
		users.PUT("/profile", h.AuthMiddleware(), h.updateProfile)
		users.GET("/:id", h.getProfile)
		users.POST("/:id/follow", h.AuthMiddleware(), h.toggleFollow)
	}

	stories := api.Group("/stories")
	{
		stories.GET("/feed/public", h.publicFeed)
		stories.GET("/my-stories", h.AuthMiddleware(), h.myStories)
		stories.POST("", h.AuthMiddleware(), h.createStory)
		stories.GET("/:id", h.OptionalAuthMiddleware(), h.getStory)
		stories.PUT("/:id", h.AuthMiddleware(), h.updateStory)
		stories.DELETE("/:id", h.AuthMiddleware(), h.deleteStory)
		stories.POST("/:id/share", h.AuthMiddleware(), h.shareStory)
		stories.POST("/:id/like", h.AuthMiddleware(), h.toggleLike)
		stories.POST("/:id/comment", h.AuthMiddleware(), h.addComment)
	}

	groups := api.Group("/groups")
	{
		groups.GET("/public", h.publicGroups)
		groups.GET("/my-groups", h.AuthMiddleware(), h.myGroups)
		groups.POST("", h.AuthMiddleware(), h.createGroup)
		groups.POST("/:id/join", h.AuthMiddleware(), h.joinGroup)
		groups.POST("/:id/share/:storyId", h.AuthMiddleware(), h.shareStoryToGroup)
	}

	generate := api.Group("/generate")
	generate.Use(h.AuthMiddleware())
	{
		generate.POST("/image", h.generateImage)
		generate.POST("/renditions", h.generateRenditions)
		generate.POST("/story", h.generateStoryText)
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
}
