// Package server assembles the HTTP router.
package server

import (
	"log/slog"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/yukikurage/twitter-clone-api/internal/constants"
	"github.com/yukikurage/twitter-clone-api/internal/events"
	"github.com/yukikurage/twitter-clone-api/internal/handlers"
	"github.com/yukikurage/twitter-clone-api/internal/middleware"
	"github.com/yukikurage/twitter-clone-api/internal/repository"
	"github.com/yukikurage/twitter-clone-api/internal/services"
	"github.com/yukikurage/twitter-clone-api/internal/token"
	"gorm.io/gorm"
)

// Dependencies are the collaborators the router is built from.
type Dependencies struct {
	DB           *gorm.DB
	SessionStore sessions.Store
	Tokens       *token.Manager
	Denylist     token.Denylist
	Publisher    events.Publisher
	Logger       *slog.Logger
	Registry     *prometheus.Registry
}

// NewRouter wires repositories, services and handlers into a gin engine.
func NewRouter(deps Dependencies) *gin.Engine {
	if deps.Publisher == nil {
		deps.Publisher = events.NopPublisher{}
	}
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	if deps.Registry == nil {
		deps.Registry = prometheus.NewRegistry()
	}

	userRepo := repository.NewUserRepository(deps.DB)
	tweetRepo := repository.NewTweetRepository(deps.DB)
	replyRepo := repository.NewReplyRepository(deps.DB)
	favoriteRepo := repository.NewFavoriteRepository(deps.DB)
	followerRepo := repository.NewFollowerRepository(deps.DB)

	authService := services.NewAuthService(userRepo, deps.Tokens, deps.Denylist)
	userService := services.NewUserService(userRepo, tweetRepo, followerRepo, favoriteRepo, deps.Publisher)
	tweetService := services.NewTweetService(tweetRepo, replyRepo, deps.Publisher)
	favoriteService := services.NewFavoriteService(favoriteRepo, tweetRepo, deps.Publisher)

	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService, authService)
	tweetHandler := handlers.NewTweetHandler(tweetService)
	favoriteHandler := handlers.NewFavoriteHandler(favoriteService)
	healthHandler := handlers.NewHealthHandler(deps.DB)

	metrics := middleware.NewMetrics(deps.Registry)

	r := gin.New()
	r.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.RequestLogger(deps.Logger),
		metrics.Handler(),
		sessions.Sessions(constants.SessionCookieName, deps.SessionStore),
	)

	r.GET("/", healthHandler.Home)
	r.GET("/health", healthHandler.Health)
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{})))

	// Public routes
	r.POST("/login", authHandler.Login)
	r.POST("/users", authHandler.Signup)
	r.GET("/:username", userHandler.ShowProfile)

	// Authenticated routes
	authed := r.Group("/")
	authed.Use(middleware.RequireAuth(authService))
	{
		authed.POST("/logout", authHandler.Logout)

		account := authed.Group("/account")
		{
			account.GET("/me", userHandler.Me)
			account.PUT("/update_profile", userHandler.UpdateProfile)
			account.PUT("/change_password", authHandler.ChangePassword)
		}

		users := authed.Group("/users")
		{
			users.GET("/timeline", userHandler.Timeline)
			users.GET("", userHandler.Index)
			users.GET("/:id", userHandler.Show)
			users.PUT("", userHandler.Update)
			users.PUT("/:id", userHandler.Update)
			users.DELETE("/:id", userHandler.Destroy)
			users.POST("/follow", userHandler.Follow)
			users.DELETE("/unfollow/:id", userHandler.UnFollow)
		}

		authed.POST("/tweet", tweetHandler.Tweet)

		tweets := authed.Group("/tweets")
		{
			tweets.GET("/:id", tweetHandler.Show)
			tweets.DELETE("/destroy/:id", tweetHandler.Destroy)
			tweets.POST("/reply/:id", tweetHandler.Reply)
		}

		favorites := authed.Group("/favorites")
		{
			favorites.POST("/create", favoriteHandler.Create)
			favorites.DELETE("/destroy/:id", favoriteHandler.Destroy)
		}
	}

	return r
}
