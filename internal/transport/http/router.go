package handlers

import (
	"time"

	"sidequest/internal/infrastructure/security"
	"sidequest/internal/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func NewRouter(
	verifier *security.SessionVerifier,
	adminAPIKey string,
	frontendURL string,
	limiter *middleware.RateLimiter,
	userHandler *UserHandler,
	questHandler *QuestHandler,
	geoHandler *GeoThinkrHandler,
	leaderboardHandler *LeaderboardHandler,
	adminHandler *AdminHandler,
) *gin.Engine {
	r := gin.Default()

	config := cors.DefaultConfig()
	config.AllowOrigins = []string{frontendURL}
	config.AllowCredentials = true
	config.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "X-API-Key"}
	config.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"}
	r.Use(cors.New(config))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := r.Group("/api/v1")
	{
		// Публичные ручки
		api.GET("/leaderboard", leaderboardHandler.Get)
		api.GET("/achievements", userHandler.AchievementCatalog)
		api.GET("/quests", questHandler.List)

		// Все, что требует сессию
		authed := api.Group("")
		authed.Use(middleware.AuthMiddleware(verifier))
		{
			authed.GET("/me", userHandler.GetMe)
			authed.PUT("/me", userHandler.UpdateMe)
			authed.POST("/me/avatar", userHandler.SetAvatar)

			authed.GET("/quests/:id", questHandler.GetOne)
			authed.POST("/quests/:id/complete", questHandler.Complete)

			geo := authed.Group("/geothinkr")
			{
				geo.GET("/photo", geoHandler.RandomPhoto)
				geo.POST("/guess", limiter.Limit("guess", 10, 1*time.Minute), geoHandler.SubmitGuess)
				geo.GET("/history", geoHandler.History)
			}
		}

		// Админка: сессия с ролью admin или серверный X-API-Key
		admin := api.Group("/admin")
		admin.Use(middleware.AdminOnly(verifier, adminAPIKey))
		{
			admin.POST("/award", limiter.Limit("award", 5, 1*time.Minute), adminHandler.Award)
			admin.POST("/quests", adminHandler.CreateQuest)
			admin.PUT("/quests/:id", adminHandler.UpdateQuest)
			admin.POST("/photos", adminHandler.CreatePhoto)
			admin.PUT("/photos/:id/verify", adminHandler.VerifyPhoto)
		}
	}

	return r
}
