package app

import (
	"sdet_prep_backend/internal/config"
	"sdet_prep_backend/internal/middleware"
	"sdet_prep_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.GET("/metrics", monitoring.PrometheusHandler())

	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)
	}

	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg), middleware.ActivityMiddleware(repos.user))
	{
		authGroup.GET("/profile", c.auth.GetProfile)

		// Question bank
		authGroup.GET("/topics", c.question.ListTopics)
		authGroup.GET("/topics/:topic/question", c.question.RandomQuestion)
		authGroup.GET("/questions/random", c.question.RandomAnyQuestion)
		authGroup.GET("/templates/:topic", c.question.Templates)

		// Daily usage and plan
		authGroup.GET("/entitlement", c.entitlement.Status)
		authGroup.POST("/entitlement/intro", c.entitlement.MarkIntroSeen)
		authGroup.POST("/premium", c.entitlement.SetPremium)

		// Practice flow
		authGroup.POST("/recordings", c.recording.Upload)
		authGroup.POST("/practice", c.practice.SubmitAnswer)
		authGroup.GET("/practice/sample", c.practice.SampleAnswer)
		authGroup.GET("/sessions", c.practice.Sessions)

		// Progress
		authGroup.GET("/progress", c.progress.Overview)
		authGroup.GET("/progress/:topic", c.progress.TopicProgress)
	}
}
