package app

import (
	"github.com/Tejas411/LearnPal/docs"
	"github.com/Tejas411/LearnPal/internal/config"
	"github.com/Tejas411/LearnPal/internal/middleware"
	"github.com/Tejas411/LearnPal/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	a.registerPublicRoutes(router, c)

	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg))
	{
		a.registerUserRoutes(authGroup, c)
		a.registerLearningRoutes(authGroup, c)
	}
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers) {
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/auth/register", c.auth.Register)
		public.POST("/auth/login", c.auth.Login)
	}
}

func (a *App) registerUserRoutes(rg *gin.RouterGroup, c *controllers) {
	rg.GET("/auth/user", c.auth.GetCurrentUser)
	rg.GET("/user/stats", c.user.GetStats)
	rg.PUT("/user/profile", c.user.UpdateProfile)
	rg.POST("/user/avatar/upload", c.user.UploadAvatar)
}

func (a *App) registerLearningRoutes(rg *gin.RouterGroup, c *controllers) {
	rg.POST("/courses/generate", c.course.GenerateCourse)
	rg.GET("/courses", c.course.GetCourses)
	rg.GET("/courses/:id", c.course.GetCourse)

	rg.GET("/tasks/today", c.task.GetTodayTasks)
	rg.POST("/tasks/:id/complete", c.task.CompleteTask)
	rg.POST("/tasks/:id/content", c.task.GenerateTaskContent)

	rg.GET("/progress/:courseId", c.progress.GetCourseProgress)
}
