package api

import (
	"alcyxob/exercise-tracker/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
)

// SetupRoutes wires the exercise-tracker endpoints onto the given engine.
// landingPage is the filesystem path of the static page served at "/".
func SetupRoutes(
	router *gin.Engine,
	trackerService service.TrackerService,
	landingPage string,
) {
	userHandler := NewUserHandler(trackerService)
	exerciseHandler := NewExerciseHandler(trackerService)

	router.Use(RequestIDMiddleware())

	router.StaticFile("/", landingPage)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	apiGroup := router.Group("/api")
	{
		userGroup := apiGroup.Group("/users")
		{
			// POST /api/users
			userGroup.POST("", userHandler.CreateUser)
			// GET /api/users
			userGroup.GET("", userHandler.ListUsers)

			// POST /api/users/:_id/exercises
			userGroup.POST("/:_id/exercises", exerciseHandler.AddExercise)
			// GET /api/users/:_id/logs
			userGroup.GET("/:_id/logs", exerciseHandler.GetLogs)
		}
	}
}
