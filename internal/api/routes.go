package api

import (
	"alcyxob/workout-scheduler/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(
	router *gin.Engine,
	jwtSecret string,
	authService service.AuthService,
	templateService service.TemplateService,
	schedulerService service.SchedulerService,
) {
	authHandler := NewAuthHandler(authService)
	templateHandler := NewTemplateHandler(templateService)
	patternHandler := NewPatternHandler(schedulerService)
	scheduleHandler := NewScheduleHandler(schedulerService)

	authMiddleware := AuthMiddleware(jwtSecret)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	apiV1 := router.Group("/api/v1")
	{
		authGroup := apiV1.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
		}
	}

	protected := apiV1.Group("")
	protected.Use(authMiddleware)
	{
		protected.GET("/me", func(c *gin.Context) {
			userID, err := getUserIDFromContext(c)
			if err != nil {
				abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
				return
			}
			c.JSON(http.StatusOK, gin.H{"userId": userID.Hex()})
		})

		// --- Template Routes ---
		templateGroup := protected.Group("/templates")
		{
			templateGroup.POST("", templateHandler.CreateTemplate)
			templateGroup.GET("", templateHandler.GetTemplates)
			templateGroup.GET("/:id", templateHandler.GetTemplateByID)
			templateGroup.PUT("/:id", templateHandler.UpdateTemplate)
			templateGroup.DELETE("/:id", templateHandler.DeleteTemplate)
		}

		// --- Recurring Pattern Routes ---
		patternGroup := protected.Group("/patterns")
		{
			// POST /api/v1/patterns - create and materialize in one step
			patternGroup.POST("", patternHandler.CreatePattern)
			// POST /api/v1/patterns/preview - pure expansion, persists nothing
			patternGroup.POST("/preview", patternHandler.PreviewPattern)
			patternGroup.GET("", patternHandler.GetPatterns)
			// DELETE deactivates only; generated instances stay on the calendar
			patternGroup.DELETE("/:id", patternHandler.DeactivatePattern)
		}

		// --- Schedule / Calendar Routes ---
		scheduleGroup := protected.Group("/schedule")
		{
			scheduleGroup.GET("", scheduleHandler.GetSchedule)
			scheduleGroup.POST("/copy", scheduleHandler.CopySchedule)
			scheduleGroup.GET("/export", scheduleHandler.ExportSchedule)
			scheduleGroup.DELETE("/:id", scheduleHandler.DeleteInstance)
		}
	}
}
