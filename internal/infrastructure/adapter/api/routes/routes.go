package routes

import (
	"github.com/gin-gonic/gin"

	coreport "github.com/amirhossein-jamali/tahajjud-scheduler/internal/domain/port/core"
	"github.com/amirhossein-jamali/tahajjud-scheduler/internal/infrastructure/adapter/api/handler"
	"github.com/amirhossein-jamali/tahajjud-scheduler/internal/infrastructure/adapter/api/middleware"
)

// SetupRoutes configures all the routes for the API
func SetupRoutes(router *gin.Engine, scheduleHandler *handler.ScheduleHandler) {
	router.GET("/health", scheduleHandler.Health)

	v1 := router.Group("/api/v1")
	{
		// GET /api/v1/schedule?latitude=&longitude=&date=
		v1.GET("/schedule", scheduleHandler.GetSchedule)

		// GET /api/v1/schedule/compute?isha=&fajr=
		v1.GET("/schedule/compute", scheduleHandler.ComputeSchedule)
	}
}

// SetupMiddlewares configures global middlewares for the API
func SetupMiddlewares(router *gin.Engine, logger coreport.Logger, timeProvider coreport.TimeProvider, allowedOrigins []string) {
	// Order matters: the request ID must exist before anything logs
	router.Use(middleware.RequestID())
	router.Use(middleware.ErrorHandler(logger))
	router.Use(middleware.Logger(logger, timeProvider))
	router.Use(middleware.CORS(allowedOrigins))
}
