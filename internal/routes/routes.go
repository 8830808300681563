package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/healthpoints/healthpoints-backend/internal/handler"
	"github.com/healthpoints/healthpoints-backend/internal/middleware"
	"github.com/healthpoints/healthpoints-backend/pkg/jwt"
)

// Setup registers the points API. Every endpoint requires an
// authenticated caller.
func Setup(router *gin.Engine, pointsHandler *handler.PointsHandler, jwtManager *jwt.Manager) {
	api := router.Group("/api")
	api.Use(middleware.JWTAuth(jwtManager))

	api.POST("/points", pointsHandler.Create)
	api.PUT("/points", pointsHandler.Update)
	api.GET("/points", pointsHandler.List)
	api.GET("/points-this-week", pointsHandler.GetPointsThisWeek)
	api.GET("/points/:id", pointsHandler.Get)
	api.DELETE("/points/:id", pointsHandler.Delete)
	api.GET("/_search/points/:query", pointsHandler.Search)
}
