package server

import (
	"fmt"
	"time"

	httpHandler "channel-insights/interfaces/http"
	"channel-insights/interfaces/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// InitiateRouter builds the engine; CORS admits the local UI origins on port.
func InitiateRouter(
	port int,
	healthHandler httpHandler.IHealthHandler,
	channelHandler httpHandler.IChannelHandler,
	staticHandler httpHandler.IStaticHandler,
) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger())
	router.Use(cors.New(cors.Config{
		AllowOrigins:  []string{fmt.Sprintf("http://localhost:%d", port), fmt.Sprintf("http://127.0.0.1:%d", port)},
		AllowMethods:  []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", middleware.RequestIDHeader},
		ExposeHeaders: []string{"Content-Length", "Content-Disposition", middleware.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}))

	router.GET("/healthz", healthHandler.Healthz)

	api := router.Group("/api")
	{
		api.GET("/state", channelHandler.GetState)

		// Channel operations
		api.POST("/channel/load", channelHandler.LoadChannel)
		api.POST("/channel/more", channelHandler.LoadMore)

		// Selection operations
		api.POST("/selection/toggle", channelHandler.ToggleSelection)
		api.POST("/selection/all", channelHandler.SelectAll)

		// Analysis operations
		api.POST("/analysis", channelHandler.Analyze)
		api.GET("/analysis/export", channelHandler.ExportCSV)

		// Favorite operations
		api.GET("/favorites", channelHandler.ListFavorites)
		api.POST("/favorites", channelHandler.AddFavorite)
		api.DELETE("/favorites", channelHandler.ClearFavorites)
		api.DELETE("/favorites/:id", channelHandler.RemoveFavorite)
		api.POST("/favorites/:id/load", channelHandler.LoadFavorite)
	}

	// Everything else is a static asset
	router.NoRoute(staticHandler.Serve)

	return router
}
