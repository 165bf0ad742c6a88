package router

import (
	"log/slog"
	"net/http"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/yellowjack/loyaltybot/internal/server/http/handlers"
	"github.com/yellowjack/loyaltybot/internal/server/http/middleware"
)

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.LoyaltyFacade, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.DecompressRequest())
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	staffHandler := handlers.NewStaffHandler(facade)
	profileHandler := handlers.NewProfileHandler(facade)
	pointsHandler := handlers.NewPointsHandler(facade)
	shopHandler := handlers.NewShopHandler(facade)

	engine.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "Bot is alive!")
	})

	api := engine.Group("/api")
	api.POST("/staff/session", staffHandler.Session)
	api.GET("/leaderboard", profileHandler.Leaderboard)
	api.GET("/catalog", shopHandler.Catalog)

	users := api.Group("/users")
	users.GET("/:id/profile", profileHandler.Profile)
	users.GET("/:id/balance", profileHandler.Balance)
	users.GET("/:id/inventory", profileHandler.Inventory)
	users.POST("/:id/daily", pointsHandler.Daily)
	users.POST("/:id/redeem", shopHandler.Redeem)

	points := api.Group("/points")
	points.Use(middleware.StaffContext(facade))
	points.POST("/grant", pointsHandler.Grant)
	points.POST("/deduct", pointsHandler.Deduct)

	return engine
}
