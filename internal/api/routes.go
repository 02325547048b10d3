package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"pawmart-backend/internal/core"
	"pawmart-backend/internal/metrics"
	"pawmart-backend/internal/middleware"
)

// SetupRoutes configures all the application routes with their handlers and
// middleware. Global middleware (recovery, logging, CORS, timeout) is applied
// to router by the caller. Every route is registered exactly once.
func SetupRoutes(
	router *gin.Engine,
	logger *zap.Logger,
	authMW *middleware.AuthMiddleware,
	listingService core.ListingService,
	orderService core.OrderService,
	userService core.UserService,
) {
	listingHandler := NewListingHandler(listingService, logger)
	orderHandler := NewOrderHandler(orderService, logger)
	authHandler := NewAuthHandler(userService, logger)
	userHandler := NewUserHandler(userService, logger)

	// --- Public endpoints ---
	router.GET("/listings", listingHandler.ListListings)
	router.GET("/latest-listings", listingHandler.LatestListings)
	router.GET("/search", listingHandler.SearchListings)
	router.GET("/listing/:id", authMW.OptionalAuth(), listingHandler.GetListing)

	// --- Authenticated endpoints ---
	authed := router.Group("", authMW.RequireAuth())
	{
		authed.POST("/listings", listingHandler.CreateListing)
		authed.PUT("/listings/:id", listingHandler.UpdateListing)
		authed.DELETE("/listings/:id", listingHandler.DeleteListing)
		authed.GET("/user-listings", listingHandler.UserListings)

		authed.POST("/orders", orderHandler.CreateOrder)
		authed.GET("/orders", orderHandler.ListOrders)
		authed.GET("/orders/:id", orderHandler.GetOrder)
		authed.DELETE("/orders/:id", orderHandler.DeleteOrder)
		authed.PATCH("/orders/:id/status", orderHandler.UpdateOrderStatus)

		authed.POST("/users", authHandler.SyncProfile)
		authed.GET("/user-profile", authHandler.GetProfile)

		// Admin checks happen in the services, against the users collection.
		admin := authed.Group("/admin")
		{
			admin.GET("/listings", listingHandler.AdminListings)
			admin.PUT("/listings", listingHandler.ApproveListing)
			admin.GET("/users", userHandler.ListUsers)
			admin.PUT("/users/:uid", userHandler.UpdateUser)
			admin.PUT("/users/:uid/role", userHandler.AssignRole)
		}
	}

	// --- Operational endpoints ---
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, HealthResponse{Status: "UP", Message: "Paw-Mart backend is healthy."})
	})
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{})))

	logger.Info("API routes configured successfully.")
}
