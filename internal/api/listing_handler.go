package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"pawmart-backend/internal/core"
	"pawmart-backend/internal/middleware"
	"pawmart-backend/internal/models"
)

// ListingHandler handles API endpoints related to listings.
type ListingHandler struct {
	listingService core.ListingService
	errorMapper
}

// NewListingHandler creates a new ListingHandler.
func NewListingHandler(ls core.ListingService, logger *zap.Logger) *ListingHandler {
	return &ListingHandler{listingService: ls, errorMapper: errorMapper{logger: logger}}
}

// ListListings handles GET /listings
func (h *ListingHandler) ListListings(c *gin.Context) {
	query := models.ListingQuery{Category: c.Query("category"), Search: c.Query("q")}
	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 0 {
			badRequest(c, "limit must be a non-negative integer")
			return
		}
		query.Limit = limit
	}

	listings, err := h.listingService.ListPublic(c.Request.Context(), query)
	if err != nil {
		h.respond(c, "list listings", err)
		return
	}
	c.JSON(http.StatusOK, listings)
}

// LatestListings handles GET /latest-listings
func (h *ListingHandler) LatestListings(c *gin.Context) {
	listings, err := h.listingService.Latest(c.Request.Context())
	if err != nil {
		h.respond(c, "latest listings", err)
		return
	}
	c.JSON(http.StatusOK, listings)
}

// SearchListings handles GET /search?q=
func (h *ListingHandler) SearchListings(c *gin.Context) {
	listings, err := h.listingService.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		h.respond(c, "search listings", err)
		return
	}
	c.JSON(http.StatusOK, listings)
}

// GetListing handles GET /listing/:id. The route runs OptionalAuth so owners
// and admins can see their pending listings.
func (h *ListingHandler) GetListing(c *gin.Context) {
	listing, err := h.listingService.Get(c.Request.Context(), middleware.GetPrincipal(c), c.Param("id"))
	if err != nil {
		h.respond(c, "get listing", err)
		return
	}
	c.JSON(http.StatusOK, listing)
}

// CreateListing handles POST /listings
func (h *ListingHandler) CreateListing(c *gin.Context) {
	var req models.CreateListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	listing, err := h.listingService.Create(c.Request.Context(), middleware.GetPrincipal(c), req)
	if err != nil {
		h.respond(c, "create listing", err)
		return
	}
	c.JSON(http.StatusCreated, listing)
}

// UpdateListing handles PUT /listings/:id
func (h *ListingHandler) UpdateListing(c *gin.Context) {
	var req models.UpdateListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	listing, err := h.listingService.Update(c.Request.Context(), middleware.GetPrincipal(c), c.Param("id"), req)
	if err != nil {
		h.respond(c, "update listing", err)
		return
	}
	c.JSON(http.StatusOK, listing)
}

// DeleteListing handles DELETE /listings/:id
func (h *ListingHandler) DeleteListing(c *gin.Context) {
	id := c.Param("id")
	if err := h.listingService.Delete(c.Request.Context(), middleware.GetPrincipal(c), id); err != nil {
		h.respond(c, "delete listing", err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "Listing deleted", Data: gin.H{"id": id}})
}

// UserListings handles GET /user-listings?userId=
func (h *ListingHandler) UserListings(c *gin.Context) {
	listings, err := h.listingService.ListByUser(c.Request.Context(), middleware.GetPrincipal(c), c.Query("userId"))
	if err != nil {
		h.respond(c, "user listings", err)
		return
	}
	c.JSON(http.StatusOK, listings)
}

// AdminListings handles GET /admin/listings?status=
func (h *ListingHandler) AdminListings(c *gin.Context) {
	listings, err := h.listingService.AdminList(c.Request.Context(), middleware.GetPrincipal(c), c.Query("status"))
	if err != nil {
		h.respond(c, "admin list listings", err)
		return
	}
	c.JSON(http.StatusOK, listings)
}

// ApproveListing handles PUT /admin/listings
func (h *ListingHandler) ApproveListing(c *gin.Context) {
	var req models.ApproveListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	listing, err := h.listingService.Approve(c.Request.Context(), middleware.GetPrincipal(c), req)
	if err != nil {
		h.respond(c, "approve listing", err)
		return
	}
	c.JSON(http.StatusOK, listing)
}
