package handlers

import (
	"net/http"
	"strconv"

	"geddit/internal/auth"
	"geddit/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// ItemHandler handles browsing and selling
type ItemHandler struct {
	itemService     *services.ItemService
	categoryService *services.CategoryService
}

// NewItemHandler creates a new ItemHandler
func NewItemHandler(itemService *services.ItemService, categoryService *services.CategoryService) *ItemHandler {
	return &ItemHandler{itemService: itemService, categoryService: categoryService}
}

// BrowseItems returns unclaimed items, newest first, filtered by any of
// category_id, q (keyword search) and id
func (h *ItemHandler) BrowseItems(c *gin.Context) {
	var categoryID, itemID *uint

	if raw := c.Query("category_id"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category_id"})
			return
		}
		id := uint(parsed)
		categoryID = &id
	}
	if raw := c.Query("id"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
			return
		}
		id := uint(parsed)
		itemID = &id
	}

	items, err := h.itemService.FilterItems(c.Request.Context(), categoryID, c.Query("q"), itemID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch items"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"items": items,
		"count": len(items),
	})
}

// GetItem returns one item by ID
func (h *ItemHandler) GetItem(c *gin.Context) {
	itemID, err := parseIDParam(c)
	if err != nil {
		return
	}

	item, err := h.itemService.GetItem(c.Request.Context(), itemID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"item": item})
}

// SellItem lists a new item for the authenticated seller. Matching
// reservations are notified as part of the same request.
func (h *ItemHandler) SellItem(c *gin.Context) {
	sellerID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req struct {
		Name        string          `json:"name" binding:"required,max=100"`
		Description string          `json:"description" binding:"max=1000"`
		CategoryID  uint            `json:"category_id" binding:"required"`
		Price       decimal.Decimal `json:"price" binding:"required"`
		WithImage   bool            `json:"with_image"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	item, err := h.itemService.ListItem(c.Request.Context(), sellerID, services.ListItemRequest{
		Name:        req.Name,
		Description: req.Description,
		CategoryID:  req.CategoryID,
		Price:       req.Price,
		WithImage:   req.WithImage,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"item": item})
}

// GetMyItems returns all listings of the authenticated seller
func (h *ItemHandler) GetMyItems(c *gin.Context) {
	sellerID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	items, err := h.itemService.GetSellerItems(c.Request.Context(), sellerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch items"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"items": items,
		"count": len(items),
	})
}

// DeleteItem removes one of the authenticated seller's listings
func (h *ItemHandler) DeleteItem(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	itemID, err := parseIDParam(c)
	if err != nil {
		return
	}

	if err := h.itemService.DeleteItem(c.Request.Context(), userID, itemID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Item deleted"})
}

// GetCategories returns all categories sorted by name
func (h *ItemHandler) GetCategories(c *gin.Context) {
	categories, err := h.categoryService.ListCategories(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch categories"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

// CreateCategory adds a category
func (h *ItemHandler) CreateCategory(c *gin.Context) {
	var req struct {
		Name string `json:"name" binding:"required,max=100"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	category, err := h.categoryService.CreateCategory(c.Request.Context(), req.Name)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"category": category})
}

// parseIDParam reads the :id route parameter, writing the error response
// itself on failure
func parseIDParam(c *gin.Context) (uint, error) {
	parsed, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
		return 0, err
	}
	return uint(parsed), nil
}
