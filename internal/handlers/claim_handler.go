package handlers

import (
	"net/http"

	"geddit/internal/auth"
	"geddit/internal/services"

	"github.com/gin-gonic/gin"
)

// ClaimHandler handles claiming, unclaiming and seller contact
type ClaimHandler struct {
	claimService *services.ClaimService
}

// NewClaimHandler creates a new ClaimHandler
func NewClaimHandler(claimService *services.ClaimService) *ClaimHandler {
	return &ClaimHandler{claimService: claimService}
}

// ClaimItem claims an item for the authenticated buyer
func (h *ClaimHandler) ClaimItem(c *gin.Context) {
	buyerID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	itemID, err := parseIDParam(c)
	if err != nil {
		return
	}

	claim, err := h.claimService.ClaimItem(c.Request.Context(), buyerID, itemID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"claim": claim})
}

// UnclaimItem releases the authenticated buyer's claim on an item
func (h *ClaimHandler) UnclaimItem(c *gin.Context) {
	buyerID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	itemID, err := parseIDParam(c)
	if err != nil {
		return
	}

	if err := h.claimService.UnclaimItem(c.Request.Context(), buyerID, itemID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Claim released"})
}

// GetCart returns the authenticated buyer's claims with their items
func (h *ClaimHandler) GetCart(c *gin.Context) {
	buyerID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	claims, err := h.claimService.GetCart(c.Request.Context(), buyerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch claims"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"claims": claims,
		"count":  len(claims),
	})
}

// ContactSeller emails the item's seller on the buyer's behalf, with an
// optional SMS
func (h *ClaimHandler) ContactSeller(c *gin.Context) {
	buyerID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	itemID, err := parseIDParam(c)
	if err != nil {
		return
	}

	var req struct {
		WithSMS bool `json:"with_sms"`
	}
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
			return
		}
	}

	if err := h.claimService.ContactSeller(c.Request.Context(), buyerID, itemID, req.WithSMS); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Seller contacted"})
}
