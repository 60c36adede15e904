package handlers

import (
	"net/http"

	"geddit/internal/auth"
	"geddit/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// UserHandler handles profile and settings endpoints
type UserHandler struct {
	userService *services.UserService
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// GetProfile returns the current user's profile
func (h *UserHandler) GetProfile(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	user, err := h.userService.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

// UpdateSettings updates the current user's cell phone and meetup location
func (h *UserHandler) UpdateSettings(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req struct {
		CellPhone *string `json:"cell_phone" binding:"omitempty,max=20"`
		Location  *struct {
			Name      string          `json:"name" binding:"required,max=100"`
			Latitude  decimal.Decimal `json:"latitude" binding:"required"`
			Longitude decimal.Decimal `json:"longitude" binding:"required"`
		} `json:"location"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	var location *services.LocationInput
	if req.Location != nil {
		location = &services.LocationInput{
			Name:      req.Location.Name,
			Latitude:  req.Location.Latitude,
			Longitude: req.Location.Longitude,
		}
	}

	user, err := h.userService.UpdateSettings(c.Request.Context(), userID, req.CellPhone, location)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

// DeleteAccount removes the current user and everything they own
func (h *UserHandler) DeleteAccount(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	if err := h.userService.DeleteUser(c.Request.Context(), userID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Account deleted"})
}
