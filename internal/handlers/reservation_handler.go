package handlers

import (
	"net/http"

	"geddit/internal/auth"
	"geddit/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// ReservationHandler handles standing reservations
type ReservationHandler struct {
	reservationService *services.ReservationService
}

// NewReservationHandler creates a new ReservationHandler
func NewReservationHandler(reservationService *services.ReservationService) *ReservationHandler {
	return &ReservationHandler{reservationService: reservationService}
}

// CreateReservation registers a standing request for the authenticated user
func (h *ReservationHandler) CreateReservation(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req struct {
		SearchQuery string          `json:"search_query" binding:"required,max=1000"`
		MaxPrice    decimal.Decimal `json:"max_price" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	reservation, err := h.reservationService.CreateReservation(c.Request.Context(), userID, req.SearchQuery, req.MaxPrice)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"reservation": reservation})
}

// GetReservations returns the authenticated user's reservations
func (h *ReservationHandler) GetReservations(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	reservations, err := h.reservationService.GetUserReservations(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch reservations"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"reservations": reservations,
		"count":        len(reservations),
	})
}

// DeleteReservation removes one of the authenticated user's reservations
func (h *ReservationHandler) DeleteReservation(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	reservationID, err := parseIDParam(c)
	if err != nil {
		return
	}

	if err := h.reservationService.DeleteReservation(c.Request.Context(), userID, reservationID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Reservation deleted"})
}
