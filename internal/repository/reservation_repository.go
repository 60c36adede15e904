package repository

import (
	"context"
	"strings"

	"geddit/internal/models"

	"github.com/shopspring/decimal"
)

// CreateReservation creates a new reservation
func (r *Repository) CreateReservation(ctx context.Context, reservation *models.Reservation) error {
	return r.db.WithContext(ctx).Create(reservation).Error
}

// GetReservationByID retrieves a reservation by ID
func (r *Repository) GetReservationByID(ctx context.Context, reservationID uint) (*models.Reservation, error) {
	var reservation models.Reservation
	err := r.db.WithContext(ctx).First(&reservation, reservationID).Error
	if err != nil {
		return nil, err
	}
	return &reservation, nil
}

// GetReservationsByUser retrieves all reservations owned by a user
func (r *Repository) GetReservationsByUser(ctx context.Context, userID uint) ([]models.Reservation, error) {
	var reservations []models.Reservation
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&reservations).Error
	if err != nil {
		return nil, err
	}
	return reservations, nil
}

// FindReservationsForKeyword retrieves reservations whose search query
// contains the keyword as a case-insensitive substring and whose max price
// covers the given price. The price boundary is inclusive.
func (r *Repository) FindReservationsForKeyword(ctx context.Context, keyword string, price decimal.Decimal) ([]models.Reservation, error) {
	var reservations []models.Reservation
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("lower(search_query) LIKE ? ESCAPE '\\' AND max_price >= ?", "%"+escapeLike(strings.ToLower(keyword))+"%", price).
		Find(&reservations).Error
	if err != nil {
		return nil, err
	}
	return reservations, nil
}

// DeleteReservation deletes a reservation
func (r *Repository) DeleteReservation(ctx context.Context, reservationID uint) error {
	return r.db.WithContext(ctx).Delete(&models.Reservation{}, reservationID).Error
}

// DeleteReservationsByUser deletes all reservations owned by a user
func (r *Repository) DeleteReservationsByUser(ctx context.Context, userID uint) error {
	return r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.Reservation{}).Error
}
