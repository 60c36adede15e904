package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"geddit/internal/models"
	"geddit/internal/notify"
	"geddit/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// notifyTimeout bounds each outgoing notification call so a slow transport
// cannot stall the listing flow.
const notifyTimeout = 10 * time.Second

// ReservationService handles standing reservations: CRUD for their owners,
// matching against newly listed items, and the notification fan-out.
type ReservationService struct {
	repo        *repository.Repository
	notifier    notify.Notifier
	siteRootURL string
}

// NewReservationService creates a new ReservationService
func NewReservationService(repo *repository.Repository, notifier notify.Notifier, siteRootURL string) *ReservationService {
	return &ReservationService{
		repo:        repo,
		notifier:    notifier,
		siteRootURL: strings.TrimRight(siteRootURL, "/"),
	}
}

// CreateReservation creates a standing reservation for a user
func (s *ReservationService) CreateReservation(ctx context.Context, userID uint, searchQuery string, maxPrice decimal.Decimal) (*models.Reservation, error) {
	if err := validatePrice(maxPrice); err != nil {
		return nil, err
	}

	reservation := &models.Reservation{
		UserID:      userID,
		SearchQuery: searchQuery,
		MaxPrice:    maxPrice,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.repo.CreateReservation(ctx, reservation); err != nil {
		return nil, fmt.Errorf("failed to create reservation: %w", err)
	}
	return reservation, nil
}

// GetUserReservations retrieves all reservations owned by a user
func (s *ReservationService) GetUserReservations(ctx context.Context, userID uint) ([]models.Reservation, error) {
	return s.repo.GetReservationsByUser(ctx, userID)
}

// DeleteReservation deletes a reservation; only its owner may do so
func (s *ReservationService) DeleteReservation(ctx context.Context, userID, reservationID uint) error {
	reservation, err := s.repo.GetReservationByID(ctx, reservationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrReservationNotFound
		}
		return err
	}

	if reservation.UserID != userID {
		return ErrNotOwner
	}

	return s.repo.DeleteReservation(ctx, reservationID)
}

// FindMatchingReservations returns every reservation matching the item: the
// item name is split into whitespace keywords, each keyword matches
// reservations containing it in their search query at or above the item
// price, and the per-keyword sets are unioned. A reservation matching
// several keywords appears once.
func (s *ReservationService) FindMatchingReservations(ctx context.Context, item *models.Item) ([]models.Reservation, error) {
	matched := make(map[uint]models.Reservation)

	for _, keyword := range strings.Fields(item.Name) {
		reservations, err := s.repo.FindReservationsForKeyword(ctx, keyword, item.Price)
		if err != nil {
			return nil, fmt.Errorf("failed to match keyword %q: %w", keyword, err)
		}
		for _, reservation := range reservations {
			if _, seen := matched[reservation.ID]; !seen {
				matched[reservation.ID] = reservation
			}
		}
	}

	result := make([]models.Reservation, 0, len(matched))
	for _, reservation := range matched {
		result = append(result, reservation)
	}
	return result, nil
}

// NotifyMatches finds the reservations matching a newly listed item and
// emails each distinct owner once, however many of their reservations
// matched. Delivery is best-effort: failures are logged and never returned,
// so they cannot fail the listing that triggered them.
func (s *ReservationService) NotifyMatches(ctx context.Context, item *models.Item) {
	matches, err := s.FindMatchingReservations(ctx, item)
	if err != nil {
		log.Printf("Warning: reservation matching failed for item %d: %v", item.ID, err)
		return
	}

	// First seen wins; the dedup key is the owner, not the reservation
	owners := make(map[uint]*models.User)
	for i := range matches {
		if matches[i].User == nil {
			continue
		}
		if _, seen := owners[matches[i].UserID]; !seen {
			owners[matches[i].UserID] = matches[i].User
		}
	}

	subject := fmt.Sprintf("[Geddit] %s is now available", item.Name)
	body := fmt.Sprintf("Good news! %s was just listed for $%s. Geddit before it's gone: %s/items/%d",
		item.Name, item.Price.StringFixed(2), s.siteRootURL, item.ID)

	for _, owner := range owners {
		sendCtx, cancel := context.WithTimeout(ctx, notifyTimeout)
		err := s.notifier.SendEmail(sendCtx, owner.Email, subject, body)
		cancel()
		if err != nil {
			log.Printf("Warning: failed to notify user %d about item %d: %v", owner.ID, item.ID, err)
		}
	}
}
