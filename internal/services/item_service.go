package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"geddit/internal/models"
	"geddit/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ItemService handles the listing lifecycle and the browse filter
type ItemService struct {
	repo         *repository.Repository
	reservations *ReservationService
}

// NewItemService creates a new ItemService
func NewItemService(repo *repository.Repository, reservations *ReservationService) *ItemService {
	return &ItemService{repo: repo, reservations: reservations}
}

// ListItemRequest holds the fields of a new listing
type ListItemRequest struct {
	Name        string
	Description string
	CategoryID  uint
	Price       decimal.Decimal
	WithImage   bool
}

// ListItem persists a new unclaimed item for the seller, then runs
// reservation matching and notification in the same call. Notification is
// best-effort; the item is returned even if no owner could be reached.
func (s *ItemService) ListItem(ctx context.Context, sellerID uint, req ListItemRequest) (*models.Item, error) {
	if err := validatePrice(req.Price); err != nil {
		return nil, err
	}

	if _, err := s.repo.GetCategoryByID(ctx, req.CategoryID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}

	item := &models.Item{
		SellerID:    sellerID,
		Name:        req.Name,
		Description: req.Description,
		CategoryID:  req.CategoryID,
		Price:       req.Price,
		Claimed:     false,
		UploadedAt:  time.Now().UTC(),
	}
	if req.WithImage {
		handle := uuid.NewString()
		item.ImageHandle = &handle
	}

	if err := s.repo.CreateItem(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to create item: %w", err)
	}

	s.reservations.NotifyMatches(ctx, item)

	return item, nil
}

// GetItem retrieves an item by ID
func (s *ItemService) GetItem(ctx context.Context, itemID uint) (*models.Item, error) {
	item, err := s.repo.GetItemByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}
	return item, nil
}

// FilterItems retrieves unclaimed items, newest first. All provided criteria
// must hold, and every keyword of the search query must appear in the item
// name. This is deliberately stricter than reservation matching, which
// unions per-keyword results.
func (s *ItemService) FilterItems(ctx context.Context, categoryID *uint, searchQuery string, itemID *uint) ([]models.Item, error) {
	filter := repository.ItemFilter{
		CategoryID: categoryID,
		Keywords:   strings.Fields(searchQuery),
		ItemID:     itemID,
	}
	return s.repo.FilterItems(ctx, filter)
}

// GetSellerItems retrieves all items listed by a seller, claimed or not
func (s *ItemService) GetSellerItems(ctx context.Context, sellerID uint) ([]models.Item, error) {
	return s.repo.GetItemsBySeller(ctx, sellerID)
}

// DeleteItem deletes an item and any claim against it; only the seller may
// delete a listing, whatever its claim state.
func (s *ItemService) DeleteItem(ctx context.Context, userID, itemID uint) error {
	item, err := s.repo.GetItemByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrItemNotFound
		}
		return err
	}

	if item.SellerID != userID {
		return ErrNotOwner
	}

	return s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		if err := tx.DeleteClaimsByItem(ctx, itemID); err != nil {
			return fmt.Errorf("failed to delete claims for item %d: %w", itemID, err)
		}
		return tx.DeleteItem(ctx, itemID)
	})
}
