package services

import (
	"context"
	"errors"
	"fmt"

	"geddit/internal/models"
	"geddit/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// UserService handles registration, profiles and settings
type UserService struct {
	repo *repository.Repository
}

// NewUserService creates a new UserService
func NewUserService(repo *repository.Repository) *UserService {
	return &UserService{repo: repo}
}

// RegisterRequest holds the fields of a new account
type RegisterRequest struct {
	Username  string
	FirstName string
	LastName  string
	Email     string
	CellPhone *string
}

// Register creates a new user account. The unique index on username is the
// arbiter: a duplicate insert maps to ErrUsernameTaken, so two concurrent
// registrations cannot both win.
func (s *UserService) Register(ctx context.Context, req RegisterRequest) (*models.User, error) {
	user := &models.User{
		Username:  req.Username,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		CellPhone: req.CellPhone,
	}

	if err := s.repo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrUsernameTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

// GetUserByUsername retrieves a user by username
func (s *UserService) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	user, err := s.repo.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// GetUserByID retrieves a user by ID
func (s *UserService) GetUserByID(ctx context.Context, userID uint) (*models.User, error) {
	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// LocationInput holds the fields of a meetup spot
type LocationInput struct {
	Name      string
	Latitude  decimal.Decimal
	Longitude decimal.Decimal
}

// UpdateSettings updates the user's cell phone and meetup location. A nil
// field leaves the current value untouched.
func (s *UserService) UpdateSettings(ctx context.Context, userID uint, cellPhone *string, location *LocationInput) (*models.User, error) {
	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if cellPhone != nil {
		user.CellPhone = cellPhone
	}

	if location != nil {
		loc := &models.Location{
			Name:      location.Name,
			Latitude:  location.Latitude,
			Longitude: location.Longitude,
		}
		if err := s.repo.CreateLocation(ctx, loc); err != nil {
			return nil, fmt.Errorf("failed to create location: %w", err)
		}
		user.LocationID = &loc.ID
		user.Location = loc
	}

	if err := s.repo.UpdateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return user, nil
}

// DeleteUser removes an account and everything it owns in one transaction:
// the user's claims are released, claims against the user's own listings are
// dropped with the listings, and the user's reservations go too.
func (s *UserService) DeleteUser(ctx context.Context, userID uint) error {
	_, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	return s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		claims, err := tx.GetClaimsByBuyer(ctx, userID)
		if err != nil {
			return fmt.Errorf("failed to load claims: %w", err)
		}
		for _, claim := range claims {
			if err := tx.MarkItemUnclaimed(ctx, claim.ItemID); err != nil {
				return fmt.Errorf("failed to release item %d: %w", claim.ItemID, err)
			}
			if err := tx.DeleteClaim(ctx, claim.ID); err != nil {
				return fmt.Errorf("failed to delete claim %d: %w", claim.ID, err)
			}
		}

		items, err := tx.GetItemsBySeller(ctx, userID)
		if err != nil {
			return fmt.Errorf("failed to load items: %w", err)
		}
		for _, item := range items {
			if err := tx.DeleteClaimsByItem(ctx, item.ID); err != nil {
				return fmt.Errorf("failed to delete claims for item %d: %w", item.ID, err)
			}
		}
		if err := tx.DeleteItemsBySeller(ctx, userID); err != nil {
			return fmt.Errorf("failed to delete items: %w", err)
		}

		if err := tx.DeleteReservationsByUser(ctx, userID); err != nil {
			return fmt.Errorf("failed to delete reservations: %w", err)
		}

		return tx.DeleteUser(ctx, userID)
	})
}
