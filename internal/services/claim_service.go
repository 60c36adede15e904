package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"geddit/internal/models"
	"geddit/internal/notify"
	"geddit/internal/repository"

	"gorm.io/gorm"
)

// ClaimService handles claim state transitions and buyer/seller contact
type ClaimService struct {
	repo     *repository.Repository
	notifier notify.Notifier
}

// NewClaimService creates a new ClaimService
func NewClaimService(repo *repository.Repository, notifier notify.Notifier) *ClaimService {
	return &ClaimService{repo: repo, notifier: notifier}
}

// ClaimItem claims an unclaimed item for a buyer. The claimed-flag flip and
// the claim row are written in one transaction, and the flip is conditional
// on the item being unclaimed, so concurrent buyers cannot both succeed.
func (s *ClaimService) ClaimItem(ctx context.Context, buyerID, itemID uint) (*models.Claim, error) {
	var claim *models.Claim

	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		flipped, err := tx.MarkItemClaimed(ctx, itemID)
		if err != nil {
			return fmt.Errorf("failed to mark item claimed: %w", err)
		}
		if !flipped {
			if _, err := tx.GetItemByID(ctx, itemID); err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrItemNotFound
				}
				return err
			}
			return ErrItemAlreadyClaimed
		}

		claim = &models.Claim{
			BuyerID:   buyerID,
			ItemID:    itemID,
			CreatedAt: time.Now().UTC(),
		}
		return tx.CreateClaim(ctx, claim)
	})
	if err != nil {
		return nil, err
	}

	return claim, nil
}

// UnclaimItem releases the buyer's claim on an item: the claimed flag is
// reset and the claim row deleted in one transaction. Fails with
// ErrClaimNotFound when the buyer holds no claim on the item.
func (s *ClaimService) UnclaimItem(ctx context.Context, buyerID, itemID uint) error {
	return s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		claim, err := tx.GetClaimByBuyerAndItem(ctx, buyerID, itemID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrClaimNotFound
			}
			return err
		}

		if err := tx.MarkItemUnclaimed(ctx, itemID); err != nil {
			return fmt.Errorf("failed to mark item unclaimed: %w", err)
		}
		return tx.DeleteClaim(ctx, claim.ID)
	})
}

// GetCart retrieves the buyer's claims with their items
func (s *ClaimService) GetCart(ctx context.Context, buyerID uint) ([]models.Claim, error) {
	return s.repo.GetClaimsByBuyer(ctx, buyerID)
}

// ContactSeller emails the item's seller on the buyer's behalf. When the
// buyer asks for SMS as well and the seller has a phone number on file, a
// text goes out too; SMS failure alone does not fail the contact.
func (s *ClaimService) ContactSeller(ctx context.Context, buyerID, itemID uint, withSMS bool) error {
	buyer, err := s.repo.GetUserByID(ctx, buyerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	item, err := s.repo.GetItemByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrItemNotFound
		}
		return err
	}
	if item.Seller == nil {
		return ErrUserNotFound
	}

	buyerName := fmt.Sprintf("%s %s", buyer.FirstName, buyer.LastName)
	subject := fmt.Sprintf("[Geddit] Buyer for %s", item.Name)
	body := fmt.Sprintf("%s wants to buy your %s. Please contact your buyer at %s",
		buyerName, item.Name, buyer.Email)

	sendCtx, cancel := context.WithTimeout(ctx, notifyTimeout)
	defer cancel()

	if err := s.notifier.SendEmail(sendCtx, item.Seller.Email, subject, body); err != nil {
		return fmt.Errorf("%w: %v", ErrNotificationFailed, err)
	}

	if withSMS && item.Seller.CellPhone != nil {
		smsCtx, smsCancel := context.WithTimeout(ctx, notifyTimeout)
		defer smsCancel()
		if err := s.notifier.SendSMS(smsCtx, *item.Seller.CellPhone, body); err != nil {
			log.Printf("Warning: SMS to seller %d failed for item %d: %v", item.SellerID, itemID, err)
		}
	}

	return nil
}
