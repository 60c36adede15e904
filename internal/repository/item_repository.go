package repository

import (
	"context"
	"strings"

	"geddit/internal/models"
)

// ItemFilter holds the optional browse criteria. Provided criteria compose
// with AND; keywords must all appear in the item name.
type ItemFilter struct {
	CategoryID *uint
	Keywords   []string
	ItemID     *uint
}

// CreateItem creates a new item
func (r *Repository) CreateItem(ctx context.Context, item *models.Item) error {
	return r.db.WithContext(ctx).Create(item).Error
}

// GetItemByID retrieves an item by ID
func (r *Repository) GetItemByID(ctx context.Context, itemID uint) (*models.Item, error) {
	var item models.Item
	err := r.db.WithContext(ctx).Preload("Seller").Preload("Category").First(&item, itemID).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// GetItemsBySeller retrieves all items listed by a seller, newest first
func (r *Repository) GetItemsBySeller(ctx context.Context, sellerID uint) ([]models.Item, error) {
	var items []models.Item
	err := r.db.WithContext(ctx).
		Where("seller_id = ?", sellerID).
		Order("uploaded_at DESC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

// FilterItems retrieves unclaimed items matching the filter, newest first.
// Every keyword must match the item name as a case-insensitive substring.
func (r *Repository) FilterItems(ctx context.Context, filter ItemFilter) ([]models.Item, error) {
	query := r.db.WithContext(ctx).Where("claimed = ?", false)

	if filter.CategoryID != nil {
		query = query.Where("category_id = ?", *filter.CategoryID)
	}
	if filter.ItemID != nil {
		query = query.Where("id = ?", *filter.ItemID)
	}
	for _, keyword := range filter.Keywords {
		query = query.Where("lower(name) LIKE ? ESCAPE '\\'", "%"+escapeLike(strings.ToLower(keyword))+"%")
	}

	var items []models.Item
	err := query.
		Preload("Seller").
		Preload("Category").
		Order("uploaded_at DESC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

// MarkItemClaimed flips the claimed flag only if the item is currently
// unclaimed. Returns false when the item was already claimed (or the update
// matched no row), so two concurrent claims cannot both win.
func (r *Repository) MarkItemClaimed(ctx context.Context, itemID uint) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Item{}).
		Where("id = ? AND claimed = ?", itemID, false).
		Update("claimed", true)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// MarkItemUnclaimed resets the claimed flag
func (r *Repository) MarkItemUnclaimed(ctx context.Context, itemID uint) error {
	return r.db.WithContext(ctx).
		Model(&models.Item{}).
		Where("id = ?", itemID).
		Update("claimed", false).Error
}

// DeleteItem deletes an item
func (r *Repository) DeleteItem(ctx context.Context, itemID uint) error {
	return r.db.WithContext(ctx).Delete(&models.Item{}, itemID).Error
}

// DeleteItemsBySeller deletes all items listed by a seller
func (r *Repository) DeleteItemsBySeller(ctx context.Context, sellerID uint) error {
	return r.db.WithContext(ctx).Where("seller_id = ?", sellerID).Delete(&models.Item{}).Error
}

// CreateClaim creates a new claim
func (r *Repository) CreateClaim(ctx context.Context, claim *models.Claim) error {
	return r.db.WithContext(ctx).Create(claim).Error
}

// GetClaimByBuyerAndItem retrieves the claim a buyer holds on an item
func (r *Repository) GetClaimByBuyerAndItem(ctx context.Context, buyerID, itemID uint) (*models.Claim, error) {
	var claim models.Claim
	err := r.db.WithContext(ctx).
		Where("buyer_id = ? AND item_id = ?", buyerID, itemID).
		First(&claim).Error
	if err != nil {
		return nil, err
	}
	return &claim, nil
}

// GetClaimsByBuyer retrieves all claims held by a buyer with their items
func (r *Repository) GetClaimsByBuyer(ctx context.Context, buyerID uint) ([]models.Claim, error) {
	var claims []models.Claim
	err := r.db.WithContext(ctx).
		Where("buyer_id = ?", buyerID).
		Preload("Item").
		Preload("Item.Seller").
		Order("created_at DESC").
		Find(&claims).Error
	if err != nil {
		return nil, err
	}
	return claims, nil
}

// DeleteClaim deletes a claim
func (r *Repository) DeleteClaim(ctx context.Context, claimID uint) error {
	return r.db.WithContext(ctx).Delete(&models.Claim{}, claimID).Error
}

// DeleteClaimsByItem deletes any claims against an item
func (r *Repository) DeleteClaimsByItem(ctx context.Context, itemID uint) error {
	return r.db.WithContext(ctx).Where("item_id = ?", itemID).Delete(&models.Claim{}).Error
}
