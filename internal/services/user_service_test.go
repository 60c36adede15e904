package services

import (
	"context"
	"errors"
	"testing"

	"geddit/internal/models"
	"geddit/internal/repository"
)

func TestRegisterAndLookup(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewRepository(db)
	service := NewUserService(repo)
	ctx := context.Background()

	phone := "(123)456-7890"
	user, err := service.Register(ctx, RegisterRequest{
		Username:  "asdf1234",
		FirstName: "Asdf",
		LastName:  "Qwerty",
		Email:     "asdf1234@example.edu",
		CellPhone: &phone,
	})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	found, err := service.GetUserByUsername(ctx, "asdf1234")
	if err != nil {
		t.Fatalf("GetUserByUsername failed: %v", err)
	}
	if found.ID != user.ID {
		t.Errorf("expected user %d, got %d", user.ID, found.ID)
	}
	if found.Email != "asdf1234@example.edu" {
		t.Errorf("unexpected email %q", found.Email)
	}
	if found.CellPhone == nil || *found.CellPhone != phone {
		t.Errorf("unexpected cell phone %v", found.CellPhone)
	}

	_, err = service.Register(ctx, RegisterRequest{
		Username:  "asdf1234",
		FirstName: "Other",
		LastName:  "Person",
		Email:     "other@example.edu",
	})
	if !errors.Is(err, ErrUsernameTaken) {
		t.Errorf("expected ErrUsernameTaken, got %v", err)
	}
}

func TestUpdateSettings(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewRepository(db)
	service := NewUserService(repo)
	ctx := context.Background()

	user := createTestUser(t, db, "asdf1234", "asdf1234@example.edu")

	phone := "(987)654-3210"
	updated, err := service.UpdateSettings(ctx, user.ID, &phone, &LocationInput{
		Name:      "Student Center",
		Latitude:  mustDecimal(t, "42.359100"),
		Longitude: mustDecimal(t, "-71.094800"),
	})
	if err != nil {
		t.Fatalf("UpdateSettings failed: %v", err)
	}

	if updated.CellPhone == nil || *updated.CellPhone != phone {
		t.Errorf("unexpected cell phone %v", updated.CellPhone)
	}
	if updated.Location == nil || updated.Location.Name != "Student Center" {
		t.Fatalf("expected location to be set, got %+v", updated.Location)
	}

	// A nil phone leaves the stored value alone
	again, err := service.UpdateSettings(ctx, user.ID, nil, nil)
	if err != nil {
		t.Fatalf("UpdateSettings failed: %v", err)
	}
	if again.CellPhone == nil || *again.CellPhone != phone {
		t.Errorf("expected phone to be preserved, got %v", again.CellPhone)
	}
}

func TestDeleteUserCascades(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewRepository(db)
	userService := NewUserService(repo)
	notifier := &fakeNotifier{}
	claimService := NewClaimService(repo, notifier)
	reservationService := NewReservationService(repo, notifier, "http://localhost:8080")
	ctx := context.Background()

	seller := createTestUser(t, db, "asdf", "asdf@example.edu")
	buyer := createTestUser(t, db, "qwerty", "qwerty@example.edu")
	category := createTestCategory(t, db, "Textbooks")

	ownListing := createTestItem(t, db, buyer.ID, category.ID, "Old Desk", "20.00")
	claimedItem := createTestItem(t, db, seller.ID, category.ID, "3.091 Textbook", "30.00")

	if _, err := claimService.ClaimItem(ctx, buyer.ID, claimedItem.ID); err != nil {
		t.Fatalf("ClaimItem failed: %v", err)
	}
	if _, err := reservationService.CreateReservation(ctx, buyer.ID, "bike", mustDecimal(t, "80.00")); err != nil {
		t.Fatalf("CreateReservation failed: %v", err)
	}

	if err := userService.DeleteUser(ctx, buyer.ID); err != nil {
		t.Fatalf("DeleteUser failed: %v", err)
	}

	// The claim the buyer held is gone and the item is available again
	var claimCount int64
	db.Model(&models.Claim{}).Where("buyer_id = ?", buyer.ID).Count(&claimCount)
	if claimCount != 0 {
		t.Errorf("expected buyer's claims to be deleted, found %d", claimCount)
	}
	var released models.Item
	if err := db.First(&released, claimedItem.ID).Error; err != nil {
		t.Fatalf("failed to reload item: %v", err)
	}
	if released.Claimed {
		t.Error("expected claimed item to be released when its buyer is deleted")
	}

	// The buyer's own listings and reservations are gone
	var itemCount int64
	db.Model(&models.Item{}).Where("id = ?", ownListing.ID).Count(&itemCount)
	if itemCount != 0 {
		t.Errorf("expected buyer's listings to be deleted, found %d", itemCount)
	}
	var reservationCount int64
	db.Model(&models.Reservation{}).Where("user_id = ?", buyer.ID).Count(&reservationCount)
	if reservationCount != 0 {
		t.Errorf("expected buyer's reservations to be deleted, found %d", reservationCount)
	}

	if _, err := userService.GetUserByID(ctx, buyer.ID); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound after delete, got %v", err)
	}

	// The seller is untouched
	if _, err := userService.GetUserByID(ctx, seller.ID); err != nil {
		t.Errorf("seller should survive the cascade, got %v", err)
	}
}

func TestCategoriesSortedByName(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewRepository(db)
	service := NewCategoryService(repo)
	ctx := context.Background()

	if _, err := service.CreateCategory(ctx, "3.091"); err != nil {
		t.Fatalf("CreateCategory failed: %v", err)
	}
	if _, err := service.CreateCategory(ctx, "1.00"); err != nil {
		t.Fatalf("CreateCategory failed: %v", err)
	}

	categories, err := service.ListCategories(ctx)
	if err != nil {
		t.Fatalf("ListCategories failed: %v", err)
	}
	if len(categories) != 2 {
		t.Fatalf("expected 2 categories, got %d", len(categories))
	}
	if categories[0].Name != "1.00" || categories[1].Name != "3.091" {
		t.Errorf("expected name-sorted order [1.00 3.091], got [%s %s]",
			categories[0].Name, categories[1].Name)
	}

	found, err := service.GetCategoryByName(ctx, "3.091")
	if err != nil {
		t.Fatalf("GetCategoryByName failed: %v", err)
	}
	if found.Name != "3.091" {
		t.Errorf("unexpected category %q", found.Name)
	}

	if _, err := service.GetCategoryByName(ctx, "missing"); !errors.Is(err, ErrCategoryNotFound) {
		t.Errorf("expected ErrCategoryNotFound, got %v", err)
	}
}
