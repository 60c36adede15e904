package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"geddit/internal/models"
	"geddit/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Discard,
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}

	err = db.AutoMigrate(
		&models.Location{},
		&models.Category{},
		&models.User{},
		&models.Item{},
		&models.Claim{},
		&models.Reservation{},
	)
	if err != nil {
		t.Fatalf("failed to migrate database: %v", err)
	}

	return db
}

type sentMessage struct {
	to      string
	subject string
	body    string
}

// fakeNotifier records outgoing messages; with fail set every send errors
type fakeNotifier struct {
	emails []sentMessage
	smses  []sentMessage
	fail   bool
}

func (f *fakeNotifier) SendEmail(_ context.Context, to, subject, body string) error {
	if f.fail {
		return errors.New("mail relay unreachable")
	}
	f.emails = append(f.emails, sentMessage{to: to, subject: subject, body: body})
	return nil
}

func (f *fakeNotifier) SendSMS(_ context.Context, to, body string) error {
	if f.fail {
		return errors.New("sms gateway unreachable")
	}
	f.smses = append(f.smses, sentMessage{to: to, body: body})
	return nil
}

func createTestUser(t *testing.T, db *gorm.DB, username, email string) *models.User {
	user := &models.User{
		Username:  username,
		FirstName: "Test",
		LastName:  "User",
		Email:     email,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	return user
}

func createTestCategory(t *testing.T, db *gorm.DB, name string) *models.Category {
	category := &models.Category{Name: name}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("failed to create category: %v", err)
	}
	return category
}

func createTestItem(t *testing.T, db *gorm.DB, sellerID, categoryID uint, name, price string) *models.Item {
	item := &models.Item{
		SellerID:   sellerID,
		Name:       name,
		CategoryID: categoryID,
		Price:      mustDecimal(t, price),
		UploadedAt: time.Now().UTC(),
	}
	if err := db.Create(item).Error; err != nil {
		t.Fatalf("failed to create item: %v", err)
	}
	return item
}

func mustDecimal(t *testing.T, s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("bad decimal %q: %v", s, err)
	}
	return d
}

func TestFindMatchingReservationsUnion(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewRepository(db)
	service := NewReservationService(repo, &fakeNotifier{}, "http://localhost:8080")
	ctx := context.Background()

	owner := createTestUser(t, db, "asdf1234", "asdf1234@example.edu")
	category := createTestCategory(t, db, "Textbooks")

	firstOnly, err := service.CreateReservation(ctx, owner.ID, "8.01 anything", mustDecimal(t, "50.00"))
	if err != nil {
		t.Fatalf("CreateReservation failed: %v", err)
	}
	secondOnly, err := service.CreateReservation(ctx, owner.ID, "cheap textbook", mustDecimal(t, "50.00"))
	if err != nil {
		t.Fatalf("CreateReservation failed: %v", err)
	}
	both, err := service.CreateReservation(ctx, owner.ID, "8.01 Textbook", mustDecimal(t, "50.00"))
	if err != nil {
		t.Fatalf("CreateReservation failed: %v", err)
	}
	if _, err := service.CreateReservation(ctx, owner.ID, "road bike", mustDecimal(t, "50.00")); err != nil {
		t.Fatalf("CreateReservation failed: %v", err)
	}

	item := createTestItem(t, db, owner.ID, category.ID, "8.01 Textbook", "30.00")

	matches, err := service.FindMatchingReservations(ctx, item)
	if err != nil {
		t.Fatalf("FindMatchingReservations failed: %v", err)
	}

	if len(matches) != 3 {
		t.Fatalf("expected 3 matches, got %d", len(matches))
	}

	seen := make(map[uint]int)
	for _, match := range matches {
		seen[match.ID]++
	}
	for _, want := range []uint{firstOnly.ID, secondOnly.ID, both.ID} {
		if seen[want] != 1 {
			t.Errorf("reservation %d: expected exactly one occurrence, got %d", want, seen[want])
		}
	}
}

func TestFindMatchingReservationsPriceBoundary(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewRepository(db)
	service := NewReservationService(repo, &fakeNotifier{}, "http://localhost:8080")
	ctx := context.Background()

	owner := createTestUser(t, db, "asdf1234", "asdf1234@example.edu")
	category := createTestCategory(t, db, "Textbooks")

	exact, err := service.CreateReservation(ctx, owner.ID, "textbook", mustDecimal(t, "30.00"))
	if err != nil {
		t.Fatalf("CreateReservation failed: %v", err)
	}
	if _, err := service.CreateReservation(ctx, owner.ID, "textbook", mustDecimal(t, "29.99")); err != nil {
		t.Fatalf("CreateReservation failed: %v", err)
	}

	item := createTestItem(t, db, owner.ID, category.ID, "Textbook", "30.00")

	matches, err := service.FindMatchingReservations(ctx, item)
	if err != nil {
		t.Fatalf("FindMatchingReservations failed: %v", err)
	}

	if len(matches) != 1 {
		t.Fatalf("expected 1 match, got %d", len(matches))
	}
	if matches[0].ID != exact.ID {
		t.Errorf("expected reservation %d (max price equal to item price), got %d", exact.ID, matches[0].ID)
	}
}

func TestFindMatchingReservationsLiteralWildcards(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewRepository(db)
	service := NewReservationService(repo, &fakeNotifier{}, "http://localhost:8080")
	ctx := context.Background()

	owner := createTestUser(t, db, "asdf1234", "asdf1234@example.edu")
	category := createTestCategory(t, db, "Furniture")

	// "50%" and "1950s" share no literal substring; % must not act as a wildcard
	if _, err := service.CreateReservation(ctx, owner.ID, "1950s desk lamp", mustDecimal(t, "50.00")); err != nil {
		t.Fatalf("CreateReservation failed: %v", err)
	}
	literal, err := service.CreateReservation(ctx, owner.ID, "everything 50% off", mustDecimal(t, "50.00"))
	if err != nil {
		t.Fatalf("CreateReservation failed: %v", err)
	}

	item := createTestItem(t, db, owner.ID, category.ID, "50%", "30.00")

	matches, err := service.FindMatchingReservations(ctx, item)
	if err != nil {
		t.Fatalf("FindMatchingReservations failed: %v", err)
	}
	if len(matches) != 1 {
		t.Fatalf("expected 1 match, got %d", len(matches))
	}
	if matches[0].ID != literal.ID {
		t.Errorf("expected reservation %d (literal substring), got %d", literal.ID, matches[0].ID)
	}

	underscoreItem := createTestItem(t, db, owner.ID, category.ID, "desk_lamp", "30.00")
	matches, err = service.FindMatchingReservations(ctx, underscoreItem)
	if err != nil {
		t.Fatalf("FindMatchingReservations failed: %v", err)
	}
	if len(matches) != 0 {
		t.Errorf("expected no matches for underscore keyword, got %d", len(matches))
	}
}

func TestFindMatchingReservationsEmptyName(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewRepository(db)
	service := NewReservationService(repo, &fakeNotifier{}, "http://localhost:8080")
	ctx := context.Background()

	owner := createTestUser(t, db, "asdf1234", "asdf1234@example.edu")
	if _, err := service.CreateReservation(ctx, owner.ID, "anything", mustDecimal(t, "100.00")); err != nil {
		t.Fatalf("CreateReservation failed: %v", err)
	}

	item := &models.Item{Name: "", Price: mustDecimal(t, "1.00")}

	matches, err := service.FindMatchingReservations(ctx, item)
	if err != nil {
		t.Fatalf("FindMatchingReservations failed: %v", err)
	}
	if len(matches) != 0 {
		t.Errorf("expected no matches for empty item name, got %d", len(matches))
	}
}

func TestNotifyMatchesDeduplicatesOwners(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewRepository(db)
	notifier := &fakeNotifier{}
	service := NewReservationService(repo, notifier, "http://localhost:8080")
	ctx := context.Background()

	owner := createTestUser(t, db, "qwerty", "qwerty@example.edu")
	other := createTestUser(t, db, "zxcvb", "zxcvb@example.edu")
	category := createTestCategory(t, db, "Textbooks")

	// Two reservations for the same owner, both matching the item
	if _, err := service.CreateReservation(ctx, owner.ID, "8.01 textbook", mustDecimal(t, "50.00")); err != nil {
		t.Fatalf("CreateReservation failed: %v", err)
	}
	if _, err := service.CreateReservation(ctx, owner.ID, "physics textbook", mustDecimal(t, "40.00")); err != nil {
		t.Fatalf("CreateReservation failed: %v", err)
	}
	if _, err := service.CreateReservation(ctx, other.ID, "textbook", mustDecimal(t, "35.00")); err != nil {
		t.Fatalf("CreateReservation failed: %v", err)
	}

	item := createTestItem(t, db, other.ID, category.ID, "8.01 Textbook", "30.00")

	service.NotifyMatches(ctx, item)

	if len(notifier.emails) != 2 {
		t.Fatalf("expected 2 emails (one per distinct owner), got %d", len(notifier.emails))
	}

	perAddress := make(map[string]int)
	for _, email := range notifier.emails {
		perAddress[email.to]++
	}
	if perAddress[owner.Email] != 1 {
		t.Errorf("owner with two matching reservations: expected exactly 1 email, got %d", perAddress[owner.Email])
	}
	if perAddress[other.Email] != 1 {
		t.Errorf("other owner: expected exactly 1 email, got %d", perAddress[other.Email])
	}
}

func TestNotifyMatchesLinkAndTemplate(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewRepository(db)
	notifier := &fakeNotifier{}
	service := NewReservationService(repo, notifier, "http://geddit.example.com/")
	ctx := context.Background()

	owner := createTestUser(t, db, "qwerty", "qwerty@example.edu")
	category := createTestCategory(t, db, "Textbooks")

	if _, err := service.CreateReservation(ctx, owner.ID, "textbook", mustDecimal(t, "50.00")); err != nil {
		t.Fatalf("CreateReservation failed: %v", err)
	}

	item := createTestItem(t, db, owner.ID, category.ID, "Textbook", "30.00")
	service.NotifyMatches(ctx, item)

	if len(notifier.emails) != 1 {
		t.Fatalf("expected 1 email, got %d", len(notifier.emails))
	}

	wantLink := "http://geddit.example.com/items/"
	if !strings.Contains(notifier.emails[0].body, wantLink) {
		t.Errorf("email body %q missing deep link prefix %q", notifier.emails[0].body, wantLink)
	}
	if !strings.Contains(notifier.emails[0].subject, "Textbook") {
		t.Errorf("email subject %q missing item name", notifier.emails[0].subject)
	}
}

func TestDeleteReservationOwnership(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewRepository(db)
	service := NewReservationService(repo, &fakeNotifier{}, "http://localhost:8080")
	ctx := context.Background()

	owner := createTestUser(t, db, "qwerty", "qwerty@example.edu")
	other := createTestUser(t, db, "zxcvb", "zxcvb@example.edu")

	reservation, err := service.CreateReservation(ctx, owner.ID, "textbook", mustDecimal(t, "50.00"))
	if err != nil {
		t.Fatalf("CreateReservation failed: %v", err)
	}

	if err := service.DeleteReservation(ctx, other.ID, reservation.ID); !errors.Is(err, ErrNotOwner) {
		t.Errorf("expected ErrNotOwner, got %v", err)
	}

	if err := service.DeleteReservation(ctx, owner.ID, reservation.ID); err != nil {
		t.Fatalf("DeleteReservation failed: %v", err)
	}

	if err := service.DeleteReservation(ctx, owner.ID, reservation.ID); !errors.Is(err, ErrReservationNotFound) {
		t.Errorf("expected ErrReservationNotFound, got %v", err)
	}
}
