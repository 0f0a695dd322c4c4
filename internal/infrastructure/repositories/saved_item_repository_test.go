package repositories

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/saruni-spec/pin-registration/domain"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := db.AutoMigrate(&DBSavedItem{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func TestSavedItemRepositoryImpl_CreateAndDrain(t *testing.T) {
	repo := NewSavedItemRepository(newTestDB(t))
	ctx := context.Background()

	fund := decimal.NewFromInt(15000)
	items := []domain.SavedItem{
		{Phone: "254712345678", Category: "Electronics", HSCode: "8471.30", Item: "Laptop", Quantity: 1, Amount: decimal.NewFromInt(1200), Currency: "USD"},
		{Phone: "254712345678", Category: "Cash", Item: "Currency over $10,000", Quantity: 1, Amount: decimal.Zero, ValueOfFund: &fund, Currency: "USD"},
		{Phone: "254700000000", Category: "Other", Item: "Camera", Quantity: 2, Amount: decimal.NewFromInt(400), Currency: "EUR"},
	}
	for i := range items {
		if err := repo.Create(ctx, &items[i]); err != nil {
			t.Fatalf("create failed: %v", err)
		}
		if items[i].ID == 0 {
			t.Error("expected an assigned id after create")
		}
	}

	drained, err := repo.DrainByPhone(ctx, "254712345678")
	if err != nil {
		t.Fatalf("drain failed: %v", err)
	}
	if len(drained) != 2 {
		t.Fatalf("expected 2 items, got %d", len(drained))
	}
	if drained[0].Item != "Laptop" || drained[1].Item != "Currency over $10,000" {
		t.Errorf("drain order is wrong: %+v", drained)
	}
	if drained[1].ValueOfFund == nil || !drained[1].ValueOfFund.Equal(fund) {
		t.Errorf("value of fund did not round-trip: %+v", drained[1].ValueOfFund)
	}

	// Drain is destructive for the phone it targets, and only that phone.
	empty, err := repo.DrainByPhone(ctx, "254712345678")
	if err != nil {
		t.Fatalf("drain failed: %v", err)
	}
	if len(empty) != 0 {
		t.Errorf("expected empty second drain, got %d items", len(empty))
	}

	other, err := repo.DrainByPhone(ctx, "254700000000")
	if err != nil {
		t.Fatalf("drain failed: %v", err)
	}
	if len(other) != 1 || other[0].Item != "Camera" {
		t.Errorf("other phone's items were disturbed: %+v", other)
	}
}

func TestSavedItemRepositoryImpl_DrainEmpty(t *testing.T) {
	repo := NewSavedItemRepository(newTestDB(t))

	drained, err := repo.DrainByPhone(context.Background(), "254799999999")
	if err != nil {
		t.Fatalf("drain failed: %v", err)
	}
	if len(drained) != 0 {
		t.Errorf("expected no items, got %d", len(drained))
	}
}
