package repositories

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/saruni-spec/pin-registration/domain"
)

// SavedItemRepositoryImpl implements domain.SavedItemRepository using GORM
type SavedItemRepositoryImpl struct {
	db *gorm.DB
}

// DBSavedItem represents the database model for SavedItem (with GORM tags)
type DBSavedItem struct {
	ID          uint            `gorm:"primaryKey"`
	Phone       string          `gorm:"index;size:32"`
	Category    string          `gorm:"size:64"`
	HSCode      string          `gorm:"column:hs_code;size:32"`
	Item        string          `gorm:"size:255"`
	Quantity    int             ``
	Amount      decimal.Decimal `gorm:"type:numeric(18,2)"`
	ValueOfFund *decimal.Decimal `gorm:"type:numeric(18,2)"`
	Currency    string          `gorm:"size:8"`
	CreatedAt   time.Time       `gorm:"index"`
}

// TableName returns the table name for GORM
func (DBSavedItem) TableName() string {
	return "saved_items"
}

// NewSavedItemRepository creates a new saved item repository
func NewSavedItemRepository(db *gorm.DB) domain.SavedItemRepository {
	return &SavedItemRepositoryImpl{db: db}
}

// Create implements domain.SavedItemRepository
func (r *SavedItemRepositoryImpl) Create(ctx context.Context, item *domain.SavedItem) error {
	dbItem := r.domainToDB(item)
	if err := r.db.WithContext(ctx).Create(dbItem).Error; err != nil {
		return err
	}
	item.ID = dbItem.ID
	return nil
}

// DrainByPhone implements domain.SavedItemRepository. Fetch and delete
// run in one transaction so a concurrent drain cannot see the same
// items twice.
func (r *SavedItemRepositoryImpl) DrainByPhone(ctx context.Context, phone string) ([]domain.SavedItem, error) {
	var dbItems []DBSavedItem

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("phone = ?", phone).Order("id").Find(&dbItems).Error; err != nil {
			return err
		}
		return tx.Where("phone = ?", phone).Delete(&DBSavedItem{}).Error
	})
	if err != nil {
		return nil, err
	}

	items := make([]domain.SavedItem, 0, len(dbItems))
	for i := range dbItems {
		items = append(items, *r.dbToDomain(&dbItems[i]))
	}
	return items, nil
}

// domainToDB converts a domain saved item to its database model
func (r *SavedItemRepositoryImpl) domainToDB(item *domain.SavedItem) *DBSavedItem {
	return &DBSavedItem{
		ID:          item.ID,
		Phone:       item.Phone,
		Category:    item.Category,
		HSCode:      item.HSCode,
		Item:        item.Item,
		Quantity:    item.Quantity,
		Amount:      item.Amount,
		ValueOfFund: item.ValueOfFund,
		Currency:    item.Currency,
	}
}

// dbToDomain converts a database saved item to its domain entity
func (r *SavedItemRepositoryImpl) dbToDomain(dbItem *DBSavedItem) *domain.SavedItem {
	return &domain.SavedItem{
		ID:          dbItem.ID,
		Phone:       dbItem.Phone,
		Category:    dbItem.Category,
		HSCode:      dbItem.HSCode,
		Item:        dbItem.Item,
		Quantity:    dbItem.Quantity,
		Amount:      dbItem.Amount,
		ValueOfFund: dbItem.ValueOfFund,
		Currency:    dbItem.Currency,
		CreatedAt:   dbItem.CreatedAt,
	}
}
