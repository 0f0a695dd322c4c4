package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/saruni-spec/pin-registration/domain"
)

// Saved-item name with special drain handling.
const itemCurrencyOverLimit = "Currency over $10,000"

// DeclarationServiceImpl implements domain.DeclarationService
type DeclarationServiceImpl struct {
	items    domain.SavedItemRepository
	currency domain.CurrencyGateway
}

// NewDeclarationService creates a new declaration service
func NewDeclarationService(items domain.SavedItemRepository, currency domain.CurrencyGateway) domain.DeclarationService {
	return &DeclarationServiceImpl{items: items, currency: currency}
}

// SaveItem implements domain.DeclarationService
func (s *DeclarationServiceImpl) SaveItem(ctx context.Context, item *domain.SavedItem) error {
	if item.Phone == "" {
		return errors.New("saved item requires a phone number")
	}
	if item.Item == "" {
		return errors.New("saved item requires an item name")
	}
	if item.Quantity < 1 {
		return domain.ErrLineItemQuantity
	}
	if item.Amount.IsNegative() {
		return domain.ErrLineItemPrice
	}
	return s.items.Create(ctx, item)
}

// DrainSavedItems implements domain.DeclarationService. Items are
// fetched and deleted atomically, then rendered into the declaration
// shape and the itemized text block the messaging flow expects.
func (s *DeclarationServiceImpl) DrainSavedItems(ctx context.Context, phone string) (*domain.DeclarationSummary, error) {
	saved, err := s.items.DrainByPhone(ctx, phone)
	if err != nil {
		return nil, fmt.Errorf("failed to drain saved items: %w", err)
	}

	items := make([]domain.DeclarationItem, 0, len(saved))
	for _, si := range saved {
		value := si.Amount
		// A cash declaration carries its value in the fund field, with
		// the amount as fallback when it was never set.
		if si.Item == itemCurrencyOverLimit && si.ValueOfFund != nil {
			value = *si.ValueOfFund
		}

		items = append(items, domain.DeclarationItem{
			Type:        si.Category,
			HSCode:      si.HSCode,
			Description: si.Item,
			Quantity:    si.Quantity,
			Value:       value,
			Currency:    si.Currency,
		})
	}

	return &domain.DeclarationSummary{
		Items: items,
		Text:  renderItems(items),
	}, nil
}

// ValidateCashValue implements domain.DeclarationService
func (s *DeclarationServiceImpl) ValidateCashValue(ctx context.Context, amount decimal.Decimal, currency string) (*domain.ConversionResult, error) {
	return s.currency.Convert(ctx, amount, currency)
}

// renderItems produces the numbered plain-text listing delivered over
// the messaging channel.
func renderItems(items []domain.DeclarationItem) string {
	blocks := make([]string, 0, len(items))
	for i, item := range items {
		blocks = append(blocks, fmt.Sprintf(
			"Item %d:\nType: %s\nHS Code: %s\nDescription: %s\nQuantity: %d\nValue: %s %s\n",
			i+1, item.Type, item.HSCode, item.Description, item.Quantity, item.Value, item.Currency,
		))
	}
	return strings.Join(blocks, "\n")
}
