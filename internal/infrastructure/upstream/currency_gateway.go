package upstream

import (
	"context"
	"fmt"
	"net/url"

	"github.com/saruni-spec/pin-registration/domain"
	"github.com/shopspring/decimal"
)

// CustomsCurrencyGateway implements domain.CurrencyGateway against the
// customs passenger-declaration converter. Unlike the USSD gateway this
// one returns hard errors: a conversion below the declaration minimum
// is rejected here, before any caller sees a success path.
type CustomsCurrencyGateway struct {
	client  *Client
	baseURL string
	minimum decimal.Decimal
}

// NewCustomsCurrencyGateway creates a new customs currency gateway
func NewCustomsCurrencyGateway(client *Client, baseURL string, minimum decimal.Decimal) domain.CurrencyGateway {
	return &CustomsCurrencyGateway{
		client:  client,
		baseURL: baseURL,
		minimum: minimum,
	}
}

// Convert implements domain.CurrencyGateway
// GET {base}/passenger-declaration/convert-currency
func (g *CustomsCurrencyGateway) Convert(ctx context.Context, amount decimal.Decimal, currency string) (*domain.ConversionResult, error) {
	var resp struct {
		ConvertedAmount decimal.Decimal `json:"converted_amount"`
	}
	params := url.Values{}
	params.Set("amount", amount.String())
	params.Set("currency", currency)

	if err := g.client.GetJSON(ctx, g.baseURL+"/passenger-declaration/convert-currency", params, "", &resp); err != nil {
		return nil, fmt.Errorf("failed to convert currency: %w", err)
	}

	if resp.ConvertedAmount.LessThan(g.minimum) {
		return nil, domain.ErrBelowThreshold
	}

	return &domain.ConversionResult{
		Amount:          amount,
		Currency:        currency,
		ConvertedAmount: resp.ConvertedAmount,
	}, nil
}
