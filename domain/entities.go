package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Workflow identifies one of the guided wizards.
type Workflow string

const (
	WorkflowSalesInvoice    Workflow = "sales_invoice"
	WorkflowBuyerInitiated  Workflow = "buyer_initiated"
	WorkflowCreditNote      Workflow = "credit_note"
	WorkflowPinRegistration Workflow = "pin_registration"
	WorkflowDeclaration     Workflow = "declaration"
)

// Valid reports whether w is one of the known wizards.
func (w Workflow) Valid() bool {
	switch w {
	case WorkflowSalesInvoice, WorkflowBuyerInitiated, WorkflowCreditNote,
		WorkflowPinRegistration, WorkflowDeclaration:
		return true
	}
	return false
}

// Buyer is a validated invoice counterparty.
type Buyer struct {
	PIN  string `json:"pin"`
	Name string `json:"name"`
}

// LineItem is one priced, quantified entry within an invoice or declaration.
type LineItem struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Quantity    int             `json:"quantity"`
	Description string          `json:"description,omitempty"`
}

// Validate checks the line item invariants: unit price >= 0, quantity >= 1.
func (li LineItem) Validate() error {
	if li.Name == "" {
		return ErrLineItemName
	}
	if li.UnitPrice.IsNegative() {
		return ErrLineItemPrice
	}
	if li.Quantity < 1 {
		return ErrLineItemQuantity
	}
	return nil
}

// Totals is always derived from line items, never stored as its own
// source of truth.
type Totals struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Tax      decimal.Decimal `json:"tax"`
	Total    decimal.Decimal `json:"total"`
}

// Draft is the in-progress record of one wizard for one phone number.
type Draft struct {
	Workflow      Workflow          `json:"workflow"`
	MSISDN        string            `json:"msisdn"`
	Buyer         *Buyer            `json:"buyer,omitempty"`
	Items         []LineItem        `json:"items,omitempty"`
	Reason        string            `json:"reason,omitempty"`
	NoteType      string            `json:"note_type,omitempty"`
	InvoiceNumber string            `json:"invoice_number,omitempty"`
	Fields        map[string]string `json:"fields,omitempty"`
	UpdatedAt     time.Time         `json:"updated_at"`
}

// DraftPatch carries a partial update. Nil members leave the draft
// untouched; set members win over whatever the draft held before.
type DraftPatch struct {
	Buyer         *Buyer            `json:"buyer,omitempty"`
	ClearBuyer    bool              `json:"clear_buyer,omitempty"`
	Items         []LineItem        `json:"items,omitempty"`
	Reason        *string           `json:"reason,omitempty"`
	NoteType      *string           `json:"note_type,omitempty"`
	InvoiceNumber *string           `json:"invoice_number,omitempty"`
	Fields        map[string]string `json:"fields,omitempty"`
}

// Apply merges the patch into the draft, last write wins per field.
func (d *Draft) Apply(p DraftPatch) {
	if p.ClearBuyer {
		d.Buyer = nil
	} else if p.Buyer != nil {
		d.Buyer = p.Buyer
	}
	if p.Items != nil {
		d.Items = p.Items
	}
	if p.Reason != nil {
		d.Reason = *p.Reason
	}
	if p.NoteType != nil {
		d.NoteType = *p.NoteType
	}
	if p.InvoiceNumber != nil {
		d.InvoiceNumber = *p.InvoiceNumber
	}
	if len(p.Fields) > 0 {
		if d.Fields == nil {
			d.Fields = make(map[string]string, len(p.Fields))
		}
		for k, v := range p.Fields {
			d.Fields[k] = v
		}
	}
	d.UpdatedAt = time.Now()
}

// Session holds the upstream bearer credential for a verified phone number.
type Session struct {
	ID        string    `json:"id"`
	MSISDN    string    `json:"msisdn"`
	Token     string    `json:"token"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// SavedItem is one customs declaration item parked for a phone number
// until the declaration is assembled.
type SavedItem struct {
	ID          uint
	Phone       string
	Category    string
	HSCode      string
	Item        string
	Quantity    int
	Amount      decimal.Decimal
	ValueOfFund *decimal.Decimal
	Currency    string
	CreatedAt   time.Time
}

// DeclarationItem is the normalized shape a drained saved item takes in
// the outgoing declaration.
type DeclarationItem struct {
	Type        string          `json:"type"`
	HSCode      string          `json:"hscode"`
	Description string          `json:"description"`
	Quantity    int             `json:"quantity"`
	Value       decimal.Decimal `json:"value"`
	Currency    string          `json:"currency"`
}

// InvoiceRecord is one row of the upstream invoice listing.
type InvoiceRecord struct {
	InvoiceNumber string          `json:"invoice_number"`
	BuyerName     string          `json:"buyer_name,omitempty"`
	Total         decimal.Decimal `json:"total"`
	Status        string          `json:"status,omitempty"`
	IssuedAt      string          `json:"issued_at,omitempty"`
}

// InvoiceSubmission is the payload shape the upstream invoice endpoint
// expects.
type InvoiceSubmission struct {
	MSISDN      string
	TotalAmount decimal.Decimal
	Items       []SubmissionItem
}

// SubmissionItem mirrors the upstream line item naming.
type SubmissionItem struct {
	ItemName      string          `json:"item_name"`
	TaxableAmount decimal.Decimal `json:"taxable_amount"`
	Quantity      int             `json:"quantity"`
}

// CreditNoteSubmission reverses a previously issued invoice in full or
// in part.
type CreditNoteSubmission struct {
	MSISDN        string
	InvoiceNumber string
	NoteType      string
	Reason        string
	Amount        decimal.Decimal
}

// Residency values accepted by the registration upstream.
const (
	ResidencyCitizen  = "citizen"
	ResidencyResident = "resident"
)

// RegistrationSubmission is a completed PIN registration application.
type RegistrationSubmission struct {
	Residency string
	IDNumber  string
	Email     string
	MSISDN    string
}

// CreditNoteReasons enumerates the reason codes the credit note wizard
// accepts.
var CreditNoteReasons = map[string]string{
	"missing_quantity":      "Missing Quantity",
	"missing_data":          "Missing Data",
	"damaged":               "Damaged",
	"wasted":                "Wasted",
	"raw_material_shortage": "Raw Material Shortage",
	"refund":                "Refund",
}
