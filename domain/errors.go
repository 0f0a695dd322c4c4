package domain

import "errors"

// Draft errors
var (
	ErrDraftNotFound   = errors.New("draft not found")
	ErrUnknownWorkflow = errors.New("unknown workflow")
	ErrEmptyDraft      = errors.New("draft has no line items")
)

// Line item errors
var (
	ErrLineItemName     = errors.New("line item name is required")
	ErrLineItemPrice    = errors.New("line item unit price must not be negative")
	ErrLineItemQuantity = errors.New("line item quantity must be at least 1")
)

// Session errors
var (
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionExpired  = errors.New("session has expired")
)

// Token errors
var (
	ErrTokenInvalid   = errors.New("invalid token")
	ErrTokenExpired   = errors.New("token has expired")
	ErrTokenMalformed = errors.New("malformed token")
)

// Gateway guard errors
var (
	// ErrIdentityMismatch deliberately carries no detail about which
	// attribute failed to match.
	ErrIdentityMismatch = errors.New("identity details could not be verified")
	ErrBelowThreshold   = errors.New("converted amount is below the declaration threshold")
)

// Authorization errors
var (
	ErrUnauthorized = errors.New("unauthorized access")
)
