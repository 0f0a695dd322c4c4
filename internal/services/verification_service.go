package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/saruni-spec/pin-registration/domain"
)

// VerificationServiceImpl implements domain.VerificationService. OTP
// codes are generated and checked by the upstream; this service owns
// what happens after a successful validation: creating the server-side
// session that holds the upstream bearer token and signing the cookie
// value that points at it.
type VerificationServiceImpl struct {
	gateway       domain.TaxGateway
	sessionRepo   domain.SessionRepository
	tokenSvc      domain.TokenService
	sessionTTL    time.Duration
	countryPrefix string
}

// NewVerificationService creates a new verification service
func NewVerificationService(gateway domain.TaxGateway, sessionRepo domain.SessionRepository, tokenSvc domain.TokenService, sessionTTL time.Duration, countryPrefix string) domain.VerificationService {
	return &VerificationServiceImpl{
		gateway:       gateway,
		sessionRepo:   sessionRepo,
		tokenSvc:      tokenSvc,
		sessionTTL:    sessionTTL,
		countryPrefix: countryPrefix,
	}
}

// SendOTP implements domain.VerificationService
func (s *VerificationServiceImpl) SendOTP(ctx context.Context, msisdn string) *domain.OTPResult {
	return s.gateway.GenerateOTP(ctx, msisdn)
}

// ConfirmOTP implements domain.VerificationService. A session is
// created only when the upstream returned a token; validation without a
// token still succeeds, the caller just stays unauthenticated.
func (s *VerificationServiceImpl) ConfirmOTP(ctx context.Context, msisdn, code string) (*domain.OTPConfirmation, error) {
	result := s.gateway.ValidateOTP(ctx, msisdn, code)
	if !result.Success || result.Token == "" {
		return &domain.OTPConfirmation{Result: result}, nil
	}

	now := time.Now()
	session := &domain.Session{
		ID:        uuid.NewString(),
		MSISDN:    domain.NormalizeMSISDN(msisdn, s.countryPrefix),
		Token:     result.Token,
		CreatedAt: now,
		ExpiresAt: now.Add(s.sessionTTL),
	}
	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to store session: %w", err)
	}

	cookieToken, err := s.tokenSvc.IssueSessionToken(session.ID, session.MSISDN)
	if err != nil {
		return nil, fmt.Errorf("failed to issue session token: %w", err)
	}

	return &domain.OTPConfirmation{
		Result:      result,
		CookieToken: cookieToken,
		MaxAge:      int(s.sessionTTL.Seconds()),
	}, nil
}
