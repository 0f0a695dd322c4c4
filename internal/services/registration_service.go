package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/saruni-spec/pin-registration/domain"
)

// RegistrationServiceImpl implements domain.RegistrationService
type RegistrationServiceImpl struct {
	drafts  domain.DraftRepository
	gateway domain.TaxGateway
	sender  domain.DocumentSender
}

// NewRegistrationService creates a new registration service
func NewRegistrationService(drafts domain.DraftRepository, gateway domain.TaxGateway, sender domain.DocumentSender) domain.RegistrationService {
	return &RegistrationServiceImpl{
		drafts:  drafts,
		gateway: gateway,
		sender:  sender,
	}
}

// LookupIdentity implements domain.RegistrationService. When the caller
// supplied an expected year of birth it is cross-checked against the
// upstream record; any disagreement fails closed with a generic message
// so a probing caller cannot learn which attribute was wrong.
func (s *RegistrationServiceImpl) LookupIdentity(ctx context.Context, req domain.IdentityLookupRequest, bearer string) *domain.LookupResult {
	result := s.gateway.LookupByID(ctx, req.IDNumber, req.MSISDN, bearer)
	if !result.Success {
		return result
	}

	if req.ExpectedYearOfBirth != "" {
		if result.DateOfBirth == "" || !strings.Contains(result.DateOfBirth, req.ExpectedYearOfBirth) {
			return &domain.LookupResult{
				Success: false,
				Message: domain.ErrIdentityMismatch.Error(),
			}
		}
	}

	return result
}

// LookupTaxpayer implements domain.RegistrationService
func (s *RegistrationServiceImpl) LookupTaxpayer(ctx context.Context, pin, bearer string) *domain.LookupResult {
	return s.gateway.LookupByPIN(ctx, pin, bearer)
}

// InitiateSession implements domain.RegistrationService
func (s *RegistrationServiceImpl) InitiateSession(ctx context.Context, idNumber, msisdn, residency, bearer string) *domain.SessionInitResult {
	return s.gateway.InitiateSession(ctx, idNumber, msisdn, residency, bearer)
}

// SubmitRegistration implements domain.RegistrationService. The
// application is assembled from the registration draft; on success the
// draft is cleared and the issued PIN is sent back over the messaging
// channel.
func (s *RegistrationServiceImpl) SubmitRegistration(ctx context.Context, msisdn, bearer string) (*domain.RegistrationResult, error) {
	draft, err := s.drafts.Find(ctx, domain.WorkflowPinRegistration, msisdn)
	if err != nil {
		return nil, err
	}

	idNumber := draft.Fields["id_number"]
	email := draft.Fields["email"]
	if idNumber == "" || email == "" {
		return nil, errors.New("registration draft is missing id number or email")
	}

	residency := draft.Fields["residency"]
	if residency != domain.ResidencyCitizen && residency != domain.ResidencyResident {
		residency = domain.ResidencyCitizen
	}

	sub := &domain.RegistrationSubmission{
		Residency: residency,
		IDNumber:  idNumber,
		Email:     email,
		MSISDN:    msisdn,
	}

	result := s.gateway.SubmitRegistration(ctx, sub, bearer)
	if result.Success {
		if err := s.drafts.Delete(ctx, domain.WorkflowPinRegistration, msisdn); err != nil {
			log.Printf("DRAFT_CLEAR_FAILED: workflow=%s msisdn=%s error=%v", domain.WorkflowPinRegistration, msisdn, err)
		}
		s.notifyApplicant(msisdn, result)
	}
	return result, nil
}

// notifyApplicant sends the registration outcome over the messaging
// channel, best effort.
func (s *RegistrationServiceImpl) notifyApplicant(msisdn string, result *domain.RegistrationResult) {
	if result.PIN == "" {
		return
	}
	message := fmt.Sprintf("Your PIN registration is complete. PIN: %s, receipt: %s", result.PIN, result.ReceiptNumber)
	if err := s.sender.SendText(msisdn, message); err != nil {
		log.Printf("REGISTRATION_NOTIFY_FAILED: msisdn=%s error=%v", msisdn, err)
	}
}
