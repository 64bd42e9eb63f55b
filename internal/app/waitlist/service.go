package waitlist

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/spicebox/waitlist-api/internal/domain"
	clockport "github.com/spicebox/waitlist-api/internal/ports/out/clock"
	"github.com/spicebox/waitlist-api/internal/ports/out/identityrepo"
	"github.com/spicebox/waitlist-api/internal/ports/out/notifier"
	"github.com/spicebox/waitlist-api/internal/ports/out/profilerepo"
)

// Service runs the waitlist submission workflow:
// validate, resolve identity, upsert profile, send confirmation.
//
// It holds no per-request state; concurrent Submit calls rely on the stores for atomicity.
type Service struct {
	identities identityrepo.Repository
	profiles   profilerepo.Repository
	notifier   notifier.Notifier
	clk        clockport.Clock
	schema     *Schema

	newIdentityID     func() domain.IdentityID
	newReferralCode   func() (domain.ReferralCode, error)
	newCredentialHash func() (string, error)

	// NotifyTimeout bounds the notification step. Zero means no extra bound.
	NotifyTimeout time.Duration

	// CredentialCost is the bcrypt cost for placeholder credentials.
	CredentialCost int
}

func NewService(
	identities identityrepo.Repository,
	profiles profilerepo.Repository,
	n notifier.Notifier,
	clk clockport.Clock,
	schema *Schema,
) *Service {
	s := &Service{
		identities: identities,
		profiles:   profiles,
		notifier:   n,
		clk:        clk,
		schema:     schema,
		newIdentityID: func() domain.IdentityID {
			return domain.IdentityID(uuid.NewString())
		},
		newReferralCode: NewReferralCode,
		NotifyTimeout:   10 * time.Second,
		CredentialCost:  bcrypt.DefaultCost,
	}
	s.newCredentialHash = func() (string, error) {
		return placeholderCredentialHash(s.CredentialCost)
	}
	return s
}

// Submit processes one waitlist submission.
//
// Returned errors are *Error: VALIDATION_FAILED (400) before any store access,
// PERSISTENCE_ERROR (500) when identity or profile writes fail, CONFIGURATION_ERROR (500)
// when the service is missing its stores. A failed confirmation email is not an error:
// it is reported on Result.Notification and the persisted profile stays in place.
func (s *Service) Submit(ctx context.Context, in SubmitInput) (Result, error) {
	if s.identities == nil || s.profiles == nil || s.schema == nil || s.clk == nil {
		return Result{}, &Error{
			Status:  http.StatusInternalServerError,
			Code:    CodeConfigurationError,
			Message: "waitlist service is not configured",
		}
	}

	sub, fieldErrs := s.schema.Validate(in)
	if len(fieldErrs) > 0 {
		return Result{}, &Error{
			Status:  http.StatusBadRequest,
			Code:    CodeValidationFailed,
			Message: "Validation failed",
			Details: fieldErrs,
		}
	}

	ident, created, err := s.resolveIdentity(ctx, sub.Email)
	if err != nil {
		return Result{}, persistenceError(err)
	}

	code, err := s.newReferralCode()
	if err != nil {
		return Result{}, persistenceError(err)
	}
	now := s.clk.Now()
	p, err := s.profiles.Upsert(ctx, domain.Profile{
		IdentityID:        ident.ID,
		FullName:          sub.FullName,
		Email:             sub.Email,
		Phone:             sub.Phone,
		Suburb:            sub.Suburb,
		HeardFrom:         sub.HeardFrom,
		DietaryPreference: sub.DietaryPreference,
		ReferralCode:      code,
		ReferredBy:        sub.ReferredBy,
		CreatedAt:         now,
		UpdatedAt:         now,
	})
	if err != nil {
		return Result{}, persistenceError(fmt.Errorf("save profile: %w", err))
	}

	res := Result{
		IdentityID:   ident.ID,
		ReferralCode: p.ReferralCode,
		NewIdentity:  created,
	}
	if err := s.notify(ctx, notifier.Recipient{Email: sub.Email, Name: sub.FullName}); err != nil {
		res.Notification = &Error{
			Status:  http.StatusOK,
			Code:    CodeNotificationFailed,
			Message: "You're on the waitlist, but we couldn't send your confirmation email.",
			Err:     err,
		}
	}
	return res, nil
}

// ReferralCount reports how many profiles signed up with code.
func (s *Service) ReferralCount(ctx context.Context, code domain.ReferralCode) (int, error) {
	if s.profiles == nil {
		return 0, &Error{
			Status:  http.StatusInternalServerError,
			Code:    CodeConfigurationError,
			Message: "waitlist service is not configured",
		}
	}
	n, err := s.profiles.CountReferredBy(ctx, code)
	if err != nil {
		return 0, persistenceError(err)
	}
	return n, nil
}

func (s *Service) notify(ctx context.Context, to notifier.Recipient) error {
	if s.notifier == nil {
		return notifier.ErrNotConfigured
	}
	if s.NotifyTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.NotifyTimeout)
		defer cancel()
	}
	return s.notifier.SendWaitlistConfirmation(ctx, to)
}

func persistenceError(err error) *Error {
	return &Error{
		Status:  http.StatusInternalServerError,
		Code:    CodePersistenceError,
		Message: err.Error(),
		Err:     err,
	}
}
