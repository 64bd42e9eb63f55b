package waitlist

import "github.com/spicebox/waitlist-api/internal/domain"

// SubmitInput is a raw waitlist submission as received from the caller.
// Optional fields are pointers; nil means omitted or null.
type SubmitInput struct {
	FullName          string
	Email             string
	Suburb            string
	DietaryPreference string
	HeardFrom         string
	Phone             *string
	ReferredBy        *string
}

// Submission is a validated and normalized SubmitInput.
type Submission struct {
	FullName          string
	Email             string
	Suburb            string
	DietaryPreference string
	HeardFrom         string
	Phone             string
	ReferredBy        *domain.ReferralCode
}

// Result describes a persisted submission.
type Result struct {
	IdentityID   domain.IdentityID
	ReferralCode domain.ReferralCode

	// NewIdentity is true when this submission created the identity.
	NewIdentity bool

	// Notification is non-nil when the confirmation email could not be sent.
	// The profile is persisted regardless.
	Notification *Error
}
