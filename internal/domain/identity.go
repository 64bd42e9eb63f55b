package domain

import "time"

// Identity is the durable account-like record for one participant, unique by email.
type Identity struct {
	ID    IdentityID
	Email string

	// CredentialHash is a bcrypt hash of a placeholder secret generated at creation.
	// Nothing in the waitlist flow ever verifies it.
	CredentialHash string

	CreatedAt time.Time
}

// Profile holds the waitlist details for an identity (1:1).
type Profile struct {
	IdentityID IdentityID

	FullName          string
	Email             string
	Phone             string
	Suburb            string
	HeardFrom         string
	DietaryPreference string

	ReferralCode ReferralCode
	// ReferredBy is the referral code the participant arrived with; nil means none.
	// It is not checked against existing profiles.
	ReferredBy *ReferralCode

	CreatedAt time.Time
	UpdatedAt time.Time
}
