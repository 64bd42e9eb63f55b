package domain

// IdentityID is the system-assigned identifier of a waitlist identity.
// It is a UUID rendered as text.
type IdentityID string

// ReferralCode is an opaque token handed to each profile so it can be shared.
type ReferralCode string
