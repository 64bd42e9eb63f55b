package profilerepo

import (
	"context"

	"github.com/spicebox/waitlist-api/internal/domain"
)

// Repository provides access to persisted waitlist profiles, keyed by identity.
//
// Upsert semantics:
// - insert when no profile exists for p.IdentityID
// - otherwise overwrite the submitted fields, keeping ReferralCode and CreatedAt
//   from the stored row, and keeping a stored non-nil ReferredBy (first touch wins)
//
// Upsert returns the row as stored.
type Repository interface {
	Upsert(ctx context.Context, p domain.Profile) (domain.Profile, error)

	GetByIdentityID(ctx context.Context, id domain.IdentityID) (domain.Profile, error)

	// CountReferredBy returns how many profiles arrived with the given referral code.
	CountReferredBy(ctx context.Context, code domain.ReferralCode) (int, error)
}
