package identityrepo

import (
	"context"

	"github.com/spicebox/waitlist-api/internal/domain"
)

// Repository provides access to persisted identities.
//
// Email uniqueness is case-insensitive and must be enforced by the store itself:
// concurrent Create calls for the same email must leave exactly one winner and
// return ErrEmailTaken to the others.
type Repository interface {
	Create(ctx context.Context, id domain.Identity) error

	GetByID(ctx context.Context, id domain.IdentityID) (domain.Identity, error)
	GetByEmail(ctx context.Context, email string) (domain.Identity, error)
}
