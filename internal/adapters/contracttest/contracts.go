package contracttest

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/spicebox/waitlist-api/internal/domain"
	identityrepoport "github.com/spicebox/waitlist-api/internal/ports/out/identityrepo"
	profilerepoport "github.com/spicebox/waitlist-api/internal/ports/out/profilerepo"
)

type CleanupFunc = func()

type IdentityRepoFactory func(t *testing.T) (identityrepoport.Repository, CleanupFunc)
type ProfileRepoFactory func(t *testing.T) (profilerepoport.Repository, CleanupFunc)

func RunIdentityRepo(t *testing.T, newRepo IdentityRepoFactory) {
	t.Helper()
	ctx := context.Background()

	repo, cleanup := newRepo(t)
	if cleanup != nil {
		t.Cleanup(cleanup)
	}

	now := time.Unix(1000, 0).UTC()
	email := "contract-" + uuid.NewString()[:8] + "@example.com"
	aID := domain.IdentityID(uuid.NewString())
	if err := repo.Create(ctx, domain.Identity{
		ID:             aID,
		Email:          email,
		CredentialHash: "hash",
		CreatedAt:      now,
	}); err != nil {
		t.Fatalf("Create a: %v", err)
	}

	got, err := repo.GetByID(ctx, aID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Email != email || got.CredentialHash != "hash" {
		t.Fatalf("unexpected identity: %#v", got)
	}

	// Email lookup is case-insensitive.
	byEmail, err := repo.GetByEmail(ctx, "  "+strings.ToUpper(email)+" ")
	if err != nil {
		t.Fatalf("GetByEmail: %v", err)
	}
	if byEmail.ID != aID {
		t.Fatalf("GetByEmail id=%q want %q", byEmail.ID, aID)
	}

	// Email uniqueness.
	err = repo.Create(ctx, domain.Identity{
		ID:             domain.IdentityID(uuid.NewString()),
		Email:          strings.ToUpper(email),
		CredentialHash: "hash",
		CreatedAt:      now,
	})
	if !errors.Is(err, identityrepoport.ErrEmailTaken) {
		t.Fatalf("Create dup email err=%v, want ErrEmailTaken", err)
	}

	// ID uniqueness.
	err = repo.Create(ctx, domain.Identity{
		ID:             aID,
		Email:          "other-" + email,
		CredentialHash: "hash",
		CreatedAt:      now,
	})
	if !errors.Is(err, identityrepoport.ErrAlreadyExists) {
		t.Fatalf("Create dup id err=%v, want ErrAlreadyExists", err)
	}

	if _, err := repo.GetByEmail(ctx, "missing-"+email); !errors.Is(err, identityrepoport.ErrNotFound) {
		t.Fatalf("GetByEmail missing err=%v, want ErrNotFound", err)
	}
	if _, err := repo.GetByID(ctx, domain.IdentityID(uuid.NewString())); !errors.Is(err, identityrepoport.ErrNotFound) {
		t.Fatalf("GetByID missing err=%v, want ErrNotFound", err)
	}
}

// RunProfileRepo exercises upsert semantics. Profiles reference identities, so the
// identity store is seeded first.
func RunProfileRepo(t *testing.T, newIdentityRepo IdentityRepoFactory, newProfileRepo ProfileRepoFactory) {
	t.Helper()
	ctx := context.Background()

	identities, iCleanup := newIdentityRepo(t)
	if iCleanup != nil {
		t.Cleanup(iCleanup)
	}
	profiles, pCleanup := newProfileRepo(t)
	if pCleanup != nil {
		t.Cleanup(pCleanup)
	}

	created := time.Unix(2000, 0).UTC()
	id := domain.IdentityID(uuid.NewString())
	email := "profile-" + uuid.NewString()[:8] + "@example.com"
	if err := identities.Create(ctx, domain.Identity{ID: id, Email: email, CredentialHash: "hash", CreatedAt: created}); err != nil {
		t.Fatalf("seed identity: %v", err)
	}

	if _, err := profiles.GetByIdentityID(ctx, id); !errors.Is(err, profilerepoport.ErrNotFound) {
		t.Fatalf("GetByIdentityID before insert err=%v, want ErrNotFound", err)
	}

	referrer := domain.ReferralCode("ref" + uuid.NewString()[:5])
	first, err := profiles.Upsert(ctx, domain.Profile{
		IdentityID:        id,
		FullName:          "Priya Sharma",
		Email:             email,
		Phone:             "",
		Suburb:            "Parramatta",
		HeardFrom:         "social-media",
		DietaryPreference: "vegetarian",
		ReferralCode:      "code0001",
		ReferredBy:        &referrer,
		CreatedAt:         created,
		UpdatedAt:         created,
	})
	if err != nil {
		t.Fatalf("Upsert insert: %v", err)
	}
	if first.ReferralCode != "code0001" || first.ReferredBy == nil || *first.ReferredBy != referrer {
		t.Fatalf("unexpected inserted profile: %#v", first)
	}

	// Overwrite: fields change, referral code/createdAt/referredBy are kept.
	updated := created.Add(time.Hour)
	other := domain.ReferralCode("other001")
	second, err := profiles.Upsert(ctx, domain.Profile{
		IdentityID:        id,
		FullName:          "Priya S.",
		Email:             email,
		Phone:             "0400000000",
		Suburb:            "Surry Hills",
		HeardFrom:         "friend-family",
		DietaryPreference: "vegan",
		ReferralCode:      "code0002",
		ReferredBy:        &other,
		CreatedAt:         updated,
		UpdatedAt:         updated,
	})
	if err != nil {
		t.Fatalf("Upsert update: %v", err)
	}
	if second.FullName != "Priya S." || second.Suburb != "Surry Hills" || second.Phone != "0400000000" ||
		second.DietaryPreference != "vegan" || second.HeardFrom != "friend-family" {
		t.Fatalf("fields not overwritten: %#v", second)
	}
	if second.ReferralCode != "code0001" {
		t.Fatalf("referral code changed on update: %q", second.ReferralCode)
	}
	if second.ReferredBy == nil || *second.ReferredBy != referrer {
		t.Fatalf("referredBy=%v, want first-touch %q", second.ReferredBy, referrer)
	}
	if !second.CreatedAt.Equal(created) || !second.UpdatedAt.Equal(updated) {
		t.Fatalf("timestamps created=%v updated=%v", second.CreatedAt, second.UpdatedAt)
	}

	got, err := profiles.GetByIdentityID(ctx, id)
	if err != nil {
		t.Fatalf("GetByIdentityID: %v", err)
	}
	if got.FullName != "Priya S." || got.ReferralCode != "code0001" {
		t.Fatalf("unexpected stored profile: %#v", got)
	}

	n, err := profiles.CountReferredBy(ctx, referrer)
	if err != nil || n != 1 {
		t.Fatalf("CountReferredBy: n=%d err=%v", n, err)
	}
	n, err = profiles.CountReferredBy(ctx, "nobody00")
	if err != nil || n != 0 {
		t.Fatalf("CountReferredBy(unknown): n=%d err=%v", n, err)
	}
}
