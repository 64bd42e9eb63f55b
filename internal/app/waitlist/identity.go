package waitlist

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/spicebox/waitlist-api/internal/domain"
	"github.com/spicebox/waitlist-api/internal/ports/out/identityrepo"
)

// resolveIdentity finds the identity for email or creates one.
// It never rejects a repeat email; the bool reports whether an identity was created.
func (s *Service) resolveIdentity(ctx context.Context, email string) (domain.Identity, bool, error) {
	existing, err := s.identities.GetByEmail(ctx, email)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, identityrepo.ErrNotFound) {
		return domain.Identity{}, false, fmt.Errorf("look up identity: %w", err)
	}

	hash, err := s.newCredentialHash()
	if err != nil {
		return domain.Identity{}, false, err
	}
	id := domain.Identity{
		ID:             s.newIdentityID(),
		Email:          email,
		CredentialHash: hash,
		CreatedAt:      s.clk.Now(),
	}
	if err := s.identities.Create(ctx, id); err != nil {
		if !errors.Is(err, identityrepo.ErrEmailTaken) {
			return domain.Identity{}, false, fmt.Errorf("create identity: %w", err)
		}
		// A concurrent submission for the same email won the insert; reuse its identity.
		winner, err := s.identities.GetByEmail(ctx, email)
		if err != nil {
			return domain.Identity{}, false, fmt.Errorf("look up identity: %w", err)
		}
		return winner, false, nil
	}
	return id, true, nil
}

// placeholderCredentialHash hashes a random secret that is discarded immediately.
func placeholderCredentialHash(cost int) (string, error) {
	var secret [32]byte
	if _, err := rand.Read(secret[:]); err != nil {
		return "", fmt.Errorf("generate placeholder credential: %w", err)
	}
	h, err := bcrypt.GenerateFromPassword([]byte(base64.RawURLEncoding.EncodeToString(secret[:])), cost)
	if err != nil {
		return "", fmt.Errorf("hash placeholder credential: %w", err)
	}
	return string(h), nil
}
