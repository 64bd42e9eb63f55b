package identityrepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/spicebox/waitlist-api/internal/adapters/postgres"
	"github.com/spicebox/waitlist-api/internal/domain"
	"github.com/spicebox/waitlist-api/internal/ports/out/identityrepo"
)

// Repo is a Postgres implementation of identityrepo.Repository.
// Email uniqueness is enforced by the identities_email_unique index on lower(email).
type Repo struct {
	pool *pgxpool.Pool
}

func NewRepo(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

func (r *Repo) Create(ctx context.Context, id domain.Identity) error {
	if r.pool == nil {
		return errors.New("nil postgres pool")
	}
	uid, err := uuid.Parse(string(id.ID))
	if err != nil {
		return fmt.Errorf("invalid identity id: %w", err)
	}

	_, err = r.pool.Exec(ctx, `
		INSERT INTO identities (
			external_id,
			email,
			credential_hash,
			created_at
		) VALUES ($1, $2, $3, $4)
	`,
		uid,
		id.Email,
		id.CredentialHash,
		id.CreatedAt.UTC(),
	)
	if err != nil {
		if pe, ok := postgres.AsPgError(err); ok && pe.Code == postgres.UniqueViolationCode {
			switch pe.ConstraintName {
			case "identities_email_unique":
				return identityrepo.ErrEmailTaken
			case "identities_external_id_unique":
				return identityrepo.ErrAlreadyExists
			}
		}
		return err
	}
	return nil
}

func (r *Repo) GetByID(ctx context.Context, id domain.IdentityID) (domain.Identity, error) {
	if r.pool == nil {
		return domain.Identity{}, errors.New("nil postgres pool")
	}
	uid, err := uuid.Parse(string(id))
	if err != nil {
		return domain.Identity{}, identityrepo.ErrNotFound
	}
	row := r.pool.QueryRow(ctx, `
		SELECT external_id, email, credential_hash, created_at
		FROM identities
		WHERE external_id = $1
	`, uid)
	return scanIdentity(row)
}

func (r *Repo) GetByEmail(ctx context.Context, email string) (domain.Identity, error) {
	if r.pool == nil {
		return domain.Identity{}, errors.New("nil postgres pool")
	}
	row := r.pool.QueryRow(ctx, `
		SELECT external_id, email, credential_hash, created_at
		FROM identities
		WHERE lower(email) = $1
	`, domain.NormalizeEmail(email))
	return scanIdentity(row)
}

func scanIdentity(row pgx.Row) (domain.Identity, error) {
	var (
		externalID     uuid.UUID
		email          string
		credentialHash string
		createdAt      time.Time
	)
	if err := row.Scan(&externalID, &email, &credentialHash, &createdAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Identity{}, identityrepo.ErrNotFound
		}
		return domain.Identity{}, err
	}
	return domain.Identity{
		ID:             domain.IdentityID(externalID.String()),
		Email:          email,
		CredentialHash: credentialHash,
		CreatedAt:      createdAt.UTC(),
	}, nil
}
