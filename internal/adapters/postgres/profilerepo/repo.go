package profilerepo

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
	"github.com/spicebox/waitlist-api/internal/ports/out/profilerepo"
)

// Repo is a Postgres implementation of profilerepo.Repository.
// Upsert relies on ON CONFLICT (identity_id) for atomicity; no application locking.
type Repo struct {
	pool *pgxpool.Pool
}

func NewRepo(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

func (r *Repo) Upsert(ctx context.Context, p domain.Profile) (domain.Profile, error) {
	if r.pool == nil {
		return domain.Profile{}, errors.New("nil postgres pool")
	}
	uid, err := uuid.Parse(string(p.IdentityID))
	if err != nil {
		return domain.Profile{}, fmt.Errorf("invalid identity id: %w", err)
	}
	var referredBy *string
	if p.ReferredBy != nil {
		v := string(*p.ReferredBy)
		referredBy = &v
	}

	row := r.pool.QueryRow(ctx, `
		INSERT INTO profiles (
			identity_id,
			full_name,
			email,
			phone,
			suburb,
			heard_from,
			dietary_preference,
			referral_code,
			referred_by,
			created_at,
			updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (identity_id) DO UPDATE SET
			full_name = EXCLUDED.full_name,
			email = EXCLUDED.email,
			phone = EXCLUDED.phone,
			suburb = EXCLUDED.suburb,
			heard_from = EXCLUDED.heard_from,
			dietary_preference = EXCLUDED.dietary_preference,
			referred_by = COALESCE(profiles.referred_by, EXCLUDED.referred_by),
			updated_at = EXCLUDED.updated_at
		RETURNING `+profileColumns,
		uid,
		p.FullName,
		p.Email,
		p.Phone,
		p.Suburb,
		p.HeardFrom,
		p.DietaryPreference,
		string(p.ReferralCode),
		referredBy,
		p.CreatedAt.UTC(),
		p.UpdatedAt.UTC(),
	)
	out, err := scanProfile(row)
	if err != nil {
		if pe, ok := postgres.AsPgError(err); ok && pe.Code == postgres.ForeignKeyViolationCode {
			return domain.Profile{}, fmt.Errorf("profile references unknown identity %s: %w", p.IdentityID, err)
		}
		return domain.Profile{}, err
	}
	return out, nil
}

func (r *Repo) GetByIdentityID(ctx context.Context, id domain.IdentityID) (domain.Profile, error) {
	if r.pool == nil {
		return domain.Profile{}, errors.New("nil postgres pool")
	}
	uid, err := uuid.Parse(string(id))
	if err != nil {
		return domain.Profile{}, profilerepo.ErrNotFound
	}
	row := r.pool.QueryRow(ctx, `SELECT `+profileColumns+` FROM profiles WHERE identity_id = $1`, uid)
	return scanProfile(row)
}

func (r *Repo) CountReferredBy(ctx context.Context, code domain.ReferralCode) (int, error) {
	if r.pool == nil {
		return 0, errors.New("nil postgres pool")
	}
	var n int
	if err := r.pool.QueryRow(ctx, `
		SELECT count(*) FROM profiles WHERE referred_by = $1
	`, string(code)).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// --- helpers ---

const profileColumns = `
	identity_id,
	full_name,
	email,
	phone,
	suburb,
	heard_from,
	dietary_preference,
	referral_code,
	referred_by,
	created_at,
	updated_at
`

func scanProfile(row pgx.Row) (domain.Profile, error) {
	var (
		identityID        uuid.UUID
		fullName          string
		email             string
		phone             string
		suburb            string
		heardFrom         string
		dietaryPreference string
		referralCode      string
		referredBy        *string
		createdAt         time.Time
		updatedAt         time.Time
	)
	if err := row.Scan(
		&identityID,
		&fullName,
		&email,
		&phone,
		&suburb,
		&heardFrom,
		&dietaryPreference,
		&referralCode,
		&referredBy,
		&createdAt,
		&updatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Profile{}, profilerepo.ErrNotFound
		}
		return domain.Profile{}, err
	}
	out := domain.Profile{
		IdentityID:        domain.IdentityID(identityID.String()),
		FullName:          fullName,
		Email:             email,
		Phone:             phone,
		Suburb:            suburb,
		HeardFrom:         heardFrom,
		DietaryPreference: dietaryPreference,
		ReferralCode:      domain.ReferralCode(referralCode),
		CreatedAt:         createdAt.UTC(),
		UpdatedAt:         updatedAt.UTC(),
	}
	if referredBy != nil {
		rb := domain.ReferralCode(*referredBy)
		out.ReferredBy = &rb
	}
	return out, nil
}
