package identityrepo

import (
	"context"
	"sync"

	"github.com/spicebox/waitlist-api/internal/domain"
	"github.com/spicebox/waitlist-api/internal/ports/out/identityrepo"
)

// Repo is an in-memory implementation of identityrepo.Repository.
// It is safe for concurrent use.
type Repo struct {
	mu sync.RWMutex

	byID      map[domain.IdentityID]domain.Identity
	idByEmail map[string]domain.IdentityID
}

func NewRepo() *Repo {
	return &Repo{
		byID:      make(map[domain.IdentityID]domain.Identity),
		idByEmail: make(map[string]domain.IdentityID),
	}
}

func (r *Repo) Create(ctx context.Context, id domain.Identity) error {
	_ = ctx
	if id.ID == "" {
		return identityrepo.ErrAlreadyExists // empty ID is never valid
	}
	key := domain.NormalizeEmail(id.Email)

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[id.ID]; ok {
		return identityrepo.ErrAlreadyExists
	}
	if _, ok := r.idByEmail[key]; ok {
		return identityrepo.ErrEmailTaken
	}
	r.byID[id.ID] = id
	r.idByEmail[key] = id.ID
	return nil
}

func (r *Repo) GetByID(ctx context.Context, id domain.IdentityID) (domain.Identity, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()
	out, ok := r.byID[id]
	if !ok {
		return domain.Identity{}, identityrepo.ErrNotFound
	}
	return out, nil
}

func (r *Repo) GetByEmail(ctx context.Context, email string) (domain.Identity, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.idByEmail[domain.NormalizeEmail(email)]
	if !ok {
		return domain.Identity{}, identityrepo.ErrNotFound
	}
	out, ok := r.byID[id]
	if !ok {
		return domain.Identity{}, identityrepo.ErrNotFound
	}
	return out, nil
}
