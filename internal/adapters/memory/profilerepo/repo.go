package profilerepo

import (
	"context"
	"sync"

	"github.com/spicebox/waitlist-api/internal/domain"
	"github.com/spicebox/waitlist-api/internal/ports/out/profilerepo"
)

// Repo is an in-memory implementation of profilerepo.Repository.
// It is safe for concurrent use.
type Repo struct {
	mu sync.RWMutex

	byIdentity map[domain.IdentityID]domain.Profile
}

func NewRepo() *Repo {
	return &Repo{
		byIdentity: make(map[domain.IdentityID]domain.Profile),
	}
}

func (r *Repo) Upsert(ctx context.Context, p domain.Profile) (domain.Profile, error) {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.byIdentity[p.IdentityID]; ok {
		p.ReferralCode = existing.ReferralCode
		p.CreatedAt = existing.CreatedAt
		if existing.ReferredBy != nil {
			p.ReferredBy = existing.ReferredBy
		}
	}
	stored := cloneProfile(p)
	r.byIdentity[p.IdentityID] = stored
	return cloneProfile(stored), nil
}

func (r *Repo) GetByIdentityID(ctx context.Context, id domain.IdentityID) (domain.Profile, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.byIdentity[id]
	if !ok {
		return domain.Profile{}, profilerepo.ErrNotFound
	}
	return cloneProfile(p), nil
}

func (r *Repo) CountReferredBy(ctx context.Context, code domain.ReferralCode) (int, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()
	n := 0
	for _, p := range r.byIdentity {
		if p.ReferredBy != nil && *p.ReferredBy == code {
			n++
		}
	}
	return n, nil
}

func cloneProfile(p domain.Profile) domain.Profile {
	out := p
	if p.ReferredBy != nil {
		v := *p.ReferredBy
		out.ReferredBy = &v
	}
	return out
}
