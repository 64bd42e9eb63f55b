package identityrepo

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/spicebox/waitlist-api/internal/domain"
	"github.com/spicebox/waitlist-api/internal/ports/out/identityrepo"
)

func TestRepo_CreateRejectsEmptyID(t *testing.T) {
	t.Parallel()

	r := NewRepo()
	err := r.Create(context.Background(), domain.Identity{Email: "a@example.com"})
	if !errors.Is(err, identityrepo.ErrAlreadyExists) {
		t.Fatalf("Create(empty id) err=%v, want %v", err, identityrepo.ErrAlreadyExists)
	}
}

func TestRepo_ConcurrentCreateSameEmailHasOneWinner(t *testing.T) {
	t.Parallel()

	r := NewRepo()
	now := time.Unix(100, 0).UTC()

	const n = 16
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		wins int
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			err := r.Create(context.Background(), domain.Identity{
				ID:        domain.IdentityID(string(rune('a' + i))),
				Email:     "same@example.com",
				CreatedAt: now,
			})
			if err == nil {
				mu.Lock()
				wins++
				mu.Unlock()
				return
			}
			if !errors.Is(err, identityrepo.ErrEmailTaken) {
				t.Errorf("Create err=%v, want ErrEmailTaken", err)
			}
		}(i)
	}
	wg.Wait()
	if wins != 1 {
		t.Fatalf("wins=%d, want 1", wins)
	}
}
