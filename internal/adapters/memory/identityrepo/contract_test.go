package identityrepo

import (
	"testing"

	"github.com/spicebox/waitlist-api/internal/adapters/contracttest"
	identityrepoport "github.com/spicebox/waitlist-api/internal/ports/out/identityrepo"
)

func TestContract_IdentityRepo(t *testing.T) {
	contracttest.RunIdentityRepo(t, func(t *testing.T) (identityrepoport.Repository, func()) {
		t.Helper()
		return NewRepo(), nil
	})
}
