package profilerepo

import (
	"testing"

	"github.com/spicebox/waitlist-api/internal/adapters/contracttest"
	pgidentityrepo "github.com/spicebox/waitlist-api/internal/adapters/postgres/identityrepo"
	"github.com/spicebox/waitlist-api/internal/adapters/postgres/testutil"
	identityrepoport "github.com/spicebox/waitlist-api/internal/ports/out/identityrepo"
	profilerepoport "github.com/spicebox/waitlist-api/internal/ports/out/profilerepo"
)

func TestContract_PostgresProfileRepo(t *testing.T) {
	pool := testutil.OpenMigratedPool(t)

	contracttest.RunProfileRepo(t,
		func(t *testing.T) (identityrepoport.Repository, func()) {
			t.Helper()
			return pgidentityrepo.NewRepo(pool), nil
		},
		func(t *testing.T) (profilerepoport.Repository, func()) {
			t.Helper()
			return NewRepo(pool), nil
		},
	)
}
