package itest

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/spicebox/waitlist-api/internal/adapters/httpapi"
	memclock "github.com/spicebox/waitlist-api/internal/adapters/memory/clock"
	memidentityrepo "github.com/spicebox/waitlist-api/internal/adapters/memory/identityrepo"
	memnotifier "github.com/spicebox/waitlist-api/internal/adapters/memory/notifier"
	memprofilerepo "github.com/spicebox/waitlist-api/internal/adapters/memory/profilerepo"
	pgidentityrepo "github.com/spicebox/waitlist-api/internal/adapters/postgres/identityrepo"
	pgprofilerepo "github.com/spicebox/waitlist-api/internal/adapters/postgres/profilerepo"
	postgres_testutil "github.com/spicebox/waitlist-api/internal/adapters/postgres/testutil"
	"github.com/spicebox/waitlist-api/internal/app/waitlist"
	"github.com/spicebox/waitlist-api/internal/platform/config"
	identityrepoport "github.com/spicebox/waitlist-api/internal/ports/out/identityrepo"
	profilerepoport "github.com/spicebox/waitlist-api/internal/ports/out/profilerepo"
)

type backend string

const (
	backendMemory   backend = "memory"
	backendPostgres backend = "postgres"
)

func backendsFromEnv(t *testing.T) []backend {
	t.Helper()
	switch strings.ToLower(strings.TrimSpace(os.Getenv("ITEST_BACKEND"))) {
	case "", "memory":
		return []backend{backendMemory}
	case "postgres":
		return []backend{backendPostgres}
	case "all":
		return []backend{backendMemory, backendPostgres}
	default:
		t.Fatalf("unknown ITEST_BACKEND value (expected memory|postgres|all)")
		return nil
	}
}

type testServer struct {
	baseURL string
	client  *http.Client
	mail    *memnotifier.Recorder
}

func newTestServer(t *testing.T, b backend) *testServer {
	t.Helper()

	clk := memclock.NewManualClock(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))

	var (
		identities identityrepoport.Repository
		profiles   profilerepoport.Repository
	)

	switch b {
	case backendPostgres:
		pool := postgres_testutil.OpenMigratedPool(t)
		identities = pgidentityrepo.NewRepo(pool)
		profiles = pgprofilerepo.NewRepo(pool)
	case backendMemory:
		identities = memidentityrepo.NewRepo()
		profiles = memprofilerepo.NewRepo()
	default:
		t.Fatalf("unknown backend: %s", b)
	}

	mail := memnotifier.NewRecorder()
	catalog := config.DefaultCatalog()
	svc := waitlist.NewService(identities, profiles, mail, clk,
		waitlist.NewSchema(catalog.DietaryPreferences, catalog.HeardFrom))
	svc.CredentialCost = bcrypt.MinCost

	srv := httptest.NewServer(httpapi.NewRouter(httpapi.NewServer(svc)))
	t.Cleanup(srv.Close)

	return &testServer{
		baseURL: srv.URL,
		client:  srv.Client(),
		mail:    mail,
	}
}

func (s *testServer) url(path string) string {
	if strings.HasPrefix(path, "/") {
		return s.baseURL + path
	}
	return s.baseURL + "/" + path
}

func (s *testServer) doJSON(t *testing.T, method string, path string, body any) (int, []byte, http.Header) {
	t.Helper()

	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		r = bytes.NewReader(b)
	}
	req, err := http.NewRequest(method, s.url(path), r)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer resp.Body.Close()
	out, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, out, resp.Header
}

type successResponse struct {
	Success      bool   `json:"success"`
	UserID       string `json:"userId"`
	ReferralCode string `json:"referralCode"`
	Warning      string `json:"warning"`
}

type errorResponse struct {
	Success   bool   `json:"success"`
	Error     string `json:"error"`
	RequestID string `json:"requestId"`
	Details   []struct {
		Field   string `json:"field"`
		Message string `json:"message"`
	} `json:"details"`
}

func mustUnmarshal[T any](t *testing.T, b []byte) T {
	t.Helper()
	var out T
	if err := json.Unmarshal(b, &out); err != nil {
		t.Fatalf("unmarshal: %v\nbody=%s", err, string(b))
	}
	return out
}

func requireError(t *testing.T, status int, body []byte, wantStatus int, wantError string) errorResponse {
	t.Helper()
	if status != wantStatus {
		t.Fatalf("status=%d want=%d body=%s", status, wantStatus, string(body))
	}
	got := mustUnmarshal[errorResponse](t, body)
	if got.Success || got.Error != wantError {
		t.Fatalf("error=%q want=%q body=%s", got.Error, wantError, string(body))
	}
	return got
}

func requireHeaderPresent(t *testing.T, h http.Header, key string) {
	t.Helper()
	if strings.TrimSpace(h.Get(key)) == "" {
		t.Fatalf("expected header %q to be present", key)
	}
}
