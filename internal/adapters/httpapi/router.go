package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter constructs the API HTTP router.
//
// The landing page form posts to /api/waitlist; /waitlist is the same endpoint.
func NewRouter(api *Server) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Health endpoint for infra checks.
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	for _, prefix := range []string{"", "/api"} {
		r.HandleFunc(prefix+"/waitlist", api.SubmitWaitlist)
		r.Get(prefix+"/waitlist/referrals/{code}", api.GetReferralCount)
	}
	return r
}
