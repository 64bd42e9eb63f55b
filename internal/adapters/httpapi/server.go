package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/oapi-codegen/nullable"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/spicebox/waitlist-api/internal/app/waitlist"
	"github.com/spicebox/waitlist-api/internal/domain"
)

// MaxBodyBytes caps the size of a waitlist submission body.
const MaxBodyBytes = 64 << 10

type waitlistRequest struct {
	FullName          string                    `json:"fullName"`
	Email             string                    `json:"email"`
	Suburb            string                    `json:"suburb"`
	DietaryPreference string                    `json:"dietaryPreference"`
	HeardFrom         string                    `json:"heardFrom"`
	Phone             nullable.Nullable[string] `json:"phone,omitempty"`
	ReferredBy        nullable.Nullable[string] `json:"referredBy,omitempty"`
}

type waitlistResponse struct {
	Success      bool               `json:"success"`
	UserID       openapi_types.UUID `json:"userId"`
	ReferralCode string             `json:"referralCode"`
	Warning      string             `json:"warning,omitempty"`
}

type referralCountResponse struct {
	Success      bool   `json:"success"`
	ReferralCode string `json:"referralCode"`
	Count        int    `json:"count"`
}

// Server adapts HTTP requests to the waitlist service.
type Server struct {
	Waitlist *waitlist.Service
}

func NewServer(svc *waitlist.Service) *Server {
	return &Server{Waitlist: svc}
}

// SubmitWaitlist handles the submission endpoint. Only POST is accepted.
func (s *Server) SubmitWaitlist(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "Method not allowed", nil)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, MaxBodyBytes)
	var req waitlistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, r, http.StatusRequestEntityTooLarge, "Request body too large", nil)
			return
		}
		writeError(w, r, http.StatusBadRequest, "Validation failed", []waitlist.FieldError{{
			Field:   "body",
			Message: "Request body must be a JSON object",
		}})
		return
	}

	in := waitlist.SubmitInput{
		FullName:          req.FullName,
		Email:             req.Email,
		Suburb:            req.Suburb,
		DietaryPreference: req.DietaryPreference,
		HeardFrom:         req.HeardFrom,
		Phone:             optionalString(req.Phone),
		ReferredBy:        optionalString(req.ReferredBy),
	}
	if in.ReferredBy == nil {
		if ref := strings.TrimSpace(r.URL.Query().Get("ref")); ref != "" {
			in.ReferredBy = &ref
		}
	}

	// Once accepted, a submission runs to completion even if the client disconnects.
	res, err := s.Waitlist.Submit(context.WithoutCancel(r.Context()), in)
	if err != nil {
		writeAppError(w, r, err)
		return
	}

	userID, err := uuid.Parse(string(res.IdentityID))
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	out := waitlistResponse{
		Success:      true,
		UserID:       openapi_types.UUID(userID),
		ReferralCode: string(res.ReferralCode),
	}
	if res.Notification != nil {
		log.Printf("request %s: %s: %v", middleware.GetReqID(r.Context()), res.Notification.Code, res.Notification.Err)
		out.Warning = res.Notification.Message
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) GetReferralCount(w http.ResponseWriter, r *http.Request) {
	code := domain.ReferralCode(strings.TrimSpace(chi.URLParam(r, "code")))
	if code == "" {
		writeError(w, r, http.StatusBadRequest, "Validation failed", []waitlist.FieldError{{
			Field:   "code",
			Message: "Referral code is required",
		}})
		return
	}
	n, err := s.Waitlist.ReferralCount(r.Context(), code)
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, referralCountResponse{
		Success:      true,
		ReferralCode: string(code),
		Count:        n,
	})
}

func optionalString(n nullable.Nullable[string]) *string {
	if !n.IsSpecified() || n.IsNull() {
		return nil
	}
	v, err := n.Get()
	if err != nil {
		return nil
	}
	return &v
}
