package waitlist

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/spicebox/waitlist-api/internal/domain"
)

// Schema validates raw submissions. It is safe for concurrent use.
type Schema struct {
	v *validator.Validate
}

// submissionSchema is the shape checked by the validator; field order is report order.
type submissionSchema struct {
	FullName          string `json:"fullName"          validate:"required"`
	Email             string `json:"email"             validate:"required,email"`
	Suburb            string `json:"suburb"            validate:"required"`
	DietaryPreference string `json:"dietaryPreference" validate:"required,dietary_preference"`
	HeardFrom         string `json:"heardFrom"         validate:"required,heard_from"`
	Phone             string `json:"phone"             validate:"omitempty,max=40"`
}

var fieldMessages = map[string]map[string]string{
	"fullName": {
		"required": "Full name is required",
	},
	"email": {
		"required": "A valid email address is required",
		"email":    "A valid email address is required",
	},
	"suburb": {
		"required": "Suburb is required",
	},
	"dietaryPreference": {
		"required":           "Please select a dietary preference",
		"dietary_preference": "Please select a dietary preference from the list",
	},
	"heardFrom": {
		"required":   "Please let us know where you heard about us",
		"heard_from": "Please select where you heard about us from the list",
	},
	"phone": {
		"max": "Phone number must be at most 40 characters",
	},
}

// NewSchema builds a schema accepting the given enumerations for dietaryPreference and heardFrom.
func NewSchema(dietaryPreferences, heardFrom []string) *Schema {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	// Registration only fails for empty tags or nil funcs.
	_ = v.RegisterValidation("dietary_preference", oneOf(dietaryPreferences))
	_ = v.RegisterValidation("heard_from", oneOf(heardFrom))
	return &Schema{v: v}
}

// Validate normalizes in and checks every rule, collecting all violations.
// Either the returned slice is empty and the Submission is complete, or the Submission
// must be ignored.
func (s *Schema) Validate(in SubmitInput) (Submission, []FieldError) {
	raw := submissionSchema{
		FullName:          domain.NormalizeHumanName(in.FullName),
		Email:             domain.NormalizeEmail(in.Email),
		Suburb:            domain.NormalizeHumanName(in.Suburb),
		DietaryPreference: strings.ToLower(strings.TrimSpace(in.DietaryPreference)),
		HeardFrom:         strings.ToLower(strings.TrimSpace(in.HeardFrom)),
	}
	if in.Phone != nil {
		raw.Phone = strings.TrimSpace(*in.Phone)
	}

	if err := s.v.Struct(raw); err != nil {
		var ves validator.ValidationErrors
		if !errors.As(err, &ves) {
			return Submission{}, []FieldError{{Field: "body", Message: err.Error()}}
		}
		out := make([]FieldError, 0, len(ves))
		for _, fe := range ves {
			out = append(out, FieldError{Field: fe.Field(), Message: messageFor(fe)})
		}
		return Submission{}, out
	}

	sub := Submission{
		FullName:          raw.FullName,
		Email:             raw.Email,
		Suburb:            raw.Suburb,
		DietaryPreference: raw.DietaryPreference,
		HeardFrom:         raw.HeardFrom,
		Phone:             raw.Phone,
	}
	// Referral codes are an unvalidated attribution tag: kept verbatim, never rejected.
	if in.ReferredBy != nil {
		if rb := strings.TrimSpace(*in.ReferredBy); rb != "" {
			code := domain.ReferralCode(rb)
			sub.ReferredBy = &code
		}
	}
	return sub, nil
}

func messageFor(fe validator.FieldError) string {
	if m, ok := fieldMessages[fe.Field()][fe.Tag()]; ok {
		return m
	}
	return fe.Field() + " is invalid"
}

func oneOf(values []string) validator.Func {
	allowed := make(map[string]struct{}, len(values))
	for _, v := range values {
		allowed[strings.ToLower(strings.TrimSpace(v))] = struct{}{}
	}
	return func(fl validator.FieldLevel) bool {
		_, ok := allowed[fl.Field().String()]
		return ok
	}
}
