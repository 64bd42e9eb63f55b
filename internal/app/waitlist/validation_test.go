package waitlist

import (
	"testing"

	"github.com/spicebox/waitlist-api/internal/platform/config"
)

func newTestSchema() *Schema {
	c := config.DefaultCatalog()
	return NewSchema(c.DietaryPreferences, c.HeardFrom)
}

func validInput() SubmitInput {
	return SubmitInput{
		FullName:          "Priya Sharma",
		Email:             "priya@example.com",
		Suburb:            "Parramatta",
		DietaryPreference: "vegetarian",
		HeardFrom:         "social-media",
	}
}

func strPtr(s string) *string { return &s }

func TestSchema_ValidSubmissionIsNormalized(t *testing.T) {
	t.Parallel()

	in := validInput()
	in.FullName = "  Priya   Sharma "
	in.Email = " Priya@Example.com "
	in.Suburb = " Surry  Hills"
	in.DietaryPreference = " Vegan "
	in.Phone = strPtr(" 0400 000 000 ")
	in.ReferredBy = strPtr(" abc123xy ")

	sub, errs := newTestSchema().Validate(in)
	if len(errs) != 0 {
		t.Fatalf("errs=%v", errs)
	}
	if sub.FullName != "Priya Sharma" || sub.Email != "priya@example.com" || sub.Suburb != "Surry Hills" {
		t.Fatalf("not normalized: %+v", sub)
	}
	if sub.DietaryPreference != "vegan" || sub.Phone != "0400 000 000" {
		t.Fatalf("not normalized: %+v", sub)
	}
	if sub.ReferredBy == nil || *sub.ReferredBy != "abc123xy" {
		t.Fatalf("ReferredBy=%v", sub.ReferredBy)
	}
}

func TestSchema_PhoneDefaultsToEmpty(t *testing.T) {
	t.Parallel()

	sub, errs := newTestSchema().Validate(validInput())
	if len(errs) != 0 {
		t.Fatalf("errs=%v", errs)
	}
	if sub.Phone != "" || sub.ReferredBy != nil {
		t.Fatalf("unexpected optional fields: %+v", sub)
	}
}

func TestSchema_CollectsEveryMissingField(t *testing.T) {
	t.Parallel()

	_, errs := newTestSchema().Validate(SubmitInput{FullName: "   "})
	want := []FieldError{
		{Field: "fullName", Message: "Full name is required"},
		{Field: "email", Message: "A valid email address is required"},
		{Field: "suburb", Message: "Suburb is required"},
		{Field: "dietaryPreference", Message: "Please select a dietary preference"},
		{Field: "heardFrom", Message: "Please let us know where you heard about us"},
	}
	if len(errs) != len(want) {
		t.Fatalf("errs=%v, want %v", errs, want)
	}
	for i := range want {
		if errs[i] != want[i] {
			t.Fatalf("errs[%d]=%+v, want %+v", i, errs[i], want[i])
		}
	}
}

func TestSchema_EachRequiredFieldIsEnforced(t *testing.T) {
	t.Parallel()

	blank := map[string]func(*SubmitInput){
		"fullName":          func(in *SubmitInput) { in.FullName = "" },
		"email":             func(in *SubmitInput) { in.Email = "" },
		"suburb":            func(in *SubmitInput) { in.Suburb = "" },
		"dietaryPreference": func(in *SubmitInput) { in.DietaryPreference = "" },
		"heardFrom":         func(in *SubmitInput) { in.HeardFrom = "" },
	}
	schema := newTestSchema()
	for field, mutate := range blank {
		in := validInput()
		mutate(&in)
		_, errs := schema.Validate(in)
		if len(errs) != 1 || errs[0].Field != field {
			t.Fatalf("%s: errs=%v", field, errs)
		}
	}
}

func TestSchema_RejectsInvalidEmails(t *testing.T) {
	t.Parallel()

	schema := newTestSchema()
	for _, email := range []string{"not-an-email", "priya@", "@example.com", "priya example@x.com", "Priya <priya@example.com>"} {
		in := validInput()
		in.Email = email
		_, errs := schema.Validate(in)
		if len(errs) != 1 || errs[0].Field != "email" {
			t.Fatalf("email %q: errs=%v", email, errs)
		}
	}
}

func TestSchema_RejectsValuesOutsideCatalog(t *testing.T) {
	t.Parallel()

	in := validInput()
	in.DietaryPreference = "carnivore"
	in.HeardFrom = "billboard-on-mars"
	_, errs := newTestSchema().Validate(in)
	if len(errs) != 2 {
		t.Fatalf("errs=%v", errs)
	}
	if errs[0].Field != "dietaryPreference" || errs[0].Message != "Please select a dietary preference from the list" {
		t.Fatalf("errs[0]=%+v", errs[0])
	}
	if errs[1].Field != "heardFrom" {
		t.Fatalf("errs[1]=%+v", errs[1])
	}
}

func TestSchema_CustomCatalog(t *testing.T) {
	t.Parallel()

	schema := NewSchema([]string{"Pescatarian"}, []string{"podcast"})
	in := validInput()
	in.DietaryPreference = "pescatarian"
	in.HeardFrom = "podcast"
	if _, errs := schema.Validate(in); len(errs) != 0 {
		t.Fatalf("errs=%v", errs)
	}
	in.DietaryPreference = "vegetarian"
	if _, errs := schema.Validate(in); len(errs) != 1 {
		t.Fatalf("expected vegetarian to be rejected by custom catalog, errs=%v", errs)
	}
}

func TestSchema_PhoneTooLong(t *testing.T) {
	t.Parallel()

	in := validInput()
	in.Phone = strPtr("0123456789012345678901234567890123456789x")
	_, errs := newTestSchema().Validate(in)
	if len(errs) != 1 || errs[0].Field != "phone" {
		t.Fatalf("errs=%v", errs)
	}
}

func TestSchema_BlankReferralIsDropped(t *testing.T) {
	t.Parallel()

	in := validInput()
	in.ReferredBy = strPtr("   ")
	sub, errs := newTestSchema().Validate(in)
	if len(errs) != 0 || sub.ReferredBy != nil {
		t.Fatalf("sub=%+v errs=%v", sub, errs)
	}
}
