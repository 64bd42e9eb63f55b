package domain

import "testing"

func TestNormalizeHumanName(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"  Priya   Sharma ": "Priya Sharma",
		"Parramatta":        "Parramatta",
		"\tSurry\n Hills ":  "Surry Hills",
		"   ":               "",
	}
	for in, want := range cases {
		if got := NormalizeHumanName(in); got != want {
			t.Fatalf("NormalizeHumanName(%q)=%q, want %q", in, got, want)
		}
	}
}

func TestNormalizeEmail(t *testing.T) {
	t.Parallel()

	if got := NormalizeEmail("  Priya@Example.COM "); got != "priya@example.com" {
		t.Fatalf("NormalizeEmail=%q", got)
	}
}
