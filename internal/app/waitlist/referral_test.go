package waitlist

import (
	"strings"
	"testing"
)

func TestNewReferralCode_Shape(t *testing.T) {
	t.Parallel()

	for i := 0; i < 100; i++ {
		code, err := NewReferralCode()
		if err != nil {
			t.Fatalf("NewReferralCode err=%v", err)
		}
		if len(code) != ReferralCodeLength {
			t.Fatalf("len(%q)=%d", code, len(code))
		}
		for _, r := range string(code) {
			if !strings.ContainsRune(referralAlphabet, r) {
				t.Fatalf("code %q has unexpected rune %q", code, r)
			}
		}
	}
}

func TestNewReferralCode_Distinct(t *testing.T) {
	t.Parallel()

	seen := make(map[string]struct{}, 1000)
	for i := 0; i < 1000; i++ {
		code, err := NewReferralCode()
		if err != nil {
			t.Fatalf("NewReferralCode err=%v", err)
		}
		if _, dup := seen[string(code)]; dup {
			t.Fatalf("duplicate code %q after %d draws", code, i)
		}
		seen[string(code)] = struct{}{}
	}
}
