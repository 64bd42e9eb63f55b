package waitlist

import (
	"crypto/rand"
	"fmt"

	"github.com/spicebox/waitlist-api/internal/domain"
)

const (
	referralAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

	// ReferralCodeLength gives 36^8 (~2.8e12) possible codes; collisions are not checked.
	ReferralCodeLength = 8
)

// NewReferralCode returns a uniformly random lowercase alphanumeric code.
func NewReferralCode() (domain.ReferralCode, error) {
	// Bytes >= maxByte are rejected so every symbol is equally likely.
	const maxByte = 256 - 256%len(referralAlphabet)

	out := make([]byte, 0, ReferralCodeLength)
	buf := make([]byte, ReferralCodeLength*2)
	for len(out) < ReferralCodeLength {
		if _, err := rand.Read(buf); err != nil {
			return "", fmt.Errorf("generate referral code: %w", err)
		}
		for _, b := range buf {
			if int(b) >= maxByte {
				continue
			}
			out = append(out, referralAlphabet[int(b)%len(referralAlphabet)])
			if len(out) == ReferralCodeLength {
				break
			}
		}
	}
	return domain.ReferralCode(out), nil
}
