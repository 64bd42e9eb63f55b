package notifier

import (
	"context"
	"errors"
)

// ErrNotConfigured is returned by notifiers that have no delivery credentials.
var ErrNotConfigured = errors.New("notifier not configured")

// Recipient is who a transactional email goes to.
type Recipient struct {
	Email string
	Name  string
}

// Notifier sends the waitlist confirmation email.
type Notifier interface {
	SendWaitlistConfirmation(ctx context.Context, to Recipient) error
}
