package notifier

import (
	"context"
	"sync"

	"github.com/spicebox/waitlist-api/internal/ports/out/notifier"
)

// Recorder is an in-memory notifier that records every send attempt.
// Setting Err makes each attempt fail after being recorded.
// It is safe for concurrent use.
type Recorder struct {
	mu   sync.Mutex
	sent []notifier.Recipient
	err  error
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) SendWaitlistConfirmation(ctx context.Context, to notifier.Recipient) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, to)
	return r.err
}

// FailWith makes subsequent sends return err (nil restores success).
func (r *Recorder) FailWith(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.err = err
}

// Sent returns a copy of every recipient a send was attempted for.
func (r *Recorder) Sent() []notifier.Recipient {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]notifier.Recipient, len(r.sent))
	copy(out, r.sent)
	return out
}
