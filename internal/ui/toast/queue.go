package toast

import (
	"time"

	"github.com/riordanpawley/laneboard/internal/types"
)

// Default display durations
const (
	DefaultDuration      = 3 * time.Second
	DefaultErrorDuration = 8 * time.Second
	DefaultLimit         = 4
)

// Queue collects notifications until they expire. It is only touched from
// the UI goroutine.
type Queue struct {
	toasts        []types.Toast
	duration      time.Duration
	errorDuration time.Duration
	limit         int
	now           func() time.Time
}

// NewQueue creates a queue. Non-positive durations fall back to the
// defaults. Warnings and errors stay up for errorDuration.
func NewQueue(duration, errorDuration time.Duration) *Queue {
	if duration <= 0 {
		duration = DefaultDuration
	}
	if errorDuration <= 0 {
		errorDuration = DefaultErrorDuration
	}
	return &Queue{
		duration:      duration,
		errorDuration: errorDuration,
		limit:         DefaultLimit,
		now:           time.Now,
	}
}

// SetLimit caps how many toasts show at once. Non-positive values keep the
// current limit.
func (q *Queue) SetLimit(n int) {
	if n > 0 {
		q.limit = n
	}
}

// Notify adds a toast. When more than the limit are showing the oldest one
// is dropped.
func (q *Queue) Notify(level types.ToastLevel, message string) {
	d := q.duration
	if level == types.ToastError || level == types.ToastWarning {
		d = q.errorDuration
	}
	q.toasts = append(q.toasts, types.Toast{
		Level:   level,
		Message: message,
		Expires: q.now().Add(d),
	})
	if over := len(q.toasts) - q.limit; over > 0 {
		q.toasts = q.toasts[over:]
	}
}

// Expire drops toasts whose time is up
func (q *Queue) Expire() {
	now := q.now()
	kept := q.toasts[:0]
	for _, t := range q.toasts {
		if !t.Expired(now) {
			kept = append(kept, t)
		}
	}
	q.toasts = kept
}

// Active returns the toasts currently showing, oldest first
func (q *Queue) Active() []types.Toast {
	out := make([]types.Toast, len(q.toasts))
	copy(out, q.toasts)
	return out
}

// Len returns the number of showing toasts
func (q *Queue) Len() int {
	return len(q.toasts)
}
