package clock

import (
	"sync"
	"time"
)

// Clocker abstracts time so callers can replace real time in tests.
type Clocker interface {
	Now() time.Time
}

// TimeClocker reads the system clock in UTC.
type TimeClocker struct{}

// New returns a TimeClocker.
func New() *TimeClocker {
	return &TimeClocker{}
}

// Now returns the current system time in UTC.
func (*TimeClocker) Now() time.Time {
	return time.Now().UTC()
}

// FixedClocker always reports the same instant until moved with Advance.
type FixedClocker struct {
	mu sync.Mutex
	t  time.Time
}

// NewFixed returns a FixedClocker pinned at t.
func NewFixed(t time.Time) *FixedClocker {
	return &FixedClocker{t: t}
}

func (f *FixedClocker) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.t
}

// Advance moves the pinned instant forward by d.
func (f *FixedClocker) Advance(d time.Duration) {
	f.mu.Lock()
	f.t = f.t.Add(d)
	f.mu.Unlock()
}
