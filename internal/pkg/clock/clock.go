package clock

import (
	"sync"
	"time"
)

// Clock supplies creation timestamps to the stores.
type Clock interface {
	Now() time.Time
}

// RealClock returns the wall clock in UTC.
type RealClock struct{}

func (RealClock) Now() time.Time {
	return time.Now().UTC()
}

// FakeClock is a controllable clock for tests. Each call to Now advances it by
// Step, so successive inserts receive distinct, increasing timestamps.
type FakeClock struct {
	mu   sync.Mutex
	now  time.Time
	Step time.Duration
}

func NewFake(t time.Time) *FakeClock {
	return &FakeClock{now: t}
}

func (f *FakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	now := f.now
	f.now = f.now.Add(f.Step)
	return now
}

func (f *FakeClock) Set(t time.Time) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = t
}

func (f *FakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = f.now.Add(d)
}
