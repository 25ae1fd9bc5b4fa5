package clock

import "time"

// FakeClock is a manually driven Clock for tests that assert on
// timestamps services write, like paid_at or audit created_at.
// Not safe for concurrent use.
type FakeClock struct {
	now time.Time
}

// NewFakeClock pins the clock to t, normalized to UTC.
func NewFakeClock(t time.Time) *FakeClock {
	return &FakeClock{now: t.UTC()}
}

func (c *FakeClock) Now() time.Time {
	return c.now
}

// Advance moves the clock forward by d.
func (c *FakeClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}

// SetNow repins the clock to a specific instant.
func (c *FakeClock) SetNow(t time.Time) {
	c.now = t.UTC()
}
