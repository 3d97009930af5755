package playback

import (
	"sync"
	"time"
)

// WallClock stands in for a media element: the position advances with wall
// time from the last Seek.
type WallClock struct {
	mu     sync.Mutex
	now    func() time.Time
	origin time.Time
	offset time.Duration
}

func NewWallClock(start time.Duration) *WallClock {
	return newWallClock(start, time.Now)
}

func newWallClock(start time.Duration, now func() time.Time) *WallClock {
	return &WallClock{now: now, origin: now(), offset: start}
}

func (c *WallClock) Position() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.offset + c.now().Sub(c.origin)
}

// Seek moves the clock to pos.
func (c *WallClock) Seek(pos time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.origin = c.now()
	c.offset = pos
}
