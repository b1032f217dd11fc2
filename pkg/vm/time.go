package vm

import "time"

// clock is the source of every time the game can observe. A spoofed clock
// advances only when a step completes, so replays see the same times.
type clock struct {
	spoofed bool
	start   time.Time
	nanos   int64
}

func newRealClock() clock {
	return clock{start: time.Now()}
}

func newSpoofedClock(start time.Time) clock {
	return clock{spoofed: true, start: start.UTC(), nanos: start.UTC().UnixNano()}
}

// now returns the current wall time.
func (c *clock) now() time.Time {
	if c.spoofed {
		return time.Unix(0, c.nanos).UTC()
	}
	return time.Now()
}

// millis returns the milliseconds elapsed since the clock started.
func (c *clock) millis() int64 {
	if c.spoofed {
		return (c.nanos - c.start.UnixNano()) / int64(time.Millisecond)
	}
	return time.Since(c.start).Milliseconds()
}

// advance moves a spoofed clock forward by one frame at the given room speed.
func (c *clock) advance(roomSpeed int32) {
	if !c.spoofed || roomSpeed <= 0 {
		return
	}
	c.nanos += int64(time.Second) / int64(roomSpeed)
}

// Now returns the time as the game sees it.
func (g *Game) Now() time.Time { return g.clock.now() }

// Spoofed reports whether the game runs on a deterministic clock.
func (g *Game) Spoofed() bool { return g.clock.spoofed }
