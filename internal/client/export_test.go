package client

import "time"

// SetClock replaces the clock used by ListRecent.
func SetClock(c *InvocationsClient, now func() time.Time) {
	c.now = now
}
