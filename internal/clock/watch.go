package clock

import (
	"context"
	"time"
)

// WatchMidnight calls fn with the new business date every time the clock
// crosses midnight. The timer is armed for the next midnight, fires once and
// is re-armed. It returns when ctx is done.
func WatchMidnight(ctx context.Context, c *Clock, fn func(today string)) {
	last := c.Today()
	for {
		timer := time.NewTimer(c.UntilMidnight())
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}

		today := c.Today()
		if today != last {
			last = today
			fn(today)
		}
	}
}
