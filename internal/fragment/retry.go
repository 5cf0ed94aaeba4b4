package fragment

import (
	"math/rand"
	"time"
)

// defaultBackoff returns a duration for attempt n (0-indexed) with jitter.
func defaultBackoff(attempt int) time.Duration {
	base := time.Duration(1<<uint(attempt)) * time.Second
	if base > 10*time.Second {
		base = 10 * time.Second
	}
	jitter := time.Duration(rand.Int63n(int64(base) / 2))
	return base + jitter
}
