// Package backoff provides the bounded retry policy shared by the
// insert and delete paths of the sync engine.
package backoff

import (
	"math/rand"
	"time"
)

// Policy describes a bounded retry schedule. Attempt numbering starts at 0.
type Policy struct {
	MaxAttempts int
	Base        time.Duration // first delay; doubled per attempt when Exponential
	Cap         time.Duration // upper bound on the computed delay
	Jitter      time.Duration // random addition in [0, Jitter)
	Exponential bool
}

// Exponential returns the capped-exponential policy used for inserts:
// min(cap, base*2^attempt) + jitter.
func Exponential(maxAttempts int, base, cap, jitter time.Duration) Policy {
	return Policy{
		MaxAttempts: maxAttempts,
		Base:        base,
		Cap:         cap,
		Jitter:      jitter,
		Exponential: true,
	}
}

// Constant returns a fixed-delay policy, used for deletes where volume per
// item is small.
func Constant(maxAttempts int, delay time.Duration) Policy {
	return Policy{
		MaxAttempts: maxAttempts,
		Base:        delay,
		Cap:         delay,
	}
}

// Delay computes the sleep before retry number attempt (0-based).
func (p Policy) Delay(attempt int) time.Duration {
	d := p.Base
	if p.Exponential {
		for i := 0; i < attempt; i++ {
			d *= 2
			if d >= p.Cap {
				break
			}
		}
	}
	if p.Cap > 0 && d > p.Cap {
		d = p.Cap
	}
	if p.Jitter > 0 {
		d += time.Duration(rand.Int63n(int64(p.Jitter)))
	}
	return d
}
