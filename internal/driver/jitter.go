package driver

import "time"

// lowFactorFloor keeps the sampling window open even with jitter >= 1.
const lowFactorFloor = 0.05

// nextWait samples a wait uniformly from
// [max(0.05, 1-jitter) x nominal, (1+jitter) x nominal], then clamps to the
// configured minimum. With jitter below 1 the mean stays at the nominal
// interval, so the session still spreads over the configured duration.
func (d *Driver) nextWait(nominal time.Duration) time.Duration {
	low := 1.0 - d.cfg.Jitter
	if low < lowFactorFloor {
		low = lowFactorFloor
	}
	high := 1.0 + d.cfg.Jitter

	factor := low + d.rng.Float64()*(high-low)
	wait := time.Duration(factor * float64(nominal))
	if wait < d.cfg.MinWait {
		wait = d.cfg.MinWait
	}
	if wait < 0 {
		wait = 0
	}
	return wait
}
