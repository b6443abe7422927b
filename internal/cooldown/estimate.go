// Package cooldown interpolates discrete server cooldown values into smooth local countdowns.
package cooldown

import (
	"math"
	"strconv"
	"time"
)

// Estimate is the last server-confirmed cooldown and the local time it was received.
type Estimate struct {
	Base float64
	At   time.Time
	Max  float64
}

// New starts an estimate. Negative or non-finite values are treated as 0.
func New(base float64, maxCooldown float64, now time.Time) Estimate {
	return Estimate{Base: sanitize(base), Max: sanitize(maxCooldown), At: now}
}

// Remaining decays the base value linearly: max(0, base - elapsed).
func (e Estimate) Remaining(now time.Time) float64 {
	elapsed := now.Sub(e.At).Seconds()
	if elapsed < 0 {
		elapsed = 0
	}

	return max(0, e.Base-elapsed)
}

// Active reports whether the estimate still needs frame updates.
func (e Estimate) Active(now time.Time) bool {
	return e.Remaining(now) > 0
}

// Ratio is the fraction of the full cooldown still remaining, clamped to [0, 1].
func Ratio(remaining float64, maxCooldown float64) float64 {
	if maxCooldown <= 0 || math.IsNaN(remaining) {
		return 0
	}

	return min(1, max(0, remaining/maxCooldown))
}

// Label returns the whole seconds left, rounded up. No label is produced when the cooldown
// is finished or the maximum is unknown.
func Label(remaining float64, maxCooldown float64) (string, bool) {
	if remaining <= 0 || maxCooldown <= 0 || math.IsNaN(remaining) || math.IsInf(remaining, 0) {
		return "", false
	}

	return strconv.Itoa(int(math.Ceil(remaining))), true
}

func sanitize(value float64) float64 {
	if math.IsNaN(value) || math.IsInf(value, 0) || value < 0 {
		return 0
	}

	return value
}
