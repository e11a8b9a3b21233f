//go:build !linux

package identity

import "time"

// statTimes falls back to the modification time on platforms where the
// change/access stat fields are not portably available.
func statTimes(path string, fallback time.Time) (created, accessed time.Time) {
	return fallback, fallback
}
