//go:build !linux && !darwin

package timestamp

import "time"

func birthTime(string) (time.Time, bool) {
	return time.Time{}, false
}
