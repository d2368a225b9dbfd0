package timestamp

import (
	"os"
	"time"
)

// FilesystemTime returns the file's creation timestamp where the platform
// exposes one, else its last-modified timestamp. Exported because order-mode
// pairing deliberately sorts videos by download time instead of the resolved
// capture time.
func FilesystemTime(path string) (time.Time, error) {
	info, err := os.Stat(path)
	if err != nil {
		return time.Time{}, err
	}
	if birth, ok := birthTime(path); ok {
		return birth, nil
	}
	return info.ModTime(), nil
}
