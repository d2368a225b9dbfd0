package timestamp

import (
	"os"
	"time"

	"github.com/rwcarlsen/goexif/exif"
)

// exifDateFields lists the EXIF tags checked for a capture time, in priority
// order: original capture, digitization, then the generic modification tag.
var exifDateFields = []exif.FieldName{
	exif.DateTimeOriginal,
	exif.DateTimeDigitized,
	exif.DateTime,
}

const exifDateLayout = "2006:01:02 15:04:05"

func exifTime(path string) (time.Time, bool) {
	f, err := os.Open(path)
	if err != nil {
		return time.Time{}, false
	}
	defer f.Close()

	meta, err := exif.Decode(f)
	if err != nil {
		return time.Time{}, false
	}

	for _, field := range exifDateFields {
		tag, err := meta.Get(field)
		if err != nil {
			continue
		}
		raw, err := tag.StringVal()
		if err != nil {
			continue
		}
		if ts, err := time.ParseInLocation(exifDateLayout, raw, time.Local); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}
