package compress

import (
	"bytes"
	"encoding/binary"
	"os"
)

const (
	markerSOI   = 0xd8
	markerAPP1  = 0xe1
	markerSOS   = 0xda
	maxExifScan = 1 << 20
)

var exifHeader = []byte("Exif\x00\x00")

// exifSegment returns the source JPEG's APP1 Exif segment (marker and
// length included) so the re-encode can carry capture metadata forward.
// Nil for non-JPEG sources or when no Exif block exists; the stdlib
// encoder writes none of its own.
func exifSegment(path string) []byte {
	data, err := os.ReadFile(path)
	if err != nil || len(data) < 4 {
		return nil
	}
	if data[0] != 0xff || data[1] != markerSOI {
		return nil
	}

	offset := 2
	limit := len(data)
	if limit > maxExifScan {
		limit = maxExifScan
	}
	for offset+4 <= limit {
		if data[offset] != 0xff {
			return nil
		}
		marker := data[offset+1]
		if marker == markerSOS {
			return nil
		}
		length := int(binary.BigEndian.Uint16(data[offset+2 : offset+4]))
		if length < 2 || offset+2+length > len(data) {
			return nil
		}
		segment := data[offset : offset+2+length]
		if marker == markerAPP1 && bytes.HasPrefix(segment[4:], exifHeader) {
			out := make([]byte, len(segment))
			copy(out, segment)
			return out
		}
		offset += 2 + length
	}
	return nil
}

// spliceExif inserts the APP1 segment immediately after the SOI marker of a
// freshly encoded JPEG.
func spliceExif(encoded, segment []byte) []byte {
	if len(encoded) < 2 || encoded[0] != 0xff || encoded[1] != markerSOI {
		return encoded
	}
	out := make([]byte, 0, len(encoded)+len(segment))
	out = append(out, encoded[:2]...)
	out = append(out, segment...)
	out = append(out, encoded[2:]...)
	return out
}
