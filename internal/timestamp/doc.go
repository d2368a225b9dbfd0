// Package timestamp derives an authoritative creation instant for media
// files. Photos are read through their EXIF capture tags, videos through
// ffprobe container tags, and anything unparseable degrades to filesystem
// time, so resolution never fails outright.
//
// Results are memoized in an explicit Cache that callers own and can clear
// when files are edited and reprocessed within one session. The cache is
// safe for concurrent population; a racing duplicate computation is merely
// wasted work.
package timestamp
