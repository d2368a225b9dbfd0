// Package vision implements the visual half of image-similarity pairing: a
// frame sampler that pulls one representative frame out of a video via
// ffmpeg, and a scorer that rates how alike two images are.
//
// The scorer detects up to 500 FAST corners per image on a fixed 400x300
// grayscale working surface, describes each corner with a 256-bit binary
// descriptor, and cross-checks nearest-neighbor matches under Hamming
// distance. The score is the fraction of good matches over the smaller
// keypoint set. Images with no detectable corners (flat scans, heavy blur)
// fall back to grayscale histogram correlation.
//
// Every failure path yields a zero score or a nil frame instead of an
// error: one undecodable video must never abort scoring for the rest of
// the batch.
package vision
