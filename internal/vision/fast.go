package vision

import (
	"image"
	"sort"
)

const (
	maxKeypoints  = 500
	fastThreshold = 20
	// Descriptor sampling needs a complete patch around every keypoint.
	patchRadius = 15
)

type keypoint struct {
	x, y  int
	score int
}

// circleOffsets is the 16-pixel Bresenham circle of radius 3 used by the
// FAST segment test.
var circleOffsets = [16][2]int{
	{0, -3}, {1, -3}, {2, -2}, {3, -1},
	{3, 0}, {3, 1}, {2, 2}, {1, 3},
	{0, 3}, {-1, 3}, {-2, 2}, {-3, 1},
	{-3, 0}, {-3, -1}, {-2, -2}, {-1, -3},
}

// detectKeypoints runs a FAST-9 segment test over the working surface and
// returns at most maxKeypoints corners, strongest first, after non-maximum
// suppression. Corners too close to the border for a descriptor patch are
// rejected up front.
func detectKeypoints(img *image.Gray) []keypoint {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	margin := patchRadius + 3

	scores := make([]int, w*h)
	var candidates []keypoint
	for y := margin; y < h-margin; y++ {
		for x := margin; x < w-margin; x++ {
			score := cornerScore(img, x, y)
			if score <= 0 {
				continue
			}
			scores[y*w+x] = score
			candidates = append(candidates, keypoint{x: x, y: y, score: score})
		}
	}

	// 3x3 non-maximum suppression keeps one corner per local response peak.
	kept := candidates[:0]
	for _, kp := range candidates {
		best := true
		for dy := -1; dy <= 1 && best; dy++ {
			for dx := -1; dx <= 1; dx++ {
				if dx == 0 && dy == 0 {
					continue
				}
				if scores[(kp.y+dy)*w+kp.x+dx] > kp.score {
					best = false
					break
				}
			}
		}
		if best {
			kept = append(kept, kp)
		}
	}

	sort.Slice(kept, func(i, j int) bool {
		if kept[i].score != kept[j].score {
			return kept[i].score > kept[j].score
		}
		if kept[i].y != kept[j].y {
			return kept[i].y < kept[j].y
		}
		return kept[i].x < kept[j].x
	})
	if len(kept) > maxKeypoints {
		kept = kept[:maxKeypoints]
	}
	return kept
}

// cornerScore performs the FAST-9 test at (x, y): the pixel is a corner if
// nine contiguous circle pixels are all brighter or all darker than the
// center by the threshold. The returned score is the summed absolute
// difference over the qualifying arc, zero for non-corners.
func cornerScore(img *image.Gray, x, y int) int {
	center := int(img.GrayAt(x, y).Y)
	brighter := center + fastThreshold
	darker := center - fastThreshold

	var ring [16]int
	for i, off := range circleOffsets {
		ring[i] = int(img.GrayAt(x+off[0], y+off[1]).Y)
	}

	best := 0
	for _, wantBright := range []bool{true, false} {
		run := 0
		sum := 0
		// Walk the ring twice so arcs wrapping the start are found.
		for i := 0; i < 32; i++ {
			v := ring[i%16]
			var hit bool
			if wantBright {
				hit = v > brighter
			} else {
				hit = v < darker
			}
			if hit {
				run++
				sum += absInt(v - center)
				if run >= 9 && sum > best {
					best = sum
				}
			} else {
				run = 0
				sum = 0
			}
		}
	}
	return best
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
