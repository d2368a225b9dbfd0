package vision

import (
	"image"
	"math/rand"
)

const descriptorBits = 256

// descriptor is a 256-bit binary signature compared under Hamming distance.
type descriptor [4]uint64

// samplePairs holds the fixed point-pair pattern all descriptors share. The
// pattern must be identical for every image in a run and across runs, so it
// is generated once from a constant seed at package init.
var samplePairs = makeSamplePairs()

type pointPair struct {
	ax, ay, bx, by int
}

func makeSamplePairs() [descriptorBits]pointPair {
	rng := rand.New(rand.NewSource(0x5eed))
	var pairs [descriptorBits]pointPair
	for i := range pairs {
		pairs[i] = pointPair{
			ax: rng.Intn(2*patchRadius+1) - patchRadius,
			ay: rng.Intn(2*patchRadius+1) - patchRadius,
			bx: rng.Intn(2*patchRadius+1) - patchRadius,
			by: rng.Intn(2*patchRadius+1) - patchRadius,
		}
	}
	return pairs
}

// computeDescriptors builds one binary descriptor per keypoint by comparing
// smoothed intensities at the fixed point pairs around it.
func computeDescriptors(img *image.Gray, keypoints []keypoint) []descriptor {
	smoothed := boxBlur3(img)
	descriptors := make([]descriptor, len(keypoints))
	for i, kp := range keypoints {
		var d descriptor
		for bit, pair := range samplePairs {
			a := smoothed.GrayAt(kp.x+pair.ax, kp.y+pair.ay).Y
			b := smoothed.GrayAt(kp.x+pair.bx, kp.y+pair.by).Y
			if a < b {
				d[bit/64] |= 1 << uint(bit%64)
			}
		}
		descriptors[i] = d
	}
	return descriptors
}
