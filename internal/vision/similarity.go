package vision

import (
	"image"
	"math"
	"math/bits"
)

// goodMatchDistance is the Hamming cutoff below which a cross-checked match
// counts toward the similarity score.
const goodMatchDistance = 50

// Similarity scores how alike two images are, in [0, 1]. Zero is returned
// for nil inputs or any internal failure; the caller never has to handle an
// error mid-batch.
func Similarity(a, b image.Image) float64 {
	if a == nil || b == nil {
		return 0
	}

	grayA := toWorkingGray(a)
	grayB := toWorkingGray(b)

	kpA := detectKeypoints(grayA)
	kpB := detectKeypoints(grayB)
	if len(kpA) == 0 || len(kpB) == 0 {
		// Featureless images (flat scans, heavy blur) still carry tonal
		// information worth comparing.
		return histogramSimilarity(grayA, grayB)
	}

	descA := computeDescriptors(grayA, kpA)
	descB := computeDescriptors(grayB, kpB)

	good := 0
	for _, match := range crossMatch(descA, descB) {
		if match.distance < goodMatchDistance {
			good++
		}
	}

	smaller := len(kpA)
	if len(kpB) < smaller {
		smaller = len(kpB)
	}
	score := float64(good) / float64(smaller)
	if score > 1 {
		score = 1
	}
	return score
}

type match struct {
	indexA, indexB int
	distance       int
}

// crossMatch pairs descriptors that are mutual nearest neighbors under
// Hamming distance, the brute-force cross-check strategy.
func crossMatch(descA, descB []descriptor) []match {
	bestForA := nearestNeighbors(descA, descB)
	bestForB := nearestNeighbors(descB, descA)

	matches := make([]match, 0, len(descA))
	for ia, nb := range bestForA {
		if nb.index >= 0 && bestForB[nb.index].index == ia {
			matches = append(matches, match{indexA: ia, indexB: nb.index, distance: nb.distance})
		}
	}
	return matches
}

type neighbor struct {
	index    int
	distance int
}

func nearestNeighbors(from, to []descriptor) []neighbor {
	result := make([]neighbor, len(from))
	for i, d := range from {
		best := neighbor{index: -1, distance: descriptorBits + 1}
		for j, candidate := range to {
			dist := hamming(d, candidate)
			if dist < best.distance {
				best = neighbor{index: j, distance: dist}
			}
		}
		result[i] = best
	}
	return result
}

func hamming(a, b descriptor) int {
	total := 0
	for i := range a {
		total += bits.OnesCount64(a[i] ^ b[i])
	}
	return total
}

// histogramSimilarity correlates 256-bin grayscale histograms. Negative
// correlation clamps to zero: anticorrelated images are simply dissimilar.
func histogramSimilarity(a, b *image.Gray) float64 {
	histA := intensityHistogram(a)
	histB := intensityHistogram(b)

	corr := pearson(histA, histB)
	if corr < 0 {
		return 0
	}
	return corr
}

func intensityHistogram(img *image.Gray) [256]float64 {
	var hist [256]float64
	bounds := img.Bounds()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		row := img.Pix[(y-bounds.Min.Y)*img.Stride:]
		for x := 0; x < bounds.Dx(); x++ {
			hist[row[x]]++
		}
	}
	total := float64(bounds.Dx() * bounds.Dy())
	if total > 0 {
		for i := range hist {
			hist[i] /= total
		}
	}
	return hist
}

func pearson(a, b [256]float64) float64 {
	var meanA, meanB float64
	for i := 0; i < 256; i++ {
		meanA += a[i]
		meanB += b[i]
	}
	meanA /= 256
	meanB /= 256

	var cov, varA, varB float64
	for i := 0; i < 256; i++ {
		da := a[i] - meanA
		db := b[i] - meanB
		cov += da * db
		varA += da * da
		varB += db * db
	}
	if varA == 0 || varB == 0 {
		// Identical flat histograms are a perfect match, mismatched flat
		// against varied is indeterminate; treat both as no signal.
		if varA == varB {
			return 1
		}
		return 0
	}
	return cov / math.Sqrt(varA*varB)
}
