package ocr

import (
	"image"
	"image/color"

	xdraw "golang.org/x/image/draw"
)

// preprocess converts the crop into the form tesseract reads best: grayscale,
// doubled in size so small plate lettering has enough pixels, then
// binarized with an Otsu threshold.
func preprocess(img image.Image) *image.Gray {
	gray := grayOf(img)
	scaled := upscale2x(gray)
	return binarize(scaled, otsuThreshold(scaled))
}

func grayOf(img image.Image) *image.Gray {
	if g, ok := img.(*image.Gray); ok {
		return g
	}
	bounds := img.Bounds()
	gray := image.NewGray(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	xdraw.Draw(gray, gray.Bounds(), img, bounds.Min, xdraw.Src)
	return gray
}

func upscale2x(src *image.Gray) *image.Gray {
	bounds := src.Bounds()
	dst := image.NewGray(image.Rect(0, 0, bounds.Dx()*2, bounds.Dy()*2))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, xdraw.Src, nil)
	return dst
}

// otsuThreshold picks the global threshold that maximizes between-class
// variance over the 256-bin grayscale histogram.
func otsuThreshold(img *image.Gray) uint8 {
	var hist [256]int
	total := 0
	bounds := img.Bounds()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			hist[img.GrayAt(x, y).Y]++
			total++
		}
	}
	if total == 0 {
		return 128
	}

	sumAll := 0.0
	for v, count := range hist {
		sumAll += float64(v) * float64(count)
	}

	best := uint8(128)
	bestVariance := -1.0
	sumBelow := 0.0
	countBelow := 0
	for t := 0; t < 256; t++ {
		countBelow += hist[t]
		if countBelow == 0 {
			continue
		}
		countAbove := total - countBelow
		if countAbove == 0 {
			break
		}
		sumBelow += float64(t) * float64(hist[t])
		meanBelow := sumBelow / float64(countBelow)
		meanAbove := (sumAll - sumBelow) / float64(countAbove)
		diff := meanBelow - meanAbove
		variance := float64(countBelow) * float64(countAbove) * diff * diff
		if variance > bestVariance {
			bestVariance = variance
			best = uint8(t)
		}
	}
	return best
}

func binarize(src *image.Gray, threshold uint8) *image.Gray {
	bounds := src.Bounds()
	dst := image.NewGray(bounds)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			if src.GrayAt(x, y).Y > threshold {
				dst.SetGray(x, y, color.Gray{Y: 255})
			} else {
				dst.SetGray(x, y, color.Gray{Y: 0})
			}
		}
	}
	return dst
}
