package vision

import (
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"

	xdraw "golang.org/x/image/draw"
)

const (
	workingWidth  = 400
	workingHeight = 300
)

// LoadImage decodes an image file. Returns nil when the file cannot be
// opened or decoded (HEIC photos land here; they simply score through the
// histogram fallback path of whatever frame they face, or not at all).
func LoadImage(path string) image.Image {
	f, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil
	}
	return img
}

// toWorkingGray scales an image onto the fixed comparison surface. The fixed
// size keeps descriptor geometry comparable between a full-resolution photo
// and a sampled video frame.
func toWorkingGray(src image.Image) *image.Gray {
	dst := image.NewGray(image.Rect(0, 0, workingWidth, workingHeight))
	xdraw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)
	return dst
}

// boxBlur3 smooths the working surface before descriptor sampling so single
// pixel noise does not flip descriptor bits.
func boxBlur3(src *image.Gray) *image.Gray {
	bounds := src.Bounds()
	dst := image.NewGray(bounds)
	w, h := bounds.Dx(), bounds.Dy()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var sum, count int
			for dy := -1; dy <= 1; dy++ {
				for dx := -1; dx <= 1; dx++ {
					nx, ny := x+dx, y+dy
					if nx < 0 || ny < 0 || nx >= w || ny >= h {
						continue
					}
					sum += int(src.GrayAt(nx, ny).Y)
					count++
				}
			}
			dst.Pix[y*dst.Stride+x] = uint8(sum / count)
		}
	}
	return dst
}
