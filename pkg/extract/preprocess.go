package extract

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"
)

func luma(c color.Color) int {
	r, g, b, _ := c.RGBA()
	return int((r + g + b) / 3 >> 8)
}

// binarize applies a global threshold to a grayscale image.
func binarize(img image.Image, threshold int) *image.NRGBA {
	bounds := img.Bounds()
	out := image.NewNRGBA(bounds)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			var v uint8 = 255
			if luma(img.At(x, y)) <= threshold {
				v = 0
			}
			out.Set(x, y, color.NRGBA{R: v, G: v, B: v, A: 255})
		}
	}
	return out
}

// adaptiveThreshold binarizes against the local window mean minus bias,
// using a summed-area table so the window lookup is O(1) per pixel.
func adaptiveThreshold(img image.Image, window, bias int) *image.NRGBA {
	if window < 3 {
		window = 3
	}
	if window%2 == 0 {
		window++
	}
	w := img.Bounds().Dx()
	h := img.Bounds().Dy()
	half := window / 2

	sums := make([]int, w*h)
	for y := 0; y < h; y++ {
		rowSum := 0
		for x := 0; x < w; x++ {
			rowSum += luma(img.At(x, y))
			idx := y*w + x
			sums[idx] = rowSum
			if y > 0 {
				sums[idx] += sums[(y-1)*w+x]
			}
		}
	}
	area := func(x0, y0, x1, y1 int) int {
		s := sums[y1*w+x1]
		if x0 > 0 {
			s -= sums[y1*w+x0-1]
		}
		if y0 > 0 {
			s -= sums[(y0-1)*w+x1]
		}
		if x0 > 0 && y0 > 0 {
			s += sums[(y0-1)*w+x0-1]
		}
		return s
	}

	out := imaging.New(w, h, color.NRGBA{255, 255, 255, 255})
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			x0, y0 := max(0, x-half), max(0, y-half)
			x1, y1 := min(w-1, x+half), min(h-1, y+half)
			mean := area(x0, y0, x1, y1) / ((x1 - x0 + 1) * (y1 - y0 + 1))
			th := mean - bias
			if th < 0 {
				th = 0
			}
			if luma(img.At(x, y)) < th {
				out.Set(x, y, color.NRGBA{0, 0, 0, 255})
			}
		}
	}
	return out
}

// dilate grows black regions by a 4-neighborhood, radius times.
func dilate(img *image.NRGBA, radius int) *image.NRGBA {
	w := img.Bounds().Dx()
	h := img.Bounds().Dy()
	cur := img
	for r := 0; r < radius; r++ {
		next := imaging.New(w, h, color.NRGBA{255, 255, 255, 255})
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				for _, d := range [][2]int{{0, 0}, {1, 0}, {-1, 0}, {0, 1}, {0, -1}} {
					x2, y2 := x+d[0], y+d[1]
					if x2 < 0 || y2 < 0 || x2 >= w || y2 >= h {
						continue
					}
					if luma(cur.At(x2, y2)) == 0 {
						next.Set(x, y, color.NRGBA{0, 0, 0, 255})
						break
					}
				}
			}
		}
		cur = next
	}
	return cur
}
