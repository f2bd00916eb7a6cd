package sprite

import "image"

// Bounds returns the smallest rectangle containing every pixel whose alpha is
// above alphaThreshold. A fully transparent image keeps its full bounds so it
// never turns into an empty placement.
func Bounds(img image.Image, alphaThreshold uint8) image.Rectangle {
	bounds := img.Bounds()
	if bounds.Empty() {
		return image.Rectangle{}
	}
	minX, minY := bounds.Max.X, bounds.Max.Y
	maxX, maxY := bounds.Min.X-1, bounds.Min.Y-1
	mark := func(x, y int) {
		minX = min(minX, x)
		minY = min(minY, y)
		maxX = max(maxX, x)
		maxY = max(maxY, y)
	}
	switch src := img.(type) {
	case *image.NRGBA:
		for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
			i := src.PixOffset(bounds.Min.X, y)
			for x := bounds.Min.X; x < bounds.Max.X; x++ {
				if src.Pix[i+3] > alphaThreshold {
					mark(x, y)
				}
				i += 4
			}
		}
	case *image.RGBA:
		for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
			i := src.PixOffset(bounds.Min.X, y)
			for x := bounds.Min.X; x < bounds.Max.X; x++ {
				if src.Pix[i+3] > alphaThreshold {
					mark(x, y)
				}
				i += 4
			}
		}
	default:
		for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
			for x := bounds.Min.X; x < bounds.Max.X; x++ {
				_, _, _, a := img.At(x, y).RGBA()
				// RGBA() is 16-bit per channel
				if uint8(a>>8) > alphaThreshold {
					mark(x, y)
				}
			}
		}
	}
	if maxX < minX {
		return bounds
	}
	return image.Rect(minX, minY, maxX+1, maxY+1)
}
