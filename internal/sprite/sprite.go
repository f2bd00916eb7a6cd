// Package sprite turns input image files into packable sprites: it decodes
// them, trims transparent borders, hashes the remaining pixels and detects
// duplicates.
package sprite

import (
	"hash/crc64"
	"image"
)

var crcTable = crc64.MakeTable(crc64.ECMA)

// Sprite is one decoded input image together with its trim metadata.
type Sprite struct {
	// Name is the path relative to its input root, without extension and
	// with forward slashes. It keys the sprite in every output file.
	Name string
	// Path is the file the sprite was decoded from.
	Path string

	RawWidth  int
	RawHeight int

	// Trim is the region of the raw image that gets packed, in raw image
	// coordinates. It covers the whole image unless trimming removed a
	// transparent border.
	Trim image.Rectangle

	// Image holds the pixels inside Trim, rebased to the origin.
	Image *image.NRGBA

	// Hash is a CRC-64 of Image's pixels, used for duplicate detection only.
	Hash uint64
}

// PackWidth returns the width submitted to the packer.
func (s *Sprite) PackWidth() int {
	return s.Trim.Dx()
}

// PackHeight returns the height submitted to the packer.
func (s *Sprite) PackHeight() int {
	return s.Trim.Dy()
}

// Area returns PackWidth * PackHeight.
func (s *Sprite) Area() int {
	return s.PackWidth() * s.PackHeight()
}

// Trimmed reports whether Trim is smaller than the raw image.
func (s *Sprite) Trimmed() bool {
	return s.Trim != image.Rect(0, 0, s.RawWidth, s.RawHeight)
}

// SameContent reports whether a and b have identical packed size and pixels.
func SameContent(a, b *Sprite) bool {
	if a.PackWidth() != b.PackWidth() || a.PackHeight() != b.PackHeight() {
		return false
	}
	rowLen := a.PackWidth() * 4
	for y := 0; y < a.PackHeight(); y++ {
		ra := a.Image.Pix[y*a.Image.Stride : y*a.Image.Stride+rowLen]
		rb := b.Image.Pix[y*b.Image.Stride : y*b.Image.Stride+rowLen]
		if string(ra) != string(rb) {
			return false
		}
	}
	return true
}

func contentHash(img *image.NRGBA) uint64 {
	b := img.Bounds()
	rowLen := b.Dx() * 4
	var h uint64
	for y := b.Min.Y; y < b.Max.Y; y++ {
		i := img.PixOffset(b.Min.X, y)
		h = crc64.Update(h, crcTable, img.Pix[i:i+rowLen])
	}
	return h
}
