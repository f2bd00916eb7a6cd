// Package atlas runs the multi-atlas packing loop over loaded sprites and
// renders each resulting atlas image.
package atlas

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/disintegration/imaging"

	"crunch2d/internal/sprite"
)

// Placement records where one sprite landed.
type Placement struct {
	// Atlas is the index of the atlas holding the sprite.
	Atlas int
	// X and Y are the top-left corner inside the atlas.
	X, Y int
	// Rotated is set when the sprite is stored turned 90 degrees clockwise.
	Rotated bool
	Sprite  *sprite.Sprite
}

// Width returns the width the sprite occupies in the atlas.
func (p Placement) Width() int {
	if p.Rotated {
		return p.Sprite.PackHeight()
	}
	return p.Sprite.PackWidth()
}

// Height returns the height the sprite occupies in the atlas.
func (p Placement) Height() int {
	if p.Rotated {
		return p.Sprite.PackWidth()
	}
	return p.Sprite.PackHeight()
}

// Rect returns the occupied area in atlas coordinates.
func (p Placement) Rect() image.Rectangle {
	return image.Rect(p.X, p.Y, p.X+p.Width(), p.Y+p.Height())
}

// Atlas is one output image and the sprites placed on it.
type Atlas struct {
	Index      int
	Width      int
	Height     int
	Placements []Placement
}

// Validate checks that every placement lies inside the atlas and that no two
// placements overlap once grown by padding on their right and bottom edges.
func (a *Atlas) Validate(padding int) error {
	bounds := image.Rect(0, 0, a.Width, a.Height)
	for i, p := range a.Placements {
		r := p.Rect()
		if !r.In(bounds) {
			return fmt.Errorf("atlas %d: sprite %q at %v lies outside %v", a.Index, p.Sprite.Name, r, bounds)
		}
		padded := pad(r, padding)
		for _, q := range a.Placements[i+1:] {
			if padded.Overlaps(pad(q.Rect(), padding)) {
				return fmt.Errorf("atlas %d: sprites %q and %q overlap", a.Index, p.Sprite.Name, q.Sprite.Name)
			}
		}
	}
	return nil
}

// Used returns the fraction of the atlas area covered by sprites.
func (a *Atlas) Used() float64 {
	if a.Width == 0 || a.Height == 0 {
		return 0
	}
	area := 0
	for _, p := range a.Placements {
		area += p.Sprite.Area()
	}
	return float64(area) / float64(a.Width*a.Height)
}

// Render composites every placed sprite onto a transparent canvas.
func (a *Atlas) Render() *image.NRGBA {
	dst := imaging.New(a.Width, a.Height, color.NRGBA{0, 0, 0, 0})
	for _, p := range a.Placements {
		var src image.Image = p.Sprite.Image
		if p.Rotated {
			// imaging rotates counter-clockwise
			src = imaging.Rotate270(src)
		}
		draw.Draw(dst, p.Rect(), src, image.Point{}, draw.Src)
	}
	return dst
}

// Save renders the atlas and writes it as a PNG file.
func (a *Atlas) Save(path string) error {
	if err := imaging.Save(a.Render(), path); err != nil {
		return fmt.Errorf("write atlas %s: %w", path, err)
	}
	return nil
}

func pad(r image.Rectangle, padding int) image.Rectangle {
	if padding > 0 {
		r.Max = r.Max.Add(image.Pt(padding, padding))
	}
	return r
}
