package sprite

import (
	"fmt"
	"image"
	"log/slog"

	"github.com/disintegration/imaging"
)

// Options controls how images become sprites.
type Options struct {
	// Trim crops fully transparent borders before packing.
	Trim bool
	// Premultiply multiplies color channels by alpha.
	Premultiply bool
	// AlphaThreshold is the highest alpha value still treated as transparent
	// when trimming.
	AlphaThreshold uint8
}

// Load decodes the image at path and builds a sprite named name.
func Load(path, name string, opts Options) (*Sprite, error) {
	img, err := imaging.Open(path)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	if img.Bounds().Empty() {
		return nil, fmt.Errorf("decode %s: image is empty", path)
	}
	s := FromImage(name, img, opts)
	s.Path = path
	return s, nil
}

// FromImage builds a sprite from an already decoded image.
func FromImage(name string, img image.Image, opts Options) *Sprite {
	src := imaging.Clone(img)
	if opts.Premultiply {
		premultiply(src)
	}
	bounds := src.Bounds()
	trim := bounds
	if opts.Trim {
		trim = Bounds(src, opts.AlphaThreshold)
	}
	pix := src
	if trim != bounds {
		pix = imaging.Crop(src, trim)
	}
	return &Sprite{
		Name:      name,
		RawWidth:  bounds.Dx(),
		RawHeight: bounds.Dy(),
		Trim:      trim,
		Image:     pix,
		Hash:      contentHash(pix),
	}
}

// LoadAll loads every source in order.
func LoadAll(sources []Source, opts Options, logger *slog.Logger) ([]*Sprite, error) {
	sprites := make([]*Sprite, 0, len(sources))
	for _, src := range sources {
		s, err := Load(src.Path, src.Name, opts)
		if err != nil {
			return nil, err
		}
		logger.Debug("sprite loaded",
			slog.String("name", s.Name),
			slog.String("path", s.Path),
			slog.Int("width", s.RawWidth),
			slog.Int("height", s.RawHeight),
			slog.Bool("trimmed", s.Trimmed()),
		)
		sprites = append(sprites, s)
	}
	return sprites, nil
}

func premultiply(img *image.NRGBA) {
	for i := 0; i+3 < len(img.Pix); i += 4 {
		a := uint32(img.Pix[i+3])
		if a == 0xff {
			continue
		}
		img.Pix[i+0] = uint8(uint32(img.Pix[i+0]) * a / 0xff)
		img.Pix[i+1] = uint8(uint32(img.Pix[i+1]) * a / 0xff)
		img.Pix[i+2] = uint8(uint32(img.Pix[i+2]) * a / 0xff)
	}
}
