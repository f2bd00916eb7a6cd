package atlas

import (
	"errors"
	"fmt"
	"log/slog"
	"math/bits"

	"crunch2d/internal/sprite"
	"crunch2d/rectpack"
)

// Options configures the packing loop. It is read-only for the duration of
// a run.
type Options struct {
	// MaxSize is the width and height limit of every atlas.
	MaxSize    int
	Padding    int
	Rotate     bool
	PowerOfTwo bool
	Heuristic  rectpack.Heuristic
}

// UnplaceableError reports a sprite that does not fit an empty atlas.
type UnplaceableError struct {
	Name    string
	Width   int
	Height  int
	MaxSize int
}

func (e *UnplaceableError) Error() string {
	return fmt.Sprintf("packing failed, could not fit sprite %q (%dx%d) into a %dx%d atlas",
		e.Name, e.Width, e.Height, e.MaxSize, e.MaxSize)
}

// Pack places every sprite, opening a new atlas whenever the current one is
// full. Sprites are packed largest area first; equal areas keep input order.
// It fails with *UnplaceableError when a sprite cannot fit even an empty atlas.
func Pack(sprites []*sprite.Sprite, opts Options, logger *slog.Logger) ([]*Atlas, error) {
	if len(sprites) == 0 {
		return nil, errors.New("no sprites to pack")
	}
	fitter, err := newPacker(opts)
	if err != nil {
		return nil, err
	}

	remaining := make([]rectpack.Size, len(sprites))
	for i, s := range sprites {
		remaining[i] = rectpack.NewSizeID(i, s.PackWidth(), s.PackHeight())
	}
	rectpack.SortSizes(remaining, rectpack.SortArea)
	for _, size := range remaining {
		if !fitter.Fits(size) {
			return nil, unplaceable(sprites[size.ID], opts)
		}
	}

	var atlases []*Atlas
	for len(remaining) > 0 {
		if len(atlases) >= len(sprites) {
			return nil, fmt.Errorf("packing did not finish after %d atlases", len(atlases))
		}
		logger.Debug("packing atlas", slog.Int("atlas", len(atlases)), slog.Int("pending", len(remaining)))
		p, err := newPacker(opts)
		if err != nil {
			return nil, err
		}
		remaining = p.Pack(remaining...)
		if len(p.Rects()) == 0 {
			return nil, unplaceable(sprites[remaining[0].ID], opts)
		}
		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("atlas %d: %w", len(atlases), err)
		}
		a := newAtlas(len(atlases), p, sprites, opts)
		if err := a.Validate(opts.Padding); err != nil {
			return nil, err
		}
		logger.Debug("atlas packed",
			slog.Int("atlas", a.Index),
			slog.Int("sprites", len(a.Placements)),
			slog.Int("width", a.Width),
			slog.Int("height", a.Height),
			slog.Float64("used", p.Used(true)),
		)
		atlases = append(atlases, a)
	}
	return atlases, nil
}

func newPacker(opts Options) (*rectpack.Packer, error) {
	p, err := rectpack.NewPacker(opts.MaxSize, opts.MaxSize, opts.Heuristic)
	if err != nil {
		return nil, err
	}
	p.SetPadding(opts.Padding)
	p.AllowRotate(opts.Rotate)
	return p, nil
}

func newAtlas(index int, p *rectpack.Packer, sprites []*sprite.Sprite, opts Options) *Atlas {
	size := p.MinSize()
	if opts.PowerOfTwo {
		size.Width = min(nextPowerOfTwo(size.Width), opts.MaxSize)
		size.Height = min(nextPowerOfTwo(size.Height), opts.MaxSize)
	}
	a := &Atlas{Index: index, Width: size.Width, Height: size.Height}
	for _, r := range p.Rects() {
		a.Placements = append(a.Placements, Placement{
			Atlas:   index,
			X:       r.X,
			Y:       r.Y,
			Rotated: r.Rotated,
			Sprite:  sprites[r.ID],
		})
	}
	return a
}

func unplaceable(s *sprite.Sprite, opts Options) error {
	return &UnplaceableError{Name: s.Name, Width: s.PackWidth(), Height: s.PackHeight(), MaxSize: opts.MaxSize}
}

func nextPowerOfTwo(n int) int {
	if n <= 1 {
		return 1
	}
	return 1 << bits.Len(uint(n-1))
}
