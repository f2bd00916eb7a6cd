package atlas

import (
	"fmt"
	"strconv"

	"crunch2d/internal/sprite"
)

// Entry is one named rectangle in a data file.
type Entry struct {
	Name string
	// X, Y, Width and Height give the packed rectangle. Width and Height are
	// the sprite's unrotated size.
	X, Y, Width, Height int
	// The frame is the untrimmed image relative to the packed pixels:
	// FrameX/FrameY are the negated trim offset, FrameWidth/FrameHeight the
	// original size.
	FrameX, FrameY, FrameWidth, FrameHeight int
	Rotated                                 bool
}

// Sheet is the data-file view of one atlas.
type Sheet struct {
	Name   string
	Width  int
	Height int
	// Entries lists packed sprites in placement order, followed by the
	// duplicates that share their rectangles.
	Entries []Entry
}

// Sheets builds the data-file view of atlases. Each duplicate gets its own
// entry carrying the rectangle and rotation of its representative. Sheet
// names are baseName followed by the atlas index.
func Sheets(atlases []*Atlas, dups *sprite.Duplicates, baseName string) ([]Sheet, error) {
	sheets := make([]Sheet, len(atlases))
	placed := make(map[string]Placement)
	for i, a := range atlases {
		sheets[i] = Sheet{Name: baseName + strconv.Itoa(a.Index), Width: a.Width, Height: a.Height}
		for _, p := range a.Placements {
			placed[p.Sprite.Name] = p
			sheets[i].Entries = append(sheets[i].Entries, newEntry(p.Sprite, p))
		}
	}
	for _, alias := range dups.Aliases() {
		repName, _ := dups.Representative(alias.Name)
		p, ok := placed[repName]
		if !ok {
			return nil, fmt.Errorf("duplicate %q: representative %q was not packed", alias.Name, repName)
		}
		sheets[p.Atlas].Entries = append(sheets[p.Atlas].Entries, newEntry(alias, p))
	}
	return sheets, nil
}

func newEntry(s *sprite.Sprite, p Placement) Entry {
	return Entry{
		Name:        s.Name,
		X:           p.X,
		Y:           p.Y,
		Width:       s.PackWidth(),
		Height:      s.PackHeight(),
		FrameX:      -s.Trim.Min.X,
		FrameY:      -s.Trim.Min.Y,
		FrameWidth:  s.RawWidth,
		FrameHeight: s.RawHeight,
		Rotated:     p.Rotated,
	}
}
