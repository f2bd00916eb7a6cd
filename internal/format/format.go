// Package format writes atlas data files in the binary, XML and JSON layouts
// and reads the JSON layout back for unpacking.
package format

import (
	"bufio"
	"encoding/xml"
	"fmt"
	"io"
	"os"

	"crunch2d/internal/atlas"
)

// Options selects the optional per-image fields.
type Options struct {
	// Trim adds the frame fields fx, fy, fw and fh.
	Trim bool
	// Rotate adds the rotation flag.
	Rotate bool
}

// Document is the tree shared by the XML and JSON layouts.
type Document struct {
	XMLName  xml.Name  `xml:"atlas" json:"-"`
	Textures []Texture `xml:"tex" json:"textures"`
}

// Texture describes one atlas image.
type Texture struct {
	Name   string  `xml:"n,attr" json:"name"`
	Images []Image `xml:"img" json:"images"`
}

// Image describes one sprite inside a texture.
type Image struct {
	Name   string `xml:"n,attr" json:"n"`
	X      int    `xml:"x,attr" json:"x"`
	Y      int    `xml:"y,attr" json:"y"`
	Width  int    `xml:"w,attr" json:"w"`
	Height int    `xml:"h,attr" json:"h"`

	FrameX      *int `xml:"fx,attr,omitempty" json:"fx,omitempty"`
	FrameY      *int `xml:"fy,attr,omitempty" json:"fy,omitempty"`
	FrameWidth  *int `xml:"fw,attr,omitempty" json:"fw,omitempty"`
	FrameHeight *int `xml:"fh,attr,omitempty" json:"fh,omitempty"`

	Rotated *bool `xml:"r,attr,omitempty" json:"r,omitempty"`
}

// Frame returns the frame rectangle, falling back to the packed size when
// the document carries no trim data.
func (img Image) Frame() (x, y, w, h int) {
	if img.FrameX == nil || img.FrameY == nil || img.FrameWidth == nil || img.FrameHeight == nil {
		return 0, 0, img.Width, img.Height
	}
	return *img.FrameX, *img.FrameY, *img.FrameWidth, *img.FrameHeight
}

// IsRotated reports whether the image is stored rotated.
func (img Image) IsRotated() bool {
	return img.Rotated != nil && *img.Rotated
}

// NewDocument converts sheets to the shared XML/JSON tree.
func NewDocument(sheets []atlas.Sheet, opts Options) Document {
	doc := Document{Textures: make([]Texture, len(sheets))}
	for i, sheet := range sheets {
		tex := Texture{Name: sheet.Name, Images: make([]Image, len(sheet.Entries))}
		for j, e := range sheet.Entries {
			img := Image{Name: e.Name, X: e.X, Y: e.Y, Width: e.Width, Height: e.Height}
			if opts.Trim {
				img.FrameX = ptr(e.FrameX)
				img.FrameY = ptr(e.FrameY)
				img.FrameWidth = ptr(e.FrameWidth)
				img.FrameHeight = ptr(e.FrameHeight)
			}
			if opts.Rotate {
				img.Rotated = ptr(e.Rotated)
			}
			tex.Images[j] = img
		}
		doc.Textures[i] = tex
	}
	return doc
}

// WriteFunc writes sheets to w in one layout.
type WriteFunc func(w io.Writer, sheets []atlas.Sheet, opts Options) error

// Save creates path and writes sheets to it with write.
func Save(path string, write WriteFunc, sheets []atlas.Sheet, opts Options) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	buf := bufio.NewWriter(file)
	if err := write(buf, sheets, opts); err != nil {
		file.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := buf.Flush(); err != nil {
		file.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}

func ptr[T any](v T) *T {
	return &v
}
