package format

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"

	"crunch2d/internal/atlas"
)

// ErrOverflow is returned when a value does not fit the binary layout's
// 16-bit fields.
var ErrOverflow = errors.New("value does not fit int16")

// WriteBinary writes the little-endian binary layout:
//
//	int16 texture count
//	per texture: name, int16 image count
//	per image:   name, int16 x, y, w, h
//	             [int16 fx, fy, fw, fh]  with Trim
//	             [byte rotated]          with Rotate
//
// Strings are NUL-terminated.
func WriteBinary(w io.Writer, sheets []atlas.Sheet, opts Options) error {
	bw := &binWriter{w: w}
	bw.short("texture count", len(sheets))
	for _, sheet := range sheets {
		bw.str(sheet.Name)
		bw.short(sheet.Name+" image count", len(sheet.Entries))
		for _, e := range sheet.Entries {
			bw.str(e.Name)
			bw.short(e.Name+" x", e.X)
			bw.short(e.Name+" y", e.Y)
			bw.short(e.Name+" w", e.Width)
			bw.short(e.Name+" h", e.Height)
			if opts.Trim {
				bw.short(e.Name+" fx", e.FrameX)
				bw.short(e.Name+" fy", e.FrameY)
				bw.short(e.Name+" fw", e.FrameWidth)
				bw.short(e.Name+" fh", e.FrameHeight)
			}
			if opts.Rotate {
				var r byte
				if e.Rotated {
					r = 1
				}
				bw.write([]byte{r})
			}
		}
	}
	return bw.err
}

// binWriter remembers the first error so the layout code reads straight.
type binWriter struct {
	w   io.Writer
	err error
	buf [2]byte
}

func (b *binWriter) write(p []byte) {
	if b.err != nil {
		return
	}
	_, b.err = b.w.Write(p)
}

func (b *binWriter) short(field string, v int) {
	if b.err != nil {
		return
	}
	if v < math.MinInt16 || v > math.MaxInt16 {
		b.err = fmt.Errorf("%s = %d: %w", field, v, ErrOverflow)
		return
	}
	binary.LittleEndian.PutUint16(b.buf[:], uint16(int16(v)))
	b.write(b.buf[:])
}

func (b *binWriter) str(s string) {
	b.write([]byte(s))
	b.write([]byte{0})
}
