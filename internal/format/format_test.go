package format

import (
	"bytes"
	"encoding/xml"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crunch2d/internal/atlas"
)

func sampleSheets() []atlas.Sheet {
	return []atlas.Sheet{{
		Name: "atlas0", Width: 16, Height: 16,
		Entries: []atlas.Entry{
			{Name: "a", X: 1, Y: 2, Width: 3, Height: 4, FrameX: -1, FrameY: 0, FrameWidth: 5, FrameHeight: 6, Rotated: true},
			{Name: "b/c", X: 8, Y: 0, Width: 2, Height: 2, FrameWidth: 2, FrameHeight: 2},
		},
	}}
}

func TestWriteBinary(t *testing.T) {
	sheets := sampleSheets()
	sheets[0].Entries = sheets[0].Entries[:1]

	var buf bytes.Buffer
	require.NoError(t, WriteBinary(&buf, sheets, Options{Trim: true, Rotate: true}))
	want := []byte{
		0x01, 0x00,
		'a', 't', 'l', 'a', 's', '0', 0x00,
		0x01, 0x00,
		'a', 0x00,
		0x01, 0x00, 0x02, 0x00, 0x03, 0x00, 0x04, 0x00,
		0xff, 0xff, 0x00, 0x00, 0x05, 0x00, 0x06, 0x00,
		0x01,
	}
	assert.Equal(t, want, buf.Bytes())

	buf.Reset()
	require.NoError(t, WriteBinary(&buf, sheets, Options{}))
	assert.Equal(t, append(want[:13:13], 0x01, 0x00, 0x02, 0x00, 0x03, 0x00, 0x04, 0x00), buf.Bytes())
}

func TestWriteBinaryOverflow(t *testing.T) {
	sheets := sampleSheets()
	sheets[0].Entries[1].X = 40000

	err := WriteBinary(&bytes.Buffer{}, sheets, Options{})
	assert.True(t, errors.Is(err, ErrOverflow))
	assert.ErrorContains(t, err, "b/c x = 40000")
}

func TestWriteXML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteXML(&buf, sampleSheets(), Options{Trim: true, Rotate: true}))
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, "<atlas>"))
	assert.Contains(t, out, `<tex n="atlas0">`)
	assert.Contains(t, out, `<img n="a" x="1" y="2" w="3" h="4" fx="-1" fy="0" fw="5" fh="6" r="true">`)
	assert.Contains(t, out, `<img n="b/c" x="8" y="0" w="2" h="2" fx="0" fy="0" fw="2" fh="2" r="false">`)

	var doc Document
	require.NoError(t, xml.Unmarshal(buf.Bytes(), &doc))
	require.Len(t, doc.Textures, 1)
	assert.Len(t, doc.Textures[0].Images, 2)
}

func TestWriteXMLWithoutOptionalFields(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteXML(&buf, sampleSheets(), Options{}))
	assert.Contains(t, buf.String(), `<img n="a" x="1" y="2" w="3" h="4">`)
	assert.NotContains(t, buf.String(), "fx=")
	assert.NotContains(t, buf.String(), "r=")
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, sampleSheets(), Options{Trim: true}))
	assert.Contains(t, buf.String(), `"textures"`)
	assert.NotContains(t, buf.String(), `"r"`)

	doc, err := ReadJSON(&buf)
	require.NoError(t, err)
	require.Len(t, doc.Textures, 1)
	tex := doc.Textures[0]
	assert.Equal(t, "atlas0", tex.Name)
	require.Len(t, tex.Images, 2)

	img := tex.Images[0]
	assert.Equal(t, "a", img.Name)
	assert.Equal(t, []int{1, 2, 3, 4}, []int{img.X, img.Y, img.Width, img.Height})
	x, y, w, h := img.Frame()
	assert.Equal(t, []int{-1, 0, 5, 6}, []int{x, y, w, h})
	assert.False(t, img.IsRotated())
}

func TestImageFrameDefaultsToPackedSize(t *testing.T) {
	img := Image{Width: 7, Height: 3}
	x, y, w, h := img.Frame()
	assert.Equal(t, []int{0, 0, 7, 3}, []int{x, y, w, h})
}

func TestSaveAndLoadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "atlas.json")
	require.NoError(t, Save(path, WriteJSON, sampleSheets(), Options{Rotate: true}))

	doc, err := LoadJSON(path)
	require.NoError(t, err)
	assert.True(t, doc.Textures[0].Images[0].IsRotated())
	assert.Nil(t, doc.Textures[0].Images[0].FrameX)

	_, err = LoadJSON(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestSaveReportsPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "atlas.bin")
	err := Save(path, WriteBinary, sampleSheets(), Options{})
	assert.ErrorContains(t, err, path)
}
