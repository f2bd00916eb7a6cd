package format

import (
	"encoding/json"
	"encoding/xml"
	"fmt"
	"io"
	"os"

	"crunch2d/internal/atlas"
)

// WriteXML writes the XML layout:
//
//	<atlas><tex n="..."><img n="..." x y w h [fx fy fw fh] [r]/></tex></atlas>
func WriteXML(w io.Writer, sheets []atlas.Sheet, opts Options) error {
	enc := xml.NewEncoder(w)
	enc.Indent("", "\t")
	if err := enc.Encode(NewDocument(sheets, opts)); err != nil {
		return err
	}
	if err := enc.Close(); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}

// WriteJSON writes the JSON layout:
//
//	{"textures":[{"name":"...","images":[{"n","x","y","w","h",["fx","fy","fw","fh"],["r"]}]}]}
func WriteJSON(w io.Writer, sheets []atlas.Sheet, opts Options) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "\t")
	return enc.Encode(NewDocument(sheets, opts))
}

// ReadJSON decodes a document written by WriteJSON.
func ReadJSON(r io.Reader) (Document, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return Document{}, err
	}
	return doc, nil
}

// LoadJSON reads the JSON document at path.
func LoadJSON(path string) (Document, error) {
	file, err := os.Open(path)
	if err != nil {
		return Document{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()

	doc, err := ReadJSON(file)
	if err != nil {
		return Document{}, fmt.Errorf("parse %s: %w", path, err)
	}
	return doc, nil
}
