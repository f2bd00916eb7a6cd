package sprite

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/maruel/natural"
)

// Source is an input file and the sprite name derived from it.
type Source struct {
	Path string
	Name string
}

// Discover expands inputs into sprite sources. A directory contributes every
// .png file below it, in natural order of the relative path, named by that
// path without extension; a file is used as given and named by its stem.
func Discover(inputs []string) ([]Source, error) {
	var sources []Source
	seen := make(map[string]string)
	for _, input := range inputs {
		info, err := os.Stat(input)
		if err != nil {
			return nil, fmt.Errorf("input %s: %w", input, err)
		}
		var found []Source
		if info.IsDir() {
			paths, err := PNGFiles(input)
			if err != nil {
				return nil, err
			}
			for _, path := range paths {
				rel, err := filepath.Rel(input, path)
				if err != nil {
					return nil, fmt.Errorf("input %s: %w", path, err)
				}
				found = append(found, Source{Path: path, Name: nameOf(rel)})
			}
		} else {
			found = append(found, Source{Path: input, Name: nameOf(filepath.Base(input))})
		}
		for _, src := range found {
			if prev, ok := seen[src.Name]; ok {
				return nil, fmt.Errorf("duplicate sprite name %q (%s and %s)", src.Name, prev, src.Path)
			}
			seen[src.Name] = src.Path
			sources = append(sources, src)
		}
	}
	return sources, nil
}

// PNGFiles returns every regular .png file below root in natural order.
func PNGFiles(root string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.Type().IsRegular() && strings.EqualFold(filepath.Ext(path), ".png") {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", root, err)
	}
	sort.Sort(natural.StringSlice(paths))
	return paths, nil
}

func nameOf(rel string) string {
	return filepath.ToSlash(strings.TrimSuffix(rel, filepath.Ext(rel)))
}
