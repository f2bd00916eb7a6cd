// Package buildhash computes the whole-run fingerprint used to skip packing
// when neither the arguments nor any input image changed.
package buildhash

import (
	"errors"
	"fmt"
	"hash/fnv"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"crunch2d/internal/sprite"
)

// Hash is an order-sensitive combination of 64-bit values.
type Hash uint64

// Combine mixes v into h.
func (h *Hash) Combine(v uint64) {
	cur := uint64(*h)
	*h = Hash(cur ^ (v + 0x9e3779b9 + (cur << 6) + (cur >> 2)))
}

// AddString mixes the FNV-1a hash of s into h.
func (h *Hash) AddString(s string) {
	f := fnv.New64a()
	io.WriteString(f, s)
	h.Combine(f.Sum64())
}

// AddFile mixes the FNV-1a hash of the file's contents into h.
func (h *Hash) AddFile(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("hash %s: %w", path, err)
	}
	defer file.Close()

	f := fnv.New64a()
	if _, err := io.Copy(f, file); err != nil {
		return fmt.Errorf("hash %s: %w", path, err)
	}
	h.Combine(f.Sum64())
	return nil
}

// AddInput mixes in every .png file below a directory, in natural order, or
// the file itself when path is not a directory.
func (h *Hash) AddInput(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("hash %s: %w", path, err)
	}
	if !info.IsDir() {
		return h.AddFile(path)
	}
	files, err := sprite.PNGFiles(path)
	if err != nil {
		return err
	}
	for _, file := range files {
		if err := h.AddFile(file); err != nil {
			return err
		}
	}
	return nil
}

// Compute hashes args in order, then every input.
func Compute(args, inputs []string) (Hash, error) {
	var h Hash
	for _, arg := range args {
		h.AddString(arg)
	}
	for _, in := range inputs {
		if err := h.AddInput(in); err != nil {
			return 0, err
		}
	}
	return h, nil
}

func (h Hash) String() string {
	return strconv.FormatUint(uint64(h), 10)
}

// Load reads a hash saved by Save. ok is false when the file does not exist.
func Load(path string) (h Hash, ok bool, err error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("read hash: %w", err)
	}
	v, err := strconv.ParseUint(strings.TrimSpace(string(data)), 10, 64)
	if err != nil {
		return 0, false, fmt.Errorf("parse hash %s: %w", path, err)
	}
	return Hash(v), true, nil
}

// Save writes h to path as decimal text.
func Save(path string, h Hash) error {
	if err := os.WriteFile(path, []byte(h.String()), 0o644); err != nil {
		return fmt.Errorf("write hash: %w", err)
	}
	return nil
}
