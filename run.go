package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"github.com/gofrs/flock"

	"crunch2d/internal/atlas"
	"crunch2d/internal/buildhash"
	"crunch2d/internal/config"
	"crunch2d/internal/format"
	"crunch2d/internal/sprite"
)

// dataFile is one optional data file layout.
type dataFile struct {
	ext     string
	enabled func(config.Config) bool
	write   format.WriteFunc
}

var dataFiles = []dataFile{
	{".bin", func(c config.Config) bool { return c.Binary }, format.WriteBinary},
	{".xml", func(c config.Config) bool { return c.XML }, format.WriteXML},
	{".json", func(c config.Config) bool { return c.JSON }, format.WriteJSON},
}

// runPack performs one packing run. It returns without touching any file when
// the rebuild hash matches the previous run.
func runPack(cfg config.Config, argv []string, logger *slog.Logger, out io.Writer) error {
	outputName := cfg.OutputName()
	if err := os.MkdirAll(filepath.Dir(outputName), 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	lp, err := lockPath(outputName)
	if err != nil {
		return err
	}
	lock := flock.New(lp)
	ok, err := lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return fmt.Errorf("another run is already writing %s", outputName)
	}
	defer func() { _ = lock.Unlock() }()

	hash, err := buildhash.Compute(argv, cfg.Inputs)
	if err != nil {
		return err
	}
	// options read from a config file never show up in argv
	settings, err := cfg.Fingerprint()
	if err != nil {
		return err
	}
	hash.AddString(settings)
	hashPath := outputName + ".hash"
	if !cfg.Force {
		previous, found, err := buildhash.Load(hashPath)
		switch {
		case err != nil:
			logger.Warn("ignoring unreadable hash", slog.String("path", hashPath), slog.String("error", err.Error()))
		case found && previous == hash:
			logger.Info("atlas is unchanged", slog.String("output", outputName))
			return nil
		}
	}

	if err := removeStaleOutputs(outputName); err != nil {
		return err
	}

	sources, err := sprite.Discover(cfg.Inputs)
	if err != nil {
		return err
	}
	logger.Info("loading sprites", slog.Int("count", len(sources)))
	sprites, err := sprite.LoadAll(sources, sprite.Options{
		Trim:           cfg.Trim,
		Premultiply:    cfg.Premultiply,
		AlphaThreshold: uint8(cfg.AlphaThreshold),
	}, logger)
	if err != nil {
		return err
	}

	unique := sprites
	var dups *sprite.Duplicates
	if cfg.Unique {
		unique, dups = sprite.Dedup(sprites)
		if dups.Len() > 0 {
			logger.Info("removed duplicates", slog.Int("duplicates", dups.Len()))
		}
	}

	heuristic, err := cfg.PackHeuristic()
	if err != nil {
		return err
	}
	atlases, err := atlas.Pack(unique, atlas.Options{
		MaxSize:    cfg.Size,
		Padding:    cfg.Padding,
		Rotate:     cfg.Rotate,
		PowerOfTwo: cfg.PowerOfTwo,
		Heuristic:  heuristic,
	}, logger)
	if err != nil {
		return err
	}

	for _, a := range atlases {
		path := atlasPath(outputName, a.Index)
		if err := a.Save(path); err != nil {
			return err
		}
		logger.Info("atlas written",
			slog.String("path", path),
			slog.Int("sprites", len(a.Placements)),
			slog.Int("width", a.Width),
			slog.Int("height", a.Height),
		)
	}

	sheets, err := atlas.Sheets(atlases, dups, cfg.BaseName())
	if err != nil {
		return err
	}
	opts := format.Options{Trim: cfg.Trim, Rotate: cfg.Rotate}
	for _, df := range dataFiles {
		if !df.enabled(cfg) {
			continue
		}
		path := outputName + df.ext
		if err := format.Save(path, df.write, sheets, opts); err != nil {
			return err
		}
		logger.Debug("data file written", slog.String("path", path))
	}

	if err := buildhash.Save(hashPath, hash); err != nil {
		return err
	}
	if cfg.Verbose {
		fmt.Fprintln(out, renderSummary(atlases))
	}
	return nil
}

// removeStaleOutputs deletes every file a previous run may have written for
// outputName. Atlas images are removed from index 0 up to the first missing
// one, so another output whose name extends this one keeps its images.
func removeStaleOutputs(outputName string) error {
	stale := []string{outputName + ".hash"}
	for _, df := range dataFiles {
		stale = append(stale, outputName+df.ext)
	}
	for _, path := range stale {
		if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("remove stale output: %w", err)
		}
	}

	for i := 0; ; i++ {
		err := os.Remove(atlasPath(outputName, i))
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("remove stale output: %w", err)
		}
	}
}

func atlasPath(outputName string, index int) string {
	return outputName + strconv.Itoa(index) + ".png"
}

// lockPath returns the run lock for outputName. It lives in the temp
// directory so the output directory only ever holds outputs.
func lockPath(outputName string) (string, error) {
	abs, err := filepath.Abs(outputName)
	if err != nil {
		return "", fmt.Errorf("resolve output path: %w", err)
	}
	var h buildhash.Hash
	h.AddString(abs)
	return filepath.Join(os.TempDir(), "crunch2d-"+h.String()+".lock"), nil
}
