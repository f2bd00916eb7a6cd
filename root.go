package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"crunch2d/internal/config"
	"crunch2d/internal/logging"
)

// packFlags mirrors the command-line options. Only flags set on the command
// line override the configuration file.
type packFlags struct {
	configPath string
	preset     bool

	xml    bool
	binary bool
	json   bool

	premultiply bool
	trim        bool
	verbose     bool
	force       bool
	unique      bool
	rotate      bool

	size       int
	padding    int
	heuristic  string
	split      string
	powerOfTwo bool
	threshold  int
	logFormat  string
}

// newRootCommand builds the CLI. argv is the full argument list; it is parsed
// by cobra and also feeds the rebuild hash.
func newRootCommand(argv []string) *cobra.Command {
	var flags packFlags
	defaults := config.Default()

	rootCmd := &cobra.Command{
		Use:   "crunch2d OUTPUT INPUT[,INPUT...]",
		Short: "Pack PNG sprites into texture atlases",
		Long: `Pack PNG sprites into texture atlases.

OUTPUT is the atlas path without extension; atlases are written as
OUTPUT0.png, OUTPUT1.png and so on. INPUT is a comma-separated list of
directories (searched recursively for .png files) or single PNG files.
Both may be omitted when the configuration file sets them.`,
		Args:          cobra.MaximumNArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.resolve(cmd, args)
			if err != nil {
				return err
			}
			logger, err := logging.New(logging.Options{
				Level:  cfg.LogLevel(),
				Format: cfg.Logging.Format,
				Writer: cmd.ErrOrStderr(),
			})
			if err != nil {
				return err
			}
			return runPack(cfg, argv, logging.NewComponentLogger(logger, "pack"), cmd.OutOrStdout())
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.BoolVarP(&flags.verbose, "verbose", "v", false, "print progress and an atlas summary")
	pf.StringVar(&flags.logFormat, "log-format", defaults.Logging.Format, "log output format (console or json)")

	f := rootCmd.Flags()
	f.StringVar(&flags.configPath, "config", "", "TOML configuration file")
	f.BoolVarP(&flags.preset, "default", "d", false, "use the default preset (--xml --premultiply --trim --unique)")
	f.BoolVarP(&flags.xml, "xml", "x", false, "save the atlas data as a .xml file")
	f.BoolVarP(&flags.binary, "binary", "b", false, "save the atlas data as a .bin file")
	f.BoolVarP(&flags.json, "json", "j", false, "save the atlas data as a .json file")
	f.BoolVarP(&flags.premultiply, "premultiply", "p", false, "premultiply the pixels of the sprites by their alpha channel")
	f.BoolVarP(&flags.trim, "trim", "t", false, "trim excess transparency off the sprites")
	f.BoolVarP(&flags.force, "force", "f", false, "ignore the hash and repack")
	f.BoolVarP(&flags.unique, "unique", "u", false, "remove duplicate sprites from the atlas")
	f.BoolVarP(&flags.rotate, "rotate", "r", false, "allow rotating sprites 90 degrees clockwise when packing")
	f.IntVarP(&flags.size, "size", "s", defaults.Size, "max atlas size (4096, 2048, 1024, 512, 256, 128 or 64)")
	f.IntVar(&flags.padding, "pad", defaults.Padding, "padding between sprites (0 to 16)")
	f.StringVar(&flags.heuristic, "heuristic", defaults.Heuristic, "free rectangle selection (BestAreaFit, BestShortSideFit, BestLongSideFit, FirstFit)")
	f.StringVar(&flags.split, "split", defaults.Split, "guillotine split rule (ShorterLeftoverAxis, LongerLeftoverAxis, MinimizeArea, MaximizeArea, ShorterAxis, LongerAxis)")
	f.BoolVar(&flags.powerOfTwo, "pot", false, "round atlas sizes up to a power of two")
	f.IntVar(&flags.threshold, "threshold", defaults.AlphaThreshold, "alpha at or below which a pixel counts as transparent when trimming")

	rootCmd.AddCommand(newUnpackCommand(&flags))
	rootCmd.AddCommand(newConfigCommand())
	rootCmd.SetArgs(argv)
	return rootCmd
}

// resolve loads the configuration file, then applies the preset, the
// positional arguments and every flag given on the command line.
func (f *packFlags) resolve(cmd *cobra.Command, args []string) (config.Config, error) {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return config.Config{}, err
	}
	if f.preset {
		cfg.ApplyDefaultPreset()
	}
	if len(args) > 0 {
		cfg.Output = args[0]
	}
	if len(args) > 1 {
		cfg.Inputs = strings.Split(args[1], ",")
	}

	fs := cmd.Flags()
	setBool := func(name string, dst *bool, v bool) {
		if fs.Changed(name) {
			*dst = v
		}
	}
	setBool("xml", &cfg.XML, f.xml)
	setBool("binary", &cfg.Binary, f.binary)
	setBool("json", &cfg.JSON, f.json)
	setBool("premultiply", &cfg.Premultiply, f.premultiply)
	setBool("trim", &cfg.Trim, f.trim)
	setBool("verbose", &cfg.Verbose, f.verbose)
	setBool("force", &cfg.Force, f.force)
	setBool("unique", &cfg.Unique, f.unique)
	setBool("rotate", &cfg.Rotate, f.rotate)
	setBool("pot", &cfg.PowerOfTwo, f.powerOfTwo)
	if fs.Changed("size") {
		cfg.Size = f.size
	}
	if fs.Changed("pad") {
		cfg.Padding = f.padding
	}
	if fs.Changed("threshold") {
		cfg.AlphaThreshold = f.threshold
	}
	if fs.Changed("heuristic") {
		cfg.Heuristic = f.heuristic
	}
	if fs.Changed("split") {
		cfg.Split = f.split
	}
	if fs.Changed("log-format") {
		cfg.Logging.Format = f.logFormat
	}

	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return config.Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}
