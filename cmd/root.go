package cmd

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/rileylov/bottomsheet/internal/config"
	"github.com/rileylov/bottomsheet/internal/logger"
)

var version = "dev"

// SetVersion sets the version string
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

// options holds the command line overrides for the config file.
type options struct {
	configPath string
	title      string
	logFile    string
	noDrag     bool
	noClose    bool
	debug      bool
}

var rootCmd = newRootCmd(&options{})

// newRootCmd binds the command line flags to opts.
func newRootCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bottomsheet [file]",
		Short: "Pick an item from a draggable bottom sheet",
		Long: `bottomsheet shows a list of items in a bottom sheet that can be dragged
with the mouse to any height. Releasing it snaps to closed, its default height
or fullscreen. Each non-blank line of file becomes an item.`,
		Args:          cobra.MaximumNArgs(1),
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Flags(), opts, args)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.configPath, "config", "c", "", "config file (TOML)")
	f.StringVarP(&opts.title, "title", "t", "", "sheet title")
	f.StringVar(&opts.logFile, "log-file", "", "write logs to this file")
	f.BoolVar(&opts.noDrag, "no-drag", false, "disable dragging, always show the sheet fullscreen")
	f.BoolVar(&opts.noClose, "no-close", false, "hide the close button")
	f.BoolVar(&opts.debug, "debug", false, "log at debug level")
	return cmd
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// applyFlags overrides cfg with every flag set on the command line.
func applyFlags(flags *pflag.FlagSet, opts *options, cfg *config.Config) {
	if flags.Changed("title") {
		cfg.Title = opts.title
	}
	if flags.Changed("log-file") {
		cfg.LogFile = opts.logFile
	}
	if flags.Changed("no-drag") {
		drag := !opts.noDrag
		cfg.Drag = &drag
	}
	if flags.Changed("no-close") {
		closeEnabled := !opts.noClose
		cfg.CloseEnabled = &closeEnabled
	}
	if flags.Changed("debug") {
		cfg.Debug = opts.debug
	}
}

func loadItems(args []string) ([]string, error) {
	if len(args) == 0 {
		return defaultItems, nil
	}
	f, err := os.Open(args[0])
	if err != nil {
		return nil, err
	}
	defer f.Close()

	items, err := readItems(f)
	if err != nil {
		return nil, fmt.Errorf("read items: %w", err)
	}
	return items, nil
}

func run(flags *pflag.FlagSet, opts *options, args []string) error {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}
	applyFlags(flags, opts, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	if cfg.LogFile != "" {
		if err := logger.Init(cfg.LogFile); err != nil {
			return err
		}
		defer logger.Close()
	}
	logger.SetDebug(cfg.Debug)
	log := logger.Get()

	items, err := loadItems(args)
	if err != nil {
		return err
	}
	log.Info("starting", "version", version, "items", len(items), "drag", cfg.DragEnabled())

	// Initialize a global zone manager, so we don't have to pass around the manager
	// throughout components.
	zone.NewGlobal()

	a := newApp(cfg, items, log)
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running program: %w", err)
	}
	if a.err != nil {
		return a.err
	}
	return nil
}
