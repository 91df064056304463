package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"intl-extract/internal/config"
	"intl-extract/internal/extract"
	"intl-extract/internal/logging"
	"intl-extract/internal/project"
	"intl-extract/internal/resource"
	"intl-extract/internal/synchronizer"
)

// Execute runs the CLI application.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

type rootFlags struct {
	project string
	verbose bool
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	flags := &rootFlags{}

	rootCmd := &cobra.Command{
		Use:   "intl-extract",
		Short: "Move string literals from Dart sources into ARB resource files",
		Long: `Extracts user-facing string literals into the ARB files of a Flutter project.
Interpolations become named placeholders, every locale file receives the new
key, and the literal is replaced with a lookup on the generated class.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVarP(&flags.project, "project", "p", ".", "Project root holding pubspec.yaml")
	rootCmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(convertCmd())
	rootCmd.AddCommand(addCmd(flags))
	rootCmd.AddCommand(lookupCmd(flags))
	rootCmd.AddCommand(pickCmd(flags))
	rootCmd.AddCommand(extractCmd(flags))

	return rootCmd
}

// app holds what every project command needs.
type app struct {
	cfg       *config.Config
	root      string
	set       resource.Set
	sync      *synchronizer.Synchronizer
	extractor *extract.Extractor
}

// newApp loads configuration, sets up logging and resolves the resource
// file set of the project.
func newApp(flags *rootFlags) (*app, error) {
	cfg := config.Load()

	level := cfg.LogLevel
	if flags.verbose {
		level = zerolog.LevelDebugValue
	}
	logging.Setup(level, cfg.LogFormat, os.Stderr)

	root, err := filepath.Abs(flags.project)
	if err != nil {
		return nil, fmt.Errorf("resolve project root: %w", err)
	}

	settings, err := project.LoadSettings(root)
	if err != nil {
		return nil, fmt.Errorf("load project settings: %w", err)
	}
	settings = settings.Override(project.Settings{
		ResourceDir: cfg.ResourceDir,
		ClassName:   cfg.ClassName,
		MainLocale:  cfg.MainLocale,
		LookupFile:  cfg.LookupFile,
	})

	set, err := project.Resolve(root, settings, nil)
	if err != nil {
		return nil, fmt.Errorf("resolve resource files: %w", err)
	}

	log.Debug().
		Str("root", root).
		Strs("files", set.Paths()).
		Str("class", set.ClassName).
		Msg("Project resolved")

	codec := resource.DefaultCodec
	sync := synchronizer.New(codec, log.Logger)

	return &app{
		cfg:       cfg,
		root:      root,
		set:       set,
		sync:      sync,
		extractor: extract.New(sync, codec, log.Logger),
	}, nil
}

// setupContext creates a cancellable context with signal handling.
func setupContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		select {
		case <-sigCh:
			log.Warn().Msg("Received shutdown signal, cancelling...")
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(sigCh)
	}()

	return ctx, cancel
}
