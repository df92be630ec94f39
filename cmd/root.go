package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/itsmostafa/pagegen/internal/config"
	"github.com/itsmostafa/pagegen/internal/version"
)

var configPath string
var markers []string
var verbose bool
var quiet bool

// logger is configured before any command runs.
var logger = zerolog.Nop()

var rootCmd = &cobra.Command{
	Use:   "pagegen",
	Short: "Compile tagged HTML pages into C++ section tables",
	Long: `pagegen splits a page marked up with {SECTION:name}...{/SECTION} and
{LIST:name}...{/LIST} regions into a nested tree of sections and emits it as a
statically initialized C++ table (page.h and page.cc) for an embedded web UI.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := zerolog.InfoLevel
		switch {
		case quiet:
			level = zerolog.Disabled
		case verbose:
			level = zerolog.DebugLevel
		}
		writer := zerolog.ConsoleWriter{Out: cmd.ErrOrStderr(), TimeFormat: time.Kitchen}
		logger = zerolog.New(writer).Level(level).With().Timestamp().Logger()
	},
}

func init() {
	rootCmd.Version = version.Version
	rootCmd.SetVersionTemplate(fmt.Sprintf("pagegen %s\n", version.String()))

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file (default ./pagegen.yaml if present)")
	rootCmd.PersistentFlags().StringSliceVarP(&markers, "markers", "m", nil, "Marker kinds in priority order (default SECTION,LIST)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log debug details")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Disable logging")
}

// loadConfig reads the layered config and applies flags the user set.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if cmd.Flags().Changed("markers") {
		cfg.Markers = markers
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}
	logger.Debug().Strs("markers", cfg.Markers).Str("config", configPath).Msg("loaded config")
	return cfg, nil
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
