package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/tessro/onair/internal/config"
	onairerrors "github.com/tessro/onair/internal/errors"
	"github.com/tessro/onair/internal/logging"
)

var (
	cfgFile string
	jsonOut bool
	verbose bool

	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   config.AppName,
	Short: "Listen to the radio from the command line",
	Long: `onair is a terminal companion for a web radio station: live playback,
the program schedule, the now-playing title and the listener message wall.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initConfig(cmd)
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default: ~/.onairrc)")
	rootCmd.PersistentFlags().BoolVarP(&jsonOut, "json", "j", false, "output as JSON")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// fullscreen marks commands that own the terminal; their logs only go to
// the log file.
const fullscreen = "fullscreen"

func initConfig(cmd *cobra.Command) error {
	var err error
	if cfgFile != "" {
		cfg, err = config.LoadFrom(cfgFile)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return onairerrors.WithSuggestion(
			fmt.Errorf("%w: %v", onairerrors.ErrInvalidConfig, err),
			"Check the TOML syntax, or run 'onair config init' to start over",
		)
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	var console io.Writer = os.Stderr
	if _, ok := cmd.Annotations[fullscreen]; ok {
		console = nil
		if cfg.Log.File == "" {
			if dir, err := config.DataDir(); err == nil {
				cfg.Log.File = filepath.Join(dir, config.AppName+".log")
			}
		}
	}
	if verbose {
		cfg.Log.Level = "debug"
	}
	return logging.Init(cfg.Log, logging.Options{Console: console})
}

// Execute runs the root command.
func Execute() {
	err := rootCmd.Execute()
	logging.Sync()
	if err != nil {
		fmt.Fprintln(os.Stderr, onairerrors.Format(err))
		os.Exit(1)
	}
}

// Config returns the loaded configuration.
func Config() *config.Config {
	return cfg
}

// JSONOutput returns true if JSON output is requested.
func JSONOutput() bool {
	return jsonOut
}

// Verbose returns true if verbose output is requested.
func Verbose() bool {
	return verbose
}

// configPath returns the file config commands read and write.
func configPath() string {
	if cfgFile != "" {
		return cfgFile
	}
	return config.Path()
}
