package cmd

import (
	"fmt"
	"log/slog"
	"os"

	cfgpkg "github.com/KaramelBytes/groupr-cli/internal/config"
	"github.com/KaramelBytes/groupr-cli/internal/logging"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	cfgFile   string
	debug     bool
	logFormat string

	// Loaded configuration
	cfg *cfgpkg.Global
	// Structured logger (stderr); user-facing results go to stdout
	logger = logging.Discard()
)

var rootCmd = &cobra.Command{
	Use:   "groupr",
	Short: "groupr: split the rows of a CSV into random, balanced groups",
	Long: `groupr reads a CSV (or XLSX) table and deals its rows into the requested number of
groups by sampling without replacement. Group sizes never differ by more than one.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute is the entry point called by main.main()
func Execute() {
	// Initialize configuration before executing commands
	cobra.OnInitialize(loadConfig)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func init() {
	// Persistent global flags available to all subcommands
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.groupr/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "log format: text|json (overrides config)")
}

func loadConfig() {
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		// Non-fatal: commands fall back to built-in defaults
		fmt.Fprintf(os.Stderr, "⚠ Warning: failed to load config: %v\n", err)
		c = defaultConfig()
	}
	cfg = c

	format := cfg.LogFormat
	if rootCmd.PersistentFlags().Changed("log-format") && logFormat != "" {
		format = logFormat
	}
	logger = logging.New(os.Stderr, format, debug)
	slog.SetDefault(logger)
	logger.Debug("config loaded", "groups", cfg.Groups, "format", cfg.Format, "hidden_columns", cfg.HiddenColumns)
}

func defaultConfig() *cfgpkg.Global {
	return &cfgpkg.Global{
		Groups:        2,
		Format:        "markdown",
		HiddenColumns: []string{"notes"},
		ServeAddr:     ":8080",
		MaxBodyMB:     10,
		LogFormat:     "text",
	}
}

// currentConfig returns the loaded configuration, or defaults when none was loaded.
func currentConfig() *cfgpkg.Global {
	if cfg == nil {
		cfg = defaultConfig()
	}
	return cfg
}
