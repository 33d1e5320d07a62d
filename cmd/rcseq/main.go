// Command rcseq is a small inspection CLI over the container/codec packages:
// build, decode, reformat, and report on the textual sequence form from the
// shell. Grounded on untoldecay-BeadsLog's cmd/bd layout, one file per
// subcommand with an init() that registers it on rootCmd.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gavlooth/rcseq/internal/config"
	"github.com/gavlooth/rcseq/internal/obslog"
	"github.com/gavlooth/rcseq/pkg/container"
)

var (
	cfgFile   string
	logLevel  string
	logFormat string

	cfg    *config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "rcseq",
	Short: "Inspect and manipulate the rcseq textual sequence form",
	Long: `rcseq is a small CLI over a chunked, reference-counted, cycle-safe
sequence container: it decodes the bracketed textual form, reformats it to
canonical spacing, and reports structural statistics.`,
	SilenceUsage:      true,
	PersistentPreRunE: loadRuntime,
}

func loadRuntime(cmd *cobra.Command, args []string) error {
	loaded, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if logLevel != "" {
		loaded.LogLevel = logLevel
	}
	if logFormat != "" {
		loaded.LogFormat = logFormat
	}
	cfg = loaded

	l, err := obslog.New(cfg)
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	logger = l

	if cfg.MaxChildren > 0 && cfg.MaxChildren <= container.MaxChildrenHardLimit {
		container.MaxChildren = cfg.MaxChildren
	}
	return nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "path to a TOML config file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "override the configured log level")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "override the configured log format (console|json)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newStore builds a container.Store wired to the loaded config's memory
// budget and the obslog-adapted logger, so every subcommand observes the
// same allocation accounting and log output.
func newStore() *container.Store {
	s := container.NewStore().WithLogHook(obslog.Hook(logger))
	if cfg.MemoryLimitBytes > 0 {
		s = s.WithMemoryLimit(cfg.MemoryLimitBytes)
	}
	return s
}

// readInput reads path's contents, or stdin when path is "-" or empty.
func readInput(path string) (string, error) {
	if path == "" || path == "-" {
		b, err := io.ReadAll(os.Stdin)
		return string(b), err
	}
	b, err := os.ReadFile(path)
	return string(b), err
}
