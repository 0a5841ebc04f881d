// Package commands implements the fightcard one-shot crawl CLI.
package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	app "github.com/okian/fightcard/internal/app"
	"github.com/okian/fightcard/internal/config"
	"github.com/okian/fightcard/internal/domain/model"
	"github.com/okian/fightcard/pkg/logger"
)

type flags struct {
	output   string
	baseURL  string
	delayMs  int
	logLevel string
	compact  bool
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	f := &flags{}
	root := &cobra.Command{
		Use:           "fightcard",
		Short:         "fightcard crawls upcoming fight cards and prints them as JSON.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&f.output, "output", "o", "-", "File to write JSON to; - for stdout.")
	root.PersistentFlags().StringVar(&f.baseURL, "base-url", "", "Override the source site origin.")
	root.PersistentFlags().IntVar(&f.delayMs, "delay-ms", -1, "Override the pause after each fetch in milliseconds.")
	root.PersistentFlags().StringVar(&f.logLevel, "log-level", "", "Override the log level (debug, info, warn, error).")
	root.PersistentFlags().BoolVar(&f.compact, "compact", false, "Write JSON without indentation.")

	root.AddCommand(newEventsCmd(f), newEventCmd(f))
	return root
}

// ExecuteContext runs the CLI and exits non-zero on failure.
func ExecuteContext(ctx context.Context) {
	if err := NewRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// service loads configuration, applies flag overrides and builds the crawler.
func (f *flags) service(ctx context.Context) (*app.Service, error) {
	cfg, err := config.Load(ctx)
	if err != nil {
		return nil, err
	}
	if f.baseURL != "" {
		cfg.BaseURL = f.baseURL
	}
	if f.delayMs >= 0 {
		cfg.RequestDelayMS = f.delayMs
	}
	if f.logLevel != "" {
		cfg.LogLevel = f.logLevel
	}
	if err := cfg.Validate(ctx); err != nil {
		return nil, err
	}
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		return nil, err
	}
	return app.NewFromConfig(cfg, logger.Get().Named("cli")), nil
}

func (f *flags) write(cmd *cobra.Command, catalog model.Catalog) error {
	var w io.Writer = cmd.OutOrStdout()
	if f.output != "-" && f.output != "" {
		file, err := os.Create(f.output)
		if err != nil {
			return fmt.Errorf("open output: %w", err)
		}
		defer file.Close()
		w = file
	}

	enc := json.NewEncoder(w)
	if !f.compact {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(catalog); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}
