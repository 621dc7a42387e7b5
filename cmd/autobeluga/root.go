package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/Bennylang23/autobeluga/internal/app"
	"github.com/Bennylang23/autobeluga/internal/config"
	"github.com/Bennylang23/autobeluga/internal/platform/logging"
	"github.com/bytedance/sonic"
	"github.com/spf13/cobra"
)

type cli struct {
	cfg    config.Config
	logger *logging.Logger
	out    io.Writer
}

func newRootCmd() *cobra.Command {
	c := &cli{out: os.Stdout}

	root := &cobra.Command{
		Use:           "autobeluga",
		Short:         "Extract fbref match reports into Postgres",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			c.cfg = cfg
			c.logger = logging.New(logging.Options{
				Level:   cfg.LogLevel,
				Format:  cfg.LogFormat,
				Output:  os.Stderr,
				Service: cfg.ServiceName,
				Version: cfg.ServiceVersion,
			})
			logging.SetDefault(c.logger)
			c.out = cmd.OutOrStdout()
			return nil
		},
	}

	root.AddCommand(
		newScanCmd(c),
		newMatchCmd(c),
		newHaltingCmd(c),
		newMigrateCmd(c),
	)
	return root
}

func (c *cli) openApp(ctx context.Context, opts app.Options) (*app.App, func(), error) {
	a, err := app.New(ctx, c.cfg, c.logger, opts)
	if err != nil {
		return nil, nil, err
	}
	return a, func() {
		if err := a.Close(context.Background()); err != nil {
			c.logger.Warn("shutdown failed", "error", err)
		}
	}, nil
}

func (c *cli) printJSON(v any) error {
	raw, err := sonic.ConfigStd.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	_, err = fmt.Fprintln(c.out, string(raw))
	return err
}
