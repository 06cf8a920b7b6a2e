// Command mdf4 inspects and exports MDF 4 measurement files.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/R1tschY/mdf4j-sub001/internal/logger"
	"github.com/urfave/cli/v3"
)

// app holds the settings shared by all commands.
type app struct {
	configPath string
	logLevel   string
	logFormat  string
	cfg        Config
	logger     *slog.Logger
}

func newApp() *cli.Command {
	a := &app{logger: logger.Discard()}

	return &cli.Command{
		Name:  "mdf4",
		Usage: "Inspect and export ASAM MDF 4 measurement files",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "config",
				Usage:       "path to the config file",
				Value:       configPath(),
				Destination: &a.configPath,
			},
			&cli.StringFlag{Name: "log-level", Usage: "debug, info, warn or error", Value: "warn", Destination: &a.logLevel},
			&cli.StringFlag{Name: "log-format", Usage: "text, json or pretty", Value: logger.FormatText, Destination: &a.logFormat},
		},
		Before: a.setup,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return cli.ShowAppHelp(cmd)
		},
		Commands: []*cli.Command{
			infoCmd(a),
			channelsCmd(a),
			exportCmd(a),
			sampleCmd(a),
		},
	}
}

// setup loads the config file and builds the logger. Config values only
// apply to flags that were not given.
func (a *app) setup(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	cfg, err := loadConfig(a.configPath)
	if err != nil {
		return ctx, err
	}
	a.cfg = cfg

	if cfg.LogLevel != "" && !cmd.IsSet("log-level") {
		a.logLevel = cfg.LogLevel
	}
	if cfg.LogFormat != "" && !cmd.IsSet("log-format") {
		a.logFormat = cfg.LogFormat
	}

	level, err := logger.ParseLevel(a.logLevel)
	if err != nil {
		return ctx, err
	}
	if a.logger, err = logger.New(os.Stderr, a.logFormat, level); err != nil {
		return ctx, err
	}

	return ctx, nil
}

func main() {
	if err := newApp().Run(context.Background(), os.Args); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
