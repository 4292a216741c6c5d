// Package cli implements the firemodel command line tool.
package cli

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/m-mizutani/clog"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/firemodel/pkg/domain/interfaces"
	"github.com/urfave/cli/v3"
)

// app holds what commands need besides their flags.
type app struct {
	backend interfaces.Backend
	admin   interfaces.IndexAdmin
	stdout  io.Writer
	stderr  io.Writer
}

// AppOption configures the application
type AppOption func(*app)

// WithBackend makes commands use backend instead of connecting to Firestore.
func WithBackend(backend interfaces.Backend) AppOption {
	return func(a *app) {
		a.backend = backend
	}
}

// WithIndexAdmin makes the provision command use admin.
func WithIndexAdmin(admin interfaces.IndexAdmin) AppOption {
	return func(a *app) {
		a.admin = admin
	}
}

// WithWriter sets where command output and logs are written.
func WithWriter(stdout, stderr io.Writer) AppOption {
	return func(a *app) {
		a.stdout = stdout
		a.stderr = stderr
	}
}

// NewApp creates a new CLI application
func NewApp(version string, opts ...AppOption) *cli.Command {
	a := &app{stdout: os.Stdout, stderr: os.Stderr}
	for _, opt := range opts {
		opt(a)
	}

	return &cli.Command{
		Name:    "firemodel",
		Usage:   "Read, write and watch Firestore documents",
		Version: version,
		Writer:  a.stdout,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "project",
				Aliases: []string{"p"},
				Usage:   "GCP project ID",
				Sources: cli.EnvVars("FIREMODEL_PROJECT", "GOOGLE_CLOUD_PROJECT"),
			},
			&cli.StringFlag{
				Name:    "database",
				Aliases: []string{"d"},
				Usage:   "Firestore database ID",
				Value:   "(default)",
				Sources: cli.EnvVars("FIREMODEL_DATABASE"),
			},
			&cli.StringFlag{
				Name:    "credentials",
				Usage:   "Service account key file path",
				Sources: cli.EnvVars("GOOGLE_APPLICATION_CREDENTIALS"),
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "Enable verbose logging",
			},
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			// Setup logger
			level := slog.LevelInfo
			if c.Bool("verbose") {
				level = slog.LevelDebug
			}

			logger := slog.New(clog.New(
				clog.WithWriter(a.stderr),
				clog.WithLevel(level),
			))

			// Inject logger into context
			ctx = ctxlog.With(ctx, logger)

			return ctx, nil
		},
		Commands: []*cli.Command{
			a.getCommand(),
			a.listCommand(),
			a.listenCommand(),
			a.setCommand(),
			a.deleteCommand(),
			a.indexCommand(),
			a.provisionCommand(),
		},
	}
}

// Run executes the CLI application
func Run(ctx context.Context, version string, args []string) error {
	return NewApp(version).Run(ctx, args)
}
