package cli

import (
	"context"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/m-mizutani/clog"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/firemodel"
	"github.com/m-mizutani/firemodel/pkg/domain/model"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

// getLogger gets or creates a logger from context
func getLogger(ctx context.Context) *slog.Logger {
	if logger := ctxlog.From(ctx); logger != nil {
		return logger
	}
	return slog.New(clog.New(
		clog.WithWriter(os.Stderr),
		clog.WithLevel(slog.LevelInfo),
	))
}

// newClient connects to the database named by the global flags, or wraps
// the injected backend. The returned function releases the client.
func (a *app) newClient(ctx context.Context, c *cli.Command) (*firemodel.Client, func(), error) {
	logger := getLogger(ctx)

	if a.backend != nil {
		opts := []firemodel.Option{firemodel.WithLogger(logger)}
		if a.admin != nil {
			opts = append(opts, firemodel.WithIndexAdmin(a.admin))
		}
		client := firemodel.NewWithBackend(a.backend, opts...)
		// the injected backend outlives the command
		return client, func() { client.StopListeningAll() }, nil
	}

	projectID := c.String("project")
	if projectID == "" {
		return nil, nil, goerr.New("project flag is required", goerr.V("command", c.Name))
	}

	opts := []firemodel.Option{firemodel.WithLogger(logger)}
	if credentials := c.String("credentials"); credentials != "" {
		opts = append(opts, firemodel.WithCredentialsFile(credentials))
	}
	if a.admin != nil {
		opts = append(opts, firemodel.WithIndexAdmin(a.admin))
	}

	client, err := firemodel.New(ctx, projectID, c.String("database"), opts...)
	if err != nil {
		return nil, nil, goerr.Wrap(err, "failed to create client")
	}
	return client, func() {
		if err := client.Close(); err != nil {
			logger.Warn("Failed to close client", slog.Any("error", err))
		}
	}, nil
}

func documents(client *firemodel.Client, path string) *firemodel.Collection[Document, *Document] {
	return firemodel.For[Document](client, firemodel.At(path))
}

type documentOutput struct {
	Path      string         `yaml:"path"`
	CreatedAt *time.Time     `yaml:"created_at,omitempty"`
	UpdatedAt *time.Time     `yaml:"updated_at,omitempty"`
	Data      map[string]any `yaml:"data"`
}

func toOutput(doc *Document) documentOutput {
	out := documentOutput{
		CreatedAt: doc.CreatedAt,
		UpdatedAt: doc.UpdatedAt,
		Data:      printable(doc.Fields).(map[string]any),
	}
	if doc.Ref != nil {
		out.Path = doc.Ref.Path()
	}
	return out
}

// printable replaces references with their paths.
func printable(v any) any {
	switch v := v.(type) {
	case *model.Reference:
		return v.Path()
	case map[string]any:
		out := make(map[string]any, len(v))
		for k, x := range v {
			out[k] = printable(x)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, x := range v {
			out[i] = printable(x)
		}
		return out
	}
	return v
}

func (a *app) printYAML(v any) error {
	data, err := yaml.Marshal(v)
	if err != nil {
		return goerr.Wrap(err, "failed to marshal output")
	}
	if _, err := a.stdout.Write(data); err != nil {
		return goerr.Wrap(err, "failed to write output")
	}
	return nil
}

// printYAMLDocument prints v as one document of a YAML stream.
func (a *app) printYAMLDocument(v any) error {
	if _, err := io.WriteString(a.stdout, "---\n"); err != nil {
		return goerr.Wrap(err, "failed to write output")
	}
	return a.printYAML(v)
}
