package cli

import (
	"context"
	"errors"
	"log/slog"

	"github.com/m-mizutani/firemodel"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

func (a *app) getCommand() *cli.Command {
	return &cli.Command{
		Name:      "get",
		Usage:     "Print one document",
		ArgsUsage: "<collection-path> <id>",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "server",
				Usage: "Bypass any local cache",
			},
		},
		Action: a.runGet,
	}
}

func (a *app) runGet(ctx context.Context, c *cli.Command) error {
	if c.Args().Len() != 2 {
		return goerr.New("collection path and document id are required")
	}
	path, id := c.Args().Get(0), c.Args().Get(1)

	client, done, err := a.newClient(ctx, c)
	if err != nil {
		return err
	}
	defer done()

	var opts []firemodel.QueryOption
	if c.Bool("server") {
		opts = append(opts, firemodel.ServerOnly())
	}

	doc, err := documents(client, path).Get(ctx, id, opts...)
	if err != nil {
		return goerr.Wrap(err, "failed to get document")
	}
	return a.printYAML(toOutput(doc))
}

func (a *app) setCommand() *cli.Command {
	return &cli.Command{
		Name:      "set",
		Usage:     "Create a document or merge fields into it",
		ArgsUsage: "<collection-path> [<id>]",
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:     "data",
				Aliases:  []string{"D"},
				Usage:    "Field assignment key=value (repeatable)",
				Required: true,
			},
			&cli.BoolFlag{
				Name:  "create",
				Usage: "Fail if the document already exists",
			},
		},
		Action: a.runSet,
	}
}

func (a *app) runSet(ctx context.Context, c *cli.Command) error {
	logger := getLogger(ctx)

	if c.Args().Len() < 1 || c.Args().Len() > 2 {
		return goerr.New("collection path and optional document id are required")
	}
	path, id := c.Args().Get(0), c.Args().Get(1)

	fields := map[string]any{}
	for _, expr := range c.StringSlice("data") {
		key, value, err := parseAssignment(expr)
		if err != nil {
			return err
		}
		fields[key] = value
	}

	client, done, err := a.newClient(ctx, c)
	if err != nil {
		return err
	}
	defer done()

	col := documents(client, path)
	doc := &Document{Fields: fields}

	// An existing document is merged into; otherwise it is created with id.
	if id != "" && !c.Bool("create") {
		existing, err := col.Get(ctx, id, firemodel.ServerOnly())
		switch {
		case err == nil:
			doc.Ref = existing.Ref
		case !errors.Is(err, firemodel.ErrNotFound):
			return goerr.Wrap(err, "failed to read document")
		}
	}

	var wopts []firemodel.WriteOption
	if id != "" {
		wopts = append(wopts, firemodel.WithID(id))
	}

	if c.Bool("create") {
		_, err = col.Create(ctx, doc, wopts...)
	} else {
		_, err = col.Write(ctx, doc, wopts...)
	}
	if err != nil {
		return goerr.Wrap(err, "failed to write document")
	}

	logger.Info("Document written", slog.String("path", doc.Ref.Path()))
	stored, err := col.Get(ctx, doc.ID())
	if err != nil {
		return goerr.Wrap(err, "failed to read written document")
	}
	return a.printYAML(toOutput(stored))
}

func (a *app) deleteCommand() *cli.Command {
	return &cli.Command{
		Name:      "delete",
		Usage:     "Delete one document",
		ArgsUsage: "<collection-path> <id>",
		Action:    a.runDelete,
	}
}

func (a *app) runDelete(ctx context.Context, c *cli.Command) error {
	logger := getLogger(ctx)

	if c.Args().Len() != 2 {
		return goerr.New("collection path and document id are required")
	}
	path, id := c.Args().Get(0), c.Args().Get(1)

	client, done, err := a.newClient(ctx, c)
	if err != nil {
		return err
	}
	defer done()

	col := documents(client, path)
	doc, err := col.Get(ctx, id)
	if err != nil {
		return goerr.Wrap(err, "failed to get document")
	}
	if err := col.Delete(ctx, doc); err != nil {
		return goerr.Wrap(err, "failed to delete document")
	}

	logger.Info("Document deleted", slog.String("path", doc.Ref.Path()))
	return nil
}
