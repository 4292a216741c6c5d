package cli

import (
	"context"
	"log/slog"

	"github.com/m-mizutani/firemodel"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

func (a *app) indexCommand() *cli.Command {
	return &cli.Command{
		Name:      "index",
		Usage:     "Print the composite index a query needs as a schema entry",
		ArgsUsage: "<collection-name>",
		Flags:     queryFlags(),
		Action:    a.runIndex,
	}
}

func (a *app) runIndex(ctx context.Context, c *cli.Command) error {
	logger := getLogger(ctx)

	if c.Args().Len() != 1 {
		return goerr.New("collection name is required")
	}
	name := c.Args().First()

	opts, err := queryOptions(c)
	if err != nil {
		return err
	}

	// no connection is needed to plan an index
	col := firemodel.For[Document](firemodel.NewWithBackend(nil), firemodel.At(name))
	idx, ok := col.IndexFor(opts...)
	if !ok {
		logger.Info("Query is served by single-field indexes", slog.String("collection", name))
		return nil
	}

	schema := &firemodel.Schema{}
	firemodel.AddIndex(schema, name, idx)
	return a.printYAML(schema)
}

func (a *app) provisionCommand() *cli.Command {
	return &cli.Command{
		Name:  "provision",
		Usage: "Create the composite indexes and TTL policies listed in a schema file",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Schema file path",
				Value:   "firemodel.yaml",
			},
			&cli.BoolFlag{
				Name:  "dry-run",
				Usage: "Show what would be created without making actual changes",
			},
			&cli.BoolFlag{
				Name:  "no-wait",
				Usage: "Do not wait for indexes to become ready",
			},
		},
		Action: a.runProvision,
	}
}

func (a *app) runProvision(ctx context.Context, c *cli.Command) error {
	logger := getLogger(ctx)

	configPath := c.String("config")
	logger.Info("Reading schema file", slog.String("path", configPath))

	schema, err := firemodel.LoadSchemaFromYAML(configPath)
	if err != nil {
		return goerr.Wrap(err, "failed to load schema")
	}

	client, done, err := a.newClient(ctx, c)
	if err != nil {
		return err
	}
	defer done()

	var opts []firemodel.ProvisionOption
	if c.Bool("dry-run") {
		logger.Info("Running in dry-run mode")
		opts = append(opts, firemodel.WithDryRun())
	}
	if c.Bool("no-wait") {
		opts = append(opts, firemodel.WithoutWait())
	}

	result, err := client.Provision(ctx, schema, opts...)
	if err != nil {
		return goerr.Wrap(err, "provisioning failed")
	}

	return a.printYAML(result)
}
