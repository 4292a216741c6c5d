package cli

import (
	"context"
	"errors"
	"log/slog"

	"github.com/m-mizutani/firemodel"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
	"google.golang.org/api/iterator"
)

func queryFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringSliceFlag{
			Name:    "where",
			Aliases: []string{"w"},
			Usage:   `Filter such as "status==active", "score>10" or "tag in a,b" (repeatable)`,
		},
		&cli.StringSliceFlag{
			Name:    "order",
			Aliases: []string{"o"},
			Usage:   `Order such as "createdAt:desc" (repeatable)`,
		},
		&cli.IntFlag{
			Name:    "limit",
			Aliases: []string{"n"},
			Usage:   "Maximum number of documents",
		},
		&cli.BoolFlag{
			Name:  "group",
			Usage: "Query every collection with this name",
		},
		&cli.BoolFlag{
			Name:  "server",
			Usage: "Skip results served from a local cache",
		},
	}
}

// queryOptions builds read options from the query flags.
func queryOptions(c *cli.Command) ([]firemodel.QueryOption, error) {
	var opts []firemodel.QueryOption

	for _, expr := range c.StringSlice("where") {
		f, err := parseFilter(expr)
		if err != nil {
			return nil, err
		}
		opts = append(opts, firemodel.Where(f))
	}
	for _, expr := range c.StringSlice("order") {
		o, err := parseOrder(expr)
		if err != nil {
			return nil, err
		}
		opts = append(opts, firemodel.OrderBy(o))
	}
	if n := c.Int("limit"); n > 0 {
		opts = append(opts, firemodel.Limit(int(n)))
	}
	if c.Bool("group") {
		opts = append(opts, firemodel.CollectionGroup())
	}
	if c.Bool("server") {
		opts = append(opts, firemodel.ServerOnly())
	}
	return opts, nil
}

func outputs(docs []*Document) []documentOutput {
	out := make([]documentOutput, len(docs))
	for i, doc := range docs {
		out[i] = toOutput(doc)
	}
	return out
}

func (a *app) listCommand() *cli.Command {
	return &cli.Command{
		Name:      "list",
		Usage:     "Print the documents matching a query",
		ArgsUsage: "<collection-path>",
		Flags:     queryFlags(),
		Action:    a.runList,
	}
}

func (a *app) runList(ctx context.Context, c *cli.Command) error {
	if c.Args().Len() != 1 {
		return goerr.New("collection path is required")
	}
	opts, err := queryOptions(c)
	if err != nil {
		return err
	}

	client, done, err := a.newClient(ctx, c)
	if err != nil {
		return err
	}
	defer done()

	docs, err := documents(client, c.Args().First()).List(ctx, opts...)
	if err != nil {
		return goerr.Wrap(err, "failed to list documents")
	}
	return a.printYAML(outputs(docs))
}

func (a *app) listenCommand() *cli.Command {
	return &cli.Command{
		Name:      "listen",
		Usage:     "Print a document or query result every time it changes",
		ArgsUsage: "<collection-path> [<id>]",
		Flags: append(queryFlags(), &cli.IntFlag{
			Name:  "count",
			Usage: "Exit after this many snapshots (0 means until interrupted)",
		}),
		Action: a.runListen,
	}
}

func (a *app) runListen(ctx context.Context, c *cli.Command) error {
	logger := getLogger(ctx)

	if c.Args().Len() < 1 || c.Args().Len() > 2 {
		return goerr.New("collection path and optional document id are required")
	}
	path, id := c.Args().Get(0), c.Args().Get(1)

	opts, err := queryOptions(c)
	if err != nil {
		return err
	}

	client, done, err := a.newClient(ctx, c)
	if err != nil {
		return err
	}
	defer done()

	col := documents(client, path)
	count := int(c.Int("count"))

	if id != "" {
		stream, err := col.Listen(ctx, id, opts...)
		if err != nil {
			return goerr.Wrap(err, "failed to listen document")
		}
		logger.Info("Listening", slog.String("key", stream.Key()))
		return consume(ctx, stream, count, func(doc *Document) error {
			return a.printYAMLDocument(toOutput(doc))
		})
	}

	stream, err := col.ListenQuery(ctx, opts...)
	if err != nil {
		return goerr.Wrap(err, "failed to listen query")
	}
	logger.Info("Listening", slog.String("key", stream.Key()))
	return consume(ctx, stream, count, func(docs []*Document) error {
		return a.printYAMLDocument(outputs(docs))
	})
}

// consume prints values of s until it ends, ctx is done or count values
// were printed. Interruption is not an error.
func consume[T any](ctx context.Context, s *firemodel.Stream[T], count int, print func(T) error) error {
	n := 0
	for v, err := range s.All(ctx) {
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, iterator.Done) {
				return nil
			}
			return goerr.Wrap(err, "listener failed")
		}
		if err := print(v); err != nil {
			return err
		}
		n++
		if count > 0 && n >= count {
			return nil
		}
	}
	return nil
}
