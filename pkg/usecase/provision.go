package usecase

import (
	"context"
	"log/slog"

	"github.com/m-mizutani/firemodel/pkg/domain/interfaces"
	"github.com/m-mizutani/firemodel/pkg/domain/model"
	"github.com/m-mizutani/goerr/v2"
	"golang.org/x/sync/errgroup"
)

// Provision creates the composite indexes and TTL policies a schema asks
// for. It never deletes or changes what already exists.
type Provision struct {
	admin       interfaces.IndexAdmin
	logger      *slog.Logger
	dryRun      bool
	skipWait    bool
	concurrency int
}

// ProvisionOption configures Provision.
type ProvisionOption func(*Provision)

// WithDryRun logs what would be created without calling the admin API for writes.
func WithDryRun(dryRun bool) ProvisionOption {
	return func(p *Provision) {
		p.dryRun = dryRun
	}
}

// WithSkipWait returns as soon as the operations are started.
func WithSkipWait(skip bool) ProvisionOption {
	return func(p *Provision) {
		p.skipWait = skip
	}
}

// WithConcurrency limits how many indexes are created in parallel.
func WithConcurrency(n int) ProvisionOption {
	return func(p *Provision) {
		if n > 0 {
			p.concurrency = n
		}
	}
}

// NewProvision creates a new Provision use case
func NewProvision(admin interfaces.IndexAdmin, logger *slog.Logger, opts ...ProvisionOption) *Provision {
	p := &Provision{
		admin:       admin,
		logger:      logger,
		concurrency: 5,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Result summarises what Execute created.
type Result struct {
	CreatedIndexes []interfaces.FirestoreIndex `yaml:"created_indexes"`
	EnabledTTL     []string                    `yaml:"enabled_ttl"`
}

// Execute provisions every collection of schema.
func (p *Provision) Execute(ctx context.Context, schema *model.Schema) (*Result, error) {
	if err := Validate(schema); err != nil {
		return nil, err
	}

	p.logger.Info("Starting provisioning", slog.Bool("dryRun", p.dryRun))

	result := &Result{}
	for _, collection := range schema.Collections {
		p.logger.Info("Processing collection", slog.String("name", collection.Name))

		created, err := p.provisionIndexes(ctx, collection)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to provision indexes", goerr.V("collection", collection.Name))
		}
		result.CreatedIndexes = append(result.CreatedIndexes, created...)

		enabled, err := p.provisionTTL(ctx, collection)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to provision TTL", goerr.V("collection", collection.Name))
		}
		if enabled {
			result.EnabledTTL = append(result.EnabledTTL, collection.Name+"."+collection.TTL.Field)
		}
	}

	p.logger.Info("Provisioning completed",
		slog.Int("indexes", len(result.CreatedIndexes)),
		slog.Int("ttl", len(result.EnabledTTL)))
	return result, nil
}

func (p *Provision) provisionIndexes(ctx context.Context, collection model.Collection) ([]interfaces.FirestoreIndex, error) {
	if len(collection.Indexes) == 0 {
		return nil, nil
	}

	existing, err := p.admin.ListIndexes(ctx, collection.Name)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list existing indexes")
	}

	missing := MissingIndexes(collection.Indexes, existing)
	p.logger.Info("Index diff calculated",
		slog.String("collection", collection.Name),
		slog.Int("desired", len(collection.Indexes)),
		slog.Int("existing", len(existing)),
		slog.Int("toCreate", len(missing)))

	if len(missing) == 0 {
		return nil, nil
	}
	if err := p.createIndexesConcurrently(ctx, collection.Name, missing); err != nil {
		return nil, err
	}
	return missing, nil
}

// createIndexesConcurrently creates multiple indexes in parallel
func (p *Provision) createIndexesConcurrently(ctx context.Context, collectionName string, indexes []interfaces.FirestoreIndex) error {
	g, ctx := errgroup.WithContext(ctx)

	// Limit concurrent operations
	sem := make(chan struct{}, p.concurrency)

	for _, idx := range indexes {
		g.Go(func() error {
			sem <- struct{}{}
			defer func() { <-sem }()

			if p.dryRun {
				p.logger.Info("Would create index",
					slog.String("collection", collectionName),
					slog.Any("fields", idx.Fields),
					slog.String("queryScope", idx.QueryScope))
				return nil
			}

			p.logger.Info("Creating index",
				slog.String("collection", collectionName),
				slog.Any("fields", idx.Fields),
				slog.String("queryScope", idx.QueryScope))

			op, err := p.admin.CreateIndex(ctx, collectionName, idx)
			if err != nil {
				return goerr.Wrap(err, "failed to create index",
					goerr.V("collection", collectionName),
					goerr.V("fields", idx.Fields))
			}

			return p.wait(ctx, op, "index creation", collectionName)
		})
	}

	return g.Wait()
}

func (p *Provision) provisionTTL(ctx context.Context, collection model.Collection) (bool, error) {
	if collection.TTL == nil {
		return false, nil
	}

	existing, err := p.admin.GetTTLPolicy(ctx, collection.Name, collection.TTL.Field)
	if err != nil {
		return false, goerr.Wrap(err, "failed to get TTL policy")
	}

	if !TTLNeedsEnable(collection.TTL, existing) {
		p.logger.Debug("TTL policy is up to date",
			slog.String("collection", collection.Name),
			slog.String("field", collection.TTL.Field))
		return false, nil
	}

	if p.dryRun {
		p.logger.Info("Would enable TTL policy",
			slog.String("collection", collection.Name),
			slog.String("field", collection.TTL.Field))
		return true, nil
	}

	p.logger.Info("Enabling TTL policy",
		slog.String("collection", collection.Name),
		slog.String("field", collection.TTL.Field))

	op, err := p.admin.EnableTTLPolicy(ctx, collection.Name, collection.TTL.Field)
	if err != nil {
		return false, goerr.Wrap(err, "failed to enable TTL policy")
	}
	if err := p.wait(ctx, op, "TTL policy enable", collection.Name); err != nil {
		return false, err
	}
	return true, nil
}

func (p *Provision) wait(ctx context.Context, op interfaces.Operation, what, collection string) error {
	if p.skipWait || op == nil {
		return nil
	}

	p.logger.Info("Waiting for "+what+" to complete", slog.String("collection", collection))
	if err := op.Wait(ctx); err != nil {
		return goerr.Wrap(err, "failed to wait for "+what, goerr.V("collection", collection))
	}
	return nil
}
