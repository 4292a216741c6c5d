package firemodel

import (
	"context"
	"log/slog"
	"sync"

	"github.com/m-mizutani/firemodel/pkg/adapter/firestore"
	"github.com/m-mizutani/firemodel/pkg/domain/interfaces"
	"github.com/m-mizutani/firemodel/pkg/registry"
	"github.com/m-mizutani/firemodel/pkg/usecase"
	"github.com/m-mizutani/goerr/v2"
)

// Client is the entry point for document operations. It owns the backend
// connection and the listener registry shared by every typed collection
// handle created with For. A Client is safe for concurrent use.
type Client struct {
	backend  interfaces.Backend
	registry *registry.Registry
	options  *options
	logger   *slog.Logger
	metrics  *metrics

	// set by New so Provision can connect to the Admin API on demand
	authConfig *firestore.AuthConfig

	adminMu   sync.Mutex
	admin     interfaces.IndexAdmin
	ownsAdmin bool
}

// New creates a client connected to a Firestore database.
func New(ctx context.Context, projectID, databaseID string, opts ...Option) (*Client, error) {
	options := applyOptions(opts)

	// Validate required parameters
	if projectID == "" {
		return nil, goerr.New("project ID is required")
	}
	if databaseID == "" {
		databaseID = firestore.DefaultDatabaseID
	}

	authConfig := firestore.AuthConfig{
		ProjectID:   projectID,
		DatabaseID:  databaseID,
		Credentials: options.CredentialsFile,
	}

	backend, err := firestore.NewClient(ctx, authConfig)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create Firestore client")
	}

	c := newClient(backend, options)
	c.authConfig = &authConfig
	return c, nil
}

// NewWithBackend creates a client on top of an existing backend, such as
// the in-memory backend in pkg/adapter/memory.
func NewWithBackend(backend interfaces.Backend, opts ...Option) *Client {
	return newClient(backend, applyOptions(opts))
}

func newClient(backend interfaces.Backend, options *options) *Client {
	m := newMetrics(options.Registerer)
	return &Client{
		backend: backend,
		registry: registry.New(registry.Hooks{
			OnActive:   func(n int) { m.activeListeners.Set(float64(n)) },
			OnReplaced: func() { m.listenerReplacements.Inc() },
		}),
		options: options,
		logger:  options.Logger,
		metrics: m,
		admin:   options.IndexAdmin,
	}
}

// Backend returns the backend the client operates on.
func (c *Client) Backend() interfaces.Backend {
	return c.backend
}

// StopListening stops the listener registered under key, as returned by
// Stream.Key. It reports whether a listener was active.
func (c *Client) StopListening(key string) bool {
	stopped := c.registry.Stop(key)
	if stopped {
		c.logger.Debug("Listener stopped", slog.String("key", key))
	}
	return stopped
}

// StopListeningAll stops every listener and returns how many were active.
func (c *Client) StopListeningAll() int {
	n := c.registry.StopAll()
	if n > 0 {
		c.logger.Debug("All listeners stopped", slog.Int("count", n))
	}
	return n
}

// ActiveListeners returns the number of registered listeners.
func (c *Client) ActiveListeners() int {
	return c.registry.Len()
}

// Close stops every listener and closes the backend connection.
func (c *Client) Close() error {
	c.registry.StopAll()

	c.adminMu.Lock()
	if c.ownsAdmin && c.admin != nil {
		if err := c.admin.Close(); err != nil {
			c.logger.Warn("Failed to close index admin", slog.Any("error", err))
		}
		c.admin = nil
	}
	c.adminMu.Unlock()

	if c.backend != nil {
		if err := c.backend.Close(); err != nil {
			return goerr.Wrap(err, "failed to close backend")
		}
	}
	return nil
}

// Provision creates the composite indexes and TTL policies of schema that
// do not exist yet. Nothing is ever deleted.
func (c *Client) Provision(ctx context.Context, schema *Schema, opts ...ProvisionOption) (*ProvisionResult, error) {
	if schema == nil {
		return nil, goerr.New("schema is required")
	}

	admin, err := c.indexAdmin(ctx)
	if err != nil {
		return nil, err
	}

	p := usecase.NewProvision(admin, c.logger, opts...)
	result, err := p.Execute(ctx, schema)
	if err != nil {
		return nil, goerr.Wrap(err, "provisioning failed")
	}
	return result, nil
}

func (c *Client) indexAdmin(ctx context.Context) (interfaces.IndexAdmin, error) {
	c.adminMu.Lock()
	defer c.adminMu.Unlock()

	if c.admin != nil {
		return c.admin, nil
	}
	if c.authConfig == nil {
		return nil, goerr.Wrap(ErrNoIndexAdmin, "client was not created with New; use WithIndexAdmin")
	}

	admin, err := firestore.NewAdmin(ctx, *c.authConfig)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create Firestore admin client")
	}
	c.admin = admin
	c.ownsAdmin = true
	return admin, nil
}
