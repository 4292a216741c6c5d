package firemodel

import (
	"log/slog"

	"github.com/m-mizutani/firemodel/pkg/domain/interfaces"
	"github.com/prometheus/client_golang/prometheus"
)

// options represents client options
type options struct {
	// Logger for logging operations
	Logger *slog.Logger

	// CredentialsFile specifies the service account key file path (optional)
	CredentialsFile string

	// Registerer receives the client metrics (optional)
	Registerer prometheus.Registerer

	// IndexAdmin is used by Provision (optional)
	IndexAdmin interfaces.IndexAdmin
}

// Option is a function that configures options
type Option func(*options)

// WithLogger sets the logger
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.Logger = logger
	}
}

// WithCredentialsFile sets the credentials file path
func WithCredentialsFile(path string) Option {
	return func(o *options) {
		o.CredentialsFile = path
	}
}

// WithMetrics registers the client metrics on reg.
func WithMetrics(reg prometheus.Registerer) Option {
	return func(o *options) {
		o.Registerer = reg
	}
}

// WithIndexAdmin sets the admin client Provision uses. Clients created by
// New build one on demand, so this is mostly useful with NewWithBackend.
func WithIndexAdmin(admin interfaces.IndexAdmin) Option {
	return func(o *options) {
		o.IndexAdmin = admin
	}
}

// applyOptions applies option functions to options
func applyOptions(opts []Option) *options {
	o := &options{
		Logger: slog.New(slog.DiscardHandler),
	}

	for _, opt := range opts {
		opt(o)
	}

	return o
}

// WriteOption configures Create and Write.
type WriteOption func(*writeConfig)

type writeConfig struct {
	id string
}

// WithID uses id instead of a generated document id when the model has no reference.
func WithID(id string) WriteOption {
	return func(c *writeConfig) {
		c.id = id
	}
}

// CollectionOption configures a typed collection handle.
type CollectionOption func(*collectionConfig)

type collectionConfig struct {
	parentIDs []string
	path      string
}

// Under sets the parent document ids of a sub-collection model, outermost
// first. A model nested two levels deep needs two ids.
func Under(parentIDs ...string) CollectionOption {
	return func(c *collectionConfig) {
		c.parentIDs = parentIDs
	}
}

// At pins the handle to an explicit collection path such as
// "boards/b1/posts", ignoring the model's collection name and parents.
func At(path string) CollectionOption {
	return func(c *collectionConfig) {
		c.path = path
	}
}
