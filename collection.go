package firemodel

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/m-mizutani/firemodel/pkg/codec"
	"github.com/m-mizutani/firemodel/pkg/domain/interfaces"
	"github.com/m-mizutani/firemodel/pkg/domain/model"
	"github.com/m-mizutani/goerr/v2"
)

// Collection is a typed handle on the collection holding models of type T.
// It is cheap to create and holds no state of its own beyond its options;
// listeners are tracked by the Client.
type Collection[T any, PT interface {
	*T
	Model
}] struct {
	client *Client
	cfg    collectionConfig
}

// For returns the collection handle for model type T.
//
//	users := firemodel.For[User](client)
//	comments := firemodel.For[Comment](client, firemodel.Under("board1", "post1"))
func For[T any, PT interface {
	*T
	Model
}](c *Client, opts ...CollectionOption) *Collection[T, PT] {
	var cfg collectionConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Collection[T, PT]{client: c, cfg: cfg}
}

func (c *Collection[T, PT]) newModel() PT {
	return PT(new(T))
}

// Ref returns the collection reference the handle operates on.
func (c *Collection[T, PT]) Ref() (*CollectionRef, error) {
	return c.collectionRef(nil)
}

// collectionRef resolves the collection of m. A persisted model keeps the
// collection of its own reference.
func (c *Collection[T, PT]) collectionRef(m PT) (*CollectionRef, error) {
	if m != nil {
		if ref := m.ModelMeta().Ref; ref != nil && ref.Parent != nil {
			return ref.Parent, nil
		}
	}

	if c.cfg.path != "" {
		col := model.ParseCollectionRef(c.cfg.path)
		if col == nil {
			return nil, goerr.Wrap(ErrReferenceResolution, "invalid collection path", goerr.V("path", c.cfg.path))
		}
		return col, nil
	}

	if m == nil {
		m = c.newModel()
	}
	return resolveCollection(m, c.cfg.parentIDs)
}

// groupName is the collection id matched by collection group queries.
func (c *Collection[T, PT]) groupName() string {
	if c.cfg.path != "" {
		path := strings.Trim(c.cfg.path, "/")
		return path[strings.LastIndex(path, "/")+1:]
	}
	return c.newModel().CollectionName()
}

func groupScope(name string) string {
	return "group:" + name
}

func (c *Collection[T, PT]) newReference(m PT, opts []WriteOption) (*Reference, error) {
	var cfg writeConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	col, err := c.collectionRef(m)
	if err != nil {
		return nil, err
	}

	id := cfg.id
	if id == "" {
		id = c.client.backend.NewDocumentID(col)
	}
	return col.Doc(id), nil
}

func encodeModel(m Model) (map[string]any, error) {
	data, err := codec.Encode(m)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to encode model", goerr.V("collection", m.CollectionName()))
	}
	if data == nil {
		data = map[string]any{}
	}
	return data, nil
}

// decode builds a model from a snapshot. The cause is kept alongside ErrDecode.
func (c *Collection[T, PT]) decode(snap *interfaces.Snapshot) (PT, error) {
	m := c.newModel()
	if err := codec.Decode(snap.Data, m); err != nil {
		return nil, goerr.Wrap(fmt.Errorf("%w: %w", ErrDecode, err), "failed to decode document",
			goerr.V("path", snap.Ref.Path()))
	}
	m.ModelMeta().Ref = snap.Ref
	return m, nil
}

// decodeAll decodes every document of snap, leaving out the ones that fail.
func (c *Collection[T, PT]) decodeAll(snap *interfaces.QuerySnapshot) []PT {
	models := make([]PT, 0, len(snap.Documents))
	for _, doc := range snap.Documents {
		m, err := c.decode(doc)
		if err != nil {
			c.client.metrics.droppedDocuments.WithLabelValues(doc.Ref.CollectionName()).Inc()
			c.client.logger.Debug("Dropped undecodable document",
				slog.String("path", doc.Ref.Path()),
				slog.Any("error", err))
			continue
		}
		models = append(models, m)
	}
	return models
}

// Create stores m as a new document. The id is generated unless WithID is
// given. Timestamps are assigned by the server and must not be set.
func (c *Collection[T, PT]) Create(ctx context.Context, m PT, opts ...WriteOption) (*Reference, error) {
	meta := m.ModelMeta()
	if meta.Ref != nil {
		return nil, goerr.Wrap(ErrAlreadyExists, "cannot create a persisted model", goerr.V("path", meta.Ref.Path()))
	}
	if meta.CreatedAt != nil || meta.UpdatedAt != nil {
		return nil, goerr.Wrap(ErrInvalidTimestamp, "timestamps must be empty on create",
			goerr.V("collection", m.CollectionName()))
	}

	data, err := encodeModel(m)
	if err != nil {
		return nil, err
	}
	ref, err := c.newReference(m, opts)
	if err != nil {
		return nil, err
	}

	data[FieldCreatedAt] = interfaces.ServerTimestamp
	data[FieldUpdatedAt] = interfaces.ServerTimestamp
	if err := c.client.backend.Set(ctx, ref, data, false); err != nil {
		return nil, goerr.Wrap(err, "failed to create document", goerr.V("path", ref.Path()))
	}

	meta.Ref = ref
	c.client.logger.Debug("Document created", slog.String("path", ref.Path()))
	return ref, nil
}

// Write stores m, merging into the existing document when m has a
// reference and creating a new one otherwise.
func (c *Collection[T, PT]) Write(ctx context.Context, m PT, opts ...WriteOption) (*Reference, error) {
	meta := m.ModelMeta()

	data, err := encodeModel(m)
	if err != nil {
		return nil, err
	}

	ref := meta.Ref
	if ref == nil {
		if meta.CreatedAt != nil || meta.UpdatedAt != nil {
			return nil, goerr.Wrap(ErrInvalidTimestamp, "timestamps must be empty on create",
				goerr.V("collection", m.CollectionName()))
		}
		if ref, err = c.newReference(m, opts); err != nil {
			return nil, err
		}
		data[FieldCreatedAt] = interfaces.ServerTimestamp
	} else {
		delete(data, FieldCreatedAt)
	}
	data[FieldUpdatedAt] = interfaces.ServerTimestamp

	if err := c.client.backend.Set(ctx, ref, data, true); err != nil {
		return nil, goerr.Wrap(err, "failed to write document", goerr.V("path", ref.Path()))
	}

	meta.Ref = ref
	c.client.logger.Debug("Document written", slog.String("path", ref.Path()))
	return ref, nil
}

// Update merges m into its stored document. m must have been read from the
// database, so that both its reference and creation time are set.
func (c *Collection[T, PT]) Update(ctx context.Context, m PT) error {
	meta := m.ModelMeta()
	if meta.Ref == nil {
		return goerr.Wrap(ErrNoReference, "cannot update a model that was never stored",
			goerr.V("collection", m.CollectionName()))
	}
	if meta.CreatedAt == nil {
		return goerr.Wrap(ErrInvalidTimestamp, "creation time is missing", goerr.V("path", meta.Ref.Path()))
	}

	data, err := encodeModel(m)
	if err != nil {
		return err
	}
	delete(data, FieldCreatedAt)
	data[FieldUpdatedAt] = interfaces.ServerTimestamp

	if err := c.client.backend.Set(ctx, meta.Ref, data, true); err != nil {
		return goerr.Wrap(err, "failed to update document", goerr.V("path", meta.Ref.Path()))
	}

	c.client.logger.Debug("Document updated", slog.String("path", meta.Ref.Path()))
	return nil
}

// Get reads the document with id. One-shot reads are never filtered by
// snapshot metadata; ServerOnly asks the backend to bypass its cache.
func (c *Collection[T, PT]) Get(ctx context.Context, id string, opts ...QueryOption) (PT, error) {
	cfg := newQueryConfig(opts)

	ref, err := c.docRef(id)
	if err != nil {
		return nil, err
	}

	snap, err := c.client.backend.Get(ctx, ref, cfg.source())
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get document", goerr.V("path", ref.Path()))
	}
	if !snap.Exists {
		return nil, goerr.Wrap(ErrNotFound, "document does not exist", goerr.V("path", ref.Path()))
	}
	return c.decode(snap)
}

func (c *Collection[T, PT]) docRef(id string) (*Reference, error) {
	if id == "" {
		return nil, goerr.Wrap(ErrNoReference, "document id is required")
	}
	col, err := c.collectionRef(nil)
	if err != nil {
		return nil, err
	}
	return col.Doc(id), nil
}

// query builds the backend query for cfg with its listener key and scope.
func (c *Collection[T, PT]) query(cfg *queryConfig) (interfaces.Query, string, string, error) {
	if cfg.group {
		name := c.groupName()
		q := BuildQuery(c.client.backend.CollectionGroup(name), cfg.filters, cfg.orders, cfg.limit)
		return q, QueryKey(name, cfg.filters, cfg.orders, cfg.limit, true), groupScope(name), nil
	}

	col, err := c.collectionRef(nil)
	if err != nil {
		return nil, "", "", err
	}
	q := BuildQuery(c.client.backend.Collection(col), cfg.filters, cfg.orders, cfg.limit)
	return q, QueryKey(col.Path(), cfg.filters, cfg.orders, cfg.limit, false), col.Path(), nil
}

// List runs a query once. Documents that cannot be decoded are left out of
// the result instead of failing the call.
func (c *Collection[T, PT]) List(ctx context.Context, opts ...QueryOption) ([]PT, error) {
	cfg := newQueryConfig(opts)

	q, key, _, err := c.query(cfg)
	if err != nil {
		return nil, err
	}

	snap, err := q.Documents(ctx, cfg.source())
	if err != nil {
		return nil, goerr.Wrap(err, "failed to run query", goerr.V("query", key))
	}
	return c.decodeAll(snap), nil
}

// Delete removes the stored document of m.
func (c *Collection[T, PT]) Delete(ctx context.Context, m PT) error {
	ref := m.ModelMeta().Ref
	if ref == nil {
		return goerr.Wrap(ErrNoReference, "cannot delete a model that was never stored",
			goerr.V("collection", m.CollectionName()))
	}

	if err := c.client.backend.Delete(ctx, ref); err != nil {
		return goerr.Wrap(err, "failed to delete document", goerr.V("path", ref.Path()))
	}

	c.client.logger.Debug("Document deleted", slog.String("path", ref.Path()))
	return nil
}

// suppressed reports whether a listener skips a snapshot with md. Snapshots
// carrying uncommitted local writes are always skipped; cached ones only
// with ServerOnly.
func (cfg *queryConfig) suppressed(md interfaces.Metadata) bool {
	return md.HasPendingWrites || (md.FromCache && !cfg.includeCache)
}

// Listen streams the document with id. Listening again on the same document
// ends the previous stream. The stream fails with ErrNotFound when the
// document does not exist or is deleted.
func (c *Collection[T, PT]) Listen(ctx context.Context, id string, opts ...QueryOption) (*Stream[PT], error) {
	cfg := newQueryConfig(opts)

	ref, err := c.docRef(id)
	if err != nil {
		return nil, err
	}
	key := DocumentKey(ref)
	s := newStream[PT](key)
	snapshots := c.client.metrics.snapshots

	install := func(release func()) (interfaces.ListenerHandle, error) {
		s.setRelease(release)
		return c.client.backend.ListenDocument(ctx, ref, func(snap *interfaces.Snapshot, err error) {
			if err != nil {
				snapshots.WithLabelValues(kindDocument, outcomeFailed).Inc()
				endStream(ctx, s, err, key)
				return
			}
			if cfg.suppressed(snap.Metadata) {
				snapshots.WithLabelValues(kindDocument, outcomeSuppressed).Inc()
				return
			}
			if !snap.Exists {
				snapshots.WithLabelValues(kindDocument, outcomeFailed).Inc()
				s.fail(goerr.Wrap(ErrNotFound, "listened document does not exist", goerr.V("path", ref.Path())))
				return
			}

			m, err := c.decode(snap)
			if err != nil {
				snapshots.WithLabelValues(kindDocument, outcomeFailed).Inc()
				s.fail(err)
				return
			}
			snapshots.WithLabelValues(kindDocument, outcomeDelivered).Inc()
			s.push(m)
		})
	}

	if err := c.client.registry.Register(key, ref.Parent.Path(), install, s.evict); err != nil {
		return nil, goerr.Wrap(err, "failed to listen document", goerr.V("key", key))
	}
	c.client.logger.Debug("Listening document", slog.String("key", key))
	return s, nil
}

// ListenQuery streams the full result of a query each time it changes.
// Listening again with an equivalent query ends the previous stream.
func (c *Collection[T, PT]) ListenQuery(ctx context.Context, opts ...QueryOption) (*Stream[[]PT], error) {
	cfg := newQueryConfig(opts)

	q, key, scope, err := c.query(cfg)
	if err != nil {
		return nil, err
	}
	s := newStream[[]PT](key)
	snapshots := c.client.metrics.snapshots

	install := func(release func()) (interfaces.ListenerHandle, error) {
		s.setRelease(release)
		return c.client.backend.ListenQuery(ctx, q, func(snap *interfaces.QuerySnapshot, err error) {
			if err != nil {
				snapshots.WithLabelValues(kindQuery, outcomeFailed).Inc()
				endStream(ctx, s, err, key)
				return
			}
			if cfg.suppressed(snap.Metadata) {
				snapshots.WithLabelValues(kindQuery, outcomeSuppressed).Inc()
				return
			}
			snapshots.WithLabelValues(kindQuery, outcomeDelivered).Inc()
			s.push(c.decodeAll(snap))
		})
	}

	if err := c.client.registry.Register(key, scope, install, s.evict); err != nil {
		return nil, goerr.Wrap(err, "failed to listen query", goerr.V("key", key))
	}
	c.client.logger.Debug("Listening query", slog.String("key", key))
	return s, nil
}

// endStream ends s after a listener error. Any error reported once the
// listen context is done is a clean end: Firestore reports cancellation as
// a Canceled status that does not unwrap to ctx.Err().
func endStream[V any](ctx context.Context, s *Stream[V], err error, key string) {
	if ctx.Err() != nil {
		s.fail(nil)
		return
	}
	s.fail(goerr.Wrap(err, "listener failed", goerr.V("key", key)))
}

// StopListening stops every listener opened through handles on the same
// collection, including collection group listeners on its name. It returns
// how many were stopped.
func (c *Collection[T, PT]) StopListening() int {
	n := c.client.registry.StopScope(groupScope(c.groupName()))
	if col, err := c.collectionRef(nil); err == nil {
		n += c.client.registry.StopScope(col.Path())
	}
	return n
}

// StopListeningDocument stops the listener on the document with id.
func (c *Collection[T, PT]) StopListeningDocument(id string) bool {
	ref, err := c.docRef(id)
	if err != nil {
		return false
	}
	return c.client.StopListening(DocumentKey(ref))
}

// IndexFor returns the composite index a List or ListenQuery with opts
// needs, and false if none is required.
func (c *Collection[T, PT]) IndexFor(opts ...QueryOption) (Index, bool) {
	cfg := newQueryConfig(opts)
	return RequiredIndex(cfg.filters, cfg.orders, cfg.group)
}
