// Package memory is an in-process implementation of interfaces.Backend.
//
// It keeps documents in a map, evaluates queries with Firestore ordering
// rules and delivers snapshots to listeners on one goroutine per listener.
// It is meant for tests and local tooling; nothing is persisted.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/m-mizutani/firemodel/pkg/domain/interfaces"
	"github.com/m-mizutani/firemodel/pkg/domain/model"
	"github.com/m-mizutani/goerr/v2"
)

// ErrClosed is returned by every operation after Close.
var ErrClosed = goerr.New("memory backend is closed")

type document struct {
	ref        *model.Reference
	data       map[string]any
	createTime time.Time
	updateTime time.Time
}

// Backend is an in-memory document store.
type Backend struct {
	mu        sync.Mutex
	docs      map[string]*document
	listeners map[uint64]*listener
	nextID    uint64
	closed    bool

	// txMu serialises transactions.
	txMu sync.Mutex

	clock       func() time.Time
	newID       func() string
	localEchoes bool
}

var _ interfaces.Backend = (*Backend)(nil)

// Option configures a Backend.
type Option func(*Backend)

// WithClock sets the clock used for server timestamps and document times.
func WithClock(clock func() time.Time) Option {
	return func(b *Backend) {
		b.clock = clock
	}
}

// WithIDGenerator replaces the random document id generator.
func WithIDGenerator(gen func() string) Option {
	return func(b *Backend) {
		b.newID = gen
	}
}

// WithLocalEchoes makes listeners behave like a client SDK with latency
// compensation: every change is first delivered as a snapshot with pending
// writes, and the first snapshot of a listener is served from cache before
// the server confirmed one.
func WithLocalEchoes() Option {
	return func(b *Backend) {
		b.localEchoes = true
	}
}

// New creates an empty backend.
func New(opts ...Option) *Backend {
	b := &Backend{
		docs:      make(map[string]*document),
		listeners: make(map[uint64]*listener),
		clock:     time.Now,
		newID:     uuid.NewString,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// NewDocumentID returns a random id. The collection is not consulted.
func (b *Backend) NewDocumentID(_ *model.CollectionRef) string {
	return b.newID()
}

// Get returns the document at ref. A missing document is a snapshot with Exists false.
func (b *Backend) Get(ctx context.Context, ref *model.Reference, _ interfaces.Source) (*interfaces.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, goerr.Wrap(err, "context done before get")
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return nil, ErrClosed
	}

	return b.snapshotLocked(ref, interfaces.Metadata{}), nil
}

// Set writes data to ref. With merge, top level and nested map fields are
// merged into the existing document; otherwise the document is replaced.
func (b *Backend) Set(ctx context.Context, ref *model.Reference, data map[string]any, merge bool) error {
	if err := ctx.Err(); err != nil {
		return goerr.Wrap(err, "context done before set")
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return ErrClosed
	}

	b.setLocked(ref, data, merge)
	return nil
}

// Delete removes the document at ref. Deleting a missing document is not an error.
func (b *Backend) Delete(ctx context.Context, ref *model.Reference) error {
	if err := ctx.Err(); err != nil {
		return goerr.Wrap(err, "context done before delete")
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return ErrClosed
	}

	path := ref.Path()
	old, ok := b.docs[path]
	if !ok {
		return nil
	}
	delete(b.docs, path)
	b.notifyLocked(ref, old, nil)
	return nil
}

// Collection returns a query over the documents directly in col.
func (b *Backend) Collection(col *model.CollectionRef) interfaces.Query {
	return &query{backend: b, collection: col.Path()}
}

// CollectionGroup returns a query over every collection named name.
func (b *Backend) CollectionGroup(name string) interfaces.Query {
	return &query{backend: b, collection: name, group: true}
}

// Close removes every listener and rejects further operations.
func (b *Backend) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.closed = true
	for id, l := range b.listeners {
		delete(b.listeners, id)
		l.stop()
	}
	return nil
}

// Len returns the number of stored documents.
func (b *Backend) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.docs)
}

// ListenerCount returns the number of active listeners.
func (b *Backend) ListenerCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.listeners)
}

func (b *Backend) setLocked(ref *model.Reference, data map[string]any, merge bool) {
	now := b.clock()
	resolved := resolveServerTimestamps(data, now)

	path := ref.Path()
	old := b.docs[path]

	doc := &document{ref: ref, createTime: now, updateTime: now}
	if old != nil {
		doc.createTime = old.createTime
		if merge {
			doc.data = cloneMap(old.data)
			mergeInto(doc.data, resolved)
		}
	}
	if doc.data == nil {
		doc.data = resolved
	}

	b.docs[path] = doc
	b.notifyLocked(ref, old, doc)
}

func (b *Backend) snapshotLocked(ref *model.Reference, md interfaces.Metadata) *interfaces.Snapshot {
	doc, ok := b.docs[ref.Path()]
	if !ok {
		return &interfaces.Snapshot{Ref: ref, Metadata: md}
	}
	return doc.snapshot(md)
}

func (d *document) snapshot(md interfaces.Metadata) *interfaces.Snapshot {
	return &interfaces.Snapshot{
		Ref:        d.ref,
		Exists:     true,
		Data:       cloneMap(d.data),
		CreateTime: d.createTime,
		UpdateTime: d.updateTime,
		Metadata:   md,
	}
}

func resolveServerTimestamps(data map[string]any, now time.Time) map[string]any {
	out := cloneMap(data)
	for k, v := range out {
		if v == interfaces.ServerTimestamp {
			out[k] = now
		}
	}
	return out
}

func mergeInto(dst, src map[string]any) {
	for k, v := range src {
		sub, ok := v.(map[string]any)
		if cur, isMap := dst[k].(map[string]any); ok && isMap {
			mergeInto(cur, sub)
			continue
		}
		dst[k] = cloneValue(v)
	}
}

func cloneMap(m map[string]any) map[string]any {
	if m == nil {
		return map[string]any{}
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch v := v.(type) {
	case map[string]any:
		return cloneMap(v)
	case []any:
		out := make([]any, len(v))
		for i := range v {
			out[i] = cloneValue(v[i])
		}
		return out
	case []byte:
		return append([]byte(nil), v...)
	}
	return v
}
