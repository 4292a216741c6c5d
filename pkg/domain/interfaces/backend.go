package interfaces

import (
	"context"
	"time"

	"github.com/m-mizutani/firemodel/pkg/domain/model"
)

//go:generate moq -out mock/backend.go -pkg mock . Backend Query ListenerHandle Transaction

// Source selects where a one-shot read may be served from.
type Source int

const (
	// SourceDefault lets the backend answer from a local cache when it has one.
	SourceDefault Source = iota
	// SourceServer requires a server round trip.
	SourceServer
)

// Operator is a query comparison operator.
type Operator string

const (
	OpEqual       Operator = "=="
	OpGreaterThan Operator = ">"
	OpLessThan    Operator = "<"
	OpIn          Operator = "in"
)

// Direction is an order-by direction.
type Direction int

const (
	Asc Direction = iota + 1
	Desc
)

func (d Direction) String() string {
	if d == Desc {
		return "desc"
	}
	return "asc"
}

type serverTimestamp struct{}

// ServerTimestamp is a document value that the backend replaces with its
// commit time. It is only honoured on top level fields.
var ServerTimestamp any = serverTimestamp{}

// Metadata describes where a snapshot came from.
type Metadata struct {
	// FromCache is true when the snapshot was not confirmed by the server.
	FromCache bool
	// HasPendingWrites is true when the snapshot includes local writes that
	// are not committed yet.
	HasPendingWrites bool
}

// Stale reports whether the snapshot is not yet confirmed by the server.
func (m Metadata) Stale() bool {
	return m.FromCache || m.HasPendingWrites
}

// Snapshot is a point in time read of a single document.
type Snapshot struct {
	Ref        *model.Reference
	Exists     bool
	Data       map[string]any
	CreateTime time.Time
	UpdateTime time.Time
	Metadata   Metadata
}

// QuerySnapshot is a point in time read of a query result.
type QuerySnapshot struct {
	Documents []*Snapshot
	Metadata  Metadata
}

// ListenerHandle cancels a snapshot listener. Remove must not wait for an
// in-flight callback to return.
type ListenerHandle interface {
	Remove()
}

// DocumentListener receives document snapshots. Exactly one of snap and err is non-nil.
type DocumentListener func(snap *Snapshot, err error)

// QueryListener receives query snapshots. Exactly one of snap and err is non-nil.
type QueryListener func(snap *QuerySnapshot, err error)

// Query is an immutable query under construction. Every refinement returns a new Query.
type Query interface {
	Where(path string, op Operator, value any) Query
	OrderBy(path string, dir Direction) Query
	Limit(n int) Query
	Documents(ctx context.Context, src Source) (*QuerySnapshot, error)
}

// Transaction is the read-modify-write scope handed to RunTransaction callbacks.
type Transaction interface {
	Get(ref *model.Reference) (*Snapshot, error)
	Set(ref *model.Reference, data map[string]any, merge bool) error
}

// Backend is the document database surface the client depends on.
type Backend interface {
	NewDocumentID(col *model.CollectionRef) string

	Get(ctx context.Context, ref *model.Reference, src Source) (*Snapshot, error)
	Set(ctx context.Context, ref *model.Reference, data map[string]any, merge bool) error
	Delete(ctx context.Context, ref *model.Reference) error

	Collection(col *model.CollectionRef) Query
	CollectionGroup(name string) Query

	// ListenDocument and ListenQuery must deliver snapshots on a goroutine
	// other than the caller's.
	ListenDocument(ctx context.Context, ref *model.Reference, fn DocumentListener) (ListenerHandle, error)
	ListenQuery(ctx context.Context, q Query, fn QueryListener) (ListenerHandle, error)

	RunTransaction(ctx context.Context, fn func(ctx context.Context, tx Transaction) error) error

	Close() error
}
