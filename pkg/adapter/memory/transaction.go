package memory

import (
	"context"

	"github.com/m-mizutani/firemodel/pkg/domain/interfaces"
	"github.com/m-mizutani/firemodel/pkg/domain/model"
	"github.com/m-mizutani/goerr/v2"
)

type write struct {
	ref   *model.Reference
	data  map[string]any
	merge bool
}

type transaction struct {
	backend *Backend
	writes  []write
}

var _ interfaces.Transaction = (*transaction)(nil)

// RunTransaction runs fn with exclusive access to the store. Writes are
// buffered and applied together only if fn returns nil. Transactions never
// conflict, so fn runs exactly once.
func (b *Backend) RunTransaction(ctx context.Context, fn func(ctx context.Context, tx interfaces.Transaction) error) error {
	b.txMu.Lock()
	defer b.txMu.Unlock()

	if err := ctx.Err(); err != nil {
		return goerr.Wrap(err, "context done before transaction")
	}

	tx := &transaction{backend: b}
	if err := fn(ctx, tx); err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return ErrClosed
	}
	for _, w := range tx.writes {
		b.setLocked(w.ref, w.data, w.merge)
	}
	return nil
}

func (tx *transaction) Get(ref *model.Reference) (*interfaces.Snapshot, error) {
	if len(tx.writes) > 0 {
		return nil, goerr.New("transaction reads must come before writes", goerr.V("path", ref.Path()))
	}

	tx.backend.mu.Lock()
	defer tx.backend.mu.Unlock()
	if tx.backend.closed {
		return nil, ErrClosed
	}
	return tx.backend.snapshotLocked(ref, interfaces.Metadata{}), nil
}

func (tx *transaction) Set(ref *model.Reference, data map[string]any, merge bool) error {
	tx.writes = append(tx.writes, write{ref: ref, data: cloneMap(data), merge: merge})
	return nil
}
