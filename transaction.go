package firemodel

import (
	"context"
	"log/slog"

	"github.com/m-mizutani/firemodel/pkg/domain/interfaces"
	"github.com/m-mizutani/goerr/v2"
)

// WriteTransaction atomically merges newValue into one field of the stored
// document of m. field selects the field on a model; resolve receives the
// stored value and newValue and returns the value to write. The rest of m
// is written as is. The backend retries the function when a concurrent
// write conflicts, so resolve may be called more than once.
//
// On success the field of m holds the written value.
//
//	err := firemodel.WriteTransaction(ctx, counters, c,
//	    func(c *Counter) *int64 { return &c.Count },
//	    1, func(old, n int64) int64 { return old + n })
func WriteTransaction[T any, PT interface {
	*T
	Model
}, V any](ctx context.Context, col *Collection[T, PT], m PT, field func(PT) *V, newValue V, resolve func(stored, newValue V) V) error {
	ref := m.ModelMeta().Ref
	if ref == nil {
		return goerr.Wrap(ErrNoReference, "cannot run a transaction on a model that was never stored",
			goerr.V("collection", m.CollectionName()))
	}

	var merged V
	err := col.client.backend.RunTransaction(ctx, func(ctx context.Context, tx interfaces.Transaction) error {
		snap, err := tx.Get(ref)
		if err != nil {
			return goerr.Wrap(err, "failed to read document in transaction", goerr.V("path", ref.Path()))
		}
		if !snap.Exists {
			return goerr.Wrap(ErrNotFound, "document does not exist", goerr.V("path", ref.Path()))
		}

		stored, err := col.decode(snap)
		if err != nil {
			return err
		}
		merged = resolve(*field(stored), newValue)

		next := *m
		nm := PT(&next)
		*field(nm) = merged

		data, err := encodeModel(nm)
		if err != nil {
			return err
		}
		delete(data, FieldCreatedAt)
		data[FieldUpdatedAt] = interfaces.ServerTimestamp

		return tx.Set(ref, data, true)
	})
	if err != nil {
		return goerr.Wrap(err, "transaction failed", goerr.V("path", ref.Path()))
	}

	*field(m) = merged
	col.client.logger.Debug("Transaction committed", slog.String("path", ref.Path()))
	return nil
}
