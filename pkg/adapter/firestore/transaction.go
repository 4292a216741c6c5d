package firestore

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/firemodel/pkg/domain/interfaces"
	"github.com/m-mizutani/firemodel/pkg/domain/model"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type transaction struct {
	client *Client
	tx     *firestore.Transaction
}

var _ interfaces.Transaction = (*transaction)(nil)

// RunTransaction runs fn in a Firestore transaction. The SDK retries fn on
// contention, so fn may run more than once.
func (c *Client) RunTransaction(ctx context.Context, fn func(ctx context.Context, tx interfaces.Transaction) error) error {
	err := c.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		return fn(ctx, &transaction{client: c, tx: tx})
	})
	if err != nil {
		return goerr.Wrap(err, "transaction failed")
	}
	return nil
}

func (t *transaction) Get(ref *model.Reference) (*interfaces.Snapshot, error) {
	dr, err := t.client.doc(ref)
	if err != nil {
		return nil, err
	}

	snap, err := t.tx.Get(dr)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return &interfaces.Snapshot{Ref: ref}, nil
		}
		return nil, goerr.Wrap(err, "failed to get document in transaction", goerr.V("path", ref.Path()))
	}
	return toSnapshot(snap), nil
}

func (t *transaction) Set(ref *model.Reference, data map[string]any, merge bool) error {
	dr, err := t.client.doc(ref)
	if err != nil {
		return err
	}

	var opts []firestore.SetOption
	if merge {
		opts = append(opts, firestore.MergeAll)
	}
	if err := t.tx.Set(dr, t.client.toFirestoreData(data), opts...); err != nil {
		return goerr.Wrap(err, "failed to set document in transaction", goerr.V("path", ref.Path()))
	}
	return nil
}
