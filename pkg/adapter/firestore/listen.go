package firestore

import (
	"context"
	"sync/atomic"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/firemodel/pkg/domain/interfaces"
	"github.com/m-mizutani/firemodel/pkg/domain/model"
	"github.com/m-mizutani/goerr/v2"
)

// handle cancels a listener goroutine. Remove does not wait for the goroutine.
type handle struct {
	cancel  context.CancelFunc
	removed atomic.Bool
}

func (h *handle) Remove() {
	h.removed.Store(true)
	h.cancel()
}

// ListenDocument starts a snapshot listener on ref. Snapshots are delivered
// on a dedicated goroutine until Remove is called, ctx is done or the
// stream fails; a failure is delivered once as an error.
func (c *Client) ListenDocument(ctx context.Context, ref *model.Reference, fn interfaces.DocumentListener) (interfaces.ListenerHandle, error) {
	dr, err := c.doc(ref)
	if err != nil {
		return nil, err
	}

	lctx, cancel := context.WithCancel(ctx)
	h := &handle{cancel: cancel}

	go func() {
		defer cancel()
		it := dr.Snapshots(lctx)
		defer it.Stop()

		for {
			snap, err := it.Next()
			if h.removed.Load() {
				return
			}
			if err != nil {
				fn(nil, goerr.Wrap(err, "document listener failed", goerr.V("path", ref.Path())))
				return
			}

			out := toSnapshot(snap)
			if out.Ref == nil {
				out.Ref = ref
			}
			fn(out, nil)
		}
	}()

	return h, nil
}

// ListenQuery starts a snapshot listener on q, which must come from this client.
func (c *Client) ListenQuery(ctx context.Context, q interfaces.Query, fn interfaces.QueryListener) (interfaces.ListenerHandle, error) {
	fq, ok := q.(*query)
	if !ok {
		return nil, goerr.New("query does not belong to the Firestore client", goerr.V("type", q))
	}

	lctx, cancel := context.WithCancel(ctx)
	h := &handle{cancel: cancel}

	go func() {
		defer cancel()
		it := fq.q.Snapshots(lctx)
		defer it.Stop()

		for {
			qs, err := it.Next()
			if h.removed.Load() {
				return
			}
			if err != nil {
				fn(nil, goerr.Wrap(err, "query listener failed", goerr.V("collection", fq.desc)))
				return
			}

			docs, err := readAll(qs)
			if err != nil {
				fn(nil, goerr.Wrap(err, "failed to read query snapshot", goerr.V("collection", fq.desc)))
				return
			}
			fn(toSnapshots(docs), nil)
		}
	}()

	return h, nil
}

func readAll(qs *firestore.QuerySnapshot) ([]*firestore.DocumentSnapshot, error) {
	return qs.Documents.GetAll()
}
