package memory

import (
	"context"
	"sync/atomic"

	"github.com/m-mizutani/firemodel/internal/queue"
	"github.com/m-mizutani/firemodel/pkg/domain/interfaces"
	"github.com/m-mizutani/firemodel/pkg/domain/model"
	"github.com/m-mizutani/goerr/v2"
)

type event struct {
	doc   *interfaces.Snapshot
	query *interfaces.QuerySnapshot
	err   error
}

type listener struct {
	id      uint64
	backend *Backend

	ref *model.Reference
	q   *query

	onDoc   interfaces.DocumentListener
	onQuery interfaces.QueryListener

	events  *queue.Queue[event]
	parent  context.Context
	ctx     context.Context
	cancel  context.CancelFunc
	removed atomic.Bool
}

var _ interfaces.ListenerHandle = (*listener)(nil)

// ListenDocument delivers the current state of ref and every later change.
func (b *Backend) ListenDocument(ctx context.Context, ref *model.Reference, fn interfaces.DocumentListener) (interfaces.ListenerHandle, error) {
	return b.listen(ctx, &listener{ref: ref, onDoc: fn})
}

// ListenQuery delivers the current result of q and a new result after
// every write that touches a document matching q before or after the write.
func (b *Backend) ListenQuery(ctx context.Context, q interfaces.Query, fn interfaces.QueryListener) (interfaces.ListenerHandle, error) {
	mq, ok := q.(*query)
	if !ok || mq.backend != b {
		return nil, goerr.New("query does not belong to this memory backend", goerr.V("type", q))
	}
	return b.listen(ctx, &listener{q: mq.clone(), onQuery: fn})
}

func (b *Backend) listen(ctx context.Context, l *listener) (interfaces.ListenerHandle, error) {
	if err := ctx.Err(); err != nil {
		return nil, goerr.Wrap(err, "context done before listen")
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return nil, ErrClosed
	}

	b.nextID++
	l.id = b.nextID
	l.backend = b
	l.events = queue.New[event]()
	l.parent = ctx
	l.ctx, l.cancel = context.WithCancel(ctx)
	b.listeners[l.id] = l

	if b.localEchoes {
		l.pushLocked(interfaces.Metadata{FromCache: true})
	}
	l.pushLocked(interfaces.Metadata{})

	go l.run()
	return l, nil
}

// Remove stops the listener. It does not wait for an in-flight callback.
func (l *listener) Remove() {
	l.backend.mu.Lock()
	delete(l.backend.listeners, l.id)
	l.backend.mu.Unlock()
	l.stop()
}

func (l *listener) stop() {
	l.removed.Store(true)
	l.cancel()
	l.events.Close()
}

func (l *listener) run() {
	defer l.cancel()
	for {
		ev, err := l.events.Pop(l.ctx)
		if err != nil {
			if !l.removed.Load() && l.parent.Err() != nil {
				l.deliver(event{err: goerr.Wrap(l.parent.Err(), "listener context done")})
				l.Remove()
			}
			return
		}
		if l.removed.Load() && ev.err == nil {
			continue
		}
		l.deliver(ev)
	}
}

func (l *listener) deliver(ev event) {
	if l.onDoc != nil {
		if ev.err != nil {
			l.onDoc(nil, ev.err)
		} else {
			l.onDoc(ev.doc, nil)
		}
		return
	}
	if ev.err != nil {
		l.onQuery(nil, ev.err)
	} else {
		l.onQuery(ev.query, nil)
	}
}

// pushLocked queues a snapshot of the listener's current target.
func (l *listener) pushLocked(md interfaces.Metadata) {
	if l.ref != nil {
		l.events.Push(event{doc: l.backend.snapshotLocked(l.ref, md)})
		return
	}
	l.events.Push(event{query: l.q.runLocked(md)})
}

// notifyLocked fans a write of ref out to interested listeners. old or cur
// is nil when the document did not exist before or after the write.
func (b *Backend) notifyLocked(ref *model.Reference, old, cur *document) {
	path := ref.Path()
	for _, l := range b.listeners {
		if l.ref != nil {
			if l.ref.Path() != path {
				continue
			}
		} else if !l.q.matches(old) && !l.q.matches(cur) {
			continue
		}

		if b.localEchoes {
			l.pushLocked(interfaces.Metadata{HasPendingWrites: true})
		}
		l.pushLocked(interfaces.Metadata{})
	}
}

// FailListeners delivers err to every active listener and removes them, the
// way a backend reports a lost permission or a broken stream.
func (b *Backend) FailListeners(err error) int {
	b.mu.Lock()
	defer b.mu.Unlock()

	n := 0
	for id, l := range b.listeners {
		delete(b.listeners, id)
		l.events.Push(event{err: err})
		l.events.Close()
		n++
	}
	return n
}
