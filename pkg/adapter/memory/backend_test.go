package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/m-mizutani/firemodel/pkg/adapter/memory"
	"github.com/m-mizutani/firemodel/pkg/domain/interfaces"
	"github.com/m-mizutani/firemodel/pkg/domain/model"
	"github.com/m-mizutani/gt"
)

var fixedNow = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func newBackend(opts ...memory.Option) *memory.Backend {
	return memory.New(append([]memory.Option{memory.WithClock(func() time.Time { return fixedNow })}, opts...)...)
}

func TestSetAndGet(t *testing.T) {
	ctx := context.Background()
	b := newBackend()
	ref := model.NewCollectionRef("users").Doc("u1")

	t.Run("missing document", func(t *testing.T) {
		snap, err := b.Get(ctx, ref, interfaces.SourceDefault)
		gt.NoError(t, err)
		gt.False(t, snap.Exists)
	})

	t.Run("server timestamp is resolved", func(t *testing.T) {
		gt.NoError(t, b.Set(ctx, ref, map[string]any{
			"name":      "alice",
			"age":       int64(20),
			"createdAt": interfaces.ServerTimestamp,
			"profile":   map[string]any{"city": "Tokyo", "zip": "100"},
		}, false))

		snap, err := b.Get(ctx, ref, interfaces.SourceServer)
		gt.NoError(t, err)
		gt.True(t, snap.Exists)
		gt.Equal(t, snap.Data["createdAt"], any(fixedNow))
		gt.Equal(t, snap.CreateTime, fixedNow)
	})

	t.Run("merge keeps untouched fields", func(t *testing.T) {
		gt.NoError(t, b.Set(ctx, ref, map[string]any{
			"age":     int64(21),
			"profile": map[string]any{"city": "Osaka"},
		}, true))

		snap, err := b.Get(ctx, ref, interfaces.SourceDefault)
		gt.NoError(t, err)
		gt.Equal(t, snap.Data["name"], any("alice"))
		gt.Equal(t, snap.Data["age"], any(int64(21)))
		gt.Equal(t, snap.Data["profile"], any(map[string]any{"city": "Osaka", "zip": "100"}))
	})

	t.Run("set without merge replaces", func(t *testing.T) {
		gt.NoError(t, b.Set(ctx, ref, map[string]any{"name": "bob"}, false))
		snap, err := b.Get(ctx, ref, interfaces.SourceDefault)
		gt.NoError(t, err)
		gt.Equal(t, len(snap.Data), 1)
	})

	t.Run("returned data is a copy", func(t *testing.T) {
		snap, err := b.Get(ctx, ref, interfaces.SourceDefault)
		gt.NoError(t, err)
		snap.Data["name"] = "mallory"

		again, err := b.Get(ctx, ref, interfaces.SourceDefault)
		gt.NoError(t, err)
		gt.Equal(t, again.Data["name"], any("bob"))
	})

	t.Run("delete", func(t *testing.T) {
		gt.NoError(t, b.Delete(ctx, ref))
		gt.NoError(t, b.Delete(ctx, ref))
		snap, err := b.Get(ctx, ref, interfaces.SourceDefault)
		gt.NoError(t, err)
		gt.False(t, snap.Exists)
	})

	t.Run("closed backend", func(t *testing.T) {
		gt.NoError(t, b.Close())
		_, err := b.Get(ctx, ref, interfaces.SourceDefault)
		gt.True(t, errors.Is(err, memory.ErrClosed))
	})
}

func seed(t *testing.T, b *memory.Backend) {
	ctx := context.Background()
	users := model.NewCollectionRef("users")
	for id, data := range map[string]map[string]any{
		"a": {"name": "a", "age": int64(10), "team": "red"},
		"b": {"name": "b", "age": int64(20), "team": "blue"},
		"c": {"name": "c", "age": int64(30), "team": "red"},
		"d": {"name": "d", "team": "green"},
	} {
		gt.NoError(t, b.Set(ctx, users.Doc(id), data, false))
	}

	posts := users.Doc("a").Collection("posts")
	gt.NoError(t, b.Set(ctx, posts.Doc("p1"), map[string]any{"score": 1.5}, false))
	gt.NoError(t, b.Set(ctx, users.Doc("b").Collection("posts").Doc("p2"), map[string]any{"score": int64(3)}, false))
}

func ids(snap *interfaces.QuerySnapshot) []string {
	var out []string
	for _, d := range snap.Documents {
		out = append(out, d.Ref.ID)
	}
	return out
}

func TestQuery(t *testing.T) {
	ctx := context.Background()
	b := newBackend()
	seed(t, b)
	users := b.Collection(model.NewCollectionRef("users"))

	testCases := []struct {
		name  string
		query interfaces.Query
		want  []string
	}{
		{"all documents in path order", users, []string{"a", "b", "c", "d"}},
		{"equality", users.Where("team", interfaces.OpEqual, "red"), []string{"a", "c"}},
		{"range excludes missing fields", users.Where("age", interfaces.OpGreaterThan, int64(5)).Where("age", interfaces.OpLessThan, int64(25)), []string{"a", "b"}},
		{"in", users.Where("team", interfaces.OpIn, []any{"blue", "green"}), []string{"b", "d"}},
		{"order desc", users.OrderBy("age", interfaces.Desc), []string{"c", "b", "a"}},
		{"limit", users.OrderBy("name", interfaces.Asc).Limit(2), []string{"a", "b"}},
		{"numbers compare across int and float", users.Where("age", interfaces.OpGreaterThan, 15.5), []string{"b", "c"}},
		{"type mismatch never matches", users.Where("age", interfaces.OpGreaterThan, "10"), nil},
		{"collection group", b.CollectionGroup("posts").OrderBy("score", interfaces.Desc), []string{"p2", "p1"}},
		{"sub-collection", b.Collection(model.NewCollectionRef("users").Doc("a").Collection("posts")), []string{"p1"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			snap, err := tc.query.Documents(ctx, interfaces.SourceDefault)
			gt.NoError(t, err)
			gt.Equal(t, ids(snap), tc.want)
		})
	}

	t.Run("refinement does not mutate the base query", func(t *testing.T) {
		_ = users.Where("team", interfaces.OpEqual, "red")
		snap, err := users.Documents(ctx, interfaces.SourceDefault)
		gt.NoError(t, err)
		gt.Equal(t, len(snap.Documents), 4)
	})
}

func receive[T any](t *testing.T, ch <-chan T) T {
	t.Helper()
	select {
	case v := <-ch:
		return v
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for snapshot")
	}
	var zero T
	return zero
}

func TestListenDocument(t *testing.T) {
	ctx := context.Background()
	b := newBackend()
	ref := model.NewCollectionRef("users").Doc("u1")

	ch := make(chan *interfaces.Snapshot, 16)
	h, err := b.ListenDocument(ctx, ref, func(snap *interfaces.Snapshot, err error) {
		gt.NoError(t, err)
		ch <- snap
	})
	gt.NoError(t, err)

	gt.False(t, receive(t, ch).Exists)

	gt.NoError(t, b.Set(ctx, ref, map[string]any{"name": "alice"}, false))
	snap := receive(t, ch)
	gt.True(t, snap.Exists)
	gt.Equal(t, snap.Data["name"], any("alice"))

	// writes to other documents are not delivered
	gt.NoError(t, b.Set(ctx, model.NewCollectionRef("users").Doc("u2"), map[string]any{}, false))

	gt.NoError(t, b.Delete(ctx, ref))
	gt.False(t, receive(t, ch).Exists)

	h.Remove()
	h.Remove()
	gt.Equal(t, b.ListenerCount(), 0)

	gt.NoError(t, b.Set(ctx, ref, map[string]any{"name": "late"}, false))
	select {
	case <-ch:
		t.Fatal("snapshot delivered after Remove")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestListenQuery(t *testing.T) {
	ctx := context.Background()
	b := newBackend()
	users := model.NewCollectionRef("users")
	q := b.Collection(users).Where("team", interfaces.OpEqual, "red")

	ch := make(chan *interfaces.QuerySnapshot, 16)
	h, err := b.ListenQuery(ctx, q, func(snap *interfaces.QuerySnapshot, err error) {
		gt.NoError(t, err)
		ch <- snap
	})
	gt.NoError(t, err)
	defer h.Remove()

	gt.Equal(t, len(receive(t, ch).Documents), 0)

	gt.NoError(t, b.Set(ctx, users.Doc("a"), map[string]any{"team": "red"}, false))
	gt.Equal(t, ids(receive(t, ch)), []string{"a"})

	// a non matching write is not delivered
	gt.NoError(t, b.Set(ctx, users.Doc("b"), map[string]any{"team": "blue"}, false))

	// leaving the result set is delivered
	gt.NoError(t, b.Set(ctx, users.Doc("a"), map[string]any{"team": "blue"}, false))
	gt.Equal(t, len(receive(t, ch).Documents), 0)
}

func TestLocalEchoes(t *testing.T) {
	ctx := context.Background()
	b := newBackend(memory.WithLocalEchoes())
	ref := model.NewCollectionRef("users").Doc("u1")

	ch := make(chan *interfaces.Snapshot, 16)
	h, err := b.ListenDocument(ctx, ref, func(snap *interfaces.Snapshot, err error) {
		ch <- snap
	})
	gt.NoError(t, err)
	defer h.Remove()

	gt.True(t, receive(t, ch).Metadata.FromCache)
	gt.False(t, receive(t, ch).Metadata.Stale())

	gt.NoError(t, b.Set(ctx, ref, map[string]any{"v": int64(1)}, false))
	gt.True(t, receive(t, ch).Metadata.HasPendingWrites)
	gt.False(t, receive(t, ch).Metadata.Stale())
}

func TestListenerErrors(t *testing.T) {
	t.Run("injected failure", func(t *testing.T) {
		b := newBackend()
		errCh := make(chan error, 1)
		_, err := b.ListenDocument(context.Background(), model.NewCollectionRef("c").Doc("d"), func(snap *interfaces.Snapshot, err error) {
			if err != nil {
				errCh <- err
			}
		})
		gt.NoError(t, err)

		boom := errors.New("permission denied")
		gt.Equal(t, b.FailListeners(boom), 1)
		gt.True(t, errors.Is(receive(t, errCh), boom))
		gt.Equal(t, b.ListenerCount(), 0)
	})

	t.Run("context cancellation", func(t *testing.T) {
		b := newBackend()
		ctx, cancel := context.WithCancel(context.Background())
		errCh := make(chan error, 1)
		_, err := b.ListenDocument(ctx, model.NewCollectionRef("c").Doc("d"), func(snap *interfaces.Snapshot, err error) {
			if err != nil {
				errCh <- err
			}
		})
		gt.NoError(t, err)

		cancel()
		gt.True(t, errors.Is(receive(t, errCh), context.Canceled))
	})
}

func TestRunTransaction(t *testing.T) {
	ctx := context.Background()
	b := newBackend()
	ref := model.NewCollectionRef("counters").Doc("c1")
	gt.NoError(t, b.Set(ctx, ref, map[string]any{"n": int64(1)}, false))

	t.Run("commit", func(t *testing.T) {
		err := b.RunTransaction(ctx, func(ctx context.Context, tx interfaces.Transaction) error {
			snap, err := tx.Get(ref)
			if err != nil {
				return err
			}
			return tx.Set(ref, map[string]any{"n": snap.Data["n"].(int64) + 1}, true)
		})
		gt.NoError(t, err)

		snap, err := b.Get(ctx, ref, interfaces.SourceDefault)
		gt.NoError(t, err)
		gt.Equal(t, snap.Data["n"], any(int64(2)))
	})

	t.Run("rollback", func(t *testing.T) {
		boom := errors.New("abort")
		err := b.RunTransaction(ctx, func(ctx context.Context, tx interfaces.Transaction) error {
			gt.NoError(t, tx.Set(ref, map[string]any{"n": int64(100)}, true))
			return boom
		})
		gt.True(t, errors.Is(err, boom))

		snap, err := b.Get(ctx, ref, interfaces.SourceDefault)
		gt.NoError(t, err)
		gt.Equal(t, snap.Data["n"], any(int64(2)))
	})

	t.Run("read after write is rejected", func(t *testing.T) {
		err := b.RunTransaction(ctx, func(ctx context.Context, tx interfaces.Transaction) error {
			gt.NoError(t, tx.Set(ref, map[string]any{}, true))
			_, err := tx.Get(ref)
			return err
		})
		gt.Error(t, err)
	})
}
