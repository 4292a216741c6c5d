package firemodel_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/m-mizutani/firemodel"
	"github.com/m-mizutani/firemodel/pkg/adapter/memory"
	"github.com/m-mizutani/firemodel/pkg/domain/interfaces"
	"github.com/m-mizutani/firemodel/pkg/domain/interfaces/mock"
	"github.com/m-mizutani/firemodel/pkg/domain/model"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type Post struct {
	firemodel.Meta
	Text   string `firestore:"text"`
	Status string `firestore:"status,omitempty"`
	Likes  int64  `firestore:"likes,omitempty"`
}

func (*Post) CollectionName() string { return "posts" }

type Board struct {
	firemodel.Meta
	Name string `firestore:"name"`
}

func (*Board) CollectionName() string { return "boards" }

type Thread struct {
	firemodel.Meta
	Title string `firestore:"title"`
}

func (*Thread) CollectionName() string       { return "threads" }
func (*Thread) ParentModel() firemodel.Model { return &Board{} }

type Reply struct {
	firemodel.Meta
	Body string `firestore:"body"`
}

func (*Reply) CollectionName() string       { return "replies" }
func (*Reply) ParentModel() firemodel.Model { return &Thread{} }

var baseTime = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

// tickingClock advances one second on every call.
func tickingClock() func() time.Time {
	var mu sync.Mutex
	now := baseTime
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		now = now.Add(time.Second)
		return now
	}
}

func newTestClient(t *testing.T, opts ...memory.Option) (*firemodel.Client, *memory.Backend) {
	t.Helper()
	backend := memory.New(append([]memory.Option{memory.WithClock(tickingClock())}, opts...)...)
	client := firemodel.NewWithBackend(backend)
	t.Cleanup(func() { _ = client.Close() })
	return client, backend
}

func next[T any](t *testing.T, s *firemodel.Stream[T]) T {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	v, err := s.Next(ctx)
	gt.NoError(t, err)
	return v
}

func nextErr[T any](t *testing.T, s *firemodel.Stream[T]) error {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_, err := s.Next(ctx)
	gt.Error(t, err)
	return err
}

// expectIdle checks that nothing more is delivered for a short while.
func expectIdle[T any](t *testing.T, s *firemodel.Stream[T]) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err := s.Next(ctx)
	gt.True(t, errors.Is(err, context.DeadlineExceeded))
}

func TestCreateAndGet(t *testing.T) {
	ctx := context.Background()
	client, _ := newTestClient(t)
	posts := firemodel.For[Post](client)

	post := &Post{Text: "hello"}
	ref, err := posts.Create(ctx, post)
	gt.NoError(t, err)
	gt.NotEqual(t, ref.ID, "")
	gt.Equal(t, ref.Path(), "posts/"+ref.ID)
	gt.Equal(t, post.Ref, ref)

	got, err := posts.Get(ctx, ref.ID)
	gt.NoError(t, err)
	gt.Equal(t, got.Text, "hello")
	gt.Equal(t, got.ID(), ref.ID)
	gt.NotEqual(t, got.CreatedAt, nil)
	gt.NotEqual(t, got.UpdatedAt, nil)

	t.Run("explicit id", func(t *testing.T) {
		ref, err := posts.Create(ctx, &Post{Text: "pinned"}, firemodel.WithID("p1"))
		gt.NoError(t, err)
		gt.Equal(t, ref.Path(), "posts/p1")
	})

	t.Run("create again fails", func(t *testing.T) {
		_, err := posts.Create(ctx, got)
		gt.True(t, errors.Is(err, firemodel.ErrAlreadyExists))
	})

	t.Run("missing document", func(t *testing.T) {
		_, err := posts.Get(ctx, "missing")
		gt.True(t, errors.Is(err, firemodel.ErrNotFound))
	})
}

func TestWriteIsUpsert(t *testing.T) {
	ctx := context.Background()
	client, _ := newTestClient(t)
	posts := firemodel.For[Post](client)

	post := &Post{Text: "v1", Likes: 3}
	ref, err := posts.Write(ctx, post)
	gt.NoError(t, err)

	first, err := posts.Get(ctx, ref.ID)
	gt.NoError(t, err)

	post.Text = "v2"
	post.Likes = 0 // omitted, so the stored value is kept by the merge
	ref2, err := posts.Write(ctx, post)
	gt.NoError(t, err)
	gt.Equal(t, ref2.Path(), ref.Path())

	second, err := posts.Get(ctx, ref.ID)
	gt.NoError(t, err)
	gt.Equal(t, second.Text, "v2")
	gt.Equal(t, second.Likes, int64(3))
	gt.Equal(t, *second.CreatedAt, *first.CreatedAt)
	gt.True(t, second.UpdatedAt.After(*first.UpdatedAt))
}

func TestUpdate(t *testing.T) {
	ctx := context.Background()
	client, _ := newTestClient(t)
	posts := firemodel.For[Post](client)

	ref, err := posts.Create(ctx, &Post{Text: "draft"})
	gt.NoError(t, err)

	stored, err := posts.Get(ctx, ref.ID)
	gt.NoError(t, err)
	stored.Text = "published"
	gt.NoError(t, posts.Update(ctx, stored))

	updated, err := posts.Get(ctx, ref.ID)
	gt.NoError(t, err)
	gt.Equal(t, updated.Text, "published")
	gt.Equal(t, *updated.CreatedAt, *stored.CreatedAt)
	gt.True(t, updated.UpdatedAt.After(*stored.UpdatedAt))

	t.Run("created model without creation time", func(t *testing.T) {
		post := &Post{Text: "x"}
		_, err := posts.Create(ctx, post)
		gt.NoError(t, err)
		err = posts.Update(ctx, post)
		gt.True(t, errors.Is(err, firemodel.ErrInvalidTimestamp))
	})
}

func TestPreconditionsDoNotWrite(t *testing.T) {
	ctx := context.Background()
	now := time.Now()

	// Every BackendMock method panics when called.
	client := firemodel.NewWithBackend(&mock.BackendMock{})
	posts := firemodel.For[Post](client)

	t.Run("create with reference", func(t *testing.T) {
		post := &Post{Text: "x"}
		post.Ref = model.NewCollectionRef("posts").Doc("p1")
		_, err := posts.Create(ctx, post)
		gt.True(t, errors.Is(err, firemodel.ErrAlreadyExists))
	})

	t.Run("create with timestamps", func(t *testing.T) {
		post := &Post{Text: "x"}
		post.CreatedAt = &now
		_, err := posts.Create(ctx, post)
		gt.True(t, errors.Is(err, firemodel.ErrInvalidTimestamp))
	})

	t.Run("update without reference", func(t *testing.T) {
		err := posts.Update(ctx, &Post{Text: "x"})
		gt.True(t, errors.Is(err, firemodel.ErrNoReference))
	})

	t.Run("delete without reference", func(t *testing.T) {
		err := posts.Delete(ctx, &Post{Text: "x"})
		gt.True(t, errors.Is(err, firemodel.ErrNoReference))
	})

	t.Run("transaction without reference", func(t *testing.T) {
		err := firemodel.WriteTransaction(ctx, posts, &Post{},
			func(p *Post) *int64 { return &p.Likes }, 1,
			func(old, n int64) int64 { return old + n })
		gt.True(t, errors.Is(err, firemodel.ErrNoReference))
	})
}

func TestWriteData(t *testing.T) {
	ctx := context.Background()
	ref := model.NewCollectionRef("posts").Doc("p1")

	var (
		mu     sync.Mutex
		writes []map[string]any
		merges []bool
	)
	backend := &mock.BackendMock{
		NewDocumentIDFunc: func(*model.CollectionRef) string { return "p1" },
		SetFunc: func(_ context.Context, _ *model.Reference, data map[string]any, merge bool) error {
			mu.Lock()
			defer mu.Unlock()
			writes = append(writes, data)
			merges = append(merges, merge)
			return nil
		},
	}
	posts := firemodel.For[Post](firemodel.NewWithBackend(backend))

	_, err := posts.Create(ctx, &Post{Text: "a"})
	gt.NoError(t, err)

	post := &Post{Text: "b"}
	post.Ref = ref
	created := baseTime
	post.CreatedAt = &created
	post.UpdatedAt = &created
	gt.NoError(t, posts.Update(ctx, post))

	gt.Equal(t, merges, []bool{false, true})
	gt.Equal(t, writes[0], map[string]any{
		"text":      "a",
		"createdAt": interfaces.ServerTimestamp,
		"updatedAt": interfaces.ServerTimestamp,
	})
	gt.Equal(t, writes[1], map[string]any{
		"text":      "b",
		"updatedAt": interfaces.ServerTimestamp,
	})
}

func TestDecodeErrors(t *testing.T) {
	ctx := context.Background()
	client, backend := newTestClient(t)
	posts := firemodel.For[Post](client)
	col := model.NewCollectionRef("posts")

	for _, id := range []string{"a", "b", "c"} {
		gt.NoError(t, backend.Set(ctx, col.Doc(id), map[string]any{"text": id}, false))
	}
	// lacks the required text field
	gt.NoError(t, backend.Set(ctx, col.Doc("broken1"), map[string]any{"status": "x"}, false))
	// text has the wrong type
	gt.NoError(t, backend.Set(ctx, col.Doc("broken2"), map[string]any{"text": int64(1)}, false))

	t.Run("list drops undecodable documents", func(t *testing.T) {
		got, err := posts.List(ctx)
		gt.NoError(t, err)
		gt.Equal(t, len(got), 3)
		for _, p := range got {
			gt.Equal(t, p.Text, p.ID())
		}
	})

	t.Run("get reports decode error", func(t *testing.T) {
		for _, id := range []string{"broken1", "broken2"} {
			got, err := posts.Get(ctx, id)
			gt.True(t, errors.Is(err, firemodel.ErrDecode))
			gt.V(t, got).Nil()
		}
	})

	t.Run("query listener drops undecodable documents", func(t *testing.T) {
		s, err := posts.ListenQuery(ctx)
		gt.NoError(t, err)
		defer s.Close()
		gt.Equal(t, len(next(t, s)), 3)
	})

	t.Run("document listener fails", func(t *testing.T) {
		s, err := posts.Listen(ctx, "broken1")
		gt.NoError(t, err)
		err = nextErr(t, s)
		gt.True(t, errors.Is(err, firemodel.ErrDecode))
		// the failure is sticky and the listener is released
		gt.True(t, errors.Is(nextErr(t, s), firemodel.ErrDecode))
		gt.False(t, client.StopListening(s.Key()))
	})
}

func TestList(t *testing.T) {
	ctx := context.Background()
	client, _ := newTestClient(t)
	posts := firemodel.For[Post](client)

	for i, status := range []string{"active", "inactive", "active", "active"} {
		_, err := posts.Create(ctx, &Post{Text: "p", Status: status, Likes: int64(i)}, firemodel.WithID(string(rune('a'+i))))
		gt.NoError(t, err)
	}

	got, err := posts.List(ctx,
		firemodel.Where(
			firemodel.Equal{Field: "status", Value: firemodel.String("active")},
			firemodel.Equal{Value: firemodel.String("ignored")},
		),
		firemodel.OrderBy(firemodel.Desc("likes")),
		firemodel.Limit(2),
	)
	gt.NoError(t, err)
	gt.Equal(t, len(got), 2)
	gt.Equal(t, got[0].ID(), "d")
	gt.Equal(t, got[1].ID(), "c")

	got, err = posts.List(ctx, firemodel.Where(
		firemodel.Range{Field: "likes", Min: firemodel.Int(0), Max: firemodel.Int(3)},
	))
	gt.NoError(t, err)
	gt.Equal(t, len(got), 2)
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	client, _ := newTestClient(t)
	posts := firemodel.For[Post](client)

	post := &Post{Text: "bye"}
	_, err := posts.Create(ctx, post)
	gt.NoError(t, err)

	gt.NoError(t, posts.Delete(ctx, post))
	_, err = posts.Get(ctx, post.ID())
	gt.True(t, errors.Is(err, firemodel.ErrNotFound))
}

func TestListenQuery(t *testing.T) {
	ctx := context.Background()
	client, _ := newTestClient(t)
	posts := firemodel.For[Post](client)
	active := firemodel.Where(firemodel.Equal{Field: "status", Value: firemodel.String("active")})

	t.Run("first emission matches the filter", func(t *testing.T) {
		_, err := posts.Create(ctx, &Post{Text: "one", Status: "active"}, firemodel.WithID("one"))
		gt.NoError(t, err)
		_, err = posts.Create(ctx, &Post{Text: "two", Status: "inactive"}, firemodel.WithID("two"))
		gt.NoError(t, err)

		s, err := posts.ListenQuery(ctx, active)
		gt.NoError(t, err)
		defer s.Close()

		got := next(t, s)
		gt.Equal(t, len(got), 1)
		gt.Equal(t, got[0].ID(), "one")
	})

	t.Run("changes are streamed", func(t *testing.T) {
		s, err := posts.ListenQuery(ctx, active, firemodel.OrderBy(firemodel.Asc("text")))
		gt.NoError(t, err)
		defer s.Close()
		gt.Equal(t, len(next(t, s)), 1)

		_, err = posts.Create(ctx, &Post{Text: "three", Status: "active"}, firemodel.WithID("three"))
		gt.NoError(t, err)
		got := next(t, s)
		gt.Equal(t, len(got), 2)
		gt.Equal(t, got[0].Text, "one")
		gt.Equal(t, got[1].Text, "three")

		// not matching before or after, so no emission
		_, err = posts.Create(ctx, &Post{Text: "four", Status: "inactive"})
		gt.NoError(t, err)
		expectIdle(t, s)
	})
}

func TestListenDocument(t *testing.T) {
	ctx := context.Background()
	client, _ := newTestClient(t)
	posts := firemodel.For[Post](client)

	post := &Post{Text: "v1"}
	ref, err := posts.Create(ctx, post)
	gt.NoError(t, err)

	s, err := posts.Listen(ctx, ref.ID)
	gt.NoError(t, err)
	gt.Equal(t, s.Key(), "doc:posts/"+ref.ID)
	gt.Equal(t, next(t, s).Text, "v1")

	post.Text = "v2"
	_, err = posts.Write(ctx, post)
	gt.NoError(t, err)
	gt.Equal(t, next(t, s).Text, "v2")

	gt.NoError(t, posts.Delete(ctx, post))
	gt.True(t, errors.Is(nextErr(t, s), firemodel.ErrNotFound))
	gt.Equal(t, client.ActiveListeners(), 0)

	t.Run("missing document", func(t *testing.T) {
		s, err := posts.Listen(ctx, "missing")
		gt.NoError(t, err)
		gt.True(t, errors.Is(nextErr(t, s), firemodel.ErrNotFound))
	})
}

func TestListenerReplacement(t *testing.T) {
	ctx := context.Background()
	client, backend := newTestClient(t)
	posts := firemodel.For[Post](client)

	ref, err := posts.Create(ctx, &Post{Text: "x"})
	gt.NoError(t, err)

	first, err := posts.Listen(ctx, ref.ID)
	gt.NoError(t, err)
	second, err := posts.Listen(ctx, ref.ID)
	gt.NoError(t, err)

	gt.Equal(t, client.ActiveListeners(), 1)
	gt.Equal(t, backend.ListenerCount(), 1)

	// the replaced stream ends cleanly once drained
	for {
		_, err := first.Next(ctx)
		if err != nil {
			gt.True(t, errors.Is(err, iterator.Done))
			break
		}
	}
	gt.Equal(t, next(t, second).Text, "x")

	// closing the old stream must not release its successor
	first.Close()
	gt.Equal(t, client.ActiveListeners(), 1)

	second.Close()
	gt.Equal(t, client.ActiveListeners(), 0)
	gt.Equal(t, backend.ListenerCount(), 0)
}

func TestListenerReplacementWithNoOpFilter(t *testing.T) {
	ctx := context.Background()
	client, _ := newTestClient(t)
	posts := firemodel.For[Post](client)

	active := firemodel.Equal{Field: "status", Value: firemodel.String("active")}
	first, err := posts.ListenQuery(ctx, firemodel.Where(active))
	gt.NoError(t, err)
	second, err := posts.ListenQuery(ctx, firemodel.Where(active, firemodel.Contains{Field: "tags"}))
	gt.NoError(t, err)

	gt.Equal(t, first.Key(), second.Key())
	gt.Equal(t, client.ActiveListeners(), 1)
}

func TestStopListening(t *testing.T) {
	ctx := context.Background()
	client, backend := newTestClient(t)
	posts := firemodel.For[Post](client)
	boards := firemodel.For[Board](client)

	_, err := posts.Create(ctx, &Post{Text: "x"}, firemodel.WithID("p1"))
	gt.NoError(t, err)
	_, err = boards.Create(ctx, &Board{Name: "b"}, firemodel.WithID("b1"))
	gt.NoError(t, err)

	docStream, err := posts.Listen(ctx, "p1")
	gt.NoError(t, err)
	_, err = posts.ListenQuery(ctx)
	gt.NoError(t, err)
	_, err = posts.ListenQuery(ctx, firemodel.CollectionGroup())
	gt.NoError(t, err)
	_, err = boards.Listen(ctx, "b1")
	gt.NoError(t, err)
	gt.Equal(t, client.ActiveListeners(), 4)

	gt.True(t, posts.StopListeningDocument("p1"))
	gt.False(t, posts.StopListeningDocument("p1"))
	for {
		if _, err := docStream.Next(ctx); err != nil {
			gt.True(t, errors.Is(err, iterator.Done))
			break
		}
	}

	gt.Equal(t, posts.StopListening(), 2)
	gt.Equal(t, client.ActiveListeners(), 1)

	gt.Equal(t, client.StopListeningAll(), 1)
	gt.Equal(t, backend.ListenerCount(), 0)
}

func TestCachePolicy(t *testing.T) {
	ctx := context.Background()
	client, _ := newTestClient(t, memory.WithLocalEchoes())
	posts := firemodel.For[Post](client)

	post := &Post{Text: "v1"}
	ref, err := posts.Create(ctx, post)
	gt.NoError(t, err)

	t.Run("cached snapshots are delivered by default", func(t *testing.T) {
		s, err := posts.Listen(ctx, ref.ID)
		gt.NoError(t, err)
		defer s.Close()

		gt.Equal(t, next(t, s).Text, "v1") // from cache
		gt.Equal(t, next(t, s).Text, "v1") // confirmed
		expectIdle(t, s)
	})

	t.Run("server only skips cached snapshots", func(t *testing.T) {
		s, err := posts.Listen(ctx, ref.ID, firemodel.ServerOnly())
		gt.NoError(t, err)
		defer s.Close()

		gt.Equal(t, next(t, s).Text, "v1")
		expectIdle(t, s)
	})

	t.Run("pending writes are never delivered", func(t *testing.T) {
		s, err := posts.ListenQuery(ctx, firemodel.ServerOnly())
		gt.NoError(t, err)
		defer s.Close()
		gt.Equal(t, len(next(t, s)), 1)

		post.Text = "v2"
		_, err = posts.Write(ctx, post)
		gt.NoError(t, err)

		got := next(t, s)
		gt.Equal(t, got[0].Text, "v2")
		expectIdle(t, s)
	})
}

func TestListenerErrors(t *testing.T) {
	ctx := context.Background()
	client, backend := newTestClient(t)
	posts := firemodel.For[Post](client)

	_, err := posts.Create(ctx, &Post{Text: "x"}, firemodel.WithID("p1"))
	gt.NoError(t, err)

	t.Run("backend failure ends the stream with an error", func(t *testing.T) {
		s, err := posts.Listen(ctx, "p1")
		gt.NoError(t, err)
		next(t, s)

		cause := errors.New("permission denied")
		gt.Equal(t, backend.FailListeners(cause), 1)
		gt.True(t, errors.Is(nextErr(t, s), cause))
		gt.Equal(t, client.ActiveListeners(), 0)
	})

	t.Run("cancelled context ends the stream cleanly", func(t *testing.T) {
		listenCtx, cancel := context.WithCancel(ctx)
		s, err := posts.ListenQuery(listenCtx)
		gt.NoError(t, err)
		next(t, s)

		cancel()
		gt.True(t, errors.Is(nextErr(t, s), iterator.Done))
		gt.Equal(t, client.ActiveListeners(), 0)
	})
}

func TestListenCancelledByStatus(t *testing.T) {
	backend := &mock.BackendMock{
		ListenDocumentFunc: func(ctx context.Context, ref *model.Reference, fn interfaces.DocumentListener) (interfaces.ListenerHandle, error) {
			go func() {
				fn(&interfaces.Snapshot{
					Ref:    ref,
					Exists: true,
					Data:   map[string]any{"text": "x"},
				}, nil)
				<-ctx.Done()
				// Firestore reports cancellation as a gRPC status, not ctx.Err()
				fn(nil, goerr.Wrap(status.Error(codes.Canceled, ctx.Err().Error()), "document listener failed"))
			}()
			return &mock.ListenerHandleMock{RemoveFunc: func() {}}, nil
		},
	}
	client := firemodel.NewWithBackend(backend)
	posts := firemodel.For[Post](client)

	listenCtx, cancel := context.WithCancel(context.Background())
	s, err := posts.Listen(listenCtx, "p1")
	gt.NoError(t, err)
	gt.Equal(t, next(t, s).Text, "x")

	cancel()
	gt.True(t, errors.Is(nextErr(t, s), iterator.Done))
	gt.Equal(t, client.ActiveListeners(), 0)
}

func TestStreamErrorSurvivesClose(t *testing.T) {
	ctx := context.Background()
	client, backend := newTestClient(t)
	posts := firemodel.For[Post](client)

	_, err := posts.Create(ctx, &Post{Text: "x"}, firemodel.WithID("p1"))
	gt.NoError(t, err)

	s, err := posts.Listen(ctx, "p1")
	gt.NoError(t, err)
	next(t, s)

	cause := errors.New("stream broken")
	gt.Equal(t, backend.FailListeners(cause), 1)

	var seen error
	for _, err := range s.All(ctx) {
		seen = err
	}
	gt.True(t, errors.Is(seen, cause))

	// All closed the stream; the failure is still what Next reports
	_, err = s.Next(ctx)
	gt.True(t, errors.Is(err, cause))
}

func TestSubCollection(t *testing.T) {
	ctx := context.Background()
	client, _ := newTestClient(t)

	replies := firemodel.For[Reply](client, firemodel.Under("b1", "t1"))
	ref, err := replies.Create(ctx, &Reply{Body: "hi"}, firemodel.WithID("r1"))
	gt.NoError(t, err)
	gt.Equal(t, ref.Path(), "boards/b1/threads/t1/replies/r1")
	gt.Equal(t, ref.ParentIDs(), []string{"b1", "t1"})

	got, err := replies.Get(ctx, "r1")
	gt.NoError(t, err)
	gt.Equal(t, got.Body, "hi")

	t.Run("persisted model keeps its own collection", func(t *testing.T) {
		other := firemodel.For[Reply](client, firemodel.Under("b2", "t2"))
		got.Body = "edited"
		_, err := other.Write(ctx, got)
		gt.NoError(t, err)

		stored, err := replies.Get(ctx, "r1")
		gt.NoError(t, err)
		gt.Equal(t, stored.Body, "edited")
	})

	t.Run("collection group", func(t *testing.T) {
		other := firemodel.For[Reply](client, firemodel.Under("b2", "t2"))
		_, err := other.Create(ctx, &Reply{Body: "elsewhere"})
		gt.NoError(t, err)

		all, err := firemodel.For[Reply](client).List(ctx, firemodel.CollectionGroup())
		gt.NoError(t, err)
		gt.Equal(t, len(all), 2)
	})

	t.Run("explicit path", func(t *testing.T) {
		at := firemodel.For[Reply](client, firemodel.At("boards/b1/threads/t1/replies"))
		got, err := at.Get(ctx, "r1")
		gt.NoError(t, err)
		gt.Equal(t, got.ID(), "r1")
	})

	t.Run("missing parent ids", func(t *testing.T) {
		for _, opts := range [][]firemodel.CollectionOption{
			nil,
			{firemodel.Under("b1")},
			{firemodel.Under("b1", "")},
			{firemodel.At("boards/b1")},
		} {
			_, err := firemodel.For[Reply](client, opts...).Create(ctx, &Reply{Body: "x"})
			gt.True(t, errors.Is(err, firemodel.ErrReferenceResolution))
		}
	})
}

func TestWriteTransaction(t *testing.T) {
	ctx := context.Background()
	client, _ := newTestClient(t)
	posts := firemodel.For[Post](client)

	_, err := posts.Create(ctx, &Post{Text: "x", Likes: 10}, firemodel.WithID("p1"))
	gt.NoError(t, err)

	// a stale copy still merges with the stored value
	stale, err := posts.Get(ctx, "p1")
	gt.NoError(t, err)
	stale.Likes = 0
	stale.Text = "y"

	err = firemodel.WriteTransaction(ctx, posts, stale,
		func(p *Post) *int64 { return &p.Likes }, 5,
		func(stored, n int64) int64 { return stored + n })
	gt.NoError(t, err)
	gt.Equal(t, stale.Likes, int64(15))

	got, err := posts.Get(ctx, "p1")
	gt.NoError(t, err)
	gt.Equal(t, got.Likes, int64(15))
	gt.Equal(t, got.Text, "y")

	t.Run("deleted document", func(t *testing.T) {
		gt.NoError(t, posts.Delete(ctx, got))
		err := firemodel.WriteTransaction(ctx, posts, got,
			func(p *Post) *int64 { return &p.Likes }, 1,
			func(stored, n int64) int64 { return stored + n })
		gt.True(t, errors.Is(err, firemodel.ErrNotFound))
	})
}

func TestProvisionWithoutAdmin(t *testing.T) {
	client, _ := newTestClient(t)
	_, err := client.Provision(context.Background(), &firemodel.Schema{})
	gt.True(t, errors.Is(err, firemodel.ErrNoIndexAdmin))
}

func TestProvision(t *testing.T) {
	var created []interfaces.FirestoreIndex
	admin := &mock.IndexAdminMock{
		ListIndexesFunc: func(context.Context, string) ([]interfaces.FirestoreIndex, error) {
			return nil, nil
		},
		CreateIndexFunc: func(_ context.Context, _ string, index interfaces.FirestoreIndex) (interfaces.Operation, error) {
			created = append(created, index)
			return nil, nil
		},
	}

	posts := firemodel.For[Post](firemodel.NewWithBackend(memory.New()))
	idx, ok := posts.IndexFor(
		firemodel.Where(firemodel.Equal{Field: "status", Value: firemodel.String("active")}),
		firemodel.OrderBy(firemodel.Desc("updatedAt")),
	)
	gt.True(t, ok)

	schema := &firemodel.Schema{}
	firemodel.AddIndex(schema, "posts", idx)
	firemodel.AddIndex(schema, "posts", idx)
	gt.Equal(t, len(schema.Collections[0].Indexes), 1)

	client := firemodel.NewWithBackend(memory.New(), firemodel.WithIndexAdmin(admin))
	result, err := client.Provision(context.Background(), schema)
	gt.NoError(t, err)
	gt.Equal(t, len(result.CreatedIndexes), 1)
	gt.Equal(t, created[0].Fields, []interfaces.FirestoreIndexField{
		{FieldPath: "status", Order: "ASCENDING"},
		{FieldPath: "updatedAt", Order: "DESCENDING"},
	})
	gt.NoError(t, client.Close())
	gt.Equal(t, len(admin.CloseCalls()), 0)
}
