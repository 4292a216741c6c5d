package firemodel

import "context"

// Result is the outcome of one asynchronous operation or one stream element.
type Result[T any] struct {
	Value T
	Err   error
}

// Async runs fn on a new goroutine and reports its outcome to exactly one of
// onSuccess and onFailure. Either callback may be nil.
//
//	firemodel.Async(ctx, func(ctx context.Context) (*User, error) {
//	    return users.Get(ctx, "u1")
//	}, func(u *User) { ... }, func(err error) { ... })
func Async[T any](ctx context.Context, fn func(context.Context) (T, error), onSuccess func(T), onFailure func(error)) {
	go func() {
		v, err := fn(ctx)
		if err != nil {
			if onFailure != nil {
				onFailure(err)
			}
			return
		}
		if onSuccess != nil {
			onSuccess(v)
		}
	}()
}

// Future runs fn on a new goroutine. The returned channel receives exactly
// one Result and is then closed.
func Future[T any](ctx context.Context, fn func(context.Context) (T, error)) <-chan Result[T] {
	ch := make(chan Result[T], 1)
	go func() {
		defer close(ch)
		v, err := fn(ctx)
		ch <- Result[T]{Value: v, Err: err}
	}()
	return ch
}

// Subscribe consumes s on a new goroutine, calling onNext for every value.
// onError is called at most once, when the stream fails or ctx is done; it
// is not called after a clean end. The stream is closed when consumption stops.
func Subscribe[T any](ctx context.Context, s *Stream[T], onNext func(T), onError func(error)) {
	go func() {
		for v, err := range s.All(ctx) {
			if err != nil {
				if onError != nil {
					onError(err)
				}
				return
			}
			if onNext != nil {
				onNext(v)
			}
		}
	}()
}

// Publish forwards s to a channel. A failure is delivered as the last
// Result before the channel is closed. Cancelling ctx closes both the
// channel and the stream.
func Publish[T any](ctx context.Context, s *Stream[T]) <-chan Result[T] {
	ch := make(chan Result[T])
	go func() {
		defer close(ch)
		for v, err := range s.All(ctx) {
			select {
			case ch <- Result[T]{Value: v, Err: err}:
			case <-ctx.Done():
				return
			}
		}
	}()
	return ch
}
