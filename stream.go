package firemodel

import (
	"context"
	"errors"
	"iter"
	"sync"

	"github.com/m-mizutani/firemodel/internal/queue"
	"google.golang.org/api/iterator"
)

type event[T any] struct {
	value T
	err   error
}

// Stream delivers the values of one snapshot listener in arrival order.
// It ends cleanly (iterator.Done) when it is closed, stopped through the
// client or replaced by a newer listener on the same key, and ends with an
// error when the listener fails. Backend notifications never wait on the
// consumer: undelivered values are buffered.
type Stream[T any] struct {
	key    string
	events *queue.Queue[event[T]]

	mu      sync.Mutex
	release func()
	closed  bool
	err     error
}

func newStream[T any](key string) *Stream[T] {
	return &Stream[T]{
		key:    key,
		events: queue.New[event[T]](),
	}
}

// Key returns the listener key the stream is registered under.
func (s *Stream[T]) Key() string {
	return s.key
}

// Next blocks until the next value arrives. It returns iterator.Done after
// a clean end and keeps returning the terminal error after a failure. An
// error from ctx does not end the stream.
func (s *Stream[T]) Next(ctx context.Context) (T, error) {
	var zero T

	s.mu.Lock()
	if s.err != nil {
		err := s.err
		s.mu.Unlock()
		return zero, err
	}
	if s.closed {
		s.mu.Unlock()
		return zero, iterator.Done
	}
	s.mu.Unlock()

	ev, err := s.events.Pop(ctx)
	if err != nil {
		if errors.Is(err, queue.ErrClosed) {
			s.terminate(iterator.Done)
			return zero, iterator.Done
		}
		return zero, err
	}
	if ev.err != nil {
		s.terminate(ev.err)
		return zero, ev.err
	}
	return ev.value, nil
}

// All iterates the stream until it ends, yielding each value with a nil
// error. A failure is yielded once as the last element; a clean end yields
// nothing. The stream is closed when the loop exits.
func (s *Stream[T]) All(ctx context.Context) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		defer s.Close()
		for {
			v, err := s.Next(ctx)
			if errors.Is(err, iterator.Done) {
				return
			}
			if !yield(v, err) || err != nil {
				return
			}
		}
	}
}

// Close stops the listener and releases its registry entry. It is safe to
// call more than once and from any goroutine.
func (s *Stream[T]) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	release := s.release
	s.mu.Unlock()

	s.events.Close()
	if release != nil {
		release()
	}
}

func (s *Stream[T]) terminate(err error) {
	s.mu.Lock()
	if s.err == nil {
		s.err = err
	}
	s.mu.Unlock()
}

func (s *Stream[T]) setRelease(release func()) {
	s.mu.Lock()
	s.release = release
	s.mu.Unlock()
}

// push runs on backend goroutines.
func (s *Stream[T]) push(v T) {
	s.events.Push(event[T]{value: v})
}

// fail ends the stream from the producer side. A nil err is a clean end.
// The registry entry is released before the consumer can observe the end.
func (s *Stream[T]) fail(err error) {
	s.mu.Lock()
	release := s.release
	s.mu.Unlock()
	if release != nil {
		release()
	}

	if err != nil {
		s.events.Push(event[T]{err: err})
	}
	s.events.Close()
}

// evict ends the stream after the registry removed its listener. It runs
// with the registry lock held.
func (s *Stream[T]) evict() {
	s.events.Close()
}
