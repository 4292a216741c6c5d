package registry_test

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/m-mizutani/firemodel/pkg/domain/interfaces"
	"github.com/m-mizutani/firemodel/pkg/domain/interfaces/mock"
	"github.com/m-mizutani/firemodel/pkg/registry"
	"github.com/m-mizutani/gt"
)

func newHandle() *mock.ListenerHandleMock {
	return &mock.ListenerHandleMock{RemoveFunc: func() {}}
}

func installer(h interfaces.ListenerHandle, release *func()) registry.InstallFunc {
	return func(r func()) (interfaces.ListenerHandle, error) {
		if release != nil {
			*release = r
		}
		return h, nil
	}
}

func TestRegistryReplace(t *testing.T) {
	var replaced int
	reg := registry.New(registry.Hooks{OnReplaced: func() { replaced++ }})

	first := newHandle()
	var firstEvicted bool
	gt.NoError(t, reg.Register("doc:users/u1", "users", installer(first, nil), func() { firstEvicted = true }))
	gt.Equal(t, reg.Len(), 1)

	second := newHandle()
	var removedBeforeInstall, evictedBeforeInstall bool
	gt.NoError(t, reg.Register("doc:users/u1", "users", func(func()) (interfaces.ListenerHandle, error) {
		removedBeforeInstall = len(first.RemoveCalls()) == 1
		evictedBeforeInstall = firstEvicted
		return second, nil
	}, nil))
	gt.True(t, removedBeforeInstall)
	gt.True(t, evictedBeforeInstall)

	gt.Equal(t, reg.Len(), 1)
	gt.Equal(t, len(first.RemoveCalls()), 1)
	gt.True(t, firstEvicted)
	gt.Equal(t, len(second.RemoveCalls()), 0)
	gt.Equal(t, replaced, 1)
}

func TestRegistryStaleRelease(t *testing.T) {
	reg := registry.New(registry.Hooks{})

	var releaseFirst, releaseSecond func()
	first := newHandle()
	second := newHandle()
	gt.NoError(t, reg.Register("k", "s", installer(first, &releaseFirst), nil))
	gt.NoError(t, reg.Register("k", "s", installer(second, &releaseSecond), nil))

	// The superseded listener finishing late must not remove its successor.
	releaseFirst()
	gt.True(t, reg.Has("k"))
	gt.Equal(t, len(second.RemoveCalls()), 0)

	releaseSecond()
	gt.False(t, reg.Has("k"))
	gt.Equal(t, len(second.RemoveCalls()), 1)

	// Releasing twice is harmless.
	releaseSecond()
	gt.Equal(t, len(second.RemoveCalls()), 1)
}

func TestRegistryStop(t *testing.T) {
	var active int
	reg := registry.New(registry.Hooks{OnActive: func(n int) { active = n }})

	handles := map[string]*mock.ListenerHandleMock{}
	for _, k := range []string{"doc:users/a", "doc:users/b", "doc:posts/c"} {
		handles[k] = newHandle()
	}
	gt.NoError(t, reg.Register("doc:users/a", "users", installer(handles["doc:users/a"], nil), nil))
	gt.NoError(t, reg.Register("doc:users/b", "users", installer(handles["doc:users/b"], nil), nil))
	gt.NoError(t, reg.Register("doc:posts/c", "posts", installer(handles["doc:posts/c"], nil), nil))
	gt.Equal(t, active, 3)

	t.Run("stop single key", func(t *testing.T) {
		gt.True(t, reg.Stop("doc:users/a"))
		gt.False(t, reg.Stop("doc:users/a"))
		gt.Equal(t, len(handles["doc:users/a"].RemoveCalls()), 1)
		gt.Equal(t, active, 2)
	})

	t.Run("stop scope", func(t *testing.T) {
		gt.Equal(t, reg.StopScope("users"), 1)
		gt.Equal(t, len(handles["doc:users/b"].RemoveCalls()), 1)
		gt.True(t, reg.Has("doc:posts/c"))
	})

	t.Run("stop all", func(t *testing.T) {
		gt.Equal(t, reg.StopAll(), 1)
		gt.Equal(t, reg.Len(), 0)
		gt.Equal(t, active, 0)
		gt.Equal(t, len(handles["doc:posts/c"].RemoveCalls()), 1)
	})
}

func TestRegistryInstallFailure(t *testing.T) {
	reg := registry.New(registry.Hooks{})
	old := newHandle()
	gt.NoError(t, reg.Register("k", "s", installer(old, nil), nil))

	err := reg.Register("k", "s", func(func()) (interfaces.ListenerHandle, error) {
		return nil, errors.New("boom")
	}, nil)
	gt.Error(t, err)
	gt.False(t, reg.Has("k"))
	gt.Equal(t, len(old.RemoveCalls()), 1)
}

func TestRegistryConcurrentRegister(t *testing.T) {
	reg := registry.New(registry.Hooks{})

	var live atomic.Int64
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			h := &mock.ListenerHandleMock{RemoveFunc: func() { live.Add(-1) }}
			live.Add(1)
			gt.NoError(t, reg.Register("same", "s", installer(h, nil), nil))
		}()
	}
	wg.Wait()

	gt.Equal(t, reg.Len(), 1)
	gt.Equal(t, live.Load(), int64(1))
}
