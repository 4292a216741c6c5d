// Package registry keeps at most one active snapshot listener per key.
//
// Every mutation runs under one mutex. Replacing a listener removes the old
// backend handle and evicts its consumer before the new listener is
// installed, so a key never has two live listeners. Each registration gets
// a generation number and the release function handed to install only
// affects that generation, so a superseded stream finishing late cannot
// remove its successor.
package registry

import (
	"sync"

	"github.com/m-mizutani/firemodel/pkg/domain/interfaces"
)

// InstallFunc starts a backend listener. release must be called when the
// consumer side of the listener terminates on its own.
type InstallFunc func(release func()) (interfaces.ListenerHandle, error)

// Hooks receives registry events. All fields are optional.
type Hooks struct {
	OnActive   func(n int)
	OnReplaced func()
}

type entry struct {
	gen     uint64
	scope   string
	handle  interfaces.ListenerHandle
	onEvict func()
}

// Registry maps listener keys to active listeners.
type Registry struct {
	mu      sync.Mutex
	entries map[string]*entry
	nextGen uint64
	hooks   Hooks
}

// New creates an empty registry.
func New(hooks Hooks) *Registry {
	return &Registry{
		entries: make(map[string]*entry),
		hooks:   hooks,
	}
}

// Register installs a listener for key, replacing any existing one. scope
// groups keys for StopScope. onEvict is called, with the lock held, when
// the listener is stopped or replaced by somebody other than its consumer.
// It must not call back into the registry.
//
// If install fails the key is left without a listener and the error is returned.
func (r *Registry) Register(key, scope string, install InstallFunc, onEvict func()) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if old, ok := r.entries[key]; ok {
		delete(r.entries, key)
		evict(old)
		if r.hooks.OnReplaced != nil {
			r.hooks.OnReplaced()
		}
	}

	r.nextGen++
	gen := r.nextGen

	// release takes the lock itself, so it must not run synchronously inside install.
	handle, err := install(func() { r.release(key, gen) })
	if err != nil {
		r.reportActive()
		return err
	}

	r.entries[key] = &entry{
		gen:     gen,
		scope:   scope,
		handle:  handle,
		onEvict: onEvict,
	}
	r.reportActive()
	return nil
}

// release drops key if it still belongs to generation gen.
func (r *Registry) release(key string, gen uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.entries[key]
	if !ok || e.gen != gen {
		return
	}
	delete(r.entries, key)
	e.handle.Remove()
	r.reportActive()
}

// Stop removes the listener for key. It reports whether one was registered.
func (r *Registry) Stop(key string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.entries[key]
	if !ok {
		return false
	}
	delete(r.entries, key)
	evict(e)
	r.reportActive()
	return true
}

// StopScope removes every listener registered with scope and returns how many were removed.
func (r *Registry) StopScope(scope string) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := 0
	for key, e := range r.entries {
		if e.scope != scope {
			continue
		}
		delete(r.entries, key)
		evict(e)
		n++
	}
	r.reportActive()
	return n
}

// StopAll removes every listener and returns how many were removed.
func (r *Registry) StopAll() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := len(r.entries)
	for key, e := range r.entries {
		delete(r.entries, key)
		evict(e)
	}
	r.reportActive()
	return n
}

// Has reports whether key has an active listener.
func (r *Registry) Has(key string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.entries[key]
	return ok
}

// Len returns the number of active listeners.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

func evict(e *entry) {
	e.handle.Remove()
	if e.onEvict != nil {
		e.onEvict()
	}
}

func (r *Registry) reportActive() {
	if r.hooks.OnActive != nil {
		r.hooks.OnActive(len(r.entries))
	}
}
