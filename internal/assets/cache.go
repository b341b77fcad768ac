package assets

import (
	"sort"
	"sync"
	"sync/atomic"
)

// Cache owns named resources of one kind. Holders get a Handle, never the
// resource itself, so releasing a resource can't leave them with a stale pointer.
type Cache[T any] struct {
	mu      sync.RWMutex
	entries map[string]*entry[T]
	release func(*T)
}

type entry[T any] struct {
	name  string
	value atomic.Pointer[T]
}

// NewCache creates a cache. release, if not nil, frees a resource when it is
// replaced, released or cleared.
func NewCache[T any](release func(*T)) *Cache[T] {
	return &Cache[T]{
		entries: make(map[string]*entry[T]),
		release: release,
	}
}

// Put stores v under name and returns a handle to it. A resource already
// stored under name is released; existing handles to name observe v.
func (c *Cache[T]) Put(name string, v *T) Handle[T] {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[name]
	if !ok {
		e = &entry[T]{name: name}
		c.entries[name] = e
	}
	if old := e.value.Swap(v); old != nil && old != v && c.release != nil {
		c.release(old)
	}
	return Handle[T]{e: e}
}

// Get returns a handle to the named resource. Empty and unknown names yield
// the empty handle.
func (c *Cache[T]) Get(name string) Handle[T] {
	if name == "" {
		return Handle[T]{}
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[name]
	if !ok || e.value.Load() == nil {
		return Handle[T]{}
	}
	return Handle[T]{e: e}
}

// Lookup returns the named resource directly
func (c *Cache[T]) Lookup(name string) (*T, bool) {
	v := c.Get(name).Get()
	return v, v != nil
}

// GetOrCreate returns the named resource, creating it with create on first use.
func (c *Cache[T]) GetOrCreate(name string, create func() (*T, error)) (Handle[T], error) {
	if h := c.Get(name); h.Valid() {
		return h, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	// Double check locking
	if e, ok := c.entries[name]; ok && e.value.Load() != nil {
		return Handle[T]{e: e}, nil
	}

	v, err := create()
	if err != nil {
		return Handle[T]{}, err
	}
	e, ok := c.entries[name]
	if !ok {
		e = &entry[T]{name: name}
		c.entries[name] = e
	}
	e.value.Store(v)
	return Handle[T]{e: e}, nil
}

// Release frees the named resource. Every handle to it becomes empty.
func (c *Cache[T]) Release(name string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[name]
	if !ok {
		return false
	}
	delete(c.entries, name)
	if old := e.value.Swap(nil); old != nil && c.release != nil {
		c.release(old)
	}
	return true
}

// Clear releases every resource
func (c *Cache[T]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	for name, e := range c.entries {
		if old := e.value.Swap(nil); old != nil && c.release != nil {
			c.release(old)
		}
		delete(c.entries, name)
	}
}

// Len returns the number of stored resources
func (c *Cache[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Names returns the stored names in sorted order
func (c *Cache[T]) Names() []string {
	c.mu.RLock()
	names := make([]string, 0, len(c.entries))
	for name := range c.entries {
		names = append(names, name)
	}
	c.mu.RUnlock()
	sort.Strings(names)
	return names
}

// Handle is a non-owning reference to a cached resource. The zero Handle is
// empty. A handle becomes empty when its resource is released.
type Handle[T any] struct {
	e *entry[T]
}

// Get returns the resource, or nil if the handle is empty
func (h Handle[T]) Get() *T {
	if h.e == nil {
		return nil
	}
	return h.e.value.Load()
}

// Valid reports whether the handle currently refers to a resource
func (h Handle[T]) Valid() bool {
	return h.Get() != nil
}

// Name returns the name the handle was resolved from, or "" for the zero handle
func (h Handle[T]) Name() string {
	if h.e == nil {
		return ""
	}
	return h.e.name
}
