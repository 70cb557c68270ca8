package cache

import (
	"context"
	"errors"
	"sync"
	"time"
)

var errLoadAborted = errors.New("cache: load aborted")

// call is an in-flight load other callers for the same key wait on.
type call[V any] struct {
	done  chan struct{}
	value V
	err   error
}

type entry[V any] struct {
	value  V
	expiry time.Time
}

func (e entry[V]) expired(now time.Time) bool {
	return now.After(e.expiry)
}

// TTLCache is a mutex guarded map whose entries expire after a fixed TTL.
// Reads refresh nothing; an entry lives ttl from the moment it was stored.
type TTLCache[K comparable, V any] struct {
	mu         sync.Mutex
	items      map[K]entry[V]
	loading    map[K]*call[V]
	defaultTTL time.Duration
	now        func() time.Time
}

func NewTTL[K comparable, V any](ttl time.Duration) *TTLCache[K, V] {
	return &TTLCache[K, V]{
		items:      make(map[K]entry[V]),
		loading:    make(map[K]*call[V]),
		defaultTTL: ttl,
		now:        time.Now,
	}
}

// StartJanitor evicts expired entries every interval until ctx is done.
func (c *TTLCache[K, V]) StartJanitor(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				c.Purge()
			}
		}
	}()
}

// Purge removes every expired entry and returns how many were dropped.
func (c *TTLCache[K, V]) Purge() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	dropped := 0
	for key, e := range c.items {
		if e.expired(now) {
			delete(c.items, key)
			dropped++
		}
	}
	return dropped
}

func (c *TTLCache[K, V]) Set(key K, value V) {
	c.SetWithTTL(key, value, c.defaultTTL)
}

func (c *TTLCache[K, V]) SetWithTTL(key K, value V, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items[key] = entry[V]{value: value, expiry: c.now().Add(ttl)}
}

func (c *TTLCache[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.getLocked(key)
}

func (c *TTLCache[K, V]) getLocked(key K) (V, bool) {
	e, found := c.items[key]
	if !found {
		var zero V
		return zero, false
	}
	if e.expired(c.now()) {
		delete(c.items, key)
		var zero V
		return zero, false
	}
	return e.value, true
}

// GetOrLoad returns the cached value for key, calling load on a miss. Loads
// run outside the lock; concurrent misses for the same key share one load,
// misses for different keys load in parallel.
func (c *TTLCache[K, V]) GetOrLoad(key K, load func() (V, error)) (V, error) {
	c.mu.Lock()
	if v, ok := c.getLocked(key); ok {
		c.mu.Unlock()
		return v, nil
	}
	if inflight, ok := c.loading[key]; ok {
		c.mu.Unlock()
		<-inflight.done
		return inflight.value, inflight.err
	}

	cl := &call[V]{done: make(chan struct{}), err: errLoadAborted}
	c.loading[key] = cl
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		delete(c.loading, key)
		if cl.err == nil {
			c.items[key] = entry[V]{value: cl.value, expiry: c.now().Add(c.defaultTTL)}
		}
		c.mu.Unlock()
		close(cl.done)
	}()

	cl.value, cl.err = load()
	return cl.value, cl.err
}

func (c *TTLCache[K, V]) Remove(key K) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.items, key)
}

func (c *TTLCache[K, V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	clear(c.items)
}

func (c *TTLCache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.items)
}
