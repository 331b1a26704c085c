package transcription

import "sync"

// LoadFunc builds a backend for one model identifier.
type LoadFunc func(model string) (Transcriber, error)

// Cache holds loaded backends keyed by model identifier for the life
// of the process. Concurrent first use of the same key triggers
// exactly one load; the loser waits for the winner's result. Entries
// are never evicted.
type Cache struct {
	mu      sync.Mutex
	load    LoadFunc
	entries map[string]*cacheEntry
}

type cacheEntry struct {
	once sync.Once
	t    Transcriber
	err  error
}

func NewCache(load LoadFunc) *Cache {
	return &Cache{load: load, entries: make(map[string]*cacheEntry)}
}

// Get returns the backend for model, loading it on first use. A failed
// load is cached too: a backend that cannot be built will not be
// re-attempted within the process.
func (c *Cache) Get(model string) (Transcriber, error) {
	c.mu.Lock()
	e, ok := c.entries[model]
	if !ok {
		e = &cacheEntry{}
		c.entries[model] = e
	}
	c.mu.Unlock()

	e.once.Do(func() {
		e.t, e.err = c.load(model)
	})
	return e.t, e.err
}
