package provider

import (
	"os"
	"sync"
	"time"
)

type cacheEntry struct {
	raw       []byte
	content   string
	truncated bool
}

type cachedFile struct {
	size    int64
	modTime time.Time
	entry   cacheEntry
}

// Cache memoises file content keyed by path. An entry is only served while
// the file's size and modification time are unchanged. A nil *Cache is
// valid and caches nothing.
type Cache struct {
	mu      sync.Mutex
	entries map[string]cachedFile
}

// NewCache returns an empty cache.
func NewCache() *Cache {
	return &Cache{entries: make(map[string]cachedFile)}
}

func (c *Cache) get(path string, info os.FileInfo) (cacheEntry, bool) {
	if c == nil {
		return cacheEntry{}, false
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	cached, ok := c.entries[path]
	if !ok {
		return cacheEntry{}, false
	}
	if cached.size == info.Size() && cached.modTime.Equal(info.ModTime()) {
		return cached.entry, true
	}
	delete(c.entries, path)
	return cacheEntry{}, false
}

func (c *Cache) store(path string, info os.FileInfo, entry cacheEntry) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.entries == nil {
		c.entries = make(map[string]cachedFile)
	}
	c.entries[path] = cachedFile{
		size:    info.Size(),
		modTime: info.ModTime(),
		entry:   entry,
	}
}
