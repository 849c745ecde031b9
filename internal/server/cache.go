package server

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/mj1618/fontproject/internal/model"
	"github.com/mj1618/fontproject/internal/projectfile"
)

// Loaded is a decoded project file.
type Loaded struct {
	Path    string
	Format  projectfile.Format
	Project *model.Project
	Dropped []model.Diagnostic
}

// cacheEntry holds a decoded project with the file state it was read from.
type cacheEntry struct {
	loaded    *Loaded
	modTime   time.Time
	size      int64
	timestamp time.Time
}

// ProjectCache provides a TTL-based cache of decoded project files. An entry
// is reused only while the file's modification time and size are unchanged.
// Cached projects are shared and must not be modified.
type ProjectCache struct {
	mu      sync.Mutex
	entries map[string]cacheEntry
	ttl     time.Duration
}

// NewProjectCache creates a new cache. A ttl of 0 disables caching.
func NewProjectCache(ttl time.Duration) *ProjectCache {
	return &ProjectCache{
		entries: make(map[string]cacheEntry),
		ttl:     ttl,
	}
}

// Load returns the cached project for path if it is fresh, otherwise reads
// and decodes the file.
func (c *ProjectCache) Load(path string) (*Loaded, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory", path)
	}

	if c.ttl > 0 {
		c.mu.Lock()
		entry, ok := c.entries[abs]
		c.mu.Unlock()
		if ok && time.Since(entry.timestamp) < c.ttl &&
			entry.modTime.Equal(info.ModTime()) && entry.size == info.Size() {
			return entry.loaded, nil
		}
	}

	project, format, dropped, err := projectfile.Load(abs)
	if err != nil {
		return nil, err
	}
	loaded := &Loaded{Path: abs, Format: format, Project: project, Dropped: dropped}

	if c.ttl > 0 {
		c.mu.Lock()
		c.entries[abs] = cacheEntry{loaded: loaded, modTime: info.ModTime(), size: info.Size(), timestamp: time.Now()}
		c.mu.Unlock()
	}
	return loaded, nil
}

// Invalidate removes the entry for path.
func (c *ProjectCache) Invalidate(path string) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, abs)
}

// InvalidateAll clears the entire cache.
func (c *ProjectCache) InvalidateAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]cacheEntry)
}

// Len returns the number of cached projects.
func (c *ProjectCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
