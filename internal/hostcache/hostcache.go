// Package hostcache implements a single host-side "last accepted SVG"
// slot: one mutex-guarded string, additionally persisted to disk so a
// host process can restart without losing the last document it
// accepted. It is a convenience for callers embedding the core
// pipeline, not part of it: Diff and DiffSequence never touch it.
package hostcache

import (
	"bytes"
	"os"
	"sync"

	"github.com/natefinch/atomic"
)

// Cache holds the most recently accepted SVG document in memory,
// mirrored to a file on disk.
//
// Reads and writes share one mutex: Get always returns a fully-formed,
// never-partially-written string.
type Cache struct {
	path string

	mu  sync.Mutex
	val string
}

// New returns a Cache backed by path. If path already contains a
// previously-saved document, it is loaded eagerly so Get returns it
// immediately without a separate Load call.
func New(path string) *Cache {
	c := &Cache{path: path}
	if bs, err := os.ReadFile(path); err == nil {
		c.val = string(bs)
	}
	return c
}

// Get returns the most recently accepted document, and whether one
// has ever been set.
func (c *Cache) Get() (svg string, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.val, c.val != ""
}

// Set records svg as the most recently accepted document, both in
// memory and (if path is non-empty) on disk, replacing the file
// atomically so a concurrent reader of the path never observes a
// partially-written document.
func (c *Cache) Set(svg string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.val = svg
	if c.path == "" {
		return nil
	}
	return atomic.WriteFile(c.path, bytes.NewReader([]byte(svg)))
}
