package service

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"sync"

	"myblog/internal/logger"
)

// Cleaner removes uploaded avatar files left behind by failed registrations.
// Dispatch enqueues synchronously and never blocks or drops, so a handler
// returning right after Dispatch cannot lose the cleanup; the removal itself
// happens off the request path because deletion latency must not add to the
// response.
type Cleaner struct {
	log *logger.Logger

	mu      sync.Mutex
	pending []string
	wake    chan struct{}
}

func NewCleaner(log *logger.Logger) *Cleaner {
	return &Cleaner{
		log:  log,
		wake: make(chan struct{}, 1),
	}
}

var _ Cleanup = (*Cleaner)(nil)

// Dispatch schedules removal of the file at path. An empty path is a no-op
// (no file was uploaded).
func (c *Cleaner) Dispatch(path string) {
	if path == "" {
		return
	}
	c.mu.Lock()
	c.pending = append(c.pending, path)
	c.mu.Unlock()

	select {
	case c.wake <- struct{}{}:
	default:
	}
}

// Run drains the queue until ctx is canceled, then makes one final pass so
// nothing dispatched before shutdown is left on disk.
func (c *Cleaner) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			c.drain()
			return
		case <-c.wake:
			c.drain()
		}
	}
}

func (c *Cleaner) drain() {
	for {
		c.mu.Lock()
		if len(c.pending) == 0 {
			c.mu.Unlock()
			return
		}
		batch := c.pending
		c.pending = nil
		c.mu.Unlock()

		for _, path := range batch {
			c.remove(path)
		}
	}
}

// remove deletes the file. A file that is already gone counts as success:
// double dispatch and slow-filesystem races are expected and tolerated. Any
// other failure is logged and absorbed, never surfaced to a request.
func (c *Cleaner) remove(path string) {
	err := os.Remove(path)
	if err == nil || errors.Is(err, fs.ErrNotExist) {
		return
	}
	if c.log != nil {
		c.log.Warnw("avatar_cleanup_failed", "path", path, "err", err)
	}
}
