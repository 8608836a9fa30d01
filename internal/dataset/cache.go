package dataset

import (
	"errors"
	"path/filepath"

	"github.com/bluele/gcache"
	"github.com/fsnotify/fsnotify"

	"github.com/j-veylop/bikeshare-explorer/internal/logger"
)

// Cache keeps parsed city sources for the lifetime of the process so a
// restarted session does not re-read an unchanged file.
type Cache struct {
	lru     gcache.Cache
	watcher *fsnotify.Watcher
	watched map[string]bool
}

// NewCache creates an LRU cache holding up to size parsed sources. When a
// file watcher cannot be created the cache still works, relying on the
// modification-time check alone.
func NewCache(size int) *Cache {
	if size < 1 {
		size = 1
	}

	c := &Cache{watched: make(map[string]bool)}
	c.lru = gcache.New(size).
		LRU().
		LoaderFunc(func(key any) (any, error) {
			return readSource(key.(string))
		}).
		Build()

	watcher, err := fsnotify.NewBufferedWatcher(64)
	if err != nil {
		logger.Warn("source watcher unavailable", "error", err)
	} else {
		c.watcher = watcher
	}

	return c
}

// Get returns the parsed source at path, reading it on a miss.
func (c *Cache) Get(path string) (*source, error) {
	key, err := filepath.Abs(path)
	if err != nil {
		key = filepath.Clean(path)
	}

	c.drain()

	v, err := c.lru.Get(key)
	if err != nil {
		return nil, err
	}
	src := v.(*source)

	// Watch events can be dropped (network filesystems, buffer overflow),
	// so a stat check guards against serving an outdated parse.
	if src.stale() {
		logger.Debug("source changed on disk, reloading", "path", key)
		c.lru.Remove(key)
		v, err = c.lru.Get(key)
		if err != nil {
			return nil, err
		}
		src = v.(*source)
	}

	c.watch(filepath.Dir(key))
	return src, nil
}

// Len returns the number of cached sources.
func (c *Cache) Len() int {
	return c.lru.Len(false)
}

// Close stops the file watcher and empties the cache.
func (c *Cache) Close() error {
	c.lru.Purge()
	if c.watcher == nil {
		return nil
	}
	return c.watcher.Close()
}

func (c *Cache) watch(dir string) {
	if c.watcher == nil || c.watched[dir] {
		return
	}
	if err := c.watcher.Add(dir); err != nil {
		logger.Warn("failed to watch data directory", "dir", dir, "error", err)
		return
	}
	c.watched[dir] = true
}

// drain applies pending watch events without blocking.
func (c *Cache) drain() {
	if c.watcher == nil {
		return
	}
	for {
		select {
		case ev, ok := <-c.watcher.Events:
			if !ok {
				return
			}
			if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) ||
				ev.Has(fsnotify.Remove) || ev.Has(fsnotify.Rename) {
				if c.lru.Remove(filepath.Clean(ev.Name)) {
					logger.Debug("evicted changed source", "path", ev.Name, "op", ev.Op.String())
				}
			}
		case err, ok := <-c.watcher.Errors:
			if !ok {
				return
			}
			if !errors.Is(err, fsnotify.ErrEventOverflow) {
				logger.Warn("source watcher error", "error", err)
			}
		default:
			return
		}
	}
}
