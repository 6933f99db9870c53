package config

import (
	"context"
	"log/slog"

	"github.com/fsnotify/fsnotify"
)

// Watch reloads the configuration whenever a file-backed source changes and
// reports each successful reload on the returned channel with the path that
// triggered it. The watcher stops when ctx is done, closing the channel.
//
// Notifications are best effort: a reload that happens while the subscriber
// is busy is not queued twice.
func (c *Config) Watch(ctx context.Context) (<-chan string, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	for _, s := range c.sources {
		if loc := s.Location(); loc != "" {
			if err := watcher.Add(loc); err != nil {
				watcher.Close()
				return nil, err
			}
		}
	}
	ch := make(chan string, 1)
	go func() {
		defer watcher.Close()
		defer close(ch)
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
					continue
				}
				if err := c.Reload(); err != nil {
					slog.Warn("config reload failed", "path", event.Name, "error", err)
					continue
				}
				select {
				case ch <- event.Name:
				default:
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				slog.Warn("config watcher error", "error", err)
			}
		}
	}()
	return ch, nil
}
