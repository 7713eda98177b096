package file

import (
	"context"
	"fmt"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/bnema/tabnav/internal/application/port"
	"github.com/bnema/tabnav/internal/logging"
)

var _ port.ChangeNotifier = (*Slot)(nil)

// Subscribe watches the state directory and calls fn when another process
// replaces or removes the file for key. The directory is watched rather than
// the file because atomic renames swap the inode.
func (s *Slot) Subscribe(ctx context.Context, key string, fn func(raw string)) (func(), error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create state watcher: %w", err)
	}
	if err := watcher.Add(s.dir); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("watch state directory: %w", err)
	}

	log := logging.FromContext(ctx)
	path := s.Path(key)
	done := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)

	last, _, _ := s.Get(ctx, key)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-ctx.Done():
				return
			case <-done:
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if event.Name != path || !event.Op.Has(fsnotify.Create|fsnotify.Write|fsnotify.Rename|fsnotify.Remove) {
					continue
				}
				raw, _, err := s.Get(ctx, key)
				if err != nil {
					log.Debug().Err(err).Str("path", path).Msg("failed to read changed state file")
					continue
				}
				if raw == last || s.isOwn(key, raw) {
					last = raw
					continue
				}
				last = raw
				s.forget(key)
				fn(raw)
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.Warn().Err(err).Str("dir", s.dir).Msg("state watcher error")
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			close(done)
			_ = watcher.Close()
			wg.Wait()
		})
	}, nil
}
