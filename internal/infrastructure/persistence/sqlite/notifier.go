package sqlite

import (
	"context"
	"sync"
	"time"

	"github.com/bnema/tabnav/internal/application/port"
	"github.com/bnema/tabnav/internal/logging"
)

var _ port.ChangeNotifier = (*StateSlotRepository)(nil)

// Subscribe polls the slot's revision and calls fn when another instance
// has written or removed it since the last poll.
func (r *StateSlotRepository) Subscribe(ctx context.Context, key string, fn func(raw string)) (func(), error) {
	start, err := r.revision(ctx, key)
	if err != nil {
		return nil, err
	}

	log := logging.FromContext(ctx)
	done := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)

	go func() {
		defer wg.Done()
		ticker := time.NewTicker(r.pollInterval)
		defer ticker.Stop()

		seen := start.revision
		for {
			select {
			case <-ctx.Done():
				return
			case <-done:
				return
			case <-ticker.C:
				rev, err := r.revision(ctx, key)
				if err != nil {
					if ctx.Err() == nil {
						log.Debug().Err(err).Str("key", key).Msg("state slot poll failed")
					}
					continue
				}
				if rev.revision == seen {
					continue
				}
				seen = rev.revision
				if rev.writer == r.instanceID {
					continue
				}
				if rev.deleted {
					fn("")
					continue
				}
				fn(rev.value)
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			close(done)
			wg.Wait()
		})
	}, nil
}
