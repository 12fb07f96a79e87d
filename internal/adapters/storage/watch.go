package storage

import (
	"context"
	"sync"

	"pulse/internal/logging"
)

// watchQuery turns a point-in-time query into a live subscription: the
// current result is delivered immediately, then re-queried and
// re-delivered whenever a write touches the collection. The consumer
// must call the returned cancel function when done; not doing so leaks
// the goroutine and the notifier registration.
func watchQuery[T any](ctx context.Context, n *notifier, col collection, query func(context.Context) (T, error)) (<-chan T, func(), error) {
	initial, err := query(ctx)
	if err != nil {
		return nil, nil, err
	}

	sigCh, unsubscribe := n.subscribe(col)
	out := make(chan T, 1)
	out <- initial

	stopCh := make(chan struct{})
	var once sync.Once
	cancel := func() {
		once.Do(func() {
			unsubscribe()
			close(stopCh)
		})
	}

	go func() {
		defer close(out)
		for {
			select {
			case <-stopCh:
				return
			case <-ctx.Done():
				cancel()
				return
			case <-sigCh:
				snapshot, err := query(ctx)
				if err != nil {
					// The subscription stays alive; the next write
					// triggers another attempt
					logging.Logger.Error("watch query failed", "collection", col, "error", err)
					continue
				}

				// Coalesce: drop an unconsumed snapshot before
				// delivering the fresh one
				select {
				case <-out:
				default:
				}
				select {
				case out <- snapshot:
				case <-stopCh:
					return
				}
			}
		}
	}()

	return out, cancel, nil
}
