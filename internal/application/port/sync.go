package port

import "context"

// ChangeNotifier reports writes made to a state slot by other instances.
// Writes made through the same instance are not reported back.
type ChangeNotifier interface {
	// Subscribe calls fn with the new raw value (empty when removed) each time
	// a sibling instance changes key. The returned func cancels the subscription.
	Subscribe(ctx context.Context, key string, fn func(raw string)) (unsubscribe func(), err error)
}
