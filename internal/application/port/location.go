package port

// Location is the address-bar-like fragment that mirrors the active path.
// Fragments carry no leading '#': "analysis/analysis-data".
type Location interface {
	// Fragment returns the current fragment.
	Fragment() string

	// Push records a new history entry with the fragment.
	Push(fragment string)

	// Replace swaps the current entry's fragment without adding history.
	Replace(fragment string)

	// OnPopState registers fn for back/forward traversal.
	// The returned func removes the listener.
	OnPopState(fn func(fragment string)) (remove func())
}
