package port

// FocusProvider tells the keyboard layer whether a text field has focus.
// Arrow keys belong to the field while it does.
type FocusProvider interface {
	TextInputFocused() bool
}
