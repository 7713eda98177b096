package port

import (
	"context"

	"github.com/bnema/tabnav/internal/domain/entity"
)

// NavigationGuard can veto a tab change, typically to protect unsaved work.
type NavigationGuard interface {
	// CanNavigate reports whether leaving from for to may proceed.
	// An error counts as a decline.
	CanNavigate(ctx context.Context, from, to entity.TabID) (bool, error)

	// Message is shown to the user when navigation is declined.
	Message() string
}

// GuardFunc adapts a function into a NavigationGuard.
type GuardFunc struct {
	Fn  func(ctx context.Context, from, to entity.TabID) (bool, error)
	Msg string
}

// CanNavigate calls g.Fn. A nil Fn always allows.
func (g GuardFunc) CanNavigate(ctx context.Context, from, to entity.TabID) (bool, error) {
	if g.Fn == nil {
		return true, nil
	}
	return g.Fn(ctx, from, to)
}

// Message returns g.Msg.
func (g GuardFunc) Message() string {
	return g.Msg
}
