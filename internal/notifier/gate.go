package notifier

import "context"

// Gate wraps a Notifier and denies permission while enabled reports false.
// The daemon points enabled at the notifications_enabled setting.
type Gate struct {
	next    Notifier
	enabled func() bool
}

func NewGate(next Notifier, enabled func() bool) *Gate {
	return &Gate{next: next, enabled: enabled}
}

func (g *Gate) RequestPermission(ctx context.Context) Permission {
	if g.enabled != nil && !g.enabled() {
		return PermissionDenied
	}
	return g.next.RequestPermission(ctx)
}

func (g *Gate) Display(ctx context.Context, title, body string) error {
	return g.next.Display(ctx, title, body)
}
