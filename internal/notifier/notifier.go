package notifier

import (
	"context"
	"fmt"
)

// Permission is the answer a notification primitive gives before display.
type Permission int

const (
	PermissionUnsupported Permission = iota
	PermissionDenied
	PermissionGranted
)

func (p Permission) String() string {
	switch p {
	case PermissionGranted:
		return "granted"
	case PermissionDenied:
		return "denied"
	default:
		return "unsupported"
	}
}

// Notifier is a host notification primitive.
type Notifier interface {
	RequestPermission(ctx context.Context) Permission
	Display(ctx context.Context, title, body string) error
}

// Func adapts a display function into an always-granted Notifier.
type Func func(ctx context.Context, title, body string) error

func (f Func) RequestPermission(context.Context) Permission { return PermissionGranted }

func (f Func) Display(ctx context.Context, title, body string) error {
	if f == nil {
		return fmt.Errorf("no display function")
	}
	return f(ctx, title, body)
}
