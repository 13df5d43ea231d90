package push

import (
	"context"
	"time"
)

type Permission string

const (
	PermissionDefault     Permission = "default"
	PermissionGranted     Permission = "granted"
	PermissionDenied      Permission = "denied"
	PermissionUnsupported Permission = "unsupported"
)

// Registration describes a service-worker registration. At most one of the
// lifecycle fields is set; all empty means the worker is registered but has
// no observable phase yet.
type Registration struct {
	Scope      string
	Active     string
	Installing string
	Waiting    string
}

// WorkerState renders the registration phase the way the diagnostics panel
// shows it, e.g. "active:activated" or "unregistered".
func (r *Registration) WorkerState() string {
	if r == nil {
		return "unregistered"
	}
	switch {
	case r.Active != "":
		return "active:" + r.Active
	case r.Installing != "":
		return "installing:" + r.Installing
	case r.Waiting != "":
		return "waiting:" + r.Waiting
	}
	return "registered"
}

// Subscription is the opaque handle issued by the push service. ExpiresAt is
// nil when the push service sets no expiry.
type Subscription struct {
	Endpoint  string
	ExpiresAt *time.Time
}

// Browser abstracts the push-capable user agent so the manager can be
// exercised without one. Implementations wrap the real browser bridge;
// tests substitute a fake.
type Browser interface {
	SupportsServiceWorker() bool
	SupportsPushManager() bool

	Permission() Permission
	// RequestPermission may prompt the user; the returned permission is the
	// final state after the prompt resolves.
	RequestPermission(ctx context.Context) (Permission, error)

	// Register installs the service worker, Ready returns the current
	// registration or nil when none exists.
	Register(ctx context.Context) (*Registration, error)
	Ready(ctx context.Context) (*Registration, error)

	Subscribe(ctx context.Context) (*Subscription, error)
	GetSubscription(ctx context.Context) (*Subscription, error)
	// Unsubscribe reports false when there was no subscription to drop.
	Unsubscribe(ctx context.Context) (bool, error)
}
