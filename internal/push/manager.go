package push

import (
	"context"
	"errors"
	"fmt"
	"time"
)

var (
	ErrPermissionNotGranted = errors.New("notification permission was not granted")
	ErrWorkerUnavailable    = errors.New("service worker could not be registered")
	ErrSubscribeFailed      = errors.New("push subscription failed")
	ErrNoSubscription       = errors.New("no subscription found to remove")
)

// expiryWarningWindow is how close a subscription may get to its expiry
// before Diagnose flags it.
const expiryWarningWindow = 30 * time.Minute

type Diagnostics struct {
	Supported            bool       `json:"isSupported"`
	PushManagerSupported bool       `json:"pushManagerSupported"`
	Permission           Permission `json:"permission"`
	WorkerState          string     `json:"workerState"`
	Scope                string     `json:"scope,omitempty"`
	HasSubscription      bool       `json:"hasSubscription"`
	ExpiresAt            *time.Time `json:"subscriptionExpiresAt,omitempty"`
	MinutesToExpiry      *int       `json:"subscriptionTimeToExpiryMinutes,omitempty"`
	CheckedAt            time.Time  `json:"lastUpdated"`
	Issues               []string   `json:"issues"`
}

// Manager owns one browser's relationship with the push service: permission,
// worker registration and the single subscription per registration. It does
// not deliver anything itself; delivery stays with the push service.
type Manager struct {
	browser Browser
	now     func() time.Time
}

func NewManager(browser Browser) *Manager {
	return &Manager{browser: browser, now: time.Now}
}

// Diagnose snapshots the current push state and derives the list of
// actionable issues.
func (m *Manager) Diagnose(ctx context.Context) (*Diagnostics, error) {
	d := &Diagnostics{
		Supported:            m.browser.SupportsServiceWorker(),
		PushManagerSupported: m.browser.SupportsPushManager(),
		Permission:           m.browser.Permission(),
		WorkerState:          (*Registration)(nil).WorkerState(),
		CheckedAt:            m.now(),
	}

	if d.Supported {
		registration, err := m.browser.Ready(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to inspect service worker: %w", err)
		}
		d.WorkerState = registration.WorkerState()
		if registration != nil {
			d.Scope = registration.Scope

			subscription, err := m.browser.GetSubscription(ctx)
			if err != nil {
				return nil, fmt.Errorf("failed to read subscription: %w", err)
			}
			if subscription != nil {
				d.HasSubscription = true
				d.ExpiresAt = subscription.ExpiresAt
				d.MinutesToExpiry = m.minutesToExpiry(subscription)
			}
		}
	}

	d.Issues = m.deriveIssues(d)
	return d, nil
}

func (m *Manager) minutesToExpiry(subscription *Subscription) *int {
	if subscription.ExpiresAt == nil {
		return nil
	}
	minutes := 0
	if left := subscription.ExpiresAt.Sub(m.now()); left > 0 {
		minutes = int(left.Round(time.Minute) / time.Minute)
	}
	return &minutes
}

func (m *Manager) deriveIssues(d *Diagnostics) []string {
	issues := []string{}
	if !d.Supported {
		issues = append(issues, "Service workers are not supported in this browser.")
	}
	if d.Supported && !d.PushManagerSupported {
		issues = append(issues, "Push Manager API unavailable.")
	}
	if d.Permission == PermissionDenied {
		issues = append(issues, "User has denied notification permission.")
	}
	if !d.HasSubscription && d.Permission == PermissionGranted {
		issues = append(issues, "No active push subscription. Try re-subscribing.")
	}
	if d.MinutesToExpiry != nil && time.Duration(*d.MinutesToExpiry)*time.Minute < expiryWarningWindow {
		issues = append(issues, "Subscription expires soon. Consider refreshing it.")
	}
	return issues
}

// Resubscribe recovers from a stale or expiring subscription: prompt for
// permission, ensure the worker, drop any existing subscription and take a
// fresh one.
func (m *Manager) Resubscribe(ctx context.Context) (*Subscription, error) {
	permission, err := m.browser.RequestPermission(ctx)
	if err != nil {
		return nil, err
	}
	if permission != PermissionGranted {
		return nil, ErrPermissionNotGranted
	}

	registration, err := m.browser.Register(ctx)
	if err != nil {
		return nil, err
	}
	if registration == nil {
		return nil, ErrWorkerUnavailable
	}

	// Dropping a missing subscription is fine here, unlike Remove.
	if _, err := m.browser.Unsubscribe(ctx); err != nil {
		return nil, err
	}

	subscription, err := m.browser.Subscribe(ctx)
	if err != nil {
		return nil, err
	}
	if subscription == nil {
		return nil, ErrSubscribeFailed
	}
	return subscription, nil
}

// Remove drops the current subscription, failing when none existed.
func (m *Manager) Remove(ctx context.Context) error {
	existed, err := m.browser.Unsubscribe(ctx)
	if err != nil {
		return err
	}
	if !existed {
		return ErrNoSubscription
	}
	return nil
}
