// Package wakelock keeps the display awake while the dashboard is focused.
package wakelock

import "errors"

var ErrAcquire = errors.New("failed to acquire wake lock")

// Lock is safe to acquire and release repeatedly.
type Lock interface {
	Acquire() error
	Release() error
}

// Noop is used when the platform offers no inhibitor or the wake lock is disabled.
type Noop struct{}

func (Noop) Acquire() error { return nil }

func (Noop) Release() error { return nil }
