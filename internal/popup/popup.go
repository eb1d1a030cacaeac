// Package popup tracks a browser window that hosts the gateway's checkout page
// and turns its closure into a PaymentResult.
package popup

import (
	"context"
	"errors"
)

var (
	// ErrPopupBlocked is returned by an Opener when the browser refused to open the window.
	ErrPopupBlocked = errors.New("payment popup was blocked, allow popups and try again")

	// ErrPaymentTimeout is returned when the window is still open after the monitor's ceiling.
	ErrPaymentTimeout = errors.New("payment timeout")

	// ErrWindowInaccessible is the ignorable Closed() failure: the window is on
	// the gateway's origin and its state cannot be read right now.
	ErrWindowInaccessible = errors.New("popup window not accessible")

	ErrConfirmationExpired = errors.New("payment confirmation not answered in time")
	ErrMonitorReused       = errors.New("popup monitor already started")
)

// Window is a handle on an opened browsing context.
type Window interface {
	Closed() (bool, error)
	Close() error
}

type Opener interface {
	Open(ctx context.Context, url, name, features string) (Window, error)
}

// Confirmer asks the buyer whether the payment went through.
type Confirmer interface {
	Confirm(ctx context.Context, orderID string) (bool, error)
}

type State string

const (
	StateOpening             State = "opening"
	StateOpen                State = "open"
	StatePendingConfirmation State = "closed_pending_confirmation"
	StateConfirmed           State = "confirmed"
	StateCancelled           State = "cancelled"
	StateTimedOut            State = "timed_out"
	StateBlocked             State = "blocked"
	StateFailed              State = "failed"
)

func (s State) Terminal() bool {
	switch s {
	case StateConfirmed, StateCancelled, StateTimedOut, StateBlocked, StateFailed:
		return true
	}
	return false
}
