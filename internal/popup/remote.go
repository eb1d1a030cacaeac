package popup

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
)

// Observation is what the browser last saw of the popup it opened.
type Observation string

const (
	ObservedOpen         Observation = "open"
	ObservedClosed       Observation = "closed"
	ObservedInaccessible Observation = "inaccessible"
)

var (
	ErrAlreadyAcknowledged     = errors.New("popup open already acknowledged")
	ErrNotAwaitingConfirmation = errors.New("popup is not awaiting confirmation")
	ErrUnknownObservation      = errors.New("unknown popup observation")
)

// RemoteWindow is the server side of a popup living in the buyer's browser.
// The browser feeds it through Acknowledge, Report and Answer; the monitor
// reads it through the Window, Opener and Confirmer interfaces.
type RemoteWindow struct {
	ackTimeout     time.Duration
	confirmTimeout time.Duration

	ack     chan bool
	answers chan bool

	mu             sync.Mutex
	acknowledged   bool
	observed       Observation
	closeRequested bool
	awaiting       bool
}

func NewRemoteWindow(ackTimeout, confirmTimeout time.Duration) *RemoteWindow {
	return &RemoteWindow{
		ackTimeout:     ackTimeout,
		confirmTimeout: confirmTimeout,
		ack:            make(chan bool, 1),
		answers:        make(chan bool, 1),
		observed:       ObservedOpen,
	}
}

// Acknowledge records whether window.open succeeded in the browser.
func (w *RemoteWindow) Acknowledge(opened bool) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.acknowledged {
		return ErrAlreadyAcknowledged
	}
	w.acknowledged = true
	w.ack <- opened
	return nil
}

func (w *RemoteWindow) Report(obs Observation) error {
	switch obs {
	case ObservedOpen, ObservedClosed, ObservedInaccessible:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownObservation, obs)
	}

	w.mu.Lock()
	w.observed = obs
	w.mu.Unlock()
	return nil
}

// Answer delivers the buyer's reply to the confirmation prompt.
func (w *RemoteWindow) Answer(completed bool) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.awaiting {
		return ErrNotAwaitingConfirmation
	}
	w.awaiting = false
	w.answers <- completed
	return nil
}

func (w *RemoteWindow) CloseRequested() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.closeRequested
}

func (w *RemoteWindow) AwaitingConfirmation() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.awaiting
}

// Open waits for the browser to acknowledge the popup. No acknowledgement
// within the ack timeout counts as blocked.
func (w *RemoteWindow) Open(ctx context.Context, url, name, features string) (Window, error) {
	timer := time.NewTimer(w.ackTimeout)
	defer timer.Stop()

	select {
	case opened := <-w.ack:
		if !opened {
			return nil, ErrPopupBlocked
		}
		return w, nil
	case <-timer.C:
		return nil, fmt.Errorf("%w: no acknowledgement within %s", ErrPopupBlocked, w.ackTimeout)
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (w *RemoteWindow) Closed() (bool, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	switch w.observed {
	case ObservedClosed:
		return true, nil
	case ObservedInaccessible:
		return false, ErrWindowInaccessible
	}
	return false, nil
}

// Close asks the browser to close the popup on its next status poll.
func (w *RemoteWindow) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.closeRequested = true
	return nil
}

func (w *RemoteWindow) Confirm(ctx context.Context, orderID string) (bool, error) {
	w.mu.Lock()
	w.awaiting = true
	w.mu.Unlock()

	timer := time.NewTimer(w.confirmTimeout)
	defer timer.Stop()

	select {
	case completed := <-w.answers:
		return completed, nil
	case <-timer.C:
		w.mu.Lock()
		defer w.mu.Unlock()
		w.awaiting = false
		// an answer may have landed while the timer fired
		select {
		case completed := <-w.answers:
			return completed, nil
		default:
		}
		return false, fmt.Errorf("order %s: %w", orderID, ErrConfirmationExpired)
	case <-ctx.Done():
		w.mu.Lock()
		w.awaiting = false
		w.mu.Unlock()
		return false, ctx.Err()
	}
}
