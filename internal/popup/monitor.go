package popup

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"ebook-checkout/internal/model"
)

const (
	DefaultPollInterval = 2 * time.Second
	DefaultTimeout      = 15 * time.Minute
)

type Options struct {
	PollInterval time.Duration
	Timeout      time.Duration
	Confirmer    Confirmer
	Logger       *slog.Logger

	// OnState is called on every transition, from the monitor's goroutine.
	OnState func(State)

	// Now defaults to time.Now; used for the fabricated payment id.
	Now func() time.Time
}

// Monitor watches a single popup. Create one per checkout attempt.
type Monitor struct {
	pollInterval time.Duration
	timeout      time.Duration
	confirmer    Confirmer
	logger       *slog.Logger
	onState      func(State)
	now          func() time.Time

	started atomic.Bool
}

func NewMonitor(opts Options) *Monitor {
	m := &Monitor{
		pollInterval: opts.PollInterval,
		timeout:      opts.Timeout,
		confirmer:    opts.Confirmer,
		logger:       opts.Logger,
		onState:      opts.OnState,
		now:          opts.Now,
	}
	if m.pollInterval <= 0 {
		m.pollInterval = DefaultPollInterval
	}
	if m.timeout <= 0 {
		m.timeout = DefaultTimeout
	}
	if m.logger == nil {
		m.logger = slog.Default()
	}
	if m.now == nil {
		m.now = time.Now
	}
	return m
}

func (m *Monitor) setState(s State) {
	if m.onState != nil {
		m.onState(s)
	}
}

// Run opens the popup and watches it. A blocked popup fails before any polling.
func (m *Monitor) Run(ctx context.Context, opener Opener, url, name, features, orderID string) (*model.PaymentResult, error) {
	if m.started.Load() {
		return nil, ErrMonitorReused
	}

	m.setState(StateOpening)
	win, err := opener.Open(ctx, url, name, features)
	if err != nil {
		m.started.Store(true)
		if errors.Is(err, ErrPopupBlocked) {
			m.setState(StateBlocked)
		} else {
			m.setState(StateFailed)
		}
		return nil, fmt.Errorf("open payment popup: %w", err)
	}

	return m.Watch(ctx, win, orderID)
}

// Watch polls win until it reports closed, then asks the Confirmer once.
// If the window is still open when the timeout fires it is closed and
// ErrPaymentTimeout is returned without prompting.
func (m *Monitor) Watch(ctx context.Context, win Window, orderID string) (*model.PaymentResult, error) {
	if !m.started.CompareAndSwap(false, true) {
		return nil, ErrMonitorReused
	}

	log := m.logger.With("order_id", orderID)

	ticker := time.NewTicker(m.pollInterval)
	defer ticker.Stop()
	deadline := time.NewTimer(m.timeout)
	defer deadline.Stop()

	m.setState(StateOpen)
	log.Info("monitoring payment popup", "poll_interval", m.pollInterval, "timeout", m.timeout)

	for {
		select {
		case <-ctx.Done():
			m.setState(StateFailed)
			return nil, ctx.Err()

		case <-deadline.C:
			ticker.Stop()
			if err := win.Close(); err != nil {
				log.Warn("close timed out popup", "error", err)
			}
			m.setState(StateTimedOut)
			log.Warn("payment popup timed out")
			return nil, fmt.Errorf("%w after %s", ErrPaymentTimeout, humanDuration(m.timeout))

		case <-ticker.C:
			closed, err := win.Closed()
			if errors.Is(err, ErrWindowInaccessible) {
				log.Debug("popup on gateway origin, continuing")
				continue
			}
			if err != nil {
				m.setState(StateFailed)
				return nil, fmt.Errorf("check popup window: %w", err)
			}
			if !closed {
				continue
			}

			deadline.Stop()
			ticker.Stop()
			return m.confirm(ctx, orderID)
		}
	}
}

func (m *Monitor) confirm(ctx context.Context, orderID string) (*model.PaymentResult, error) {
	log := m.logger.With("order_id", orderID)

	m.setState(StatePendingConfirmation)
	log.Info("payment popup closed, asking buyer")

	if m.confirmer == nil {
		m.setState(StateFailed)
		return nil, fmt.Errorf("no confirmer for order %s", orderID)
	}

	completed, err := m.confirmer.Confirm(ctx, orderID)
	if err != nil {
		m.setState(StateFailed)
		return nil, fmt.Errorf("confirm payment: %w", err)
	}

	if !completed {
		m.setState(StateCancelled)
		log.Info("buyer reported payment not completed")
		return &model.PaymentResult{
			Success:       false,
			OrderID:       orderID,
			Method:        model.MethodPopup,
			UserConfirmed: boolPtr(false),
			Status:        model.StatusUserCancelled,
			Message:       "Payment was cancelled by user",
		}, nil
	}

	m.setState(StateConfirmed)
	log.Info("buyer confirmed payment")
	return &model.PaymentResult{
		Success:       true,
		OrderID:       orderID,
		PaymentID:     fmt.Sprintf("cf_%d", m.now().UnixMilli()),
		Method:        model.MethodPopup,
		UserConfirmed: boolPtr(true),
		Status:        model.StatusUserConfirmed,
	}, nil
}

func humanDuration(d time.Duration) string {
	switch {
	case d >= time.Minute && d%time.Minute == 0:
		if d == time.Minute {
			return "1 minute"
		}
		return fmt.Sprintf("%d minutes", int(d/time.Minute))
	case d >= time.Second && d%time.Second == 0:
		return fmt.Sprintf("%d seconds", int(d/time.Second))
	}
	return d.String()
}

func boolPtr(b bool) *bool {
	return &b
}
