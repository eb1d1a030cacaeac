package popup

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRemoteWindow_OpenAcknowledged(t *testing.T) {
	w := NewRemoteWindow(time.Second, time.Second)
	require.NoError(t, w.Acknowledge(true))

	win, err := w.Open(context.Background(), "https://pay.example", "cashfree_payment", "")

	require.NoError(t, err)
	assert.Same(t, w, win)
	assert.ErrorIs(t, w.Acknowledge(true), ErrAlreadyAcknowledged)
}

func TestRemoteWindow_OpenBlocked(t *testing.T) {
	w := NewRemoteWindow(time.Second, time.Second)
	require.NoError(t, w.Acknowledge(false))

	_, err := w.Open(context.Background(), "https://pay.example", "cashfree_payment", "")

	assert.ErrorIs(t, err, ErrPopupBlocked)
}

func TestRemoteWindow_OpenWithoutAckCountsAsBlocked(t *testing.T) {
	w := NewRemoteWindow(20*time.Millisecond, time.Second)

	_, err := w.Open(context.Background(), "https://pay.example", "cashfree_payment", "")

	assert.ErrorIs(t, err, ErrPopupBlocked)
	assert.Contains(t, err.Error(), "no acknowledgement")
}

func TestRemoteWindow_Observations(t *testing.T) {
	w := NewRemoteWindow(time.Second, time.Second)

	closed, err := w.Closed()
	require.NoError(t, err)
	assert.False(t, closed)

	require.NoError(t, w.Report(ObservedInaccessible))
	_, err = w.Closed()
	assert.ErrorIs(t, err, ErrWindowInaccessible)

	require.NoError(t, w.Report(ObservedClosed))
	closed, err = w.Closed()
	require.NoError(t, err)
	assert.True(t, closed)

	assert.ErrorIs(t, w.Report("minimized"), ErrUnknownObservation)
}

func TestRemoteWindow_CloseRequest(t *testing.T) {
	w := NewRemoteWindow(time.Second, time.Second)
	assert.False(t, w.CloseRequested())

	require.NoError(t, w.Close())

	assert.True(t, w.CloseRequested())
}

func TestRemoteWindow_ConfirmAnswered(t *testing.T) {
	w := NewRemoteWindow(time.Second, time.Second)
	assert.ErrorIs(t, w.Answer(true), ErrNotAwaitingConfirmation)

	done := make(chan bool, 1)
	go func() {
		ok, err := w.Confirm(context.Background(), "order_1")
		assert.NoError(t, err)
		done <- ok
	}()

	require.Eventually(t, w.AwaitingConfirmation, time.Second, time.Millisecond)
	require.NoError(t, w.Answer(true))

	select {
	case ok := <-done:
		assert.True(t, ok)
	case <-time.After(time.Second):
		t.Fatal("confirm did not return")
	}
	assert.False(t, w.AwaitingConfirmation())
}

func TestRemoteWindow_ConfirmExpires(t *testing.T) {
	w := NewRemoteWindow(time.Second, 20*time.Millisecond)

	_, err := w.Confirm(context.Background(), "order_2")

	assert.ErrorIs(t, err, ErrConfirmationExpired)
	assert.False(t, w.AwaitingConfirmation())
}

// End to end over the remote handle, the way the HTTP layer drives it.
func TestRemoteWindow_WithMonitor(t *testing.T) {
	w := NewRemoteWindow(time.Second, time.Second)
	m := NewMonitor(Options{PollInterval: 5 * time.Millisecond, Timeout: time.Second, Confirmer: w})

	go func() {
		_ = w.Acknowledge(true)
		time.Sleep(20 * time.Millisecond)
		_ = w.Report(ObservedClosed)
		for !w.AwaitingConfirmation() {
			time.Sleep(time.Millisecond)
		}
		_ = w.Answer(true)
	}()

	result, err := m.Run(context.Background(), w, "https://pay.example", "cashfree_payment", "", "order_3")

	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.False(t, w.CloseRequested())
}
