package popup

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"ebook-checkout/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const never = -1

type fakeWindow struct {
	mu                sync.Mutex
	polls             int
	closeAfter        int
	inaccessibleUntil int
	err               error
	closeCalls        int
}

func (w *fakeWindow) Closed() (bool, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.polls++
	if w.err != nil {
		return false, w.err
	}
	if w.polls <= w.inaccessibleUntil {
		return false, ErrWindowInaccessible
	}
	return w.closeAfter != never && w.polls >= w.closeAfter, nil
}

func (w *fakeWindow) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.closeCalls++
	return nil
}

func (w *fakeWindow) closes() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.closeCalls
}

type fakeConfirmer struct {
	answer bool
	err    error
	calls  atomic.Int32
}

func (c *fakeConfirmer) Confirm(ctx context.Context, orderID string) (bool, error) {
	c.calls.Add(1)
	return c.answer, c.err
}

type stateLog struct {
	mu     sync.Mutex
	states []State
}

func (l *stateLog) record(s State) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.states = append(l.states, s)
}

func (l *stateLog) terminal() []State {
	l.mu.Lock()
	defer l.mu.Unlock()

	var out []State
	for _, s := range l.states {
		if s.Terminal() {
			out = append(out, s)
		}
	}
	return out
}

var fixedNow = time.UnixMilli(1700000000000)

func newTestMonitor(confirmer Confirmer, log *stateLog, poll, timeout time.Duration) *Monitor {
	return NewMonitor(Options{
		PollInterval: poll,
		Timeout:      timeout,
		Confirmer:    confirmer,
		OnState:      log.record,
		Now:          func() time.Time { return fixedNow },
	})
}

func TestWatch_ClosedAndConfirmed(t *testing.T) {
	win := &fakeWindow{closeAfter: 2}
	confirmer := &fakeConfirmer{answer: true}
	log := &stateLog{}
	m := newTestMonitor(confirmer, log, 10*time.Millisecond, time.Second)

	result, err := m.Watch(context.Background(), win, "order_1")

	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, model.StatusUserConfirmed, result.Status)
	assert.Equal(t, model.MethodPopup, result.Method)
	assert.Equal(t, "order_1", result.OrderID)
	assert.Equal(t, "cf_1700000000000", result.PaymentID)
	require.NotNil(t, result.UserConfirmed)
	assert.True(t, *result.UserConfirmed)

	assert.Equal(t, int32(1), confirmer.calls.Load())
	assert.Zero(t, win.closes())
	assert.Equal(t, []State{StateOpen, StatePendingConfirmation, StateConfirmed}, log.states)
}

func TestWatch_ClosedAndCancelled(t *testing.T) {
	win := &fakeWindow{closeAfter: 1}
	confirmer := &fakeConfirmer{answer: false}
	log := &stateLog{}
	m := newTestMonitor(confirmer, log, 10*time.Millisecond, time.Second)

	result, err := m.Watch(context.Background(), win, "order_2")

	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Equal(t, model.StatusUserCancelled, result.Status)
	assert.Equal(t, "Payment was cancelled by user", result.Message)
	assert.Empty(t, result.PaymentID)
	require.NotNil(t, result.UserConfirmed)
	assert.False(t, *result.UserConfirmed)
	assert.Equal(t, []State{StateCancelled}, log.terminal())
}

func TestWatch_TimeoutClosesWindowWithoutPrompt(t *testing.T) {
	win := &fakeWindow{closeAfter: never}
	confirmer := &fakeConfirmer{answer: true}
	log := &stateLog{}
	m := newTestMonitor(confirmer, log, 10*time.Millisecond, 60*time.Millisecond)

	result, err := m.Watch(context.Background(), win, "order_3")

	assert.Nil(t, result)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrPaymentTimeout))
	assert.Equal(t, "payment timeout after 60ms", err.Error())
	assert.Equal(t, 1, win.closes())
	assert.Zero(t, confirmer.calls.Load())
	assert.Equal(t, []State{StateTimedOut}, log.terminal())
}

func TestWatch_InaccessibleWindowIsIgnored(t *testing.T) {
	win := &fakeWindow{closeAfter: 4, inaccessibleUntil: 3}
	confirmer := &fakeConfirmer{answer: true}
	m := newTestMonitor(confirmer, &stateLog{}, 5*time.Millisecond, time.Second)

	result, err := m.Watch(context.Background(), win, "order_4")

	require.NoError(t, err)
	assert.Equal(t, model.StatusUserConfirmed, result.Status)
	assert.Equal(t, int32(1), confirmer.calls.Load())
}

func TestWatch_WindowErrorFails(t *testing.T) {
	boom := errors.New("handle gone")
	win := &fakeWindow{closeAfter: never, err: boom}
	confirmer := &fakeConfirmer{answer: true}
	log := &stateLog{}
	m := newTestMonitor(confirmer, log, 5*time.Millisecond, time.Second)

	_, err := m.Watch(context.Background(), win, "order_5")

	require.Error(t, err)
	assert.True(t, errors.Is(err, boom))
	assert.Zero(t, confirmer.calls.Load())
	assert.Equal(t, []State{StateFailed}, log.terminal())
}

func TestWatch_ConfirmerError(t *testing.T) {
	win := &fakeWindow{closeAfter: 1}
	confirmer := &fakeConfirmer{err: ErrConfirmationExpired}
	log := &stateLog{}
	m := newTestMonitor(confirmer, log, 5*time.Millisecond, time.Second)

	_, err := m.Watch(context.Background(), win, "order_6")

	assert.True(t, errors.Is(err, ErrConfirmationExpired))
	assert.Equal(t, []State{StateFailed}, log.terminal())
}

func TestWatch_ContextCancelled(t *testing.T) {
	win := &fakeWindow{closeAfter: never}
	m := newTestMonitor(&fakeConfirmer{}, &stateLog{}, 5*time.Millisecond, time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := m.Watch(ctx, win, "order_7")

	assert.True(t, errors.Is(err, context.DeadlineExceeded))
	assert.Zero(t, win.closes())
}

func TestWatch_MonitorIsSingleUse(t *testing.T) {
	m := newTestMonitor(&fakeConfirmer{answer: true}, &stateLog{}, 5*time.Millisecond, time.Second)

	_, err := m.Watch(context.Background(), &fakeWindow{closeAfter: 1}, "order_8")
	require.NoError(t, err)

	_, err = m.Watch(context.Background(), &fakeWindow{closeAfter: 1}, "order_8")
	assert.ErrorIs(t, err, ErrMonitorReused)
}

type blockedOpener struct{}

func (blockedOpener) Open(ctx context.Context, url, name, features string) (Window, error) {
	return nil, ErrPopupBlocked
}

type staticOpener struct {
	win  Window
	urls []string
}

func (o *staticOpener) Open(ctx context.Context, url, name, features string) (Window, error) {
	o.urls = append(o.urls, url)
	return o.win, nil
}

func TestRun_BlockedPopupFailsBeforePolling(t *testing.T) {
	confirmer := &fakeConfirmer{answer: true}
	log := &stateLog{}
	m := newTestMonitor(confirmer, log, 5*time.Millisecond, time.Second)

	result, err := m.Run(context.Background(), blockedOpener{}, "https://payments-test.cashfree.com/pay", "cashfree_payment", "", "order_9")

	assert.Nil(t, result)
	assert.ErrorIs(t, err, ErrPopupBlocked)
	assert.Zero(t, confirmer.calls.Load())
	assert.Equal(t, []State{StateOpening, StateBlocked}, log.states)
}

func TestRun_OpensThenWatches(t *testing.T) {
	win := &fakeWindow{closeAfter: 2}
	opener := &staticOpener{win: win}
	m := newTestMonitor(&fakeConfirmer{answer: true}, &stateLog{}, 5*time.Millisecond, time.Second)

	result, err := m.Run(context.Background(), opener, "https://pay.example/x", "cashfree_payment", "", "order_10")

	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, []string{"https://pay.example/x"}, opener.urls)
}

// Closing right around the deadline must still produce one outcome.
func TestWatch_ExactlyOneTerminalState(t *testing.T) {
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			win := &fakeWindow{closeAfter: 4}
			confirmer := &fakeConfirmer{answer: true}
			log := &stateLog{}
			m := newTestMonitor(confirmer, log, 5*time.Millisecond, 20*time.Millisecond)

			result, err := m.Watch(context.Background(), win, "order_race")

			terminal := log.terminal()
			assert.Len(t, terminal, 1)
			if err != nil {
				assert.ErrorIs(t, err, ErrPaymentTimeout)
				assert.Nil(t, result)
				assert.Zero(t, confirmer.calls.Load())
				assert.Equal(t, 1, win.closes())
			} else {
				assert.Equal(t, int32(1), confirmer.calls.Load())
				assert.Zero(t, win.closes())
			}
		}()
	}
	wg.Wait()
}

func TestHumanDuration(t *testing.T) {
	assert.Equal(t, "15 minutes", humanDuration(15*time.Minute))
	assert.Equal(t, "1 minute", humanDuration(time.Minute))
	assert.Equal(t, "90 seconds", humanDuration(90*time.Second))
	assert.Equal(t, "1.5s", humanDuration(1500*time.Millisecond))
}

func TestNewMonitor_Defaults(t *testing.T) {
	m := NewMonitor(Options{})

	assert.Equal(t, 2*time.Second, m.pollInterval)
	assert.Equal(t, 15*time.Minute, m.timeout)
}
