package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"ebook-checkout/internal/client"
	"ebook-checkout/internal/config"
	"ebook-checkout/internal/dto"
	"ebook-checkout/internal/model"
	"ebook-checkout/internal/popup"

	"github.com/google/uuid"
)

var ErrSessionNotFound = errors.New("popup session not found")

type PopupService interface {
	Start(intent *model.OrderIntent, popupURL string) (*dto.PopupSession, error)
	Acknowledge(sessionID string, opened bool) error
	Report(sessionID string, observation string) error
	Answer(sessionID string, completed bool) error
	Status(sessionID string) (*dto.PopupStatusResponse, error)
	Shutdown()
}

type popupSession struct {
	id      string
	orderID string
	window  *popup.RemoteWindow

	mu          sync.Mutex
	state       popup.State
	terminal    popup.State
	result      *model.PaymentResult
	redirectURL string
	err         error
	retention   *time.Timer
}

// Terminal states are held back until finish stores the outcome, so a
// status poll never sees "confirmed" without its result.
func (s *popupSession) setState(state popup.State) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if state.Terminal() {
		s.terminal = state
		return
	}
	s.state = state
}

func (s *popupSession) finish(result *model.PaymentResult, err error, redirect func(popup.State) string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.result = result
	s.err = err
	switch {
	case s.terminal != "":
		s.state = s.terminal
	case err != nil:
		s.state = popup.StateFailed
	}

	s.redirectURL = redirect(s.state)
	if s.result != nil {
		s.result.RedirectURL = s.redirectURL
	}
}

type popupServiceImpl struct {
	popupCfg config.Popup
	baseURL  string
	urls     config.URLs
	logger   *slog.Logger

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu       sync.RWMutex
	sessions map[string]*popupSession
}

func NewPopupService(cfg *config.Config, logger *slog.Logger) PopupService {
	ctx, cancel := context.WithCancel(context.Background())
	return &popupServiceImpl{
		popupCfg: cfg.Popup,
		baseURL:  cfg.BaseURL,
		urls:     cfg.URLs,
		logger:   logger,
		ctx:      ctx,
		cancel:   cancel,
		sessions: make(map[string]*popupSession),
	}
}

// Start registers a popup session for intent and runs its monitor in the
// background. The browser drives the session through the other methods.
func (s *popupServiceImpl) Start(intent *model.OrderIntent, popupURL string) (*dto.PopupSession, error) {
	if err := s.ctx.Err(); err != nil {
		return nil, fmt.Errorf("popup service stopped: %w", err)
	}

	sess := &popupSession{
		id:      uuid.NewString(),
		orderID: intent.OrderID,
		window:  popup.NewRemoteWindow(s.popupCfg.OpenAckTimeout, s.popupCfg.ConfirmTimeout),
		state:   popup.StateOpening,
	}
	log := s.logger.With("session_id", sess.id, "order_id", sess.orderID)

	monitor := popup.NewMonitor(popup.Options{
		PollInterval: s.popupCfg.PollInterval,
		Timeout:      s.popupCfg.Timeout,
		Confirmer:    sess.window,
		Logger:       log,
		OnState:      sess.setState,
	})

	s.mu.Lock()
	s.sessions[sess.id] = sess
	s.mu.Unlock()

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		result, err := monitor.Run(s.ctx, sess.window, popupURL, s.popupCfg.WindowName, s.popupCfg.WindowFeatures, sess.orderID)
		if err != nil {
			log.Warn("popup payment failed", "error", err)
		}
		sess.finish(result, err, func(state popup.State) string {
			return s.redirectFor(sess.orderID, state)
		})

		sess.mu.Lock()
		sess.retention = time.AfterFunc(s.popupCfg.Retention, func() {
			s.mu.Lock()
			delete(s.sessions, sess.id)
			s.mu.Unlock()
		})
		sess.mu.Unlock()
	}()

	log.Info("popup session started")
	return &dto.PopupSession{
		SessionID:      sess.id,
		PopupURL:       popupURL,
		WindowName:     s.popupCfg.WindowName,
		WindowFeatures: s.popupCfg.WindowFeatures,
		PollInterval:   s.popupCfg.PollInterval.Milliseconds(),
	}, nil
}

// redirectFor is the page the browser moves to once a session ends in state.
func (s *popupServiceImpl) redirectFor(orderID string, state popup.State) string {
	switch state {
	case popup.StateConfirmed:
		return client.ReturnURL(s.baseURL, s.urls.Success, orderID, "confirmed")
	case popup.StateCancelled:
		return client.ReturnURL(s.baseURL, s.urls.Cancel, orderID, string(state))
	case popup.StateTimedOut, popup.StateBlocked, popup.StateFailed:
		return client.ReturnURL(s.baseURL, s.urls.Failure, orderID, string(state))
	}
	return ""
}

func (s *popupServiceImpl) get(sessionID string) (*popupSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return sess, nil
}

func (s *popupServiceImpl) Acknowledge(sessionID string, opened bool) error {
	sess, err := s.get(sessionID)
	if err != nil {
		return err
	}
	return sess.window.Acknowledge(opened)
}

func (s *popupServiceImpl) Report(sessionID string, observation string) error {
	sess, err := s.get(sessionID)
	if err != nil {
		return err
	}
	return sess.window.Report(popup.Observation(observation))
}

func (s *popupServiceImpl) Answer(sessionID string, completed bool) error {
	sess, err := s.get(sessionID)
	if err != nil {
		return err
	}
	return sess.window.Answer(completed)
}

func (s *popupServiceImpl) Status(sessionID string) (*dto.PopupStatusResponse, error) {
	sess, err := s.get(sessionID)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	resp := &dto.PopupStatusResponse{
		SessionID:            sess.id,
		OrderID:              sess.orderID,
		State:                string(sess.state),
		CloseWindow:          sess.window.CloseRequested(),
		AwaitingConfirmation: sess.window.AwaitingConfirmation(),
		Result:               sess.result,
		RedirectURL:          sess.redirectURL,
	}
	if sess.err != nil {
		resp.Error = sess.err.Error()
	}
	return resp, nil
}

// Shutdown stops every running monitor, waits for them to return, then
// stops the retention timers they left behind.
func (s *popupServiceImpl) Shutdown() {
	s.cancel()
	s.wg.Wait()

	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, sess := range s.sessions {
		sess.mu.Lock()
		if sess.retention != nil {
			sess.retention.Stop()
		}
		sess.mu.Unlock()
	}
}
