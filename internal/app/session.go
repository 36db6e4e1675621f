package app

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/randomtoy/roulette/internal/domain"
)

// EventType names the events a session reacts to.
type EventType string

const (
	EventSelect EventType = "select"
	EventSpin   EventType = "spin"
	EventTick   EventType = "tick"
)

// Event is one input to a session. Category is used by select and spin.
type Event struct {
	Type     EventType
	Category string

	// timer identifies the ticker that produced a tick.
	timer uint64
}

type eventHandler func(s *Session, ev Event) domain.Update

var eventHandlers map[EventType]eventHandler

// Handlers reach Dispatch through the ticker, so the table is filled in
// init to stay out of package initialization order.
func init() {
	eventHandlers = map[EventType]eventHandler{
		EventSelect: (*Session).onSelect,
		EventSpin:   (*Session).onSpin,
		EventTick:   (*Session).onTick,
	}
}

// Session runs one user's spinner and the ticker that drives it.
// At most one spin is in flight; spin events during a spin are ignored.
type Session struct {
	id       string
	interval time.Duration
	emit     func(domain.View)
	logger   *slog.Logger

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu        sync.Mutex
	spinner   *domain.Spinner
	timerGen  uint64
	stopTimer context.CancelFunc
	closed    bool
}

func newSession(ctx context.Context, id string, spinner *domain.Spinner, interval time.Duration, emit func(domain.View), logger *slog.Logger) *Session {
	ctx, cancel := context.WithCancel(ctx)
	return &Session{
		id:       id,
		interval: interval,
		emit:     emit,
		logger:   logger,
		ctx:      ctx,
		cancel:   cancel,
		spinner:  spinner,
	}
}

func (s *Session) ID() string { return s.id }

// View is the view last produced by the session.
func (s *Session) View() domain.View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.spinner.View()
}

func (s *Session) State() domain.SpinState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.spinner.State()
}

// Dispatch routes ev to its handler. A changed view is emitted before
// Dispatch returns, so emitted views keep event order.
func (s *Session) Dispatch(ev Event) domain.Update {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return domain.NoUpdate
	}

	h, ok := eventHandlers[ev.Type]
	if !ok {
		s.logger.Warn("unknown event", "type", ev.Type)
		return domain.NoUpdate
	}

	u := h(s, ev)
	if u.Changed && s.emit != nil {
		s.emit(u.View)
	}
	return u
}

// Close stops the ticker and waits for it to exit. Later events are ignored.
func (s *Session) Close() {
	s.mu.Lock()
	s.closed = true
	s.disarm()
	s.mu.Unlock()

	s.cancel()
	s.wg.Wait()
}

func (s *Session) onSelect(ev Event) domain.Update {
	return s.spinner.Select(ev.Category)
}

func (s *Session) onSpin(ev Event) domain.Update {
	u := s.spinner.Start(ev.Category)
	if !u.Changed {
		return u
	}
	s.logger.Debug("spin started", "category", ev.Category)
	s.arm()
	return u
}

func (s *Session) onTick(ev Event) domain.Update {
	if s.stopTimer == nil || ev.timer != s.timerGen {
		return domain.NoUpdate
	}
	u := s.spinner.Tick()
	if u.Changed && !u.View.TimerEnabled {
		s.disarm()
		s.logger.Debug("spin settled", "value", u.View.Text, "style", u.View.Style)
	}
	return u
}

// arm starts a ticker for the current spin. Callers hold s.mu.
func (s *Session) arm() {
	s.disarm()
	s.timerGen++
	gen := s.timerGen

	ctx, cancel := context.WithCancel(s.ctx)
	s.stopTimer = cancel
	s.wg.Add(1)
	go s.runTimer(ctx, gen)
}

// disarm stops the current ticker, if any. Callers hold s.mu.
func (s *Session) disarm() {
	if s.stopTimer != nil {
		s.stopTimer()
		s.stopTimer = nil
	}
}

func (s *Session) runTimer(ctx context.Context, gen uint64) {
	defer s.wg.Done()

	t := time.NewTicker(s.interval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			s.Dispatch(Event{Type: EventTick, timer: gen})
		}
	}
}
