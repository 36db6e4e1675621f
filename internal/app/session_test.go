package app_test

import (
	"context"
	"log/slog"
	"sync"
	"testing"
	"time"

	"go.uber.org/goleak"

	"github.com/randomtoy/roulette/internal/app"
	"github.com/randomtoy/roulette/internal/domain"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// lockedRNG is a sequence RNG safe to share with the ticker goroutine.
type lockedRNG struct {
	mu     sync.Mutex
	values []int
	idx    int
}

func (r *lockedRNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	v := r.values[r.idx%len(r.values)] % n
	r.idx++
	return v
}

type viewRecorder struct {
	ch chan domain.View
}

func newRecorder() *viewRecorder {
	return &viewRecorder{ch: make(chan domain.View, 4*domain.TotalSteps)}
}

func (r *viewRecorder) emit(v domain.View) { r.ch <- v }

// waitFixed collects views until one has the fixed style.
func (r *viewRecorder) waitFixed(t *testing.T) []domain.View {
	t.Helper()
	var got []domain.View
	timeout := time.After(5 * time.Second)
	for {
		select {
		case v := <-r.ch:
			got = append(got, v)
			if v.Style == domain.StyleFixed {
				return got
			}
		case <-timeout:
			t.Fatalf("spin did not settle, got %d views", len(got))
		}
	}
}

func testService(tick time.Duration) *app.RouletteService {
	cat := domain.NewCatalog(map[string][]string{
		"Letters": {"A", "B", "C"},
		"Single":  {"only"},
	})
	return app.NewRouletteService(cat, &lockedRNG{values: []int{2, 0, 1}}, tick, slog.Default())
}

func TestSession_SpinSettlesOnFinalValue(t *testing.T) {
	svc := testService(time.Millisecond)
	rec := newRecorder()
	s := svc.NewSession(context.Background(), rec.emit)
	defer s.Close()

	s.Dispatch(app.Event{Type: app.EventSelect, Category: "Letters"})
	if u := s.Dispatch(app.Event{Type: app.EventSpin, Category: "Letters"}); !u.Changed {
		t.Fatal("expected spin to start")
	}

	views := rec.waitFixed(t)
	// start view + 60 spinning frames + fixed view
	if len(views) != domain.TotalSteps+2 {
		t.Errorf("expected %d views, got %d", domain.TotalSteps+2, len(views))
	}
	for i, v := range views[:len(views)-1] {
		if !v.TimerEnabled || !v.ButtonDisabled || v.Style != domain.StyleSpinning {
			t.Fatalf("view %d: unexpected %+v", i, v)
		}
	}

	last := views[len(views)-1]
	// The first draw of the sequence (index 2) is the final value.
	if last.Text != "C" {
		t.Errorf("expected C, got %s", last.Text)
	}
	if last.TimerEnabled || last.ButtonDisabled {
		t.Errorf("controls not released: %+v", last)
	}
	if s.State() != domain.StateFixed {
		t.Errorf("expected fixed, got %s", s.State())
	}

	time.Sleep(20 * time.Millisecond)
	if n := len(rec.ch); n != 0 {
		t.Errorf("expected no views after settling, got %d", n)
	}
}

func TestSession_SpinWhileSpinningIgnored(t *testing.T) {
	svc := testService(time.Hour)
	rec := newRecorder()
	s := svc.NewSession(context.Background(), rec.emit)
	defer s.Close()

	if u := s.Dispatch(app.Event{Type: app.EventSpin, Category: "Letters"}); !u.Changed {
		t.Fatal("expected spin to start")
	}
	for _, cat := range []string{"Letters", "Single"} {
		if u := s.Dispatch(app.Event{Type: app.EventSpin, Category: cat}); u.Changed {
			t.Errorf("spin on %s during a spin should be ignored, got %+v", cat, u)
		}
	}
	if n := len(rec.ch); n != 1 {
		t.Errorf("expected 1 emitted view, got %d", n)
	}
	if s.State() != domain.StateSpinning {
		t.Errorf("expected spinning, got %s", s.State())
	}
}

func TestSession_GuardsLeaveViewUnchanged(t *testing.T) {
	svc := testService(time.Millisecond)
	rec := newRecorder()
	s := svc.NewSession(context.Background(), rec.emit)
	defer s.Close()

	for _, cat := range []string{"", "Missing"} {
		if u := s.Dispatch(app.Event{Type: app.EventSpin, Category: cat}); u.Changed {
			t.Errorf("spin on %q should be a no-op, got %+v", cat, u)
		}
	}
	if v := s.View(); v != domain.InitialView() {
		t.Errorf("view changed: %+v", v)
	}
	if n := len(rec.ch); n != 0 {
		t.Errorf("expected no emitted views, got %d", n)
	}
}

func TestSession_SelectThenBareSpin(t *testing.T) {
	svc := testService(time.Millisecond)
	rec := newRecorder()
	s := svc.NewSession(context.Background(), rec.emit)
	defer s.Close()

	s.Dispatch(app.Event{Type: app.EventSelect, Category: "Letters"})
	if u := s.Dispatch(app.Event{Type: app.EventSpin}); !u.Changed {
		t.Fatalf("expected spin on the selected category, state %s", s.State())
	}

	views := rec.waitFixed(t)
	if last := views[len(views)-1]; last.Text != "C" {
		t.Errorf("expected C, got %s", last.Text)
	}
}

func TestSession_ExternalTickIgnored(t *testing.T) {
	svc := testService(time.Hour)
	s := svc.NewSession(context.Background(), nil)
	defer s.Close()

	s.Dispatch(app.Event{Type: app.EventSpin, Category: "Single"})
	if u := s.Dispatch(app.Event{Type: app.EventTick}); u.Changed {
		t.Errorf("tick from outside the session should be ignored, got %+v", u)
	}
}

func TestSession_UnknownEvent(t *testing.T) {
	s := testService(time.Hour).NewSession(context.Background(), nil)
	defer s.Close()

	if u := s.Dispatch(app.Event{Type: "reset"}); u.Changed {
		t.Errorf("unknown event should be a no-op, got %+v", u)
	}
}

func TestSession_CloseStopsSpin(t *testing.T) {
	svc := testService(time.Millisecond)
	rec := newRecorder()
	s := svc.NewSession(context.Background(), rec.emit)

	s.Dispatch(app.Event{Type: app.EventSpin, Category: "Letters"})
	s.Close()

	if u := s.Dispatch(app.Event{Type: app.EventSpin, Category: "Letters"}); u.Changed {
		t.Errorf("events after close should be ignored, got %+v", u)
	}
	// A second Close is harmless.
	s.Close()
}

func TestSession_Respin(t *testing.T) {
	svc := testService(time.Millisecond)
	rec := newRecorder()
	s := svc.NewSession(context.Background(), rec.emit)
	defer s.Close()

	for range 2 {
		if u := s.Dispatch(app.Event{Type: app.EventSpin, Category: "Single"}); !u.Changed {
			t.Fatal("expected spin to start")
		}
		views := rec.waitFixed(t)
		if last := views[len(views)-1]; last.Text != "only" {
			t.Errorf("expected only, got %s", last.Text)
		}
	}
}
