package domain

import "time"

const (
	// TotalSteps is the number of animated ticks before the result is fixed.
	TotalSteps = 60
	// TickInterval is the reference period between ticks.
	TickInterval = 50 * time.Millisecond
	// slowdownEvery is how many steps pass before the redraw rate halves again.
	slowdownEvery = 8
)

// SpinState is the phase of a Spinner.
type SpinState int

const (
	StateIdle SpinState = iota
	StateSelecting
	StateSpinning
	StateFixed
)

func (s SpinState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSelecting:
		return "selecting"
	case StateSpinning:
		return "spinning"
	case StateFixed:
		return "fixed"
	default:
		return "unknown"
	}
}

// Spinner is the per-session spin state machine. It owns no timer; the
// caller delivers ticks while the view reports TimerEnabled.
// A Spinner is not safe for concurrent use.
type Spinner struct {
	catalog  Catalog
	rng      RNG
	state    SpinState
	selected string
	category string
	final    string
	step     int
	view     View
}

func NewSpinner(catalog Catalog, rng RNG) *Spinner {
	return &Spinner{
		catalog: catalog,
		rng:     rng,
		view:    InitialView(),
	}
}

func (s *Spinner) State() SpinState { return s.state }

// View is the last rendered view.
func (s *Spinner) View() View { return s.view }

// Final is the value the current or last spin settles on.
func (s *Spinner) Final() string { return s.final }

// Step is the number of ticks delivered since the spin started.
func (s *Spinner) Step() int { return s.step }

// Select records the dropdown value used by a Start without a category.
// It never changes the view.
func (s *Spinner) Select(category string) Update {
	if s.state == StateSpinning {
		return NoUpdate
	}
	s.selected = category
	if s.state == StateIdle && category != "" {
		s.state = StateSelecting
	}
	return NoUpdate
}

// Start begins a spin on category, or on the selected category when
// category is empty. It is a no-op while a spin is running, when neither is
// set, or when the category has no values.
func (s *Spinner) Start(category string) Update {
	if s.state == StateSpinning {
		return NoUpdate
	}
	if category == "" {
		category = s.selected
	}
	if category == "" {
		return NoUpdate
	}
	values := s.catalog.lookup(category)
	if len(values) == 0 {
		return NoUpdate
	}

	s.selected = category
	s.category = category
	s.final = values[s.rng.Intn(len(values))]
	s.step = 0
	s.state = StateSpinning
	s.view = View{
		Text:           s.view.Text,
		Style:          StyleSpinning,
		TimerEnabled:   true,
		ButtonDisabled: true,
	}
	return Update{Changed: true, View: s.view}
}

// Tick advances a running spin by one frame. Redraws thin out as the spin
// goes on: at step n a new value is drawn only when n is a multiple of
// n/8+1.
func (s *Spinner) Tick() Update {
	if s.state != StateSpinning {
		return NoUpdate
	}
	n := s.step
	s.step++

	values := s.catalog.lookup(s.category)
	if len(values) == 0 {
		s.state = StateSelecting
		s.view = InitialView()
		return Update{Changed: true, View: s.view}
	}

	if n >= TotalSteps {
		s.state = StateFixed
		s.view = View{Text: s.final, Style: StyleFixed}
		return Update{Changed: true, View: s.view}
	}

	text := s.view.Text
	if n%SpeedFactor(n) == 0 {
		text = values[s.rng.Intn(len(values))]
	}
	s.view = View{
		Text:           text,
		Style:          StyleSpinning,
		TimerEnabled:   true,
		ButtonDisabled: true,
	}
	return Update{Changed: true, View: s.view}
}

// SpeedFactor is the redraw divisor at step n.
func SpeedFactor(n int) int {
	return n/slowdownEvery + 1
}

// Draw picks one value uniformly. It is the instant, non-animated spin.
func Draw(values []string, rng RNG) (string, error) {
	if len(values) == 0 {
		return "", ErrEmptyCategory
	}
	return values[rng.Intn(len(values))], nil
}
