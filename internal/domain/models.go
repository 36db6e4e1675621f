package domain

// RNG abstracts random number generation for deterministic testing.
type RNG interface {
	// Intn returns a non-negative random int in [0, n).
	Intn(n int) int
}

// Style is the visual state tag attached to the display box.
type Style string

const (
	StyleDefault  Style = "default"
	StyleSpinning Style = "spinning"
	StyleFixed    Style = "fixed"
)

// Placeholder is shown before any spin and after a failed one.
const Placeholder = "---"

// View is what the page renders after an event.
type View struct {
	Text           string `json:"text"`
	Style          Style  `json:"style"`
	TimerEnabled   bool   `json:"timer_enabled"`
	ButtonDisabled bool   `json:"button_disabled"`
}

// InitialView is the view before the first spin.
func InitialView() View {
	return View{Text: Placeholder, Style: StyleDefault}
}

// Update is the outcome of feeding one event to the spinner.
// Changed is false when the event must leave the page untouched.
type Update struct {
	Changed bool
	View    View
}

// NoUpdate leaves the current view as it is.
var NoUpdate = Update{}
