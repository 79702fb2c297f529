package device

import (
	"log"
	"net/http"
	"sync"
	"time"
)

// Virtual is an in-memory light. It records the last color it was sent,
// which makes it useful for dry runs of a schedule.
type Virtual struct {
	label string

	mu         sync.Mutex
	color      Color
	transition time.Duration
}

func NewVirtual(label string) *Virtual {
	return &Virtual{
		label: label,
	}
}

func (v *Virtual) Transition(color *Color, transition time.Duration) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.color = *color
	v.transition = transition

	log.Printf("%s: virtual transition to %s over %s", v.label, color, transition)
	return nil
}

// State returns the last color sent to the device and its transition
func (v *Virtual) State() (Color, time.Duration) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.color, v.transition
}

func (v *Virtual) StatusHandler(w http.ResponseWriter, r *http.Request) {
	color, _ := v.State()
	writeStatus(w, &color)
}

func (v *Virtual) PowerHandler(w http.ResponseWriter, r *http.Request) {
	powerHandler(v, w, r)
}

func (v *Virtual) Label() string {
	return v.label
}

func (v *Virtual) String() string {
	return "virtual"
}
