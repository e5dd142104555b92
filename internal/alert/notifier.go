package alert

import (
	"sync"
	"time"
)

type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
)

type Alert struct {
	Message string
	Kind    Kind
}

// Notifier holds the single visible alert and dismisses it after a
// fixed display duration. A new alert replaces the current one and
// restarts the clock.
type Notifier struct {
	ttl time.Duration

	mu      sync.Mutex
	current Alert
	visible bool
	timer   *time.Timer
	seq     int
}

const DefaultTTL = 3 * time.Second

func New(ttl time.Duration) *Notifier {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Notifier{ttl: ttl}
}

func (n *Notifier) Success(msg string) { n.show(Alert{Message: msg, Kind: KindSuccess}) }
func (n *Notifier) Error(msg string)   { n.show(Alert{Message: msg, Kind: KindError}) }

func (n *Notifier) show(a Alert) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.current = a
	n.visible = true
	n.seq++
	seq := n.seq
	if n.timer != nil {
		n.timer.Stop()
	}
	n.timer = time.AfterFunc(n.ttl, func() {
		n.mu.Lock()
		defer n.mu.Unlock()
		// a newer alert restarted the clock
		if n.seq == seq {
			n.visible = false
		}
	})
}

// Current returns the visible alert, if any.
func (n *Notifier) Current() (Alert, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.current, n.visible
}

// Dismiss hides the alert before the timer fires.
func (n *Notifier) Dismiss() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.visible = false
	if n.timer != nil {
		n.timer.Stop()
	}
}
