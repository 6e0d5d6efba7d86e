package notifymock

import (
	"context"
	"sync"

	"medmatch-backend/internal/domain/notification"
)

var _ notification.Dispatcher = (*Dispatcher)(nil)

// Dispatcher records every event it receives; set Err to simulate delivery
// failure.
type Dispatcher struct {
	mu     sync.Mutex
	Err    error
	events []notification.Event
}

func (d *Dispatcher) Dispatch(ctx context.Context, ev notification.Event) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.Err != nil {
		return d.Err
	}
	d.events = append(d.events, ev)
	return nil
}

func (d *Dispatcher) Events() []notification.Event {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]notification.Event, len(d.events))
	copy(out, d.events)
	return out
}
