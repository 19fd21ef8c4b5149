package watcher

import (
	"fmt"
	"sync"
	"time"
)

// debouncer coalesces bursts of change events. Each add resets the timer, so
// the handler fires once per quiet period with every path seen since the
// last flush.
type debouncer struct {
	delay   time.Duration
	pending map[string]FileChangeEvent
	timer   *time.Timer
	mutex   sync.Mutex
}

func newDebouncer(delay time.Duration) *debouncer {
	return &debouncer{
		delay:   delay,
		pending: make(map[string]FileChangeEvent),
	}
}

func (d *debouncer) add(event FileChangeEvent, handler FileChangeHandler) {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	d.pending[event.Path] = event
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, func() {
		d.flush(handler)
	})
}

func (d *debouncer) flush(handler FileChangeHandler) {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	if len(d.pending) == 0 {
		return
	}
	changed := make([]string, 0, len(d.pending))
	for path := range d.pending {
		changed = append(changed, path)
	}
	d.pending = make(map[string]FileChangeEvent)
	if err := handler(changed); err != nil {
		fmt.Printf("Re-analysis error: %v\n", err)
	}
}

func (d *debouncer) stop() {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
}
