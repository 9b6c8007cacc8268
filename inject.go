package dpadcursor

import "time"

// syntheticKeyEvent is a queued key event. A nonzero hold on a key-down
// schedules the matching key-up that long after the down is delivered.
type syntheticKeyEvent struct {
	ev   KeyEvent
	hold time.Duration
}

// InjectKey queues a key event. Queued events are delivered one per frame by
// Update, ahead of real input.
func (c *Controller) InjectKey(ev KeyEvent) {
	c.injectQueue = append(c.injectQueue, syntheticKeyEvent{ev: ev})
}

// InjectTap queues a key-down followed by a key-up of k. Consumes two frames.
func (c *Controller) InjectTap(k Key) {
	c.InjectKey(KeyEvent{Key: k, Action: KeyActionDown})
	c.InjectKey(KeyEvent{Key: k, Action: KeyActionUp})
}

// InjectHold queues a key-down of k whose key-up is delivered through the
// scheduler d after the down, independent of frame rate.
func (c *Controller) InjectHold(k Key, d time.Duration) {
	c.injectQueue = append(c.injectQueue, syntheticKeyEvent{
		ev:   KeyEvent{Key: k, Action: KeyActionDown},
		hold: d,
	})
}

// Update delivers the next injected key event and advances an attached
// TestRunner. Call it once per frame; Run does.
func (c *Controller) Update() {
	if c.testRunner != nil {
		c.testRunner.step(c)
	}
	c.processInjectedInput()
}

// processInjectedInput pops one event from the inject queue and routes it
// through HandleKey. Returns true if an event was consumed.
func (c *Controller) processInjectedInput() bool {
	if len(c.injectQueue) == 0 {
		return false
	}
	evt := c.injectQueue[0]
	copy(c.injectQueue, c.injectQueue[1:])
	c.injectQueue = c.injectQueue[:len(c.injectQueue)-1]

	c.HandleKey(evt.ev)
	if evt.hold > 0 && evt.ev.Action == KeyActionDown {
		up := KeyEvent{Key: evt.ev.Key, Action: KeyActionUp}
		c.sched.ScheduleOnce(evt.hold, func() { c.HandleKey(up) })
		if until := c.clock.Now().Add(evt.hold); until.After(c.holdUntil) {
			c.holdUntil = until
		}
	}
	return true
}
