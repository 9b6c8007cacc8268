package dpadcursor

// Key is a remote-control key code. Physical keys from any input source
// (keyboard, gamepad, IR remote) are mapped onto these before reaching the
// Controller.
type Key uint8

const (
	KeyUnknown Key = iota

	// Axis keys.
	KeyDpadUp
	KeyDpadDown
	KeyDpadLeft
	KeyDpadRight

	// Diagonals.
	KeyDpadUpLeft
	KeyDpadUpRight
	KeyDpadDownLeft
	KeyDpadDownRight

	// Activation.
	KeyDpadCenter
	KeyEnter

	// Back / escape.
	KeyBack
	KeyEscape
)

var keyNames = [...]string{
	KeyUnknown:       "unknown",
	KeyDpadUp:        "up",
	KeyDpadDown:      "down",
	KeyDpadLeft:      "left",
	KeyDpadRight:     "right",
	KeyDpadUpLeft:    "up-left",
	KeyDpadUpRight:   "up-right",
	KeyDpadDownLeft:  "down-left",
	KeyDpadDownRight: "down-right",
	KeyDpadCenter:    "center",
	KeyEnter:         "enter",
	KeyBack:          "back",
	KeyEscape:        "escape",
}

func (k Key) String() string {
	if int(k) < len(keyNames) {
		return keyNames[k]
	}
	return "unknown"
}

// ParseKey returns the Key with the given name as produced by Key.String.
func ParseKey(name string) (Key, bool) {
	for k, n := range keyNames {
		if n == name && Key(k) != KeyUnknown {
			return Key(k), true
		}
	}
	return KeyUnknown, false
}

// direction returns the per-axis intent of a directional key. An axis the key
// does not name is reported as 0 with its has-flag false.
func (k Key) direction() (dx, dy int, hasX, hasY bool) {
	switch k {
	case KeyDpadUp:
		return 0, -1, false, true
	case KeyDpadDown:
		return 0, 1, false, true
	case KeyDpadLeft:
		return -1, 0, true, false
	case KeyDpadRight:
		return 1, 0, true, false
	case KeyDpadUpLeft:
		return -1, -1, true, true
	case KeyDpadUpRight:
		return 1, -1, true, true
	case KeyDpadDownLeft:
		return -1, 1, true, true
	case KeyDpadDownRight:
		return 1, 1, true, true
	}
	return 0, 0, false, false
}

func (k Key) isDirectional() bool {
	_, _, hasX, hasY := k.direction()
	return hasX || hasY
}

func (k Key) isActivation() bool { return k == KeyDpadCenter || k == KeyEnter }
func (k Key) isBack() bool       { return k == KeyBack || k == KeyEscape }

// KeyAction is the edge of a key event.
type KeyAction uint8

const (
	KeyActionDown KeyAction = iota
	KeyActionUp
)

func (a KeyAction) String() string {
	if a == KeyActionUp {
		return "up"
	}
	return "down"
}

// KeyEvent is a single raw key transition.
type KeyEvent struct {
	Key    Key
	Action KeyAction
}

// keyTrackingEntry records a key that has gone down without a matching up.
type keyTrackingEntry struct {
	// revealOnly marks an activation key whose down only revealed a
	// disappeared cursor; its up must not release anything.
	revealOnly bool
}

// keyTracker suppresses repeated key-down dispatch and pairs downs with ups.
type keyTracker struct {
	tracked map[Key]keyTrackingEntry
}

func (t *keyTracker) isTracking(k Key) bool {
	_, ok := t.tracked[k]
	return ok
}

func (t *keyTracker) startTracking(k Key, revealOnly bool) {
	if t.tracked == nil {
		t.tracked = make(map[Key]keyTrackingEntry)
	}
	t.tracked[k] = keyTrackingEntry{revealOnly: revealOnly}
}

// handleUp stops tracking k and returns its entry, if it was tracked.
func (t *keyTracker) handleUp(k Key) (keyTrackingEntry, bool) {
	e, ok := t.tracked[k]
	if ok {
		delete(t.tracked, k)
	}
	return e, ok
}

func (t *keyTracker) reset() {
	clear(t.tracked)
}
