package dpadcursor

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// --- Listener registry ---

// EventType identifies a kind of Controller notification.
type EventType uint8

const (
	EventPointer    EventType = iota // a pointer event was synthesized
	EventRedraw                      // the cursor view changed
	EventModeChange                  // the interaction mode changed
)

type pointerHandler struct {
	id uint32
	fn func(PointerEvent)
}

type redrawHandler struct {
	id uint32
	fn func(CursorView)
}

type modeHandler struct {
	id uint32
	fn func(from, to Mode)
}

type handlerRegistry struct {
	pointer []pointerHandler
	redraw  []redrawHandler
	mode    []modeHandler
	nextID  uint32
}

// CallbackHandle allows removing a registered listener.
type CallbackHandle struct {
	id    uint32
	reg   *handlerRegistry
	event EventType
}

// Remove unregisters this listener so it no longer fires.
func (h CallbackHandle) Remove() {
	if h.reg == nil {
		return
	}
	switch h.event {
	case EventPointer:
		h.reg.pointer = removePointerHandler(h.reg.pointer, h.id)
	case EventRedraw:
		h.reg.redraw = removeRedrawHandler(h.reg.redraw, h.id)
	case EventModeChange:
		h.reg.mode = removeModeHandler(h.reg.mode, h.id)
	}
}

func removePointerHandler(s []pointerHandler, id uint32) []pointerHandler {
	for i := range s {
		if s[i].id == id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = pointerHandler{}
			return s[:len(s)-1]
		}
	}
	return s
}

func removeRedrawHandler(s []redrawHandler, id uint32) []redrawHandler {
	for i := range s {
		if s[i].id == id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = redrawHandler{}
			return s[:len(s)-1]
		}
	}
	return s
}

func removeModeHandler(s []modeHandler, id uint32) []modeHandler {
	for i := range s {
		if s[i].id == id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = modeHandler{}
			return s[:len(s)-1]
		}
	}
	return s
}

// OnPointerEvent registers a listener called with every synthesized pointer
// event, after the Surface has received it.
func (c *Controller) OnPointerEvent(fn func(PointerEvent)) CallbackHandle {
	c.handlers.nextID++
	id := c.handlers.nextID
	c.handlers.pointer = append(c.handlers.pointer, pointerHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &c.handlers, event: EventPointer}
}

// OnRedraw registers a listener called whenever the cursor's appearance may
// have changed (moved, pressed, mode change, appeared or disappeared).
func (c *Controller) OnRedraw(fn func(CursorView)) CallbackHandle {
	c.handlers.nextID++
	id := c.handlers.nextID
	c.handlers.redraw = append(c.handlers.redraw, redrawHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &c.handlers, event: EventRedraw}
}

// OnModeChange registers a listener called on every mode transition.
func (c *Controller) OnModeChange(fn func(from, to Mode)) CallbackHandle {
	c.handlers.nextID++
	id := c.handlers.nextID
	c.handlers.mode = append(c.handlers.mode, modeHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &c.handlers, event: EventModeChange}
}

// --- ebiten input polling ---

type keyBinding struct {
	key ebiten.Key
	to  Key
}

type buttonBinding struct {
	button ebiten.StandardGamepadButton
	to     Key
}

var defaultKeyBindings = []keyBinding{
	{ebiten.KeyArrowUp, KeyDpadUp},
	{ebiten.KeyArrowDown, KeyDpadDown},
	{ebiten.KeyArrowLeft, KeyDpadLeft},
	{ebiten.KeyArrowRight, KeyDpadRight},
	{ebiten.KeyNumpad8, KeyDpadUp},
	{ebiten.KeyNumpad2, KeyDpadDown},
	{ebiten.KeyNumpad4, KeyDpadLeft},
	{ebiten.KeyNumpad6, KeyDpadRight},
	{ebiten.KeyNumpad7, KeyDpadUpLeft},
	{ebiten.KeyNumpad9, KeyDpadUpRight},
	{ebiten.KeyNumpad1, KeyDpadDownLeft},
	{ebiten.KeyNumpad3, KeyDpadDownRight},
	{ebiten.KeyNumpad5, KeyDpadCenter},
	{ebiten.KeySpace, KeyDpadCenter},
	{ebiten.KeyEnter, KeyEnter},
	{ebiten.KeyNumpadEnter, KeyEnter},
	{ebiten.KeyBackspace, KeyBack},
	{ebiten.KeyEscape, KeyEscape},
}

var defaultButtonBindings = []buttonBinding{
	{ebiten.StandardGamepadButtonLeftTop, KeyDpadUp},
	{ebiten.StandardGamepadButtonLeftBottom, KeyDpadDown},
	{ebiten.StandardGamepadButtonLeftLeft, KeyDpadLeft},
	{ebiten.StandardGamepadButtonLeftRight, KeyDpadRight},
	{ebiten.StandardGamepadButtonRightBottom, KeyDpadCenter},
	{ebiten.StandardGamepadButtonRightRight, KeyBack},
}

// InputPoller turns ebiten keyboard and standard-layout gamepad state into
// KeyEvents once per frame.
type InputPoller struct {
	keys      []keyBinding
	buttons   []buttonBinding
	gamepads  []ebiten.GamepadID
	unhandled []KeyEvent
}

// NewInputPoller creates a poller with the default bindings: arrows and the
// numeric keypad for directions, Space/Enter for activation,
// Backspace/Escape for back, and the gamepad D-pad with A/B.
func NewInputPoller() *InputPoller {
	p := &InputPoller{}
	p.keys = append(p.keys, defaultKeyBindings...)
	p.buttons = append(p.buttons, defaultButtonBindings...)
	return p
}

// BindKey maps an additional keyboard key, replacing any existing binding.
func (p *InputPoller) BindKey(k ebiten.Key, to Key) {
	for i := range p.keys {
		if p.keys[i].key == k {
			p.keys[i].to = to
			return
		}
	}
	p.keys = append(p.keys, keyBinding{key: k, to: to})
}

// Binding returns the Key a keyboard key is mapped to.
func (p *InputPoller) Binding(k ebiten.Key) (Key, bool) {
	for _, b := range p.keys {
		if b.key == k {
			return b.to, true
		}
	}
	return KeyUnknown, false
}

// Poll feeds this frame's key transitions to c and returns the events c
// reported as unhandled. The returned slice is reused on the next call.
func (p *InputPoller) Poll(c *Controller) []KeyEvent {
	p.unhandled = p.unhandled[:0]
	for _, b := range p.keys {
		if inpututil.IsKeyJustPressed(b.key) {
			p.dispatch(c, KeyEvent{Key: b.to, Action: KeyActionDown})
		}
		if inpututil.IsKeyJustReleased(b.key) {
			p.dispatch(c, KeyEvent{Key: b.to, Action: KeyActionUp})
		}
	}

	p.gamepads = ebiten.AppendGamepadIDs(p.gamepads[:0])
	for _, id := range p.gamepads {
		if !ebiten.IsStandardGamepadLayoutAvailable(id) {
			continue
		}
		for _, b := range p.buttons {
			if inpututil.IsStandardGamepadButtonJustPressed(id, b.button) {
				p.dispatch(c, KeyEvent{Key: b.to, Action: KeyActionDown})
			}
			if inpututil.IsStandardGamepadButtonJustReleased(id, b.button) {
				p.dispatch(c, KeyEvent{Key: b.to, Action: KeyActionUp})
			}
		}
	}
	return p.unhandled
}

func (p *InputPoller) dispatch(c *Controller, ev KeyEvent) {
	if !c.HandleKey(ev) {
		p.unhandled = append(p.unhandled, ev)
	}
}
