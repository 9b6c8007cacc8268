package ecs

import (
	"github.com/phanxgames/dpadcursor"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// PointerEventType is the Donburi event type for synthesized pointer events.
// Subscribe to this in your ECS systems to receive down, move, up, hover,
// cancel and pinch events.
var PointerEventType = events.NewEventType[dpadcursor.PointerEvent]()

// ModeChange records a cursor mode transition.
type ModeChange struct {
	From, To dpadcursor.Mode
}

// ModeChangeEventType is the Donburi event type for mode transitions.
var ModeChangeEventType = events.NewEventType[ModeChange]()

// CursorView holds the latest cursor appearance on the entity created by Bind.
var CursorView = donburi.NewComponentType[dpadcursor.CursorView]()

type donburiStore struct {
	world donburi.World
}

// NewDonburiStore creates an EventStore backed by a Donburi world.
// Pointer events are published to PointerEventType and can be consumed with
// events.Subscribe and ProcessEvents.
func NewDonburiStore(world donburi.World) dpadcursor.EventStore {
	return &donburiStore{world: world}
}

func (s *donburiStore) EmitEvent(event dpadcursor.PointerEvent) {
	PointerEventType.Publish(s.world, event)
}

// Binding ties a Controller's notifications to a world.
type Binding struct {
	// Entity carries the CursorView component.
	Entity donburi.Entity

	world   donburi.World
	handles []dpadcursor.CallbackHandle
}

// Bind creates a cursor entity in world, keeps its CursorView component in
// sync with c, and publishes mode transitions to ModeChangeEventType.
func Bind(world donburi.World, c *dpadcursor.Controller) *Binding {
	b := &Binding{
		Entity: world.Create(CursorView),
		world:  world,
	}
	CursorView.SetValue(world.Entry(b.Entity), c.View())
	b.handles = append(b.handles,
		c.OnRedraw(func(v dpadcursor.CursorView) {
			if world.Valid(b.Entity) {
				CursorView.SetValue(world.Entry(b.Entity), v)
			}
		}),
		c.OnModeChange(func(from, to dpadcursor.Mode) {
			ModeChangeEventType.Publish(world, ModeChange{From: from, To: to})
		}),
	)
	return b
}

// Close removes the listeners and the cursor entity.
func (b *Binding) Close() {
	for _, h := range b.handles {
		h.Remove()
	}
	b.handles = nil
	if b.world.Valid(b.Entity) {
		b.world.Remove(b.Entity)
	}
}
