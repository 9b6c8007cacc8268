// Package ecs bridges dpadcursor into a [Donburi] world.
//
// [NewDonburiStore] publishes every synthesized pointer event as a typed
// Donburi event. [Bind] additionally mirrors the cursor view into a
// component on a dedicated entity and publishes mode transitions.
//
// Usage:
//
//	store := ecs.NewDonburiStore(world)
//	c := dpadcursor.NewController(surface, &dpadcursor.Options{Store: store})
//	b := ecs.Bind(world, c)
//	defer b.Close()
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
