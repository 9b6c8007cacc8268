// Package dpadcursor turns a directional pad into a virtual pointer.
//
// A [Controller] keeps an on-screen cursor, integrates held directional keys
// into accelerated motion, and synthesizes the pointer-event stream
// (down, move, up, hover-move, cancel, pointer2-down, pointer2-up) that a
// mouse- or touch-oriented content surface expects.
//
// # Quick start
//
// The simplest way to get started is [Run], which opens an ebiten window,
// polls keyboard and gamepad input and draws the cursor:
//
//	c := dpadcursor.NewController(surface, nil)
//	dpadcursor.Run(c, dpadcursor.RunConfig{
//		Title: "Remote", Width: 1280, Height: 720,
//	})
//
// For full control, feed [Controller.HandleKey] yourself, report the surface
// size with [Controller.SetSurfaceSize], and advance the [LoopScheduler]
// from your own loop.
//
// # Surfaces
//
// The content side implements [Surface]. It receives every pointer event and
// is asked first whenever edge motion wants to scroll. A surface may also
// implement [LongPressHandler], [CustomScroller] and [TextSelectionHandler];
// the Controller picks those up automatically.
//
// # Modes
//
// In Normal mode the activation key clicks and motion hovers. Grab holds the
// pointer down so motion drags content. TextSelection reports motion to the
// [TextSelectionHandler] instead of the surface. Back/escape leaves Grab and
// TextSelection; in Normal mode it is reported unhandled.
//
// # Scrolling
//
// Near an edge, motion toward it asks the surface to scroll natively, then
// the [CustomScroller]. When both decline, a synthetic drag inside an inset
// rectangle scrolls the content instead.
//
// # Zoom
//
// [Controller.Zoom] plays a fixed two-pointer pinch about the surface centre,
// interpolated with a [gween] easing curve.
//
// # Time
//
// Every timer runs on a [Scheduler]. The default [LoopScheduler] only moves
// when advanced, which makes motion and gestures reproducible in tests and
// in scripted replays ([LoadTestScript]).
//
// [gween]: https://github.com/tanema/gween
package dpadcursor
