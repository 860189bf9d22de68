// Package adboard is an interactive board of circular ad nodes for
// [Ebitengine].
//
// Nodes repel each other, collide, and settle under a configurable shape
// force on a canvas the user can pan and zoom. Dragging a node throws it back
// into the simulation; clicking one selects it and hands its id, metrics and
// video reference to whoever listens.
//
// # Quick start
//
// The simplest way to get started is [Run], which creates a window and game
// loop for you:
//
//	board := adboard.NewBoard(defs, adboard.DefaultConfig())
//	board.OnSelect(func(e adboard.SelectEvent) {
//		fmt.Println(e.ID, e.Metrics.CTR)
//	})
//	adboard.Run(board, adboard.RunConfig{Title: "Ads", Width: 800, Height: 600})
//
// For full control, implement [ebiten.Game] yourself and call [Board.Update]
// and [Board.Draw] directly, forwarding pointer input through
// [Board.PointerDown], [Board.PointerMove], [Board.PointerUp] and
// [Board.Wheel].
//
// # Simulation
//
// Each [Board.Update] runs one physics [Step]: pairwise repulsion, the
// [ForceModel] chosen in [PhysicsConfig], a small jitter, collision
// relaxation, spin cancellation and damped integration. All quantities are
// per frame. The [FrameClock] returned by [Board.Clock] pauses and
// single-steps the simulation.
//
// Tuning may be replaced while running with [Board.Retune], which is safe to
// call from another goroutine.
//
// # Camera
//
// The [Camera] maps world to screen as screen = world*Scale + Offset. Zooming
// keeps the world point under the focal point fixed. [Camera.ScrollTo]
// animates the view with a gween tween.
//
// # Interaction
//
// The [Controller] turns pointer events into gestures. A press on a node that
// moves less than the click threshold selects it; moving further drags it.
// A press on empty canvas pans, and releasing a fast pan coasts with
// inertia.
//
// # Testing
//
// Synthetic input is queued with [Board.InjectClick], [Board.InjectDrag] and
// friends and consumed one event per Update. [LoadTestScript] reads a JSON
// script of clicks, drags, waits, zooms and screenshots for automated visual
// checks.
//
// [Ebitengine]: https://ebitengine.org
package adboard
