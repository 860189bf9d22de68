// Package ecs provides ECS adapters for adboard.
//
// [NewDonburiStore] bridges board events (select, drag start, throw, pan
// start, dismiss) into a [Donburi] world as typed events. Subscribe to
// [BoardEventType] in your ECS systems to receive them.
//
// [NewMirror] keeps one entity per board node with its position, radius and
// selection state, so systems can query nodes like any other component.
//
// Usage:
//
//	store := ecs.NewDonburiStore(world)
//	board.SetEntityStore(store)
//
//	mirror := ecs.NewMirror(world, board)
//	// each frame, after board.Update:
//	mirror.Sync()
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
