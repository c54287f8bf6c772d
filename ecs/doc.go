// Package ecs provides ECS adapters for tangerine documents.
//
// [NewDonburiSink] bridges document events (commits, undo, redo, saves,
// frame changes) into a [Donburi] world as typed events, and keeps a
// singleton [DocumentState] entity up to date so ECS systems can read the
// editor state without holding the document.
//
// Usage:
//
//	sink := ecs.NewDonburiSink(world)
//	doc.Subscribe(sink)
//	ecs.DocumentEventType.Subscribe(world, onDocumentEvent)
//	// each tick:
//	ecs.DocumentEventType.ProcessEvents(world)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
