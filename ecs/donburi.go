package ecs

import (
	"github.com/phanxgames/lime/tangerine/core"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// DocumentEventType is the Donburi event type for document events.
var DocumentEventType = events.NewEventType[core.Event]()

// DocumentStateData mirrors the parts of a document that ECS systems read.
type DocumentStateData struct {
	Path     string
	Frame    int
	Modified bool
	CanUndo  bool
	CanRedo  bool
	// Events counts the events seen since the sink was created.
	Events int
}

// DocumentState is the component of the singleton entity maintained by the
// sink.
var DocumentState = donburi.NewComponentType[DocumentStateData]()

// DonburiSink is a core.EventSink that republishes into a Donburi world.
type DonburiSink struct {
	world  donburi.World
	entity donburi.Entity
}

// NewDonburiSink creates a sink for world and the DocumentState entity it
// updates. Events are queued and delivered by DocumentEventType.ProcessEvents.
func NewDonburiSink(world donburi.World) *DonburiSink {
	return &DonburiSink{world: world, entity: world.Create(DocumentState)}
}

// Entity returns the DocumentState entity.
func (s *DonburiSink) Entity() donburi.Entity {
	return s.entity
}

// State returns the current DocumentState value.
func (s *DonburiSink) State() DocumentStateData {
	return *DocumentState.Get(s.world.Entry(s.entity))
}

// Publish implements core.EventSink.
func (s *DonburiSink) Publish(e core.Event) {
	entry := s.world.Entry(s.entity)
	st := DocumentState.Get(entry)
	st.Frame = e.Frame
	st.Modified = e.Modified
	st.Events++
	if e.Document != nil {
		st.Path = e.Document.Path()
		st.CanUndo = e.Document.History().CanUndo()
		st.CanRedo = e.Document.History().CanRedo()
	}
	DocumentEventType.Publish(s.world, e)
}
