package session

import "github.com/sketchpad/sketchpad/internal/geom"

// presence tracks the last pointer position of every connected client. It
// is owned by the session loop.
type presence struct {
	cursors map[string]geom.Point
}

func newPresence() *presence {
	return &presence{cursors: make(map[string]geom.Point)}
}

// move records a client's cursor and reports whether it changed.
func (p *presence) move(clientID string, pt geom.Point) bool {
	if old, ok := p.cursors[clientID]; ok && old == pt {
		return false
	}
	p.cursors[clientID] = pt
	return true
}

func (p *presence) remove(clientID string) {
	delete(p.cursors, clientID)
}

func (p *presence) stateMessage() *Message {
	state := PresenceStatePayload{Presences: make(map[string]*PresencePayload, len(p.cursors))}
	for id, pt := range p.cursors {
		state.Presences[id] = &PresencePayload{Cursor: &CursorPos{X: pt.X, Y: pt.Y}}
	}
	return newMessage(TypePresenceState, state)
}

func updateMessage(clientID string, pt geom.Point) *Message {
	msg := newMessage(TypePresenceUpdate, PresencePayload{Cursor: &CursorPos{X: pt.X, Y: pt.Y}})
	msg.ClientID = clientID
	return msg
}
