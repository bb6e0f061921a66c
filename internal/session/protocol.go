package session

import (
	"encoding/json"

	"github.com/sketchpad/sketchpad/internal/render"
	"github.com/sketchpad/sketchpad/internal/style"
)

type Message struct {
	Type     string          `json:"type"`
	ClientID string          `json:"clientId,omitempty"`
	Seq      int64           `json:"seq,omitempty"`
	Payload  json.RawMessage `json:"payload,omitempty"`
}

const (
	// Client to server
	TypeMouse      = "mouse"
	TypeKey        = "key"
	TypeTool       = "tool"
	TypeDecorate   = "decorate"
	TypeDecoration = "decoration"
	TypePolygon    = "polygon"
	TypeFront      = "front"
	TypeClear      = "clear"
	TypeSave       = "save"
	TypeLoad       = "load"
	TypeView       = "view"

	// Server to client
	TypeWelcome = "welcome"
	TypeFrame   = "frame"
	TypeSaved   = "saved"
	TypeLoaded  = "loaded"
	TypeError   = "error"

	// Presence, both ways
	TypePresenceUpdate = "presence.update"
	TypePresenceState  = "presence.state"
	TypePresenceJoin   = "presence.join"
	TypePresenceLeave  = "presence.leave"
)

// Mouse actions are raw pointer activity; the session derives clicks,
// drags and moves from them.
const (
	MouseDown = "down"
	MouseMove = "move"
	MouseUp   = "up"
)

type MousePayload struct {
	Action string `json:"action"`
	X      int    `json:"x"`
	Y      int    `json:"y"`
	Clicks int    `json:"clicks,omitempty"`
}

type KeyPayload struct {
	Key  string `json:"key"`
	Down bool   `json:"down"`
}

type ToolPayload struct {
	Tool string `json:"tool"`
}

type DecoratePayload struct {
	Decoration style.Decoration `json:"decoration"`
	Fill       bool             `json:"fill"`
	Stroke     bool             `json:"stroke"`
}

type DecorationPayload struct {
	Decoration *style.Decoration `json:"decoration,omitempty"`
}

type PolygonPayload struct {
	Sides   int  `json:"sides"`
	X       int  `json:"x"`
	Y       int  `json:"y"`
	Radius  int  `json:"radius"`
	Upright bool `json:"upright"`
}

// ViewPayload zooms the shared view around the model origin, then pans it
// by X, Y pixels. Pointer coordinates are read in the same view.
type ViewPayload struct {
	Zoom float64 `json:"zoom"`
	X    int     `json:"x"`
	Y    int     `json:"y"`
}

type NamePayload struct {
	Name string `json:"name"`
}

type WelcomePayload struct {
	SessionID string `json:"sessionId"`
	ClientID  string `json:"clientId"`
}

type FramePayload struct {
	Tool      string               `json:"tool"`
	Shapes    int                  `json:"shapes"`
	Selection []string             `json:"selection"`
	View      []float64            `json:"view"`
	Commands  []render.DrawCommand `json:"commands"`
}

type LoadedPayload struct {
	Name   string `json:"name"`
	Shapes int    `json:"shapes"`
}

type ErrorPayload struct {
	Message string `json:"message"`
	Type    string `json:"type,omitempty"`
}

type PresencePayload struct {
	Cursor *CursorPos `json:"cursor,omitempty"`
}

type CursorPos struct {
	X int `json:"x"`
	Y int `json:"y"`
}

type PresenceStatePayload struct {
	Presences map[string]*PresencePayload `json:"presences"`
}

type PresenceJoinPayload struct {
	ClientID string `json:"clientId"`
}

type PresenceLeavePayload struct {
	ClientID string `json:"clientId"`
}

func newMessage(typ string, payload any) *Message {
	msg := &Message{Type: typ}
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			data, _ = json.Marshal(ErrorPayload{Message: "marshal " + typ + ": " + err.Error()})
			msg.Type = TypeError
		}
		msg.Payload = data
	}
	return msg
}
