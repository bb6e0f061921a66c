// Package session hosts live editing sessions. Each session owns one editor
// and applies every message on a single goroutine, so the editor itself
// needs no locking.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sketchpad/sketchpad/internal/document"
	"github.com/sketchpad/sketchpad/internal/editor"
	"github.com/sketchpad/sketchpad/internal/geom"
	"github.com/sketchpad/sketchpad/internal/input"
	"github.com/sketchpad/sketchpad/internal/render"
	"github.com/sketchpad/sketchpad/internal/store"
)

var (
	ErrNotFound   = errors.New("session not found")
	ErrClosed     = errors.New("session closed")
	ErrBadMessage = errors.New("bad message")
	ErrNoStore    = errors.New("saving is not configured")
)

const (
	inboxSize    = 64
	storeTimeout = 10 * time.Second
)

type Session struct {
	ID     string
	logger *slog.Logger
	store  store.Store

	// Owned by run.
	editor   *editor.Editor
	clients  map[string]*Client
	presence *presence
	seq      int64

	ops       chan func()
	done      chan struct{}
	closeOnce sync.Once

	lastActive atomic.Int64
	connected  atomic.Int32
}

func newSession(id string, st store.Store, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("session", id)
	s := &Session{
		ID:       id,
		logger:   logger,
		store:    st,
		editor:   editor.New(logger),
		clients:  make(map[string]*Client),
		presence: newPresence(),
		ops:      make(chan func(), inboxSize),
		done:     make(chan struct{}),
	}
	s.touch()
	return s
}

func (s *Session) start() { go s.run() }

func (s *Session) run() {
	for {
		select {
		case op := <-s.ops:
			op()
		case <-s.done:
			for id, c := range s.clients {
				close(c.send)
				delete(s.clients, id)
			}
			s.connected.Store(0)
			return
		}
	}
}

// do queues fn for the session loop.
func (s *Session) do(ctx context.Context, fn func()) error {
	select {
	case <-s.done:
		return ErrClosed
	default:
	}
	select {
	case s.ops <- fn:
		return nil
	case <-s.done:
		return ErrClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// call runs fn on the session loop and waits for it to finish.
func (s *Session) call(ctx context.Context, fn func()) error {
	finished := make(chan struct{})
	if err := s.do(ctx, func() {
		defer close(finished)
		fn()
	}); err != nil {
		return err
	}
	select {
	case <-finished:
		return nil
	case <-s.done:
		return ErrClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close stops the loop and closes every client's queue. It is safe to call
// more than once.
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		close(s.done)
		s.logger.Info("session closed")
	})
}

func (s *Session) Done() <-chan struct{} { return s.done }

// Clients is the number of connected clients.
func (s *Session) Clients() int { return int(s.connected.Load()) }

// LastActive is when the session last handled a message.
func (s *Session) LastActive() time.Time { return time.Unix(0, s.lastActive.Load()) }

func (s *Session) touch() { s.lastActive.Store(time.Now().UnixNano()) }

// Join attaches a client and sends it the current state.
func (s *Session) Join(c *Client) error {
	return s.do(context.Background(), func() {
		s.clients[c.ID] = c
		s.connected.Store(int32(len(s.clients)))
		s.touch()

		c.Send(newMessage(TypeWelcome, WelcomePayload{SessionID: s.ID, ClientID: c.ID}))
		c.Send(s.presence.stateMessage())
		s.broadcast(newMessage(TypePresenceJoin, PresenceJoinPayload{ClientID: c.ID}), c.ID)
		c.Send(s.frameMessage())

		s.logger.Info("client joined", "client", c.ID, "clients", len(s.clients))
	})
}

// Leave detaches a client and closes its queue.
func (s *Session) Leave(c *Client) {
	err := s.do(context.Background(), func() {
		if _, ok := s.clients[c.ID]; !ok {
			return
		}
		delete(s.clients, c.ID)
		close(c.send)
		s.connected.Store(int32(len(s.clients)))
		s.presence.remove(c.ID)
		s.broadcast(newMessage(TypePresenceLeave, PresenceLeavePayload{ClientID: c.ID}), "")

		s.logger.Info("client left", "client", c.ID, "clients", len(s.clients))
	})
	if err != nil {
		s.logger.Debug("leave after session ended", "client", c.ID, "error", err)
	}
}

// Submit queues a client message. Failures are reported to the client.
func (s *Session) Submit(c *Client, msg Message) error {
	return s.do(context.Background(), func() {
		if err := s.handle(c, msg); err != nil {
			s.logger.Warn("message failed", "type", msg.Type, "client", msg.ClientID, "error", err)
			if c != nil {
				c.Send(newMessage(TypeError, ErrorPayload{Message: err.Error(), Type: msg.Type}))
			}
		}
	})
}

// Apply handles msg as if it came from a client and waits for the result.
func (s *Session) Apply(ctx context.Context, msg Message) error {
	var err error
	if cerr := s.call(ctx, func() { err = s.handle(nil, msg) }); cerr != nil {
		return cerr
	}
	return err
}

// Document captures the current drawing.
func (s *Session) Document(ctx context.Context) (*document.Document, error) {
	var doc *document.Document
	if err := s.call(ctx, func() {
		doc = document.FromShapes(s.editor.Shapes())
		doc.Name = s.ID
	}); err != nil {
		return nil, err
	}
	return doc, nil
}

// Frame renders the current state the way clients receive it.
func (s *Session) Frame(ctx context.Context) (*FramePayload, error) {
	var f *FramePayload
	if err := s.call(ctx, func() { f = s.frame() }); err != nil {
		return nil, err
	}
	return f, nil
}

func decode[T any](msg Message) (T, error) {
	var p T
	if len(msg.Payload) == 0 {
		return p, fmt.Errorf("%w: %s needs a payload", ErrBadMessage, msg.Type)
	}
	if err := json.Unmarshal(msg.Payload, &p); err != nil {
		return p, fmt.Errorf("%w: %s: %w", ErrBadMessage, msg.Type, err)
	}
	return p, nil
}

// handle applies one message to the editor and pushes a new frame.
func (s *Session) handle(c *Client, msg Message) error {
	s.touch()
	var err error
	switch msg.Type {
	case TypeMouse:
		err = s.handleMouse(c, msg)
	case TypeKey:
		err = s.handleKey(msg)
	case TypeTool:
		var p ToolPayload
		if p, err = decode[ToolPayload](msg); err == nil {
			var t editor.Tool
			if t, err = editor.ParseTool(p.Tool); err == nil {
				s.editor.SetActiveTool(t)
			}
		}
	case TypeDecorate:
		var p DecoratePayload
		if p, err = decode[DecoratePayload](msg); err == nil {
			s.editor.DecorateSelection(p.Decoration, p.Fill, p.Stroke)
		}
	case TypeDecoration:
		var p DecorationPayload
		if len(msg.Payload) > 0 {
			p, err = decode[DecorationPayload](msg)
		}
		if err == nil {
			if p.Decoration == nil {
				s.editor.ResetDecoration()
			} else {
				s.editor.SetDecoration(*p.Decoration)
			}
		}
	case TypePolygon:
		var p PolygonPayload
		if p, err = decode[PolygonPayload](msg); err == nil {
			_, err = s.editor.InsertRegularPolygon(p.Sides, geom.Pt(p.X, p.Y), p.Radius, p.Upright)
		}
	case TypeView:
		var p ViewPayload
		if p, err = decode[ViewPayload](msg); err == nil {
			err = s.editor.SetView(p.Zoom, geom.Pt(p.X, p.Y))
		}
	case TypeFront:
		s.editor.BringToFront()
	case TypeClear:
		s.editor.ClearAll()
	case TypeSave:
		err = s.save(c, msg)
	case TypeLoad:
		err = s.load(c, msg)
	default:
		return fmt.Errorf("%w: unknown type %q", ErrBadMessage, msg.Type)
	}
	if err != nil {
		return err
	}
	s.broadcastFrame()
	return nil
}

func (s *Session) handleMouse(c *Client, msg Message) error {
	p, err := decode[MousePayload](msg)
	if err != nil {
		return err
	}
	pt := geom.Pt(p.X, p.Y)
	switch p.Action {
	case MouseDown:
		s.editor.Press(pt, max(p.Clicks, 1))
	case MouseMove:
		s.editor.Motion(pt)
	case MouseUp:
		s.editor.Release(pt)
	default:
		return fmt.Errorf("%w: unknown mouse action %q", ErrBadMessage, p.Action)
	}
	if c != nil && s.presence.move(c.ID, pt) {
		s.broadcast(updateMessage(c.ID, pt), c.ID)
	}
	return nil
}

func (s *Session) handleKey(msg Message) error {
	p, err := decode[KeyPayload](msg)
	if err != nil {
		return err
	}
	k := input.ParseKey(p.Key)
	if k == input.KeyUnknown {
		return fmt.Errorf("%w: unknown key %q", ErrBadMessage, p.Key)
	}
	if p.Down {
		s.editor.KeyPress(k)
	} else {
		s.editor.KeyRelease(k)
	}
	return nil
}

func (s *Session) save(c *Client, msg Message) error {
	if s.store == nil {
		return ErrNoStore
	}
	p, err := decode[NamePayload](msg)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()

	doc := document.FromShapes(s.editor.Shapes())
	if err := s.store.Save(ctx, p.Name, doc); err != nil {
		return fmt.Errorf("save %q: %w", p.Name, err)
	}
	s.logger.Info("drawing saved", "name", p.Name, "shapes", len(doc.Shapes))
	s.reply(c, newMessage(TypeSaved, NamePayload{Name: p.Name}))
	return nil
}

// load appends a stored drawing on top of the canvas. Nothing is added
// unless every shape in it builds.
func (s *Session) load(c *Client, msg Message) error {
	if s.store == nil {
		return ErrNoStore
	}
	p, err := decode[NamePayload](msg)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()

	doc, err := s.store.Load(ctx, p.Name)
	if err != nil {
		return fmt.Errorf("load %q: %w", p.Name, err)
	}
	shapes, err := doc.Build()
	if err != nil {
		return fmt.Errorf("load %q: %w", p.Name, err)
	}
	s.editor.Append(shapes...)
	s.logger.Info("drawing loaded", "name", p.Name, "shapes", len(shapes))
	s.reply(c, newMessage(TypeLoaded, LoadedPayload{Name: p.Name, Shapes: len(shapes)}))
	return nil
}

func (s *Session) reply(c *Client, msg *Message) {
	if c != nil {
		c.Send(msg)
	}
}

func (s *Session) frame() *FramePayload {
	var rec render.Recorder
	view := s.editor.View()
	s.editor.Render(&rec, view)
	f := &FramePayload{
		Tool:      s.editor.Tool().String(),
		Shapes:    s.editor.Canvas().Len(),
		Selection: s.editor.SelectedIDs(),
		View:      view.Transform.ToSlice(),
		Commands:  rec.Commands,
	}
	if f.Selection == nil {
		f.Selection = []string{}
	}
	if f.Commands == nil {
		f.Commands = []render.DrawCommand{}
	}
	return f
}

func (s *Session) frameMessage() *Message {
	s.seq++
	msg := newMessage(TypeFrame, s.frame())
	msg.Seq = s.seq
	return msg
}

func (s *Session) broadcastFrame() {
	if len(s.clients) == 0 {
		return
	}
	s.broadcast(s.frameMessage(), "")
}

// broadcast sends msg to every client except excludeID.
func (s *Session) broadcast(msg *Message, excludeID string) {
	if len(s.clients) == 0 {
		return
	}
	data, err := json.Marshal(msg)
	if err != nil {
		s.logger.Error("marshal message", "error", err)
		return
	}
	for id, c := range s.clients {
		if id != excludeID {
			c.sendRaw(data)
		}
	}
}
