//go:build js && wasm

package main

import (
	"encoding/json"
	"strings"
	"syscall/js"

	"github.com/sketchpad/sketchpad/internal/document"
	"github.com/sketchpad/sketchpad/internal/editor"
	"github.com/sketchpad/sketchpad/internal/geom"
	"github.com/sketchpad/sketchpad/internal/input"
	"github.com/sketchpad/sketchpad/internal/render"
	"github.com/sketchpad/sketchpad/internal/style"
)

var ed *editor.Editor

func main() {
	ed = editor.New(nil)

	sketchpad := js.Global().Get("Object").New()

	// --- Commands (frontend → editor) ---
	sketchpad.Set("press", js.FuncOf(press))
	sketchpad.Set("motion", js.FuncOf(motion))
	sketchpad.Set("release", js.FuncOf(release))
	sketchpad.Set("keyDown", js.FuncOf(keyDown))
	sketchpad.Set("keyUp", js.FuncOf(keyUp))
	sketchpad.Set("setTool", js.FuncOf(setTool))
	sketchpad.Set("setView", js.FuncOf(setView))
	sketchpad.Set("setDecoration", js.FuncOf(setDecoration))
	sketchpad.Set("decorate", js.FuncOf(decorate))
	sketchpad.Set("insertPolygon", js.FuncOf(insertPolygon))
	sketchpad.Set("bringToFront", js.FuncOf(bringToFront))
	sketchpad.Set("clear", js.FuncOf(clearAll))
	sketchpad.Set("loadDocument", js.FuncOf(loadDocument))
	sketchpad.Set("loadSample", js.FuncOf(loadSample))

	// --- Queries (frontend ← editor) ---
	sketchpad.Set("render", js.FuncOf(renderFrame))
	sketchpad.Set("getDocument", js.FuncOf(getDocument))
	sketchpad.Set("getSelection", js.FuncOf(getSelection))
	sketchpad.Set("getTool", js.FuncOf(getTool))
	sketchpad.Set("getView", js.FuncOf(getView))

	js.Global().Set("sketchpad", sketchpad)
	js.Global().Set("sketchpadWasmReady", js.ValueOf(true))

	// Keep Go runtime alive
	select {}
}

func ok() interface{} {
	return js.ValueOf(map[string]interface{}{"ok": true})
}

func fail(msg string) interface{} {
	return js.ValueOf(map[string]interface{}{"error": msg})
}

func point(args []js.Value) (geom.Point, bool) {
	if len(args) < 2 {
		return geom.Point{}, false
	}
	return geom.Pt(args[0].Int(), args[1].Int()), true
}

// --- Command Handlers ---

func press(this js.Value, args []js.Value) interface{} {
	p, valid := point(args)
	if !valid {
		return fail("missing x, y")
	}
	clicks := 1
	if len(args) > 2 {
		clicks = max(args[2].Int(), 1)
	}
	ed.Press(p, clicks)
	return ok()
}

func motion(this js.Value, args []js.Value) interface{} {
	p, valid := point(args)
	if !valid {
		return fail("missing x, y")
	}
	ed.Motion(p)
	return ok()
}

func release(this js.Value, args []js.Value) interface{} {
	p, valid := point(args)
	if !valid {
		return fail("missing x, y")
	}
	ed.Release(p)
	return ok()
}

func key(args []js.Value) (input.Key, bool) {
	if len(args) < 1 {
		return input.KeyUnknown, false
	}
	k := input.ParseKey(args[0].String())
	return k, k != input.KeyUnknown
}

func keyDown(this js.Value, args []js.Value) interface{} {
	k, valid := key(args)
	if !valid {
		return fail("unknown key")
	}
	ed.KeyPress(k)
	return ok()
}

func keyUp(this js.Value, args []js.Value) interface{} {
	k, valid := key(args)
	if !valid {
		return fail("unknown key")
	}
	ed.KeyRelease(k)
	return ok()
}

func setTool(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return fail("missing tool")
	}
	t, err := editor.ParseTool(args[0].String())
	if err != nil {
		return fail(err.Error())
	}
	ed.SetActiveTool(t)
	return ok()
}

// setView(zoom, panX, panY) sets the view transform. Pointer coordinates
// passed to press, motion and release are read in the same view.
func setView(this js.Value, args []js.Value) interface{} {
	if len(args) < 3 {
		return fail("missing zoom, x, y")
	}
	if err := ed.SetView(args[0].Float(), geom.Pt(args[1].Int(), args[2].Int())); err != nil {
		return fail(err.Error())
	}
	return ok()
}

// setDecoration takes decoration JSON, or nothing to restore the default.
func setDecoration(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 || args[0].IsUndefined() || args[0].IsNull() {
		ed.ResetDecoration()
		return ok()
	}
	var d style.Decoration
	if err := json.Unmarshal([]byte(args[0].String()), &d); err != nil {
		return fail(err.Error())
	}
	ed.SetDecoration(d)
	return ok()
}

// decorate(json, fill, stroke) restyles the selection.
func decorate(this js.Value, args []js.Value) interface{} {
	if len(args) < 3 {
		return fail("missing decoration, fill, stroke")
	}
	var d style.Decoration
	if err := json.Unmarshal([]byte(args[0].String()), &d); err != nil {
		return fail(err.Error())
	}
	ed.DecorateSelection(d, args[1].Bool(), args[2].Bool())
	return ok()
}

// insertPolygon(sides, x, y, radius, upright)
func insertPolygon(this js.Value, args []js.Value) interface{} {
	if len(args) < 4 {
		return fail("missing sides, x, y, radius")
	}
	upright := len(args) > 4 && args[4].Bool()
	s, err := ed.InsertRegularPolygon(args[0].Int(), geom.Pt(args[1].Int(), args[2].Int()), args[3].Int(), upright)
	if err != nil {
		return fail(err.Error())
	}
	return js.ValueOf(map[string]interface{}{"ok": true, "id": s.ID()})
}

func bringToFront(this js.Value, args []js.Value) interface{} {
	ed.BringToFront()
	return ok()
}

func clearAll(this js.Value, args []js.Value) interface{} {
	ed.ClearAll()
	return ok()
}

// loadDocument appends a saved drawing on top of the canvas.
func loadDocument(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return fail("missing document JSON")
	}
	doc, err := document.Decode(strings.NewReader(args[0].String()))
	if err != nil {
		return fail(err.Error())
	}
	return appendDocument(doc)
}

func loadSample(this js.Value, args []js.Value) interface{} {
	return appendDocument(document.NewSampleDocument())
}

func appendDocument(doc *document.Document) interface{} {
	shapes, err := doc.Build()
	if err != nil {
		return fail(err.Error())
	}
	ed.Append(shapes...)
	return js.ValueOf(map[string]interface{}{"ok": true, "shapes": len(shapes)})
}

// --- Query Handlers ---

// renderFrame returns the draw commands for the current state as JSON.
func renderFrame(this js.Value, args []js.Value) interface{} {
	var rec render.Recorder
	ed.Render(&rec, ed.View())
	out, err := rec.JSON()
	if err != nil {
		return js.ValueOf("[]")
	}
	return js.ValueOf(out)
}

func getDocument(this js.Value, args []js.Value) interface{} {
	var sb strings.Builder
	if err := document.Encode(&sb, document.FromShapes(ed.Shapes())); err != nil {
		return js.ValueOf("{}")
	}
	return js.ValueOf(sb.String())
}

func getSelection(this js.Value, args []js.Value) interface{} {
	ids := ed.SelectedIDs()
	out := make([]interface{}, len(ids))
	for i, id := range ids {
		out[i] = id
	}
	return js.ValueOf(out)
}

func getTool(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(ed.Tool().String())
}

// getView returns the view matrix as [a, b, c, d, e, f].
func getView(this js.Value, args []js.Value) interface{} {
	m := ed.View().Transform.ToSlice()
	out := make([]interface{}, len(m))
	for i, v := range m {
		out[i] = v
	}
	return js.ValueOf(out)
}
