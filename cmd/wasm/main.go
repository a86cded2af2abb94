//go:build js && wasm

package main

import (
	"encoding/json"
	"fmt"
	"syscall/js"

	"github.com/kittclouds/notebook/internal/store"
	"github.com/kittclouds/notebook/pkg/logger"
	"github.com/kittclouds/notebook/pkg/notebook"
	"github.com/kittclouds/notebook/pkg/render"
	"github.com/kittclouds/notebook/pkg/session"
)

// Version info
const Version = "1.0.0"

// Global state
var ctrl *session.Controller
var docs *notebook.Store

func main() {
	fmt.Println("[Notebook] WASM Ready v" + Version)

	js.Global().Set("Notebook", js.ValueOf(map[string]interface{}{
		"version":    js.FuncOf(getVersion),
		"initialize": js.FuncOf(initialize),
		// Edit surface events
		"newDocument":    js.FuncOf(newDocument),
		"selectDocument": js.FuncOf(selectDocument),
		"titleChanged":   js.FuncOf(titleChanged),
		"contentChanged": js.FuncOf(contentChanged),
		"searchChanged":  js.FuncOf(searchChanged),
		// Deletion workflow
		"requestDelete": js.FuncOf(requestDelete),
		"confirmDelete": js.FuncOf(confirmDelete),
		"cancelDelete":  js.FuncOf(cancelDelete),
		// Introspection
		"documents": js.FuncOf(listDocuments),
	}))

	select {}
}

// localStorageKV persists through the browser's localStorage, the same
// medium the page itself uses.
type localStorageKV struct{}

func (localStorageKV) GetString(key string) (string, error) {
	v := js.Global().Get("localStorage").Call("getItem", key)
	if v.IsNull() || v.IsUndefined() {
		return "", nil
	}
	return v.String(), nil
}

func (localStorageKV) SetString(key, value string) error {
	js.Global().Get("localStorage").Call("setItem", key, value)
	return nil
}

var _ store.KV = localStorageKV{}

// jsFrontend forwards surface updates to callbacks supplied by the page via
// initialize: showDocument, showPreview, showList, clearEditor,
// showDeletePrompt, hideDeletePrompt.
type jsFrontend struct {
	callbacks js.Value
}

func (f *jsFrontend) call(name string, args ...interface{}) {
	fn := f.callbacks.Get(name)
	if fn.Type() != js.TypeFunction {
		return
	}
	fn.Invoke(args...)
}

func (f *jsFrontend) ShowDocument(doc *notebook.Document) {
	data, err := json.Marshal(doc)
	if err != nil {
		return
	}
	f.call("showDocument", string(data))
}

func (f *jsFrontend) ShowPreview(rendered string) {
	f.call("showPreview", rendered)
}

// listItem is what the page's list renderer consumes. Titles are escaped
// here; the page inserts them as markup.
type listItem struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Date   string `json:"date"`
	Active bool   `json:"active"`
}

func (f *jsFrontend) ShowList(all []*notebook.Document, activeID string) {
	items := make([]listItem, 0, len(all))
	for _, doc := range all {
		items = append(items, listItem{
			ID:     doc.ID,
			Title:  render.EscapeTitle(doc.DisplayTitle()),
			Date:   notebook.FormatDate(doc.UpdatedAt),
			Active: doc.ID == activeID,
		})
	}
	data, err := json.Marshal(items)
	if err != nil {
		return
	}
	f.call("showList", string(data))
}

func (f *jsFrontend) ClearEditor() {
	f.call("clearEditor")
}

func (f *jsFrontend) ShowDeletePrompt(doc *notebook.Document) {
	f.call("showDeletePrompt", doc.ID, render.EscapeTitle(doc.DisplayTitle()))
}

func (f *jsFrontend) HideDeletePrompt() {
	f.call("hideDeletePrompt")
}

// initialize: [callbacks object, optional {debug bool}]
// Wires the store, renderer, and session controller, then bootstraps the
// collection (seeding the welcome document on first run).
func initialize(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 || args[0].Type() != js.TypeObject {
		return errorResult("requires a callbacks object")
	}

	debug := len(args) > 1 && args[1].Truthy() && args[1].Get("debug").Truthy()
	log := logger.New(debug)

	adapter := notebook.NewAdapter(localStorageKV{}, log)
	docs = notebook.NewStore(adapter, log)
	ctrl = session.NewController(
		docs,
		adapter,
		render.New(log),
		&jsFrontend{callbacks: args[0]},
		session.DefaultConfig(),
		log,
	)
	ctrl.Start()

	return successResult("initialized")
}

func getVersion(this js.Value, args []js.Value) interface{} {
	return Version
}

func newDocument(this js.Value, args []js.Value) interface{} {
	if ctrl == nil {
		return errorResult("not initialized")
	}
	doc := ctrl.CreateDocument()
	return successResult(doc.ID)
}

// selectDocument: [id string]
func selectDocument(this js.Value, args []js.Value) interface{} {
	if ctrl == nil {
		return errorResult("not initialized")
	}
	if len(args) < 1 {
		return errorResult("requires 1 arg: id")
	}
	ctrl.Select(args[0].String())
	return successResult("selected")
}

// titleChanged: [text string]
func titleChanged(this js.Value, args []js.Value) interface{} {
	if ctrl == nil {
		return errorResult("not initialized")
	}
	if len(args) < 1 {
		return errorResult("requires 1 arg: text")
	}
	ctrl.TitleChanged(args[0].String())
	return successResult("queued")
}

// contentChanged: [text string]
func contentChanged(this js.Value, args []js.Value) interface{} {
	if ctrl == nil {
		return errorResult("not initialized")
	}
	if len(args) < 1 {
		return errorResult("requires 1 arg: text")
	}
	ctrl.ContentChanged(args[0].String())
	return successResult("queued")
}

// searchChanged: [query string]
func searchChanged(this js.Value, args []js.Value) interface{} {
	if ctrl == nil {
		return errorResult("not initialized")
	}
	if len(args) < 1 {
		return errorResult("requires 1 arg: query")
	}
	ctrl.SearchChanged(args[0].String())
	return successResult("queued")
}

// requestDelete: [id string]
func requestDelete(this js.Value, args []js.Value) interface{} {
	if ctrl == nil {
		return errorResult("not initialized")
	}
	if len(args) < 1 {
		return errorResult("requires 1 arg: id")
	}
	ctrl.RequestDelete(args[0].String())
	return successResult("pending")
}

func confirmDelete(this js.Value, args []js.Value) interface{} {
	if ctrl == nil {
		return errorResult("not initialized")
	}
	ctrl.ConfirmDelete()
	return successResult("confirmed")
}

func cancelDelete(this js.Value, args []js.Value) interface{} {
	if ctrl == nil {
		return errorResult("not initialized")
	}
	ctrl.CancelDelete()
	return successResult("cancelled")
}

func listDocuments(this js.Value, args []js.Value) interface{} {
	if docs == nil {
		return errorResult("not initialized")
	}
	data, err := json.Marshal(docs.All())
	if err != nil {
		return errorResult("encode: " + err.Error())
	}
	return string(data)
}

func errorResult(msg string) interface{} {
	return map[string]interface{}{"ok": false, "error": msg}
}

func successResult(msg string) interface{} {
	return map[string]interface{}{"ok": true, "result": msg}
}
