//go:build js && wasm

package main

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"
	"syscall/js"

	"github.com/sirupsen/logrus"

	"github.com/kittclouds/atmkit/internal/config"
	"github.com/kittclouds/atmkit/internal/logging"
	"github.com/kittclouds/atmkit/pkg/dataset"
	"github.com/kittclouds/atmkit/pkg/session"
	"github.com/kittclouds/atmkit/pkg/view"
)

// Version info
const Version = "0.3.0"

// app is the page-side owner of the session. Every export is a method on it.
type app struct {
	sess  *session.Session
	dom   *page
	log   *logrus.Entry
	funcs []js.Func
}

func main() {
	a := &app{}
	println("[ATMKit] WASM Ready v" + Version)

	js.Global().Set("ATMKit", js.ValueOf(map[string]interface{}{
		"version":      js.FuncOf(a.version),
		"start":        js.FuncOf(a.start),
		"filter":       js.FuncOf(a.filter),
		"search":       js.FuncOf(a.search),
		"clear":        js.FuncOf(a.clear),
		"toggleColumn": js.FuncOf(a.toggleColumn),
		"snapshot":     js.FuncOf(a.snapshot),
		"exportXLSX":   js.FuncOf(a.exportXLSX),
	}))

	select {}
}

func (a *app) version(this js.Value, args []js.Value) interface{} {
	return Version
}

// start binds the page and loads the dataset.
// Args: [configJSON string (optional)]
// Returns: Promise resolving to a snapshot JSON or an error JSON.
func (a *app) start(this js.Value, args []js.Value) interface{} {
	if a.sess != nil {
		return errorResult("already started")
	}

	var raw []byte
	if len(args) > 0 && args[0].Type() == js.TypeString {
		raw = []byte(args[0].String())
	} else if len(args) > 0 && args[0].Type() == js.TypeObject {
		raw = []byte(js.Global().Get("JSON").Call("stringify", args[0]).String())
	}
	cfg, err := config.Parse(raw)
	if err != nil {
		return errorResult(err.Error())
	}

	logger, err := logging.New(cfg.LogLevel, os.Stderr)
	if err != nil {
		return errorResult(err.Error())
	}
	a.log = logging.Component(logger, "wasm")

	dom, err := bindPage(js.Global().Get("document"), cfg)
	if err != nil {
		return errorResult(err.Error())
	}
	a.dom = dom

	sess, err := session.New(cfg, session.Deps{
		Table:   dom,
		Filters: dom,
		Cells:   dom,
		Summary: dom.summaryTarget(),
		Charts:  dom.chartFactory(cfg.Chart),
		Logger:  logger,
	})
	if err != nil {
		return errorResult(err.Error())
	}
	a.sess = sess

	src := dataset.HTTPSource{URL: cfg.DataURL}
	return newPromise(func() interface{} {
		// net/http blocks on the browser fetch, so the load runs off the JS event turn.
		if err := sess.Load(context.Background(), src); err != nil {
			return errorResult(err.Error())
		}
		a.bindEvents()
		return a.snapshotJSON()
	})
}

// bindEvents registers the page listeners once the dataset is in place.
func (a *app) bindEvents() {
	on := func(el js.Value, event string, fn func(js.Value)) {
		if !el.Truthy() {
			return
		}
		f := js.FuncOf(func(this js.Value, args []js.Value) interface{} {
			fn(this)
			return nil
		})
		a.funcs = append(a.funcs, f)
		el.Call("addEventListener", event, f)
	}

	on(a.dom.filterBtn, "click", func(js.Value) {
		a.report(a.sess.Filter(a.dom.paperSel.Get("value").String(), a.dom.condSel.Get("value").String()))
	})
	on(a.dom.clearBtn, "click", func(js.Value) {
		a.report(a.sess.Clear())
	})
	on(a.dom.searchInput, "input", func(js.Value) {
		a.report(a.sess.Search(a.dom.searchInput.Get("value").String()))
	})
	for _, box := range a.dom.toggles() {
		on(box, "change", func(el js.Value) {
			id := view.ColumnID(el.Get("dataset").Get("col").String())
			a.report(a.sess.SetColumnVisible(id, el.Get("checked").Bool()))
		})
	}
}

func (a *app) report(err error) {
	if err != nil {
		a.log.WithError(err).Error("event handler failed")
	}
}

// filter: [paper string, condition string]
func (a *app) filter(this js.Value, args []js.Value) interface{} {
	if a.sess == nil {
		return errorResult("not started")
	}
	if len(args) < 2 {
		return errorResult("requires 2 args: paper, condition")
	}
	if err := a.sess.Filter(args[0].String(), args[1].String()); err != nil {
		return errorResult(err.Error())
	}
	return a.snapshotJSON()
}

// search: [term string]
func (a *app) search(this js.Value, args []js.Value) interface{} {
	if a.sess == nil {
		return errorResult("not started")
	}
	if len(args) < 1 {
		return errorResult("requires 1 arg: term")
	}
	if err := a.sess.Search(args[0].String()); err != nil {
		return errorResult(err.Error())
	}
	return a.snapshotJSON()
}

func (a *app) clear(this js.Value, args []js.Value) interface{} {
	if a.sess == nil {
		return errorResult("not started")
	}
	if err := a.sess.Clear(); err != nil {
		return errorResult(err.Error())
	}
	return a.snapshotJSON()
}

// toggleColumn: [columnID string]
func (a *app) toggleColumn(this js.Value, args []js.Value) interface{} {
	if a.sess == nil {
		return errorResult("not started")
	}
	if len(args) < 1 {
		return errorResult("requires 1 arg: column id")
	}
	visible, err := a.sess.ToggleColumn(view.ColumnID(args[0].String()))
	if err != nil {
		return errorResult(err.Error())
	}
	return successResult(fmt.Sprintf("%s visible=%t", args[0].String(), visible))
}

func (a *app) snapshot(this js.Value, args []js.Value) interface{} {
	if a.sess == nil {
		return errorResult("not started")
	}
	return a.snapshotJSON()
}

// exportXLSX returns the filtered view as a base64 workbook.
func (a *app) exportXLSX(this js.Value, args []js.Value) interface{} {
	if a.sess == nil {
		return errorResult("not started")
	}
	data, err := a.sess.Export()
	if err != nil {
		return errorResult(err.Error())
	}
	return base64.StdEncoding.EncodeToString(data)
}

func (a *app) snapshotJSON() interface{} {
	bytes, err := json.Marshal(a.sess.Snapshot())
	if err != nil {
		return errorResult(err.Error())
	}
	return string(bytes)
}

// newPromise runs fn on a goroutine and resolves a JS Promise with its result.
func newPromise(fn func() interface{}) js.Value {
	var executor js.Func
	executor = js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		resolve := args[0]
		go func() {
			resolve.Invoke(fn())
		}()
		return nil
	})
	p := js.Global().Get("Promise").New(executor)
	executor.Release()
	return p
}

// Helper: Create error result
func errorResult(msg string) interface{} {
	result := map[string]interface{}{
		"error": msg,
	}
	jsonBytes, _ := json.Marshal(result)
	return string(jsonBytes)
}

// Helper: Create success result
func successResult(msg string) interface{} {
	result := map[string]interface{}{
		"success": msg,
	}
	jsonBytes, _ := json.Marshal(result)
	return string(jsonBytes)
}
