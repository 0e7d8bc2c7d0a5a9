//go:build js && wasm

package main

import (
	"fmt"
	"syscall/js"

	"github.com/kittclouds/atmkit/pkg/view"
)

// chartJSFactory draws each chart instance on its own canvas so a new instance can be
// bound before the previous one is destroyed.
type chartJSFactory struct {
	doc   js.Value
	box   js.Value
	label string
}

type chartJS struct {
	id     string
	chart  js.Value
	canvas js.Value
}

func (c *chartJS) ID() string { return c.id }

func (c *chartJS) Release() (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("destroy chart: %v", r)
		}
	}()
	c.chart.Call("destroy")
	c.canvas.Call("remove")
	return nil
}

func (f *chartJSFactory) Create(id string, s view.Series) (_ view.Chart, err error) {
	canvas := f.doc.Call("createElement", "canvas")
	canvas.Set("id", id)
	f.box.Call("appendChild", canvas)

	// The Chart constructor throws into Go as a panic.
	defer func() {
		if r := recover(); r != nil {
			canvas.Call("remove")
			err = fmt.Errorf("new Chart: %v", r)
		}
	}()

	labels := make([]interface{}, len(s.Labels))
	for i, l := range s.Labels {
		labels[i] = l
	}
	values := make([]interface{}, len(s.Values))
	for i, v := range s.Values {
		values[i] = v
	}

	cfg := map[string]interface{}{
		"type": "bar",
		"data": map[string]interface{}{
			"labels": labels,
			"datasets": []interface{}{
				map[string]interface{}{
					"label":           f.label,
					"data":            values,
					"backgroundColor": "rgba(75, 192, 192, 0.2)",
					"borderColor":     "rgba(75, 192, 192, 1)",
					"borderWidth":     1,
				},
			},
		},
		"options": map[string]interface{}{
			"scales": map[string]interface{}{
				"y": map[string]interface{}{"beginAtZero": true},
			},
		},
	}

	ctx := canvas.Call("getContext", "2d")
	chart := js.Global().Get("Chart").New(ctx, js.ValueOf(cfg))
	return &chartJS{id: id, chart: chart, canvas: canvas}, nil
}
