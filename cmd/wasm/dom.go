//go:build js && wasm

package main

import (
	"fmt"
	"syscall/js"

	"github.com/kittclouds/atmkit/internal/config"
	"github.com/kittclouds/atmkit/pkg/filter"
	"github.com/kittclouds/atmkit/pkg/session"
	"github.com/kittclouds/atmkit/pkg/view"
)

// page adapts the document to the session's render targets.
type page struct {
	doc         js.Value
	cfg         config.Config
	table       js.Value
	thead       js.Value
	tbody       js.Value
	chartBox    js.Value
	paperSel    js.Value
	condSel     js.Value
	filterBtn   js.Value
	clearBtn    js.Value
	searchInput js.Value
	summary     js.Value
}

func bindPage(doc js.Value, cfg config.Config) (*page, error) {
	byID := func(id string) js.Value {
		if id == "" {
			return js.Null()
		}
		return doc.Call("getElementById", id)
	}

	p := &page{
		doc:         doc,
		cfg:         cfg,
		table:       byID(cfg.DOM.Table),
		paperSel:    byID(cfg.DOM.PaperFilter),
		condSel:     byID(cfg.DOM.ConditionFilter),
		filterBtn:   byID(cfg.DOM.FilterButton),
		clearBtn:    byID(cfg.DOM.ClearButton),
		searchInput: byID(cfg.DOM.SearchInput),
		summary:     byID(cfg.DOM.Summary),
	}
	if !p.table.Truthy() {
		return nil, fmt.Errorf("table element #%s not found", cfg.DOM.Table)
	}
	p.thead = p.section("thead")
	p.tbody = p.section("tbody")

	chart := byID(cfg.DOM.Chart)
	if !chart.Truthy() {
		return nil, fmt.Errorf("chart element #%s not found", cfg.DOM.Chart)
	}
	// A static <canvas> is replaced by per-instance canvases inside its parent.
	if chart.Get("tagName").String() == "CANVAS" {
		p.chartBox = chart.Get("parentElement")
		chart.Call("remove")
	} else {
		p.chartBox = chart
	}
	return p, nil
}

func (p *page) section(tag string) js.Value {
	el := p.table.Call("querySelector", tag)
	if el.Truthy() {
		return el
	}
	el = p.doc.Call("createElement", tag)
	p.table.Call("appendChild", el)
	return el
}

func (p *page) SetHead(html string) error {
	p.thead.Set("innerHTML", html)
	return nil
}

func (p *page) SetBody(html string) error {
	p.tbody.Set("innerHTML", html)
	return nil
}

func (p *page) SetOptions(papers, conditions []string) error {
	p.fillSelect(p.paperSel, papers)
	p.fillSelect(p.condSel, conditions)
	return nil
}

func (p *page) fillSelect(sel js.Value, values []string) {
	if !sel.Truthy() {
		return
	}
	sel.Set("innerHTML", "")
	for _, v := range append([]string{filter.All}, values...) {
		opt := p.doc.Call("createElement", "option")
		opt.Set("value", v)
		opt.Set("textContent", v)
		sel.Call("appendChild", opt)
	}
}

func (p *page) SetState(s filter.State) error {
	if p.paperSel.Truthy() {
		p.paperSel.Set("value", s.Paper)
	}
	if p.condSel.Truthy() {
		p.condSel.Set("value", s.Condition)
	}
	if p.searchInput.Truthy() {
		p.searchInput.Set("value", s.Search)
	}
	return nil
}

func (p *page) SetColumnDisplay(id view.ColumnID, visible bool) error {
	display := "none"
	if visible {
		display = ""
	}
	cells := p.table.Call("querySelectorAll", fmt.Sprintf(`[data-col="%s"]`, id))
	for i := 0; i < cells.Length(); i++ {
		cells.Index(i).Get("style").Set("display", display)
	}
	for _, box := range p.toggles() {
		if box.Get("dataset").Get("col").String() == string(id) {
			box.Set("checked", visible)
		}
	}
	return nil
}

func (p *page) toggles() []js.Value {
	if p.cfg.DOM.ColumnToggles == "" {
		return nil
	}
	nodes := p.doc.Call("querySelectorAll", p.cfg.DOM.ColumnToggles)
	out := make([]js.Value, nodes.Length())
	for i := range out {
		out[i] = nodes.Index(i)
	}
	return out
}

type summaryBox struct {
	el js.Value
}

func (s summaryBox) SetSummary(sum view.Summary) error {
	text := fmt.Sprintf("%d rows from %d papers", sum.Rows, sum.Papers)
	if sum.Quantified > 0 {
		text += fmt.Sprintf(" · mean risk %.1f%% (median %.1f%%, max %.1f%%)", sum.MeanRisk, sum.MedianRisk, sum.MaxRisk)
	}
	s.el.Set("textContent", text)
	return nil
}

func (p *page) summaryTarget() session.SummaryTarget {
	if !p.summary.Truthy() {
		return nil
	}
	return summaryBox{el: p.summary}
}

// chartFactory picks Chart.js when the page loaded it, go-chart SVG otherwise.
func (p *page) chartFactory(cfg config.ChartConfig) view.ChartFactory {
	chartJS := js.Global().Get("Chart")
	useJS := cfg.Backend == config.BackendChartJS ||
		(cfg.Backend == config.BackendAuto && chartJS.Truthy())
	if useJS {
		return &chartJSFactory{doc: p.doc, box: p.chartBox, label: cfg.Label}
	}
	return &view.SVGFactory{
		Sink:   &domSink{doc: p.doc, box: p.chartBox},
		Title:  cfg.Label,
		Width:  cfg.Width,
		Height: cfg.Height,
	}
}

// domSink mounts SVG charts as <div> children of the chart container.
type domSink struct {
	doc js.Value
	box js.Value
}

func (s *domSink) Mount(id string, svg []byte) error {
	div := s.doc.Call("createElement", "div")
	div.Set("id", id)
	div.Set("innerHTML", string(svg))
	s.box.Call("appendChild", div)
	return nil
}

func (s *domSink) Unmount(id string) error {
	el := s.doc.Call("getElementById", id)
	if !el.Truthy() {
		return fmt.Errorf("chart %s not mounted", id)
	}
	el.Call("remove")
	return nil
}
