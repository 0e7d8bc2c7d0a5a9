package view

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/kittclouds/atmkit/pkg/dataset"
)

// Series is the bar chart input: one bar per row, duplicates kept.
type Series struct {
	Labels []string  `json:"labels"`
	Values []float64 `json:"values"`
}

// BuildSeries maps each row to its condition label and risk value (0 for unparsed risks).
func BuildSeries(rows []*dataset.Row) Series {
	s := Series{
		Labels: make([]string, len(rows)),
		Values: make([]float64, len(rows)),
	}
	for i, r := range rows {
		s.Labels[i] = r.Condition
		s.Values[i] = r.Risk()
	}
	return s
}

// Chart is a live chart instance owned by a ChartView.
type Chart interface {
	ID() string
	Release() error
}

// ChartFactory draws a series into a new chart instance.
type ChartFactory interface {
	Create(id string, s Series) (Chart, error)
}

// ChartView holds at most one live chart instance.
type ChartView struct {
	prefix  string
	factory ChartFactory
	current Chart
}

// NewChartView returns an empty view. Instance ids are prefix + "-" + a random UUID.
func NewChartView(prefix string, f ChartFactory) *ChartView {
	return &ChartView{prefix: prefix, factory: f}
}

// Current returns the live instance, or nil.
func (v *ChartView) Current() Chart {
	return v.current
}

// Replace draws s into a new instance and then releases the previous one.
// The previous instance is released even when creation fails or panics; in that case
// the view is left empty.
func (v *ChartView) Replace(s Series) (err error) {
	prev := v.current
	v.current = nil
	defer func() {
		if prev == nil {
			return
		}
		if rerr := prev.Release(); rerr != nil && err == nil {
			err = fmt.Errorf("release chart %s: %w", prev.ID(), rerr)
		}
	}()

	next, err := v.factory.Create(v.newID(), s)
	if err != nil {
		return fmt.Errorf("create chart: %w", err)
	}
	v.current = next
	return nil
}

// Close releases the live instance, if any.
func (v *ChartView) Close() error {
	if v.current == nil {
		return nil
	}
	c := v.current
	v.current = nil
	return c.Release()
}

func (v *ChartView) newID() string {
	if v.prefix == "" {
		return uuid.NewString()
	}
	return v.prefix + "-" + uuid.NewString()
}
