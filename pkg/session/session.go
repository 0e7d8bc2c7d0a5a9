// Package session owns the browser's state: the full dataset, the filter state, the
// filtered view and the chart instance. Every user event is one method call that runs to
// completion and re-renders table and chart together.
package session

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/kittclouds/atmkit/internal/config"
	"github.com/kittclouds/atmkit/internal/logging"
	"github.com/kittclouds/atmkit/pkg/dataset"
	"github.com/kittclouds/atmkit/pkg/export"
	"github.com/kittclouds/atmkit/pkg/filter"
	"github.com/kittclouds/atmkit/pkg/view"
)

// ErrAlreadyLoaded is returned by every Load after the first; a failed load is terminal.
var ErrAlreadyLoaded = errors.New("session: dataset already loaded")

// TableTarget receives rendered table markup.
type TableTarget interface {
	SetHead(html string) error
	SetBody(html string) error
}

// FilterTarget is the pair of selector elements plus the search box.
type FilterTarget interface {
	SetOptions(papers, conditions []string) error
	SetState(s filter.State) error
}

// CellStyler shows or hides the already rendered cells of one column.
type CellStyler interface {
	SetColumnDisplay(id view.ColumnID, visible bool) error
}

// SummaryTarget optionally displays the summary of the filtered view.
type SummaryTarget interface {
	SetSummary(s view.Summary) error
}

// Deps are the session's collaborators. Filters, Cells, Summary and Logger may be nil.
type Deps struct {
	Table   TableTarget
	Filters FilterTarget
	Cells   CellStyler
	Summary SummaryTarget
	Charts  view.ChartFactory
	Logger  *logrus.Logger
}

// Status is the load lifecycle.
type Status int

const (
	StatusPending Status = iota
	StatusLoading
	StatusReady
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusReady:
		return "ready"
	case StatusFailed:
		return "failed"
	default:
		return "pending"
	}
}

func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Session is the explicit replacement for page-global state.
type Session struct {
	mu       sync.Mutex
	cfg      config.Config
	deps     Deps
	log      *logrus.Entry
	status   Status
	engine   *filter.Engine
	state    filter.State
	filtered []*dataset.Row
	columns  *view.Columns
	chart    *view.ChartView
}

// New builds an empty session. Nothing is rendered until Load.
func New(cfg config.Config, deps Deps) (*Session, error) {
	if deps.Table == nil || deps.Charts == nil {
		return nil, fmt.Errorf("session: table target and chart factory are required")
	}
	cols, err := view.NewColumns(cfg.ColumnIDs())
	if err != nil {
		return nil, err
	}
	logger := deps.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	return &Session{
		cfg:     cfg,
		deps:    deps,
		log:     logging.Component(logger, "session"),
		engine:  filter.NewEngine(nil),
		state:   filter.Cleared(),
		columns: cols,
		chart:   view.NewChartView(cfg.DOM.Chart, deps.Charts),
	}, nil
}

// Load fetches and normalizes the dataset, then renders the first view.
// It may run once. On failure the session renders the empty view, stays Failed and
// returns the *dataset.LoadError.
func (s *Session) Load(ctx context.Context, src dataset.Source) error {
	s.mu.Lock()
	if s.status != StatusPending {
		s.mu.Unlock()
		return ErrAlreadyLoaded
	}
	s.status = StatusLoading
	s.mu.Unlock()

	rows, loadErr := dataset.Load(ctx, src, dataset.Options{KeyRule: s.cfg.Rule()})

	s.mu.Lock()
	defer s.mu.Unlock()

	if loadErr != nil {
		fields := logrus.Fields{"source": src.Name()}
		var le *dataset.LoadError
		if errors.As(loadErr, &le) {
			fields["op"] = le.Op
		}
		s.log.WithFields(fields).WithError(loadErr).Error("dataset load failed")
		s.status = StatusFailed
		s.engine = filter.NewEngine(nil)
	} else {
		s.status = StatusReady
		s.engine = filter.NewEngine(rows)
		s.log.WithFields(logrus.Fields{"source": src.Name(), "rows": len(rows)}).Info("dataset loaded")
	}

	papers, conditions := dataset.Facets(s.engine.Rows())
	var errs []error
	if s.deps.Filters != nil {
		if err := s.deps.Filters.SetOptions(papers, conditions); err != nil {
			errs = append(errs, fmt.Errorf("populate filters: %w", err))
		}
	}
	if err := s.renderHead(); err != nil {
		errs = append(errs, err)
	}
	if err := s.render(); err != nil {
		errs = append(errs, err)
	}
	if loadErr != nil {
		return errors.Join(append([]error{loadErr}, errs...)...)
	}
	return errors.Join(errs...)
}

// Filter sets the paper and condition predicates. The search term is kept.
func (s *Session) Filter(paper, condition string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.Paper = paper
	s.state.Condition = condition
	return s.render()
}

// Search sets the free-text predicate.
func (s *Session) Search(term string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.Search = term
	return s.render()
}

// Clear resets every predicate, resets the filter controls and restores the full dataset.
func (s *Session) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = filter.Cleared()
	if s.deps.Filters != nil {
		if err := s.deps.Filters.SetState(s.state); err != nil {
			return fmt.Errorf("reset filters: %w", err)
		}
	}
	return s.render()
}

// ToggleColumn flips one column's visibility on the rendered cells. Data and filter
// state are untouched and nothing is re-rendered; the flag applies to later renders.
func (s *Session) ToggleColumn(id view.ColumnID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	visible, err := s.columns.Toggle(id)
	if err != nil {
		return false, err
	}
	return visible, s.applyColumn(id, visible)
}

// SetColumnVisible sets one column's visibility, e.g. from a checkbox state.
func (s *Session) SetColumnVisible(id view.ColumnID, visible bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.columns.SetVisible(id, visible); err != nil {
		return err
	}
	return s.applyColumn(id, visible)
}

func (s *Session) applyColumn(id view.ColumnID, visible bool) error {
	s.log.WithFields(logrus.Fields{"column": id, "visible": visible}).Debug("column toggled")
	if s.deps.Cells == nil {
		return nil
	}
	return s.deps.Cells.SetColumnDisplay(id, visible)
}

// Export writes the filtered view's visible columns as XLSX.
func (s *Session) Export() ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return export.XLSX(s.filtered, s.columns)
}

// Filtered returns the current filtered rows.
func (s *Session) Filtered() []*dataset.Row {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*dataset.Row, len(s.filtered))
	copy(out, s.filtered)
	return out
}

// Snapshot describes the session for the page.
type Snapshot struct {
	Status  Status          `json:"status"`
	State   filter.State    `json:"state"`
	Total   int             `json:"total"`
	Shown   int             `json:"shown"`
	Hidden  []view.ColumnID `json:"hidden"`
	Summary view.Summary    `json:"summary"`
	ChartID string          `json:"chartId,omitempty"`
}

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		Status:  s.status,
		State:   s.state,
		Total:   s.engine.Len(),
		Shown:   len(s.filtered),
		Hidden:  s.columns.Hidden(),
		Summary: view.Summarize(s.filtered),
	}
	if c := s.chart.Current(); c != nil {
		snap.ChartID = c.ID()
	}
	return snap
}

// Close releases the chart instance.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.chart.Close()
}

func (s *Session) renderHead() error {
	var buf bytes.Buffer
	if err := view.RenderHead(&buf, s.columns); err != nil {
		return fmt.Errorf("render head: %w", err)
	}
	return s.deps.Table.SetHead(buf.String())
}

// render recomputes the filtered view from the full dataset and redraws table and chart.
func (s *Session) render() error {
	s.filtered = s.engine.Apply(s.state)
	s.log.WithFields(logrus.Fields{
		"paper":     s.state.Paper,
		"condition": s.state.Condition,
		"search":    s.state.Search,
		"shown":     len(s.filtered),
	}).Debug("render")

	var errs []error

	var buf bytes.Buffer
	table := view.BuildTable(s.filtered, s.columns)
	if err := view.RenderBody(&buf, table, view.NewHighlighter(s.state.Search)); err != nil {
		errs = append(errs, fmt.Errorf("render table: %w", err))
	} else if err := s.deps.Table.SetBody(buf.String()); err != nil {
		errs = append(errs, fmt.Errorf("set table: %w", err))
	}

	if err := s.chart.Replace(view.BuildSeries(s.filtered)); err != nil {
		errs = append(errs, err)
	}

	if s.deps.Summary != nil {
		if err := s.deps.Summary.SetSummary(view.Summarize(s.filtered)); err != nil {
			errs = append(errs, fmt.Errorf("set summary: %w", err))
		}
	}

	if len(errs) > 0 {
		err := errors.Join(errs...)
		s.log.WithError(err).Error("render failed")
		return err
	}
	return nil
}
