package filter

import (
	"strings"

	"github.com/RoaringBitmap/roaring/v2"
	"golang.org/x/text/cases"

	"github.com/kittclouds/atmkit/pkg/dataset"
)

// Engine answers filter queries over one full dataset.
// Rows are addressed by their index in the dataset; postings are roaring bitmaps of indices.
type Engine struct {
	rows        []*dataset.Row
	all         *roaring.Bitmap
	byPaper     map[string]*roaring.Bitmap
	byCondition map[string]*roaring.Bitmap
	folded      [][]string // case-folded Row.Fields per row
}

// NewEngine indexes rows. The slice is retained, not copied; callers must not modify it.
func NewEngine(rows []*dataset.Row) *Engine {
	e := &Engine{
		rows:        rows,
		all:         roaring.New(),
		byPaper:     make(map[string]*roaring.Bitmap),
		byCondition: make(map[string]*roaring.Bitmap),
		folded:      make([][]string, len(rows)),
	}

	fold := cases.Fold()
	for i, r := range rows {
		id := uint32(i)
		e.all.Add(id)
		postings(e.byPaper, r.Title).Add(id)
		postings(e.byCondition, r.Condition).Add(id)

		fields := r.Fields()
		for j, f := range fields {
			fields[j] = fold.String(f)
		}
		e.folded[i] = fields
	}
	return e
}

func postings(m map[string]*roaring.Bitmap, key string) *roaring.Bitmap {
	bm, ok := m[key]
	if !ok {
		bm = roaring.New()
		m[key] = bm
	}
	return bm
}

// Rows returns the full dataset.
func (e *Engine) Rows() []*dataset.Row {
	return e.rows
}

// Len is the size of the full dataset.
func (e *Engine) Len() int {
	return len(e.rows)
}

// Apply returns the rows matching every active predicate, in dataset order.
// The result shares row pointers with the dataset and is never the dataset slice itself.
func (e *Engine) Apply(s State) []*dataset.Row {
	candidates := e.all
	if !selectsAll(s.Paper) {
		candidates = roaring.And(candidates, e.lookup(e.byPaper, s.Paper))
	}
	if !selectsAll(s.Condition) {
		candidates = roaring.And(candidates, e.lookup(e.byCondition, s.Condition))
	}

	term := s.term()
	if term != "" {
		term = cases.Fold().String(term)
	}

	out := make([]*dataset.Row, 0, candidates.GetCardinality())
	it := candidates.Iterator()
	for it.HasNext() {
		i := it.Next()
		if term != "" && !e.matches(i, term) {
			continue
		}
		out = append(out, e.rows[i])
	}
	return out
}

// Clear returns the cleared state and the full dataset it selects.
func (e *Engine) Clear() (State, []*dataset.Row) {
	return Cleared(), e.Apply(Cleared())
}

func (e *Engine) lookup(m map[string]*roaring.Bitmap, key string) *roaring.Bitmap {
	if bm, ok := m[key]; ok {
		return bm
	}
	return roaring.New()
}

func (e *Engine) matches(i uint32, term string) bool {
	for _, f := range e.folded[i] {
		if strings.Contains(f, term) {
			return true
		}
	}
	return false
}

// Matches reports whether a single row satisfies s, without an index.
func Matches(r *dataset.Row, s State) bool {
	if !selectsAll(s.Paper) && r.Title != s.Paper {
		return false
	}
	if !selectsAll(s.Condition) && r.Condition != s.Condition {
		return false
	}
	term := s.term()
	if term == "" {
		return true
	}
	fold := cases.Fold()
	term = fold.String(term)
	for _, f := range r.Fields() {
		if strings.Contains(fold.String(f), term) {
			return true
		}
	}
	return false
}
