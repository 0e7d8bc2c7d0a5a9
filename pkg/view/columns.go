package view

import (
	"errors"
	"fmt"

	"github.com/kittclouds/atmkit/pkg/dataset"
)

// ColumnID names a table column. It is also the data-col attribute of rendered cells.
type ColumnID string

const (
	ColTitle              ColumnID = "title"
	ColCondition          ColumnID = "condition"
	ColRisk               ColumnID = "risk"
	ColManagement         ColumnID = "management"
	ColEvidenceCondition  ColumnID = "evidence_condition"
	ColEvidenceManagement ColumnID = "evidence_management"
	ColAuthors            ColumnID = "authors"
)

// Column is a table column definition.
type Column struct {
	ID    ColumnID `json:"id"`
	Label string   `json:"label"`
}

// AllColumns is the full column set in default order.
var AllColumns = []Column{
	{ColTitle, "Title"},
	{ColCondition, "Cancer Type"},
	{ColRisk, "Risk"},
	{ColManagement, "Management"},
	{ColEvidenceCondition, "Evidence (Cancer)"},
	{ColEvidenceManagement, "Evidence (Management)"},
	{ColAuthors, "Authors"},
}

var ErrUnknownColumn = errors.New("unknown column")

// LookupColumn finds a column definition by id.
func LookupColumn(id ColumnID) (Column, bool) {
	for _, c := range AllColumns {
		if c.ID == id {
			return c, true
		}
	}
	return Column{}, false
}

// Value extracts the cell text of col from r.
func (c Column) Value(r *dataset.Row) string {
	switch c.ID {
	case ColTitle:
		return r.Title
	case ColCondition:
		return r.Condition
	case ColRisk:
		return r.RiskText
	case ColManagement:
		return r.ManagementText
	case ColEvidenceCondition:
		return r.EvidenceConditionText
	case ColEvidenceManagement:
		return r.EvidenceManagementText
	case ColAuthors:
		return r.Authors
	}
	return ""
}

// Columns is the column visibility controller.
// It holds only display flags; rows and filter state are never touched.
type Columns struct {
	order  []Column
	hidden map[ColumnID]bool
}

// NewColumns builds a controller over ids in the given order. No ids means AllColumns.
// Every column starts visible.
func NewColumns(ids []ColumnID) (*Columns, error) {
	c := &Columns{hidden: make(map[ColumnID]bool)}
	if len(ids) == 0 {
		c.order = append(c.order, AllColumns...)
		return c, nil
	}
	seen := make(map[ColumnID]bool, len(ids))
	for _, id := range ids {
		col, ok := LookupColumn(id)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownColumn, id)
		}
		if seen[id] {
			return nil, fmt.Errorf("duplicate column %q", id)
		}
		seen[id] = true
		c.order = append(c.order, col)
	}
	return c, nil
}

// List returns the configured columns in display order.
func (c *Columns) List() []Column {
	out := make([]Column, len(c.order))
	copy(out, c.order)
	return out
}

func (c *Columns) Len() int {
	return len(c.order)
}

func (c *Columns) has(id ColumnID) bool {
	for _, col := range c.order {
		if col.ID == id {
			return true
		}
	}
	return false
}

// Visible reports the flag for id. Unknown columns are never visible.
func (c *Columns) Visible(id ColumnID) bool {
	return c.has(id) && !c.hidden[id]
}

// SetVisible sets the flag for id.
func (c *Columns) SetVisible(id ColumnID, visible bool) error {
	if !c.has(id) {
		return fmt.Errorf("%w: %q", ErrUnknownColumn, id)
	}
	if visible {
		delete(c.hidden, id)
	} else {
		c.hidden[id] = true
	}
	return nil
}

// Toggle flips the flag for id and returns the new visibility.
func (c *Columns) Toggle(id ColumnID) (bool, error) {
	visible := !c.Visible(id)
	if err := c.SetVisible(id, visible); err != nil {
		return false, err
	}
	return visible, nil
}

// Hidden lists hidden columns in display order.
func (c *Columns) Hidden() []ColumnID {
	var out []ColumnID
	for _, col := range c.order {
		if c.hidden[col.ID] {
			out = append(out, col.ID)
		}
	}
	return out
}

// VisibleColumns lists visible columns in display order.
func (c *Columns) VisibleColumns() []Column {
	var out []Column
	for _, col := range c.order {
		if !c.hidden[col.ID] {
			out = append(out, col)
		}
	}
	return out
}
