// Package annotations models the raw paper annotation document and decodes it.
//
// The document is a JSON object keyed by paper id. Key order carries meaning (it is
// the row order of the whole browser), so decoding walks the source text with gjson
// instead of unmarshalling into a Go map.
package annotations

import (
	"errors"

	"github.com/tidwall/gjson"
)

var (
	ErrInvalidJSON = errors.New("annotations: invalid JSON")
	ErrNotObject   = errors.New("annotations: top-level value is not an object")
)

// Document is the decoded annotation file, papers in source order.
type Document struct {
	Papers []Paper
}

// Paper is one annotated publication.
// Absent or mistyped fields decode as zero values.
type Paper struct {
	ID         string
	Title      string
	Authors    []string
	Cancer     Cancer
	Risk       []Percentage
	Management []Management
}

// Cancer lists the condition categories a paper reports on.
type Cancer struct {
	Types    []string
	Evidence []string
}

// Percentage is one entry of Risk.Percentages.
type Percentage struct {
	Category string
	Text     string
}

// Management is one entry of Medical_Actions_Management.
type Management struct {
	Category        string
	Recommendations []string
	Evidence        []string
}

// Decode parses an annotation document.
// Only a syntactically broken document or a non-object top level is an error;
// anything malformed inside a paper degrades to absent fields.
func Decode(data []byte) (*Document, error) {
	if !gjson.ValidBytes(data) {
		return nil, ErrInvalidJSON
	}
	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return nil, ErrNotObject
	}

	doc := &Document{}
	root.ForEach(func(key, value gjson.Result) bool {
		doc.Papers = append(doc.Papers, decodePaper(key.String(), value))
		return true
	})
	return doc, nil
}

func decodePaper(id string, v gjson.Result) Paper {
	p := Paper{ID: id}
	if !v.IsObject() {
		return p
	}

	p.Title = text(v.Get("Title"))
	p.Authors = stringList(v.Get("Authors"))

	cancer := v.Get("Cancer")
	if cancer.IsObject() {
		p.Cancer.Types = stringList(cancer.Get("Types"))
		p.Cancer.Evidence = stringList(cancer.Get("Evidence"))
	}

	percentages := v.Get("Risk.Percentages")
	if percentages.IsObject() {
		percentages.ForEach(func(k, r gjson.Result) bool {
			if r.Type == gjson.String || r.Type == gjson.Number {
				p.Risk = append(p.Risk, Percentage{Category: k.String(), Text: text(r)})
			}
			return true
		})
	}

	mgmt := v.Get("Medical_Actions_Management")
	if mgmt.IsObject() {
		mgmt.ForEach(func(k, m gjson.Result) bool {
			entry := Management{Category: k.String()}
			if m.IsObject() {
				entry.Recommendations = stringList(m.Get("Recommendations"))
				entry.Evidence = stringList(m.Get("Evidence"))
			}
			p.Management = append(p.Management, entry)
			return true
		})
	}

	return p
}

// text returns string values verbatim and numbers in their source spelling.
func text(r gjson.Result) string {
	switch r.Type {
	case gjson.String:
		return r.Str
	case gjson.Number:
		return r.Raw
	}
	return ""
}

// stringList collects the string elements of an array, skipping everything else.
func stringList(r gjson.Result) []string {
	if !r.IsArray() {
		return nil
	}
	var out []string
	r.ForEach(func(_, e gjson.Result) bool {
		if e.Type == gjson.String {
			out = append(out, e.Str)
		}
		return true
	})
	return out
}
