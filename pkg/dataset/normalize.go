package dataset

import (
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/kittclouds/atmkit/pkg/annotations"
)

// KeyRule decides how a condition category finds its Risk and Management entries.
type KeyRule int

const (
	// KeyRuleCanonical compares canonical forms (see CanonicalKey) when no exact key exists.
	KeyRuleCanonical KeyRule = iota
	// KeyRuleExact only accepts byte-identical keys.
	KeyRuleExact
)

func (k KeyRule) String() string {
	switch k {
	case KeyRuleExact:
		return "exact"
	default:
		return "canonical"
	}
}

// ParseKeyRule parses "canonical" or "exact".
func ParseKeyRule(s string) (KeyRule, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "canonical":
		return KeyRuleCanonical, true
	case "exact":
		return KeyRuleExact, true
	}
	return KeyRuleCanonical, false
}

// Options controls normalization.
type Options struct {
	KeyRule KeyRule
}

// CanonicalKey is the category key form shared by Cancer.Types, Risk.Percentages and
// Medical_Actions_Management: NFKC, trimmed, whitespace runs collapsed to one underscore.
func CanonicalKey(s string) string {
	return strings.Join(strings.Fields(norm.NFKC.String(s)), "_")
}

var riskNumber = regexp.MustCompile(`\d+(?:\.\d+)?`)

// ParseRisk extracts the first decimal number in text, or nil when there is none.
func ParseRisk(text string) *float64 {
	m := riskNumber.FindString(text)
	if m == "" {
		return nil
	}
	v, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return nil
	}
	return &v
}

// Normalize flattens doc into rows: papers in document order, then Cancer.Types order.
// It never fails; absent fields become the placeholder texts.
func Normalize(doc *annotations.Document, opts Options) []*Row {
	if doc == nil {
		return nil
	}

	var rows []*Row
	for i := range doc.Papers {
		p := &doc.Papers[i]
		if len(p.Cancer.Types) == 0 {
			continue
		}

		authors := joinOr(p.Authors, ", ", NoAuthors)
		conditionEvidence := joinOr(p.Cancer.Evidence, "; ", NoEvidence)

		for _, typ := range p.Cancer.Types {
			riskText := UnknownRisk
			if pct, ok := lookupRisk(p.Risk, typ, opts.KeyRule); ok {
				riskText = pct.Text
			}

			management := NoRecommendations
			managementEvidence := conditionEvidence
			if m, ok := lookupManagement(p.Management, typ, opts.KeyRule); ok {
				management = joinOr(m.Recommendations, "; ", NoRecommendations)
				managementEvidence = joinOr(m.Evidence, "; ", conditionEvidence)
			}

			rows = append(rows, &Row{
				PaperID:                p.ID,
				Title:                  p.Title,
				Authors:                authors,
				Condition:              typ,
				RiskText:               riskText,
				RiskValue:              ParseRisk(riskText),
				ManagementText:         management,
				EvidenceConditionText:  conditionEvidence,
				EvidenceManagementText: managementEvidence,
			})
		}
	}
	return rows
}

func joinOr(parts []string, sep, fallback string) string {
	s := strings.Join(parts, sep)
	if s == "" {
		return fallback
	}
	return s
}

// An exact key always wins; canonical matches resolve to the first entry in document order.
func lookupRisk(entries []annotations.Percentage, category string, rule KeyRule) (annotations.Percentage, bool) {
	idx := lookup(len(entries), func(i int) string { return entries[i].Category }, category, rule)
	if idx < 0 {
		return annotations.Percentage{}, false
	}
	return entries[idx], true
}

func lookupManagement(entries []annotations.Management, category string, rule KeyRule) (annotations.Management, bool) {
	idx := lookup(len(entries), func(i int) string { return entries[i].Category }, category, rule)
	if idx < 0 {
		return annotations.Management{}, false
	}
	return entries[idx], true
}

func lookup(n int, key func(int) string, category string, rule KeyRule) int {
	for i := 0; i < n; i++ {
		if key(i) == category {
			return i
		}
	}
	if rule == KeyRuleExact {
		return -1
	}
	want := CanonicalKey(category)
	for i := 0; i < n; i++ {
		if CanonicalKey(key(i)) == want {
			return i
		}
	}
	return -1
}

// Facets returns the distinct titles and conditions of rows in first-appearance order.
func Facets(rows []*Row) (papers, conditions []string) {
	seenPaper := make(map[string]bool)
	seenCondition := make(map[string]bool)
	for _, r := range rows {
		if !seenPaper[r.Title] {
			seenPaper[r.Title] = true
			papers = append(papers, r.Title)
		}
		if !seenCondition[r.Condition] {
			seenCondition[r.Condition] = true
			conditions = append(conditions, r.Condition)
		}
	}
	return papers, conditions
}
