// Package dataset flattens annotation documents into rows and loads them from a source.
package dataset

// Placeholder texts for absent optional fields.
const (
	UnknownRisk       = "Unknown"
	NoRecommendations = "No recommendations"
	NoEvidence        = "No evidence provided"
	NoAuthors         = "No authors listed"
)

// Row is one (paper, condition) observation.
// Rows are built once by Normalize and shared by pointer afterwards; nothing mutates them.
type Row struct {
	PaperID                string   `json:"paperId"`
	Title                  string   `json:"title"`
	Authors                string   `json:"authors"`
	Condition              string   `json:"condition"`
	RiskText               string   `json:"riskText"`
	RiskValue              *float64 `json:"riskValue"`
	ManagementText         string   `json:"managementText"`
	EvidenceConditionText  string   `json:"evidenceConditionText"`
	EvidenceManagementText string   `json:"evidenceManagementText"`
}

// Risk returns the numeric risk, or 0 when the risk text had no number.
func (r *Row) Risk() float64 {
	if r.RiskValue == nil {
		return 0
	}
	return *r.RiskValue
}

// Fields returns the textual fields in display order.
func (r *Row) Fields() []string {
	return []string{
		r.Title,
		r.Authors,
		r.Condition,
		r.RiskText,
		r.ManagementText,
		r.EvidenceConditionText,
		r.EvidenceManagementText,
	}
}
