package view

import (
	"github.com/montanaflynn/stats"

	"github.com/kittclouds/atmkit/pkg/dataset"
)

// Summary describes a row sequence. Risk statistics cover only rows with a numeric risk.
type Summary struct {
	Rows       int     `json:"rows"`
	Papers     int     `json:"papers"`
	Conditions int     `json:"conditions"`
	Quantified int     `json:"quantified"`
	MeanRisk   float64 `json:"meanRisk"`
	MedianRisk float64 `json:"medianRisk"`
	MaxRisk    float64 `json:"maxRisk"`
}

func Summarize(rows []*dataset.Row) Summary {
	papers := make(map[string]struct{})
	conditions := make(map[string]struct{})
	var risks stats.Float64Data
	for _, r := range rows {
		papers[r.PaperID] = struct{}{}
		conditions[r.Condition] = struct{}{}
		if r.RiskValue != nil {
			risks = append(risks, *r.RiskValue)
		}
	}

	s := Summary{
		Rows:       len(rows),
		Papers:     len(papers),
		Conditions: len(conditions),
		Quantified: len(risks),
	}
	if len(risks) == 0 {
		return s
	}
	// stats only errors on empty input
	s.MeanRisk, _ = stats.Mean(risks)
	s.MedianRisk, _ = stats.Median(risks)
	s.MaxRisk, _ = stats.Max(risks)
	return s
}
