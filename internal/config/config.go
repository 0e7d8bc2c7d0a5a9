// Package config holds the browser's runtime configuration.
// The page passes it as a JSON object; YAML is accepted too since JSON is a subset.
package config

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/kittclouds/atmkit/pkg/dataset"
	"github.com/kittclouds/atmkit/pkg/view"
)

// Chart backends.
const (
	BackendAuto    = "auto"    // Chart.js when window.Chart exists, else SVG
	BackendChartJS = "chartjs" // Chart.js bar chart on a canvas
	BackendSVG     = "svg"     // go-chart SVG
)

// Config is the complete configuration.
type Config struct {
	DataURL  string      `yaml:"dataUrl" json:"dataUrl"`
	KeyRule  string      `yaml:"keyRule" json:"keyRule"`
	Columns  []string    `yaml:"columns" json:"columns"`
	Chart    ChartConfig `yaml:"chart" json:"chart"`
	DOM      DOMConfig   `yaml:"dom" json:"dom"`
	LogLevel string      `yaml:"logLevel" json:"logLevel"`
}

// ChartConfig controls the bar chart.
type ChartConfig struct {
	Backend string `yaml:"backend" json:"backend"`
	Label   string `yaml:"label" json:"label"`
	Width   int    `yaml:"width" json:"width"`
	Height  int    `yaml:"height" json:"height"`
}

// DOMConfig names the page elements the browser renders into.
type DOMConfig struct {
	PaperFilter     string `yaml:"paperFilter" json:"paperFilter"`
	ConditionFilter string `yaml:"conditionFilter" json:"conditionFilter"`
	FilterButton    string `yaml:"filterButton" json:"filterButton"`
	ClearButton     string `yaml:"clearButton" json:"clearButton"`
	SearchInput     string `yaml:"searchInput" json:"searchInput"`
	Table           string `yaml:"table" json:"table"`
	Chart           string `yaml:"chart" json:"chart"`
	ColumnToggles   string `yaml:"columnToggles" json:"columnToggles"`
	Summary         string `yaml:"summary" json:"summary"`
}

// Default returns the configuration used when the page passes nothing.
func Default() Config {
	return Config{
		DataURL: dataset.DefaultFile,
		KeyRule: dataset.KeyRuleCanonical.String(),
		Chart: ChartConfig{
			Backend: BackendAuto,
			Label:   "Risk Percentage",
		},
		DOM: DOMConfig{
			PaperFilter:     "paperFilter",
			ConditionFilter: "cancerFilter",
			FilterButton:    "filterBtn",
			ClearButton:     "clearBtn",
			SearchInput:     "searchInput",
			Table:           "riskTable",
			Chart:           "riskChart",
			ColumnToggles:   "input[type=checkbox][data-col]",
		},
		LogLevel: "info",
	}
}

// Parse decodes data over the defaults and validates the result. Empty data yields Default().
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("decode config: %w", err)
		}
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks every enumerated field.
func (c Config) Validate() error {
	if c.DataURL == "" {
		return fmt.Errorf("config: dataUrl is required")
	}
	if _, ok := dataset.ParseKeyRule(c.KeyRule); !ok {
		return fmt.Errorf("config: unknown keyRule %q", c.KeyRule)
	}
	if _, err := view.NewColumns(c.ColumnIDs()); err != nil {
		return fmt.Errorf("config: columns: %w", err)
	}
	switch c.Chart.Backend {
	case BackendAuto, BackendChartJS, BackendSVG:
	default:
		return fmt.Errorf("config: unknown chart backend %q", c.Chart.Backend)
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if c.DOM.Table == "" || c.DOM.Chart == "" {
		return fmt.Errorf("config: dom.table and dom.chart are required")
	}
	return nil
}

// Rule returns the parsed key rule.
func (c Config) Rule() dataset.KeyRule {
	rule, _ := dataset.ParseKeyRule(c.KeyRule)
	return rule
}

// ColumnIDs returns the configured columns; nil means all.
func (c Config) ColumnIDs() []view.ColumnID {
	if len(c.Columns) == 0 {
		return nil
	}
	ids := make([]view.ColumnID, len(c.Columns))
	for i, s := range c.Columns {
		ids[i] = view.ColumnID(s)
	}
	return ids
}
