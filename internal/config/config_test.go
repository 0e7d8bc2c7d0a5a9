package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kittclouds/atmkit/pkg/dataset"
	"github.com/kittclouds/atmkit/pkg/view"
)

func TestParse_Empty(t *testing.T) {
	cfg, err := Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, "ATM_annotations.json", cfg.DataURL)
	assert.Equal(t, dataset.KeyRuleCanonical, cfg.Rule())
	assert.Nil(t, cfg.ColumnIDs())
}

func TestParse_JSONOverridesDefaults(t *testing.T) {
	cfg, err := Parse([]byte(`{"dataUrl": "data/atm.json", "keyRule": "exact", "columns": ["title", "risk"], "chart": {"backend": "svg"}, "dom": {"searchInput": "q"}}`))
	require.NoError(t, err)

	assert.Equal(t, "data/atm.json", cfg.DataURL)
	assert.Equal(t, dataset.KeyRuleExact, cfg.Rule())
	assert.Equal(t, []view.ColumnID{view.ColTitle, view.ColRisk}, cfg.ColumnIDs())
	assert.Equal(t, BackendSVG, cfg.Chart.Backend)
	assert.Equal(t, "Risk Percentage", cfg.Chart.Label)
	assert.Equal(t, "q", cfg.DOM.SearchInput)
	assert.Equal(t, "paperFilter", cfg.DOM.PaperFilter)
}

func TestParse_YAML(t *testing.T) {
	cfg, err := Parse([]byte("logLevel: debug\nchart:\n  backend: chartjs\n  width: 640\n"))
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, BackendChartJS, cfg.Chart.Backend)
	assert.Equal(t, 640, cfg.Chart.Width)
}

func TestParse_Invalid(t *testing.T) {
	cases := map[string]string{
		"syntax":    `{"dataUrl": `,
		"keyRule":   `{"keyRule": "underscore"}`,
		"column":    `{"columns": ["title", "doi"]}`,
		"duplicate": `{"columns": ["title", "title"]}`,
		"backend":   `{"chart": {"backend": "d3"}}`,
		"logLevel":  `{"logLevel": "loud"}`,
		"dataUrl":   `{"dataUrl": ""}`,
		"dom":       `{"dom": {"table": ""}}`,
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(raw))
			assert.Error(t, err)
		})
	}
}
