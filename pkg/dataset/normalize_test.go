package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kittclouds/atmkit/pkg/annotations"
)

func decode(t *testing.T, raw string) *annotations.Document {
	t.Helper()
	doc, err := annotations.Decode([]byte(raw))
	require.NoError(t, err)
	return doc
}

func TestNormalize_SinglePaper(t *testing.T) {
	doc := decode(t, `{"PaperA": {"Title":"T1","Cancer":{"Types":["Breast"],"Evidence":["E1"]},"Risk":{"Percentages":{"Breast":"45%"}},"Medical_Actions_Management":{"Breast":{"Recommendations":["Screen yearly"],"Evidence":["M1"]}},"Authors":["Smith"]}}`)

	rows := Normalize(doc, Options{})
	require.Len(t, rows, 1)

	r := rows[0]
	assert.Equal(t, "PaperA", r.PaperID)
	assert.Equal(t, "T1", r.Title)
	assert.Equal(t, "Breast", r.Condition)
	assert.Equal(t, "45%", r.RiskText)
	require.NotNil(t, r.RiskValue)
	assert.Equal(t, 45.0, *r.RiskValue)
	assert.Equal(t, "Screen yearly", r.ManagementText)
	assert.Equal(t, "E1", r.EvidenceConditionText)
	assert.Equal(t, "M1", r.EvidenceManagementText)
	assert.Equal(t, "Smith", r.Authors)
}

func TestNormalize_Placeholders(t *testing.T) {
	doc := decode(t, `{"P": {"Title": "T", "Cancer": {"Types": ["Lung"]}}}`)

	rows := Normalize(doc, Options{})
	require.Len(t, rows, 1)

	r := rows[0]
	assert.Equal(t, UnknownRisk, r.RiskText)
	assert.Nil(t, r.RiskValue)
	assert.Equal(t, 0.0, r.Risk())
	assert.Equal(t, NoRecommendations, r.ManagementText)
	assert.Equal(t, NoEvidence, r.EvidenceConditionText)
	assert.Equal(t, NoEvidence, r.EvidenceManagementText)
	assert.Equal(t, NoAuthors, r.Authors)
}

func TestNormalize_EvidenceFallsBackToCondition(t *testing.T) {
	doc := decode(t, `{"P": {
	  "Title": "T",
	  "Authors": [],
	  "Cancer": {"Types": ["Lung", "Colon"], "Evidence": ["C1", "C2"]},
	  "Medical_Actions_Management": {"Lung": {"Recommendations": ["CT", "Stop smoking"]}}
	}}`)

	rows := Normalize(doc, Options{})
	require.Len(t, rows, 2)

	assert.Equal(t, "CT; Stop smoking", rows[0].ManagementText)
	assert.Equal(t, "C1; C2", rows[0].EvidenceManagementText)
	assert.Equal(t, "C1; C2", rows[0].EvidenceConditionText)
	assert.Equal(t, NoRecommendations, rows[1].ManagementText)
	assert.Equal(t, "C1; C2", rows[1].EvidenceManagementText)
	assert.Equal(t, NoAuthors, rows[0].Authors)
}

func TestNormalize_RowCountAndOrder(t *testing.T) {
	doc := decode(t, `{
	  "b": {"Title": "B", "Cancer": {"Types": ["X", "Y", "X"]}},
	  "none": {"Title": "N"},
	  "empty": {"Title": "E", "Cancer": {"Types": []}},
	  "a": {"Title": "A", "Cancer": {"Types": ["Z"]}}
	}`)

	rows := Normalize(doc, Options{})

	want := 0
	for _, p := range doc.Papers {
		want += len(p.Cancer.Types)
	}
	require.Len(t, rows, want)

	var got []string
	for _, r := range rows {
		got = append(got, r.Title+"/"+r.Condition)
	}
	assert.Equal(t, []string{"B/X", "B/Y", "B/X", "A/Z"}, got)
}

func TestNormalize_CanonicalKeys(t *testing.T) {
	doc := decode(t, `{"P": {
	  "Title": "T",
	  "Cancer": {"Types": ["Breast Cancer", "Ovarian_Cancer"]},
	  "Risk": {"Percentages": {"Breast_Cancer": "20-30%", "Ovarian  Cancer": "2%"}},
	  "Medical_Actions_Management": {
	    "Breast_Cancer": {"Recommendations": ["MRI"]},
	    "Ovarian Cancer": {"Recommendations": ["RRSO"]}
	  }
	}}`)

	rows := Normalize(doc, Options{KeyRule: KeyRuleCanonical})
	require.Len(t, rows, 2)
	assert.Equal(t, "20-30%", rows[0].RiskText)
	assert.Equal(t, 20.0, rows[0].Risk())
	assert.Equal(t, "MRI", rows[0].ManagementText)
	assert.Equal(t, "2%", rows[1].RiskText)
	assert.Equal(t, "RRSO", rows[1].ManagementText)

	exact := Normalize(doc, Options{KeyRule: KeyRuleExact})
	assert.Equal(t, UnknownRisk, exact[0].RiskText)
	assert.Equal(t, NoRecommendations, exact[0].ManagementText)
}

func TestNormalize_ExactKeyWins(t *testing.T) {
	doc := decode(t, `{"P": {
	  "Title": "T",
	  "Cancer": {"Types": ["Breast Cancer"]},
	  "Medical_Actions_Management": {
	    "Breast_Cancer": {"Recommendations": ["canonical"]},
	    "Breast Cancer": {"Recommendations": ["exact"]}
	  }
	}}`)

	rows := Normalize(doc, Options{})
	require.Len(t, rows, 1)
	assert.Equal(t, "exact", rows[0].ManagementText)
}

func TestParseRisk(t *testing.T) {
	cases := []struct {
		in   string
		want *float64
	}{
		{"45%", ptr(45)},
		{"up to 2.5% lifetime", ptr(2.5)},
		{"Elevated (RR 1.7)", ptr(1.7)},
		{"10-20%", ptr(10)},
		{"Unknown", nil},
		{"", nil},
		{"3.", ptr(3)},
	}
	for _, c := range cases {
		t.Run(c.in, func(t *testing.T) {
			assert.Equal(t, c.want, ParseRisk(c.in))
		})
	}
}

func TestCanonicalKey(t *testing.T) {
	assert.Equal(t, "Breast_Cancer", CanonicalKey("Breast Cancer"))
	assert.Equal(t, "Breast_Cancer", CanonicalKey("  Breast \t Cancer "))
	assert.Equal(t, "Breast_Cancer", CanonicalKey("Breast_Cancer"))
	assert.Equal(t, "Breast_Cancer", CanonicalKey("Breast Cancer"))
}

func TestFacets(t *testing.T) {
	rows := []*Row{
		{Title: "T2", Condition: "Lung"},
		{Title: "T1", Condition: "Breast"},
		{Title: "T2", Condition: "Breast"},
		{Title: "T3", Condition: "Lung"},
	}
	papers, conditions := Facets(rows)
	assert.Equal(t, []string{"T2", "T1", "T3"}, papers)
	assert.Equal(t, []string{"Lung", "Breast"}, conditions)
}

func TestParseKeyRule(t *testing.T) {
	rule, ok := ParseKeyRule("Exact")
	assert.True(t, ok)
	assert.Equal(t, KeyRuleExact, rule)

	rule, ok = ParseKeyRule("")
	assert.True(t, ok)
	assert.Equal(t, KeyRuleCanonical, rule)

	_, ok = ParseKeyRule("underscore")
	assert.False(t, ok)
}

func ptr(v float64) *float64 {
	return &v
}
