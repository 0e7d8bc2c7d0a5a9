package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/kittclouds/atmkit/pkg/dataset"
	"github.com/kittclouds/atmkit/pkg/view"
)

func TestXLSX(t *testing.T) {
	v := 45.0
	rows := []*dataset.Row{
		{Title: "T1", Condition: "Breast", RiskText: "45%", RiskValue: &v, Authors: "Smith"},
		{Title: "T2", Condition: "Lung", RiskText: "Unknown", Authors: dataset.NoAuthors},
	}
	cols, err := view.NewColumns([]view.ColumnID{view.ColTitle, view.ColCondition, view.ColRisk, view.ColAuthors})
	require.NoError(t, err)
	_, err = cols.Toggle(view.ColAuthors)
	require.NoError(t, err)

	data, err := XLSX(rows, cols)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	t.Cleanup(func() { f.Close() })

	got, err := f.GetRows(SheetName)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, []string{"Title", "Cancer Type", "Risk", RiskValueHeader}, got[0])
	assert.Equal(t, []string{"T1", "Breast", "45%", "45"}, got[1])
	require.GreaterOrEqual(t, len(got[2]), 3)
	assert.Equal(t, []string{"T2", "Lung", "Unknown"}, got[2][:3])
	for _, extra := range got[2][3:] {
		assert.Empty(t, extra)
	}
}

func TestXLSX_Empty(t *testing.T) {
	cols, err := view.NewColumns(nil)
	require.NoError(t, err)

	data, err := XLSX(nil, cols)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	t.Cleanup(func() { f.Close() })

	got, err := f.GetRows(SheetName)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Len(t, got[0], len(view.AllColumns)+1)
}
