package io

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadData_CSV(t *testing.T) {
	path := writeFile(t, "preds.csv", "id,y_true,y_pred\n1,0,0.2\n2,1,0.8\n3,x,0.5\n4,1\n5,0,0.1\n")

	data, dataErrors, err := LoadData(DataParameters{DataFile: path})
	require.NoError(t, err)
	require.Equal(t, 3, data.Size())
	require.Equal(t, []float64{0, 1, 0}, data.YTrue)
	require.Equal(t, []float64{0.2, 0.8, 0.1}, data.YPred)

	require.Len(t, dataErrors, 2)
	require.Equal(t, 4, dataErrors[0].Line)
	require.Contains(t, dataErrors[0].Error, "y_true")
	require.Equal(t, 5, dataErrors[1].Line)
	require.Contains(t, dataErrors[1].Error, "missing value")
}

func TestLoadData_CustomColumns(t *testing.T) {
	path := writeFile(t, "preds.csv", "target, score\n1.5,1.4\n2.5,2.7\n")

	data, dataErrors, err := LoadData(DataParameters{DataFile: path, TrueColumn: "target", PredColumn: "score"})
	require.NoError(t, err)
	require.Empty(t, dataErrors)
	require.Equal(t, []float64{1.5, 2.5}, data.YTrue)
	require.Equal(t, []float64{1.4, 2.7}, data.YPred)
}

func TestLoadData_Errors(t *testing.T) {
	_, _, err := LoadData(DataParameters{DataFile: filepath.Join(t.TempDir(), "missing.csv")})
	require.Error(t, err)

	path := writeFile(t, "preds.csv", "a,b\n1,2\n")
	_, _, err = LoadData(DataParameters{DataFile: path})
	require.ErrorContains(t, err, "y_true")

	path = writeFile(t, "preds.csv", "y_true,y_pred\n")
	_, _, err = LoadData(DataParameters{DataFile: path})
	require.ErrorIs(t, err, ErrNoData)

	path = writeFile(t, "empty.csv", "")
	_, _, err = LoadData(DataParameters{DataFile: path})
	require.ErrorIs(t, err, ErrNoData)
}

func TestLoadData_Excel(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	_, err := f.NewSheet("preds")
	require.NoError(t, err)
	rows := [][]any{
		{"y_true", "y_pred"},
		{1.0, 1.1},
		{2.0, 2.3},
		{3.0, 3.4},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("preds", cell, &row))
	}
	path := filepath.Join(t.TempDir(), "preds.xlsx")
	require.NoError(t, f.SaveAs(path))

	data, dataErrors, err := LoadData(DataParameters{DataFile: path, Sheet: "preds"})
	require.NoError(t, err)
	require.Empty(t, dataErrors)
	require.Equal(t, []float64{1, 2, 3}, data.YTrue)
	require.Equal(t, []float64{1.1, 2.3, 3.4}, data.YPred)

	// The first sheet is empty.
	_, _, err = LoadData(DataParameters{DataFile: path})
	require.ErrorIs(t, err, ErrNoData)

	_, _, err = LoadData(DataParameters{DataFile: path, Sheet: "missing"})
	require.Error(t, err)
}

func TestNameMap(t *testing.T) {
	m := NewNameMap([]string{"a", " b "})
	require.Equal(t, 2, m.Size())
	index, ok := m.ContainsName("b")
	require.True(t, ok)
	require.Equal(t, 1, index)
	_, ok = m.ContainsName("c")
	require.False(t, ok)
}
