package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"metricsreport/pkg/plots"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	require.Equal(t, 0.5, cfg.Threshold)
	require.Equal(t, "report_metrics", cfg.Folder)
	require.Equal(t, "report_metrics", cfg.Name)
	require.Equal(t, "y_true", cfg.TrueColumn)
	require.Equal(t, "y_pred", cfg.PredColumn)
	require.Equal(t, plots.DefaultSize, cfg.Size())
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
threshold: 0.3
folder: out
true_column: target
figsize:
  width: 6
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())
	require.Equal(t, 0.3, cfg.Threshold)
	require.Equal(t, "out", cfg.Folder)
	require.Equal(t, "report_metrics", cfg.Name)
	require.Equal(t, "target", cfg.TrueColumn)
	require.Equal(t, "y_pred", cfg.PredColumn)
	require.Equal(t, plots.Size{Width: 6, Height: 10}, cfg.Size())

	params := cfg.DataParameters("data.csv")
	require.Equal(t, "data.csv", params.DataFile)
	require.Equal(t, "target", params.TrueColumn)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.ErrorContains(t, err, "read config")

	_, err = Load(writeConfig(t, "threshold: [1, 2"))
	require.ErrorContains(t, err, "parse config")
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Threshold = 1.5
	require.ErrorIs(t, cfg.Validate(), ErrInvalidThreshold)

	cfg = Default()
	cfg.FigSize.Height = 0
	require.ErrorIs(t, cfg.Validate(), ErrInvalidFigSize)
}
