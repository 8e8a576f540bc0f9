// Package config loads the YAML settings of the metricsreport command.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	dataio "metricsreport/pkg/io"
	"metricsreport/pkg/plots"
	"metricsreport/pkg/report"
)

var (
	ErrInvalidThreshold = errors.New("threshold must be within [0, 1]")
	ErrInvalidFigSize   = errors.New("figsize width and height must be positive")
)

type FigSize struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

type Config struct {
	Threshold  float64 `yaml:"threshold"`
	Folder     string  `yaml:"folder"`
	Name       string  `yaml:"name"`
	TrueColumn string  `yaml:"true_column"`
	PredColumn string  `yaml:"pred_column"`
	Sheet      string  `yaml:"sheet"`
	FigSize    FigSize `yaml:"figsize"`
}

func Default() Config {
	return Config{
		Threshold:  report.DefaultThreshold,
		Folder:     report.DefaultFolder,
		Name:       report.DefaultName,
		TrueColumn: dataio.DefaultTrueColumn,
		PredColumn: dataio.DefaultPredColumn,
		FigSize: FigSize{
			Width:  plots.DefaultSize.Width,
			Height: plots.DefaultSize.Height,
		},
	}
}

// Load reads path on top of the default configuration, so keys missing from
// the file keep their default value.
func Load(path string) (Config, error) {
	cfg := Default()
	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.Threshold < 0 || c.Threshold > 1 {
		return fmt.Errorf("%w: got %v", ErrInvalidThreshold, c.Threshold)
	}
	if c.FigSize.Width <= 0 || c.FigSize.Height <= 0 {
		return fmt.Errorf("%w: got %vx%v", ErrInvalidFigSize, c.FigSize.Width, c.FigSize.Height)
	}
	return nil
}

func (c Config) Size() plots.Size {
	return plots.Size{Width: c.FigSize.Width, Height: c.FigSize.Height}
}

func (c Config) DataParameters(dataFile string) dataio.DataParameters {
	return dataio.DataParameters{
		DataFile:   dataFile,
		TrueColumn: c.TrueColumn,
		PredColumn: c.PredColumn,
		Sheet:      c.Sheet,
	}
}
