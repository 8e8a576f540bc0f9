package pkg

import (
	"fmt"
	"io"

	"github.com/rs/zerolog/log"

	"metricsreport/pkg/config"
	dataio "metricsreport/pkg/io"
	"metricsreport/pkg/report"
)

func printDataErrors(errors []dataio.DataError) {
	for _, err := range errors {
		log.Error().Msgf("Error parsing data at line %d: %s", err.Line, err.Error)
	}
}

// LoadReport reads the prediction file and computes its metrics.
func LoadReport(inputFileName string, cfg config.Config) (*report.MetricsReport, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	data, dataErrors, err := dataio.LoadData(cfg.DataParameters(inputFileName))
	printDataErrors(dataErrors)
	if err != nil {
		return nil, fmt.Errorf("error loading data from %s: %w", inputFileName, err)
	}
	log.Debug().Int("rows", data.Size()).Str("file", inputFileName).Msg("data loaded")

	r, err := report.New(data.YTrue, data.YPred, cfg.Threshold)
	if err != nil {
		return nil, fmt.Errorf("error computing metrics: %w", err)
	}
	r.FigSize = cfg.Size()
	return r, nil
}

// SaveReport writes the HTML and Markdown reports into cfg.Folder.
func SaveReport(inputFileName string, cfg config.Config) error {
	r, err := LoadReport(inputFileName, cfg)
	if err != nil {
		return err
	}
	r.LogMetrics()
	return r.SaveReport(cfg.Folder, cfg.Name)
}

// PrintReport writes the console report to w and renders the charts through
// viewer.
func PrintReport(inputFileName string, cfg config.Config, viewer report.Viewer, w io.Writer) error {
	r, err := LoadReport(inputFileName, cfg)
	if err != nil {
		return err
	}
	if viewer != nil {
		r.Viewer = viewer
	}
	return r.PrintReport(w)
}

func PrintMetrics(inputFileName string, cfg config.Config, w io.Writer) error {
	r, err := LoadReport(inputFileName, cfg)
	if err != nil {
		return err
	}
	return r.PrintMetrics(w)
}
