// Package report bundles the metrics and charts of one set of predictions
// into a console report or an HTML and Markdown report on disk.
package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/rs/zerolog/log"

	"metricsreport/pkg/evaluator"
	"metricsreport/pkg/plots"
)

const (
	DefaultFolder    = "report_metrics"
	DefaultName      = "report_metrics"
	DefaultThreshold = 0.5

	plotsDir = "plots"
)

type MetricsReport struct {
	Threshold float64
	// FigSize is the size of every chart, in inches.
	FigSize plots.Size
	// Viewer receives the charts of PlotMetrics and PrintReport.
	Viewer Viewer

	evaluator evaluator.Evaluator
}

// New validates the predictions, detects the task type and computes the
// metrics. threshold is only used for classification.
func New(yTrue, yPred []float64, threshold float64) (*MetricsReport, error) {
	ev, err := evaluator.New(yTrue, yPred, threshold)
	if err != nil {
		return nil, err
	}
	return &MetricsReport{
		Threshold: threshold,
		FigSize:   plots.DefaultSize,
		Viewer:    &FileViewer{},
		evaluator: ev,
	}, nil
}

func (r *MetricsReport) Task() evaluator.Task {
	return r.evaluator.Task()
}

func (r *MetricsReport) Metrics() evaluator.Metrics {
	return r.evaluator.Metrics()
}

func (r *MetricsReport) TargetInfo() evaluator.Metrics {
	return r.evaluator.TargetInfo()
}

// Plots renders every chart of the task type, in report order.
func (r *MetricsReport) Plots() ([]*plots.Figure, error) {
	specs := r.evaluator.Plots()
	figures := make([]*plots.Figure, 0, len(specs))
	for _, spec := range specs {
		fig, err := spec.Render(r.FigSize)
		if err != nil {
			return nil, fmt.Errorf("error rendering %s: %w", spec.Name, err)
		}
		figures = append(figures, fig)
	}
	return figures, nil
}

// PlotMetrics renders every chart and hands it to the viewer.
func (r *MetricsReport) PlotMetrics() error {
	figures, err := r.Plots()
	if err != nil {
		return err
	}
	for _, fig := range figures {
		if err := r.Viewer.Show(fig); err != nil {
			return err
		}
	}
	return nil
}

func (r *MetricsReport) PrintMetrics(w io.Writer) error {
	return r.evaluator.Metrics().WriteTable(w, "score")
}

// PrintReport writes the console report and then displays the charts.
func (r *MetricsReport) PrintReport(w io.Writer) error {
	if err := r.evaluator.WriteReport(w); err != nil {
		return err
	}
	return r.PlotMetrics()
}

func (r *MetricsReport) LogMetrics() {
	r.evaluator.LogMetrics()
}

// SaveReport writes {folder}/{name}.html, {folder}/{name}.md and the charts
// under {folder}/plots. Any folder other than "." is wiped first.
func (r *MetricsReport) SaveReport(folder, name string) error {
	if folder != "." {
		if err := os.RemoveAll(folder); err != nil {
			return fmt.Errorf("error removing report folder %s: %w", folder, err)
		}
		if err := os.MkdirAll(folder, 0o755); err != nil {
			return fmt.Errorf("error creating report folder %s: %w", folder, err)
		}
	}

	data := reportData{
		Task:      r.Task().String(),
		Threshold: strconv.FormatFloat(r.Threshold, 'f', -1, 64),
		DataInfo:  r.TargetInfo(),
		Metrics:   r.Metrics(),
	}

	images, err := plots.SaveAll(filepath.Join(folder, plotsDir), r.evaluator.Plots(), r.FigSize)
	if err != nil {
		return err
	}
	data.Images = images

	data.CSS = reportCSS
	html, err := renderHTML(data)
	if err != nil {
		return err
	}

	data.CSS = ""
	plain, err := renderHTML(data)
	if err != nil {
		return err
	}
	markdown, err := htmlToMarkdown(plain)
	if err != nil {
		return err
	}

	htmlPath := filepath.Join(folder, name+".html")
	if err := os.WriteFile(htmlPath, []byte(html), 0o644); err != nil {
		return fmt.Errorf("error writing %s: %w", htmlPath, err)
	}
	mdPath := filepath.Join(folder, name+".md")
	if err := os.WriteFile(mdPath, []byte(markdown), 0o644); err != nil {
		return fmt.Errorf("error writing %s: %w", mdPath, err)
	}

	log.Info().Str("folder", folder).Str("name", name).Msg("report saved")
	return nil
}
