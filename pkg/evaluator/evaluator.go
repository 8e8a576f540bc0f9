package evaluator

import (
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog/log"

	"metricsreport/pkg/plots"
)

var (
	ErrEmptyInput       = errors.New("y_true and y_pred must not be empty")
	ErrLengthMismatch   = errors.New("y_true and y_pred must have the same length")
	ErrInvalidThreshold = errors.New("threshold must be within [0, 1]")
	ErrNonBinaryLabels  = errors.New("classification targets must be 0 or 1")
)

// Evaluator computes the metrics, target summary and charts of one task
// type. Metrics are computed once, when the evaluator is built.
type Evaluator interface {
	Task() Task
	Metrics() Metrics
	TargetInfo() Metrics
	Plots() []plots.Spec
	// WriteReport writes the console report, without charts.
	WriteReport(w io.Writer) error
	LogMetrics()
}

// New detects the task type of yTrue and builds the matching evaluator.
// threshold is only used for classification.
func New(yTrue, yPred []float64, threshold float64) (Evaluator, error) {
	if len(yTrue) == 0 {
		return nil, ErrEmptyInput
	}
	if len(yTrue) != len(yPred) {
		return nil, fmt.Errorf("%w: %d != %d", ErrLengthMismatch, len(yTrue), len(yPred))
	}
	if threshold < 0 || threshold > 1 {
		return nil, fmt.Errorf("%w: got %v", ErrInvalidThreshold, threshold)
	}

	task := DetectTask(yTrue)
	log.Info().Stringer("task", task).Msg("detected task type")

	switch task {
	case Classification:
		return newClassificationEvaluator(yTrue, yPred, threshold)
	default:
		return newRegressionEvaluator(yTrue, yPred)
	}
}

func writeMetricsSection(w io.Writer, m Metrics) error {
	if _, err := fmt.Fprint(w, "\n                  |  Metrics Report: | \n\n"); err != nil {
		return err
	}
	return m.WriteTable(w, "score")
}
