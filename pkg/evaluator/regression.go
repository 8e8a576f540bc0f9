package evaluator

import (
	"fmt"
	"io"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"metricsreport/pkg/metrics"
	"metricsreport/pkg/plots"
)

type regressionEvaluator struct {
	yTrue      []float64
	yPred      []float64
	metrics    Metrics
	targetInfo Metrics
}

func newRegressionEvaluator(yTrue, yPred []float64) (*regressionEvaluator, error) {
	r := &regressionEvaluator{
		yTrue: append([]float64(nil), yTrue...),
		yPred: append([]float64(nil), yPred...),
	}
	var err error
	if r.metrics, err = r.computeMetrics(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *regressionEvaluator) computeMetrics() (Metrics, error) {
	// The log error is undefined for negative predictions, so they are
	// floored at zero for that metric only.
	msle, err := metrics.MeanSquaredLogError(r.yTrue, metrics.ClipNegative(r.yPred))
	if err != nil {
		return nil, fmt.Errorf("error computing mean squared log error: %w", err)
	}
	return Metrics{
		rounded("Mean Squared Error", metrics.MeanSquaredError(r.yTrue, r.yPred), 4),
		rounded("Mean Squared Log Error", msle, 4),
		rounded("Mean Absolute Error", metrics.MeanAbsoluteError(r.yTrue, r.yPred), 4),
		rounded("R^2", metrics.R2(r.yTrue, r.yPred), 4),
		rounded("Explained Variance Score", metrics.ExplainedVariance(r.yTrue, r.yPred), 4),
		rounded("Max Error", metrics.MaxError(r.yTrue, r.yPred), 4),
		rounded("Mean Absolute Percentage Error", metrics.MeanAbsolutePercentageError(r.yTrue, r.yPred), 1),
	}, nil
}

func (r *regressionEvaluator) Task() Task {
	return Regression
}

func (r *regressionEvaluator) Metrics() Metrics {
	return r.metrics
}

func (r *regressionEvaluator) TargetInfo() Metrics {
	if r.targetInfo == nil {
		mean, std := stat.PopMeanStdDev(r.yTrue, nil)
		r.targetInfo = Metrics{
			count("Count of samples", len(r.yTrue)),
			rounded("Mean of target", mean, 2),
			rounded("Std of target", std, 2),
			rounded("Min of target", floats.Min(r.yTrue), 2),
			rounded("Max of target", floats.Max(r.yTrue), 2),
		}
	}
	return r.targetInfo
}

func (r *regressionEvaluator) Plots() []plots.Spec {
	return []plots.Spec{
		{Name: "residual_plot", Render: func(s plots.Size) (*plots.Figure, error) {
			return plots.Residuals(r.yTrue, r.yPred, s)
		}},
		{Name: "predicted_vs_actual", Render: func(s plots.Size) (*plots.Figure, error) {
			return plots.PredictedVsActual(r.yTrue, r.yPred, s)
		}},
	}
}

func (r *regressionEvaluator) WriteReport(w io.Writer) error {
	return writeMetricsSection(w, r.metrics)
}

func (r *regressionEvaluator) LogMetrics() {
	logMetrics(r.metrics)
}
