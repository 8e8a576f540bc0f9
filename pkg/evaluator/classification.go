package evaluator

import (
	"fmt"
	"io"

	"github.com/rs/zerolog/log"

	"metricsreport/pkg/metrics"
	"metricsreport/pkg/plots"
)

type classificationEvaluator struct {
	threshold  float64
	labels     []int
	scores     []float64
	predicted  []int
	counts     metrics.ClassCounts
	metrics    Metrics
	targetInfo Metrics
}

func newClassificationEvaluator(yTrue, yPred []float64, threshold float64) (*classificationEvaluator, error) {
	labels := make([]int, len(yTrue))
	for i, v := range yTrue {
		switch v {
		case 0, 1:
			labels[i] = int(v)
		default:
			return nil, fmt.Errorf("%w: got %v", ErrNonBinaryLabels, v)
		}
	}
	scores := make([]float64, len(yPred))
	copy(scores, yPred)

	c := &classificationEvaluator{
		threshold: threshold,
		labels:    labels,
		scores:    scores,
		predicted: metrics.Binarize(scores, threshold),
	}
	c.counts = metrics.CountClasses(c.labels, c.predicted)

	var err error
	if c.metrics, err = c.computeMetrics(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *classificationEvaluator) computeMetrics() (Metrics, error) {
	auc, err := metrics.ROCAUC(c.labels, c.scores)
	if err != nil {
		return nil, fmt.Errorf("error computing AUC: %w", err)
	}
	ap, err := metrics.AveragePrecision(c.labels, c.scores)
	if err != nil {
		return nil, fmt.Errorf("error computing average precision: %w", err)
	}
	counts := c.counts
	return Metrics{
		rounded("AUC", auc, 4),
		rounded("Log Loss", metrics.LogLoss(c.labels, c.scores), 4),
		rounded("Average_Precision", ap, 4),
		rounded("Accuracy", counts.Accuracy(), 4),
		rounded("Precision", counts.Weighted(counts.Precision), 4),
		rounded("Recall", counts.Weighted(counts.Recall), 4),
		rounded("F1 Score", counts.Weighted(counts.F1), 4),
		rounded("MCC", counts.MCC(), 4),
		count("TN", counts.TN()),
		count("FP", counts.FP()),
		count("FN", counts.FN()),
		count("TP", counts.TP()),
	}, nil
}

func (c *classificationEvaluator) Task() Task {
	return Classification
}

func (c *classificationEvaluator) Metrics() Metrics {
	return c.metrics
}

func (c *classificationEvaluator) TargetInfo() Metrics {
	if c.targetInfo == nil {
		positives := c.counts.Support(1)
		total := len(c.labels)
		c.targetInfo = Metrics{
			count("Count of samples", total),
			count("Count True class", positives),
			count("Count False class", total-positives),
			rounded("Class balance %", float64(positives)/float64(total)*100, 1),
		}
	}
	return c.targetInfo
}

func (c *classificationEvaluator) Plots() []plots.Spec {
	return []plots.Spec{
		{Name: "class_distribution", Render: func(s plots.Size) (*plots.Figure, error) {
			return plots.ClassDistribution(c.labels, c.scores, s)
		}},
		{Name: "confusion_matrix", Render: func(s plots.Size) (*plots.Figure, error) {
			return plots.ConfusionMatrix(c.counts, s)
		}},
		{Name: "precision_recall_curve", Render: func(s plots.Size) (*plots.Figure, error) {
			return plots.PrecisionRecall(c.labels, c.scores, s)
		}},
		{Name: "roc_curve", Render: func(s plots.Size) (*plots.Figure, error) {
			return plots.ROC(c.labels, c.scores, s)
		}},
		{Name: "ks_statistic", Render: func(s plots.Size) (*plots.Figure, error) {
			return plots.KSStatistic(c.labels, c.scores, s)
		}},
		{Name: "calibration_curve", Render: func(s plots.Size) (*plots.Figure, error) {
			return plots.Calibration(c.labels, c.scores, s)
		}},
		{Name: "cumulative_gain", Render: func(s plots.Size) (*plots.Figure, error) {
			return plots.CumulativeGain(c.labels, c.scores, s)
		}},
		{Name: "lift_curve", Render: func(s plots.Size) (*plots.Figure, error) {
			return plots.LiftCurve(c.labels, c.scores, s)
		}},
	}
}

func (c *classificationEvaluator) WriteReport(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "threshold=%v\n", c.threshold); err != nil {
		return err
	}
	if _, err := fmt.Fprint(w, "\n                  |  Classification Report | \n\n"); err != nil {
		return err
	}
	if err := metrics.WriteClassificationReport(w, c.counts); err != nil {
		return err
	}
	if err := writeMetricsSection(w, c.metrics); err != nil {
		return err
	}
	lift, err := metrics.Lift(c.labels, c.scores)
	if err != nil {
		return fmt.Errorf("error computing lift: %w", err)
	}
	_, err = fmt.Fprintf(w, "\n                  |  Lift: | \n\n%.4f\n", lift)
	return err
}

func (c *classificationEvaluator) LogMetrics() {
	for class, name := range metrics.ClassNames {
		result := c.counts[class]
		log.Info().Str("Class", name).
			Int("TP", result.TruePos).
			Int("FP", result.FalsePos).
			Int("TN", result.TrueNeg).
			Int("FN", result.FalseNeg).
			Float64("Precision", c.counts.Precision(class)).
			Float64("Recall", c.counts.Recall(class)).
			Float64("F1", c.counts.F1(class)).
			Msg("")
	}
	logMetrics(c.metrics)
}

func logMetrics(m Metrics) {
	event := log.Info()
	for _, metric := range m {
		if metric.Integer {
			event = event.Int(metric.Name, int(metric.Value))
		} else {
			event = event.Float64(metric.Name, metric.Value)
		}
	}
	event.Msg("metrics")
}
