package plots

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"metricsreport/pkg/metrics"
)

const (
	distributionBins = 20
	calibrationBins  = 10
)

// ClassDistribution overlays the score histograms of both classes.
func ClassDistribution(labels []int, scores []float64, size Size) (*Figure, error) {
	fig := newFigure("class_distribution", "Class Distribution", "Predicted probability", "Count", size)
	perClass := [2]plotter.Values{}
	for i, l := range labels {
		perClass[l] = append(perClass[l], scores[i])
	}
	for class, values := range perClass {
		if len(values) == 0 {
			continue
		}
		hist, err := plotter.NewHist(values, distributionBins)
		if err != nil {
			return nil, fmt.Errorf("error building histogram for %s: %w", metrics.ClassNames[class], err)
		}
		c := color.NRGBAModel.Convert(plotutil.Color(class)).(color.NRGBA)
		c.A = 0x80
		hist.FillColor = c
		fig.Plot.Add(hist)
		fig.Plot.Legend.Add(metrics.ClassNames[class], hist)
	}
	return fig, nil
}

// confusionGrid lays out a 2x2 confusion matrix, rows are true classes and
// columns predicted classes.
type confusionGrid [2][2]float64

func (g confusionGrid) Dims() (c, r int)   { return 2, 2 }
func (g confusionGrid) Z(c, r int) float64 { return g[r][c] }
func (g confusionGrid) X(c int) float64    { return float64(c) }
func (g confusionGrid) Y(r int) float64    { return float64(r) }

// ConfusionMatrix draws the counts of counts as a heat map.
func ConfusionMatrix(counts metrics.ClassCounts, size Size) (*Figure, error) {
	fig := newFigure("confusion_matrix", "Confusion Matrix", "Predicted label", "True label", size)
	grid := confusionGrid{
		{float64(counts.TN()), float64(counts.FP())},
		{float64(counts.FN()), float64(counts.TP())},
	}
	fig.Plot.Add(plotter.NewHeatMap(grid, palette.Heat(12, 1)))

	cells := plotter.XYLabels{}
	for r := range grid {
		for c := range grid[r] {
			cells.XYs = append(cells.XYs, plotter.XY{X: float64(c), Y: float64(r)})
			cells.Labels = append(cells.Labels, fmt.Sprintf("%d", int(grid[r][c])))
		}
	}
	labels, err := plotter.NewLabels(cells)
	if err != nil {
		return nil, fmt.Errorf("error building confusion matrix labels: %w", err)
	}
	fig.Plot.Add(labels)
	fig.Plot.NominalX(metrics.ClassNames[:]...)
	fig.Plot.NominalY(metrics.ClassNames[:]...)
	return fig, nil
}

// PrecisionRecall draws precision against recall.
func PrecisionRecall(labels []int, scores []float64, size Size) (*Figure, error) {
	precision, recall, _, err := metrics.PrecisionRecallCurve(labels, scores)
	if err != nil {
		return nil, err
	}
	ap, err := metrics.AveragePrecision(labels, scores)
	if err != nil {
		return nil, err
	}
	fig := newFigure("precision_recall_curve", "Precision Recall Curve", "Recall", "Precision", size)
	// The curve starts at full precision and zero recall.
	precision = append([]float64{1}, precision...)
	recall = append([]float64{0}, recall...)
	if err := plotutil.AddLines(fig.Plot, fmt.Sprintf("AP = %.2f", ap), toXYs(recall, precision)); err != nil {
		return nil, err
	}
	fig.Plot.Y.Min, fig.Plot.Y.Max = 0, 1.05
	return fig, nil
}

// ROC draws the receiver operating characteristic curve with the chance line.
func ROC(labels []int, scores []float64, size Size) (*Figure, error) {
	fpr, tpr, _, err := metrics.ROCCurve(labels, scores)
	if err != nil {
		return nil, err
	}
	auc, err := metrics.ROCAUC(labels, scores)
	if err != nil {
		return nil, err
	}
	fig := newFigure("roc_curve", "ROC Curve", "False Positive Rate", "True Positive Rate", size)
	if err := plotutil.AddLines(fig.Plot, fmt.Sprintf("AUC = %.2f", auc), toXYs(fpr, tpr)); err != nil {
		return nil, err
	}
	if err := addDiagonal(fig, "Random"); err != nil {
		return nil, err
	}
	return fig, nil
}

// KSStatistic draws the cumulative score distributions of both classes and
// marks the largest gap between them.
func KSStatistic(labels []int, scores []float64, size Size) (*Figure, error) {
	ks, err := metrics.KolmogorovSmirnov(labels, scores)
	if err != nil {
		return nil, err
	}
	fig := newFigure("ks_statistic", "KS Statistic Plot", "Threshold", "Percentage below threshold", size)
	if err := plotutil.AddLines(fig.Plot,
		metrics.ClassNames[0], toXYs(ks.Thresholds, ks.Negative),
		metrics.ClassNames[1], toXYs(ks.Thresholds, ks.Positive)); err != nil {
		return nil, err
	}

	var low, high float64
	for i, t := range ks.Thresholds {
		if t == ks.Threshold {
			low, high = ks.Positive[i], ks.Negative[i]
			if low > high {
				low, high = high, low
			}
		}
	}
	gap, err := plotter.NewLine(plotter.XYs{{X: ks.Threshold, Y: low}, {X: ks.Threshold, Y: high}})
	if err != nil {
		return nil, err
	}
	gap.Dashes = []vg.Length{vg.Points(4), vg.Points(4)}
	fig.Plot.Add(gap)
	fig.Plot.Legend.Add(fmt.Sprintf("KS = %.3f at %.3f", ks.Statistic, ks.Threshold), gap)
	return fig, nil
}

// Calibration draws the reliability curve of class 1 scores.
func Calibration(labels []int, scores []float64, size Size) (*Figure, error) {
	mean, fraction := metrics.CalibrationCurve(labels, scores, calibrationBins)
	fig := newFigure("calibration_curve", "Calibration plots (Reliability Curves)", "Mean predicted value", "Fraction of positives", size)
	if err := plotutil.AddLinePoints(fig.Plot, metrics.ClassNames[1], toXYs(mean, fraction)); err != nil {
		return nil, err
	}
	if err := addDiagonal(fig, "Perfectly calibrated"); err != nil {
		return nil, err
	}
	fig.Plot.X.Min, fig.Plot.X.Max = 0, 1
	fig.Plot.Y.Min, fig.Plot.Y.Max = 0, 1.05
	return fig, nil
}

// CumulativeGain draws the gain curves of both classes against the baseline.
func CumulativeGain(labels []int, scores []float64, size Size) (*Figure, error) {
	fig := newFigure("cumulative_gain", "Cumulative Gains Curve", "Percentage of sample", "Gain", size)
	negative, positive := metrics.Classes(labels)
	fraction0, gain0 := metrics.CumulativeGain(negative, complement(scores))
	fraction1, gain1 := metrics.CumulativeGain(positive, scores)
	if err := plotutil.AddLines(fig.Plot,
		metrics.ClassNames[0], toXYs(fraction0, gain0),
		metrics.ClassNames[1], toXYs(fraction1, gain1)); err != nil {
		return nil, err
	}
	if err := addDiagonal(fig, "Baseline"); err != nil {
		return nil, err
	}
	return fig, nil
}

// LiftCurve draws the lift of both classes against the baseline of 1.
func LiftCurve(labels []int, scores []float64, size Size) (*Figure, error) {
	fig := newFigure("lift_curve", "Lift Curve", "Percentage of sample", "Lift", size)
	negative, positive := metrics.Classes(labels)
	fraction0, lift0 := metrics.LiftCurve(negative, complement(scores))
	fraction1, lift1 := metrics.LiftCurve(positive, scores)
	if err := plotutil.AddLines(fig.Plot,
		metrics.ClassNames[0], toXYs(fraction0, lift0),
		metrics.ClassNames[1], toXYs(fraction1, lift1)); err != nil {
		return nil, err
	}
	baseline, err := plotter.NewLine(plotter.XYs{{X: 0, Y: 1}, {X: 1, Y: 1}})
	if err != nil {
		return nil, err
	}
	baseline.Dashes = []vg.Length{vg.Points(4), vg.Points(4)}
	fig.Plot.Add(baseline)
	fig.Plot.Legend.Add("Baseline", baseline)
	return fig, nil
}

func addDiagonal(fig *Figure, name string) error {
	diagonal, err := plotter.NewLine(plotter.XYs{{X: 0, Y: 0}, {X: 1, Y: 1}})
	if err != nil {
		return err
	}
	diagonal.Dashes = []vg.Length{vg.Points(4), vg.Points(4)}
	diagonal.Color = color.Gray{Y: 96}
	fig.Plot.Add(diagonal)
	fig.Plot.Legend.Add(name, diagonal)
	return nil
}

// complement turns class 1 scores into class 0 scores.
func complement(scores []float64) []float64 {
	result := make([]float64, len(scores))
	for i, s := range scores {
		result[i] = 1 - s
	}
	return result
}

func toXYs(x, y []float64) plotter.XYs {
	xys := make(plotter.XYs, len(x))
	for i := range x {
		xys[i].X = x[i]
		xys[i].Y = y[i]
	}
	return xys
}
