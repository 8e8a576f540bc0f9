package metrics

import (
	"errors"
	"math"
	"sort"

	"github.com/nlpodyssey/spago/pkg/ml/stats"
	"gonum.org/v1/gonum/integrate"
	"gonum.org/v1/gonum/stat"
)

// ErrSingleClass is returned by the ranking metrics when the labels contain
// only one of the two classes.
var ErrSingleClass = errors.New("only one class present in y_true, metric is not defined")

// LogLossEpsilon bounds probabilities away from 0 and 1 before taking logs.
const LogLossEpsilon = 1e-15

// Binarize maps scores to 1 when strictly greater than threshold, 0 otherwise.
func Binarize(scores []float64, threshold float64) []int {
	result := make([]int, len(scores))
	for i, s := range scores {
		if s > threshold {
			result[i] = 1
		}
	}
	return result
}

// ClassCounts holds one-vs-rest counters for class 0 and class 1.
type ClassCounts [2]*stats.ClassMetrics

// CountClasses compares binary labels with binary predictions.
func CountClasses(labels, predicted []int) ClassCounts {
	counts := ClassCounts{stats.NewMetricCounter(), stats.NewMetricCounter()}
	for i := range labels {
		label, prediction := labels[i], predicted[i]
		if label == prediction {
			counts[label].IncTruePos()
			counts[1-label].IncTrueNeg()
		} else {
			counts[label].IncFalseNeg()
			counts[prediction].IncFalsePos()
		}
	}
	return counts
}

func (c ClassCounts) TN() int { return c[1].TrueNeg }
func (c ClassCounts) FP() int { return c[1].FalsePos }
func (c ClassCounts) FN() int { return c[1].FalseNeg }
func (c ClassCounts) TP() int { return c[1].TruePos }

// Total is the number of compared samples.
func (c ClassCounts) Total() int {
	return c.TN() + c.FP() + c.FN() + c.TP()
}

// Support is the number of samples whose true label is class.
func (c ClassCounts) Support(class int) int {
	return c[class].TruePos + c[class].FalseNeg
}

func (c ClassCounts) Accuracy() float64 {
	return float64(c.TP()+c.TN()) / float64(c.Total())
}

// Precision, Recall and F1 are zero when the class has no true positives,
// which also covers the 0/0 cases.
func (c ClassCounts) Precision(class int) float64 {
	if c[class].TruePos == 0 {
		return 0
	}
	return c[class].Precision()
}

func (c ClassCounts) Recall(class int) float64 {
	if c[class].TruePos == 0 {
		return 0
	}
	return c[class].Recall()
}

func (c ClassCounts) F1(class int) float64 {
	if c[class].TruePos == 0 {
		return 0
	}
	return c[class].F1Score()
}

// Weighted averages a per-class score by class support.
func (c ClassCounts) Weighted(score func(class int) float64) float64 {
	total := float64(c.Support(0) + c.Support(1))
	if total == 0 {
		return 0
	}
	return (float64(c.Support(0))*score(0) + float64(c.Support(1))*score(1)) / total
}

// Macro is the unweighted mean of a per-class score.
func (c ClassCounts) Macro(score func(class int) float64) float64 {
	return (score(0) + score(1)) / 2
}

// MCC is the Matthews correlation coefficient, 0 when undefined.
func (c ClassCounts) MCC() float64 {
	tp, tn, fp, fn := float64(c.TP()), float64(c.TN()), float64(c.FP()), float64(c.FN())
	denominator := math.Sqrt((tp + fp) * (tp + fn) * (tn + fp) * (tn + fn))
	if denominator == 0 {
		return 0
	}
	return (tp*tn - fp*fn) / denominator
}

// ROCAUC is the area under the ROC curve of scores against labels.
func ROCAUC(labels []int, scores []float64) (float64, error) {
	fpr, tpr, _, err := ROCCurve(labels, scores)
	if err != nil {
		return 0, err
	}
	return integrate.Trapezoidal(fpr, tpr), nil
}

// ROCCurve returns false and true positive rates ordered by increasing
// false positive rate, together with the matching score thresholds.
func ROCCurve(labels []int, scores []float64) (fpr, tpr, thresholds []float64, err error) {
	if err := checkBothClasses(labels); err != nil {
		return nil, nil, nil, err
	}
	y := make([]float64, len(scores))
	copy(y, scores)
	classes := make([]bool, len(labels))
	for i, l := range labels {
		classes[i] = l == 1
	}
	stat.SortWeightedLabeled(y, classes, nil)
	tpr, fpr, thresholds = stat.ROC(nil, y, classes, nil)
	return fpr, tpr, thresholds, nil
}

// LogLoss is the mean binary cross-entropy of scores against labels.
func LogLoss(labels []int, scores []float64) float64 {
	loss := 0.0
	for i, l := range labels {
		p := math.Min(math.Max(scores[i], LogLossEpsilon), 1-LogLossEpsilon)
		if l == 1 {
			loss -= math.Log(p)
		} else {
			loss -= math.Log(1 - p)
		}
	}
	return loss / float64(len(labels))
}

// PrecisionRecallCurve returns precision and recall for each distinct score
// used as a threshold, ordered from the highest threshold down.
func PrecisionRecallCurve(labels []int, scores []float64) (precision, recall, thresholds []float64, err error) {
	if err := checkBothClasses(labels); err != nil {
		return nil, nil, nil, err
	}
	order := descendingOrder(scores)
	positives := 0
	for _, l := range labels {
		positives += l
	}
	tp, fp := 0, 0
	for k, i := range order {
		if labels[i] == 1 {
			tp++
		} else {
			fp++
		}
		if k+1 < len(order) && scores[order[k+1]] == scores[i] {
			continue
		}
		precision = append(precision, float64(tp)/float64(tp+fp))
		recall = append(recall, float64(tp)/float64(positives))
		thresholds = append(thresholds, scores[i])
	}
	return precision, recall, thresholds, nil
}

// AveragePrecision summarises the precision-recall curve as the recall
// weighted mean of precisions.
func AveragePrecision(labels []int, scores []float64) (float64, error) {
	precision, recall, _, err := PrecisionRecallCurve(labels, scores)
	if err != nil {
		return 0, err
	}
	ap, previous := 0.0, 0.0
	for i := range precision {
		ap += (recall[i] - previous) * precision[i]
		previous = recall[i]
	}
	return ap, nil
}

func checkBothClasses(labels []int) error {
	var seen [2]bool
	for _, l := range labels {
		seen[l] = true
	}
	if !seen[0] || !seen[1] {
		return ErrSingleClass
	}
	return nil
}

// descendingOrder returns the indexes of scores sorted by decreasing score,
// keeping the original order among ties.
func descendingOrder(scores []float64) []int {
	order := make([]int, len(scores))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return scores[order[a]] > scores[order[b]]
	})
	return order
}
