package metrics

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
)

// KSCurve holds the cumulative score distributions of both classes.
type KSCurve struct {
	Thresholds []float64
	// Negative and Positive are the fractions of each class scoring at or
	// below the matching threshold.
	Negative []float64
	Positive []float64

	Statistic float64
	Threshold float64
}

// KolmogorovSmirnov computes the KS statistic between the score
// distributions of class 0 and class 1.
func KolmogorovSmirnov(labels []int, scores []float64) (KSCurve, error) {
	if err := checkBothClasses(labels); err != nil {
		return KSCurve{}, err
	}
	var negatives, positives []float64
	for i, l := range labels {
		if l == 1 {
			positives = append(positives, scores[i])
		} else {
			negatives = append(negatives, scores[i])
		}
	}
	sort.Float64s(negatives)
	sort.Float64s(positives)

	thresholds := uniqueSorted(scores)
	curve := KSCurve{
		Thresholds: thresholds,
		Negative:   make([]float64, len(thresholds)),
		Positive:   make([]float64, len(thresholds)),
	}
	for i, t := range thresholds {
		curve.Negative[i] = cumulativeFraction(negatives, t)
		curve.Positive[i] = cumulativeFraction(positives, t)
		if d := math.Abs(curve.Negative[i] - curve.Positive[i]); d > curve.Statistic {
			curve.Statistic = d
			curve.Threshold = t
		}
	}
	return curve, nil
}

// CalibrationCurve bins scores into nBins equal-width bins over [0,1] and
// returns, for every non-empty bin, the mean score and the fraction of
// positives.
func CalibrationCurve(labels []int, scores []float64, nBins int) (meanPredicted, fractionPositive []float64) {
	edges := floats.Span(make([]float64, nBins+1), 0, 1)
	inner := edges[1:nBins]
	sums := make([]float64, nBins)
	hits := make([]float64, nBins)
	counts := make([]float64, nBins)
	for i, s := range scores {
		bin := sort.SearchFloat64s(inner, s)
		sums[bin] += s
		hits[bin] += float64(labels[i])
		counts[bin]++
	}
	for bin := range counts {
		if counts[bin] == 0 {
			continue
		}
		meanPredicted = append(meanPredicted, sums[bin]/counts[bin])
		fractionPositive = append(fractionPositive, hits[bin]/counts[bin])
	}
	return meanPredicted, fractionPositive
}

// CumulativeGain ranks samples by decreasing score and returns the fraction
// of samples taken against the fraction of the class captured. Both slices
// start at 0.
func CumulativeGain(isClass []bool, scores []float64) (fraction, gain []float64) {
	order := descendingOrder(scores)
	total := 0.0
	for _, c := range isClass {
		if c {
			total++
		}
	}
	fraction = make([]float64, len(order)+1)
	gain = make([]float64, len(order)+1)
	captured := 0.0
	for k, i := range order {
		if isClass[i] {
			captured++
		}
		fraction[k+1] = float64(k+1) / float64(len(order))
		if total > 0 {
			gain[k+1] = captured / total
		}
	}
	return fraction, gain
}

// LiftCurve is the cumulative gain divided by the fraction of samples taken.
func LiftCurve(isClass []bool, scores []float64) (fraction, lift []float64) {
	fraction, gain := CumulativeGain(isClass, scores)
	fraction = fraction[1:]
	lift = make([]float64, len(fraction))
	for i := range fraction {
		lift[i] = gain[i+1] / fraction[i]
	}
	return fraction, lift
}

// TopFraction is the share of highest-scored samples used by Lift.
const TopFraction = 0.1

// Lift is the positive rate among the top decile of scores divided by the
// overall positive rate. At least one sample is always taken.
func Lift(labels []int, scores []float64) (float64, error) {
	if err := checkBothClasses(labels); err != nil {
		return 0, err
	}
	order := descendingOrder(scores)
	top := int(math.Ceil(TopFraction * float64(len(order))))
	if top < 1 {
		top = 1
	}
	topPositives, positives := 0, 0
	for k, i := range order {
		if labels[i] == 1 {
			positives++
			if k < top {
				topPositives++
			}
		}
	}
	baseRate := float64(positives) / float64(len(labels))
	return float64(topPositives) / float64(top) / baseRate, nil
}

// Classes splits binary labels into per-class membership masks.
func Classes(labels []int) (negative, positive []bool) {
	negative = make([]bool, len(labels))
	positive = make([]bool, len(labels))
	for i, l := range labels {
		positive[i] = l == 1
		negative[i] = l == 0
	}
	return negative, positive
}

func uniqueSorted(values []float64) []float64 {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	result := make([]float64, 0, len(sorted))
	for i, v := range sorted {
		if i == 0 || v != sorted[i-1] {
			result = append(result, v)
		}
	}
	return result
}

// cumulativeFraction is the fraction of sorted values that are <= t.
func cumulativeFraction(sorted []float64, t float64) float64 {
	n := sort.Search(len(sorted), func(i int) bool { return sorted[i] > t })
	return float64(n) / float64(len(sorted))
}
