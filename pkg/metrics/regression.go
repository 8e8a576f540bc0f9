package metrics

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// ErrNegativeTarget is returned by MeanSquaredLogError for negative inputs.
var ErrNegativeTarget = errors.New("mean squared log error cannot be used when targets contain negative values")

func MeanSquaredError(yTrue, yPred []float64) float64 {
	sum := 0.0
	for i := range yTrue {
		d := yTrue[i] - yPred[i]
		sum += d * d
	}
	return sum / float64(len(yTrue))
}

func MeanAbsoluteError(yTrue, yPred []float64) float64 {
	sum := 0.0
	for i := range yTrue {
		sum += math.Abs(yTrue[i] - yPred[i])
	}
	return sum / float64(len(yTrue))
}

// MeanSquaredLogError compares log(1+y) of both inputs.
func MeanSquaredLogError(yTrue, yPred []float64) (float64, error) {
	if floats.Min(yTrue) < 0 || floats.Min(yPred) < 0 {
		return 0, ErrNegativeTarget
	}
	sum := 0.0
	for i := range yTrue {
		d := math.Log1p(yTrue[i]) - math.Log1p(yPred[i])
		sum += d * d
	}
	return sum / float64(len(yTrue)), nil
}

func R2(yTrue, yPred []float64) float64 {
	return stat.RSquaredFrom(yPred, yTrue, nil)
}

// ExplainedVariance is 1 - Var(y - ŷ) / Var(y), with population variances.
func ExplainedVariance(yTrue, yPred []float64) float64 {
	residuals := Residuals(yTrue, yPred)
	_, residualVariance := stat.PopMeanVariance(residuals, nil)
	_, targetVariance := stat.PopMeanVariance(yTrue, nil)
	if targetVariance == 0 {
		if residualVariance == 0 {
			return 1
		}
		return 0
	}
	return 1 - residualVariance/targetVariance
}

func MaxError(yTrue, yPred []float64) float64 {
	maxErr := 0.0
	for i := range yTrue {
		maxErr = math.Max(maxErr, math.Abs(yTrue[i]-yPred[i]))
	}
	return maxErr
}

// MeanAbsolutePercentageError divides by the raw true values, so a zero
// target yields an infinite (or NaN) result.
func MeanAbsolutePercentageError(yTrue, yPred []float64) float64 {
	sum := 0.0
	for i := range yTrue {
		sum += math.Abs((yTrue[i] - yPred[i]) / yTrue[i])
	}
	return sum / float64(len(yTrue)) * 100
}

// Residuals returns y - ŷ.
func Residuals(yTrue, yPred []float64) []float64 {
	result := make([]float64, len(yTrue))
	floats.SubTo(result, yTrue, yPred)
	return result
}

// ClipNegative floors values at zero.
func ClipNegative(values []float64) []float64 {
	result := make([]float64, len(values))
	for i, v := range values {
		result[i] = math.Max(v, 0)
	}
	return result
}
