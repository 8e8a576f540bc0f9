package plots

import (
	"fmt"

	"gonum.org/v1/plot/plotter"
)

// Residuals scatters predictions against y - ŷ.
func Residuals(yTrue, yPred []float64, size Size) (*Figure, error) {
	fig := newFigure("residual_plot", "Residual Plot", "Predicted Values", "Residuals", size)
	residuals := make([]float64, len(yTrue))
	for i := range yTrue {
		residuals[i] = yTrue[i] - yPred[i]
	}
	if err := addScatter(fig, toXYs(yPred, residuals)); err != nil {
		return nil, err
	}
	return fig, nil
}

// PredictedVsActual scatters predictions against true values.
func PredictedVsActual(yTrue, yPred []float64, size Size) (*Figure, error) {
	fig := newFigure("predicted_vs_actual", "Predicted vs Actual", "Predicted Values", "Actual Values", size)
	if err := addScatter(fig, toXYs(yPred, yTrue)); err != nil {
		return nil, err
	}
	return fig, nil
}

func addScatter(fig *Figure, xys plotter.XYs) error {
	scatter, err := plotter.NewScatter(xys)
	if err != nil {
		return fmt.Errorf("error building %s scatter: %w", fig.Name, err)
	}
	fig.Plot.Add(scatter)
	return nil
}
