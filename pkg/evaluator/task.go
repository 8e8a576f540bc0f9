package evaluator

// Task is the kind of prediction problem being evaluated.
type Task int

const (
	Classification Task = iota
	Regression
)

func (t Task) String() string {
	switch t {
	case Classification:
		return "classification"
	case Regression:
		return "regression"
	default:
		return "unknown"
	}
}

// DetectTask treats targets with more than two distinct values as a
// regression problem and everything else as binary classification.
func DetectTask(yTrue []float64) Task {
	distinct := make(map[float64]struct{}, 3)
	for _, v := range yTrue {
		distinct[v] = struct{}{}
		if len(distinct) > 2 {
			return Regression
		}
	}
	return Classification
}
