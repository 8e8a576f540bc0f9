package evaluator

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"text/tabwriter"

	"gonum.org/v1/gonum/floats/scalar"
)

// Metric is a named score. Integer metrics hold exact counts.
type Metric struct {
	Name    string
	Value   float64
	Integer bool
}

func rounded(name string, value float64, digits int) Metric {
	return Metric{Name: name, Value: scalar.RoundEven(value, digits)}
}

func count(name string, value int) Metric {
	return Metric{Name: name, Value: float64(value), Integer: true}
}

// Format renders counts without decimals and floats with the shortest
// representation that keeps at least one decimal.
func (m Metric) Format() string {
	if m.Integer {
		return strconv.FormatInt(int64(m.Value), 10)
	}
	switch {
	case math.IsNaN(m.Value):
		return "nan"
	case math.IsInf(m.Value, 1):
		return "inf"
	case math.IsInf(m.Value, -1):
		return "-inf"
	}
	s := strconv.FormatFloat(m.Value, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// Metrics is an ordered set of metrics.
type Metrics []Metric

// Get returns the value of the named metric.
func (m Metrics) Get(name string) (float64, bool) {
	for _, metric := range m {
		if metric.Name == name {
			return metric.Value, true
		}
	}
	return 0, false
}

func (m Metrics) Names() []string {
	names := make([]string, len(m))
	for i, metric := range m {
		names[i] = metric.Name
	}
	return names
}

// WriteTable writes the metrics as a two column table headed by header.
func (m Metrics) WriteTable(w io.Writer, header string) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintf(tw, "\t%s\t\n", header)
	for _, metric := range m {
		fmt.Fprintf(tw, "%s\t%s\t\n", metric.Name, metric.Format())
	}
	return tw.Flush()
}
