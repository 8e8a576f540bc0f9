package metrics

import (
	"fmt"
	"io"
)

// ClassNames labels class 0 and class 1 in text reports.
var ClassNames = [2]string{"Class 0", "Class 1"}

const reportNameWidth = 12

// WriteClassificationReport writes per-class precision, recall, F1 and
// support followed by accuracy, macro and weighted averages.
func WriteClassificationReport(w io.Writer, counts ClassCounts) error {
	if _, err := fmt.Fprintf(w, "%*s  %9s %9s %9s %9s\n\n", reportNameWidth, "", "precision", "recall", "f1-score", "support"); err != nil {
		return err
	}
	for class, name := range ClassNames {
		if err := writeReportRow(w, name, counts.Precision(class), counts.Recall(class), counts.F1(class), counts.Support(class)); err != nil {
			return err
		}
	}
	total := counts.Total()
	if _, err := fmt.Fprintf(w, "\n%*s  %9s %9s %9.2f %9d\n", reportNameWidth, "accuracy", "", "", counts.Accuracy(), total); err != nil {
		return err
	}
	if err := writeReportRow(w, "macro avg",
		counts.Macro(counts.Precision), counts.Macro(counts.Recall), counts.Macro(counts.F1), total); err != nil {
		return err
	}
	return writeReportRow(w, "weighted avg",
		counts.Weighted(counts.Precision), counts.Weighted(counts.Recall), counts.Weighted(counts.F1), total)
}

func writeReportRow(w io.Writer, name string, precision, recall, f1 float64, support int) error {
	_, err := fmt.Fprintf(w, "%*s  %9.2f %9.2f %9.2f %9d\n", reportNameWidth, name, precision, recall, f1, support)
	return err
}
