package report

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"metricsreport/pkg/evaluator"
	"metricsreport/pkg/plots"
)

var (
	classificationTrue = []float64{0, 1, 1, 0, 1, 0, 0, 1, 0, 1, 0, 1, 0}
	classificationPred = []float64{0.2, 0.8, 0.9, 0.1, 0.6, 0.3, 0.4, 0.7, 0.2, 0.9, 0.8, 0.4, 0.9}
	regressionTrue     = []float64{1, 2, 3, 4, 5}
	regressionPred     = []float64{1.1, 2.3, 3.4, 4.2, 4.8}
)

// smallSize keeps rendering fast in tests.
var smallSize = plots.Size{Width: 4, Height: 3}

func newTestReport(t *testing.T, yTrue, yPred []float64) *MetricsReport {
	t.Helper()
	r, err := New(yTrue, yPred, DefaultThreshold)
	require.NoError(t, err)
	r.FigSize = smallSize
	r.Viewer = &FileViewer{Dir: t.TempDir()}
	return r
}

type heading struct {
	level int
	text  string
}

func markdownHeadings(t *testing.T, src []byte) []heading {
	t.Helper()
	doc := goldmark.New().Parser().Parse(text.NewReader(src))
	var headings []heading
	err := ast.Walk(doc, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		h, ok := node.(*ast.Heading)
		if !ok || !entering {
			return ast.WalkContinue, nil
		}
		var b strings.Builder
		for child := h.FirstChild(); child != nil; child = child.NextSibling() {
			if txt, ok := child.(*ast.Text); ok {
				b.Write(txt.Segment.Value(src))
			}
		}
		headings = append(headings, heading{level: h.Level, text: b.String()})
		return ast.WalkSkipChildren, nil
	})
	require.NoError(t, err)
	return headings
}

func TestNew(t *testing.T) {
	r, err := New(classificationTrue, classificationPred, 0.5)
	require.NoError(t, err)
	require.Equal(t, evaluator.Classification, r.Task())
	require.Equal(t, plots.DefaultSize, r.FigSize)
	require.NotNil(t, r.Viewer)

	_, err = New([]float64{0, 1}, []float64{0.1}, 0.5)
	require.ErrorIs(t, err, evaluator.ErrLengthMismatch)

	_, err = New(nil, nil, 0.5)
	require.ErrorIs(t, err, evaluator.ErrEmptyInput)
}

func TestMetricsAreStable(t *testing.T) {
	r := newTestReport(t, classificationTrue, classificationPred)
	first := r.Metrics()
	require.NoError(t, r.SaveReport(filepath.Join(t.TempDir(), "out"), DefaultName))
	require.Equal(t, first, r.Metrics())
	auc, ok := r.Metrics().Get("AUC")
	require.True(t, ok)
	require.Equal(t, 0.7857, auc)
}

func TestSaveReport_Classification(t *testing.T) {
	r := newTestReport(t, classificationTrue, classificationPred)
	folder := filepath.Join(t.TempDir(), "report")
	require.NoError(t, r.SaveReport(folder, "metrics"))

	for _, name := range []string{
		"class_distribution", "confusion_matrix", "precision_recall_curve", "roc_curve",
		"ks_statistic", "calibration_curve", "cumulative_gain", "lift_curve",
	} {
		require.FileExists(t, filepath.Join(folder, "plots", name+".png"))
	}

	html, err := os.ReadFile(filepath.Join(folder, "metrics.html"))
	require.NoError(t, err)
	page := string(html)
	require.Contains(t, page, "<style>")
	require.Contains(t, page, "<h1>Metrics Report</h1>")
	require.Contains(t, page, "Type: classification")
	require.Contains(t, page, "threshold: 0.5")
	require.Contains(t, page, "<td>AUC</td><td>0.7857</td>")
	require.Contains(t, page, "<td>TN</td><td>5</td>")
	require.Contains(t, page, "<td>Count of samples</td><td>13</td>")
	require.Contains(t, page, "<td>Class balance %</td><td>46.2</td>")
	require.Contains(t, page, `<img src="./plots/roc_curve.png">`)
	require.Equal(t, 8, strings.Count(page, "<img "))

	md, err := os.ReadFile(filepath.Join(folder, "metrics.md"))
	require.NoError(t, err)
	require.NotContains(t, string(md), "font-family")
	require.Contains(t, string(md), "0.7857")
	require.Contains(t, string(md), "./plots/lift_curve.png")
	require.Contains(t, string(md), "| AUC")
	require.NotContains(t, string(md), "====")

	headings := markdownHeadings(t, md)
	require.NotEmpty(t, headings)
	require.Equal(t, heading{level: 1, text: "Metrics Report"}, headings[0])
	require.Contains(t, headings, heading{level: 4, text: "Type: classification"})
	require.Contains(t, headings, heading{level: 2, text: "Plots"})
}

func TestSaveReport_Regression(t *testing.T) {
	r := newTestReport(t, regressionTrue, regressionPred)
	folder := filepath.Join(t.TempDir(), "report")
	require.NoError(t, r.SaveReport(folder, DefaultName))

	entries, err := os.ReadDir(filepath.Join(folder, "plots"))
	require.NoError(t, err)
	var files []string
	for _, e := range entries {
		files = append(files, e.Name())
	}
	require.ElementsMatch(t, []string{"residual_plot.png", "predicted_vs_actual.png"}, files)

	html, err := os.ReadFile(filepath.Join(folder, DefaultName+".html"))
	require.NoError(t, err)
	page := string(html)
	require.Contains(t, page, "Type: regression")
	require.Contains(t, page, "<td>Mean of target</td><td>3.0</td>")
	require.Contains(t, page, "<td>Std of target</td><td>1.41</td>")
	require.Contains(t, page, "<td>Count of samples</td><td>5</td>")
	require.Contains(t, page, "<td>Mean Squared Error</td><td>0.068</td>")
	require.FileExists(t, filepath.Join(folder, DefaultName+".md"))
}

func TestSaveReport_ReplacesFolder(t *testing.T) {
	r := newTestReport(t, classificationTrue, classificationPred)
	folder := filepath.Join(t.TempDir(), "report")
	require.NoError(t, r.SaveReport(folder, DefaultName))

	stray := filepath.Join(folder, "stray.txt")
	strayPlot := filepath.Join(folder, "plots", "stray.png")
	require.NoError(t, os.WriteFile(stray, []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(strayPlot, []byte("x"), 0o644))

	require.NoError(t, r.SaveReport(folder, DefaultName))
	assert.NoFileExists(t, stray)
	assert.NoFileExists(t, strayPlot)

	html, err := os.ReadFile(filepath.Join(folder, DefaultName+".html"))
	require.NoError(t, err)
	require.NotContains(t, string(html), "stray.png")
}

func TestSaveReport_CurrentFolder(t *testing.T) {
	dir := t.TempDir()
	keep := filepath.Join(dir, "keep.txt")
	require.NoError(t, os.WriteFile(keep, []byte("x"), 0o644))
	t.Chdir(dir)

	r := newTestReport(t, regressionTrue, regressionPred)
	require.NoError(t, r.SaveReport(".", "current"))
	require.FileExists(t, keep)
	require.FileExists(t, filepath.Join(dir, "current.html"))
	require.FileExists(t, filepath.Join(dir, "current.md"))
	require.FileExists(t, filepath.Join(dir, "plots", "residual_plot.png"))
}

func TestPrintMetrics(t *testing.T) {
	r := newTestReport(t, classificationTrue, classificationPred)
	var b bytes.Buffer
	require.NoError(t, r.PrintMetrics(&b))
	require.Contains(t, b.String(), "AUC")
	require.Contains(t, b.String(), "0.7857")
	require.Contains(t, b.String(), "score")
}

func TestPrintReport(t *testing.T) {
	r := newTestReport(t, classificationTrue, classificationPred)
	var b bytes.Buffer
	require.NoError(t, r.PrintReport(&b))
	out := b.String()
	require.Contains(t, out, "Classification Report")
	require.Contains(t, out, "Lift:")

	viewer := r.Viewer.(*FileViewer)
	entries, err := os.ReadDir(viewer.Dir)
	require.NoError(t, err)
	require.Len(t, entries, 8)
}

func TestPlots(t *testing.T) {
	r := newTestReport(t, regressionTrue, regressionPred)
	figures, err := r.Plots()
	require.NoError(t, err)
	require.Len(t, figures, 2)
	require.Equal(t, "residual_plot", figures[0].Name)
	require.Equal(t, smallSize, figures[1].Size)
}

func TestFileViewer_TempDir(t *testing.T) {
	r := newTestReport(t, regressionTrue, regressionPred)
	figures, err := r.Plots()
	require.NoError(t, err)

	v := &FileViewer{}
	require.NoError(t, v.Show(figures[0]))
	t.Cleanup(func() { os.RemoveAll(v.Dir) })
	require.NotEmpty(t, v.Dir)
	require.FileExists(t, filepath.Join(v.Dir, "residual_plot.png"))
}
