package plots

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
)

// Format is the image format figures are encoded with.
const Format = "png"

// Size is a figure size in inches.
type Size struct {
	Width  float64
	Height float64
}

// DefaultSize matches the usual 12x10 inch report figure.
var DefaultSize = Size{Width: 12, Height: 10}

func (s Size) lengths() (vg.Length, vg.Length) {
	return vg.Length(s.Width) * vg.Inch, vg.Length(s.Height) * vg.Inch
}

// Figure is a single rendered chart. Figures share no drawing state, so a
// caller may keep, save or drop each one independently.
type Figure struct {
	Name string
	Plot *plot.Plot
	Size Size
}

func newFigure(name, title, xLabel, yLabel string, size Size) *Figure {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xLabel
	p.Y.Label.Text = yLabel
	p.Legend.Top = true
	return &Figure{Name: name, Plot: p, Size: size}
}

// FileName is the name the figure is saved under.
func (f *Figure) FileName() string {
	return f.Name + "." + Format
}

// WriteTo encodes the figure as PNG.
func (f *Figure) WriteTo(w io.Writer) (int64, error) {
	width, height := f.Size.lengths()
	writer, err := f.Plot.WriterTo(width, height, Format)
	if err != nil {
		return 0, fmt.Errorf("error encoding figure %s: %w", f.Name, err)
	}
	return writer.WriteTo(w)
}

// Save writes the figure into dir and returns the file path.
func (f *Figure) Save(dir string) (string, error) {
	path := filepath.Join(dir, f.FileName())
	width, height := f.Size.lengths()
	if err := f.Plot.Save(width, height, path); err != nil {
		return "", fmt.Errorf("error saving figure %s: %w", f.Name, err)
	}
	return path, nil
}

// Spec names a chart and knows how to render it.
type Spec struct {
	Name   string
	Render func(size Size) (*Figure, error)
}

// SaveAll removes and recreates dir, then renders and saves every spec in
// order. It returns the written file names.
func SaveAll(dir string, specs []Spec, size Size) ([]string, error) {
	if err := os.RemoveAll(dir); err != nil {
		return nil, fmt.Errorf("error removing plots directory %s: %w", dir, err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("error creating plots directory %s: %w", dir, err)
	}
	files := make([]string, 0, len(specs))
	for _, spec := range specs {
		fig, err := spec.Render(size)
		if err != nil {
			return files, fmt.Errorf("error rendering %s: %w", spec.Name, err)
		}
		if _, err := fig.Save(dir); err != nil {
			return files, err
		}
		files = append(files, fig.FileName())
	}
	return files, nil
}
