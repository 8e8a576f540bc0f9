package report

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"

	"metricsreport/pkg/plots"
)

// Viewer displays figures produced by PlotMetrics.
type Viewer interface {
	Show(fig *plots.Figure) error
}

// FileViewer renders each figure as a PNG into Dir and logs its path.
// An empty Dir is replaced by a fresh temporary directory on first use.
type FileViewer struct {
	Dir string
}

func (v *FileViewer) Show(fig *plots.Figure) error {
	if v.Dir == "" {
		dir, err := os.MkdirTemp("", "metricsreport-")
		if err != nil {
			return fmt.Errorf("error creating plot directory: %w", err)
		}
		v.Dir = dir
	}
	path, err := fig.Save(v.Dir)
	if err != nil {
		return err
	}
	log.Info().Str("plot", fig.Name).Str("path", path).Msg("plot rendered")
	return nil
}
