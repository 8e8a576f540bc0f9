package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"metricsreport/pkg"
	"metricsreport/pkg/config"
	"metricsreport/pkg/report"
)

// dataFlags are shared by every command. Values set on the command line
// take precedence over the config file.
type dataFlags struct {
	inputFile  string
	configFile string
	cfg        config.Config
}

func (d *dataFlags) register(cmd *cobra.Command) {
	defaults := config.Default()
	cmd.Flags().StringVarP(&d.inputFile, "input", "i", "", "name of the CSV or XLSX file holding the predictions")
	cmd.Flags().StringVarP(&d.configFile, "config", "", "", "YAML config file (optional)")
	cmd.Flags().StringVarP(&d.cfg.TrueColumn, "true-column", "", defaults.TrueColumn, "column holding the true values")
	cmd.Flags().StringVarP(&d.cfg.PredColumn, "pred-column", "", defaults.PredColumn, "column holding the predictions")
	cmd.Flags().StringVarP(&d.cfg.Sheet, "sheet", "", "", "XLSX sheet to read (defaults to the first sheet)")
	cmd.Flags().Float64VarP(&d.cfg.Threshold, "threshold", "t", defaults.Threshold, "classification threshold")
	cmd.Flags().Float64VarP(&d.cfg.FigSize.Width, "fig-width", "", defaults.FigSize.Width, "plot width in inches")
	cmd.Flags().Float64VarP(&d.cfg.FigSize.Height, "fig-height", "", defaults.FigSize.Height, "plot height in inches")

	_ = cmd.MarkFlagRequired("input")
}

// resolve loads the config file, if any, and applies the flags the user set.
func (d *dataFlags) resolve(cmd *cobra.Command) (config.Config, error) {
	cfg := config.Default()
	if d.configFile != "" {
		var err error
		if cfg, err = config.Load(d.configFile); err != nil {
			return cfg, err
		}
	}
	flags := cmd.Flags()
	overrides := map[string]func(){
		"true-column": func() { cfg.TrueColumn = d.cfg.TrueColumn },
		"pred-column": func() { cfg.PredColumn = d.cfg.PredColumn },
		"sheet":       func() { cfg.Sheet = d.cfg.Sheet },
		"threshold":   func() { cfg.Threshold = d.cfg.Threshold },
		"fig-width":   func() { cfg.FigSize.Width = d.cfg.FigSize.Width },
		"fig-height":  func() { cfg.FigSize.Height = d.cfg.FigSize.Height },
		"folder":      func() { cfg.Folder = d.cfg.Folder },
		"name":        func() { cfg.Name = d.cfg.Name },
	}
	for name, apply := range overrides {
		if flags.Lookup(name) != nil && flags.Changed(name) {
			apply()
		}
	}
	return cfg, cfg.Validate()
}

func ReportCommand() *cobra.Command {
	var flags dataFlags

	var cmd = &cobra.Command{
		Use:   "report -i dataFile [-f folder] [-n name]",
		Short: "Computes the metrics of the provided predictions and saves an HTML and Markdown report with plots",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.resolve(cmd)
			if err != nil {
				return err
			}
			return pkg.SaveReport(flags.inputFile, cfg)
		},
	}

	flags.register(cmd)
	defaults := config.Default()
	cmd.Flags().StringVarP(&flags.cfg.Folder, "folder", "f", defaults.Folder, "folder to save the report to")
	cmd.Flags().StringVarP(&flags.cfg.Name, "name", "n", defaults.Name, "file name of the report, without extension")

	return cmd
}

func PrintCommand() *cobra.Command {
	var flags dataFlags
	var plotDir string

	var cmd = &cobra.Command{
		Use:   "print -i dataFile [--plot-dir dir]",
		Short: "Prints the full metrics report and renders the plots",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.resolve(cmd)
			if err != nil {
				return err
			}
			return pkg.PrintReport(flags.inputFile, cfg, &report.FileViewer{Dir: plotDir}, cmd.OutOrStdout())
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&plotDir, "plot-dir", "p", "", "directory to render plots to (optional, uses a temporary directory if not present)")

	return cmd
}

func MetricsCommand() *cobra.Command {
	var flags dataFlags

	var cmd = &cobra.Command{
		Use:   "metrics -i dataFile",
		Short: "Prints the metrics table of the provided predictions",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.resolve(cmd)
			if err != nil {
				return err
			}
			return pkg.PrintMetrics(flags.inputFile, cfg, cmd.OutOrStdout())
		},
	}

	flags.register(cmd)

	return cmd
}

var logLevel string
var logFormat string

func main() {

	Main := &cobra.Command{Use: "metricsreport", PersistentPreRun: setupLogging}

	Main.PersistentFlags().StringVarP(&logLevel, "log-level", "", "info", "Logging level: info error or debug")
	Main.PersistentFlags().StringVarP(&logFormat, "log-format", "", "pretty", "Logging format: pretty or json")

	Main.AddCommand(ReportCommand())
	Main.AddCommand(PrintCommand())
	Main.AddCommand(MetricsCommand())

	if err := Main.Execute(); err != nil {
		os.Exit(1)
	}
}

func setupLogging(cmd *cobra.Command, args []string) {

	switch logLevel {
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "info":
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	default:
		panic("Invalid logging level specified")
	}

	switch logFormat {
	case "pretty":
		setupPrettyLogging()
	case "json":
	default:
		panic("Invalid log format specified")

	}

}

func setupPrettyLogging() {
	writer := zerolog.ConsoleWriter{Out: os.Stderr}
	writer.FormatFieldValue = func(i interface{}) string {
		switch v := i.(type) {
		case json.Number:
			val, _ := v.Float64()
			return fmt.Sprintf("%.4f", val)
		default:
			return fmt.Sprintf("%s", i)
		}

	}
	log.Logger = log.Output(writer)

}
