package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/recera/vangochart/internal/config"
	"github.com/recera/vangochart/pkg/barchart"
)

var (
	version = "0.1.0"
	commit  = "dev"
	date    = "unknown"
)

func main() {
	var cfgFile string

	var rootCmd = &cobra.Command{
		Use:   "vangochart",
		Short: "vangochart - horizontal bar charts as SVG",
		Long: `vangochart renders labelled values as a horizontal bar chart. Charts can be
written to SVG or HTML files, served with live reload while the data file
changes, or previewed in the terminal.`,
		Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "Config file (default ./vangochart.yaml)")

	rootCmd.AddCommand(newRenderCommand(&cfgFile))
	rootCmd.AddCommand(newServeCommand(&cfgFile))
	rootCmd.AddCommand(newPreviewCommand(&cfgFile))

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadChart reads the configuration and builds the chart renderer for it.
func loadChart(cfgFile string) (*config.Config, *barchart.Chart, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, nil, err
	}
	return cfg, barchart.New(cfg.ChartOptions()), nil
}
