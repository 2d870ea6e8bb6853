package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/recera/vangochart/internal/dataset"
	"github.com/recera/vangochart/pkg/barchart"
	"github.com/recera/vangochart/pkg/renderer/html"
)

func newRenderCommand(cfgFile *string) *cobra.Command {
	var output string
	var format string
	var title string

	cmd := &cobra.Command{
		Use:   "render <data-file>",
		Short: "Render a data file to SVG or HTML",
		Long: `Reads labels and values from a CSV, JSON, YAML or XLSX file and writes the
chart as a standalone SVG or as an HTML page. Output goes to stdout unless
--output is given.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, chart, err := loadChart(*cfgFile)
			if err != nil {
				return err
			}
			if title == "" {
				title = cfg.Title
			}
			if format == "" {
				format = formatFromOutput(output)
			}
			return runRender(args[0], output, format, title, chart, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default stdout)")
	cmd.Flags().StringVarP(&format, "format", "f", "", "Output format: svg or html (default from --output extension)")
	cmd.Flags().StringVarP(&title, "title", "t", "", "HTML page title (default from config)")

	return cmd
}

func formatFromOutput(output string) string {
	switch strings.ToLower(filepath.Ext(output)) {
	case ".html", ".htm":
		return "html"
	default:
		return "svg"
	}
}

func runRender(dataPath, output, format, title string, chart *barchart.Chart, stdout io.Writer) error {
	if format != "svg" && format != "html" {
		return fmt.Errorf("unknown format %q (want svg or html)", format)
	}

	s, err := dataset.Load(dataPath)
	if err != nil {
		return fmt.Errorf("failed to load data: %w", err)
	}

	node, err := chart.Render(s.Values, s.Labels)
	if err != nil {
		return fmt.Errorf("failed to render chart: %w", err)
	}

	w := stdout
	toFile := output != "" && output != "-"
	if toFile {
		f, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", output, err)
		}
		defer f.Close()
		w = f
	}

	if format == "html" {
		err = html.WriteDocument(w, html.Page{Title: title, Chart: node})
	} else {
		err = html.NewApplier(w, html.Standalone()).Apply(nil, node)
		if err == nil {
			_, err = io.WriteString(w, "\n")
		}
	}
	if err != nil {
		return fmt.Errorf("failed to write chart: %w", err)
	}

	if toFile {
		log.Printf("✅ Wrote %d bars to %s", s.Len(), output)
	}
	return nil
}
