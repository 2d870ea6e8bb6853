package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/recera/vangochart/internal/dataset"
	"github.com/recera/vangochart/internal/terminal"
)

func newPreviewCommand(cfgFile *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "preview <data-file>",
		Short: "Preview a chart in the terminal",
		Long: `Draws the chart with block characters using the same scales as the SVG
output. Press r to reload the data file and q to quit.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, chart, err := loadChart(*cfgFile)
			if err != nil {
				return err
			}

			path := args[0]
			model := terminal.NewModel(cfg.Title, chart, func() (*dataset.Series, error) {
				return dataset.Load(path)
			})

			p := tea.NewProgram(model, tea.WithAltScreen())
			if _, err := p.Run(); err != nil {
				return fmt.Errorf("preview failed: %w", err)
			}
			return nil
		},
	}

	return cmd
}
