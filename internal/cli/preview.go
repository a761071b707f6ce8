package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/brewvino/placecards/pkg/cards"
	"github.com/brewvino/placecards/pkg/errors"
	"github.com/brewvino/placecards/pkg/pipeline"
)

// previewCardWidth is the interior width of a previewed card, in characters.
const previewCardWidth = 26

// Card preview styles.
var (
	previewBorder = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorDim).
			Padding(0, 1).
			Width(previewCardWidth)

	previewHeader = lipgloss.NewStyle().Bold(true).Foreground(colorYellow).
			Width(previewCardWidth - 2).Align(lipgloss.Center)
	previewName = lipgloss.NewStyle().Bold(true).Foreground(colorCyan).
			Width(previewCardWidth - 2).Align(lipgloss.Center)
	previewLine = lipgloss.NewStyle().Foreground(colorWhite).
			Width(previewCardWidth - 2).Align(lipgloss.Center)
	previewDim = lipgloss.NewStyle().Foreground(colorGray)
)

// previewCommand creates the preview command for terminal output.
func (c *CLI) previewCommand() *cobra.Command {
	var (
		stylePath string
		service   string
	)

	cmd := &cobra.Command{
		Use:   "preview [bookings.csv]",
		Short: "Preview the placecards in the terminal",
		Long: `Preview the placecards in the terminal.

Runs the same parse and layout stages as 'generate' and draws every card as
a styled box, grouped by page, without writing any file. Useful for checking
names, table numbers, and pagination before printing.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runPreview(cmd.Context(), args[0], stylePath, service)
		},
	}

	cmd.Flags().StringVarP(&stylePath, "style", "s", "", "style config file (JSON or TOML)")
	cmd.Flags().StringVar(&service, "service", "", "only include bookings for this service (lunch, dinner)")

	return cmd
}

// runPreview computes the layout and prints each page as a row of card boxes.
func (c *CLI) runPreview(ctx context.Context, input, stylePath, service string) error {
	csvData, err := os.ReadFile(input)
	if err != nil {
		return errors.Wrap(errors.ErrCodeFileNotFound, err, "read bookings %s", input)
	}

	cfg, err := loadStyle(stylePath)
	if err != nil {
		return err
	}

	// Preview always recomputes; caching a terminal preview buys nothing.
	runner, err := c.newRunner(true)
	if err != nil {
		return err
	}
	defer runner.Close()

	opts := pipeline.Options{
		CSV:     csvData,
		Service: service,
		Style:   cfg,
		Logger:  c.Logger,
	}

	records, err := runner.Parse(ctx, opts)
	if err != nil {
		return err
	}
	layout, err := runner.GenerateLayout(ctx, records, opts)
	if err != nil {
		return err
	}

	if len(layout.Pages) == 0 {
		printWarning("No bookings matched; nothing to preview")
		return nil
	}

	for _, page := range layout.Pages {
		fmt.Println(StyleTitle.Render(fmt.Sprintf("Page %d", page.Number)))

		perRow := layout.Style.CardsPerRow
		for start := 0; start < len(page.Slots); start += perRow {
			end := start + perRow
			if end > len(page.Slots) {
				end = len(page.Slots)
			}

			row := make([]string, 0, end-start)
			for _, slot := range page.Slots[start:end] {
				row = append(row, renderPreviewCard(slot.Content))
			}
			fmt.Println(lipgloss.JoinHorizontal(lipgloss.Top, row...))
		}
		printNewline()
	}

	printStats(layout.SlotCount(), len(layout.Pages), false)
	return nil
}

// renderPreviewCard draws one card as a bordered box.
func renderPreviewCard(content cards.Content) string {
	lines := []string{
		previewHeader.Render(content.Header),
		previewName.Render(content.Title),
		previewLine.Render(content.Table),
	}
	if content.Time != "" {
		lines = append(lines, previewLine.Render(content.Time))
	}
	if content.Left != "" || content.Right != "" {
		gap := previewCardWidth - 2 - len([]rune(content.Left)) - len([]rune(content.Right))
		if gap < 1 {
			gap = 1
		}
		corners := content.Left + fmt.Sprintf("%*s", gap, "") + content.Right
		lines = append(lines, previewDim.Render(corners))
	}

	return previewBorder.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}
