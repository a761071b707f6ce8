package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/brewvino/placecards/pkg/cards"
	"github.com/brewvino/placecards/pkg/errors"
	"github.com/brewvino/placecards/pkg/pipeline"
)

// layoutCommand creates the layout command for computing card layouts.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output    string
		stylePath string
		service   string
		noCache   bool
	)

	cmd := &cobra.Command{
		Use:   "layout [bookings.csv]",
		Short: "Compute a card layout from a bookings CSV",
		Long: `Compute a card layout from a bookings CSV.

The layout command runs the parse and layout stages only and writes the
computed card positions as a layout.json file (same format as
'generate -f json'). The file is self-contained and can be rendered later
with the 'render' command.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLayout(cmd.Context(), args[0], output, stylePath, service, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.json)")
	cmd.Flags().StringVarP(&stylePath, "style", "s", "", "style config file (JSON or TOML)")
	cmd.Flags().StringVar(&service, "service", "", "only include bookings for this service (lunch, dinner)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

// runLayout parses the bookings, computes the layout, and writes output.
func (c *CLI) runLayout(ctx context.Context, input, output, stylePath, service string, noCache bool) error {
	csvData, err := os.ReadFile(input)
	if err != nil {
		return errors.Wrap(errors.ErrCodeFileNotFound, err, "read bookings %s", input)
	}

	cfg, err := loadStyle(stylePath)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
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
		return fmt.Errorf("parse bookings: %w", err)
	}

	spinner := newSpinnerWithContext(ctx, "Computing layout...")
	spinner.Start()

	layout, cacheHit, err := runner.GenerateLayoutWithCacheInfo(ctx, records, opts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return fmt.Errorf("compute layout: %w", err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	outputPath := output
	if outputPath == "" {
		base := strings.TrimSuffix(input, filepath.Ext(input))
		outputPath = base + ".layout.json"
	}

	if err := cards.WriteLayoutFile(layout, outputPath); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	printSuccess("Layout complete")
	printFile(outputPath)
	printStats(layout.SlotCount(), len(layout.Pages), cacheHit)
	printNewline()
	printNextStep("Render", "placecards render "+outputPath)

	return nil
}
