package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/brewvino/placecards/pkg/cards"
	"github.com/brewvino/placecards/pkg/pipeline"
)

// renderCommand creates the render command for drawing a saved layout.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		output     string
		formatsStr string
		title      string
		noCache    bool
	)

	cmd := &cobra.Command{
		Use:   "render [layout.json]",
		Short: "Render a computed layout file",
		Long: `Render a computed layout file.

The render command takes a layout.json file (produced by 'layout' or
'generate -f json') and draws it in the requested formats. No parsing or
placement happens here; the layout file already contains every card
position.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd.Context(), args[0], output, parseFormats(formatsStr), title, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): pdf (default), json, txt (comma-separated)")
	cmd.Flags().StringVar(&title, "title", "", "PDF document title")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

// runRender loads the layout and renders it to the requested formats.
func (c *CLI) runRender(ctx context.Context, input, output string, formats []string, title string, noCache bool) error {
	if err := pipeline.ValidateFormats(formats); err != nil {
		return err
	}

	layout, err := cards.ReadLayoutFile(input)
	if err != nil {
		return fmt.Errorf("load layout %s: %w", input, err)
	}
	c.Logger.Debug("loaded layout", "pages", len(layout.Pages), "cards", layout.SlotCount())

	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts := pipeline.Options{
		Formats: formats,
		Title:   title,
		Logger:  c.Logger,
	}

	p := newProgress(c.Logger)
	artifacts, cacheHit, err := runner.RenderWithCacheInfo(ctx, layout, opts)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}
	p.done(fmt.Sprintf("Rendered %d format(s)", len(formats)))

	printSuccess("Render complete")
	for _, format := range formats {
		path := output
		if path == "" || len(formats) > 1 {
			path = basePath(output, input) + "." + format
		}
		if err := os.WriteFile(path, artifacts[format], 0644); err != nil {
			return fmt.Errorf("write output %s: %w", path, err)
		}
		printFile(path)
	}
	printStats(layout.SlotCount(), len(layout.Pages), cacheHit)

	return nil
}
