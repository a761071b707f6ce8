package cli

import (
	"bytes"
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/brewvino/placecards/pkg/booking"
	"github.com/brewvino/placecards/pkg/errors"
	"github.com/brewvino/placecards/pkg/pipeline"
	"github.com/brewvino/placecards/pkg/style"
)

// generateFlags holds the command-line flags for the generate command.
type generateFlags struct {
	output      string // output file (single format) or base path
	stylePath   string // style config file (JSON or TOML)
	service     string // lunch/dinner filter
	title       string // PDF document title
	interactive bool   // pick the service period from a list
	noCache     bool
	refresh     bool
}

// generateCommand creates the generate command, the full CSV-to-PDF run.
func (c *CLI) generateCommand() *cobra.Command {
	var formatsStr string
	var flags generateFlags

	cmd := &cobra.Command{
		Use:   "generate [bookings.csv]",
		Short: "Generate placecards from a bookings CSV",
		Long: `Generate placecards from a bookings CSV.

Reads a reservation export (columns: name, table_number, booking_time, and
optionally party_size and service), lays each booking out as one card on a
paginated grid, and renders the result. The default output is a PDF next to
the input file.

Results are cached locally for faster subsequent runs.

Examples:
  placecards generate bookings.csv
  placecards generate bookings.csv --service dinner -o dinner.pdf
  placecards generate bookings.csv --style wedding.toml -f pdf,json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runGenerate(cmd.Context(), args[0], parseFormats(formatsStr), flags)
		},
	}

	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "output file (single format) or base path")
	cmd.Flags().StringVarP(&flags.stylePath, "style", "s", "", "style config file (JSON or TOML)")
	cmd.Flags().StringVar(&flags.service, "service", "", "only include bookings for this service (lunch, dinner)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): pdf (default), json, txt (comma-separated)")
	cmd.Flags().StringVar(&flags.title, "title", "", "PDF document title")
	cmd.Flags().BoolVarP(&flags.interactive, "interactive", "i", false, "pick the service period interactively")
	cmd.Flags().BoolVar(&flags.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&flags.refresh, "refresh", false, "recompute even when cached")

	return cmd
}

// runGenerate executes the full pipeline and writes one file per format.
func (c *CLI) runGenerate(ctx context.Context, input string, formats []string, flags generateFlags) error {
	if err := pipeline.ValidateFormats(formats); err != nil {
		return err
	}

	csvData, err := os.ReadFile(input)
	if err != nil {
		return errors.Wrap(errors.ErrCodeFileNotFound, err, "read bookings %s", input)
	}

	cfg, err := loadStyle(flags.stylePath)
	if err != nil {
		return err
	}

	service := flags.service
	if flags.interactive && service == "" {
		service, err = c.pickService(csvData)
		if err != nil {
			return err
		}
	}

	runner, err := c.newRunner(flags.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts := pipeline.Options{
		CSV:     csvData,
		Service: service,
		Style:   cfg,
		Formats: formats,
		Title:   flags.title,
		Refresh: flags.refresh,
		Logger:  c.Logger,
	}

	spinner := newSpinnerWithContext(ctx, "Generating placecards...")
	spinner.Start()

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Generation failed")
		return err
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	if result.Stats.RecordCount == 0 {
		printWarning("No bookings matched; nothing to generate")
		return nil
	}

	printSuccess("Placecards ready")
	for _, format := range formats {
		path := flags.output
		if path == "" || len(formats) > 1 {
			path = basePath(flags.output, input) + "." + format
		}
		if err := os.WriteFile(path, result.Artifacts[format], 0644); err != nil {
			return fmt.Errorf("write output %s: %w", path, err)
		}
		printFile(path)
	}
	printStats(result.Stats.RecordCount, result.Stats.PageCount, result.CacheInfo.RenderHit)

	return nil
}

// loadStyle reads the style config file, or returns the empty config when no
// path was given.
func loadStyle(path string) (style.Config, error) {
	if path == "" {
		return style.Config{}, nil
	}
	return style.LoadFile(path)
}

// pickService parses the CSV just enough to list its service periods and
// shows an interactive picker.
func (c *CLI) pickService(csvData []byte) (string, error) {
	records, err := booking.ReadCSV(bytes.NewReader(csvData))
	if err != nil {
		return "", err
	}

	services := booking.Services(records)
	if len(services) == 0 {
		printDetail("No service column found; including all bookings")
		return "", nil
	}

	m := NewServiceListModel(services)
	finalModel, err := tea.NewProgram(m).Run()
	if err != nil {
		return "", err
	}

	fm, ok := finalModel.(ServiceListModel)
	if !ok || fm.Selected == "" {
		printDetail("No selection made; including all bookings")
		return "", nil
	}
	if fm.Selected == serviceAll {
		return "", nil
	}
	return fm.Selected, nil
}
