package main

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/facilities-pm/backend/internal/forecast"
	"github.com/facilities-pm/backend/internal/models"
	"github.com/facilities-pm/backend/internal/service"
)

type reportOptions struct {
	Input     string
	Format    string
	Now       string
	LookAhead int
	Periods   int
	Building  string
	Verbose   bool
}

// reportOutput is the document pmctl prints.
type reportOutput struct {
	Metrics         service.PMMetrics      `json:"metrics"`
	Recommendations service.ScheduleResult `json:"recommendations"`
	Calendar        models.CalendarStats   `json:"calendar"`
	CalendarError   string                 `json:"calendar_error,omitempty"`
}

func newReportCommand() *cobra.Command {
	opts := reportOptions{}
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Compute metrics, recommendations and calendar stats for a CSV export",
		Long: `Compute metrics, recommendations and calendar stats for a CSV export.

The first row must be a header. Column names are matched loosely, so exports
using "WO Status", "Sched Start Date" or "Bldg" work unchanged.

Examples:
  pmctl report --input snapshot.csv
  pmctl report --input snapshot.csv --now 2024-05-01 --format yaml
  pmctl report --input snapshot.csv --building "North Tower" --look-ahead 14`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(cmd.Context(), opts, cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	cmd.Flags().StringVarP(&opts.Input, "input", "i", "-", "CSV file to read, - for stdin")
	cmd.Flags().StringVarP(&opts.Format, "format", "o", "json", "Output format: json, yaml")
	cmd.Flags().StringVar(&opts.Now, "now", "", "Reference time (YYYY-MM-DD or RFC3339), defaults to the current time")
	cmd.Flags().IntVar(&opts.LookAhead, "look-ahead", service.DefaultLookAheadDays, "Days ahead considered for recommendations")
	cmd.Flags().IntVar(&opts.Periods, "periods", forecast.DefaultPeriods, "Forecast months")
	cmd.Flags().StringVar(&opts.Building, "building", "", "Restrict to one building (id or name)")
	cmd.Flags().BoolVarP(&opts.Verbose, "verbose", "v", false, "Log analysis steps to stderr")

	return cmd
}

func runReport(ctx context.Context, opts reportOptions, stdin io.Reader, stdout, stderr io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	format := strings.ToLower(opts.Format)
	if format != "json" && format != "yaml" {
		return fmt.Errorf("unsupported format %q (use json or yaml)", opts.Format)
	}

	in := stdin
	if opts.Input != "" && opts.Input != "-" {
		f, err := os.Open(opts.Input)
		if err != nil {
			return fmt.Errorf("open input: %w", err)
		}
		defer f.Close()
		in = f
	}
	rows, err := readCSV(in)
	if err != nil {
		return err
	}

	filters := models.Filters{
		Building:      opts.Building,
		LookAheadDays: opts.LookAhead,
		Periods:       opts.Periods,
	}
	if opts.Now != "" {
		now, err := parseNow(opts.Now)
		if err != nil {
			return err
		}
		filters.ReferenceTime = &now
	} else {
		now := time.Now()
		filters.ReferenceTime = &now
	}

	level := zerolog.WarnLevel
	if opts.Verbose {
		level = zerolog.DebugLevel
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: stderr, NoColor: true}).Level(level).With().Timestamp().Logger()

	engine := &service.Engine{
		Fetcher:    service.StaticFetcher{Rows: rows},
		Forecaster: forecast.New(forecast.SeasonalRegression{}, logger),
		Logger:     logger,
	}

	calendar := engine.GetPMCalendarData(ctx, filters)
	out := reportOutput{
		Metrics:         engine.GetPMMetrics(ctx, filters),
		Recommendations: engine.ScheduleFor(ctx, filters),
		Calendar:        calendar.Stats,
		CalendarError:   calendar.Error,
	}
	return writeOutput(stdout, format, out)
}

// readCSV returns one map per data row keyed by the header. Short rows leave
// the trailing columns unset.
func readCSV(r io.Reader) ([]map[string]any, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	var rows []map[string]any
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read line %d: %w", line, err)
		}
		row := make(map[string]any, len(header))
		for i, col := range header {
			if i < len(rec) {
				row[col] = rec[i]
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func parseNow(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --now %q: want YYYY-MM-DD or RFC3339", s)
	}
	return t, nil
}

func writeOutput(w io.Writer, format string, out reportOutput) error {
	if format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}
	// Round-trip through JSON so YAML keys match the API field names.
	b, err := json.Marshal(out)
	if err != nil {
		return err
	}
	var doc any
	if err := json.Unmarshal(b, &doc); err != nil {
		return err
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	defer enc.Close()
	return enc.Encode(doc)
}
