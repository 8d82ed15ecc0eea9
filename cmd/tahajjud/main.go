package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/pflag"

	"github.com/amirhossein-jamali/tahajjud-scheduler/internal/domain/entity"
	domainerr "github.com/amirhossein-jamali/tahajjud-scheduler/internal/domain/error"
	coreport "github.com/amirhossein-jamali/tahajjud-scheduler/internal/domain/port/core"
	"github.com/amirhossein-jamali/tahajjud-scheduler/internal/domain/port/usecase"
	"github.com/amirhossein-jamali/tahajjud-scheduler/internal/infrastructure/adapter/logger"
	"github.com/amirhossein-jamali/tahajjud-scheduler/internal/infrastructure/adapter/report"
	"github.com/amirhossein-jamali/tahajjud-scheduler/internal/infrastructure/bootstrap"
	"github.com/amirhossein-jamali/tahajjud-scheduler/internal/infrastructure/config"
)

const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
)

// options are the parsed command line flags
type options struct {
	request usecase.ScheduleRequest
	format  string
	quiet   bool
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	opts, err := parseFlags(args, stderr)
	if errors.Is(err, pflag.ErrHelp) {
		return exitOK
	}
	if err != nil {
		fmt.Fprintln(stderr, "Error:", err)
		return exitUsage
	}

	reporter, err := report.New(opts.format)
	if err != nil {
		fmt.Fprintln(stderr, "Error:", err)
		return exitUsage
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintln(stderr, "Failed to load configuration:", err)
		return exitFailure
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(stderr, "Configuration validation failed:", err)
		return exitFailure
	}

	var appLogger coreport.Logger
	if opts.quiet {
		appLogger = logger.NewNoopLogger()
	} else {
		appLogger = bootstrap.NewLogger(cfg.Logger)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	container := bootstrap.New(ctx, cfg, appLogger)
	defer func() { _ = container.Close() }()

	scheduleReport, err := container.ScheduleService.GetSchedule(ctx, opts.request)
	if err != nil {
		fmt.Fprintln(stderr, "Failed to calculate schedule:", describe(err))
		return exitFailure
	}

	if err := reporter.Render(stdout, scheduleReport); err != nil {
		fmt.Fprintln(stderr, "Failed to print schedule:", err)
		return exitFailure
	}

	return exitOK
}

func parseFlags(args []string, stderr io.Writer) (*options, error) {
	fs := pflag.NewFlagSet("tahajjud", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintln(stderr, "Usage: tahajjud [flags]")
		fmt.Fprintln(stderr, "\nPrints tonight's sleep and Tahajjud schedule. Without --lat/--lon the location is detected from your IP address.")
		fmt.Fprintln(stderr, "\nFlags:")
		fs.PrintDefaults()
	}

	lat := fs.Float64("lat", 0, "latitude in decimal degrees (requires --lon)")
	lon := fs.Float64("lon", 0, "longitude in decimal degrees (requires --lat)")
	date := fs.String("date", "", "calendar day of the evening, YYYY-MM-DD (default today)")
	format := fs.StringP("format", "f", "text", "output format: text or json")
	quiet := fs.BoolP("quiet", "q", false, "suppress log output")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	opts := &options{format: *format, quiet: *quiet}

	latSet, lonSet := fs.Changed("lat"), fs.Changed("lon")
	if latSet != lonSet {
		return nil, errors.New("--lat and --lon must be given together")
	}
	if latSet {
		if _, err := entity.NewCoordinates(*lat, *lon); err != nil {
			return nil, err
		}
		opts.request.Latitude = lat
		opts.request.Longitude = lon
	}

	if *date != "" {
		day, err := time.Parse(entity.DateLayout, *date)
		if err != nil {
			return nil, fmt.Errorf("%w: %q, expected YYYY-MM-DD", domainerr.ErrInvalidDate, *date)
		}
		opts.request.Date = &day
	}

	return opts, nil
}

// describe turns domain errors into a one line explanation for the terminal
func describe(err error) string {
	switch {
	case domainerr.IsSourceUnavailableError(err):
		return "prayer times could not be fetched, check your connection and try again (" + err.Error() + ")"
	case domainerr.IsInvalidWindowError(err):
		return "the prayer times returned for this place do not form a usable night (" + err.Error() + ")"
	default:
		return err.Error()
	}
}
