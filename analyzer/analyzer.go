package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"tripstats/aggregator"
	"tripstats/analyzer/config"
	"tripstats/deriver"
	"tripstats/domain/business/runsummary"
	"tripstats/loader"
	"tripstats/renderer"
	"tripstats/storage"
)

const (
	stageName = "analyzer"

	// source columns plus time of day, day, month, year, weekday, hour, minute, second and distance
	cleanedColumns = 13
)

var (
	ErrNoPublisher           = errors.New("rabbit is enabled but no publisher was set")
	ErrInconsistentAggregate = errors.New("aggregate totals do not match the cleaned rows")
)

// SummaryPublisher sends the summary of a finished run somewhere else
type SummaryPublisher interface {
	Publish(ctx context.Context, summary *runsummary.RunSummary) error
}

type Analyzer struct {
	config    *config.AnalyzerConfig
	out       io.Writer
	publisher SummaryPublisher
}

func NewAnalyzer(analyzerConfig *config.AnalyzerConfig, out io.Writer) *Analyzer {
	return &Analyzer{
		config: analyzerConfig,
		out:    out,
	}
}

// WithPublisher sets the publisher used when rabbit.enabled is true
func (a *Analyzer) WithPublisher(publisher SummaryPublisher) *Analyzer {
	a.publisher = publisher
	return a
}

func (a *Analyzer) getLogMessage(method string, message string, err error) string {
	if err != nil {
		return fmt.Sprintf("[stage: %s][method: %s][status: ERROR] %s: %s", stageName, method, message, err.Error())
	}
	return fmt.Sprintf("[stage: %s][method: %s][status: OK] %s", stageName, method, message)
}

// Run loads, cleans and aggregates the exports, writes the charts and hands the summary to the enabled sinks.
// Any error aborts the run.
func (a *Analyzer) Run(ctx context.Context) (*runsummary.RunSummary, error) {
	a.printPalette()

	paths := a.config.Paths()
	loaded, err := loader.NewLoader(a.config.LoaderConfig()).Load(paths)
	if err != nil {
		return nil, err
	}
	rows, cols := loaded.Dims()
	fmt.Fprintf(a.out, "Loaded dataset dimensions: (%d, %d)\n", rows, cols)

	records, report, err := deriver.NewDeriver(a.config.DeriverConfig()).Derive(loaded.Table)
	if err != nil {
		return nil, err
	}
	fmt.Fprintf(a.out, "Cleaned dataset dimensions: (%d, %d)\n", len(records), cleanedColumns)

	hourly := aggregator.ByHour(records)
	monthHour := aggregator.ByMonthHour(records)
	if aggregator.TotalHourly(hourly) != len(records) || aggregator.TotalMonthHour(monthHour) != len(records) {
		return nil, fmt.Errorf("%w: %d hourly, %d month-hour, %d rows", ErrInconsistentAggregate, aggregator.TotalHourly(hourly), aggregator.TotalMonthHour(monthHour), len(records))
	}
	a.printHourly(hourly)

	chartRenderer := renderer.NewRenderer(a.config.Output.Dir)
	if _, err := chartRenderer.HourlyChart(hourly, a.config.Output.Hourly); err != nil {
		return nil, err
	}
	if _, err := chartRenderer.MonthHourChart(monthHour, a.config.Output.MonthHour); err != nil {
		return nil, err
	}
	if a.config.Output.ExtraCharts {
		if _, err := chartRenderer.DailyChart(aggregator.ByDay(records), a.config.Output.Daily); err != nil {
			return nil, err
		}
		if _, err := chartRenderer.BaseChart(aggregator.ByBase(aggregator.ByBaseMonth(records)), a.config.Output.Base); err != nil {
			return nil, err
		}
	}

	summary := runsummary.NewRunSummary(uuid.NewString(), time.Now(), paths, report, hourly, monthHour)
	summary.SetSupplementary(aggregator.ByMonth(records), aggregator.ByMonthWeekday(records), aggregator.DistanceByHour(records))
	log.Info(a.getLogMessage("Run", fmt.Sprintf("run %s aggregated %s trips", summary.GetRunID(), humanize.Comma(int64(summary.TotalTrips()))), nil))

	if err := a.store(ctx, summary); err != nil {
		return nil, err
	}

	if a.config.Rabbit.Enabled {
		if a.publisher == nil {
			return nil, ErrNoPublisher
		}
		if err := a.publisher.Publish(ctx, summary); err != nil {
			return nil, err
		}
	}

	return summary, nil
}

func (a *Analyzer) store(ctx context.Context, summary *runsummary.RunSummary) error {
	if !a.config.Store.Enabled {
		return nil
	}

	db, err := storage.Connect(a.config.Store.Path)
	if err != nil {
		log.Error(a.getLogMessage("store", "error connecting to the store", err))
		return err
	}
	defer db.Close()

	if err := db.EnsureSchema(ctx); err != nil {
		return err
	}
	return db.SaveRun(ctx, summary)
}

func (a *Analyzer) printPalette() {
	fmt.Fprintf(a.out, "Colour palette: [%s]\n", strings.Join(a.config.Palette, ", "))
}

func (a *Analyzer) printHourly(rows []aggregator.HourlyRow) {
	fmt.Fprintf(a.out, "%4s  %10s\n", "Hour", "Total")
	for _, row := range rows {
		fmt.Fprintf(a.out, "%4d  %10s\n", row.Hour, humanize.Comma(int64(row.Total)))
	}
}
