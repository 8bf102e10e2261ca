package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tripstats/analyzer/config"
	"tripstats/domain/business/runsummary"
	"tripstats/renderer"
	"tripstats/storage"
)

const csvHeader = `"Date/Time","Lat","Lon","Base"`

type fakeSummaryPublisher struct {
	published []*runsummary.RunSummary
	err       error
}

func (fp *fakeSummaryPublisher) Publish(ctx context.Context, summary *runsummary.RunSummary) error {
	if fp.err != nil {
		return fp.err
	}
	fp.published = append(fp.published, summary)
	return nil
}

func writeExport(t *testing.T, dir string, month string, rows ...string) {
	t.Helper()
	content := csvHeader + "\n" + strings.Join(rows, "\n") + "\n"
	path := filepath.Join(dir, "uber-raw-data-"+month+".csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func newTestConfig(t *testing.T) (*config.AnalyzerConfig, string) {
	t.Helper()
	dir := t.TempDir()

	analyzerConfig := config.DefaultConfig()
	analyzerConfig.Input.Dir = dir
	analyzerConfig.Input.Months = []string{"apr14", "may14"}
	analyzerConfig.Output.Dir = dir
	return analyzerConfig, dir
}

func TestRun_EndToEnd(t *testing.T) {
	analyzerConfig, dir := newTestConfig(t)
	analyzerConfig.Output.ExtraCharts = true
	analyzerConfig.Store.Enabled = true
	analyzerConfig.Store.Path = filepath.Join(dir, "trips.db")

	writeExport(t, dir, "apr14",
		`"4/1/2014 0:11:00",40.769,-73.9549,"B02512"`,
		`"4/1/2014 13:20:00",40.7267,-74.0345,"B02512"`,
		`"not a date",40.7316,-73.9873,"B02512"`,
	)
	writeExport(t, dir, "may14",
		`"5/1/2014 0:02:00",40.7521,-73.9914,"B02598"`,
		`"5/2/2014 22:40:00",40.6965,-73.9715,"B02598"`,
	)

	var out bytes.Buffer
	summary, err := NewAnalyzer(analyzerConfig, &out).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 4, summary.TotalTrips())
	assert.Equal(t, 5, summary.Report.TotalRows)
	assert.Equal(t, 1, summary.Report.InvalidTimestamp)

	require.Len(t, summary.Monthly, 2)
	assert.Equal(t, 2, summary.Monthly[0].Total)
	assert.Equal(t, "May", summary.Monthly[1].Month.String())
	assert.Len(t, summary.MonthWeekday, 3)
	require.Len(t, summary.HourDistance, 3)
	for _, row := range summary.HourDistance {
		// every fixture pickup lies a few km from the city centre
		assert.Greater(t, row.AvgDistanceKm, 0.5)
		assert.Less(t, row.AvgDistanceKm, 20.0)
	}

	console := out.String()
	assert.Contains(t, console, "#CC1011")
	assert.Contains(t, console, "Loaded dataset dimensions: (5, 4)")
	assert.Contains(t, console, "Cleaned dataset dimensions: (4, 13)")

	for _, options := range []renderer.ChartOptions{
		analyzerConfig.Output.Hourly,
		analyzerConfig.Output.MonthHour,
		analyzerConfig.Output.Daily,
		analyzerConfig.Output.Base,
	} {
		assert.FileExists(t, filepath.Join(dir, options.FileName))
	}

	db, err := storage.Connect(analyzerConfig.Store.Path)
	require.NoError(t, err)
	defer db.Close()

	total, err := db.SumTotals(context.Background(), "hourly_trips", summary.GetRunID())
	require.NoError(t, err)
	assert.Equal(t, 4, total)

	total, err = db.SumTotals(context.Background(), "monthly_trips", summary.GetRunID())
	require.NoError(t, err)
	assert.Equal(t, 4, total)

	distanceRows, err := db.CountRows(context.Background(), "hour_distance", summary.GetRunID())
	require.NoError(t, err)
	assert.Equal(t, 3, distanceRows)
}

func TestRun_AllMalformedTimestampsFails(t *testing.T) {
	analyzerConfig, dir := newTestConfig(t)
	writeExport(t, dir, "apr14", `"yesterday",40.769,-73.9549,"B02512"`)
	writeExport(t, dir, "may14", `"5/40/2014 0:02:00",40.7521,-73.9914,"B02598"`)

	_, err := NewAnalyzer(analyzerConfig, &bytes.Buffer{}).Run(context.Background())
	assert.ErrorIs(t, err, renderer.ErrEmptyAggregate)
	assert.NoFileExists(t, filepath.Join(dir, analyzerConfig.Output.Hourly.FileName))
	assert.NoFileExists(t, filepath.Join(dir, analyzerConfig.Output.MonthHour.FileName))
}

func TestRun_MissingInputFails(t *testing.T) {
	analyzerConfig, dir := newTestConfig(t)
	writeExport(t, dir, "apr14", `"4/1/2014 0:11:00",40.769,-73.9549,"B02512"`)

	_, err := NewAnalyzer(analyzerConfig, &bytes.Buffer{}).Run(context.Background())
	assert.Error(t, err)
	assert.NoFileExists(t, filepath.Join(dir, analyzerConfig.Output.Hourly.FileName))
}

func TestRun_PublishesSummary(t *testing.T) {
	analyzerConfig, dir := newTestConfig(t)
	analyzerConfig.Rabbit.Enabled = true
	writeExport(t, dir, "apr14", `"4/1/2014 0:11:00",40.769,-73.9549,"B02512"`)
	writeExport(t, dir, "may14", `"5/1/2014 7:02:00",40.7521,-73.9914,"B02598"`)

	_, err := NewAnalyzer(analyzerConfig, &bytes.Buffer{}).Run(context.Background())
	assert.ErrorIs(t, err, ErrNoPublisher)

	publisher := &fakeSummaryPublisher{}
	summary, err := NewAnalyzer(analyzerConfig, &bytes.Buffer{}).WithPublisher(publisher).Run(context.Background())
	require.NoError(t, err)
	require.Len(t, publisher.published, 1)
	assert.Equal(t, summary.GetRunID(), publisher.published[0].GetRunID())

	failing := &fakeSummaryPublisher{err: errors.New("broker down")}
	_, err = NewAnalyzer(analyzerConfig, &bytes.Buffer{}).WithPublisher(failing).Run(context.Background())
	assert.Error(t, err)
}

func TestInitLogger(t *testing.T) {
	assert.NoError(t, InitLogger("debug"))
	assert.Error(t, InitLogger("loud"))
}
