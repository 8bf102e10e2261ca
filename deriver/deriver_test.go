package deriver

import (
	"testing"
	"time"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/umahmood/haversine"

	"tripstats/domain/entities/trip"
)

var testColumns = Columns{Timestamp: "Date/Time", Latitude: "Lat", Longitude: "Lon", Base: "Base"}

func newTable(timestamps []string, lats []string, lons []string, bases []string) dataframe.DataFrame {
	return dataframe.New(
		series.New(timestamps, series.String, "Date/Time"),
		series.New(lats, series.String, "Lat"),
		series.New(lons, series.String, "Lon"),
		series.New(bases, series.String, "Base"),
	)
}

func newTestDeriver() *Deriver {
	return NewDeriver(Config{
		Columns:    testColumns,
		Months:     []int{4, 5, 6, 7, 8, 9},
		CityCenter: haversine.Coord{Lat: 40.7128, Lon: -74.0060},
	})
}

func TestDerive_DerivesEveryField(t *testing.T) {
	table := newTable(
		[]string{"4/1/2014 0:11:00", "09/30/2014 22:58:30"},
		[]string{"40.769", "40.7140"},
		[]string{"-73.9549", "-73.9496"},
		[]string{"B02512", "B02764"},
	)

	records, report, err := newTestDeriver().Derive(table)
	require.NoError(t, err)
	require.Len(t, records, 2)

	first := records[0]
	assert.Equal(t, "00:11:00", first.TimeOfDay)
	assert.Equal(t, 1, first.Day)
	assert.Equal(t, "Apr", first.Month.String())
	assert.Equal(t, 2014, first.Year)
	assert.Equal(t, "Tue", first.Weekday.String())
	assert.Equal(t, trip.Hour(0), first.Hour)
	assert.Equal(t, trip.Minute(11), first.Minute)
	assert.Greater(t, first.DistanceKm, 0.0)

	second := records[1]
	assert.Equal(t, "22:58:30", second.TimeOfDay)
	assert.Equal(t, "Sep", second.Month.String())
	assert.Equal(t, trip.Second(30), second.Second)

	assert.Equal(t, 2, report.KeptRows)
	assert.Equal(t, 0, report.DroppedRows)
	assert.Equal(t, 2, report.DistinctDays)
}

func TestDerive_EveryKeptRowIsComplete(t *testing.T) {
	table := newTable(
		[]string{"4/1/2014 0:11:00", "not a date", "", "4/2/2014 13:00:00", "4/3/2014 25:00:00", "4/4/2014 6:00:00"},
		[]string{"40.7", "40.7", "40.7", "NaN", "40.7", "40.7"},
		[]string{"-73.9", "-73.9", "-73.9", "-73.9", "-73.9", "-73.9"},
		[]string{"B1", "B1", "B1", "B1", "B1", ""},
	)

	records, report, err := newTestDeriver().Derive(table)
	require.NoError(t, err)

	for _, record := range records {
		assert.True(t, record.IsComplete())
	}
	assert.Len(t, records, 1)
	assert.Equal(t, 6, report.TotalRows)
	assert.Equal(t, 5, report.DroppedRows)
	assert.Equal(t, 2, report.InvalidTimestamp)
	assert.Equal(t, 3, report.MissingField)
}

func TestDerive_AllMalformedTimestampsYieldEmptyTable(t *testing.T) {
	table := newTable(
		[]string{"2014-04-01 00:11:00", "yesterday", "13/45/2014 0:00:00"},
		[]string{"40.7", "40.7", "40.7"},
		[]string{"-73.9", "-73.9", "-73.9"},
		[]string{"B1", "B1", "B1"},
	)

	records, report, err := newTestDeriver().Derive(table)
	require.NoError(t, err)
	assert.Empty(t, records)
	assert.Equal(t, 3, report.InvalidTimestamp)
}

func TestDerive_MonthOutOfRange(t *testing.T) {
	table := newTable([]string{"1/15/2014 8:00:00"}, []string{"40.7"}, []string{"-73.9"}, []string{"B1"})

	records, report, err := newTestDeriver().Derive(table)
	require.NoError(t, err)
	assert.Empty(t, records)
	assert.Equal(t, 1, report.MonthOutOfRange)
}

func TestDerive_InvalidCoordinates(t *testing.T) {
	table := newTable(
		[]string{"4/1/2014 0:11:00", "4/1/2014 0:12:00"},
		[]string{"north", "95"},
		[]string{"-73.9", "-73.9"},
		[]string{"B1", "B1"},
	)

	records, report, err := newTestDeriver().Derive(table)
	require.NoError(t, err)
	assert.Empty(t, records)
	assert.Equal(t, 2, report.InvalidCoordinate)
}

func TestDerive_MissingColumn(t *testing.T) {
	table := dataframe.New(series.New([]string{"4/1/2014 0:11:00"}, series.String, "Date/Time"))

	_, _, err := newTestDeriver().Derive(table)
	assert.ErrorIs(t, err, ErrMissingColumn)
}

func TestDeriveRow_ParsesOnce(t *testing.T) {
	record, err := newTestDeriver().DeriveRow("04/07/2014 17:45:09", "40.7128", "-74.0060", " B02598 ")
	require.NoError(t, err)

	assert.Equal(t, time.Date(2014, time.April, 7, 17, 45, 9, 0, time.UTC), record.Timestamp)
	assert.Equal(t, "17:45:09", record.TimeOfDay)
	assert.Equal(t, "Mon", record.Weekday.String())
	assert.Equal(t, "B02598", record.Base)
	assert.InDelta(t, 0.0, record.DistanceKm, 1e-6)
}
