package deriver

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-gota/gota/dataframe"
	log "github.com/sirupsen/logrus"
	"github.com/umahmood/haversine"

	"tripstats/domain/entities/trip"
	"tripstats/utils"
)

const (
	stageName = "deriver"

	// DefaultTimestampLayout accepts MM/DD/YYYY HH:MM:SS, with month, day and hour optionally unpadded
	DefaultTimestampLayout = "1/2/2006 15:04:05"
)

var missingValues = []string{"", "NA", "NaN", "<nil>"}

// Columns names of the source columns in the loaded table
type Columns struct {
	Timestamp string
	Latitude  string
	Longitude string
	Base      string
}

// Config parameters of the feature derivation
// + TimestampLayout: time.Parse layout of the timestamp column
// + Months: months (1-12) a trip may belong to. Empty means every month
// + CityCenter: reference point for the trip distance
type Config struct {
	Columns         Columns
	TimestampLayout string
	Months          []int
	CityCenter      haversine.Coord
}

// ValidationReport summarises the rows removed by the completeness filter
type ValidationReport struct {
	TotalRows         int `json:"total_rows"`
	KeptRows          int `json:"kept_rows"`
	DroppedRows       int `json:"dropped_rows"`
	InvalidTimestamp  int `json:"invalid_timestamp"`
	MissingField      int `json:"missing_field"`
	InvalidCoordinate int `json:"invalid_coordinate"`
	MonthOutOfRange   int `json:"month_out_of_range"`
	DistinctDays      int `json:"distinct_days"`
}

func (vr ValidationReport) String() string {
	return fmt.Sprintf(
		"total=%d kept=%d dropped=%d (invalid_timestamp=%d missing_field=%d invalid_coordinate=%d month_out_of_range=%d) distinct_days=%d",
		vr.TotalRows, vr.KeptRows, vr.DroppedRows, vr.InvalidTimestamp, vr.MissingField, vr.InvalidCoordinate, vr.MonthOutOfRange, vr.DistinctDays,
	)
}

type Deriver struct {
	config Config
}

func NewDeriver(config Config) *Deriver {
	if config.TimestampLayout == "" {
		config.TimestampLayout = DefaultTimestampLayout
	}
	return &Deriver{
		config: config,
	}
}

func (d *Deriver) getLogMessage(method string, message string, err error) string {
	if err != nil {
		return fmt.Sprintf("[stage: %s][method: %s][status: ERROR] %s: %s", stageName, method, message, err.Error())
	}
	return fmt.Sprintf("[stage: %s][method: %s][status: OK] %s", stageName, method, message)
}

// Derive builds a TripRecord per row and keeps only the complete ones. Rows are dropped silently;
// the returned report tells how many were removed and why.
func (d *Deriver) Derive(table dataframe.DataFrame) ([]trip.TripRecord, ValidationReport, error) {
	timestamps, err := d.column(table, d.config.Columns.Timestamp)
	if err != nil {
		return nil, ValidationReport{}, err
	}
	latitudes, err := d.column(table, d.config.Columns.Latitude)
	if err != nil {
		return nil, ValidationReport{}, err
	}
	longitudes, err := d.column(table, d.config.Columns.Longitude)
	if err != nil {
		return nil, ValidationReport{}, err
	}
	bases, err := d.column(table, d.config.Columns.Base)
	if err != nil {
		return nil, ValidationReport{}, err
	}

	report := ValidationReport{TotalRows: len(timestamps)}
	days := utils.DateSet{}
	records := make([]trip.TripRecord, 0, len(timestamps))

	for idx := range timestamps {
		record, err := d.DeriveRow(timestamps[idx], latitudes[idx], longitudes[idx], bases[idx])
		if err != nil {
			report.count(err)
			continue
		}
		days.Add(record.Timestamp)
		records = append(records, *record)
	}

	report.KeptRows = len(records)
	report.DroppedRows = report.TotalRows - report.KeptRows
	report.DistinctDays = days.Len()

	log.Info(d.getLogMessage("Derive", report.String(), nil))
	return records, report, nil
}

// DeriveRow parses one row. The timestamp is parsed once and every derived field comes from that value.
func (d *Deriver) DeriveRow(timestampStr string, latitudeStr string, longitudeStr string, base string) (*trip.TripRecord, error) {
	if isMissing(timestampStr) {
		return nil, fmt.Errorf("%w: timestamp", ErrMissingField)
	}
	if isMissing(latitudeStr) || isMissing(longitudeStr) {
		return nil, fmt.Errorf("%w: coordinates", ErrMissingField)
	}
	if isMissing(base) {
		return nil, fmt.Errorf("%w: base", ErrMissingField)
	}

	timestamp, err := time.Parse(d.config.TimestampLayout, strings.TrimSpace(timestampStr))
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidTimestamp, timestampStr)
	}

	latitude, err := strconv.ParseFloat(strings.TrimSpace(latitudeStr), 64)
	if err != nil || latitude < -90 || latitude > 90 {
		return nil, fmt.Errorf("%w: %s", ErrInvalidLatitude, latitudeStr)
	}

	longitude, err := strconv.ParseFloat(strings.TrimSpace(longitudeStr), 64)
	if err != nil || longitude < -180 || longitude > 180 {
		return nil, fmt.Errorf("%w: %s", ErrInvalidLongitude, longitudeStr)
	}

	if len(d.config.Months) > 0 && !utils.ContainsInt(int(timestamp.Month()), d.config.Months) {
		return nil, fmt.Errorf("%w: %s", ErrMonthOutOfRange, timestamp.Month())
	}

	record, err := trip.NewTripRecord(latitude, longitude, strings.TrimSpace(base), timestamp)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrMissingField, err)
	}
	if !record.IsComplete() {
		return nil, fmt.Errorf("%w: derived fields", ErrMissingField)
	}

	_, record.DistanceKm = haversine.Distance(d.config.CityCenter, haversine.Coord{Lat: latitude, Lon: longitude})
	return record, nil
}

func (d *Deriver) column(table dataframe.DataFrame, name string) ([]string, error) {
	col := table.Col(name)
	if col.Err != nil {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumn, name)
	}
	return col.Records(), nil
}

func (vr *ValidationReport) count(err error) {
	switch {
	case errors.Is(err, ErrInvalidTimestamp):
		vr.InvalidTimestamp += 1
	case errors.Is(err, ErrInvalidLatitude), errors.Is(err, ErrInvalidLongitude):
		vr.InvalidCoordinate += 1
	case errors.Is(err, ErrMonthOutOfRange):
		vr.MonthOutOfRange += 1
	default:
		vr.MissingField += 1
	}
}

func isMissing(value string) bool {
	return utils.ContainsString(strings.TrimSpace(value), missingValues)
}
