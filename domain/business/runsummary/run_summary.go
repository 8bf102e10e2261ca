package runsummary

import (
	"time"

	"tripstats/aggregator"
	"tripstats/deriver"
	"tripstats/domain/entities"
)

const (
	summaryType = "trip-summary"
	senderStage = "analyzer"
)

// RunSummary contains the results of an analyzer run
// + Metadata: metadata added to the structure
// + GeneratedAt: moment the run finished aggregating
// + InputFiles: files read, in load order
// + Report: rows kept and dropped by the completeness filter
// + Hourly, MonthHour: the two charted aggregate tables
// + Monthly, MonthWeekday, HourDistance: supplementary tables, set with SetSupplementary
type RunSummary struct {
	Metadata     entities.Metadata            `json:"metadata"`
	GeneratedAt  time.Time                    `json:"generated_at"`
	InputFiles   []string                     `json:"input_files"`
	Report       deriver.ValidationReport     `json:"report"`
	Hourly       []aggregator.HourlyRow       `json:"hourly"`
	MonthHour    []aggregator.MonthHourRow    `json:"month_hour"`
	Monthly      []aggregator.MonthlyRow      `json:"monthly"`
	MonthWeekday []aggregator.MonthWeekdayRow `json:"month_weekday"`
	HourDistance []aggregator.HourDistanceRow `json:"hour_distance"`
}

func NewRunSummary(runID string, generatedAt time.Time, inputFiles []string, report deriver.ValidationReport, hourly []aggregator.HourlyRow, monthHour []aggregator.MonthHourRow) *RunSummary {
	return &RunSummary{
		Metadata:    entities.NewMetadata(runID, summaryType, senderStage, ""),
		GeneratedAt: generatedAt,
		InputFiles:  inputFiles,
		Report:      report,
		Hourly:      hourly,
		MonthHour:   monthHour,
	}
}

func (rs *RunSummary) SetSupplementary(monthly []aggregator.MonthlyRow, monthWeekday []aggregator.MonthWeekdayRow, hourDistance []aggregator.HourDistanceRow) {
	rs.Monthly = monthly
	rs.MonthWeekday = monthWeekday
	rs.HourDistance = hourDistance
}

func (rs *RunSummary) GetRunID() string {
	return rs.Metadata.GetRunID()
}

// TotalTrips returns the number of trips behind the aggregates
func (rs *RunSummary) TotalTrips() int {
	return aggregator.TotalHourly(rs.Hourly)
}
