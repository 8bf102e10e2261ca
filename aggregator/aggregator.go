package aggregator

import (
	"sort"
	"strconv"

	"tripstats/domain/business/distanceaccumulator"
	"tripstats/domain/business/tripcounter"
	"tripstats/domain/entities/trip"
)

// ByHour counts trips per hour of the day. One row per hour present in records, ascending.
func ByHour(records []trip.TripRecord) []HourlyRow {
	counters := tripcounter.NewCounterSet[trip.Hour]()
	for idx := range records {
		counters.Count(records[idx].Hour)
	}

	rows := make([]HourlyRow, 0, counters.Len())
	for _, counter := range counters.Counters() {
		rows = append(rows, HourlyRow{Hour: counter.GetKey(), Total: counter.GetCounter()})
	}

	sort.Slice(rows, func(i, j int) bool {
		return rows[i].Hour < rows[j].Hour
	})
	return rows
}

// ByMonthHour counts trips per (month, hour) pair and attaches the hour bucket of each pair.
// Rows are sorted chronologically by month, then by hour.
func ByMonthHour(records []trip.TripRecord) []MonthHourRow {
	counters := tripcounter.NewCounterSet[monthHourKey]()
	for idx := range records {
		counters.Count(monthHourKey{month: records[idx].Month, hour: records[idx].Hour})
	}

	rows := make([]MonthHourRow, 0, counters.Len())
	for _, counter := range counters.Counters() {
		key := counter.GetKey()
		rows = append(rows, MonthHourRow{
			Month:     key.month,
			Hour:      key.hour,
			Total:     counter.GetCounter(),
			HourGroup: trip.GroupForHour(key.hour),
		})
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Month != rows[j].Month {
			return rows[i].Month < rows[j].Month
		}
		return rows[i].Hour < rows[j].Hour
	})
	return rows
}

// ByDay counts trips per day of the month
func ByDay(records []trip.TripRecord) []DailyRow {
	counters := tripcounter.NewCounterSet[int]()
	for idx := range records {
		counters.Count(records[idx].Day)
	}

	rows := make([]DailyRow, 0, counters.Len())
	for _, counter := range counters.Counters() {
		rows = append(rows, DailyRow{Day: counter.GetKey(), Total: counter.GetCounter()})
	}

	sort.Slice(rows, func(i, j int) bool {
		return rows[i].Day < rows[j].Day
	})
	return rows
}

func ByMonth(records []trip.TripRecord) []MonthlyRow {
	counters := tripcounter.NewCounterSet[trip.Month]()
	for idx := range records {
		counters.Count(records[idx].Month)
	}

	rows := make([]MonthlyRow, 0, counters.Len())
	for _, counter := range counters.Counters() {
		rows = append(rows, MonthlyRow{Month: counter.GetKey(), Total: counter.GetCounter()})
	}

	sort.Slice(rows, func(i, j int) bool {
		return rows[i].Month < rows[j].Month
	})
	return rows
}

func ByMonthWeekday(records []trip.TripRecord) []MonthWeekdayRow {
	counters := tripcounter.NewCounterSet[monthWeekdayKey]()
	for idx := range records {
		counters.Count(monthWeekdayKey{month: records[idx].Month, weekday: records[idx].Weekday})
	}

	rows := make([]MonthWeekdayRow, 0, counters.Len())
	for _, counter := range counters.Counters() {
		key := counter.GetKey()
		rows = append(rows, MonthWeekdayRow{Month: key.month, Weekday: key.weekday, Total: counter.GetCounter()})
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Month != rows[j].Month {
			return rows[i].Month < rows[j].Month
		}
		return rows[i].Weekday < rows[j].Weekday
	})
	return rows
}

func ByBaseMonth(records []trip.TripRecord) []BaseMonthRow {
	counters := tripcounter.NewCounterSet[baseMonthKey]()
	for idx := range records {
		counters.Count(baseMonthKey{base: records[idx].Base, month: records[idx].Month})
	}

	rows := make([]BaseMonthRow, 0, counters.Len())
	for _, counter := range counters.Counters() {
		key := counter.GetKey()
		rows = append(rows, BaseMonthRow{Base: key.base, Month: key.month, Total: counter.GetCounter()})
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Base != rows[j].Base {
			return rows[i].Base < rows[j].Base
		}
		return rows[i].Month < rows[j].Month
	})
	return rows
}

// ByBase folds ByBaseMonth rows into one total per base, sorted by base
func ByBase(rows []BaseMonthRow) []BaseRow {
	merged := make(map[string]*tripcounter.TripCounter[string])
	var bases []string
	for _, row := range rows {
		partial := &tripcounter.TripCounter[string]{Key: row.Base, Counter: row.Total}
		current, ok := merged[row.Base]
		if !ok {
			merged[row.Base] = partial
			bases = append(bases, row.Base)
			continue
		}
		merged[row.Base] = current.Merge(partial)
	}

	sort.Strings(bases)
	result := make([]BaseRow, 0, len(bases))
	for _, base := range bases {
		result = append(result, BaseRow{Base: base, Total: merged[base].GetCounter()})
	}
	return result
}

// DistanceByHour averages the distance from the city centre of the trips of each hour
func DistanceByHour(records []trip.TripRecord) []HourDistanceRow {
	accumulators := make(map[trip.Hour]*distanceaccumulator.DistanceAccumulator)
	for idx := range records {
		hour := records[idx].Hour
		accumulator, ok := accumulators[hour]
		if !ok {
			accumulator = distanceaccumulator.NewDistanceAccumulator(strconv.Itoa(int(hour)))
			accumulators[hour] = accumulator
		}
		accumulator.UpdateAccumulator(records[idx].DistanceKm)
	}

	rows := make([]HourDistanceRow, 0, len(accumulators))
	for hour, accumulator := range accumulators {
		rows = append(rows, HourDistanceRow{
			Hour:          hour,
			Trips:         accumulator.Counter,
			AvgDistanceKm: accumulator.GetAverageDistance(),
		})
	}

	sort.Slice(rows, func(i, j int) bool {
		return rows[i].Hour < rows[j].Hour
	})
	return rows
}

// TotalHourly returns the sum of the hourly counts
func TotalHourly(rows []HourlyRow) int {
	total := 0
	for _, row := range rows {
		total += row.Total
	}
	return total
}

func TotalMonthHour(rows []MonthHourRow) int {
	total := 0
	for _, row := range rows {
		total += row.Total
	}
	return total
}
