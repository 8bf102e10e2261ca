package aggregator

import "tripstats/domain/entities/trip"

// HourlyRow number of trips that began in an hour of the day
type HourlyRow struct {
	Hour  trip.Hour `json:"hour"`
	Total int       `json:"total"`
}

// MonthHourRow number of trips that began in an hour of the day of a month
type MonthHourRow struct {
	Month     trip.Month     `json:"month"`
	Hour      trip.Hour      `json:"hour"`
	Total     int            `json:"total"`
	HourGroup trip.HourGroup `json:"hour_group"`
}

type DailyRow struct {
	Day   int `json:"day"`
	Total int `json:"total"`
}

type MonthlyRow struct {
	Month trip.Month `json:"month"`
	Total int        `json:"total"`
}

type MonthWeekdayRow struct {
	Month   trip.Month   `json:"month"`
	Weekday trip.Weekday `json:"weekday"`
	Total   int          `json:"total"`
}

type BaseMonthRow struct {
	Base  string     `json:"base"`
	Month trip.Month `json:"month"`
	Total int        `json:"total"`
}

// BaseRow trips dispatched by a base over every month
type BaseRow struct {
	Base  string `json:"base"`
	Total int    `json:"total"`
}

// HourDistanceRow mean distance from the city centre of the trips that began in an hour
type HourDistanceRow struct {
	Hour          trip.Hour `json:"hour"`
	Trips         int       `json:"trips"`
	AvgDistanceKm float64   `json:"avg_distance_km"`
}

type monthHourKey struct {
	month trip.Month
	hour  trip.Hour
}

type monthWeekdayKey struct {
	month   trip.Month
	weekday trip.Weekday
}

type baseMonthKey struct {
	base  string
	month trip.Month
}
