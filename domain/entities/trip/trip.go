package trip

import (
	"errors"
	"time"
)

// TripRecord struct that contains one ride request and the features derived from its pickup time
// + Latitude, Longitude: pickup coordinates
// + Base: TLC base code that dispatched the trip
// + Timestamp: pickup date and time, parsed once
// + TimeOfDay: pickup time formatted as HH:MM:SS
// + Day, Month, Year, Weekday: calendar fields of the pickup date
// + Hour, Minute, Second: time-of-day fields of the pickup time
// + DistanceKm: great-circle distance from the configured city centre
type TripRecord struct {
	Latitude   float64   `json:"latitude"`
	Longitude  float64   `json:"longitude"`
	Base       string    `json:"base"`
	Timestamp  time.Time `json:"timestamp"`
	TimeOfDay  string    `json:"time_of_day"`
	Day        int       `json:"day"`
	Month      Month     `json:"month"`
	Year       int       `json:"year"`
	Weekday    Weekday   `json:"weekday"`
	Hour       Hour      `json:"hour"`
	Minute     Minute    `json:"minute"`
	Second     Second    `json:"second"`
	DistanceKm float64   `json:"distance_km"`
}

// NewTripRecord builds a TripRecord deriving every calendar and time-of-day field from timestamp.
// Each field goes through its bounded constructor.
func NewTripRecord(latitude float64, longitude float64, base string, timestamp time.Time) (*TripRecord, error) {
	month, monthErr := NewMonth(int(timestamp.Month()))
	weekday, weekdayErr := NewWeekday(int(timestamp.Weekday()))
	hour, hourErr := NewHour(timestamp.Hour())
	minute, minuteErr := NewMinute(timestamp.Minute())
	second, secondErr := NewSecond(timestamp.Second())
	if err := errors.Join(monthErr, weekdayErr, hourErr, minuteErr, secondErr); err != nil {
		return nil, err
	}

	return &TripRecord{
		Latitude:  latitude,
		Longitude: longitude,
		Base:      base,
		Timestamp: timestamp,
		TimeOfDay: timestamp.Format("15:04:05"),
		Day:       timestamp.Day(),
		Month:     month,
		Year:      timestamp.Year(),
		Weekday:   weekday,
		Hour:      hour,
		Minute:    minute,
		Second:    second,
	}, nil
}

// IsComplete returns true if every field of the record holds a defined, in-range value
func (tr *TripRecord) IsComplete() bool {
	return tr.Base != "" &&
		!tr.Timestamp.IsZero() &&
		tr.TimeOfDay != "" &&
		tr.Day >= 1 && tr.Day <= 31 &&
		tr.Month.IsValid() &&
		tr.Year > 0 &&
		tr.Weekday.IsValid() &&
		tr.Hour.IsValid() &&
		tr.Minute.IsValid() &&
		tr.Second.IsValid()
}
