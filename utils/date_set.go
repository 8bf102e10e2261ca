package utils

import "time"

const dateKeyLayout = "2006-01-02"

// DateSet keeps calendar dates, ignoring the time of day
type DateSet map[string]bool

func (ds DateSet) Add(element time.Time) {
	ds[element.Format(dateKeyLayout)] = true
}

func (ds DateSet) Len() int {
	return len(ds)
}
