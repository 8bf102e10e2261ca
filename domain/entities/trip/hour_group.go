package trip

// HourGroup is one of the four fixed six-hour windows used to colour stacked bars
type HourGroup string

const (
	EarlyMorning HourGroup = "12am - 6am"
	Morning      HourGroup = "7am - 12pm"
	Afternoon    HourGroup = "1pm - 6pm"
	Evening      HourGroup = "7pm - 12am"
)

// HourGroups lists the buckets in time-of-day order
var HourGroups = []HourGroup{EarlyMorning, Morning, Afternoon, Evening}

// GroupForHour returns the bucket an hour belongs to:
// + 0..5 -> 12am - 6am
// + 6..11 -> 7am - 12pm
// + 12..17 -> 1pm - 6pm
// + 18..23 -> 7pm - 12am
func GroupForHour(hour Hour) HourGroup {
	switch {
	case hour < 6:
		return EarlyMorning
	case hour < 12:
		return Morning
	case hour < 18:
		return Afternoon
	default:
		return Evening
	}
}

// Index returns the position of the group in HourGroups, or -1 if unknown
func (hg HourGroup) Index() int {
	for idx := range HourGroups {
		if HourGroups[idx] == hg {
			return idx
		}
	}
	return -1
}
