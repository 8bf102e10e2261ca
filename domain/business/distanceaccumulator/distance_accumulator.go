package distanceaccumulator

// DistanceAccumulator struct that collects data about the distance from the city centre of trips in a group
// + Name: name of the group to collect data. Once set, it cannot change
// + Counter: counts the amount of data collected
// + TotalDistance: sum of distances, in kilometres
type DistanceAccumulator struct {
	Name          string  `json:"name"`
	Counter       int     `json:"counter"`
	TotalDistance float64 `json:"total_distance"`
}

func NewDistanceAccumulator(groupName string) *DistanceAccumulator {
	return &DistanceAccumulator{
		Name: groupName,
	}
}

func (da *DistanceAccumulator) UpdateAccumulator(newDistance float64) {
	da.Counter += 1
	da.TotalDistance += newDistance
}

func (da *DistanceAccumulator) GetAverageDistance() float64 {
	if da.Counter == 0 {
		panic("[DistanceAccumulator] cannot get average, counter is zero")
	}
	return da.TotalDistance / float64(da.Counter)
}
