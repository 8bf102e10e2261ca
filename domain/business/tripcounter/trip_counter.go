package tripcounter

import "fmt"

// TripCounter struct that counts the amount of trips that share a grouping key
// + Key: value that identifies the group, e.g. an hour or a month-hour pair. Once set, it cannot change
// + Counter: counts the amount of trips that fall in the group
type TripCounter[K comparable] struct {
	Key     K   `json:"key"`
	Counter int `json:"counter"`
}

func NewTripCounter[K comparable](key K) *TripCounter[K] {
	return &TripCounter[K]{
		Key: key,
	}
}

func (tc *TripCounter[K]) UpdateCounter() {
	tc.Counter += 1
}

func (tc *TripCounter[K]) GetCounter() int {
	return tc.Counter
}

func (tc *TripCounter[K]) GetKey() K {
	return tc.Key
}

func (tc *TripCounter[K]) Merge(tripCounter2 *TripCounter[K]) *TripCounter[K] {
	// sanity check
	if tc.Key != tripCounter2.Key {
		panic(fmt.Sprintf("[TripCounter] cannot merge two TripCounters with different keys: %v - %v", tc.Key, tripCounter2.Key))
	}

	return &TripCounter[K]{
		Key:     tc.Key,
		Counter: tc.Counter + tripCounter2.Counter,
	}
}

// CounterSet groups TripCounters by key, keeping the order in which keys were first seen
type CounterSet[K comparable] struct {
	counters map[K]*TripCounter[K]
	keys     []K
}

func NewCounterSet[K comparable]() *CounterSet[K] {
	return &CounterSet[K]{
		counters: make(map[K]*TripCounter[K]),
	}
}

// Count adds one trip to the counter of key, creating it if needed
func (cs *CounterSet[K]) Count(key K) {
	counter, ok := cs.counters[key]
	if !ok {
		counter = NewTripCounter(key)
		cs.counters[key] = counter
		cs.keys = append(cs.keys, key)
	}
	counter.UpdateCounter()
}

// Counters returns the counters in first-seen order
func (cs *CounterSet[K]) Counters() []*TripCounter[K] {
	result := make([]*TripCounter[K], 0, len(cs.keys))
	for _, key := range cs.keys {
		result = append(result, cs.counters[key])
	}
	return result
}

func (cs *CounterSet[K]) Len() int {
	return len(cs.keys)
}
