package renderer

import (
	"fmt"
	"math"

	"github.com/dustin/go-humanize"
	chart "github.com/wcharczuk/go-chart/v2"
)

const targetTicks = 5

// thousands formats a count with thousands separators, e.g. 1,234,567
func thousands(v interface{}) string {
	switch value := v.(type) {
	case float64:
		return humanize.Comma(int64(math.Round(value)))
	case int:
		return humanize.Comma(int64(value))
	default:
		return fmt.Sprintf("%v", v)
	}
}

// niceStep rounds raw up to 1, 2 or 5 times a power of ten
func niceStep(raw float64) float64 {
	if raw <= 0 {
		return 1
	}
	magnitude := math.Pow(10, math.Floor(math.Log10(raw)))
	for _, factor := range []float64{1, 2, 5, 10} {
		if raw <= factor*magnitude {
			return factor * magnitude
		}
	}
	return 10 * magnitude
}

// countTicks returns the top of a count axis starting at zero and its labelled ticks
func countTicks(maxValue float64) (float64, []chart.Tick) {
	step := niceStep(maxValue / targetTicks)
	if step < 1 {
		step = 1
	}
	top := math.Ceil(maxValue/step) * step
	if top <= 0 {
		top = step
	}

	var ticks []chart.Tick
	for value := 0.0; value <= top+step/2; value += step {
		ticks = append(ticks, chart.Tick{Value: value, Label: thousands(value)})
	}
	return top, ticks
}
