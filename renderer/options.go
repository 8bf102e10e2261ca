package renderer

import "fmt"

// ChartOptions output parameters of a chart
// + FileName: name of the PNG file, relative to the renderer output directory
// + Width, Height: image size in pixels
// + DPI: resolution used to scale fonts
// + Title, Subtitle: centred heading lines. Subtitle may be empty
type ChartOptions struct {
	FileName string  `yaml:"file"`
	Width    int     `yaml:"width"`
	Height   int     `yaml:"height"`
	DPI      float64 `yaml:"dpi"`
	Title    string  `yaml:"title"`
	Subtitle string  `yaml:"subtitle"`
}

func (co ChartOptions) validate() error {
	if co.FileName == "" {
		return fmt.Errorf("%w: file name is empty", ErrInvalidOptions)
	}
	if co.Width <= 0 || co.Height <= 0 {
		return fmt.Errorf("%w: size %dx%d", ErrInvalidOptions, co.Width, co.Height)
	}
	if co.DPI <= 0 {
		return fmt.Errorf("%w: dpi %v", ErrInvalidOptions, co.DPI)
	}
	return nil
}

// points converts a pixel height into a font size at the chart DPI
func (co ChartOptions) points(pixels float64) float64 {
	return pixels * 72 / co.DPI
}

// HourlyChartOptions Trips Every Hour chart, 1500x800 px at 300 DPI
func HourlyChartOptions() ChartOptions {
	return ChartOptions{
		FileName: "hourly_trips_plot.png",
		Width:    1500,
		Height:   800,
		DPI:      300,
		Title:    "Trips Every Hour",
		Subtitle: "aggregated today",
	}
}

// MonthHourChartOptions Trips by Hour and Month chart, 1900x900 px at 100 DPI
func MonthHourChartOptions() ChartOptions {
	return ChartOptions{
		FileName: "month_hour_trips_plot.png",
		Width:    1900,
		Height:   900,
		DPI:      100,
		Title:    "Trips by Hour and Month",
	}
}

func DailyChartOptions() ChartOptions {
	return ChartOptions{
		FileName: "daily_trips_plot.png",
		Width:    1500,
		Height:   800,
		DPI:      300,
		Title:    "Trips Every Day",
		Subtitle: "day of month",
	}
}

func BaseChartOptions() ChartOptions {
	return ChartOptions{
		FileName: "base_trips_plot.png",
		Width:    1500,
		Height:   800,
		DPI:      300,
		Title:    "Trips by Base",
	}
}
