package renderer

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"
	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"tripstats/aggregator"
	"tripstats/domain/entities/trip"
)

const (
	stageName = "renderer"
	titleTop  = 10
	headerGap = 24
)

var (
	barFillColor   = drawing.ColorFromHex("4682b4")
	barStrokeColor = drawing.ColorFromHex("ff0000")
	textColor      = drawing.ColorFromHex("333333")
)

// bar one labelled value of a single-series bar chart
type bar struct {
	Label string
	Value float64
}

type Renderer struct {
	outputDir string
}

func NewRenderer(outputDir string) *Renderer {
	if outputDir == "" {
		outputDir = "."
	}
	return &Renderer{
		outputDir: outputDir,
	}
}

func (r *Renderer) getLogMessage(method string, message string, err error) string {
	if err != nil {
		return fmt.Sprintf("[stage: %s][method: %s][status: ERROR] %s: %s", stageName, method, message, err.Error())
	}
	return fmt.Sprintf("[stage: %s][method: %s][status: OK] %s", stageName, method, message)
}

// HourlyChart draws one bar per hour, ascending, and returns the path of the written file
func (r *Renderer) HourlyChart(rows []aggregator.HourlyRow, options ChartOptions) (string, error) {
	if len(rows) == 0 {
		return "", fmt.Errorf("%w: hourly", ErrEmptyAggregate)
	}

	bars := make([]bar, 0, len(rows))
	for idx, row := range rows {
		if !row.Hour.IsValid() || row.Total < 0 {
			return "", fmt.Errorf("%w: hourly row %d has hour %d and total %d", ErrInvalidAggregate, idx, row.Hour, row.Total)
		}
		if idx > 0 && rows[idx-1].Hour >= row.Hour {
			return "", fmt.Errorf("%w: hourly rows are not in ascending hour order", ErrInvalidAggregate)
		}
		bars = append(bars, bar{Label: row.Hour.String(), Value: float64(row.Total)})
	}

	return r.writeBarChart("HourlyChart", bars, options)
}

// MonthHourChart draws one stacked bar per month, split by hour group
func (r *Renderer) MonthHourChart(rows []aggregator.MonthHourRow, options ChartOptions) (string, error) {
	if len(rows) == 0 {
		return "", fmt.Errorf("%w: month-hour", ErrEmptyAggregate)
	}

	var bars []stackedBar
	for idx, row := range rows {
		groupIdx := row.HourGroup.Index()
		if !row.Month.IsValid() || !row.Hour.IsValid() || row.Total < 0 || groupIdx < 0 {
			return "", fmt.Errorf("%w: month-hour row %d (%v, %d, %d, %q)", ErrInvalidAggregate, idx, row.Month, row.Hour, row.Total, row.HourGroup)
		}
		if trip.GroupForHour(row.Hour) != row.HourGroup {
			return "", fmt.Errorf("%w: hour %d does not belong to %q", ErrInvalidAggregate, row.Hour, row.HourGroup)
		}

		if len(bars) == 0 || bars[len(bars)-1].Month != row.Month {
			if len(bars) > 0 && bars[len(bars)-1].Month > row.Month {
				return "", fmt.Errorf("%w: month-hour rows are not in month order", ErrInvalidAggregate)
			}
			bars = append(bars, stackedBar{Month: row.Month, Segments: make([]float64, len(trip.HourGroups))})
		}
		bars[len(bars)-1].Segments[groupIdx] += float64(row.Total)
	}

	if err := options.validate(); err != nil {
		return "", err
	}

	var buffer bytes.Buffer
	if err := renderStackedBars(&buffer, bars, options); err != nil {
		log.Error(r.getLogMessage("MonthHourChart", "error rendering chart", err))
		return "", fmt.Errorf("%w: %s", ErrRendering, err)
	}
	return r.save("MonthHourChart", buffer.Bytes(), options)
}

// DailyChart draws one bar per day of the month
func (r *Renderer) DailyChart(rows []aggregator.DailyRow, options ChartOptions) (string, error) {
	if len(rows) == 0 {
		return "", fmt.Errorf("%w: daily", ErrEmptyAggregate)
	}

	bars := make([]bar, 0, len(rows))
	for idx, row := range rows {
		if row.Day < 1 || row.Day > 31 || row.Total < 0 {
			return "", fmt.Errorf("%w: daily row %d has day %d and total %d", ErrInvalidAggregate, idx, row.Day, row.Total)
		}
		bars = append(bars, bar{Label: fmt.Sprintf("%d", row.Day), Value: float64(row.Total)})
	}

	return r.writeBarChart("DailyChart", bars, options)
}

// BaseChart draws one bar per dispatching base
func (r *Renderer) BaseChart(rows []aggregator.BaseRow, options ChartOptions) (string, error) {
	if len(rows) == 0 {
		return "", fmt.Errorf("%w: base", ErrEmptyAggregate)
	}

	bars := make([]bar, 0, len(rows))
	for idx, row := range rows {
		if row.Base == "" || row.Total < 0 {
			return "", fmt.Errorf("%w: base row %d has base %q and total %d", ErrInvalidAggregate, idx, row.Base, row.Total)
		}
		bars = append(bars, bar{Label: row.Base, Value: float64(row.Total)})
	}

	return r.writeBarChart("BaseChart", bars, options)
}

func (r *Renderer) writeBarChart(method string, bars []bar, options ChartOptions) (string, error) {
	if err := options.validate(); err != nil {
		return "", err
	}

	var buffer bytes.Buffer
	if err := renderBars(&buffer, bars, options); err != nil {
		log.Error(r.getLogMessage(method, "error rendering chart", err))
		return "", fmt.Errorf("%w: %s", ErrRendering, err)
	}
	return r.save(method, buffer.Bytes(), options)
}

// save writes an encoded image, replacing any previous file with the same name
func (r *Renderer) save(method string, image []byte, options ChartOptions) (string, error) {
	path := filepath.Join(r.outputDir, options.FileName)
	if err := os.WriteFile(path, image, 0644); err != nil {
		log.Error(r.getLogMessage(method, fmt.Sprintf("error writing %s", path), err))
		return "", fmt.Errorf("%w: %s", ErrWritingFile, err)
	}

	log.Info(r.getLogMessage(method, fmt.Sprintf("%s saved (%dx%d px, %v dpi)", path, options.Width, options.Height, options.DPI), nil))
	return path, nil
}

// renderBars draws a single-colour bar chart with a centred title and subtitle and no legend
func renderBars(w io.Writer, bars []bar, options ChartOptions) error {
	font, err := chart.GetDefaultFont()
	if err != nil {
		return err
	}

	maxValue := 0.0
	for _, b := range bars {
		if b.Value > maxValue {
			maxValue = b.Value
		}
	}
	top, ticks := countTicks(maxValue)

	titleSize := options.points(34)
	subtitleSize := options.points(24)
	axisSize := options.points(18)
	headerHeight := titleTop + 34 + headerGap
	if options.Subtitle != "" {
		headerHeight += 24 + headerGap
	}

	availableWidth := float64(options.Width) * 0.85
	slot := availableWidth / float64(len(bars))
	values := make([]chart.Value, 0, len(bars))
	for _, b := range bars {
		values = append(values, chart.Value{
			Label: b.Label,
			Value: b.Value,
			Style: chart.Style{
				FillColor:   barFillColor,
				StrokeColor: barStrokeColor,
				StrokeWidth: 1,
			},
		})
	}

	graph := chart.BarChart{
		Title: options.Title,
		TitleStyle: chart.Style{
			Font:      font,
			FontSize:  titleSize,
			FontColor: textColor,
		},
		Font:   font,
		Width:  options.Width,
		Height: options.Height,
		DPI:    options.DPI,
		Background: chart.Style{
			Padding: chart.Box{Top: headerHeight, Left: 20, Right: 20, Bottom: 20},
		},
		BarWidth:   int(slot * 0.75),
		BarSpacing: int(slot * 0.25),
		XAxis: chart.Style{
			Font:      font,
			FontSize:  axisSize,
			FontColor: textColor,
		},
		YAxis: chart.YAxis{
			Style: chart.Style{
				Font:      font,
				FontSize:  axisSize,
				FontColor: textColor,
			},
			AxisType:       chart.YAxisSecondary,
			Range:          &chart.ContinuousRange{Min: 0, Max: top},
			Ticks:          ticks,
			ValueFormatter: thousands,
		},
		Bars: values,
	}

	if options.Subtitle != "" {
		subtitleStyle := chart.Style{Font: font, FontSize: subtitleSize, FontColor: textColor}
		graph.Elements = []chart.Renderable{centeredText(options.Subtitle, options.Width, titleTop+34+headerGap/2, subtitleStyle)}
	}

	return graph.Render(chart.PNG, w)
}

// centeredText draws a line of text horizontally centred on the image, with its top at y
func centeredText(text string, width int, y int, style chart.Style) chart.Renderable {
	return func(r chart.Renderer, _ chart.Box, _ chart.Style) {
		r.SetFont(style.Font)
		r.SetFontSize(style.FontSize)
		r.SetFontColor(style.FontColor)
		box := r.MeasureText(text)
		r.Text(text, (width-box.Width())/2, y+box.Height())
	}
}
