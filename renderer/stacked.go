package renderer

import (
	"io"
	"math"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"tripstats/domain/entities/trip"
)

const (
	stackedPadding  = 24
	stackedTickGap  = 10
	legendSwatch    = 18
	barWidthRatio   = 0.7
	gridStrokeWidth = 1.0
)

var (
	backgroundColor = drawing.ColorWhite
	panelColor      = drawing.ColorFromHex("ebebeb")
	gridColor       = drawing.ColorWhite

	hourGroupColors = map[trip.HourGroup]drawing.Color{
		trip.EarlyMorning: drawing.ColorFromHex("ff0000"),
		trip.Morning:      drawing.ColorFromHex("0000ff"),
		trip.Afternoon:    drawing.ColorFromHex("00ff00"),
		trip.Evening:      drawing.ColorFromHex("a020f0"),
	}
)

// stackedBar raw trip counts of a month, one segment per hour group in trip.HourGroups order
type stackedBar struct {
	Month    trip.Month
	Segments []float64
}

func (sb stackedBar) total() float64 {
	total := 0.0
	for _, value := range sb.Segments {
		total += value
	}
	return total
}

// renderStackedBars draws raw-count stacked bars with a centred title and an untitled legend.
// go-chart's StackedBarChart normalises every bar to 100%, raw counts are drawn on the canvas here.
func renderStackedBars(w io.Writer, bars []stackedBar, options ChartOptions) error {
	r, err := chart.PNG(options.Width, options.Height)
	if err != nil {
		return err
	}
	r.SetDPI(options.DPI)

	font, err := chart.GetDefaultFont()
	if err != nil {
		return err
	}
	setText := func(pixels float64, color drawing.Color) {
		r.SetFont(font)
		r.SetFontSize(options.points(pixels))
		r.SetFontColor(color)
	}

	fillBox(r, chart.Box{Top: 0, Left: 0, Right: options.Width, Bottom: options.Height}, backgroundColor)

	setText(30, textColor)
	titleBox := r.MeasureText(options.Title)
	titleBottom := stackedPadding + titleBox.Height()
	r.Text(options.Title, (options.Width-titleBox.Width())/2, titleBottom)

	maxTotal := 0.0
	for _, b := range bars {
		maxTotal = math.Max(maxTotal, b.total())
	}
	top, ticks := countTicks(maxTotal)

	setText(16, textColor)
	tickLabelWidth := 0
	for _, tick := range ticks {
		tickLabelWidth = maxInt(tickLabelWidth, r.MeasureText(tick.Label).Width())
	}
	legendLabelWidth, legendLabelHeight := 0, 0
	for _, group := range trip.HourGroups {
		box := r.MeasureText(string(group))
		legendLabelWidth = maxInt(legendLabelWidth, box.Width())
		legendLabelHeight = maxInt(legendLabelHeight, box.Height())
	}
	monthLabelHeight := r.MeasureText("Sep").Height()

	plot := chart.Box{
		Top:    titleBottom + stackedPadding,
		Left:   stackedPadding + tickLabelWidth + stackedTickGap,
		Right:  options.Width - stackedPadding*2 - legendSwatch - stackedTickGap - legendLabelWidth,
		Bottom: options.Height - stackedPadding - monthLabelHeight - stackedTickGap,
	}
	yFor := func(value float64) int {
		return plot.Bottom - int(math.Round(value/top*float64(plot.Height())))
	}

	fillBox(r, plot, panelColor)

	for _, tick := range ticks {
		y := yFor(tick.Value)
		strokeLine(r, plot.Left, y, plot.Right, y, gridColor)
		setText(16, textColor)
		labelBox := r.MeasureText(tick.Label)
		r.Text(tick.Label, plot.Left-stackedTickGap-labelBox.Width(), y+labelBox.Height()/2)
	}

	slot := float64(plot.Width()) / float64(len(bars))
	barWidth := int(slot * barWidthRatio)
	for idx, b := range bars {
		left := plot.Left + int(float64(idx)*slot+(slot-float64(barWidth))/2)
		base := 0.0
		for groupIdx, value := range b.Segments {
			if value <= 0 {
				continue
			}
			segment := chart.Box{
				Top:    yFor(base + value),
				Left:   left,
				Right:  left + barWidth,
				Bottom: yFor(base),
			}
			fillBox(r, segment, hourGroupColors[trip.HourGroups[groupIdx]])
			base += value
		}

		setText(16, textColor)
		label := b.Month.String()
		labelBox := r.MeasureText(label)
		r.Text(label, left+(barWidth-labelBox.Width())/2, plot.Bottom+stackedTickGap+monthLabelHeight)
	}

	legendLeft := plot.Right + stackedPadding
	legendTop := plot.Top + (plot.Height()-len(trip.HourGroups)*(legendSwatch+stackedTickGap))/2
	for idx, group := range trip.HourGroups {
		y := legendTop + idx*(legendSwatch+stackedTickGap)
		fillBox(r, chart.Box{Top: y, Left: legendLeft, Right: legendLeft + legendSwatch, Bottom: y + legendSwatch}, hourGroupColors[group])
		setText(16, textColor)
		r.Text(string(group), legendLeft+legendSwatch+stackedTickGap, y+(legendSwatch+legendLabelHeight)/2)
	}

	return r.Save(w)
}

func fillBox(r chart.Renderer, box chart.Box, color drawing.Color) {
	r.SetFillColor(color)
	r.SetStrokeColor(color)
	r.SetStrokeWidth(0)
	r.MoveTo(box.Left, box.Top)
	r.LineTo(box.Right, box.Top)
	r.LineTo(box.Right, box.Bottom)
	r.LineTo(box.Left, box.Bottom)
	r.Close()
	r.Fill()
	r.ResetStyle()
}

func strokeLine(r chart.Renderer, x0 int, y0 int, x1 int, y1 int, color drawing.Color) {
	r.SetStrokeColor(color)
	r.SetStrokeWidth(gridStrokeWidth)
	r.MoveTo(x0, y0)
	r.LineTo(x1, y1)
	r.Stroke()
	r.ResetStyle()
}

func maxInt(a int, b int) int {
	if a > b {
		return a
	}
	return b
}
