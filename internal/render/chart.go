package render

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/jung-kurt/gofpdf"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
	"github.com/wcharczuk/go-chart/v2/roboto"

	"github.com/Tiliavir/togglpie/internal/aggregate"
)

const noDataLabel = "no data"

// palette is matplotlib's tab10 cycle.
var palette = []drawing.Color{
	drawing.ColorFromHex("1f77b4"),
	drawing.ColorFromHex("ff7f0e"),
	drawing.ColorFromHex("2ca02c"),
	drawing.ColorFromHex("d62728"),
	drawing.ColorFromHex("9467bd"),
	drawing.ColorFromHex("8c564b"),
	drawing.ColorFromHex("e377c2"),
	drawing.ColorFromHex("7f7f7f"),
	drawing.ColorFromHex("bcbd22"),
	drawing.ColorFromHex("17becf"),
}

// ChartOptions controls the chart output.
type ChartOptions struct {
	Title  string
	Width  int
	Height int
}

// slice is one pie wedge. Size is the value clamped at zero; Percent is the
// share of the clamped total.
type slice struct {
	Label   string
	Value   float64
	Size    float64
	Percent float64

	placeholder bool
}

func pieSlices(buckets *aggregate.Ordered[string, float64]) []slice {
	var out []slice
	var total float64
	buckets.Each(func(k string, v float64) {
		size := math.Max(v, 0)
		total += size
		out = append(out, slice{Label: k, Value: v, Size: size})
	})
	if total > 0 {
		for i := range out {
			out[i].Percent = out[i].Size / total * 100
		}
	}
	return out
}

// withPlaceholder appends a "no data" wedge when no slice has a positive
// size. Zero-size slices are kept so they still show up in the legend.
func withPlaceholder(slices []slice) []slice {
	for _, s := range slices {
		if s.Size > 0 {
			return slices
		}
	}
	return append(slices, slice{Label: noDataLabel, Size: 1, Percent: 100, placeholder: true})
}

// legendRows returns the captions of every real bucket, keeping the palette
// index the bucket's wedge is drawn with.
func legendRows(slices []slice) []legendRow {
	var rows []legendRow
	for i, s := range slices {
		if !s.placeholder {
			rows = append(rows, legendRow{caption: s.caption(), color: palette[i%len(palette)]})
		}
	}
	return rows
}

type legendRow struct {
	caption string
	color   drawing.Color
}

func (s slice) caption() string {
	if s.placeholder {
		return noDataLabel
	}
	return fmt.Sprintf("%s %.2f%%", s.Label, s.Percent)
}

// Chart writes a pie chart of buckets to path. The format follows the file
// extension: .svg and .pdf are supported, anything else is written as PNG.
func Chart(path string, buckets *aggregate.Ordered[string, float64], opts ChartOptions) error {
	slices := withPlaceholder(pieSlices(buckets))
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return pdfChart(path, slices, opts)
	case ".svg":
		return rasterChart(path, slices, opts, chart.SVG)
	default:
		return rasterChart(path, slices, opts, chart.PNG)
	}
}

func rasterChart(path string, slices []slice, opts ChartOptions, provider chart.RendererProvider) error {
	var values []chart.Value
	for i, s := range slices {
		if s.Size <= 0 {
			continue
		}
		values = append(values, chart.Value{
			Label: s.caption(),
			Value: s.Size,
			Style: chart.Style{FillColor: palette[i%len(palette)]},
		})
	}
	pie := chart.PieChart{
		Title:  opts.Title,
		Width:  opts.Width,
		Height: opts.Height,
		Values: values,
	}
	if rows := legendRows(slices); len(rows) > 0 {
		// The legend column sits left of the pie.
		pie.Background = chart.Style{Padding: chart.Box{
			Top:    chart.DefaultBackgroundPadding.Top,
			Left:   pie.GetWidth() / 4,
			Right:  chart.DefaultBackgroundPadding.Right,
			Bottom: chart.DefaultBackgroundPadding.Bottom,
		}}
		pie.Elements = []chart.Renderable{legend(rows)}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating chart file: %w", err)
	}
	if err := pie.Render(provider, f); err != nil {
		f.Close()
		return fmt.Errorf("rendering chart: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("writing chart file: %w", err)
	}
	return nil
}

// legend draws one swatch and caption per row down the left edge.
func legend(rows []legendRow) chart.Renderable {
	return func(r chart.Renderer, canvasBox chart.Box, defaults chart.Style) {
		const rowHeight, swatch = 18, 10
		text := chart.Style{
			Font:      defaults.Font,
			FontSize:  10,
			FontColor: drawing.ColorFromHex("323232"),
		}
		y := canvasBox.Top + rowHeight
		for _, row := range rows {
			chart.Draw.Box(r, chart.Box{Top: y - swatch, Left: 10, Right: 10 + swatch, Bottom: y}, chart.Style{
				FillColor:   row.color,
				StrokeColor: row.color,
				StrokeWidth: 1,
			})
			chart.Draw.Text(r, row.caption, 10+swatch+6, y, text)
			y += rowHeight
		}
	}
}

func pdfChart(path string, slices []slice, opts ChartOptions) error {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.AddUTF8FontFromBytes("Roboto", "", roboto.Roboto)
	pdf.AddPage()

	pageW, pageH := pdf.GetPageSize()
	cx, cy := pageW/2, pageH/2+5
	radius := math.Min(pageW, pageH) / 3

	if opts.Title != "" {
		pdf.SetFont("Roboto", "", 14)
		pdf.SetTextColor(40, 40, 40)
		pdf.CellFormat(0, 10, opts.Title, "", 1, "C", false, 0, "")
	}

	var total float64
	for _, s := range slices {
		total += s.Size
	}

	pdf.SetFont("Roboto", "", 10)
	pdf.SetDrawColor(255, 255, 255)
	start := 0.0
	for i, s := range slices {
		if s.Size <= 0 {
			continue
		}
		sweep := s.Size / total * 2 * math.Pi
		c := palette[i%len(palette)]
		pdf.SetFillColor(int(c.R), int(c.G), int(c.B))
		pdf.Polygon(wedge(cx, cy, radius, start, sweep), "DF")

		mid := start + sweep/2
		label := s.caption()
		lx := cx + radius*1.15*math.Cos(mid)
		ly := cy - radius*1.15*math.Sin(mid)
		if math.Cos(mid) < 0 {
			lx -= pdf.GetStringWidth(label)
		}
		pdf.SetTextColor(50, 50, 50)
		pdf.Text(lx, ly, label)
		start += sweep
	}

	ly := 25.0
	for _, row := range legendRows(slices) {
		pdf.SetFillColor(int(row.color.R), int(row.color.G), int(row.color.B))
		pdf.Rect(10, ly-3, 3, 3, "F")
		pdf.SetTextColor(50, 50, 50)
		pdf.Text(15, ly, row.caption)
		ly += 6
	}

	if err := pdf.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("error writing PDF file: %w", err)
	}
	return nil
}

// wedge approximates a pie wedge counter-clockwise from start by sweep
// radians as a polygon in page coordinates.
func wedge(cx, cy, r, start, sweep float64) []gofpdf.PointType {
	steps := int(math.Ceil(sweep / (math.Pi / 90)))
	if steps < 1 {
		steps = 1
	}
	points := make([]gofpdf.PointType, 0, steps+2)
	if sweep < 2*math.Pi {
		points = append(points, gofpdf.PointType{X: cx, Y: cy})
	}
	for i := 0; i <= steps; i++ {
		a := start + sweep*float64(i)/float64(steps)
		points = append(points, gofpdf.PointType{X: cx + r*math.Cos(a), Y: cy - r*math.Sin(a)})
	}
	return points
}
