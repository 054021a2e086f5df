// Package ui holds the presentational primitives shared by the dashboard
// templates: modal and confirm dialogs, SVG chart geometry and template
// helpers. Nothing here performs I/O or holds state.
package ui

import (
	"strconv"
	"strings"
)

const chartPadding = 24.0

// Point is one labelled value of a chart series.
type Point struct {
	Label string
	Value float64
}

type Bar struct {
	X, Y, Width, Height float64
	Label               string
	Value               float64
}

type BarChart struct {
	Width, Height float64
	Max           float64
	Bars          []Bar
}

// Bars lays out a vertical bar chart inside a width x height box. Bar heights
// are proportional to the series maximum.
func Bars(points []Point, width, height float64) BarChart {
	chart := BarChart{Width: width, Height: height, Max: maxValue(points)}
	if len(points) == 0 {
		return chart
	}
	plotW := width - 2*chartPadding
	plotH := height - 2*chartPadding
	slot := plotW / float64(len(points))
	barW := slot * 0.7

	for i, p := range points {
		h := 0.0
		if chart.Max > 0 {
			h = p.Value / chart.Max * plotH
		}
		chart.Bars = append(chart.Bars, Bar{
			X:      chartPadding + float64(i)*slot + (slot-barW)/2,
			Y:      chartPadding + plotH - h,
			Width:  barW,
			Height: h,
			Label:  p.Label,
			Value:  p.Value,
		})
	}
	return chart
}

type Dot struct {
	X, Y  float64
	Label string
	Value float64
}

type LineChart struct {
	Width, Height float64
	Max           float64
	Path          string
	Dots          []Dot
}

// Line lays out a line chart. A single point is drawn in the middle.
func Line(points []Point, width, height float64) LineChart {
	chart := LineChart{Width: width, Height: height, Max: maxValue(points)}
	if len(points) == 0 {
		return chart
	}
	plotW := width - 2*chartPadding
	plotH := height - 2*chartPadding
	step := 0.0
	if len(points) > 1 {
		step = plotW / float64(len(points)-1)
	}

	var b strings.Builder
	for i, p := range points {
		x := chartPadding + float64(i)*step
		if len(points) == 1 {
			x = chartPadding + plotW/2
		}
		y := chartPadding + plotH
		if chart.Max > 0 {
			y -= p.Value / chart.Max * plotH
		}
		if i == 0 {
			b.WriteString("M")
		} else {
			b.WriteString(" L")
		}
		b.WriteString(coord(x))
		b.WriteString(" ")
		b.WriteString(coord(y))
		chart.Dots = append(chart.Dots, Dot{X: x, Y: y, Label: p.Label, Value: p.Value})
	}
	chart.Path = b.String()
	return chart
}

func maxValue(points []Point) float64 {
	m := 0.0
	for _, p := range points {
		if p.Value > m {
			m = p.Value
		}
	}
	return m
}

func coord(f float64) string {
	return strconv.FormatFloat(f, 'f', 1, 64)
}
