// Package components provides reusable rendering helpers for reports.
package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/guptarohit/asciigraph"

	"github.com/j-veylop/bikeshare-explorer/internal/models"
	"github.com/j-veylop/bikeshare-explorer/internal/ui/styles"
)

// RenderLineChart creates a single-series ASCII line chart.
func RenderLineChart(data []float64, width, height int, caption string) string {
	if len(data) == 0 {
		return styles.HelpStyle.Render("No data available")
	}

	// Ensure minimum dimensions
	if width < 20 {
		width = 20
	}
	if height < 3 {
		height = 3
	}

	return asciigraph.Plot(data,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(caption),
	)
}

// RenderHourlyChart plots trips per start hour.
func RenderHourlyChart(hourly []int, width, height int) string {
	total := 0
	data := make([]float64, len(hourly))
	for i, n := range hourly {
		data[i] = float64(n)
		total += n
	}
	if total == 0 {
		return styles.HelpStyle.Render("No data available")
	}
	return RenderLineChart(data, width, height, "trips by start hour (00-23)")
}

// RenderBarChart creates a horizontal bar chart of value counts.
func RenderBarChart(counts []models.Count, width int) string {
	if len(counts) == 0 {
		return ""
	}

	// Find max value for scaling
	maxVal := 0
	maxLabelLen := 0
	for _, c := range counts {
		if c.Count > maxVal {
			maxVal = c.Count
		}
		if n := lipgloss.Width(c.Value); n > maxLabelLen {
			maxLabelLen = n
		}
	}
	if maxVal == 0 {
		maxVal = 1
	}

	barWidth := width - maxLabelLen - 12 // Leave room for label and value
	if barWidth < 10 {
		barWidth = 10
	}

	lines := make([]string, 0, len(counts))
	for _, c := range counts {
		label := fmt.Sprintf("%*s", maxLabelLen, c.Value)
		barLen := c.Count * barWidth / maxVal
		bar := lipgloss.NewStyle().Foreground(styles.Primary).Render(strings.Repeat("█", barLen))
		lines = append(lines, label+" │"+bar+" "+humanize.Comma(int64(c.Count)))
	}

	return strings.Join(lines, "\n")
}

// HeatmapBlocks are Unicode block characters for heatmaps (low to high intensity).
var HeatmapBlocks = []rune{'░', '▒', '▓', '█'}

// RenderHourlyHeatmap creates a one-line 24-hour usage heatmap.
func RenderHourlyHeatmap(hourly []int) string {
	if len(hourly) != 24 {
		padded := make([]int, 24)
		copy(padded, hourly)
		hourly = padded
	}

	maxVal := 0
	for _, v := range hourly {
		if v > maxVal {
			maxVal = v
		}
	}
	if maxVal == 0 {
		maxVal = 1
	}

	var result strings.Builder
	result.WriteString("00 ")

	for i, v := range hourly {
		intensity := v * (len(HeatmapBlocks) - 1) / maxVal

		var style lipgloss.Style
		switch intensity {
		case 0:
			style = lipgloss.NewStyle().Foreground(styles.Subtle)
		case 1:
			style = lipgloss.NewStyle().Foreground(styles.Success)
		case 2:
			style = lipgloss.NewStyle().Foreground(styles.Warning)
		default:
			style = lipgloss.NewStyle().Foreground(styles.Error)
		}

		result.WriteString(style.Render(string(HeatmapBlocks[intensity])))

		// Add gap at noon for readability
		if i == 11 {
			result.WriteString(" ")
		}
	}

	result.WriteString(" 23")
	return result.String()
}
