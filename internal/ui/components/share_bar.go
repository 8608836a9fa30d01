package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/j-veylop/bikeshare-explorer/internal/ui/styles"
)

const (
	shareFilled = "█"
	shareEmpty  = "░"
)

// ShareBar renders the share of trips a value holds as a fixed-width bar.
type ShareBar struct {
	label   string
	percent float64
	width   int
}

// NewShareBar creates a bar for count out of total trips.
func NewShareBar(label string, count, total, width int) ShareBar {
	percent := 0.0
	if total > 0 {
		percent = float64(count) / float64(total) * 100
	}
	if width < 5 {
		width = 5
	}
	return ShareBar{label: label, percent: percent, width: width}
}

// Percent returns the share in the range [0, 100].
func (b ShareBar) Percent() float64 {
	return clamp(b.percent, 0, 100)
}

// View renders the label, the bar and the percentage.
func (b ShareBar) View() string {
	p := b.Percent()
	filled := int(p / 100 * float64(b.width))
	bar := styles.GetShareStyle(p).Render(strings.Repeat(shareFilled, filled)) +
		lipgloss.NewStyle().Foreground(styles.Subtle).Render(strings.Repeat(shareEmpty, b.width-filled))
	return fmt.Sprintf("%s %s %5.1f%%", b.label, bar, p)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
