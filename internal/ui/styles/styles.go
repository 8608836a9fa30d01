// Package styles defines the visual styling for the application.
package styles

import "github.com/charmbracelet/lipgloss"

// Color definitions for the bikeshare theme.
var (
	// Primary colors
	Primary   = lipgloss.Color("39")  // Blue
	Secondary = lipgloss.Color("63")  // Purple
	Subtle    = lipgloss.Color("240") // Gray

	// Status colors
	Success = lipgloss.Color("42")  // Green
	Error   = lipgloss.Color("196") // Red
	Warning = lipgloss.Color("220") // Yellow
	Info    = lipgloss.Color("39")  // Blue

	// Text colors
	TextPrimary   = lipgloss.Color("252")
	TextSecondary = lipgloss.Color("245")
	TextMuted     = lipgloss.Color("240")
)

// TitleStyle is used for the welcome banner.
var TitleStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(Primary)

// SubTitleStyle is used for report section headings.
var SubTitleStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(Secondary)

// PromptStyle styles questions asked of the user.
var PromptStyle = lipgloss.NewStyle().
	Foreground(TextPrimary).
	Bold(true)

// ValueStyle highlights the answer inside a statistic line.
var ValueStyle = lipgloss.NewStyle().
	Foreground(Primary).
	Bold(true)

// HelpStyle is the base style for secondary text such as timings.
var HelpStyle = lipgloss.NewStyle().
	Foreground(TextMuted)

// SeparatorStyle styles the rule printed between sections.
var SeparatorStyle = lipgloss.NewStyle().
	Foreground(Subtle)

// TableHeaderStyle styles table headers.
var TableHeaderStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(Primary).
	Padding(0, 1)

// TableCellStyle styles table cells.
var TableCellStyle = lipgloss.NewStyle().
	Padding(0, 1)

// TableBorderStyle styles table borders.
var TableBorderStyle = lipgloss.NewStyle().
	Foreground(Subtle)

// ErrorTextStyle for error messages.
var ErrorTextStyle = lipgloss.NewStyle().
	Foreground(Error)

// SuccessTextStyle for success messages.
var SuccessTextStyle = lipgloss.NewStyle().
	Foreground(Success)

// WarningTextStyle for warning messages.
var WarningTextStyle = lipgloss.NewStyle().
	Foreground(Warning)

// InfoTextStyle for info messages.
var InfoTextStyle = lipgloss.NewStyle().
	Foreground(Info)

// ShareHighStyle for values holding more than half of the trips.
var ShareHighStyle = lipgloss.NewStyle().
	Foreground(Success)

// ShareMediumStyle for values holding 20-50% of the trips.
var ShareMediumStyle = lipgloss.NewStyle().
	Foreground(Warning)

// ShareLowStyle for values holding less than 20% of the trips.
var ShareLowStyle = lipgloss.NewStyle().
	Foreground(TextSecondary)

// GetShareStyle returns the style for a value holding percent of all trips.
func GetShareStyle(percent float64) lipgloss.Style {
	switch {
	case percent > 50:
		return ShareHighStyle
	case percent > 20:
		return ShareMediumStyle
	default:
		return ShareLowStyle
	}
}
