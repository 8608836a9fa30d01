// Package prompt asks the interactive questions of a session.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/j-veylop/bikeshare-explorer/internal/logger"
	"github.com/j-veylop/bikeshare-explorer/internal/models"
	"github.com/j-veylop/bikeshare-explorer/internal/ui/console"
	"github.com/j-veylop/bikeshare-explorer/internal/ui/styles"
)

// ErrInputClosed is returned when the input stream ends before an answer.
var ErrInputClosed = errors.New("input closed")

// Guidance printed after an answer that is not understood.
const (
	RetryMessage      = "I don't understand, please try again."
	RetryCityMessage  = RetryMessage + " Enter the full name of the city."
	RetryMonthMessage = RetryMessage + " Enter the full name, short name, or the month number."
	RetryDayMessage   = RetryMessage + " Enter the full name or the short name."
)

// Prompter reads answers line by line.
type Prompter struct {
	in  *bufio.Scanner
	out *console.Console
}

// New creates a prompter reading from in and writing questions to out.
func New(in io.Reader, out *console.Console) *Prompter {
	return &Prompter{in: bufio.NewScanner(in), out: out}
}

// Ask prints question and returns the next input line, trimmed.
func (p *Prompter) Ask(question string) (string, error) {
	p.out.Print(styles.PromptStyle.Render(question) + " ")
	if !p.in.Scan() {
		p.out.Blank()
		if err := p.in.Err(); err != nil {
			return "", fmt.Errorf("failed to read answer: %w", err)
		}
		return "", ErrInputClosed
	}
	return strings.TrimSpace(p.in.Text()), nil
}

// YesNo asks question until the answer is yes or no.
func (p *Prompter) YesNo(question string) (bool, error) {
	for {
		answer, err := p.Ask(question)
		if err != nil {
			return false, err
		}
		switch strings.ToLower(answer) {
		case "yes":
			return true, nil
		case "no":
			return false, nil
		}
		p.out.Println(RetryMessage)
	}
}

// GetFilters asks for a city among cities, a month up to maxMonth and a day
// of week, re-asking each until it is understood.
func (p *Prompter) GetFilters(cities []models.City, maxMonth int) (models.Filter, error) {
	start := time.Now()
	var f models.Filter

	cityQuestion := "Which city would you like to analyze? " + joinCities(cities) + ":"
	for {
		p.out.Blank()
		answer, err := p.Ask(cityQuestion)
		if err != nil {
			return f, err
		}
		city, ok := models.ParseCity(answer)
		if ok && slices.Contains(cities, city) {
			f.City = city
			p.out.Printf("Great, we are using the data for %s.\n", city)
			break
		}
		p.out.Println(RetryCityMessage)
	}

	monthQuestion := "Which month would you like to filter by? " + monthChoices(maxMonth) + ":"
	for {
		p.out.Blank()
		answer, err := p.Ask(monthQuestion)
		if err != nil {
			return f, err
		}
		if month, ok := models.ParseMonth(answer, maxMonth); ok {
			f.Month = month
			p.out.Printf("Great, we are filtering by %s.\n", month)
			break
		}
		p.out.Println(RetryMonthMessage)
	}

	for {
		p.out.Blank()
		answer, err := p.Ask("Which day would you like to filter by? all, monday, tuesday, etc.:")
		if err != nil {
			return f, err
		}
		if day, ok := models.ParseWeekday(answer); ok {
			f.Day = day
			p.out.Printf("Great, we are filtering by %s.\n", day)
			break
		}
		p.out.Println(RetryDayMessage)
	}

	p.out.Rule()
	logger.Debug("filters selected", "filter", f.String(), "elapsed", time.Since(start))
	return f, nil
}

func joinCities(cities []models.City) string {
	names := make([]string, len(cities))
	for i, c := range cities {
		names[i] = string(c)
	}
	return strings.Join(names, ", ")
}

// monthChoices lists the selectable months, e.g. "all, january, ... or june".
func monthChoices(maxMonth int) string {
	names := []string{"all"}
	for m := 1; m <= maxMonth && m <= 12; m++ {
		names = append(names, strings.ToLower(time.Month(m).String()))
	}
	if len(names) == 1 {
		return names[0]
	}
	return strings.Join(names[:len(names)-1], ", ") + ", or " + names[len(names)-1]
}
