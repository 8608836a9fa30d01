// Package browser pages through the raw rows of a dataset on request.
package browser

import (
	"fmt"

	"github.com/charmbracelet/bubbles/paginator"
)

// State is the position of a pager in its conversation.
type State int

// Pager states.
const (
	AwaitingFirstAnswer State = iota
	Paging
	Done
)

func (s State) String() string {
	switch s {
	case AwaitingFirstAnswer:
		return "awaiting-first-answer"
	case Paging:
		return "paging"
	case Done:
		return "done"
	default:
		return "unknown"
	}
}

// Page is a half-open row range to print. Last marks the end of the data.
type Page struct {
	From int
	To   int
	Last bool
}

// Pager tracks which rows have been shown. Page arithmetic is delegated to
// a paginator; the conversation state sits on top of it.
type Pager struct {
	state  State
	total  int
	offset int
	pages  paginator.Model
}

// NewPager creates a pager over total rows, size rows at a time.
func NewPager(total, size int) *Pager {
	pages := paginator.New(paginator.WithPerPage(max(size, 1)))
	pages.SetTotalPages(total)
	return &Pager{total: total, pages: pages}
}

// State returns the current state.
func (p *Pager) State() State {
	return p.state
}

// Offset returns the first row of the next page.
func (p *Pager) Offset() int {
	return p.offset
}

// Question returns what to ask in the current state.
func (p *Pager) Question() string {
	if p.state == AwaitingFirstAnswer {
		return "Would you like to see the raw data? yes or no:"
	}
	return fmt.Sprintf("Would you like to see an additional %d rows? yes or no:", p.pages.PerPage)
}

// Answer advances the pager. A yes returns the page to print; a no, or any
// answer once Done, returns ok false.
func (p *Pager) Answer(yes bool) (page Page, ok bool) {
	if p.state == Done {
		return Page{}, false
	}
	if !yes {
		p.state = Done
		return Page{}, false
	}

	from, to := p.pages.GetSliceBounds(p.total)
	// A page that ends exactly on the last row is final on purpose, so no
	// empty page is ever printed before the end marker.
	page = Page{From: from, To: to, Last: p.pages.OnLastPage()}
	if page.Last {
		p.state = Done
	} else {
		p.state = Paging
		p.pages.NextPage()
	}
	p.offset = page.To
	return page, true
}
