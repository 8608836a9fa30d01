package browser

import (
	"github.com/j-veylop/bikeshare-explorer/internal/logger"
	"github.com/j-veylop/bikeshare-explorer/internal/prompt"
	"github.com/j-veylop/bikeshare-explorer/internal/ui/components"
	"github.com/j-veylop/bikeshare-explorer/internal/ui/console"
	"github.com/j-veylop/bikeshare-explorer/internal/ui/styles"
)

// EndMessage is printed after the last page.
const EndMessage = "End of raw data"

// Rows is a table of raw text rows.
type Rows interface {
	Len() int
	Columns() []string
	Rows(from, to int) [][]string
}

// Browser asks whether to show raw rows and prints them page by page.
type Browser struct {
	prompt   *prompt.Prompter
	out      *console.Console
	pageSize int
}

// New creates a browser printing pageSize rows per page.
func New(p *prompt.Prompter, out *console.Console, pageSize int) *Browser {
	return &Browser{prompt: p, out: out, pageSize: pageSize}
}

// Run converses until the user declines or the data runs out.
func (b *Browser) Run(data Rows) error {
	pager := NewPager(data.Len(), b.pageSize)
	columns := data.Columns()

	for pager.State() != Done {
		yes, err := b.prompt.YesNo(pager.Question())
		if err != nil {
			return err
		}

		page, ok := pager.Answer(yes)
		if !ok {
			break
		}

		if rows := data.Rows(page.From, page.To); len(rows) > 0 {
			b.out.Println(components.RenderTable(columns, rows, 0))
		}
		if page.Last {
			b.out.Println(styles.InfoTextStyle.Render(EndMessage))
		}
	}

	logger.Debug("raw data browsing finished", "rows", data.Len(), "shown", pager.Offset())
	return nil
}
