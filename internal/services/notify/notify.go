// Package notify sends desktop notifications for slow dataset loads.
package notify

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gen2brain/beeep"

	"github.com/j-veylop/bikeshare-explorer/internal/logger"
)

// Notifier delivers a short message to the user outside the terminal.
type Notifier interface {
	Notify(title, body string) error
}

// Desktop sends notifications through the platform notification service.
type Desktop struct{}

// Notify implements Notifier.
func (Desktop) Notify(title, body string) error {
	return beeep.Notify(title, body, "")
}

// Noop discards notifications.
type Noop struct{}

// Notify implements Notifier.
func (Noop) Notify(string, string) error { return nil }

// SlowLoad notifies when a load took at least threshold. A zero threshold
// disables the check. Delivery failures are logged and otherwise ignored.
func SlowLoad(n Notifier, threshold, elapsed time.Duration, what string, rows int) bool {
	if n == nil || threshold <= 0 || elapsed < threshold {
		return false
	}

	title := "Bikeshare data ready"
	body := fmt.Sprintf("%s: %s trips loaded in %s", what, humanize.Comma(int64(rows)), elapsed.Round(time.Millisecond))
	if err := n.Notify(title, body); err != nil {
		logger.Warn("notification failed", "error", err)
		return false
	}
	return true
}
