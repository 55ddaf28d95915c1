package app

import (
	"fmt"
	"io"
	"strings"

	"github.com/aussiebroadwan/fireme/pkg/notify"
)

// Display is the single consumer of the notice queue. It prints each
// notice once, in push order.
type Display struct {
	Notices *notify.Channel
	Out     io.Writer
}

var severityLabel = map[notify.Severity]string{
	notify.SeverityError:   "error",
	notify.SeverityWarning: "warning",
	notify.SeverityInfo:    "info",
	notify.SeveritySuccess: "ok",
}

// Flush prints and removes everything queued. It returns how many of the
// printed notices were errors.
func (d *Display) Flush() (errs int) {
	for {
		n, ok := d.Notices.PeekFirst()
		if !ok {
			return errs
		}
		label := severityLabel[n.Severity]
		// Field errors arrive one per line; keep them under their label.
		msg := strings.ReplaceAll(n.Message, "\n", "\n"+strings.Repeat(" ", len(label)+2))
		fmt.Fprintf(d.Out, "%s: %s\n", label, msg)
		if n.Severity == notify.SeverityError {
			errs++
		}
		d.Notices.Advance()
	}
}
