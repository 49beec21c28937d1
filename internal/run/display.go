package run

import (
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"
)

// Display prints the human-facing lines for each cycle.
type Display struct {
	w   io.Writer
	loc *time.Location
}

// NewDisplay creates a display that writes to stdout in local time.
func NewDisplay() *Display {
	return &Display{w: os.Stdout, loc: time.Local}
}

// maxResultWidth bounds the result text shown on a cycle line.
var maxResultWidth = 200

// ansiEscapeRe matches ANSI terminal escape sequences and C0/DEL control characters.
var ansiEscapeRe = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]|[\x00-\x1f\x7f]`)

// sanitize strips escape sequences and control characters from model output
// so one cycle always prints as one line.
func sanitize(s string) string {
	return strings.TrimSpace(ansiEscapeRe.ReplaceAllString(s, " "))
}

func truncate(s string) string {
	if utf8.RuneCountInString(s) <= maxResultWidth {
		return s
	}
	runes := []rune(s)
	return string(runes[:maxResultWidth-1]) + "…"
}

// Header prints the startup banner.
func (d *Display) Header(pipeline string, steps int) {
	fmt.Fprintf(d.w, "🚀 pulse — pipeline %q built (%d step", pipeline, steps)
	if steps != 1 {
		fmt.Fprint(d.w, "s")
	}
	fmt.Fprintln(d.w, ")")
}

// Cycle prints the line for one record, with the next sleep when next > 0.
func (d *Display) Cycle(rec Record, next time.Duration) {
	ts := rec.StartedAt.In(d.loc).Format("15:04:05")
	var line string
	if rec.OK() {
		line = fmt.Sprintf("[%s] cycle %d ✅ %s", ts, rec.Cycle, truncate(sanitize(rec.Result)))
	} else {
		line = fmt.Sprintf("[%s] cycle %d ⚠️  error (%s): %s", ts, rec.Cycle, rec.ErrorKind, truncate(sanitize(rec.Error)))
	}
	if next > 0 {
		line += fmt.Sprintf("  💤 next in %s", next)
	}
	fmt.Fprintln(d.w, line)
}
