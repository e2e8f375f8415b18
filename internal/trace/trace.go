// Package trace renders the literal trace blocks a reload run emits. The
// output is observational only and must stay byte-stable: downstream log
// scrapers match on it verbatim.
package trace

import (
	"strings"
	"time"
)

// TimestampLayout formats timestamps as YYYY-MM-DD hh:mm:ss.ffffff.
const TimestampLayout = "2006-01-02 15:04:05.000000"

// separator frames the run header. 65 characters, fixed.
var separator = strings.Repeat("=", 65)

// rule frames per-table banners inside generated stage scripts. 63 characters.
var rule = strings.Repeat("-", 63)

// UTCStamp formats t as a UTC timestamp in TimestampLayout.
func UTCStamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// Header returns the run trace block exactly as it appears in the trace sink:
//
//	TRACE
//	=====...
//	    GIT Branch: <branch>
//	=====...
//
// The branch is substituted verbatim, with no formatting applied.
func Header(branch string) string {
	var b strings.Builder
	b.WriteString("TRACE\n")
	b.WriteString(separator)
	b.WriteString("\n    GIT Branch: ")
	b.WriteString(branch)
	b.WriteString("\n")
	b.WriteString(separator)
	b.WriteString("\n")
	return b.String()
}

// Statement returns the same header as a platform Trace statement, the form
// embedded at the top of the assembled entry script.
func Statement(branch string) string {
	var b strings.Builder
	b.WriteString("Trace\n")
	b.WriteString(separator)
	b.WriteString("\n    GIT Branch: ")
	b.WriteString(branch)
	b.WriteString("\n")
	b.WriteString(separator)
	b.WriteString("\n;\n")
	return b.String()
}

// Banner returns a dashed banner statement used inside generated stage
// scripts, one message line framed by rules.
func Banner(msg string) string {
	var b strings.Builder
	b.WriteString("Trace\n")
	b.WriteString(rule)
	b.WriteString("\n    ")
	b.WriteString(msg)
	b.WriteString("\n")
	b.WriteString(rule)
	b.WriteString("\n;\n")
	return b.String()
}
