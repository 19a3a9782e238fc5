package intelxaudit

import (
	"fmt"
	"io"

	"github.com/pterm/pterm"
)

// Reporter receives every user-facing message of an audit run.
type Reporter interface {
	Info(format string, a ...any)
	Success(format string, a ...any)
	Warning(format string, a ...any)
	Error(format string, a ...any)

	// Finding prints a single leak record of the summary.
	Finding(date, name string)
}

type consoleReporter struct {
	w       io.Writer
	info    *pterm.PrefixPrinter
	success *pterm.PrefixPrinter
	warning *pterm.PrefixPrinter
	failure *pterm.PrefixPrinter
}

// NewConsoleReporter returns a Reporter that prints severity-prefixed lines to w.
func NewConsoleReporter(w io.Writer) Reporter {
	return &consoleReporter{
		w:       w,
		info:    pterm.Info.WithWriter(w),
		success: pterm.Success.WithWriter(w),
		warning: pterm.Warning.WithWriter(w),
		failure: pterm.Error.WithWriter(w),
	}
}

func (r *consoleReporter) Info(format string, a ...any) {
	r.info.Println(fmt.Sprintf(format, a...))
}

func (r *consoleReporter) Success(format string, a ...any) {
	r.success.Println(fmt.Sprintf(format, a...))
}

func (r *consoleReporter) Warning(format string, a ...any) {
	r.warning.Println(fmt.Sprintf(format, a...))
}

func (r *consoleReporter) Error(format string, a ...any) {
	r.failure.Println(fmt.Sprintf(format, a...))
}

func (r *consoleReporter) Finding(date, name string) {
	pterm.Fprintln(r.w, fmt.Sprintf("    -> %s | %s", date, name))
}
