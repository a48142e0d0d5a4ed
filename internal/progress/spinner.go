package progress

import (
	"fmt"
	"io"
	"time"

	"github.com/briandowns/spinner"
)

// Spinner shows an animated status line on terminals and stays silent
// until the final status line elsewhere.
type Spinner struct {
	out     io.Writer
	symbols ProgressSymbols
	spin    *spinner.Spinner
	quiet   bool
}

// NewSpinner creates a spinner writing to out. Animation is enabled only
// when caps reports a TTY.
func NewSpinner(out io.Writer, caps TerminalCapabilities) *Spinner {
	symbols := SelectSymbols(caps)
	s := &Spinner{out: out, symbols: symbols}
	if caps.IsTTY {
		s.spin = spinner.New(
			spinner.CharSets[symbols.SpinnerSet],
			100*time.Millisecond,
			spinner.WithWriter(out),
			spinner.WithHiddenCursor(true),
		)
	}
	return s
}

// SetQuiet suppresses the final status lines. Animation still runs.
func (s *Spinner) SetQuiet(quiet bool) {
	s.quiet = quiet
}

// Start begins animating with message as the suffix.
func (s *Spinner) Start(message string) {
	if s.spin == nil {
		return
	}
	s.spin.Suffix = " " + message
	s.spin.Start()
}

// Succeed stops the spinner and prints message with the success symbol.
func (s *Spinner) Succeed(message string) {
	s.finish(s.symbols.Checkmark, message)
}

// Fail stops the spinner and prints message with the failure symbol.
func (s *Spinner) Fail(message string) {
	s.finish(s.symbols.Failure, message)
}

// Stop stops the spinner without a status line.
func (s *Spinner) Stop() {
	if s.spin != nil && s.spin.Active() {
		s.spin.Stop()
	}
}

func (s *Spinner) finish(symbol, message string) {
	s.Stop()
	if s.quiet {
		return
	}
	fmt.Fprintf(s.out, "%s %s\n", symbol, message)
}
