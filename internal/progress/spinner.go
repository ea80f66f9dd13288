package progress

import (
	"fmt"
	"io"
	"time"

	"github.com/briandowns/spinner"
)

// Spinner shows activity for a long-running step. On non-TTY output it
// prints plain lines instead, so logs stay readable.
type Spinner struct {
	caps    TerminalCapabilities
	symbols ProgressSymbols
	out     io.Writer
	spin    *spinner.Spinner
}

// NewSpinner creates a Spinner writing to out.
func NewSpinner(out io.Writer) *Spinner {
	caps := DetectTerminalCapabilities()
	return &Spinner{
		caps:    caps,
		symbols: SelectSymbols(caps),
		out:     out,
	}
}

// Start begins showing activity with the given message.
func (s *Spinner) Start(message string) {
	if !s.caps.IsTTY {
		fmt.Fprintf(s.out, "%s...\n", message)
		return
	}

	s.spin = spinner.New(spinner.CharSets[s.symbols.SpinnerSet], 100*time.Millisecond,
		spinner.WithWriter(s.out))
	s.spin.Suffix = " " + message
	s.spin.Start()
}

// Stop ends the spinner and prints the outcome line.
func (s *Spinner) Stop(success bool, message string) {
	if s.spin != nil {
		s.spin.Stop()
		s.spin = nil
	}

	symbol := s.symbols.Checkmark
	if !success {
		symbol = s.symbols.Failure
	}
	fmt.Fprintf(s.out, "%s %s\n", symbol, message)
}
