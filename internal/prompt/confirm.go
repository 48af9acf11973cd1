package prompt

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// maxAttempts bounds how often an unrecognized answer is asked again.
const maxAttempts = 3

// Confirmer asks yes/no questions on a line-oriented stream.
type Confirmer struct {
	In            io.Reader
	Out           io.Writer
	IsInteractive func() bool
}

// DefaultConfirmer reads stdin and writes to stdout, and is interactive
// only when stdin is a terminal.
func DefaultConfirmer() Confirmer {
	return Confirmer{
		In:  os.Stdin,
		Out: os.Stdout,
		IsInteractive: func() bool {
			return term.IsTerminal(int(os.Stdin.Fd()))
		},
	}
}

// Confirm returns true for y/yes. With force set it answers yes without
// reading. Without a terminal it refuses and points at -y. An empty answer or
// EOF means no; anything else is asked again up to maxAttempts times.
func (c Confirmer) Confirm(question string, force bool) (bool, error) {
	if force {
		return true, nil
	}
	if c.IsInteractive == nil || !c.IsInteractive() {
		return false, fmt.Errorf("non-interactive stdin: use -y to confirm %q", question)
	}

	scanner := bufio.NewScanner(c.In)
	for attempt := 0; attempt < maxAttempts; attempt++ {
		if c.Out != nil {
			fmt.Fprintf(c.Out, "%s (y/n): ", question)
		}
		if !scanner.Scan() {
			return false, scanner.Err()
		}
		switch strings.ToLower(strings.TrimSpace(scanner.Text())) {
		case "y", "yes":
			return true, nil
		case "", "n", "no":
			return false, nil
		}
		if c.Out != nil {
			fmt.Fprintln(c.Out, "Please answer y or n.")
		}
	}
	return false, nil
}
