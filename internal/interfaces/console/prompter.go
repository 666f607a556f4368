package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
)

const (
	cancelCommand = "/cancel"
	maxLineSize   = 1 << 20
)

// Prompter runs blocking dialogs on a line-oriented terminal. End of input,
// a /cancel line or a cancelled context cancels the pending dialog.
type Prompter struct {
	in  *bufio.Scanner
	out io.Writer

	once  sync.Once
	lines chan string
	// readErr is set before lines is closed
	readErr error
}

// NewPrompter creates a new console prompter
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, bufio.MaxScanTokenSize), maxLineSize)

	return &Prompter{
		in:  scanner,
		out: out,
	}
}

// AskText prints prompt and reads one line. An empty line returns initial.
func (p *Prompter) AskText(ctx context.Context, prompt, initial string) (string, bool) {
	fmt.Fprintf(p.out, "\n%s\n", prompt)
	if initial != "" {
		fmt.Fprintf(p.out, "[%s] ", initial)
	}
	fmt.Fprint(p.out, "> ")

	line, ok := p.readLine(ctx)
	if !ok || line == cancelCommand {
		return "", false
	}
	if line == "" {
		return initial, true
	}

	return line, true
}

// AskYesNo asks until the answer is yes or no. Cancelling counts as no.
func (p *Prompter) AskYesNo(ctx context.Context, prompt string) bool {
	fmt.Fprintf(p.out, "\n%s\n", prompt)

	for {
		fmt.Fprint(p.out, "[y/n] > ")

		line, ok := p.readLine(ctx)
		if !ok {
			return false
		}

		switch strings.ToLower(line) {
		case "y", "yes":
			return true
		case "n", "no", cancelCommand:
			return false
		}

		fmt.Fprintln(p.out, "Please answer yes or no.")
	}
}

// ShowInfo prints a titled message
func (p *Prompter) ShowInfo(_ context.Context, title, body string) {
	fmt.Fprintf(p.out, "\n== %s ==\n%s\n", title, body)
}

// ShowError prints a titled error message
func (p *Prompter) ShowError(_ context.Context, title, body string) {
	fmt.Fprintf(p.out, "\n!! %s !!\n%s\n", title, body)
}

// startReading feeds input lines to p.lines from a single goroutine, so a
// pending read can be abandoned when the context is cancelled.
func (p *Prompter) startReading() {
	p.once.Do(func() {
		p.lines = make(chan string)
		go func() {
			defer close(p.lines)
			for p.in.Scan() {
				p.lines <- p.in.Text()
			}
			p.readErr = p.in.Err()
		}()
	})
}

func (p *Prompter) readLine(ctx context.Context) (string, bool) {
	if ctx.Err() != nil {
		return "", false
	}
	p.startReading()

	select {
	case <-ctx.Done():
		return "", false
	case line, ok := <-p.lines:
		if !ok {
			if p.readErr != nil {
				fmt.Fprintf(p.out, "\n!! Input Error !!\n%v\n", p.readErr)
			}
			return "", false
		}
		return strings.TrimSpace(line), true
	}
}
