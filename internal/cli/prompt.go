package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"intl-extract/internal/extract"
)

// prompter asks on the terminal. Without a terminal it takes the suggested
// key, or one derived from the value, and never overwrites unless forced.
type prompter struct {
	in          *bufio.Reader
	out         io.Writer
	interactive bool
	force       bool
}

func newPrompter(in io.Reader, out io.Writer, force bool) *prompter {
	interactive := false
	if f, ok := in.(*os.File); ok {
		interactive = term.IsTerminal(int(f.Fd()))
	}
	return &prompter{
		in:          bufio.NewReader(in),
		out:         out,
		interactive: interactive,
		force:       force,
	}
}

func (p *prompter) AskKey(ctx context.Context, value, suggested string) (string, bool) {
	if !p.interactive {
		if suggested == "" {
			suggested = extract.KeyFromValue(value)
		}
		return suggested, true
	}

	if suggested != "" {
		fmt.Fprintf(p.out, "Key for %q [%s]: ", value, suggested)
	} else {
		fmt.Fprintf(p.out, "Key for %q: ", value)
	}

	line, ok := p.readLine(ctx)
	if !ok {
		return "", false
	}
	if line == "" {
		return suggested, suggested != ""
	}
	return line, true
}

func (p *prompter) ConfirmOverwrite(ctx context.Context, key string) bool {
	if p.force {
		return true
	}
	if !p.interactive {
		return false
	}

	fmt.Fprintf(p.out, "Key %q already exists. Overwrite? [y/N]: ", key)
	line, ok := p.readLine(ctx)
	if !ok {
		return false
	}
	switch strings.ToLower(line) {
	case "y", "yes":
		return true
	}
	return false
}

// readLine returns false on EOF or when ctx is done before input arrives.
func (p *prompter) readLine(ctx context.Context) (string, bool) {
	type result struct {
		line string
		err  error
	}
	ch := make(chan result, 1)
	go func() {
		line, err := p.in.ReadString('\n')
		ch <- result{line, err}
	}()

	select {
	case <-ctx.Done():
		fmt.Fprintln(p.out)
		return "", false
	case r := <-ch:
		if r.err != nil && r.line == "" {
			return "", false
		}
		return strings.TrimSpace(r.line), true
	}
}
