package loop

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"
)

// ErrInputClosed is returned by Run when input ends before the user quits.
var ErrInputClosed = errors.New("input closed before quit")

type lineResult struct {
	text string
	err  error
}

// Run prints the banner, waits the banner delay, then reads lines from r
// and writes prompts and feedback to w until the user quits.
func (l *Loop) Run(ctx context.Context, r io.Reader, w io.Writer) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if _, err := io.WriteString(w, l.Banner()); err != nil {
		return fmt.Errorf("write banner: %w", err)
	}

	if l.bannerDelay > 0 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(l.bannerDelay):
		}
	}

	lines := readLines(ctx, r)

	for !l.Done() {
		if _, err := io.WriteString(w, l.Prompt()); err != nil {
			return fmt.Errorf("write prompt: %w", err)
		}

		var line lineResult
		var ok bool
		select {
		case <-ctx.Done():
			return ctx.Err()
		case line, ok = <-lines:
		}
		if !ok {
			l.logger.Warn("input closed", "state", l.state)
			return ErrInputClosed
		}
		if line.err != nil {
			return fmt.Errorf("read input: %w", line.err)
		}

		l.logger.Debug("input", "state", l.state, "line", line.text)
		if out := l.Handle(line.text); out != "" {
			if _, err := io.WriteString(w, out); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
		}
	}

	return nil
}

// readLines reads r on its own goroutine so a blocked read never prevents
// Run from observing ctx. Lines have no length limit. The channel is closed
// at end of input or once ctx is done.
func readLines(ctx context.Context, r io.Reader) <-chan lineResult {
	ch := make(chan lineResult)
	go func() {
		defer close(ch)
		br := bufio.NewReader(r)
		for {
			text, err := br.ReadString('\n')
			var res lineResult
			switch {
			case err == nil || (err == io.EOF && text != ""):
				res.text = strings.TrimSuffix(text, "\n")
			case err == io.EOF:
				return
			default:
				res.err = err
			}

			select {
			case ch <- res:
			case <-ctx.Done():
				return
			}
			if err != nil {
				return
			}
		}
	}()
	return ch
}
