package menu

import (
	"bufio"
	"context"
	"io"
	"strings"
	"sync"
)

// lineInput reads lines on a background goroutine so that a blocked read
// does not hold up context cancellation.
type lineInput struct {
	lines chan string
	done  chan struct{}
	once  sync.Once
	err   error // valid once lines is closed
}

func newLineInput(r io.Reader) *lineInput {
	in := &lineInput{
		lines: make(chan string),
		done:  make(chan struct{}),
	}
	go in.scan(r)
	return in
}

func (in *lineInput) scan(r io.Reader) {
	defer close(in.lines)
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		select {
		case in.lines <- scanner.Text():
		case <-in.done:
			return
		}
	}
	in.err = scanner.Err()
}

// next returns the next line with surrounding whitespace removed. It
// returns io.EOF when input is exhausted and ctx.Err() on cancellation.
func (in *lineInput) next(ctx context.Context) (string, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case line, ok := <-in.lines:
		if !ok {
			if in.err != nil {
				return "", in.err
			}
			return "", io.EOF
		}
		return strings.TrimSpace(line), nil
	}
}

func (in *lineInput) stop() {
	in.once.Do(func() { close(in.done) })
}
