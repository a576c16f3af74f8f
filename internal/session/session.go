// Package session runs the interactive pair-entry loop over a UnionFind.
package session

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	unionfind "github.com/FrenchMajesty/dynamic-connectivity"
)

const (
	// SizePrompt asks for the number of objects
	SizePrompt = "Enter N - number of objects: "

	// PairPrompt asks for the next pair
	PairPrompt = "Enter p,q pair e.g. 1,2. Enter x to terminate: "

	// Terminator ends the session
	Terminator = "x"
)

// ErrInvalidPair is returned when a line is not of the form p,q
var ErrInvalidPair = errors.New("expected two integers separated by a comma")

// State is the position of a session in its lifecycle
type State int

const (
	AwaitInput State = iota
	Terminated
)

func (s State) String() string {
	switch s {
	case AwaitInput:
		return "await-input"
	case Terminated:
		return "terminated"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Summary counts what happened during a session
type Summary struct {
	Pairs            int
	Merged           int
	AlreadyConnected int
	Rejected         int
}

// Option configures a Session
type Option func(*Session)

// WithLogger sets the logger. The default discards.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithoutPrompt suppresses the pair prompt, for piped input
func WithoutPrompt() Option {
	return func(s *Session) {
		s.prompt = false
	}
}

// Session reads pairs from in and applies them to a UnionFind
type Session struct {
	uf     unionfind.UnionFind
	in     *bufio.Scanner
	out    io.Writer
	logger *slog.Logger
	prompt bool
	state  State
}

func New(uf unionfind.UnionFind, in io.Reader, out io.Writer, opts ...Option) *Session {
	s := &Session{
		uf:     uf,
		in:     bufio.NewScanner(in),
		out:    out,
		logger: slog.New(slog.DiscardHandler),
		prompt: true,
		state:  AwaitInput,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// State returns the current state
func (s *Session) State() State {
	return s.state
}

// Run processes lines until the terminator, end of input, or cancellation.
// Malformed and out-of-range pairs are reported and skipped. The returned
// error is non-nil only for read, write or context failures.
func (s *Session) Run(ctx context.Context) (Summary, error) {
	var sum Summary

	for s.state == AwaitInput {
		if err := ctx.Err(); err != nil {
			s.state = Terminated
			return sum, err
		}

		if s.prompt {
			if _, err := fmt.Fprint(s.out, PairPrompt); err != nil {
				s.state = Terminated
				return sum, fmt.Errorf("failed to write prompt: %w", err)
			}
		}

		if !s.in.Scan() {
			s.state = Terminated
			if err := s.in.Err(); err != nil {
				return sum, fmt.Errorf("failed to read input: %w", err)
			}
			s.logger.Debug("input closed", "pairs", sum.Pairs)
			return sum, nil
		}

		if err := s.step(strings.TrimSpace(s.in.Text()), &sum); err != nil {
			s.state = Terminated
			return sum, err
		}
	}
	return sum, nil
}

func (s *Session) step(line string, sum *Summary) error {
	switch line {
	case "":
		return nil
	case Terminator:
		s.state = Terminated
		_, err := fmt.Fprintln(s.out, "OVER")
		return err
	}

	p, q, err := ParsePair(line)
	if err != nil {
		sum.Rejected++
		s.logger.Debug("rejected line", "line", line, "error", err)
		_, werr := fmt.Fprintf(s.out, "Invalid pair %q: %v\n", line, err)
		return werr
	}

	connected, err := s.uf.Connected(p, q)
	if err != nil {
		sum.Rejected++
		s.logger.Debug("rejected pair", "p", p, "q", q, "error", err)
		_, werr := fmt.Fprintf(s.out, "Invalid pair %d,%d: %v\n", p, q, err)
		return werr
	}

	sum.Pairs++
	if connected {
		sum.AlreadyConnected++
		_, err = fmt.Fprintf(s.out, "Already connected %d and %d\n", p, q)
		return err
	}

	if err := s.uf.Union(p, q); err != nil {
		return fmt.Errorf("failed to union %d and %d: %w", p, q, err)
	}
	sum.Merged++
	s.logger.Debug("merged", "p", p, "q", q, "components", s.uf.Count())
	_, err = fmt.Fprintf(s.out, "Connected %d and %d\n", p, q)
	return err
}

// ParsePair parses "p,q". Whitespace around either integer is allowed.
func ParsePair(line string) (int, int, error) {
	left, right, ok := strings.Cut(line, ",")
	if !ok {
		return 0, 0, ErrInvalidPair
	}
	p, err := strconv.Atoi(strings.TrimSpace(left))
	if err != nil {
		return 0, 0, ErrInvalidPair
	}
	q, err := strconv.Atoi(strings.TrimSpace(right))
	if err != nil {
		return 0, 0, ErrInvalidPair
	}
	return p, q, nil
}

// ReadSize writes SizePrompt to out and reads N from the next line of r.
// Only that line is consumed, so r can be handed to New afterwards.
func ReadSize(r *bufio.Reader, out io.Writer) (int, error) {
	if out != nil {
		if _, err := fmt.Fprint(out, SizePrompt); err != nil {
			return 0, fmt.Errorf("failed to write prompt: %w", err)
		}
	}

	line, err := r.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return 0, fmt.Errorf("failed to read size: %w", err)
	}

	n, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", unionfind.ErrInvalidSize, strings.TrimSpace(line))
	}
	if n <= 0 {
		return 0, fmt.Errorf("%w: %d", unionfind.ErrInvalidSize, n)
	}
	return n, nil
}
