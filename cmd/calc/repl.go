package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/peterh/liner"

	"github.com/zephyrtronium/calc"
)

const rule = "---------------------"

// lineReader reads a line of input after showing a prompt. *liner.State
// implements it.
type lineReader interface {
	Prompt(prompt string) (string, error)
}

// session is an interactive calculator session.
type session struct {
	in     lineReader
	out    io.Writer
	errout io.Writer
	logger *slog.Logger
	// format is the fmt verb for results.
	format string
	// prompt is shown when asking for an expression.
	prompt string
	// history, if not nil, records each expression entered.
	history func(string)
}

// run evaluates expressions until the user declines to continue or input
// ends. Evaluation errors are printed and never end the session.
func (s *session) run() error {
	cont := true
	for cont {
		line, err := s.in.Prompt(s.prompt)
		if err != nil {
			return endOfInput(err)
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		if s.history != nil {
			s.history(line)
		}
		s.eval(line)
		cont, err = s.askContinue()
		if err != nil {
			return endOfInput(err)
		}
	}
	fmt.Fprintln(s.out, rule)
	fmt.Fprintln(s.out, "Program exited.")
	return nil
}

// eval evaluates one expression and prints its result or error.
func (s *session) eval(line string) {
	r, err := calc.Eval(line)
	if err != nil {
		s.logger.Debug("evaluation failed", "expr", line, "err", err)
		fmt.Fprintln(s.errout, "Error:", err)
		return
	}
	s.logger.Debug("evaluated", "expr", line, "result", r)
	fmt.Fprintf(s.out, "Result: "+s.format+"\n", r)
}

// askContinue asks whether to evaluate another expression until it gets a
// yes or no answer. Only the first non-space character of the answer counts.
func (s *session) askContinue() (bool, error) {
	for {
		fmt.Fprintln(s.out, rule)
		ans, err := s.in.Prompt("Do you want to continue? [y/n]:")
		if err != nil {
			return false, err
		}
		ans = strings.TrimSpace(ans)
		switch {
		case strings.HasPrefix(ans, "y"):
			fmt.Fprintln(s.out, rule)
			return true, nil
		case strings.HasPrefix(ans, "n"):
			return false, nil
		}
		fmt.Fprintln(s.out, "Invalid input!")
	}
}

// endOfInput converts the errors that mean the user is done into nil.
func endOfInput(err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, liner.ErrPromptAborted) {
		return nil
	}
	return err
}

// batch evaluates each non-blank line of in as an expression, printing each
// result to out and each error to errout. Lines may be any length. The result
// is the number of expressions that failed.
func batch(in io.Reader, name string, out, errout io.Writer, format string, logger *slog.Logger) (int, error) {
	r := bufio.NewReader(in)
	failed, n := 0, 0
	for {
		line, err := r.ReadString('\n')
		if line != "" {
			n++
			line = strings.TrimRight(line, "\r\n")
			if strings.TrimSpace(line) != "" && !evalOne(line, out, errout, format, logger, name+":"+fmt.Sprint(n)) {
				failed++
			}
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return failed, nil
			}
			return failed, fmt.Errorf("reading %s: %w", name, err)
		}
	}
}

// evalOne evaluates an expression outside an interactive session. where
// identifies the expression in error messages.
func evalOne(src string, out, errout io.Writer, format string, logger *slog.Logger, where string) bool {
	r, err := calc.Eval(src)
	if err != nil {
		logger.Debug("evaluation failed", "where", where, "expr", src, "err", err)
		fmt.Fprintf(errout, "%s: %v\n", where, err)
		return false
	}
	logger.Debug("evaluated", "where", where, "expr", src, "result", r)
	fmt.Fprintf(out, format+"\n", r)
	return true
}
