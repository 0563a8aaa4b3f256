// Package prompt reads answers to interactive questions one line at a time.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"github.com/chzyer/readline"
)

// Reader prints a prompt and returns the next line without its terminator.
// It returns io.EOF once input is exhausted.
type Reader interface {
	ReadLine(prompt string) (string, error)
}

// Scanner reads lines from any io.Reader. It is used when stdin is not a
// terminal (pipes, scripted input) and in tests.
type Scanner struct {
	scanner *bufio.Scanner
	out     io.Writer
}

// NewScanner returns a Scanner reading from in and echoing prompts to out.
func NewScanner(in io.Reader, out io.Writer) *Scanner {
	return &Scanner{scanner: bufio.NewScanner(in), out: out}
}

// ReadLine implements Reader.
func (s *Scanner) ReadLine(prompt string) (string, error) {
	fmt.Fprint(s.out, prompt)
	if !s.scanner.Scan() {
		if err := s.scanner.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return s.scanner.Text(), nil
}

// Terminal reads lines with editing support via readline.
type Terminal struct {
	rl *readline.Instance
}

// NewTerminal opens a readline instance on the process terminal.
func NewTerminal() (*Terminal, error) {
	rl, err := readline.NewEx(&readline.Config{
		HistoryLimit:           -1,
		DisableAutoSaveHistory: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open terminal: %w", err)
	}
	return &Terminal{rl: rl}, nil
}

// ReadLine implements Reader. Ctrl-C ends input like Ctrl-D does.
func (t *Terminal) ReadLine(prompt string) (string, error) {
	t.rl.SetPrompt(prompt)
	line, err := t.rl.Readline()
	if errors.Is(err, readline.ErrInterrupt) {
		return "", io.EOF
	}
	return line, err
}

// Close releases the terminal.
func (t *Terminal) Close() error {
	return t.rl.Close()
}

// Open returns a Terminal when stdin and stdout are attached to a terminal,
// otherwise a Scanner over in/out. The returned close function is never nil.
func Open(in io.Reader, out io.Writer) (Reader, func() error) {
	if readline.DefaultIsTerminal() {
		if t, err := NewTerminal(); err == nil {
			return t, t.Close
		}
	}
	return NewScanner(in, out), func() error { return nil }
}
