// =============================================================================
// lineeditor.go - Line Editor with Dual-Mode Operation
// =============================================================================
//
// This file implements a dual-mode line editor for the respcli REPL. It
// detects whether stdin is an interactive terminal or a pipe and selects the
// appropriate input method:
//
//   - Interactive mode: Uses ergochat/readline for line editing with Emacs
//     keybindings, persistent history, and Ctrl-R history search.
//   - Non-interactive mode: Falls back to bufio.Scanner for simple line-by-
//     line reading, printing the prompt manually to stdout. This is what
//     `echo "PING" | respcli` and the tests exercise.
//
// History is stored at ~/.respcli_history with a 500-entry limit. Lines
// that contain a password (AUTH ...) are never written to history.
//
// =============================================================================

package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ergochat/readline"
	"golang.org/x/term"
)

const (
	// historyFileName is the name of the history file in the user's home
	// directory.
	historyFileName = ".respcli_history"

	// historySize is the maximum number of history entries to retain.
	historySize = 500

	// maxInputLine is the longest line the non-interactive scanner accepts.
	// Longer lines would not fit in a request frame anyway.
	maxInputLine = 1 << 20
)

// LineEditor reads lines of user input, with or without terminal editing.
//
// GO CONCEPT: Struct With Optional Components
// -------------------------------------------
// Only one of rl or scanner is set, depending on the mode chosen at
// construction time. The zero value of a pointer is nil, so methods simply
// check which one is present.
type LineEditor struct {
	// interactive is true when a TTY was detected and readline is active.
	interactive bool

	// rl is the readline instance (nil in non-interactive mode).
	rl *readline.Instance

	// scanner reads from stdin in non-interactive mode (nil otherwise).
	scanner *bufio.Scanner
}

// NewLineEditor creates a LineEditor, choosing interactive mode if stdin is
// a terminal and falling back to a scanner otherwise (or if readline fails
// to initialize).
func NewLineEditor() *LineEditor {
	isInteractive := term.IsTerminal(int(os.Stdin.Fd())) &&
		os.Getenv("INSIDE_EMACS") == ""

	if !isInteractive {
		return newScannerEditor()
	}

	historyPath := filepath.Join(homeDir(), historyFileName)

	rl, err := readline.NewFromConfig(&readline.Config{
		HistoryFile:  historyPath,
		HistoryLimit: historySize,

		// History is saved manually so that AUTH lines can be skipped.
		DisableAutoSaveHistory: true,

		Prompt: "",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: readline init failed (%v), using basic input\n", err)
		return newScannerEditor()
	}

	return &LineEditor{
		interactive: true,
		rl:          rl,
	}
}

func newScannerEditor() *LineEditor {
	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 0, 64*1024), maxInputLine)
	return &LineEditor{
		interactive: false,
		scanner:     scanner,
	}
}

// GetLine displays the prompt and reads one line of input. It returns
// io.EOF on end of input or Ctrl-C at the prompt.
func (le *LineEditor) GetLine(prompt string) (string, error) {
	if le.interactive {
		return le.getInteractiveLine(prompt)
	}
	return le.getNonInteractiveLine(prompt)
}

func (le *LineEditor) getInteractiveLine(prompt string) (string, error) {
	le.rl.SetPrompt(prompt)

	line, err := le.rl.Readline()
	if err != nil {
		if err == readline.ErrInterrupt {
			return "", io.EOF
		}
		return "", err
	}

	trimmed := strings.TrimSpace(line)
	if shouldSaveHistory(trimmed) {
		le.rl.SaveToHistory(trimmed)
	}

	return line, nil
}

func (le *LineEditor) getNonInteractiveLine(prompt string) (string, error) {
	fmt.Print(prompt)

	if !le.scanner.Scan() {
		if err := le.scanner.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}

	return le.scanner.Text(), nil
}

// shouldSaveHistory reports whether a trimmed input line belongs in the
// history file. Blank lines and AUTH commands are left out.
func shouldSaveHistory(trimmed string) bool {
	if trimmed == "" {
		return false
	}
	fields := strings.Fields(trimmed)
	return !strings.EqualFold(strings.Trim(fields[0], `"`), "AUTH")
}

// Close releases terminal resources. It is safe to call more than once.
func (le *LineEditor) Close() {
	if le.rl != nil {
		le.rl.Close()
		le.rl = nil
	}
}

// IsInteractive reports whether readline is in use.
func (le *LineEditor) IsInteractive() bool {
	return le.interactive
}

// homeDir returns the user's home directory, or "" if it cannot be found.
func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return home
}
