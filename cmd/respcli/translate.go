// =============================================================================
// translate.go - Input Translation (User Line → Local Action or Command)
// =============================================================================
//
// Every line the user types is either handled locally by the REPL or turned
// into a protocol command for the server:
//
//   quit / exit        → leave the REPL (case-insensitive)
//   .help [topic]      → print local help
//   (blank)            → re-prompt
//   anything else      → tokenized into a respproto.Command
//
// Tokenizing follows the protocol package's rules: spaces separate
// arguments, double quotes group words, and anything past the 64th argument
// is dropped.
//
//   SET greeting "hello world"   → ["SET", "greeting", "hello world"]
//
// =============================================================================

package main

import (
	"strings"

	"github.com/respcli/respcli/respproto"
)

// inputAction says what the REPL should do with one line of input.
type inputAction int

const (
	// actionSkip re-prompts without sending anything.
	actionSkip inputAction = iota
	// actionQuit ends the REPL.
	actionQuit
	// actionHelp prints local help.
	actionHelp
	// actionSend sends the translated command to the server.
	actionSend
)

// translatedInput is the result of translating one line.
type translatedInput struct {
	action inputAction
	cmd    respproto.Command // For actionSend
	topic  string            // For actionHelp
}

// translateInput decides what to do with a line of user input.
//
// Blank and whitespace-only lines map to actionSkip: the tokenizer reports
// them as ErrInvalidArgument and the REPL treats that as a silent re-prompt.
func translateInput(parser *respproto.CommandParser, line string) translatedInput {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return translatedInput{action: actionSkip}
	}

	if strings.EqualFold(trimmed, "quit") || strings.EqualFold(trimmed, "exit") {
		return translatedInput{action: actionQuit}
	}

	if trimmed == ".help" || strings.HasPrefix(trimmed, ".help ") {
		topic := strings.TrimSpace(strings.TrimPrefix(trimmed, ".help"))
		return translatedInput{action: actionHelp, topic: topic}
	}

	cmd, err := parser.Parse(line)
	if err != nil {
		return translatedInput{action: actionSkip}
	}
	return translatedInput{action: actionSend, cmd: cmd}
}
