package respproto

import (
	"github.com/pkg/errors"
)

// CommandParser turns lines of user input into commands.
type CommandParser struct {
	maxArgs int
}

// NewCommandParser creates a new command parser capped at MaxArgs arguments.
func NewCommandParser() *CommandParser {
	return &CommandParser{maxArgs: MaxArgs}
}

// Parse tokenizes a line into a Command.
// A blank line yields ErrInvalidArgument so that nothing is ever encoded for it.
func (p *CommandParser) Parse(line string) (Command, error) {
	args := tokenize(line, p.maxArgs)
	if len(args) == 0 {
		return Command{}, errors.Wrap(ErrInvalidArgument, "empty command")
	}
	return Command{Args: args}, nil
}

// Tokenize splits a line into arguments using MaxArgs as the cap.
//
// Spaces separate arguments and runs of spaces collapse. A double quote at the
// start of an argument opens a quoted segment that runs verbatim to the next
// double quote, or to the end of the line if none follows; the quotes are not
// part of the argument and there are no escapes. Only the space character
// separates; tabs are ordinary argument bytes.
func Tokenize(line string) []string {
	return tokenize(line, MaxArgs)
}

func tokenize(line string, maxArgs int) []string {
	var args []string
	i := 0
	for i < len(line) {
		for i < len(line) && line[i] == ' ' {
			i++
		}
		if i >= len(line) {
			break
		}

		var start, end int
		if line[i] == '"' {
			i++
			start = i
			for i < len(line) && line[i] != '"' {
				i++
			}
			end = i
			if i < len(line) {
				i++ // closing quote
			}
		} else {
			start = i
			for i < len(line) && line[i] != ' ' {
				i++
			}
			end = i
		}

		args = append(args, line[start:end])
		if len(args) >= maxArgs {
			break
		}
	}
	return args
}
