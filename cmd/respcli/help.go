// =============================================================================
// help.go - Local Help Text
// =============================================================================
//
// The REPL answers ".help" itself without contacting the server:
//   - ".help"          overview of local commands and input rules
//   - ".help <topic>"  detailed help for one topic
//
// Server commands (GET, SET, ...) are documented by the server; this file
// only covers what the client does on its own.
//
// =============================================================================

package main

import (
	"fmt"
	"os"
	"strings"
)

// helpTopics maps a topic name to its detailed help text.
var helpTopics = map[string]string{
	"quit": `quit, exit
  Close the connection and leave respcli. Case does not matter.`,

	"help": `.help [topic]
  Show the overview, or detailed help for one topic.
  Topics: quit, help, quoting, replies, errors`,

	"quoting": `Quoting
  Arguments are separated by spaces. Wrap an argument in double quotes to
  keep spaces in it:

    SET greeting "hello world"

  There are no escape sequences; a quoted argument runs to the next double
  quote, or to the end of the line if there is none. Only the first 64
  arguments on a line are sent.`,

	"replies": `Replies
  Status and integer replies print as-is. Bulk strings print as text.
  Errors print as "(error) <message>". Missing values print as "(nil)".
  Arrays print one element per index, starting at 1) .`,

	"errors": `Errors
  Error replies from the server are shown and the session continues.
  Malformed replies are reported as protocol errors and the session
  continues. A lost connection ends the session.`,
}

// printHelp displays the overview, or detailed help for topic.
func printHelp(topic string) {
	if topic == "" {
		printHelpOverview()
		return
	}

	key := strings.ToLower(strings.TrimPrefix(topic, "."))
	if key == "exit" {
		key = "quit"
	}

	if text, ok := helpTopics[key]; ok {
		fmt.Println(text)
		return
	}

	fmt.Fprintf(os.Stderr, "Error: No help for '%s'. Type .help to see available topics.\n", topic)
}

// printHelpOverview prints the list of local commands.
func printHelpOverview() {
	fmt.Print(`Local Commands:
  .help [topic]     Show help (topics: quit, help, quoting, replies, errors)
  quit, exit        Leave respcli

Anything else is sent to the server as a command, for example:
  PING
  SET greeting "hello world"
  GET greeting
`)
}
