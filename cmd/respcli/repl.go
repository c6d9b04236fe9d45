// =============================================================================
// repl.go - REPL Loop and One-Shot Execution
// =============================================================================
//
// The REPL reads a line, translates it (translate.go), sends the resulting
// command, and prints the decoded reply. Exactly one request is in flight at
// a time: the next prompt is not shown until the previous reply has been
// fully read.
//
// Errors are handled by kind:
//
//   ErrInvalidArgument   blank input            re-prompt silently
//   ErrCapacityExceeded  request too large      report, keep going
//   ProtocolError        malformed reply        report, keep going
//   ConnectionError      socket closed/failed   report, leave the loop
//
// Server error replies ("-ERR ...") are ordinary replies and print as
// "(error) ...".
//
// =============================================================================

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/respcli/respcli/respproto"
	"github.com/rs/zerolog/log"
)

// prompt returns the REPL prompt for a server address, e.g. "127.0.0.1:6379> ".
func prompt(addr string) string {
	return addr + "> "
}

// runREPL runs the interactive loop until the user quits, input ends, or the
// connection is lost. It returns the connection error in the last case and
// nil otherwise.
func runREPL(client *respproto.Client, editor *LineEditor, addr string) error {
	parser := respproto.NewCommandParser()

	for {
		line, err := editor.GetLine(prompt(addr))
		if err != nil {
			// EOF (Ctrl-D), Ctrl-C at the prompt, or a read error
			fmt.Println()
			if err != io.EOF {
				log.Debug().Err(err).Msg("input closed")
			}
			return nil
		}

		in := translateInput(parser, line)
		switch in.action {
		case actionSkip:
			continue
		case actionQuit:
			return nil
		case actionHelp:
			printHelp(in.topic)
			continue
		}

		if err := sendAndPrint(client, in.cmd); err != nil {
			if respproto.IsConnectionError(err) || errors.Is(err, respproto.ErrNotConnected) {
				return err
			}
		}
	}
}

// runOneShot sends a single command built from command-line arguments and
// prints the reply. It returns the process exit code: 0 on success, 1 if the
// server replied with an error or the exchange failed.
func runOneShot(client *respproto.Client, args []string) int {
	cmd := respproto.NewCommand(args...)
	if err := sendAndPrint(client, cmd); err != nil {
		return 1
	}
	return 0
}

// errServerReply marks an exchange that succeeded at the protocol level but
// got an error reply from the server.
var errServerReply = errors.New("server returned an error reply")

// sendAndPrint sends cmd, writes the formatted reply to stdout, and reports
// local failures on stderr. The returned error tells the caller whether to
// keep going; it has already been shown to the user.
func sendAndPrint(client *respproto.Client, cmd respproto.Command) error {
	log.Debug().Str("command", cmd.Format()).Msg("sending")

	reply, err := client.Send(cmd)
	if err != nil {
		switch {
		case errors.Is(err, respproto.ErrInvalidArgument):
			// nothing to send
		case errors.Is(err, respproto.ErrCapacityExceeded):
			printError("command too long")
		default:
			printError(err.Error())
		}
		return err
	}

	if _, err := reply.WriteTo(os.Stdout); err != nil {
		return errors.Wrap(err, "write reply")
	}
	if reply.IsError() {
		return errServerReply
	}
	return nil
}
