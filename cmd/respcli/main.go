// =============================================================================
// main.go - respcli Entry Point
// =============================================================================
//
// respcli is a minimal command-line client for Redis-compatible key-value
// servers. It connects over TCP, sends commands encoded as RESP multi-bulk
// frames, and prints the decoded replies.
//
// Usage:
//
//	respcli                              Interactive session with 127.0.0.1:6379
//	respcli -h db.local -p 6380          Interactive session with another server
//	respcli -a secret GET greeting       One-shot command after AUTH
//	respcli -- SET key "-5"              Everything after -- is the command
//	respcli --help                       Show help
//
// Connection settings may also come from the environment or a .env file
// (see config.go).
//
// =============================================================================

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
)

const (
	// version is the current version of respcli.
	version = "0.3.0"

	// appName is the application name.
	appName = "respcli"
)

// fullTitle returns the application name with its version.
func fullTitle() string {
	return fmt.Sprintf("%s v%s", appName, version)
}

// welcomeBanner returns the text printed when an interactive session starts.
func welcomeBanner(addr string) string {
	return fmt.Sprintf("Connected to %s. Enter commands (type 'quit' or 'exit' to stop).\n", addr)
}

// arguments holds the parsed command-line arguments.
//
// GO CONCEPT: Zero Values as "Not Specified"
// ------------------------------------------
// host and port stay "" unless given on the command line, so the config
// layer can tell "not given" apart from "given". password can legitimately
// be empty, so it carries a separate passwordSet flag.
type arguments struct {
	host        string
	port        string
	password    string
	passwordSet bool

	// verbose turns on debug logging to stderr.
	verbose bool

	showHelp    bool
	showVersion bool

	// command is the trailing one-shot command, if any. Each element is one
	// protocol argument; no quote handling is applied.
	command []string
}

// parseArguments parses os.Args.
func parseArguments() (arguments, error) {
	return parseArgumentList(os.Args[1:])
}

// parseArgumentList parses a list of arguments (without the program name).
// The first argument that is not a recognized flag starts the trailing
// command; "--" forces everything after it to be the command.
func parseArgumentList(remaining []string) (arguments, error) {
	var args arguments

	// takeValue consumes the value of a flag that requires one.
	takeValue := func(flag string) (string, error) {
		if len(remaining) == 0 {
			return "", fmt.Errorf("%s requires a value", flag)
		}
		v := remaining[0]
		remaining = remaining[1:]
		return v, nil
	}

	for len(remaining) > 0 {
		arg := remaining[0]
		remaining = remaining[1:]

		var err error
		switch arg {
		case "-h", "--host":
			args.host, err = takeValue(arg)

		case "-p", "--port":
			args.port, err = takeValue(arg)

		case "-a", "--password":
			args.password, err = takeValue(arg)
			args.passwordSet = err == nil

		case "--verbose":
			args.verbose = true

		case "--help":
			args.showHelp = true

		case "--version", "-v":
			args.showVersion = true

		case "--":
			args.command = remaining
			return args, nil

		default:
			if len(arg) > 1 && arg[0] == '-' {
				return args, fmt.Errorf("unknown argument: %s", arg)
			}
			args.command = append([]string{arg}, remaining...)
			return args, nil
		}
		if err != nil {
			return args, err
		}
	}

	return args, nil
}

// printUsage prints command-line help.
func printUsage() {
	fmt.Print(`USAGE: respcli [options] [command [arg ...]]

OPTIONS:
  -h, --host <host>       Server host (default 127.0.0.1)
  -p, --port <port>       Server port (default 6379)
  -a, --password <pass>   Send AUTH <pass> after connecting
  --verbose               Log protocol activity to stderr
  --help                  Show this help
  -v, --version           Show version

ENVIRONMENT:
  RESPCLI_HOST, RESPCLI_PORT, RESPCLI_PASSWORD, RESPCLI_LOG_LEVEL
  Values may also be placed in a .env file in the current directory.
  Command-line options take precedence.

EXAMPLES:
  respcli                          Interactive session
  respcli SET greeting hello       Run one command and exit
  respcli -p 6380 -a secret INFO   Authenticate, then run INFO

Without a command, respcli reads commands interactively. Type 'quit' or
'exit' to leave, '.help' for help.
`)
}

// printVersion prints the application title and version.
func printVersion() {
	fmt.Println(fullTitle())
}

// printError prints an error message to stderr.
func printError(message string) {
	fmt.Fprintf(os.Stderr, "Error: %s\n", message)
}

// setupSignalHandler runs cleanup and exits on SIGINT or SIGTERM.
//
// GO CONCEPT: Buffered Channels for Signals
// -----------------------------------------
// signal.Notify never blocks when delivering, so the channel needs a buffer
// of at least one or a signal arriving before the goroutine is ready would
// be dropped.
func setupSignalHandler(cleanup func()) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigCh
		fmt.Println()
		cleanup()
		os.Exit(0)
	}()
}

func main() {
	os.Exit(run())
}

// run is main without the os.Exit, returning the process exit code.
func run() int {
	args, err := parseArguments()
	if err != nil {
		printError(err.Error())
		printUsage()
		return 1
	}

	if args.showHelp {
		printUsage()
		return 0
	}

	if args.showVersion {
		printVersion()
		return 0
	}

	if err := loadDotEnv(); err != nil {
		printError(fmt.Sprintf("Error loading .env file, using environment only: %v", err))
	}

	cfg := NewConfig()
	if err := cfg.LoadFromEnv(); err != nil {
		printError(err.Error())
		return 1
	}
	if err := cfg.ApplyArguments(args); err != nil {
		printError(err.Error())
		return 1
	}

	logger := setupLogger(cfg.LogLevel)

	client, err := connectToServer(context.Background(), cfg, logger)
	if err != nil {
		printError(err.Error())
		return 1
	}

	var editor *LineEditor
	var once sync.Once
	cleanup := func() {
		once.Do(func() {
			client.Close()
			if editor != nil {
				editor.Close()
			}
			if len(args.command) == 0 {
				fmt.Println("Disconnected.")
			}
		})
	}
	setupSignalHandler(cleanup)
	defer cleanup()

	if len(args.command) > 0 {
		return runOneShot(client, args.command)
	}

	editor = NewLineEditor()
	fmt.Print(welcomeBanner(cfg.Addr()))

	if err := runREPL(client, editor, cfg.Addr()); err != nil {
		return 1
	}
	return 0
}
