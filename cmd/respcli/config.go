// =============================================================================
// config.go - Connection and Logging Configuration
// =============================================================================
//
// Settings come from four places, later ones winning:
//
//   1. Built-in defaults (127.0.0.1:6379, no password, warn logging)
//   2. A .env file in the working directory, if present
//   3. Environment variables (RESPCLI_HOST, RESPCLI_PORT, ...)
//   4. Command-line flags
//
// The .env file is loaded with godotenv, which only sets variables that are
// not already in the environment, so a real environment variable always
// beats the file.
//
// =============================================================================

package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/respcli/respcli/respproto"
	"github.com/rs/zerolog"
)

// Environment variable names.
const (
	envHost     = "RESPCLI_HOST"
	envPort     = "RESPCLI_PORT"
	envPassword = "RESPCLI_PASSWORD"
	envLogLevel = "RESPCLI_LOG_LEVEL"
)

// Config holds everything needed to reach and talk to the server.
type Config struct {
	Host     string
	Port     int
	Password string
	LogLevel zerolog.Level
}

// NewConfig returns the built-in defaults.
func NewConfig() *Config {
	return &Config{
		Host:     respproto.DefaultHost,
		Port:     respproto.DefaultPort,
		LogLevel: zerolog.WarnLevel,
	}
}

// Addr returns the host:port to dial.
func (c *Config) Addr() string {
	return respproto.Address(c.Host, c.Port)
}

// loadDotEnv loads variables from the given .env files (or ./.env if none
// are named). A missing file is not an error.
func loadDotEnv(filenames ...string) error {
	if len(filenames) == 0 {
		filenames = []string{".env"}
	}

	var existing []string
	for _, name := range filenames {
		if _, err := os.Stat(name); err == nil {
			existing = append(existing, name)
		}
	}
	if len(existing) == 0 {
		return nil
	}
	return godotenv.Load(existing...)
}

// LoadFromEnv overrides fields from environment variables.
func (c *Config) LoadFromEnv() error {
	if host := os.Getenv(envHost); host != "" {
		c.Host = host
	}
	if port := os.Getenv(envPort); port != "" {
		p, err := parsePort(port)
		if err != nil {
			return fmt.Errorf("%s: %w", envPort, err)
		}
		c.Port = p
	}
	if password := os.Getenv(envPassword); password != "" {
		c.Password = password
	}
	if level := os.Getenv(envLogLevel); level != "" {
		l, err := zerolog.ParseLevel(strings.ToLower(level))
		if err != nil {
			return fmt.Errorf("%s: %w", envLogLevel, err)
		}
		c.LogLevel = l
	}
	return nil
}

// ApplyArguments overrides fields with anything given on the command line.
func (c *Config) ApplyArguments(args arguments) error {
	if args.host != "" {
		c.Host = args.host
	}
	if args.port != "" {
		p, err := parsePort(args.port)
		if err != nil {
			return fmt.Errorf("--port: %w", err)
		}
		c.Port = p
	}
	if args.passwordSet {
		c.Password = args.password
	}
	if args.verbose {
		c.LogLevel = zerolog.DebugLevel
	}
	return nil
}

// parsePort parses a TCP port number in the range 1-65535.
func parsePort(s string) (int, error) {
	p, err := strconv.Atoi(s)
	if err != nil || p < 1 || p > 65535 {
		return 0, fmt.Errorf("invalid port '%s'", s)
	}
	return p, nil
}
