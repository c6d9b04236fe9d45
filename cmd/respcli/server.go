// =============================================================================
// server.go - Connecting and Authenticating to the Server
// =============================================================================
//
// Before the REPL starts, the CLI needs a ready-to-use session:
//
//   1. Dial the server over TCP (respproto.Client.Connect)
//   2. If a password is configured, send AUTH and check for +OK
//
// Either step failing is fatal: the caller prints the error and exits.
//
// =============================================================================

package main

import (
	"context"
	"fmt"

	"github.com/respcli/respcli/respproto"
	"github.com/rs/zerolog"
)

// connectToServer dials cfg.Addr() and authenticates if cfg.Password is set.
// On failure nothing is left open.
func connectToServer(ctx context.Context, cfg *Config, logger zerolog.Logger) (*respproto.Client, error) {
	client := respproto.NewClient()
	client.SetLogger(logger)

	addr := cfg.Addr()
	logger.Debug().Str("addr", addr).Msg("connecting")
	if err := client.ConnectWithContext(ctx, addr); err != nil {
		return nil, fmt.Errorf("could not connect to %s: %w", addr, err)
	}

	if cfg.Password != "" {
		if err := client.Auth(cfg.Password); err != nil {
			client.Close()
			return nil, fmt.Errorf("AUTH failed: %w", err)
		}
		logger.Debug().Msg("authenticated")
	}

	return client, nil
}
