package common

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"

	"github.com/danieldk/embednet"
	"github.com/spf13/cobra"
)

// Exit codes shared by the command-line tools.
const (
	ExitSuccess     = 0 // Success
	ExitError       = 1 // Usage error, I/O failure
	ExitConfigError = 2 // Invalid configuration file, environment or flag value
	ExitDataError   = 3 // Malformed or degenerate embeddings
)

// ConfigError marks errors in the configuration of a tool.
type ConfigError struct {
	Err error
}

func (e *ConfigError) Error() string {
	return e.Err.Error()
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// ExitCode maps an error to the exit code of a tool.
func ExitCode(err error) int {
	var parseErr *embednet.ParseError
	var domainErr *embednet.DomainError
	var configErr *ConfigError

	switch {
	case err == nil:
		return ExitSuccess
	case errors.As(err, &parseErr), errors.As(err, &domainErr):
		return ExitDataError
	case errors.As(err, &configErr):
		return ExitConfigError
	default:
		return ExitError
	}
}

// Execute runs a command and exits with the mapped exit code if it
// fails. The command context is canceled on an interrupt.
func Execute(cmd *cobra.Command) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := cmd.ExecuteContext(ctx)
	stop()

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(ExitCode(err))
	}
}

// NewLogger returns the operator-facing logger of a tool.
func NewLogger(tool string) *log.Logger {
	return log.New(os.Stderr, tool+": ", log.LstdFlags)
}
