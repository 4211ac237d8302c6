package votebot

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrTargetNotSet indicates the VOTE_FOR environment variable is absent.
var ErrTargetNotSet = errors.New(TargetEnv + " is not set")

// ResolutionError is returned when a value does not name a voting target.
type ResolutionError struct {
	Value string
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("unrecognized voting target: %s", e.Value)
}

// ConfigError reports a missing or malformed configuration value. Err is
// either ErrTargetNotSet or a *ResolutionError.
type ConfigError struct {
	Key string
	Err error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid configuration for %s: %v", e.Key, e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }
func (e *ConfigError) Cause() error  { return e.Err }

// ConnectError is returned when a channel to Addr could not be established.
// No usable channel exists when it is returned.
type ConnectError struct {
	Addr string
	Err  error
}

func (e *ConnectError) Error() string {
	return fmt.Sprintf("unable to connect to %s: %v", e.Addr, e.Err)
}

func (e *ConnectError) Unwrap() error { return e.Err }
func (e *ConnectError) Cause() error  { return e.Err }

// PreflightError is returned when an auxiliary endpoint is unreachable before
// voting starts.
type PreflightError struct {
	Addr string
	Err  error
}

func (e *PreflightError) Error() string {
	return fmt.Sprintf("preflight check of %s failed: %v", e.Addr, e.Err)
}

func (e *PreflightError) Unwrap() error { return e.Err }
func (e *PreflightError) Cause() error  { return e.Err }

// VoteError is returned when a vote RPC fails. The underlying error keeps its
// gRPC status, so status.Code works on Err.
type VoteError struct {
	Target Target
	Err    error
}

func (e *VoteError) Error() string {
	return fmt.Sprintf("vote for %s failed: %v", e.Target, e.Err)
}

func (e *VoteError) Unwrap() error { return e.Err }
func (e *VoteError) Cause() error  { return e.Err }

// LoggingInitError is returned when the process logger cannot be built.
type LoggingInitError struct {
	Err error
}

func (e *LoggingInitError) Error() string {
	return fmt.Sprintf("unable to initialize logging: %v", e.Err)
}

func (e *LoggingInitError) Unwrap() error { return e.Err }
func (e *LoggingInitError) Cause() error  { return e.Err }
