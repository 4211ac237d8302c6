package votebot

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/inconshreveable/log15"
	"github.com/pkg/errors"
)

// Phase identifies the stage of a run that failed.
type Phase int

const (
	// PhaseLogging is the setup of the process logger.
	PhaseLogging Phase = iota + 1
	// PhasePreflight is the reachability check of the joy and ghost backends.
	PhasePreflight
	// PhaseVote covers dialing the voting service, resolving VOTE_FOR and voting.
	PhaseVote
)

func (p Phase) String() string {
	switch p {
	case PhaseLogging:
		return "logging"
	case PhasePreflight:
		return "preflight"
	case PhaseVote:
		return "vote"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// ExitOK is the exit code of a run that ended without error.
const ExitOK = 0

// exitCodes is the only place phases are turned into process exit codes.
var exitCodes = map[Phase]int{
	PhaseLogging:   1,
	PhasePreflight: 2,
	PhaseVote:      3,
}

// PhaseError ties a fatal error to the phase it happened in.
type PhaseError struct {
	Phase Phase
	Err   error
}

func (e *PhaseError) Error() string {
	return fmt.Sprintf("%s: %v", e.Phase, e.Err)
}

func (e *PhaseError) Unwrap() error { return e.Err }
func (e *PhaseError) Cause() error  { return e.Err }

// ExitCode maps the result of Execute to a process exit code. Errors that
// carry no phase come from before logging was set up, such as bad command
// line arguments, and share the logging phase's code.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	var pe *PhaseError
	if errors.As(err, &pe) {
		if code, ok := exitCodes[pe.Phase]; ok {
			return code
		}
	}
	return exitCodes[PhaseLogging]
}

// Config is everything Execute needs to run.
type Config struct {
	// VotingAddr is the voting service votes are cast against.
	VotingAddr string
	// JoyAddr and GhostAddr are checked for reachability before voting.
	JoyAddr   string
	GhostAddr string

	Log LogConfig
	// LogOutput receives log records. Defaults to os.Stderr.
	LogOutput io.Writer

	// CallTimeout bounds each vote RPC; 0 means no deadline.
	CallTimeout time.Duration
}

// DefaultConfig returns the in-cluster emojivoto endpoints with info level
// logfmt logging.
func DefaultConfig() Config {
	return Config{
		VotingAddr: DefaultVotingAddr,
		JoyAddr:    DefaultJoyAddr,
		GhostAddr:  DefaultGhostAddr,
		Log: LogConfig{
			Level:  "info",
			Format: LogFormatLogfmt,
		},
	}
}

// Execute sets up logging, runs the preflight check and then votes until
// failure or until ctx is done. Every failure is logged once and returned as
// a *PhaseError; pass the result to ExitCode. Options are applied to the
// Voter, and its dialer is also used for the preflight check. A logger given
// with WithLogger replaces the one built from cfg.Log for the whole run,
// preflight and fatal errors included; it is tagged with the voter id.
func Execute(ctx context.Context, cfg Config, opts ...Option) error {
	out := cfg.LogOutput
	if out == nil {
		out = os.Stderr
	}

	l, err := NewLogger(cfg.Log, out)
	if err != nil {
		fallback := log15.New()
		fallback.SetHandler(log15.StreamHandler(out, log15.LogfmtFormat()))
		return fatal(fallback, PhaseLogging, err)
	}

	opts = append([]Option{WithLogger(l), WithCallTimeout(cfg.CallTimeout)}, opts...)
	v := NewVoter(cfg.VotingAddr, opts...)
	l = v.l.New("voter", uuid.NewString())
	v.l = l

	if err := Preflight(ctx, v.dialer, l, cfg.JoyAddr, cfg.GhostAddr); err != nil {
		if ctx.Err() != nil {
			l.Info("stopped during preflight", "reason", ctx.Err())
			return nil
		}
		return fatal(l, PhasePreflight, err)
	}

	if err := v.Run(ctx); err != nil {
		return fatal(l, PhaseVote, err)
	}
	return nil
}

func fatal(l log15.Logger, phase Phase, err error) error {
	l.Error("fatal error", "phase", phase, "exit", exitCodes[phase], "err", err)
	return &PhaseError{Phase: phase, Err: err}
}
