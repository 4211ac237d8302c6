package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/ngrok/votebot"
)

var cfg = votebot.DefaultConfig()

var rootCmd = &cobra.Command{
	Use:   "votebot",
	Short: "Vote for an emoji on emojivoto, forever",
	Long: `votebot casts a vote for the emoji named by VOTE_FOR (joy or ghost)
every 5 to 29 seconds. It exits with 1 if logging cannot be set up, 2 if a
preflight endpoint is unreachable and 3 if voting fails.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return votebot.Execute(cmd.Context(), cfg)
	},
}

func init() {
	flags := rootCmd.Flags()
	flags.StringVar(&cfg.VotingAddr, "voting-addr", envOr("VOTING_ADDR", cfg.VotingAddr), "voting service endpoint")
	flags.StringVar(&cfg.JoyAddr, "joy-addr", envOr("JOY_ADDR", cfg.JoyAddr), "joy backend checked before voting")
	flags.StringVar(&cfg.GhostAddr, "ghost-addr", envOr("GHOST_ADDR", cfg.GhostAddr), "ghost backend checked before voting")
	flags.StringVar(&cfg.Log.Level, "log-level", envOr("LOG_LEVEL", cfg.Log.Level), "log level: debug, info, warn, error or crit")
	flags.StringVar(&cfg.Log.Format, "log-format", envOr("LOG_FORMAT", cfg.Log.Format), "log format: logfmt, json or terminal")
	flags.DurationVar(&cfg.CallTimeout, "rpc-timeout", 0, "deadline for each vote; 0 means none")
}

func envOr(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()

	var phaseErr *votebot.PhaseError
	if err != nil && !errors.As(err, &phaseErr) {
		// Execute already logged phase errors; anything else is a usage error.
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
	}
	os.Exit(votebot.ExitCode(err))
}
