package votebot

import (
	"context"
	"testing"
	"time"

	"github.com/inconshreveable/log15"
	"github.com/stretchr/testify/require"
	fakeclock "k8s.io/utils/clock/testing"
)

var l = log15.New()

func testCtx(t *testing.T) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	return ctx, cancel
}

// runVoter starts v in the background and returns a channel carrying the
// result of Run.
func runVoter(ctx context.Context, v *Voter) <-chan error {
	errC := make(chan error, 1)
	go func() {
		errC <- v.Run(ctx)
	}()
	return errC
}

// awaitPacing waits until the voter is sleeping between votes, then moves
// the clock past the longest possible delay.
func awaitPacing(t *testing.T, clk *fakeclock.FakeClock) {
	t.Helper()
	require.Eventually(t, clk.HasWaiters, 5*time.Second, time.Millisecond, "voter never started waiting")
	clk.Step(MaxPacing)
}

func awaitResult(t *testing.T, errC <-chan error) error {
	t.Helper()
	select {
	case err := <-errC:
		return err
	case <-time.After(5 * time.Second):
		t.Fatal("voter did not return")
		return nil
	}
}
