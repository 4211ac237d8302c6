package votebot

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/inconshreveable/log15"
	"github.com/pkg/errors"
	"google.golang.org/grpc"
	"google.golang.org/protobuf/encoding/protojson"
	"k8s.io/utils/clock"

	"github.com/ngrok/votebot/internal/proto"
)

// DefaultVotingAddr is the voting service endpoint inside the emojivoto
// namespace.
const DefaultVotingAddr = "http://voting-svc.emojivoto.svc.cluster.local:8080"

// Pacing bounds. The delay between two votes is a whole number of seconds in
// [MinPacing, MaxPacing).
const (
	MinPacing = 5 * time.Second
	MaxPacing = 30 * time.Second
)

type voteFunc func(proto.VotingServiceClient, context.Context, *proto.VoteRequest, ...grpc.CallOption) (*proto.VoteResponse, error)

// voteMethods binds each target to the RPC that votes for it.
var voteMethods = map[Target]voteFunc{
	Joy:   proto.VotingServiceClient.VoteJoy,
	Ghost: proto.VotingServiceClient.VoteGhost,
}

// Voter casts votes for a single target until it fails or its context ends.
type Voter struct {
	addr        string
	dialer      Dialer
	clock       clock.Clock
	rand        *rand.Rand
	callTimeout time.Duration
	env         *env

	stateLock sync.Mutex
	state     voterState

	l log15.Logger
}

// Option is an option function for Voter.
// See Rob Pike's post on the topic for more information on this pattern:
// https://commandcenter.blogspot.com/2014/01/self-referential-functions-and-design.html
type Option func(v *Voter)

// WithLogger configures the logger to use for voting.
// By default, nothing will be logged.
func WithLogger(l log15.Logger) Option {
	return func(v *Voter) {
		v.l = l
	}
}

// WithDialer replaces the gRPC dialer used to reach the voting service.
func WithDialer(d Dialer) Option {
	return func(v *Voter) {
		v.dialer = d
	}
}

// WithClock sets the clock used to wait between votes.
func WithClock(c clock.Clock) Option {
	return func(v *Voter) {
		v.clock = c
	}
}

// WithRandSource sets the source pacing delays are drawn from.
func WithRandSource(src rand.Source) Option {
	return func(v *Voter) {
		v.rand = rand.New(src)
	}
}

// WithCallTimeout bounds each vote RPC. A timeout of 0, the default, applies
// no deadline.
func WithCallTimeout(t time.Duration) Option {
	return func(v *Voter) {
		v.callTimeout = t
		if v.callTimeout < 0 {
			v.callTimeout = 0
		}
	}
}

// WithLookupEnv replaces os.LookupEnv for reading VOTE_FOR.
func WithLookupEnv(lookup func(string) (string, bool)) Option {
	return func(v *Voter) {
		v.env = &env{lookupEnv: lookup}
	}
}

// NewVoter constructs a voter for the voting service at addr. Nothing is
// dialed until Run.
func NewVoter(addr string, opts ...Option) *Voter {
	v := &Voter{
		addr:   addr,
		dialer: GRPCDialer{},
		clock:  clock.RealClock{},
		rand:   rand.New(rand.NewSource(time.Now().UnixNano())),
		env:    stdEnv,
		state:  voterStateIdle,
		l:      discardLogger(),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Run dials the voting service, resolves the target from VOTE_FOR and then
// votes forever, waiting a random PacingDelay after each vote.
//
// Run only returns on failure or when ctx is done. Dial failures are a
// *ConnectError, a bad VOTE_FOR is a *ConfigError and a failed vote is a
// *VoteError; nothing is retried. Cancellation of ctx returns nil.
// A Voter can be run once.
func (v *Voter) Run(ctx context.Context) error {
	if err := v.transitionTo(voterStateConnecting); err != nil {
		return errors.Wrap(err, "voter already ran")
	}

	l := v.l.New("addr", v.addr)
	l.Info("connecting to voting service")
	ch, err := v.dialer.Dial(ctx, v.addr)
	if err != nil {
		return v.stopOrFail(ctx, err)
	}
	defer ch.Close()

	v.mustTransitionTo(voterStateResolving)
	target, err := v.env.target()
	if err != nil {
		return v.stopOrFail(ctx, err)
	}
	vote, ok := voteMethods[target]
	if !ok {
		panic(fmt.Sprintf("BUG: no vote method for target %v", target))
	}

	v.mustTransitionTo(voterStateVoting)
	l = l.New("target", target)
	l.Info("voting", "emoji", target.Emoji())

	client := proto.NewVotingServiceClient(ch)
	for {
		resp, err := v.cast(ctx, client, vote)
		if err != nil {
			return v.stopOrFail(ctx, &VoteError{Target: target, Err: err})
		}

		delay := PacingDelay(v.rand)
		l.Info("vote cast", "response", protojson.Format(resp), "delay", delay)

		select {
		case <-ctx.Done():
			v.mustTransitionTo(voterStateStopped)
			l.Info("voting stopped", "reason", ctx.Err())
			return nil
		case <-v.clock.After(delay):
		}
		v.mustTransitionTo(voterStateVoting)
	}
}

func (v *Voter) cast(ctx context.Context, client proto.VotingServiceClient, vote voteFunc) (*proto.VoteResponse, error) {
	if v.callTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, v.callTimeout)
		defer cancel()
	}
	return vote(client, ctx, &proto.VoteRequest{})
}

// stopOrFail moves to the terminal state matching err. Errors caused by ctx
// ending are a stop, not a failure.
func (v *Voter) stopOrFail(ctx context.Context, err error) error {
	if ctx.Err() != nil {
		v.mustTransitionTo(voterStateStopped)
		return nil
	}
	v.mustTransitionTo(voterStateFailed)
	return err
}

// PacingDelay picks the wait before the next vote: a whole number of seconds,
// uniformly distributed in [MinPacing, MaxPacing).
func PacingDelay(r *rand.Rand) time.Duration {
	span := int64((MaxPacing - MinPacing) / time.Second)
	return MinPacing + time.Duration(r.Int63n(span))*time.Second
}

func (v *Voter) currentState() voterState {
	v.stateLock.Lock()
	defer v.stateLock.Unlock()
	return v.state
}

func (v *Voter) transitionTo(state voterState) error {
	v.stateLock.Lock()
	defer v.stateLock.Unlock()
	return v.state.transitionTo(state)
}

func (v *Voter) mustTransitionTo(state voterState) {
	v.stateLock.Lock()
	defer v.stateLock.Unlock()
	if err := v.state.transitionTo(state); err != nil {
		panic(fmt.Sprintf("BUG: error transitioning to %q: %v", state, err))
	}
}
