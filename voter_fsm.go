package votebot

import "fmt"

// voterState represents a small finite state machine. It has the following transitions:
// Idle       → Connecting
// Connecting → Resolving
// Connecting → Failed
// Resolving  → Voting
// Resolving  → Failed
// Voting     → Voting
// Voting     → Failed
// *          → Stopped
//
// Failed and Stopped are terminal. A Voter runs through the machine exactly
// once; there is no path back to Idle or Connecting.
type voterState string

const (
	// Idle is the state of a Voter that has not been run.
	voterStateIdle voterState = "idle"
	// Connecting is entered while the primary channel is being dialed.
	voterStateConnecting voterState = "connecting"
	// Resolving is entered once the channel is up and the target is being read
	// from the environment.
	voterStateResolving voterState = "resolving"
	// Voting is the steady state. Each successful vote re-enters it.
	voterStateVoting voterState = "voting"
	// Failed is entered when dialing, resolving or a vote fails.
	voterStateFailed voterState = "failed"
	// Stopped is entered when the run context is cancelled.
	voterStateStopped voterState = "stopped"
)

var validTransitions = map[voterState][]voterState{
	voterStateIdle: {
		voterStateConnecting,
	},
	voterStateConnecting: {
		voterStateResolving,
		voterStateFailed,
		voterStateStopped,
	},
	voterStateResolving: {
		voterStateVoting,
		voterStateFailed,
		voterStateStopped,
	},
	voterStateVoting: {
		voterStateVoting,
		voterStateFailed,
		voterStateStopped,
	},
	voterStateFailed:  {},
	voterStateStopped: {},
}

func (s *voterState) canTransitionTo(state voterState) error {
	for _, target := range validTransitions[*s] {
		if target == state {
			return nil
		}
	}
	return fmt.Errorf("unable to transition from %s to %s", *s, state)
}

func (s *voterState) transitionTo(state voterState) error {
	if err := s.canTransitionTo(state); err != nil {
		return err
	}
	*s = state
	return nil
}
