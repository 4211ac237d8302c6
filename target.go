package votebot

import (
	"strings"
)

// Target is the emoji an instance votes for. It is resolved once at startup
// and never changes afterwards.
type Target int

const (
	// Joy votes for 🤣.
	Joy Target = iota + 1
	// Ghost votes for 👻.
	Ghost
)

// targetNames maps every accepted spelling, already lower-cased, to a target.
var targetNames = map[string]Target{
	"joy":   Joy,
	"🤣":     Joy,
	"ghost": Ghost,
	"👻":     Ghost,
}

// ParseTarget resolves a VOTE_FOR value. Matching is case-insensitive. Any
// value other than joy, ghost or their emoji returns a *ResolutionError.
func ParseTarget(value string) (Target, error) {
	if t, ok := targetNames[strings.ToLower(value)]; ok {
		return t, nil
	}
	return 0, &ResolutionError{Value: value}
}

func (t Target) String() string {
	switch t {
	case Joy:
		return "joy"
	case Ghost:
		return "ghost"
	default:
		return "unknown"
	}
}

// Emoji returns the glyph the target votes for.
func (t Target) Emoji() string {
	switch t {
	case Joy:
		return "🤣"
	case Ghost:
		return "👻"
	default:
		return ""
	}
}

// MarshalText implements encoding.TextMarshaler.
func (t Target) MarshalText() ([]byte, error) {
	if t != Joy && t != Ghost {
		return nil, &ResolutionError{Value: t.String()}
	}
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *Target) UnmarshalText(text []byte) error {
	parsed, err := ParseTarget(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
