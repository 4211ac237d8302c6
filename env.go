package votebot

import (
	"os"
)

// TargetEnv names the environment variable holding the voting target.
const TargetEnv = "VOTE_FOR"

var stdEnv = &env{
	lookupEnv: os.LookupEnv,
}

type env struct {
	lookupEnv func(string) (string, bool)
}

// target reads and resolves the voting target.
func (e *env) target() (Target, error) {
	value, ok := e.lookupEnv(TargetEnv)
	if !ok {
		return 0, &ConfigError{Key: TargetEnv, Err: ErrTargetNotSet}
	}
	t, err := ParseTarget(value)
	if err != nil {
		return 0, &ConfigError{Key: TargetEnv, Err: err}
	}
	return t, nil
}
