package votebot

import (
	"context"

	"github.com/inconshreveable/log15"
)

// Default auxiliary endpoints that must be reachable before voting starts.
const (
	DefaultJoyAddr   = "http://joy-voting-svc.emojivoto.svc.cluster.local:8080"
	DefaultGhostAddr = "http://ghost-voting-svc.emojivoto.svc.cluster.local:8080"
)

// Preflight checks that every endpoint accepts a connection, one at a time
// and in order. Each channel is closed as soon as it is up. The first
// unreachable endpoint stops the check with a *PreflightError and later
// endpoints are never dialed.
func Preflight(ctx context.Context, d Dialer, l log15.Logger, endpoints ...string) error {
	for _, addr := range endpoints {
		l := l.New("addr", addr)
		l.Debug("preflight: dialing")
		ch, err := d.Dial(ctx, addr)
		if err != nil {
			return &PreflightError{Addr: addr, Err: err}
		}
		if err := ch.Close(); err != nil {
			l.Warn("preflight: error closing channel", "err", err)
		}
		l.Info("preflight: reachable")
	}
	return nil
}
