package votebot

import (
	"context"
	"sync"

	"github.com/pkg/errors"
	"google.golang.org/grpc"
)

var errRefused = errors.New("connect: connection refused")

// fakeDialer records every dial attempt and hands out fakeChannels.
type fakeDialer struct {
	mu          sync.Mutex
	unreachable map[string]bool
	attempts    []string
	channels    []*fakeChannel

	// failAt makes the failAt-th RPC on a channel return failErr.
	failAt  int
	failErr error
}

func newFakeDialer(unreachable ...string) *fakeDialer {
	d := &fakeDialer{unreachable: map[string]bool{}}
	for _, addr := range unreachable {
		d.unreachable[addr] = true
	}
	return d
}

func (d *fakeDialer) Dial(ctx context.Context, addr string) (Channel, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.attempts = append(d.attempts, addr)
	if d.unreachable[addr] {
		return nil, &ConnectError{Addr: addr, Err: errRefused}
	}
	ch := &fakeChannel{addr: addr, failAt: d.failAt, failErr: d.failErr}
	d.channels = append(d.channels, ch)
	return ch, nil
}

func (d *fakeDialer) dialed() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string(nil), d.attempts...)
}

// calls returns every RPC invoked on any channel this dialer handed out.
func (d *fakeDialer) calls() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	var all []string
	for _, ch := range d.channels {
		all = append(all, ch.invoked()...)
	}
	return all
}

func (d *fakeDialer) closed() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	var addrs []string
	for _, ch := range d.channels {
		if ch.isClosed() {
			addrs = append(addrs, ch.addr)
		}
	}
	return addrs
}

type fakeChannel struct {
	addr    string
	failAt  int
	failErr error

	mu     sync.Mutex
	calls  []string
	closed bool
}

func (c *fakeChannel) Invoke(ctx context.Context, method string, args, reply interface{}, opts ...grpc.CallOption) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return errors.New("channel closed")
	}
	c.calls = append(c.calls, method)
	if c.failAt > 0 && len(c.calls) >= c.failAt {
		return c.failErr
	}
	return nil
}

func (c *fakeChannel) NewStream(ctx context.Context, desc *grpc.StreamDesc, method string, opts ...grpc.CallOption) (grpc.ClientStream, error) {
	return nil, errors.New("streams are not supported")
}

func (c *fakeChannel) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	return nil
}

func (c *fakeChannel) invoked() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.calls...)
}

func (c *fakeChannel) isClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

// envOf returns a lookup function that only knows VOTE_FOR.
func envOf(target string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		if key == TargetEnv {
			return target, true
		}
		return "", false
	}
}

func emptyEnv(string) (string, bool) {
	return "", false
}
