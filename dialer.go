package votebot

import (
	"context"
	"crypto/tls"
	"net"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"google.golang.org/grpc"
	"google.golang.org/grpc/connectivity"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/credentials/insecure"
)

// Channel is a connection to one endpoint on which RPCs can be invoked.
// *grpc.ClientConn satisfies it.
type Channel interface {
	grpc.ClientConnInterface
	Close() error
}

// Dialer establishes channels. Implementations must either return a usable
// channel or an error, never both.
type Dialer interface {
	Dial(ctx context.Context, addr string) (Channel, error)
}

// GRPCDialer dials gRPC endpoints given as http://host:port, https://host:port
// or host:port. Each Dial makes a single connection attempt and blocks until
// the channel is ready or the attempt has failed; it does not retry.
//
// Names are resolved by the dialer itself at connect time, so lookup and
// connect errors end up as the cause of the returned *ConnectError. When
// HTTPS_PROXY applies to an endpoint, grpc's own proxy dialer is used instead
// and failures only report the channel state.
type GRPCDialer struct {
	// Options are appended after the options GRPCDialer sets itself, so they
	// may override the transport credentials or the context dialer.
	Options []grpc.DialOption

	// Proxy reports the HTTP proxy for an endpoint; nil means
	// http.ProxyFromEnvironment, which grpc consults itself. When it returns
	// a proxy, grpc's default dialer is kept so the proxy is honored.
	Proxy func(*http.Request) (*url.URL, error)
}

var _ Dialer = GRPCDialer{}

// Dial implements Dialer. Failures are always a *ConnectError.
func (d GRPCDialer) Dial(ctx context.Context, addr string) (Channel, error) {
	target, creds, err := parseEndpoint(addr)
	if err != nil {
		return nil, &ConnectError{Addr: addr, Err: err}
	}

	var rec dialRecorder
	opts := []grpc.DialOption{grpc.WithTransportCredentials(creds)}
	if !proxied(d.Proxy, target) {
		opts = append(opts, grpc.WithContextDialer(rec.dial))
	}
	opts = append(opts, d.Options...)
	conn, err := grpc.NewClient(target, opts...)
	if err != nil {
		return nil, &ConnectError{Addr: addr, Err: err}
	}

	if err := awaitReady(ctx, conn); err != nil {
		conn.Close()
		if dialErr := rec.last(); dialErr != nil {
			err = errors.Wrap(dialErr, err.Error())
		}
		return nil, &ConnectError{Addr: addr, Err: err}
	}
	return conn, nil
}

// awaitReady kicks off a connection attempt and waits for its outcome.
func awaitReady(ctx context.Context, conn *grpc.ClientConn) error {
	conn.Connect()
	attempted := false
	for {
		state := conn.GetState()
		switch state {
		case connectivity.Ready:
			return nil
		case connectivity.Connecting:
			attempted = true
		case connectivity.Idle:
			if attempted {
				return errors.New("channel went idle before becoming ready")
			}
		case connectivity.TransientFailure, connectivity.Shutdown:
			return errors.Errorf("channel entered state %s", state)
		}
		if !conn.WaitForStateChange(ctx, state) {
			return errors.Wrap(ctx.Err(), "waiting for channel to become ready")
		}
	}
}

// passthroughScheme hands host:port to the transport dialer unresolved.
const passthroughScheme = "passthrough:///"

// parseEndpoint turns an endpoint address into a gRPC target and the
// credentials its scheme calls for.
func parseEndpoint(addr string) (string, credentials.TransportCredentials, error) {
	if !strings.Contains(addr, "://") {
		if _, _, err := net.SplitHostPort(addr); err != nil {
			return "", nil, errors.Wrapf(err, "invalid endpoint %q", addr)
		}
		return passthroughScheme + addr, insecure.NewCredentials(), nil
	}

	u, err := url.Parse(addr)
	if err != nil {
		return "", nil, errors.Wrapf(err, "invalid endpoint %q", addr)
	}
	if u.Hostname() == "" {
		return "", nil, errors.Errorf("invalid endpoint %q: missing host", addr)
	}
	if u.User != nil || (u.Path != "" && u.Path != "/") || u.RawQuery != "" || u.Fragment != "" {
		return "", nil, errors.Errorf("invalid endpoint %q: only scheme, host and port are allowed", addr)
	}

	var (
		creds credentials.TransportCredentials
		port  = u.Port()
	)
	switch u.Scheme {
	case "http":
		creds = insecure.NewCredentials()
		if port == "" {
			port = "80"
		}
	case "https":
		creds = credentials.NewTLS(&tls.Config{ServerName: u.Hostname()})
		if port == "" {
			port = "443"
		}
	default:
		return "", nil, errors.Errorf("invalid endpoint %q: unsupported scheme %q", addr, u.Scheme)
	}
	return passthroughScheme + net.JoinHostPort(u.Hostname(), port), creds, nil
}

// proxied reports whether proxy routes target through an HTTP proxy, the
// same way grpc's default dialer decides.
func proxied(proxy func(*http.Request) (*url.URL, error), target string) bool {
	if proxy == nil {
		proxy = http.ProxyFromEnvironment
	}
	req := &http.Request{URL: &url.URL{
		Scheme: "https",
		Host:   strings.TrimPrefix(target, passthroughScheme),
	}}
	proxyURL, err := proxy(req)
	return err == nil && proxyURL != nil
}

// dialRecorder wraps the transport dialer and remembers its last error, which
// grpc does not otherwise surface once the channel has failed.
type dialRecorder struct {
	mu  sync.Mutex
	err error
}

func (r *dialRecorder) dial(ctx context.Context, addr string) (net.Conn, error) {
	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		r.mu.Lock()
		r.err = err
		r.mu.Unlock()
	}
	return conn, err
}

func (r *dialRecorder) last() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.err
}
