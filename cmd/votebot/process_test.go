package main

import (
	"context"
	"net"
	"os"
	"os/exec"
	"strings"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/ngrok/votebot/internal/proto"
)

// ghostlessServer accepts joy votes and refuses ghost votes.
type ghostlessServer struct {
	proto.UnimplementedVotingServiceServer
}

func (ghostlessServer) VoteJoy(context.Context, *proto.VoteRequest) (*proto.VoteResponse, error) {
	return &proto.VoteResponse{}, nil
}

func (ghostlessServer) VoteGhost(context.Context, *proto.VoteRequest) (*proto.VoteResponse, error) {
	return nil, status.Error(codes.PermissionDenied, "ghosts may not vote")
}

func startServer(t *testing.T) string {
	lis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	s := grpc.NewServer()
	proto.RegisterVotingServiceServer(s, ghostlessServer{})
	go s.Serve(lis)
	t.Cleanup(s.Stop)
	return "http://" + lis.Addr().String()
}

func closedAddr(t *testing.T) string {
	lis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := lis.Addr().String()
	require.NoError(t, lis.Close())
	return "http://" + addr
}

func TestProcessExitCodes(t *testing.T) {
	up := startServer(t)
	down := closedAddr(t)

	for _, tc := range []struct {
		name    string
		args    []string
		voteFor string
		code    int
		stderr  string
	}{
		{
			name:    "bad log level",
			args:    []string{"--log-level=loud", "--joy-addr=" + up, "--ghost-addr=" + up, "--voting-addr=" + up},
			voteFor: "joy",
			code:    1,
			stderr:  "phase=logging",
		},
		{
			name:    "bad flag",
			args:    []string{"--bogus"},
			voteFor: "joy",
			code:    1,
			stderr:  "unknown flag",
		},
		{
			name:    "joy backend down",
			args:    []string{"--joy-addr=" + down, "--ghost-addr=" + up, "--voting-addr=" + up},
			voteFor: "joy",
			code:    2,
			stderr:  "phase=preflight",
		},
		{
			name:    "ghost backend down",
			args:    []string{"--joy-addr=" + up, "--ghost-addr=" + down, "--voting-addr=" + up},
			voteFor: "joy",
			code:    2,
			stderr:  "phase=preflight",
		},
		{
			name:    "voting service down",
			args:    []string{"--joy-addr=" + up, "--ghost-addr=" + up, "--voting-addr=" + down},
			voteFor: "joy",
			code:    3,
			stderr:  "phase=vote",
		},
		{
			name:    "vote rejected",
			args:    []string{"--joy-addr=" + up, "--ghost-addr=" + up, "--voting-addr=" + up},
			voteFor: "ghost",
			code:    3,
			stderr:  "ghosts may not vote",
		},
		{
			name:    "bad target",
			args:    []string{"--joy-addr=" + up, "--ghost-addr=" + up, "--voting-addr=" + up},
			voteFor: "heart",
			code:    3,
			stderr:  "unrecognized voting target: heart",
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			code, stderr := runHelper(t, tc.args, tc.voteFor)
			assert.Equal(t, tc.code, code, "stderr: %s", stderr)
			assert.Contains(t, stderr, tc.stderr)
		})
	}
}

// TestProcessVotesUntilSignalled runs a healthy voter, waits for its first
// vote and stops it with SIGTERM.
func TestProcessVotesUntilSignalled(t *testing.T) {
	up := startServer(t)
	child, stderr := helperCmd([]string{"--joy-addr=" + up, "--ghost-addr=" + up, "--voting-addr=" + up}, "🤣")
	require.NoError(t, child.Start())
	defer child.Process.Kill()

	require.Eventually(t, func() bool {
		return strings.Contains(stderr.String(), "vote cast")
	}, 10*time.Second, 10*time.Millisecond)
	require.NoError(t, child.Process.Signal(os.Interrupt))

	err := child.Wait()
	assert.NoError(t, err, "stderr: %s", stderr.String())
	assert.Contains(t, stderr.String(), "target=joy")
}

func helperCmd(args []string, voteFor string) (*exec.Cmd, *syncBuffer) {
	child := exec.Command(os.Args[0], "-test.run=TestSpawnHelper", "--")
	child.Env = []string{
		"__VOTEBOT_TEST_PROCESS=1",
		"VOTEBOT_ARGS=" + strings.Join(args, " "),
		"VOTE_FOR=" + voteFor,
	}
	stderr := &syncBuffer{}
	child.Stderr = stderr
	return child, stderr
}

func runHelper(t *testing.T, args []string, voteFor string) (int, string) {
	child, stderr := helperCmd(args, voteFor)
	err := child.Run()
	if err == nil {
		return 0, stderr.String()
	}
	var exitErr *exec.ExitError
	require.True(t, errors.As(err, &exitErr), "unexpected error running helper: %v", err)
	return exitErr.ExitCode(), stderr.String()
}

// TestSpawnHelper isn't a real test, it's run from other tests in this file
// in order to have a real votebot process to play with.
func TestSpawnHelper(t *testing.T) {
	if os.Getenv("__VOTEBOT_TEST_PROCESS") == "" {
		// running as a 'go test' test, nothing to do here
		return
	}
	rootCmd.SetArgs(strings.Fields(os.Getenv("VOTEBOT_ARGS")))
	main()
}
