package proto

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
)

// VoteRequest is the request message of every vote method. It has no fields.
type VoteRequest = emptypb.Empty

// VoteResponse is the response message of every vote method. It has no
// fields; only its presence signals a counted vote.
type VoteResponse = emptypb.Empty

// VotingServiceClient is the client API for the voting service.
type VotingServiceClient interface {
	VoteJoy(ctx context.Context, in *VoteRequest, opts ...grpc.CallOption) (*VoteResponse, error)
	VoteGhost(ctx context.Context, in *VoteRequest, opts ...grpc.CallOption) (*VoteResponse, error)
}

type votingServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewVotingServiceClient binds a client to an established connection.
func NewVotingServiceClient(cc grpc.ClientConnInterface) VotingServiceClient {
	return &votingServiceClient{cc}
}

func (c *votingServiceClient) VoteJoy(ctx context.Context, in *VoteRequest, opts ...grpc.CallOption) (*VoteResponse, error) {
	return c.invoke(ctx, VoteJoyMethod, in, opts...)
}

func (c *votingServiceClient) VoteGhost(ctx context.Context, in *VoteRequest, opts ...grpc.CallOption) (*VoteResponse, error) {
	return c.invoke(ctx, VoteGhostMethod, in, opts...)
}

func (c *votingServiceClient) invoke(ctx context.Context, method string, in *VoteRequest, opts ...grpc.CallOption) (*VoteResponse, error) {
	out := new(VoteResponse)
	if err := c.cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// VotingServiceServer is the server API for the voting service.
type VotingServiceServer interface {
	VoteJoy(context.Context, *VoteRequest) (*VoteResponse, error)
	VoteGhost(context.Context, *VoteRequest) (*VoteResponse, error)
}

// UnimplementedVotingServiceServer can be embedded by servers that only
// implement some of the methods.
type UnimplementedVotingServiceServer struct{}

func (UnimplementedVotingServiceServer) VoteJoy(context.Context, *VoteRequest) (*VoteResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method VoteJoy not implemented")
}

func (UnimplementedVotingServiceServer) VoteGhost(context.Context, *VoteRequest) (*VoteResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method VoteGhost not implemented")
}

// RegisterVotingServiceServer registers srv on s.
func RegisterVotingServiceServer(s grpc.ServiceRegistrar, srv VotingServiceServer) {
	s.RegisterService(&votingServiceDesc, srv)
}

// voteHandler builds the unary handler for one vote method. call selects the
// method on the concrete server.
func voteHandler(fullMethod string, call func(VotingServiceServer, context.Context, *VoteRequest) (*VoteResponse, error)) func(interface{}, context.Context, func(interface{}) error, grpc.UnaryServerInterceptor) (interface{}, error) {
	return func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
		in := new(VoteRequest)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(VotingServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: fullMethod,
		}
		handler := func(ctx context.Context, req interface{}) (interface{}, error) {
			return call(srv.(VotingServiceServer), ctx, req.(*VoteRequest))
		}
		return interceptor(ctx, in, info, handler)
	}
}

var votingServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*VotingServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "VoteJoy",
			Handler:    voteHandler(VoteJoyMethod, VotingServiceServer.VoteJoy),
		},
		{
			MethodName: "VoteGhost",
			Handler:    voteHandler(VoteGhostMethod, VotingServiceServer.VoteGhost),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "emojivoto.proto",
}
