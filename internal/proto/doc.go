// Package proto encapsulates the parts of the emojivoto.v1 VotingService that
// votebot talks to, along with the client and server bindings used to call
// and serve them over gRPC.
//
// The upstream schema declares VoteRequest and VoteResponse as messages with
// no fields. An empty protobuf message has an empty wire encoding, so both are
// represented by google.protobuf.Empty here rather than by generated code.
// Any message with no fields is wire compatible with any other, which is what
// lets this package interoperate with the real voting service.
//
// The bindings follow the shape protoc-gen-go-grpc would produce:
//
//	client := proto.NewVotingServiceClient(conn)
//	resp, err := client.VoteJoy(ctx, &proto.VoteRequest{})
//
// The server side (RegisterVotingServiceServer) is only used by tests and
// local fakes; votebot itself never serves the API.
package proto
