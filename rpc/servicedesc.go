package rpc

import (
	"context"

	"google.golang.org/grpc"

	"github.com/ModChain/visualsign/fields"
	"github.com/ModChain/visualsign/visignerr"
)

// visualSignServer is the interface grpc.ServiceDesc's handlers dispatch to.
// A generated client would normally target this through protoc-gen-go-grpc;
// here it is hand-written against the same ServiceDesc shape, since this
// build runs no .proto compiler.
type visualSignServer interface {
	Parse(context.Context, *ParseRequest) (*ParseResponse, error)
	Health(context.Context, *HealthRequest) (*HealthResponse, error)
}

func canonicalJSON(p *fields.SignablePayload) ([]byte, error) {
	return fields.CanonicalJSON(p)
}

func chainUnrecognized(name string) error {
	return visignerr.Config("UnrecognizedChain("+name+")", nil)
}

func parseHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	req := new(ParseRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(visualSignServer).Parse(ctx, req)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/visualsign.VisualSign/Parse"}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(visualSignServer).Parse(ctx, req.(*ParseRequest))
	}
	return interceptor(ctx, req, info, handler)
}

func healthHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	req := new(HealthRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(visualSignServer).Health(ctx, req)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/visualsign.VisualSign/Health"}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(visualSignServer).Health(ctx, req.(*HealthRequest))
	}
	return interceptor(ctx, req, info, handler)
}

// serviceDesc is assembled directly against grpc.ServiceDesc, the same
// struct protoc-gen-go-grpc emits into, written by hand here since no
// .proto compiler runs as part of this build.
var serviceDesc = grpc.ServiceDesc{
	ServiceName: "visualsign.VisualSign",
	HandlerType: (*visualSignServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Parse", Handler: parseHandler},
		{MethodName: "Health", Handler: healthHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "visualsign.proto",
}

// RegisterVisualSignServer registers srv on s under the VisualSign service
// name, the hand-written equivalent of a generated RegisterXServer function.
func RegisterVisualSignServer(s grpc.ServiceRegistrar, srv visualSignServer) {
	s.RegisterService(&serviceDesc, srv)
}
