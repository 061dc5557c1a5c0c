package transport

import (
	"context"

	"google.golang.org/grpc"
)

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "chainexec.Mempool"

const (
	methodSubmit            = "/" + ServiceName + "/Submit"
	methodNewestRound       = "/" + ServiceName + "/NewestRound"
	methodReadCausal        = "/" + ServiceName + "/ReadCausal"
	methodGetCollection     = "/" + ServiceName + "/GetCollection"
	methodRemoveCollections = "/" + ServiceName + "/RemoveCollections"
)

// MempoolServer is the server-side API of the mempool service.
type MempoolServer interface {
	Submit(ctx context.Context, req *SubmitRequest) (*SubmitResponse, error)
	NewestRound(ctx context.Context, req *NewestRoundRequest) (*NewestRoundResponse, error)
	ReadCausal(ctx context.Context, req *ReadCausalRequest) (*ReadCausalResponse, error)
	GetCollection(ctx context.Context, req *GetCollectionRequest) (*GetCollectionResponse, error)
	RemoveCollections(ctx context.Context, req *RemoveCollectionsRequest) (*RemoveCollectionsResponse, error)
}

var serviceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*MempoolServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Submit", Handler: submitHandler},
		{MethodName: "NewestRound", Handler: newestRoundHandler},
		{MethodName: "ReadCausal", Handler: readCausalHandler},
		{MethodName: "GetCollection", Handler: getCollectionHandler},
		{MethodName: "RemoveCollections", Handler: removeCollectionsHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "chainexec/mempool",
}

func submitHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(SubmitRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(MempoolServer).Submit(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: methodSubmit}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(MempoolServer).Submit(ctx, req.(*SubmitRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func newestRoundHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(NewestRoundRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(MempoolServer).NewestRound(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: methodNewestRound}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(MempoolServer).NewestRound(ctx, req.(*NewestRoundRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func readCausalHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(ReadCausalRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(MempoolServer).ReadCausal(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: methodReadCausal}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(MempoolServer).ReadCausal(ctx, req.(*ReadCausalRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func getCollectionHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(GetCollectionRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(MempoolServer).GetCollection(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: methodGetCollection}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(MempoolServer).GetCollection(ctx, req.(*GetCollectionRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func removeCollectionsHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(RemoveCollectionsRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(MempoolServer).RemoveCollections(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: methodRemoveCollections}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(MempoolServer).RemoveCollections(ctx, req.(*RemoveCollectionsRequest))
	}
	return interceptor(ctx, in, info, handler)
}
