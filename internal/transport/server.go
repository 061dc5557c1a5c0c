package transport

import (
	"context"

	grpcMiddleware "github.com/grpc-ecosystem/go-grpc-middleware"
	grpcZap "github.com/grpc-ecosystem/go-grpc-middleware/logging/zap"
	grpcRecovery "github.com/grpc-ecosystem/go-grpc-middleware/recovery"
	grpcCtxTags "github.com/grpc-ecosystem/go-grpc-middleware/tags"
	grpcPrometheus "github.com/grpc-ecosystem/go-grpc-prometheus"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/encoding"
	"google.golang.org/grpc/status"

	"github.com/goodnatureofminers/chainexec/internal/chain/mempool"
)

func init() {
	encoding.RegisterCodec(jsonCodec{})
}

// Handler serves the mempool API over a live pool.
type Handler struct {
	pool *mempool.Pool
}

// NewHandler builds a Handler around the given pool.
func NewHandler(pool *mempool.Pool) *Handler {
	return &Handler{pool: pool}
}

func (h *Handler) Submit(_ context.Context, req *SubmitRequest) (*SubmitResponse, error) {
	if len(req.Transactions) == 0 {
		return nil, status.Error(codes.InvalidArgument, "no transactions submitted")
	}
	accepted := h.pool.Submit(req.Transactions)
	return &SubmitResponse{Accepted: accepted}, nil
}

func (h *Handler) NewestRound(_ context.Context, _ *NewestRoundRequest) (*NewestRoundResponse, error) {
	return &NewestRoundResponse{Round: h.pool.NewestRound()}, nil
}

func (h *Handler) ReadCausal(_ context.Context, req *ReadCausalRequest) (*ReadCausalResponse, error) {
	ids, err := h.pool.ReadCausal(req.Round)
	if err != nil {
		return nil, status.Error(codes.FailedPrecondition, err.Error())
	}
	return &ReadCausalResponse{CollectionIDs: ids}, nil
}

func (h *Handler) GetCollection(_ context.Context, req *GetCollectionRequest) (*GetCollectionResponse, error) {
	c, ok := h.pool.Collection(req.ID)
	if !ok {
		return nil, status.Errorf(codes.NotFound, "collection %s not found", req.ID)
	}
	return &GetCollectionResponse{Transactions: c.Transactions}, nil
}

func (h *Handler) RemoveCollections(_ context.Context, req *RemoveCollectionsRequest) (*RemoveCollectionsResponse, error) {
	return &RemoveCollectionsResponse{Removed: h.pool.Remove(req.IDs)}, nil
}

// NewServer wires the handler into a gRPC server with the standard
// interceptor chain and the JSON message codec.
func NewServer(pool *mempool.Pool, logger *zap.Logger) *grpc.Server {
	chain := []grpc.UnaryServerInterceptor{
		grpcRecovery.UnaryServerInterceptor(),
		grpcCtxTags.UnaryServerInterceptor(),
		grpcPrometheus.UnaryServerInterceptor,
		grpcZap.UnaryServerInterceptor(logger),
	}
	server := grpc.NewServer(
		grpc.UnaryInterceptor(grpcMiddleware.ChainUnaryServer(chain...)),
		grpc.ForceServerCodec(jsonCodec{}),
	)
	server.RegisterService(&serviceDesc, NewHandler(pool))
	return server
}
