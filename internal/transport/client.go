package transport

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

// Client calls the mempool service. It satisfies the assembler's
// CollectionSource and TransactionSubmitter contracts.
type Client struct {
	conn *grpc.ClientConn
}

// Dial connects a Client to the given target. Extra options are appended
// after the defaults, so tests can override the dialer.
func Dial(target string, opts ...grpc.DialOption) (*Client, error) {
	base := []grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithDefaultCallOptions(grpc.ForceCodec(jsonCodec{})),
	}
	conn, err := grpc.NewClient(target, append(base, opts...)...)
	if err != nil {
		return nil, err
	}
	return &Client{conn: conn}, nil
}

// Close tears down the underlying connection.
func (c *Client) Close() error {
	return c.conn.Close()
}

// Submit queues raw encoded transactions in the remote pool.
func (c *Client) Submit(ctx context.Context, raw [][]byte) error {
	out := new(SubmitResponse)
	return c.conn.Invoke(ctx, methodSubmit, &SubmitRequest{Transactions: raw}, out)
}

// NewestRound reports the newest sealed round of the given proposer.
func (c *Client) NewestRound(ctx context.Context, proposer string) (uint64, error) {
	out := new(NewestRoundResponse)
	if err := c.conn.Invoke(ctx, methodNewestRound, &NewestRoundRequest{Proposer: proposer}, out); err != nil {
		return 0, err
	}
	return out.Round, nil
}

// ReadCausal lists every collection sealed at or before the round, oldest
// first.
func (c *Client) ReadCausal(ctx context.Context, proposer string, round uint64) ([]string, error) {
	out := new(ReadCausalResponse)
	if err := c.conn.Invoke(ctx, methodReadCausal, &ReadCausalRequest{Proposer: proposer, Round: round}, out); err != nil {
		return nil, err
	}
	return out.CollectionIDs, nil
}

// GetCollection fetches the raw transactions of one collection.
func (c *Client) GetCollection(ctx context.Context, id string) ([][]byte, error) {
	out := new(GetCollectionResponse)
	if err := c.conn.Invoke(ctx, methodGetCollection, &GetCollectionRequest{ID: id}, out); err != nil {
		return nil, err
	}
	return out.Transactions, nil
}

// RemoveCollections drops committed collections from the remote pool.
func (c *Client) RemoveCollections(ctx context.Context, ids []string) error {
	out := new(RemoveCollectionsResponse)
	return c.conn.Invoke(ctx, methodRemoveCollections, &RemoveCollectionsRequest{IDs: ids}, out)
}
