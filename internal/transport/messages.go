// Package transport exposes the mempool over gRPC. The service has no
// generated protobuf stubs; messages are plain structs carried by a JSON
// codec and a hand-rolled service descriptor.
package transport

// SubmitRequest carries raw encoded transactions for the mempool.
type SubmitRequest struct {
	Transactions [][]byte `json:"transactions"`
}

// SubmitResponse reports how many payloads were queued.
type SubmitResponse struct {
	Accepted int `json:"accepted"`
}

// NewestRoundRequest asks for the newest sealed round of a proposer.
type NewestRoundRequest struct {
	Proposer string `json:"proposer"`
}

// NewestRoundResponse carries the newest sealed round.
type NewestRoundResponse struct {
	Round uint64 `json:"round"`
}

// ReadCausalRequest asks for the causal history of a round.
type ReadCausalRequest struct {
	Proposer string `json:"proposer"`
	Round    uint64 `json:"round"`
}

// ReadCausalResponse lists collection IDs, oldest first.
type ReadCausalResponse struct {
	CollectionIDs []string `json:"collection_ids"`
}

// GetCollectionRequest asks for one collection's payloads.
type GetCollectionRequest struct {
	ID string `json:"id"`
}

// GetCollectionResponse carries a collection's raw transactions.
type GetCollectionResponse struct {
	Transactions [][]byte `json:"transactions"`
}

// RemoveCollectionsRequest names committed collections to drop.
type RemoveCollectionsRequest struct {
	IDs []string `json:"ids"`
}

// RemoveCollectionsResponse reports how many collections were dropped.
type RemoveCollectionsResponse struct {
	Removed int `json:"removed"`
}
