package loadgen

import (
	"context"
	"net"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/goodnatureofminers/chainexec/internal/chain/codec"
)

type recordingSubmitter struct {
	mu  sync.Mutex
	raw [][]byte
}

func (r *recordingSubmitter) Submit(_ context.Context, raw [][]byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.raw = append(r.raw, raw...)
	return nil
}

func (r *recordingSubmitter) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.raw)
}

func TestSenderSubmitsDecodableTransactions(t *testing.T) {
	rec := &recordingSubmitter{}
	sender, err := NewSender(zap.NewNop(), NewGenerator(42), rec, 1000)
	if err != nil {
		t.Fatalf("NewSender() error = %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()
	if err := sender.Run(ctx); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if rec.count() == 0 {
		t.Fatal("expected transactions to be submitted")
	}
	rec.mu.Lock()
	defer rec.mu.Unlock()
	for _, raw := range rec.raw {
		if _, _, decodeErr := codec.Decode(raw); decodeErr != nil {
			t.Fatalf("submitted payload does not decode: %v", decodeErr)
		}
	}
}

func TestNewSenderValidation(t *testing.T) {
	gen := NewGenerator(1)
	rec := &recordingSubmitter{}

	if _, err := NewSender(zap.NewNop(), nil, rec, 1000); err == nil {
		t.Fatal("expected error for missing generator")
	}
	if _, err := NewSender(zap.NewNop(), gen, nil, 1000); err == nil {
		t.Fatal("expected error for missing submitter")
	}
	if _, err := NewSender(zap.NewNop(), gen, rec, 5); err == nil {
		t.Fatal("expected error for rate below precision")
	}
}

func TestWaitForNodes(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("net.Listen error = %v", err)
	}
	defer listener.Close()
	go func() {
		for {
			conn, acceptErr := listener.Accept()
			if acceptErr != nil {
				return
			}
			_ = conn.Close()
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := WaitForNodes(ctx, zap.NewNop(), []string{listener.Addr().String()}); err != nil {
		t.Fatalf("WaitForNodes() error = %v", err)
	}
}

func TestWaitForNodesUnreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	// Reserved TEST-NET address, nothing listens there.
	if err := WaitForNodes(ctx, zap.NewNop(), []string{"192.0.2.1:1"}); err == nil {
		t.Fatal("expected error when a node never comes up")
	}
}
