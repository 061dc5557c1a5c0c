package loadgen

import (
	"context"
	"net"
	"time"

	"go.uber.org/zap"

	"github.com/goodnatureofminers/chainexec/internal/clock"
	"github.com/goodnatureofminers/chainexec/pkg/workerpool"
)

const dialRetryInterval = 10 * time.Millisecond

// WaitForNodes blocks until every address accepts a TCP connection, so a
// benchmark does not start against half a cluster.
func WaitForNodes(ctx context.Context, logger *zap.Logger, addrs []string) error {
	if len(addrs) == 0 {
		return nil
	}
	logger.Info("waiting for nodes to come online", zap.Strings("addrs", addrs))

	var dialer net.Dialer
	return workerpool.Process(ctx, len(addrs), addrs, func(ctx context.Context, addr string) error {
		for {
			conn, err := dialer.DialContext(ctx, "tcp", addr)
			if err == nil {
				_ = conn.Close()
				logger.Debug("node online", zap.String("addr", addr))
				return nil
			}
			if sleepErr := clock.SleepWithContext(ctx, dialRetryInterval); sleepErr != nil {
				return sleepErr
			}
		}
	})
}
