package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jessevdk/go-flags"
	"go.uber.org/zap"

	"github.com/goodnatureofminers/chainexec/internal/chain/loadgen"
	"github.com/goodnatureofminers/chainexec/internal/transport"
)

type config struct {
	Addr  string   `long:"addr" env:"LOADGEN_ADDR" description:"mempool gRPC address" default:"127.0.0.1:7000"`
	Nodes []string `long:"nodes" env:"LOADGEN_NODES" env-delim:"," description:"addresses that must be reachable before the run starts"`
	Rate  int      `long:"rate" env:"LOADGEN_RATE" description:"transactions per second" default:"1000"`
	Seed  int64    `long:"seed" env:"LOADGEN_SEED" description:"RNG seed, same seed replays the same stream" default:"1"`
}

func main() {
	cfg := config{}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger, err := zap.NewDevelopment()
	if err != nil {
		panic("can't initialize zap logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync()
	}()

	if _, err := flags.ParseArgs(&cfg, os.Args); err != nil {
		var ferr *flags.Error
		if errors.As(err, &ferr) && ferr.Type == flags.ErrHelp {
			return
		}
		logger.Fatal("failed to parse flags", zap.Error(err))
	}

	if err := run(ctx, cfg, logger); err != nil && !errors.Is(err, context.Canceled) {
		logger.Fatal("load generator failed", zap.Error(err))
	}
}

func run(ctx context.Context, cfg config, logger *zap.Logger) error {
	if err := loadgen.WaitForNodes(ctx, logger, cfg.Nodes); err != nil {
		return fmt.Errorf("wait for nodes: %w", err)
	}

	client, err := transport.Dial(cfg.Addr)
	if err != nil {
		return fmt.Errorf("dial mempool: %w", err)
	}
	defer func() {
		_ = client.Close()
	}()

	sender, err := loadgen.NewSender(logger, loadgen.NewGenerator(cfg.Seed), client, cfg.Rate)
	if err != nil {
		return err
	}
	return sender.Run(ctx)
}
