package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"syscall"

	"github.com/jessevdk/go-flags"
	"github.com/pterm/pterm"
	"go.uber.org/zap"

	"github.com/goodnatureofminers/chainexec/internal/chain/assembler"
	"github.com/goodnatureofminers/chainexec/internal/chain/mempool"
	"github.com/goodnatureofminers/chainexec/internal/chain/model"
	"github.com/goodnatureofminers/chainexec/internal/metrics"
	"github.com/goodnatureofminers/chainexec/internal/transport"
	"github.com/goodnatureofminers/chainexec/pkg/safe"
)

type config struct {
	Addr           string `long:"addr" env:"DEMO_ADDR" description:"mempool gRPC address" default:"127.0.0.1:7000"`
	Blocks         uint64 `long:"blocks" env:"DEMO_BLOCKS" description:"number of blocks to assemble, 0 for unbounded" default:"10"`
	Validators     int    `long:"validators" env:"DEMO_VALIDATORS" description:"simulated validator count" default:"4"`
	RoundsPerBlock uint64 `long:"rounds-per-block" env:"DEMO_ROUNDS_PER_BLOCK" description:"consensus rounds folded into one block" default:"2"`
	GasLimit       uint64 `long:"gas-limit" env:"DEMO_GAS_LIMIT" description:"block gas limit" default:"1000"`
	Resubmit       bool   `long:"resubmit" env:"DEMO_RESUBMIT" description:"resubmit rejected transactions to the mempool"`
	Balances       int    `long:"balances" env:"DEMO_BALANCES" description:"top balances shown per block" default:"5"`
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
		logger.Fatal("demo failed", zap.Error(err))
	}
}

func run(ctx context.Context, cfg config, logger *zap.Logger) error {
	gasLimit, err := safe.Uint32(cfg.GasLimit)
	if err != nil {
		return fmt.Errorf("gas limit: %w", err)
	}

	client, err := transport.Dial(cfg.Addr)
	if err != nil {
		return fmt.Errorf("dial mempool: %w", err)
	}
	defer func() {
		_ = client.Close()
	}()

	svc, err := assembler.NewService(assembler.Config{
		Source:         client,
		Submitter:      client,
		Metrics:        metrics.NewAssembler(),
		Validators:     mempool.ValidatorSet(cfg.Validators),
		RoundsPerBlock: cfg.RoundsPerBlock,
		GasLimit:       model.Gas(gasLimit),
		Resubmit:       cfg.Resubmit,
		OnBlock: func(report assembler.Report) {
			printBlock(report, cfg.Balances)
		},
	}, logger)
	if err != nil {
		return err
	}

	pterm.DefaultBox.WithTitle("chainexec demo").Println(
		pterm.Sprintf("mempool %s, %d blocks, gas limit %d", cfg.Addr, cfg.Blocks, gasLimit))

	return svc.Run(ctx, cfg.Blocks)
}

func printBlock(report assembler.Report, topBalances int) {
	block := report.Block

	pterm.DefaultSection.Printfln("block %d", block.Number)
	_ = pterm.DefaultTable.WithData(pterm.TableData{
		{"root", fmt.Sprintf("%016x", report.Root)},
		{"transactions", fmt.Sprintf("%d", len(block.Transactions))},
		{"gas", fmt.Sprintf("%d / %d", block.GasUsed, block.GasLimit)},
		{"invalid", fmt.Sprintf("%d", report.Invalid)},
		{"overflowed", fmt.Sprintf("%d", report.Overflow)},
		{"malformed", fmt.Sprintf("%d", report.Malformed)},
		{"supply", fmt.Sprintf("%d", block.Ledger.Supply())},
	}).Render()

	addrs := make([]model.Address, 0, len(block.Ledger))
	for addr := range block.Ledger {
		addrs = append(addrs, addr)
	}
	sort.Slice(addrs, func(i, j int) bool {
		return block.Ledger[addrs[i]] > block.Ledger[addrs[j]]
	})
	if len(addrs) > topBalances {
		addrs = addrs[:topBalances]
	}
	rows := pterm.TableData{{"address", "balance"}}
	for _, addr := range addrs {
		rows = append(rows, []string{fmt.Sprintf("%d", addr), fmt.Sprintf("%d", block.Ledger[addr])})
	}
	_ = pterm.DefaultTable.WithHasHeader().WithData(rows).Render()
}
