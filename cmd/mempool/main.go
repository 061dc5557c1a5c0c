package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	grpcZap "github.com/grpc-ecosystem/go-grpc-middleware/logging/zap"
	grpcPrometheus "github.com/grpc-ecosystem/go-grpc-prometheus"
	"github.com/jessevdk/go-flags"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"go.uber.org/zap"

	"github.com/goodnatureofminers/chainexec/internal/chain/mempool"
	"github.com/goodnatureofminers/chainexec/internal/clock"
	"github.com/goodnatureofminers/chainexec/internal/metrics"
	"github.com/goodnatureofminers/chainexec/internal/transport"
)

type config struct {
	Addr          string        `long:"addr" env:"MEMPOOL_ADDR" description:"gRPC listen address" default:":7000"`
	MetricsAddr   string        `long:"metrics-addr" env:"MEMPOOL_METRICS_ADDR" description:"metrics HTTP listen address" default:":7001"`
	Validators    int           `long:"validators" env:"MEMPOOL_VALIDATORS" description:"simulated validator count" default:"4"`
	BatchSize     int           `long:"batch-size" env:"MEMPOOL_BATCH_SIZE" description:"transactions per sealed collection" default:"100"`
	RoundInterval time.Duration `long:"round-interval" env:"MEMPOOL_ROUND_INTERVAL" description:"time between consensus rounds" default:"1s"`
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
	grpcZap.ReplaceGrpcLoggerV2(logger)

	if _, err := flags.ParseArgs(&cfg, os.Args); err != nil {
		var ferr *flags.Error
		if errors.As(err, &ferr) && ferr.Type == flags.ErrHelp {
			return
		}
		logger.Fatal("failed to parse flags", zap.Error(err))
	}

	if err := run(ctx, cfg, logger); err != nil {
		logger.Fatal("mempool failed", zap.Error(err))
	}
}

func run(ctx context.Context, cfg config, logger *zap.Logger) error {
	pool := mempool.New(mempool.ValidatorSet(cfg.Validators), cfg.BatchSize, logger)
	metrics.RegisterMempool(pool)

	server := transport.NewServer(pool, logger)
	grpcPrometheus.EnableHandlingTimeHistogram()
	grpcPrometheus.Register(server)

	socket, err := net.Listen("tcp", cfg.Addr)
	if err != nil {
		return err
	}
	go func() {
		if serveErr := server.Serve(socket); serveErr != nil {
			logger.Fatal("start gRPC server", zap.Error(serveErr))
		}
	}()
	go func() {
		<-ctx.Done()
		logger.Info("shutting down gRPC server")
		server.GracefulStop()
	}()
	logger.Info("mempool listening", zap.String("addr", cfg.Addr))

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	metricsServer := &http.Server{
		Addr:    cfg.MetricsAddr,
		Handler: cors.AllowAll().Handler(mux),
	}
	go func() {
		if serveErr := metricsServer.ListenAndServe(); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			logger.Fatal("start metrics server", zap.Error(serveErr))
		}
	}()
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = metricsServer.Shutdown(shutdownCtx)
	}()

	err = clock.Every(ctx, cfg.RoundInterval, func() {
		round := pool.AdvanceRound()
		logger.Debug("advanced round", zap.Uint64("round", round))
	})
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
