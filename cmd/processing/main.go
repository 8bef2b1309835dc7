package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/rpcclient"
	"github.com/goodnatureofminers/tgi-processing/internal/ingest"
	"github.com/goodnatureofminers/tgi-processing/internal/metrics"
	"github.com/goodnatureofminers/tgi-processing/internal/model"
	"github.com/goodnatureofminers/tgi-processing/internal/node"
	"github.com/goodnatureofminers/tgi-processing/internal/repository/postgres"
	"github.com/jessevdk/go-flags"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const appName = "tgi-processing"

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

type config struct {
	ShowVersion      bool   `short:"V" long:"version" description:"Display version information and exit"`
	AppDir           string `short:"b" long:"appdir" env:"TGI_APPDIR" description:"Directory to store data"`
	LogDir           string `long:"logdir" env:"TGI_LOGDIR" description:"Directory to log output (defaults to <appdir>/logs)"`
	ConnectionString string `long:"connection-string" env:"TGI_CONNECTION_STRING" description:"PostgreSQL connection string" required:"true"`
	Resync           bool   `long:"resync" env:"TGI_RESYNC" description:"Sync from the pruning point instead of the sync cursor"`
	ClearDB          bool   `long:"clear-db" env:"TGI_CLEAR_DB" description:"Clear the PostgreSQL database and sync from scratch"`
	LogLevel         string `short:"d" long:"loglevel" env:"TGI_LOGLEVEL" description:"Logging level" choice:"debug" choice:"info" choice:"warn" choice:"error" default:"info"`
	RPCServer        string `short:"s" long:"rpcserver" env:"TGI_RPCSERVER" description:"RPC server to connect to (host:port)" default:"localhost:16110"`
	RPCUser          string `long:"rpc-user" env:"TGI_RPC_USER" description:"RPC username"`
	RPCPassword      string `long:"rpc-password" env:"TGI_RPC_PASSWORD" description:"RPC password"`
	RPCWebsocket     bool   `long:"rpc-websocket" env:"TGI_RPC_WEBSOCKET" description:"Use a websocket connection with push notifications instead of HTTP polling"`
	RPCRPS           int    `long:"rpc-rps" env:"TGI_RPC_RPS" description:"Maximum RPC requests per second (0 disables the limit)" default:"0"`
	NetSuffix        uint32 `long:"netsuffix" env:"TGI_NETSUFFIX" description:"Testnet network suffix number"`
	Testnet          bool   `long:"testnet" env:"TGI_TESTNET" description:"Use the test network"`
	MetricsAddr      string `long:"metrics-addr" env:"TGI_METRICS_ADDR" description:"address for metrics server" default:":2112"`
}

func main() {
	cfg := config{}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger, err := zap.NewDevelopment()
	if err != nil {
		panic("can't initialize zap logger: " + err.Error())
	}

	if _, err := flags.ParseArgs(&cfg, os.Args); err != nil {
		var ferr *flags.Error
		if errors.As(err, &ferr) && ferr.Type == flags.ErrHelp {
			return
		}
		if !hasVersionFlag(os.Args) {
			logger.Fatal("failed to parse flags", zap.Error(err))
		}
		cfg.ShowVersion = true
	}
	if cfg.ShowVersion {
		fmt.Printf("%s version %s\n", appName, version)
		return
	}

	if cfg.AppDir == "" {
		cfg.AppDir = btcutil.AppDataDir(appName, false)
	}
	if cfg.LogDir == "" {
		cfg.LogDir = filepath.Join(cfg.AppDir, "logs")
	}
	logger, err = newLogger(cfg.LogLevel, cfg.LogDir)
	if err != nil {
		panic("can't initialize zap logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync()
	}()

	if err := run(ctx, cfg, logger); err != nil && !errors.Is(err, context.Canceled) {
		logger.Fatal("processing failed", zap.Error(err))
	}
	logger.Info("processing stopped")
}

func run(ctx context.Context, cfg config, logger *zap.Logger) error {
	network := model.NetworkName(cfg.Testnet, cfg.NetSuffix)
	logger = logger.With(zap.String("network", network))
	logger.Info("starting processing", zap.String("version", version), zap.String("rpc_server", cfg.RPCServer))

	startMetricsServer(ctx, cfg.MetricsAddr, logger)

	if err := postgres.Migrate(cfg.ConnectionString); err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}
	repo, err := postgres.NewRepository(ctx, cfg.ConnectionString, metrics.NewPostgresRepository())
	if err != nil {
		return fmt.Errorf("init repository: %w", err)
	}
	defer repo.Close()

	rpcMetrics := metrics.NewRPCClient(network)
	opts := []node.Option{node.WithRateLimit(cfg.RPCRPS)}
	var handlers *rpcclient.NotificationHandlers
	if cfg.RPCWebsocket {
		relay := node.NewRelay(1024, rpcMetrics, logger)
		handlers = relay.Handlers()
		opts = append(opts, node.WithRelay(relay))
	}
	rpc, err := rpcclient.New(&rpcclient.ConnConfig{
		Host:         cfg.RPCServer,
		Endpoint:     "ws",
		User:         cfg.RPCUser,
		Pass:         cfg.RPCPassword,
		HTTPPostMode: !cfg.RPCWebsocket,
		DisableTLS:   true,
	}, handlers)
	if err != nil {
		return fmt.Errorf("init rpc client: %w", err)
	}
	defer func() {
		rpc.Shutdown()
		rpc.WaitForShutdown()
	}()

	pipeline, err := ingest.NewPipeline(
		ingest.Config{
			Network:           network,
			ProcessingVersion: version,
			Resync:            cfg.Resync,
			ClearDB:           cfg.ClearDB,
		},
		repo,
		node.NewClient(rpc, rpcMetrics, logger, opts...),
		metrics.NewPipeline(network),
		logger,
	)
	if err != nil {
		return err
	}
	return pipeline.Run(ctx)
}

// hasVersionFlag reports whether args ask for the version, which must work
// without the required flags.
func hasVersionFlag(args []string) bool {
	for _, arg := range args[1:] {
		if arg == "-V" || arg == "--version" {
			return true
		}
	}
	return false
}

func newLogger(level, logDir string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	if logDir != "" {
		if err := os.MkdirAll(logDir, 0o700); err != nil {
			return nil, fmt.Errorf("create log dir: %w", err)
		}
		cfg.OutputPaths = append(cfg.OutputPaths, filepath.Join(logDir, appName+".log"))
		cfg.ErrorOutputPaths = append(cfg.ErrorOutputPaths, filepath.Join(logDir, appName+"_err.log"))
	}
	return cfg.Build()
}

func startMetricsServer(ctx context.Context, addr string, logger *zap.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("starting metrics server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server failed", zap.Error(err))
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("failed to shutdown metrics server", zap.Error(err))
		}
	}()
}
