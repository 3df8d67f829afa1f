package main

import (
	"context"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Netflix/go-env"
	"github.com/dgraph-io/badger/v4"
	"github.com/joho/godotenv"
	"github.com/mama165/sdk-go/logs"

	"chatdice/completion"
	"chatdice/contract"
	"chatdice/repositories"
	"chatdice/runtime"
	"chatdice/runtime/workers"
	"chatdice/synthetic"
	"chatdice/transport"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
		os.Exit(1)
	}
}

// run initializes all components, manages the server lifecycle, and centralizes error reporting.
func run() error {
	// 1. Configuration & Logger
	_ = godotenv.Load()
	var config Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	log := logs.GetLoggerFromString(config.LogLevel)

	// 2. Database (BadgerDB)
	db, err := badger.Open(badger.DefaultOptions(config.BadgerFilepath).
		WithLoggingLevel(badger.WARNING))
	if err != nil {
		return fmt.Errorf("database opening failed: %w", err)
	}
	defer func() {
		log.Info("Closing BadgerDB...")
		_ = db.Close()
	}()

	// 3. Session core
	catalog, err := synthetic.LoadCatalog(log)
	if err != nil {
		return fmt.Errorf("loading personality catalog: %w", err)
	}

	completionCfg := completion.DefaultConfig(config.OpenAIAPIKey)
	completionCfg.BaseURL = config.OpenAIBaseURL
	completionCfg.Model = config.OpenAIModel
	completer := completion.NewClient(log, completionCfg)

	messageRepository := repositories.NewMessageRepository(db, log, config.LimitMessages)
	reportRepository := repositories.NewReportRepository(db, log)

	syntheticCfg := synthetic.DefaultConfig()
	syntheticCfg.MinQueueWait = config.MinQueueWait
	syntheticCfg.MaxQueueWait = config.MaxQueueWait
	syntheticCfg.FirstMessageProbability = config.FirstMessageProbability
	syntheticCfg.MaxDuration = config.MaxConversationTime
	syntheticCfg.MaxTurns = config.MaxConversationTurns

	engine := runtime.NewEngine(
		log,
		contract.SystemClock{},
		rand.New(rand.NewSource(time.Now().UnixNano())),
		syntheticCfg,
		catalog,
		completer,
		messageRepository,
		reportRepository,
	)

	// 4. Supervision
	sup := workers.NewSupervisor(log).WithRestartDelay(config.RestartInterval)
	sup.Add(
		workers.NewQueueSweepWorker(log, engine.Arbiter(), config.QueueSweepInterval),
		workers.NewStaleConversationWorker(log, engine.Orchestrator(), config.StaleSweepInterval),
		workers.NewPreemptionWorker(log, engine.Orchestrator(), config.PreemptionInterval),
		workers.NewRetentionWorker(log, messageRepository, config.RetentionPeriod, config.RetentionInterval),
		workers.NewHeartbeatWorker(log, engine, config.HeartbeatInterval),
	)

	// 5. Context & Signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go sup.Run(ctx)

	// 6. HTTP server
	handler := transport.NewSessionHandler(log, engine)
	router := transport.NewRouter(handler, engine)

	address := fmt.Sprintf("%s:%d", config.Host, config.Port)
	server := &http.Server{Addr: address, Handler: router}

	errChan := make(chan error, 1)
	go func() {
		log.Info("Starting server", "address", address, "at", time.Now().UTC())
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("server error: %w", err)
		}
	}()

	// 7. Wait for Stop or Error
	select {
	case <-ctx.Done():
		log.Info("Shutting down gracefully...")
	case err := <-errChan:
		return err
	}

	// 8. Final Cleanup
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Warn("Server shutdown", "error", err)
	}
	sup.Stop()
	log.Info("Program stopped cleanly")

	return nil
}
