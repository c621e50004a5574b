package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/jayanth2212/AgriSure/internal/config"
	"github.com/jayanth2212/AgriSure/internal/database/postgres"
	"github.com/jayanth2212/AgriSure/internal/database/redis"
	"github.com/jayanth2212/AgriSure/internal/engine"
	"github.com/jayanth2212/AgriSure/internal/event"
	"github.com/jayanth2212/AgriSure/internal/repository"
	"github.com/jayanth2212/AgriSure/internal/worker"
)

func setupLogging() (*os.File, error) {
	logDir := filepath.Join("/agrisure", "log", "claims_engine")
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		// Fall back to stderr-only logging.
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	logFileName := fmt.Sprintf("log_%s.log", time.Now().Format("2006-01-02"))
	file, err := os.OpenFile(filepath.Join(logDir, logFileName), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(file, nil)))
	return file, nil
}

func main() {
	logFile, err := setupLogging()
	if err != nil {
		slog.Warn("file logging unavailable", "error", err)
	} else {
		defer logFile.Close()
	}

	cfg := config.New()
	if cfg.OracleID == "" || cfg.InvestigatorID == "" {
		slog.Error("ENGINE_ORACLE_ID and ENGINE_INVESTIGATOR_ID must be set")
		os.Exit(1)
	}

	db, err := postgres.ConnectAndCreateDB(cfg.PostgresCfg)
	if err != nil {
		// State reload needs the mirror, so boot blocks until the
		// database comes up instead of proceeding without one.
		slog.Error("failed to connect to database, retrying", "error", err)
		postgres.RetryConnectOnFailed(30*time.Second, &db, cfg.PostgresCfg)
	}
	defer db.Close()

	var redisClient *redis.Client
	if redisClient, err = redis.NewClient(cfg.RedisCfg); err != nil {
		slog.Warn("redis unavailable, claim cache disabled", "error", err)
		redisClient = nil
	} else {
		defer redisClient.Close()
	}

	rabbitConn, err := event.ConnectRabbitMQ(cfg.RabbitMQCfg)
	if err != nil {
		slog.Error("failed to connect to RabbitMQ", "error", err)
		os.Exit(1)
	}
	defer rabbitConn.Close()

	farmerRepo := repository.NewFarmerRepository(db)
	policyRepo := repository.NewPolicyRepository(db)
	var claimRepo *repository.ClaimRepository
	if redisClient != nil {
		claimRepo = repository.NewClaimRepository(db, redisClient.GetClient())
	} else {
		claimRepo = repository.NewClaimRepository(db, nil)
	}
	alertRepo := repository.NewFraudAlertRepository(db)
	metaRepo := repository.NewMetaRepository(db)

	journal := worker.NewChannelJournal(cfg.JournalBuffer)
	transferor := event.NewAMQPFundTransferor(rabbitConn)

	eng, err := engine.New(engine.Config{
		AdminID:           cfg.AdminID,
		OracleID:          cfg.OracleID,
		InvestigatorID:    cfg.InvestigatorID,
		MinimumTrustScore: cfg.MinimumTrustScore,
	}, transferor, journal)
	if err != nil {
		slog.Error("failed to build engine", "error", err)
		os.Exit(1)
	}

	if err := reloadState(eng, farmerRepo, policyRepo, claimRepo, alertRepo, metaRepo); err != nil {
		slog.Error("failed to reload ledger state", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store := worker.NewPostgresStore(farmerRepo, policyRepo, claimRepo, alertRepo, metaRepo)
	notifier := event.NewNotificationPublisher(rabbitConn)
	persistor := worker.NewPersistor(journal, store, notifier)
	go persistor.Run(ctx)

	slog.Info("claims engine running",
		"admin", cfg.AdminID,
		"oracle", cfg.OracleID,
		"investigator", cfg.InvestigatorID,
		"balance", eng.Balance(),
	)

	<-ctx.Done()
	slog.Info("shutting down", "publisher_metrics", notifier.GetMetrics())
}

// reloadState rebuilds the in-memory ledger from the durable mirror.
func reloadState(
	eng *engine.Engine,
	farmerRepo *repository.FarmerRepository,
	policyRepo *repository.PolicyRepository,
	claimRepo *repository.ClaimRepository,
	alertRepo *repository.FraudAlertRepository,
	metaRepo *repository.MetaRepository,
) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	farmers, err := farmerRepo.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to load farmers: %w", err)
	}
	policies, err := policyRepo.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to load policies: %w", err)
	}
	claims, err := claimRepo.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to load claims: %w", err)
	}
	alerts, err := alertRepo.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to load fraud alerts: %w", err)
	}
	balance, err := metaRepo.GetBalance(ctx)
	if err != nil {
		return fmt.Errorf("failed to load balance: %w", err)
	}

	eng.LoadState(farmers, policies, claims, alerts, balance)
	slog.Info("ledger state reloaded",
		"farmers", len(farmers),
		"policies", len(policies),
		"claims", len(claims),
		"alerts", len(alerts),
		"balance", balance,
	)
	return nil
}
