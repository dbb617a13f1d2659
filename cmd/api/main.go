package main

import (
	"context"
	"errors"
	stdhttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"contract-approval/internal/adapter/cache"
	httpadp "contract-approval/internal/adapter/http"
	"contract-approval/internal/adapter/middleware"
	"contract-approval/internal/adapter/repository/mysql"
	"contract-approval/internal/config"
	"contract-approval/internal/domain/ledger"
	infracache "contract-approval/internal/infrastructure/cache"
	"contract-approval/internal/infrastructure/db"
	"contract-approval/internal/infrastructure/logging"
	"contract-approval/internal/infrastructure/metrics"
	"contract-approval/internal/infrastructure/tracing"
	ucAudit "contract-approval/internal/usecase/audit"
	ucContract "contract-approval/internal/usecase/contract"
	ucDoc "contract-approval/internal/usecase/document"
	ucLedger "contract-approval/internal/usecase/ledger"
	ucMod "contract-approval/internal/usecase/modification"
	ucUser "contract-approval/internal/usecase/user"
)

func main() {
	cfg := config.Load()

	logger, err := logging.New(cfg.LogLevel, cfg.LogDevelopment)
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()

	if err := cfg.Validate(); err != nil {
		logger.Fatal("invalid configuration", zap.Error(err))
	}
	roster, err := ledger.NewRoster(cfg.LedgerApprovers, cfg.LedgerAuditors, cfg.LedgerQuorum)
	if err != nil {
		logger.Fatal("invalid ledger roster", zap.Error(err))
	}

	if cfg.TracingEnabled {
		tp, err := tracing.Init(cfg.ServiceName, os.Stdout)
		if err != nil {
			logger.Fatal("init tracing", zap.Error(err))
		}
		defer func() { _ = tp.Shutdown(context.Background()) }()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gdb, err := db.OpenGorm(cfg.MySQLDSN(), logger)
	if err != nil {
		logger.Fatal("open mysql", zap.Error(err))
	}
	if err := mysql.AutoMigrate(gdb); err != nil {
		logger.Fatal("migrate", zap.Error(err))
	}
	rdb, err := infracache.OpenRedis(ctx, cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		logger.Fatal("open redis", zap.Error(err))
	}
	defer func() { _ = rdb.Close() }()

	if err := ucLedger.Bootstrap(ctx, roster, mysql.NewDeploymentRepository(gdb)); err != nil {
		logger.Fatal("ledger bootstrap", zap.Error(err))
	}
	logger.Info("ledger roster",
		zap.Int("approvers", roster.Size()),
		zap.Int("quorum", roster.Quorum()),
		zap.String("fingerprint", roster.Fingerprint()),
	)

	reg := prometheus.NewRegistry()
	reg.MustRegister(prometheus.NewGoCollector(), prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}))
	collector := metrics.New(reg)

	// repositories + unit of work
	records := mysql.NewRecordRepository(gdb)
	tx := mysql.NewGormUoW(gdb)
	recorder := ucAudit.NewRecorder()
	tokens := ucUser.NewTokenIssuer(cfg.JWTSecret, cfg.JWTTTL)

	ledgerUC := ucLedger.NewUsecase(roster, records, mysql.NewVoteRepository(gdb), tx, recorder,
		ucLedger.WithCache(cache.NewStatusCache(rdb)),
		ucLedger.WithMetrics(collector),
		ucLedger.WithLogger(logger.Named("ledger")),
	)
	contractUC := ucContract.NewUsecase(roster, mysql.NewContractRepository(gdb), records,
		mysql.NewSequenceRepository(gdb), tx, recorder, collector, logger.Named("contract"))
	modUC := ucMod.NewUsecase(roster, mysql.NewModificationRepository(gdb), tx, recorder, collector,
		logger.Named("modification"))
	auditUC := ucAudit.NewUsecase(mysql.NewAuditRepository(gdb), logger.Named("audit"))
	userUC := ucUser.NewUsecase(mysql.NewUserRepository(gdb), tokens, logger.Named("user"))
	docUC := ucDoc.NewUsecase(mysql.NewDocumentRepository(gdb), cfg.DocumentMaxBytes, logger.Named("document"))

	if cfg.AdminPassword != "" {
		if _, err := userUC.SeedAdmin(ctx, cfg.AdminUsername, cfg.AdminEmail, cfg.AdminPassword); err != nil {
			logger.Fatal("seed admin", zap.Error(err))
		}
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = httpadp.NewValidator()
	e.Use(echomw.RequestID(), middleware.RequestLogger(logger), echomw.Recover(), middleware.Metrics(collector))
	e.Use(echomw.CORS())

	// routes
	httpadp.Register(e, httpadp.Routes{
		Health: httpadp.NewHandler(roster, map[string]httpadp.Check{
			"mysql": func(ctx context.Context) error {
				sqlDB, err := gdb.DB()
				if err != nil {
					return err
				}
				return sqlDB.PingContext(ctx)
			},
			"redis": func(ctx context.Context) error { return rdb.Ping(ctx).Err() },
		}),
		Ledger:         httpadp.NewLedgerHandler(ledgerUC),
		Contracts:      httpadp.NewContractHandler(contractUC),
		Modifications:  httpadp.NewModificationHandler(modUC),
		Audit:          httpadp.NewAuditHandler(auditUC),
		Auth:           httpadp.NewAuthHandler(userUC),
		Documents:      httpadp.NewDocumentHandler(docUC),
		Tokens:         tokens,
		Redis:          rdb,
		IdempotencyTTL: time.Duration(cfg.IdempTTLSecs) * time.Second,
		MaxClockSkew:   cfg.MaxClockSkew,
		MaxBodyBytes:   cfg.MaxBodyBytes,
		Logger:         logger.Named("idempotency"),
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	addr := ":" + cfg.AppPort
	go func() {
		logger.Info("listening", zap.String("addr", addr))
		if err := e.Start(addr); err != nil && !errors.Is(err, stdhttp.ErrServerClosed) {
			logger.Fatal("server stopped", zap.Error(err))
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown", zap.Error(err))
	}
}
