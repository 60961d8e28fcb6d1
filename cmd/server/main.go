package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/openagora/settlement/internal/config"
	"github.com/openagora/settlement/internal/infrastructure/crypto"
	"github.com/openagora/settlement/internal/infrastructure/database"
	grpcServer "github.com/openagora/settlement/internal/infrastructure/grpc"
	httpServer "github.com/openagora/settlement/internal/infrastructure/http"
	"github.com/openagora/settlement/internal/infrastructure/notify"
	"github.com/openagora/settlement/internal/infrastructure/provider/lnaddress"
	"github.com/openagora/settlement/internal/infrastructure/provider/nwc"
	"github.com/openagora/settlement/internal/infrastructure/provider/onchain"
	"github.com/openagora/settlement/internal/usecase"
	"github.com/openagora/settlement/pkg/logger"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	zapLogger, err := logger.NewZapLogger(logger.Config{
		Level:       cfg.Log.Level,
		Format:      cfg.Log.Format,
		Output:      "stdout",
		Development: cfg.Service.Environment != "production",
	})
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer zapLogger.Sync()

	db, err := database.NewConnection(&cfg.Database, zapLogger)
	if err != nil {
		zapLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := database.Close(db, zapLogger); err != nil {
			zapLogger.Error("Failed to close database connection", zap.Error(err))
		}
	}()

	if err := database.Migrate(db, zapLogger); err != nil {
		zapLogger.Fatal("Failed to run database migrations", zap.Error(err))
	}

	repos := database.NewRepositories(db, zapLogger)

	encryptService, err := crypto.NewAESEncryptionService(cfg.Service.EncryptionKey)
	if err != nil {
		zapLogger.Fatal("Failed to initialize encryption service", zap.Error(err))
	}

	connector := nwc.NewConnector(cfg.Service.NWC.RequestTimeout, zapLogger)
	lnGenerator := lnaddress.NewGenerator(
		&http.Client{Timeout: cfg.Service.LNURL.RequestTimeout},
		cfg.Service.LNURL.InvoiceExpiry,
		zapLogger,
	)
	onchainGenerator := onchain.NewGenerator(cfg.Service.Bitcoin.SoftExpiry, zapLogger)

	resolver := usecase.NewWalletResolverService(
		repos.Wallet,
		repos.Listing,
		repos.Campaign,
		encryptService,
		zapLogger,
	)
	invoices := usecase.NewInvoiceService(
		connector,
		lnGenerator,
		onchainGenerator,
		cfg.Service.NWC.InvoiceExpiry,
		zapLogger,
	)
	notifier := notify.NewLogNotifier(zapLogger)

	payments := usecase.NewPaymentService(
		repos.PaymentIntent,
		repos.Order,
		repos.Contribution,
		repos.Listing,
		repos.Campaign,
		resolver,
		invoices,
		connector,
		notifier,
		zapLogger,
	)
	orders := usecase.NewOrderService(repos.Order, zapLogger)
	shipping := usecase.NewShippingService(repos.ShippingAddress, zapLogger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	grpcSrv := grpcServer.NewServer(cfg, zapLogger)
	httpSrv := httpServer.NewServer(cfg, zapLogger, payments, orders, shipping)

	go func() {
		if err := grpcSrv.Start(); err != nil {
			zapLogger.Fatal("Failed to start gRPC server", zap.Error(err))
		}
	}()

	go func() {
		if err := httpSrv.Start(); err != nil && err != http.ErrServerClosed {
			zapLogger.Fatal("Failed to start HTTP server", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	zapLogger.Info("Shutting down servers...")

	if err := grpcSrv.Shutdown(ctx); err != nil {
		zapLogger.Error("Failed to shutdown gRPC server", zap.Error(err))
	}

	if err := httpSrv.Shutdown(ctx); err != nil {
		zapLogger.Error("Failed to shutdown HTTP server", zap.Error(err))
	}

	zapLogger.Info("Servers shut down successfully")
}
