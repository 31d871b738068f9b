package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"

	"github.com/example/carrier-gateway/internal/application/services"
	"github.com/example/carrier-gateway/internal/config"
	"github.com/example/carrier-gateway/internal/infrastructure/carrier"
	"github.com/example/carrier-gateway/internal/infrastructure/labels"
	"github.com/example/carrier-gateway/internal/infrastructure/persistence"
	"github.com/example/carrier-gateway/internal/infrastructure/persistence/postgres"
	"github.com/example/carrier-gateway/internal/interfaces/rest/handlers"
	"github.com/example/carrier-gateway/internal/interfaces/rest/middleware"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := cfg.Logger.NewLogger()
	slog.SetDefault(logger)

	logger.Info("starting carrier gateway",
		"port", cfg.Server.Port,
		"carrier_base_url", cfg.Carrier.BaseURL,
		"log_level", cfg.Logger.Level,
	)

	ctx := context.Background()
	db, err := persistence.Connect(ctx, &cfg.Database, logger)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	accountRepo := postgres.NewAccountRepository(db)
	shipperRepo := postgres.NewShipperRepository(db)
	brokerRepo := postgres.NewBrokerRepository(db)
	orderRepo := postgres.NewOrderRepository(db)
	exchangeRepo := postgres.NewExchangeLogRepository(db)

	labelStore, err := labels.NewStore(cfg.Labels)
	if err != nil {
		logger.Error("failed to prepare label directory", "error", err)
		os.Exit(1)
	}

	tokenCache := carrier.NewTokenCache(cfg.Carrier, exchangeRepo, accountRepo, logger)
	carrierClient := carrier.NewClient(cfg.Carrier, tokenCache, exchangeRepo, labelStore, logger)

	accountService := services.NewAccountService(accountRepo, logger)
	addressService := services.NewAddressService(shipperRepo, brokerRepo, logger)
	rateService := services.NewRateService(accountRepo, carrierClient, logger)
	shipmentService := services.NewShipmentService(accountRepo, shipperRepo, brokerRepo, orderRepo, carrierClient, logger)
	trackingService := services.NewTrackingService(accountRepo, carrierClient, labelStore, logger)
	queryService := services.NewQueryService(orderRepo)

	h := handlers.NewHandlers(
		accountService,
		addressService,
		rateService,
		shipmentService,
		trackingService,
		queryService,
	)

	router := mux.NewRouter()
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods(http.MethodGet)

	h.RegisterRoutes(router.PathPrefix("/api/v1").Subrouter())

	handler := http.Handler(router)
	handler = middleware.Auth(cfg.Auth.ServiceToken)(handler)
	handler = middleware.Recovery(logger)(handler)
	handler = middleware.Logging(logger)(handler)
	handler = middleware.Timeout(cfg.Server.ReadTimeout)(handler)

	server := &http.Server{
		Addr:         "0.0.0.0:" + cfg.Server.Port,
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		logger.Info("server starting", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}

	logger.Info("server exited")
}
