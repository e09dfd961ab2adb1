package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"

	"wastewise-pickup-demo/internal/checkout"
	"wastewise-pickup-demo/internal/client"
	"wastewise-pickup-demo/internal/config"
	"wastewise-pickup-demo/internal/handler"
	"wastewise-pickup-demo/internal/payment"
	"wastewise-pickup-demo/internal/repository"
	"wastewise-pickup-demo/internal/server"
	"wastewise-pickup-demo/internal/service"
)

func main() {
	// load .env into os.Environ
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found (ok in prod)")
	}

	cfg := &config.Config{}
	if err := env.Parse(cfg); err != nil {
		fmt.Printf("Failed to parse config: %v\n", err)
		os.Exit(1)
	}

	db := client.InitSqliteClient(cfg.DatabasePath)
	midtransClient := client.NewMidtransClient(&cfg.Midtrans)
	braintreeClient := client.NewBraintreeClient(&cfg.BrainTree)

	userRepo := repository.NewUserRepository(db)
	locationRepo := repository.NewLocationRepository(db)
	transactionRepo := repository.NewTransactionRepository(db)
	contributionRepo := repository.NewContributionRepository(db)
	webhookEventRepo := repository.NewWebhookEventRepository(db)

	authService := service.NewAuthService(userRepo, cfg.JWTSecret)
	locationService := service.NewLocationService(locationRepo)
	contributionService := service.NewContributionService(contributionRepo)
	paymentService := service.NewPaymentService(db, midtransClient, transactionRepo, webhookEventRepo, userRepo, contributionRepo)

	if err := locationService.EnsureSeeded(context.Background()); err != nil {
		log.Fatal("seed locations:", err)
	}

	// The HTTP pay request is the user's confirmation click, so the demo
	// method auto-confirms here.
	processor := payment.NewProcessor(payment.AutoConfirm, midtransClient, braintreeClient)

	rewardsFor := func(userID string) checkout.Rewards {
		return service.NewUserRewards(userID, userRepo, contributionRepo)
	}

	authHandler := handler.NewAuthHandler(authService, contributionService)
	locationHandler := handler.NewLocationHandler(locationService)
	paymentHandler := handler.NewPaymentHandler(paymentService)
	checkoutHandler := handler.NewCheckoutHandler(processor, locationService, rewardsFor)

	serverAddr := cfg.HTTP.Host + ":" + cfg.HTTP.Port

	// Init HTTP server
	srv := server.NewServer(authService, authHandler, locationHandler, paymentHandler, checkoutHandler)

	log.Println("Starting HTTP server on", serverAddr)
	go func() {
		if err := srv.Start(serverAddr); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error")
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	<-sigChan
	log.Println("Signal received, starting graceful shutdown...")

	_, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(); err != nil {
		log.Fatal("HTTP server shutdown error")
	}
}
