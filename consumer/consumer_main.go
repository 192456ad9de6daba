package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/tnqbao/gau-file-metadata/config"
	"github.com/tnqbao/gau-file-metadata/consumer/worker"
	infraPkg "github.com/tnqbao/gau-file-metadata/infra"
	"github.com/tnqbao/gau-file-metadata/repository"
)

func main() {
	err := godotenv.Load("../staging.env")
	if err != nil {
		log.Println("No .env file found, continuing with environment variables")
	}

	cfg := config.NewConfig()
	infra := infraPkg.InitInfra(cfg)
	repo := repository.InitRepository(infra)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	uploadEventConsumer := worker.NewUploadEventConsumer(infra.RabbitMQ.Channel, infra, repo)
	if err := uploadEventConsumer.Start(ctx); err != nil {
		infra.Logger.ErrorWithContextf(ctx, err, "Failed to start upload event consumer: %v", err)
		log.Fatalf("Failed to start upload event consumer: %v", err)
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-quit:
		infra.Logger.InfoWithContextf(ctx, "Shutting down consumer...")
	case <-uploadEventConsumer.Done():
		infra.Logger.ErrorWithContextf(ctx, nil, "Upload event consumer stopped unexpectedly, shutting down")
	}
	cancel()

	infra.RabbitMQ.Close()

	infra.Logger.InfoWithContextf(ctx, "Consumer exited properly")
	_ = infra.Logger.Shutdown(context.Background())
}
