package main

import (
	"context"
	"log"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/minio/minio-go/v7/pkg/notification"

	"github.com/tnqbao/gau-file-metadata/config"
	infraPkg "github.com/tnqbao/gau-file-metadata/infra"
	"github.com/tnqbao/gau-file-metadata/infra/produce"
)

// The notifier bridges MinIO bucket notifications onto the upload-event
// queue. MinIO delivers s3:ObjectCreated events over a long-lived listen
// stream; each record is normalized and republished so the consumer only
// ever sees one event shape.
func main() {
	err := godotenv.Load("../staging.env")
	if err != nil {
		log.Println("No .env file found, continuing with environment variables")
	}

	cfg := config.NewConfig()
	infra := infraPkg.InitInfra(cfg)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go listenLoop(ctx, infra)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	infra.Logger.InfoWithContextf(ctx, "Shutting down notifier...")
	cancel()

	infra.RabbitMQ.Close()
	_ = infra.Logger.Shutdown(context.Background())
}

func listenLoop(ctx context.Context, infra *infraPkg.Infra) {
	for {
		if ctx.Err() != nil {
			return
		}

		infra.Logger.InfoWithContextf(ctx, "[Notifier] Listening for object-created events on %s", infra.Minio.Endpoint)

		events := infra.Minio.Client.ListenNotification(ctx, "", "", []string{
			"s3:ObjectCreated:*",
		})

		for info := range events {
			if info.Err != nil {
				infra.Logger.ErrorWithContextf(ctx, info.Err, "[Notifier] Notification stream error, reconnecting")
				break
			}
			for _, record := range info.Records {
				publishRecord(ctx, infra, record)
			}
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(3 * time.Second):
		}
	}
}

func publishRecord(ctx context.Context, infra *infraPkg.Infra, record notification.Event) {
	// Object keys arrive URL-encoded in S3 notification records.
	objectName, err := url.QueryUnescape(record.S3.Object.Key)
	if err != nil {
		objectName = record.S3.Object.Key
	}

	msg := produce.UploadEventMessage{
		Bucket:      record.S3.Bucket.Name,
		Name:        objectName,
		ContentType: record.S3.Object.ContentType,
		Size:        record.S3.Object.Size,
	}

	if err := infra.Produce.UploadEventService.PublishUploadEvent(ctx, msg); err != nil {
		infra.Logger.ErrorWithContextf(ctx, err, "[Notifier] Failed to publish upload event for '%s/%s'", msg.Bucket, msg.Name)
		return
	}

	infra.Logger.InfoWithContextf(ctx, "[Notifier] Published upload event for '%s/%s' (%d bytes)", msg.Bucket, msg.Name, msg.Size)
}
