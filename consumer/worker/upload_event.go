package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/tnqbao/gau-file-metadata/infra"
	"github.com/tnqbao/gau-file-metadata/infra/produce"
	"github.com/tnqbao/gau-file-metadata/ingest"
	"github.com/tnqbao/gau-file-metadata/repository"
)

// UploadEventConsumer drains the upload-event queue and runs each delivery
// through the ingestion processor. Acknowledgement policy:
//   - processed or skipped: Ack (the effect is in place either way)
//   - malformed payload: Nack without requeue (redelivery cannot help)
//   - store failure: Nack with requeue, broker redelivery is the retry loop
type UploadEventConsumer struct {
	channel   *amqp.Channel
	infra     *infra.Infra
	processor *ingest.Processor
	done      chan struct{}
}

func NewUploadEventConsumer(channel *amqp.Channel, infra *infra.Infra, repo *repository.Repository) *UploadEventConsumer {
	return &UploadEventConsumer{
		channel:   channel,
		infra:     infra,
		processor: ingest.NewProcessor(repo.FileMetadataRepo),
		done:      make(chan struct{}),
	}
}

// Done is closed when the consume loop stops, whether by context
// cancellation or because the broker closed the delivery channel.
func (c *UploadEventConsumer) Done() <-chan struct{} {
	return c.done
}

func (c *UploadEventConsumer) Start(ctx context.Context) error {
	msgs, err := c.channel.Consume(
		produce.UploadEventQueue,
		"",
		false, // manual ack
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return fmt.Errorf("failed to register upload event consumer: %w", err)
	}

	c.infra.Logger.InfoWithContextf(ctx, "[Upload Event Consumer] Started listening on queue: %s", produce.UploadEventQueue)

	go c.run(ctx, msgs)

	return nil
}

func (c *UploadEventConsumer) run(ctx context.Context, msgs <-chan amqp.Delivery) {
	defer close(c.done)
	for {
		select {
		case <-ctx.Done():
			c.infra.Logger.InfoWithContextf(ctx, "[Upload Event Consumer] Shutting down...")
			return
		case msg, ok := <-msgs:
			if !ok {
				c.infra.Logger.WarningWithContextf(ctx, "[Upload Event Consumer] Delivery channel closed by broker")
				return
			}
			c.handleUploadEvent(ctx, msg)
		}
	}
}

func (c *UploadEventConsumer) handleUploadEvent(ctx context.Context, msg amqp.Delivery) {
	event, err := DecodeUploadEvent(msg.Body)
	if err != nil {
		c.infra.Logger.ErrorWithContextf(ctx, err, "[Upload Event Consumer] Failed to decode message, dropping")
		_ = msg.Nack(false, false)
		return
	}

	outcome, err := c.processor.Process(ctx, event)
	switch outcome {
	case ingest.OutcomeProcessed:
		c.infra.Logger.InfoWithContextf(ctx, "[Upload Event Consumer] Recorded metadata for '%s' in bucket '%s'", event.Name, event.Bucket)
		_ = msg.Ack(false)
	case ingest.OutcomeSkipped:
		c.infra.Logger.InfoWithContextf(ctx, "[Upload Event Consumer] File '%s' in bucket '%s' already processed, skipping", event.Name, event.Bucket)
		_ = msg.Ack(false)
	default:
		if errors.Is(err, ingest.ErrMalformedEvent) {
			c.infra.Logger.ErrorWithContextf(ctx, err, "[Upload Event Consumer] Malformed event, dropping")
			_ = msg.Nack(false, false)
			return
		}
		c.infra.Logger.ErrorWithContextf(ctx, err, "[Upload Event Consumer] Store failure, requeueing for redelivery")
		_ = msg.Nack(false, true)
	}
}

// DecodeUploadEvent parses an upload notification. Missing contentType and
// size default to "" and 0; presence of bucket and name is checked by the
// processor so the decode itself stays lenient.
func DecodeUploadEvent(body []byte) (ingest.UploadEvent, error) {
	var payload produce.UploadEventMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		return ingest.UploadEvent{}, fmt.Errorf("invalid upload event payload: %w", err)
	}

	size := payload.Size
	if size < 0 {
		size = 0
	}

	return ingest.UploadEvent{
		Bucket:      payload.Bucket,
		Name:        payload.Name,
		ContentType: payload.ContentType,
		Size:        size,
		Raw:         body,
	}, nil
}
