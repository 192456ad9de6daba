package produce

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	FileEventsExchange    = "file.events"
	UploadEventQueue      = "file.upload.created"
	UploadEventRoutingKey = "file.upload.created"
)

// UploadEventMessage is the wire form of an object-store upload
// notification. Bucket and Name are required; ContentType and Size may be
// absent and default to "" / 0 on the consumer side.
type UploadEventMessage struct {
	Bucket      string `json:"bucket"`
	Name        string `json:"name"`
	ContentType string `json:"contentType,omitempty"`
	Size        int64  `json:"size,omitempty"`
	Timestamp   int64  `json:"timestamp"`
}

// UploadEventService publishes upload notifications onto the file events
// exchange for the ingestion consumer.
type UploadEventService struct {
	channel *amqp.Channel
}

func InitUploadEventService(channel *amqp.Channel) *UploadEventService {
	service := &UploadEventService{
		channel: channel,
	}

	err := channel.ExchangeDeclare(
		FileEventsExchange,
		"topic",
		true,  // durable
		false, // auto-delete
		false, // internal
		false, // no-wait
		nil,
	)
	if err != nil {
		panic("Failed to declare file events exchange: " + err.Error())
	}

	_, err = channel.QueueDeclare(
		UploadEventQueue,
		true,  // durable
		false, // auto-delete
		false, // exclusive
		false, // no-wait
		nil,
	)
	if err != nil {
		panic("Failed to declare upload event queue: " + err.Error())
	}

	err = channel.QueueBind(
		UploadEventQueue,
		UploadEventRoutingKey,
		FileEventsExchange,
		false,
		nil,
	)
	if err != nil {
		panic("Failed to bind upload event queue: " + err.Error())
	}

	return service
}

// PublishUploadEvent publishes an upload notification. The timestamp is
// stamped at publish time.
func (s *UploadEventService) PublishUploadEvent(ctx context.Context, msg UploadEventMessage) error {
	msg.Timestamp = time.Now().Unix()

	body, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	return s.channel.PublishWithContext(
		ctx,
		FileEventsExchange,
		UploadEventRoutingKey,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Body:         body,
		},
	)
}
