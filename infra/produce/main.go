package produce

import amqp "github.com/rabbitmq/amqp091-go"

type Produce struct {
	UploadEventService *UploadEventService
}

func InitProduce(channel *amqp.Channel) *Produce {
	uploadEventService := InitUploadEventService(channel)
	if uploadEventService == nil {
		panic("Failed to initialize Upload Event service")
	}

	return &Produce{
		UploadEventService: uploadEventService,
	}
}
