package worker

import (
	"context"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tnqbao/gau-file-metadata/config"
	infraPkg "github.com/tnqbao/gau-file-metadata/infra"
	"github.com/tnqbao/gau-file-metadata/ingest"
	"github.com/tnqbao/gau-file-metadata/repository"
)

func TestDecodeUploadEvent(t *testing.T) {
	tests := []struct {
		name string
		body string
		want ingest.UploadEvent
	}{
		{
			name: "full event",
			body: `{"bucket":"b","name":"f.txt","contentType":"text/plain","size":1024}`,
			want: ingest.UploadEvent{Bucket: "b", Name: "f.txt", ContentType: "text/plain", Size: 1024},
		},
		{
			name: "optional fields absent default",
			body: `{"bucket":"b","name":"f.txt"}`,
			want: ingest.UploadEvent{Bucket: "b", Name: "f.txt", ContentType: "", Size: 0},
		},
		{
			name: "negative size clamped to zero",
			body: `{"bucket":"b","name":"f.txt","size":-7}`,
			want: ingest.UploadEvent{Bucket: "b", Name: "f.txt", Size: 0},
		},
		{
			name: "required fields missing still decodes",
			body: `{"contentType":"text/plain"}`,
			want: ingest.UploadEvent{ContentType: "text/plain"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			event, err := DecodeUploadEvent([]byte(tt.body))
			require.NoError(t, err)

			assert.Equal(t, tt.want.Bucket, event.Bucket)
			assert.Equal(t, tt.want.Name, event.Name)
			assert.Equal(t, tt.want.ContentType, event.ContentType)
			assert.Equal(t, tt.want.Size, event.Size)
			assert.Equal(t, []byte(tt.body), event.Raw)
		})
	}
}

func TestDecodeUploadEventInvalidJSON(t *testing.T) {
	_, err := DecodeUploadEvent([]byte(`not json`))
	require.Error(t, err)
	assert.ErrorContains(t, err, "invalid upload event payload")
}

func newTestConsumer(t *testing.T) *UploadEventConsumer {
	t.Helper()
	cfg := config.NewConfig()
	cfg.EnvConfig.Grafana.OTLPEndpoint = ""
	inf := &infraPkg.Infra{Logger: infraPkg.InitLoggerClient(cfg.EnvConfig)}
	return NewUploadEventConsumer(nil, inf, &repository.Repository{})
}

func TestConsumerSignalsDoneOnClosedDeliveryChannel(t *testing.T) {
	c := newTestConsumer(t)

	msgs := make(chan amqp.Delivery)
	go c.run(context.Background(), msgs)
	close(msgs)

	select {
	case <-c.Done():
	case <-time.After(time.Second):
		t.Fatal("consumer did not signal Done after the delivery channel closed")
	}
}

func TestConsumerSignalsDoneOnContextCancel(t *testing.T) {
	c := newTestConsumer(t)

	ctx, cancel := context.WithCancel(context.Background())
	go c.run(ctx, make(chan amqp.Delivery))
	cancel()

	select {
	case <-c.Done():
	case <-time.After(time.Second):
		t.Fatal("consumer did not signal Done after context cancellation")
	}
}
