package ingest

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/tnqbao/gau-file-metadata/entity"
	"github.com/tnqbao/gau-file-metadata/utils"
)

// ErrMalformedEvent marks an upload event missing its required fields.
// Malformed events are not retryable; redelivering them cannot succeed.
var ErrMalformedEvent = errors.New("malformed upload event: bucket and name are required")

// UploadEvent is a decoded upload notification. Bucket and Name are
// required; ContentType and Size already carry their defaults ("" / 0) by
// the time the event reaches the processor. Raw optionally holds the
// original notification payload for the audit column.
type UploadEvent struct {
	Bucket      string
	Name        string
	ContentType string
	Size        int64
	Raw         []byte
}

type Outcome string

const (
	OutcomeProcessed Outcome = "PROCESSED"
	OutcomeSkipped   Outcome = "SKIPPED"
	OutcomeFailed    Outcome = "FAILED"
)

// MetadataStore is the slice of the persistence contract the processor
// needs. The store is the only idempotence memory: the processor keeps no
// state across invocations.
type MetadataStore interface {
	ExistsByID(ctx context.Context, id uuid.UUID) (bool, error)
	CreateIfAbsent(ctx context.Context, record *entity.FileMetadata) (bool, error)
}

// Processor records each upload notification exactly once. Delivery is
// at-least-once, so the same event may arrive any number of times; the
// deterministic file id derived from (name, bucket) deduplicates them.
type Processor struct {
	store MetadataStore
}

func NewProcessor(store MetadataStore) *Processor {
	return &Processor{store: store}
}

// Process validates the event, derives its file id, and persists a
// metadata record on first sight.
//
// Outcomes:
//   - OutcomeProcessed: one new record was written.
//   - OutcomeSkipped: a record for this (name, bucket) already exists;
//     nothing was written.
//   - OutcomeFailed: validation or a store call failed; the returned error
//     says why. A failed existence check is never treated as "does not
//     exist" — it fails the invocation so the delivery framework retries.
func (p *Processor) Process(ctx context.Context, event UploadEvent) (Outcome, error) {
	if event.Bucket == "" || event.Name == "" {
		return OutcomeFailed, ErrMalformedEvent
	}

	fileID, err := utils.GenerateFileID(event.Name, event.Bucket)
	if err != nil {
		return OutcomeFailed, err
	}

	exists, err := p.store.ExistsByID(ctx, fileID)
	if err != nil {
		return OutcomeFailed, fmt.Errorf("existence check for file %s failed: %w", fileID, err)
	}
	if exists {
		return OutcomeSkipped, nil
	}

	record := &entity.FileMetadata{
		FileID:      fileID,
		FileName:    event.Name,
		BucketName:  event.Bucket,
		ContentType: event.ContentType,
		Size:        event.Size,
		Timestamp:   time.Now().UTC(),
	}
	if len(event.Raw) > 0 {
		record.SourceEvent = datatypes.JSON(event.Raw)
	}

	created, err := p.store.CreateIfAbsent(ctx, record)
	if err != nil {
		return OutcomeFailed, fmt.Errorf("persisting file %s failed: %w", fileID, err)
	}
	if !created {
		// Lost the race against a concurrent delivery of the same event.
		// The winning write carried identical content, so this is a skip,
		// not an error.
		return OutcomeSkipped, nil
	}

	return OutcomeProcessed, nil
}
