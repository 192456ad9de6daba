package ingest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tnqbao/gau-file-metadata/entity"
	"github.com/tnqbao/gau-file-metadata/utils"
)

// fakeStore is an in-memory MetadataStore with injectable failures.
type fakeStore struct {
	records map[uuid.UUID]*entity.FileMetadata

	existsErr      error
	existsOverride func() (bool, error)
	createErr      error

	existsCalls int
	createCalls int
}

func newFakeStore() *fakeStore {
	return &fakeStore{records: map[uuid.UUID]*entity.FileMetadata{}}
}

func (s *fakeStore) ExistsByID(_ context.Context, id uuid.UUID) (bool, error) {
	s.existsCalls++
	if s.existsErr != nil {
		return false, s.existsErr
	}
	if s.existsOverride != nil {
		return s.existsOverride()
	}
	_, ok := s.records[id]
	return ok, nil
}

func (s *fakeStore) CreateIfAbsent(_ context.Context, record *entity.FileMetadata) (bool, error) {
	s.createCalls++
	if s.createErr != nil {
		return false, s.createErr
	}
	if _, ok := s.records[record.FileID]; ok {
		return false, nil
	}
	s.records[record.FileID] = record
	return true, nil
}

func TestProcessFirstSeen(t *testing.T) {
	store := newFakeStore()
	p := NewProcessor(store)

	event := UploadEvent{
		Bucket:      "b",
		Name:        "f.txt",
		ContentType: "text/plain",
		Size:        1024,
		Raw:         []byte(`{"bucket":"b","name":"f.txt","contentType":"text/plain","size":1024}`),
	}

	outcome, err := p.Process(context.Background(), event)
	require.NoError(t, err)
	assert.Equal(t, OutcomeProcessed, outcome)

	wantID := uuid.MustParse("4ba2f44d-e6d4-7536-540b-31d19de21af4")
	record, ok := store.records[wantID]
	require.True(t, ok, "record should be stored under the derived id")

	assert.Equal(t, wantID, record.FileID)
	assert.Equal(t, "f.txt", record.FileName)
	assert.Equal(t, "b", record.BucketName)
	assert.Equal(t, "text/plain", record.ContentType)
	assert.Equal(t, int64(1024), record.Size)
	assert.WithinDuration(t, time.Now().UTC(), record.Timestamp, 5*time.Second)
	assert.JSONEq(t, string(event.Raw), string(record.SourceEvent))
}

func TestProcessIdempotent(t *testing.T) {
	store := newFakeStore()
	p := NewProcessor(store)

	event := UploadEvent{Bucket: "b", Name: "f.txt", ContentType: "text/plain", Size: 1024}

	outcome, err := p.Process(context.Background(), event)
	require.NoError(t, err)
	require.Equal(t, OutcomeProcessed, outcome)
	require.Equal(t, 1, store.createCalls)

	// Redelivery of the identical event: skipped, zero additional writes.
	outcome, err = p.Process(context.Background(), event)
	require.NoError(t, err)
	assert.Equal(t, OutcomeSkipped, outcome)
	assert.Equal(t, 1, store.createCalls)
	assert.Len(t, store.records, 1)
}

func TestProcessMalformedEvent(t *testing.T) {
	tests := []struct {
		name  string
		event UploadEvent
	}{
		{name: "missing bucket", event: UploadEvent{Name: "f.txt"}},
		{name: "missing name", event: UploadEvent{Bucket: "b"}},
		{name: "empty event", event: UploadEvent{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newFakeStore()
			p := NewProcessor(store)

			outcome, err := p.Process(context.Background(), tt.event)
			assert.Equal(t, OutcomeFailed, outcome)
			assert.ErrorIs(t, err, ErrMalformedEvent)
			assert.Zero(t, store.existsCalls, "malformed events must not reach the store")
			assert.Zero(t, store.createCalls)
		})
	}
}

func TestProcessExistenceCheckFailure(t *testing.T) {
	store := newFakeStore()
	store.existsErr = errors.New("connection refused")
	p := NewProcessor(store)

	outcome, err := p.Process(context.Background(), UploadEvent{Bucket: "b", Name: "f.txt"})
	assert.Equal(t, OutcomeFailed, outcome)
	require.Error(t, err)
	assert.ErrorContains(t, err, "connection refused")
	// A failed existence check must never fall through to a write.
	assert.Zero(t, store.createCalls)
}

func TestProcessWriteFailure(t *testing.T) {
	store := newFakeStore()
	store.createErr = errors.New("write timeout")
	p := NewProcessor(store)

	outcome, err := p.Process(context.Background(), UploadEvent{Bucket: "b", Name: "f.txt"})
	assert.Equal(t, OutcomeFailed, outcome)
	require.Error(t, err)
	assert.ErrorContains(t, err, "write timeout")
	assert.Empty(t, store.records)
}

func TestProcessLostInsertRace(t *testing.T) {
	store := newFakeStore()
	p := NewProcessor(store)

	// A concurrent delivery wins between the existence check and the
	// insert: exists reports false, but the row is there by the time the
	// conditional insert runs.
	id, err := utils.GenerateFileID("f.txt", "b")
	require.NoError(t, err)

	store.records[id] = &entity.FileMetadata{FileID: id}
	store.existsOverride = func() (bool, error) { return false, nil }

	outcome, err := p.Process(context.Background(), UploadEvent{Bucket: "b", Name: "f.txt"})
	require.NoError(t, err)
	assert.Equal(t, OutcomeSkipped, outcome)
	assert.Equal(t, 1, store.createCalls)
	assert.Len(t, store.records, 1)
}
