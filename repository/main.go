package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/tnqbao/gau-file-metadata/entity"
	"github.com/tnqbao/gau-file-metadata/infra"
)

// FileMetadataStore is the persistence contract for file metadata records.
// The store is the single source of truth for whether an upload has been
// processed; callers keep no idempotence state of their own.
type FileMetadataStore interface {
	ExistsByID(ctx context.Context, id uuid.UUID) (bool, error)
	CreateIfAbsent(ctx context.Context, record *entity.FileMetadata) (bool, error)
	FindByID(ctx context.Context, id uuid.UUID) (*entity.FileMetadata, error)
	FindAll(ctx context.Context) ([]entity.FileMetadata, error)
	UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]interface{}) (*entity.FileMetadata, error)
	DeleteByID(ctx context.Context, id uuid.UUID) error
}

type Repository struct {
	FileMetadataRepo FileMetadataStore
}

func InitRepository(infra *infra.Infra) *Repository {
	// With a degraded Infra the store stays nil and the handlers answer
	// 503 until the database comes back.
	if infra.Postgres == nil {
		return &Repository{}
	}
	return &Repository{
		FileMetadataRepo: NewFileMetadataRepository(infra.Postgres.DB),
	}
}
