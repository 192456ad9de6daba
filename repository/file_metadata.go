package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tnqbao/gau-file-metadata/entity"
)

// ErrRecordNotFound is returned when the addressed file id has no record.
var ErrRecordNotFound = errors.New("file metadata record not found")

type FileMetadataRepository struct {
	db *gorm.DB
}

func NewFileMetadataRepository(db *gorm.DB) *FileMetadataRepository {
	return &FileMetadataRepository{db: db}
}

func (r *FileMetadataRepository) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.FileMetadata{}).
		Where("file_id = ?", id).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check file metadata existence: %w", err)
	}
	return count > 0, nil
}

// CreateIfAbsent inserts the record unless a row with the same file_id
// already exists. It reports whether the insert happened, so two racing
// ingestions of the same object resolve without a duplicate row.
func (r *FileMetadataRepository) CreateIfAbsent(ctx context.Context, record *entity.FileMetadata) (bool, error) {
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "file_id"}},
			DoNothing: true,
		}).
		Create(record)
	if result.Error != nil {
		return false, fmt.Errorf("failed to create file metadata record: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (r *FileMetadataRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.FileMetadata, error) {
	var record entity.FileMetadata
	err := r.db.WithContext(ctx).Where("file_id = ?", id).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, fmt.Errorf("failed to find file metadata record: %w", err)
	}
	return &record, nil
}

func (r *FileMetadataRepository) FindAll(ctx context.Context) ([]entity.FileMetadata, error) {
	var records []entity.FileMetadata
	err := r.db.WithContext(ctx).Order("timestamp DESC").Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list file metadata records: %w", err)
	}
	return records, nil
}

// UpdateFields applies a partial update and returns the refreshed record.
func (r *FileMetadataRepository) UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]interface{}) (*entity.FileMetadata, error) {
	result := r.db.WithContext(ctx).
		Model(&entity.FileMetadata{}).
		Where("file_id = ?", id).
		Updates(fields)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to update file metadata record: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, ErrRecordNotFound
	}
	return r.FindByID(ctx, id)
}

func (r *FileMetadataRepository) DeleteByID(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&entity.FileMetadata{}, "file_id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete file metadata record: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}
