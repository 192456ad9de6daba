package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// FileMetadata is the persisted record for a single uploaded object.
// The primary key is derived from (file_name, bucket_name), so a given
// object maps to exactly one row no matter how often its upload
// notification is delivered.
type FileMetadata struct {
	FileID      uuid.UUID      `json:"file_id" gorm:"type:uuid;primaryKey;column:file_id"`
	FileName    string         `json:"file_name" gorm:"type:varchar(1024);not null;index"`
	BucketName  string         `json:"bucket_name" gorm:"type:varchar(255);not null;index"`
	ContentType string         `json:"content_type" gorm:"type:varchar(255)"`
	Size        int64          `json:"size" gorm:"not null;default:0"`
	Timestamp   time.Time      `json:"timestamp" gorm:"not null"`
	SourceEvent datatypes.JSON `json:"source_event,omitempty" gorm:"type:jsonb"`
}

func (FileMetadata) TableName() string {
	return "file_metadata"
}
