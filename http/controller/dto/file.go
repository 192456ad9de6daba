package dto

// UpdateFileRequestDTO is the partial-update payload for a metadata
// record. Pointer fields distinguish "absent" from zero values.
type UpdateFileRequestDTO struct {
	FileName    *string `json:"file_name"`
	ContentType *string `json:"content_type"`
	Size        *int64  `json:"size" binding:"omitempty,gte=0"`
}

// ToUpdateMap returns the column updates for the fields that were present.
// An empty map means the payload carried nothing to update.
func (r *UpdateFileRequestDTO) ToUpdateMap() map[string]interface{} {
	updates := make(map[string]interface{})
	if r.FileName != nil {
		updates["file_name"] = *r.FileName
	}
	if r.ContentType != nil {
		updates["content_type"] = *r.ContentType
	}
	if r.Size != nil {
		updates["size"] = *r.Size
	}
	return updates
}
