package controller

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/tnqbao/gau-file-metadata/entity"
	"github.com/tnqbao/gau-file-metadata/http/controller/dto"
	"github.com/tnqbao/gau-file-metadata/repository"
	"github.com/tnqbao/gau-file-metadata/utils"
)

const fileCacheTTL = 5 * time.Minute

func fileCacheKey(id uuid.UUID) string {
	return "file_metadata:" + id.String()
}

// fileStore returns the metadata store, answering 503 when the database
// client failed to initialize and the store is absent.
func (ctrl *Controller) fileStore(c *gin.Context) (repository.FileMetadataStore, bool) {
	store := ctrl.Repository.FileMetadataRepo
	if store == nil {
		utils.JSON503(c, "Database connection unavailable")
		return nil, false
	}
	return store, true
}

func (ctrl *Controller) ListFiles(c *gin.Context) {
	ctx := c.Request.Context()

	store, ok := ctrl.fileStore(c)
	if !ok {
		return
	}

	records, err := store.FindAll(ctx)
	if err != nil {
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[File] Failed to list file metadata: %v", err)
		utils.JSON500(c, "Failed to list files")
		return
	}

	utils.JSON200(c, gin.H{"files": records})
}

func (ctrl *Controller) GetFileByID(c *gin.Context) {
	ctx := c.Request.Context()

	fileID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		ctrl.Infra.Logger.WarningWithContextf(ctx, "[File] Invalid file_id format: %v", err)
		utils.JSON400(c, "Invalid file_id format")
		return
	}

	store, ok := ctrl.fileStore(c)
	if !ok {
		return
	}

	if ctrl.Infra.Redis != nil {
		var cached entity.FileMetadata
		if err := ctrl.Infra.Redis.Get(ctx, fileCacheKey(fileID), &cached); err == nil {
			utils.JSON200(c, cached)
			return
		}
	}

	record, err := store.FindByID(ctx, fileID)
	if err != nil {
		if errors.Is(err, repository.ErrRecordNotFound) {
			utils.JSON404(c, "File not found")
			return
		}
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[File] Failed to fetch file %s: %v", fileID, err)
		utils.JSON500(c, "Failed to fetch file")
		return
	}

	if ctrl.Infra.Redis != nil {
		if err := ctrl.Infra.Redis.Set(ctx, fileCacheKey(fileID), record, fileCacheTTL); err != nil {
			ctrl.Infra.Logger.WarningWithContextf(ctx, "[File] Failed to cache file %s: %v", fileID, err)
		}
	}

	utils.JSON200(c, record)
}

func (ctrl *Controller) UpdateFileByID(c *gin.Context) {
	ctx := c.Request.Context()

	fileID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		ctrl.Infra.Logger.WarningWithContextf(ctx, "[File] Invalid file_id format: %v", err)
		utils.JSON400(c, "Invalid file_id format")
		return
	}

	store, ok := ctrl.fileStore(c)
	if !ok {
		return
	}

	var req dto.UpdateFileRequestDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		ctrl.Infra.Logger.WarningWithContextf(ctx, "[File] Failed to bind update payload: %v", err)
		utils.JSON400(c, "Invalid request payload")
		return
	}

	// Existence is resolved before the payload is judged: updating a
	// record that is not there is 404 even when the payload is empty.
	exists, err := store.ExistsByID(ctx, fileID)
	if err != nil {
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[File] Failed to check file %s: %v", fileID, err)
		utils.JSON500(c, "Failed to update file")
		return
	}
	if !exists {
		utils.JSON404(c, "File not found")
		return
	}

	updates := req.ToUpdateMap()
	if len(updates) == 0 {
		utils.JSON400(c, "No update data provided")
		return
	}

	record, err := store.UpdateFields(ctx, fileID, updates)
	if err != nil {
		if errors.Is(err, repository.ErrRecordNotFound) {
			utils.JSON404(c, "File not found")
			return
		}
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[File] Failed to update file %s: %v", fileID, err)
		utils.JSON500(c, "Failed to update file")
		return
	}

	ctrl.invalidateFileCache(c, fileID)

	ctrl.Infra.Logger.InfoWithContextf(ctx, "[File] Updated metadata for file %s", fileID)
	utils.JSON200(c, record)
}

func (ctrl *Controller) DeleteFileByID(c *gin.Context) {
	ctx := c.Request.Context()

	fileID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		ctrl.Infra.Logger.WarningWithContextf(ctx, "[File] Invalid file_id format: %v", err)
		utils.JSON400(c, "Invalid file_id format")
		return
	}

	store, ok := ctrl.fileStore(c)
	if !ok {
		return
	}

	if err := store.DeleteByID(ctx, fileID); err != nil {
		if errors.Is(err, repository.ErrRecordNotFound) {
			utils.JSON404(c, "File not found")
			return
		}
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[File] Failed to delete file %s: %v", fileID, err)
		utils.JSON500(c, "Failed to delete file")
		return
	}

	ctrl.invalidateFileCache(c, fileID)

	ctrl.Infra.Logger.InfoWithContextf(ctx, "[File] Deleted metadata for file %s", fileID)
	utils.JSON200(c, gin.H{"message": "File " + fileID.String() + " deleted successfully"})
}

func (ctrl *Controller) invalidateFileCache(c *gin.Context, fileID uuid.UUID) {
	if ctrl.Infra.Redis == nil {
		return
	}
	ctx := c.Request.Context()
	if err := ctrl.Infra.Redis.Delete(ctx, fileCacheKey(fileID)); err != nil {
		ctrl.Infra.Logger.WarningWithContextf(ctx, "[File] Failed to invalidate cache for file %s: %v", fileID, err)
	}
}
