package controller

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tnqbao/gau-file-metadata/utils"
)

// HealthCheck reports reachability of the backing services. It never
// fails: a client that was not initialized or does not answer is reported
// as "not connected" and the endpoint still returns 200.
func (ctrl *Controller) HealthCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	database := "not connected"
	if ctrl.Infra != nil && ctrl.Infra.Postgres != nil {
		if err := ctrl.Infra.Postgres.Ping(ctx); err == nil {
			database = "connected"
		}
	}

	cache := "not connected"
	if ctrl.Infra != nil && ctrl.Infra.Redis != nil {
		if err := ctrl.Infra.Redis.Ping(ctx); err == nil {
			cache = "connected"
		}
	}

	storage := "not connected"
	if ctrl.Infra != nil && ctrl.Infra.Minio != nil {
		if err := ctrl.Infra.Minio.StorageReachable(ctx); err == nil {
			storage = "connected"
		}
	}

	status := "healthy"
	if database != "connected" {
		status = "unhealthy"
	}

	utils.JSON200(c, gin.H{
		"status":   status,
		"database": database,
		"cache":    cache,
		"storage":  storage,
	})
}
