package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/tnqbao/gau-file-metadata/http/controller"
	middlewares "github.com/tnqbao/gau-file-metadata/http/middleware"
)

func SetupRouter(ctrl *controller.Controller) *gin.Engine {
	r := gin.Default()
	middles, err := middlewares.NewMiddlewares(ctrl)
	if err != nil {
		panic(err)
	}

	r.Use(middles.CORSMiddleware)

	r.GET("/health", ctrl.HealthCheck)

	fileRoutes := r.Group("/files")
	{
		fileRoutes.GET("", ctrl.ListFiles)
		fileRoutes.GET("/:id", ctrl.GetFileByID)
		fileRoutes.PUT("/:id", ctrl.UpdateFileByID)
		fileRoutes.DELETE("/:id", ctrl.DeleteFileByID)
	}

	return r
}
