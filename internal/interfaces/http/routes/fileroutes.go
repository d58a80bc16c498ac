package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/labpool/labpool/internal/application/access"
	"github.com/labpool/labpool/internal/interfaces/http/handlers"
	"github.com/labpool/labpool/internal/interfaces/http/middleware"
)

// FileRouteConfig holds dependencies for file routes.
type FileRouteConfig struct {
	FileHandler          *handlers.FileHandler
	PermissionMiddleware *middleware.PermissionMiddleware
}

// SetupFileRoutes configures file routes.
func SetupFileRoutes(api *gin.RouterGroup, cfg *FileRouteConfig) {
	require := cfg.PermissionMiddleware.Require
	h := cfg.FileHandler
	files := api.Group("/files")
	{
		files.POST("/upload", require(access.OpFilesUpload), h.UploadFile)
		files.POST("", require(access.OpFilesCreate), h.CreateFile)
		files.GET("", require(access.OpFilesList), h.ListFiles)

		// Must come before /:id
		files.GET("/my-files", require(access.OpFilesMine), h.ListMyFiles)

		files.GET("/:id", require(access.OpFilesGet), h.GetFile)
		files.GET("/:id/download", require(access.OpFilesDownload), h.DownloadFile)
		files.PATCH("/:id", require(access.OpFilesUpdate), h.UpdateFile)
		files.DELETE("/:id", require(access.OpFilesDelete), h.DeleteFile)
		files.PUT("/:id/restore", require(access.OpFilesRestore), h.RestoreFile)
		files.DELETE("/:id/hard", require(access.OpFilesHardDelete), h.HardDeleteFile)
	}
}
