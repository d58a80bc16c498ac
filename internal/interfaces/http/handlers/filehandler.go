package handlers

import (
	"io"
	"mime"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/labpool/labpool/internal/application/access"
	fileapp "github.com/labpool/labpool/internal/application/file"
	filedto "github.com/labpool/labpool/internal/application/file/dto"
	"github.com/labpool/labpool/internal/application/shaping"
	"github.com/labpool/labpool/internal/interfaces/http/middleware"
	"github.com/labpool/labpool/internal/shared/errors"
	"github.com/labpool/labpool/internal/shared/logger"
	"github.com/labpool/labpool/internal/shared/utils"
)

const uploadFormField = "file"

type FileHandler struct {
	fileService fileService
	shaper      *shaping.Shaper
	logger      logger.Interface
}

func NewFileHandler(fileService fileService, shaper *shaping.Shaper, log logger.Interface) *FileHandler {
	return &FileHandler{fileService: fileService, shaper: shaper, logger: log}
}

// UploadFile handles POST /files/upload
//
//	@Summary		Upload file
//	@Tags			files
//	@Accept			multipart/form-data
//	@Produce		json
//	@Security		Bearer
//	@Param			file		formData	file									true	"File"
//	@Param			module_name	formData	string									false	"Owning module"
//	@Success		201			{object}	utils.APIResponse{data=filedto.FileDTO}	"File uploaded"
//	@Failure		400			{object}	utils.APIResponse						"Bad request"
//	@Router			/files/upload [post]
func (h *FileHandler) UploadFile(c *gin.Context) {
	header, err := c.FormFile(uploadFormField)
	if err != nil {
		utils.ErrorResponseWithError(c, errors.NewValidationError("No file uploaded"))
		return
	}

	src, err := header.Open()
	if err != nil {
		h.logger.Errorw("failed to open multipart file", "name", header.Filename, "error", err)
		utils.ErrorResponseWithError(c, errors.NewBadRequestError("Unable to read uploaded file"))
		return
	}
	defer src.Close()

	uploaded, err := h.fileService.Upload(c.Request.Context(), fileapp.UploadCommand{
		UploaderID:   middleware.GetUserID(c),
		ModuleName:   c.PostForm("module_name"),
		OriginalName: header.Filename,
		ContentType:  header.Header.Get("Content-Type"),
		Content:      src,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, shape(c, h.shaper, access.OpFilesUpload, shaping.KindFile, uploaded), "File uploaded successfully")
}

// CreateFile handles POST /files
//
//	@Summary		Register file metadata
//	@Tags			files
//	@Accept			json
//	@Produce		json
//	@Security		Bearer
//	@Param			file	body		filedto.CreateFileRequest				true	"File metadata"
//	@Success		201		{object}	utils.APIResponse{data=filedto.FileDTO}	"File created"
//	@Router			/files [post]
func (h *FileHandler) CreateFile(c *gin.Context) {
	var req filedto.CreateFileRequest
	if err := bindJSON(c, &req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	created, err := h.fileService.Create(c.Request.Context(), middleware.GetUserID(c), req)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, shape(c, h.shaper, access.OpFilesCreate, shaping.KindFile, created), "File created successfully")
}

// ListFiles handles GET /files
//
//	@Summary		List files
//	@Tags			files
//	@Produce		json
//	@Security		Bearer
//	@Param			page			query		int		false	"Page"
//	@Param			page_size		query		int		false	"Page size"
//	@Param			module_name		query		string	false	"Module filter"
//	@Param			include_deleted	query		bool	false	"Include soft-deleted files"
//	@Success		200				{object}	utils.APIResponse{data=utils.ListResponse}	"Files"
//	@Router			/files [get]
func (h *FileHandler) ListFiles(c *gin.Context) {
	h.list(c, access.OpFilesList, "")
}

// ListMyFiles handles GET /files/my-files
//
//	@Summary		List the caller's uploads
//	@Tags			files
//	@Produce		json
//	@Security		Bearer
//	@Param			page		query		int		false	"Page"
//	@Param			page_size	query		int		false	"Page size"
//	@Param			module_name	query		string	false	"Module filter"
//	@Success		200			{object}	utils.APIResponse{data=utils.ListResponse}	"Files"
//	@Router			/files/my-files [get]
func (h *FileHandler) ListMyFiles(c *gin.Context) {
	h.list(c, access.OpFilesMine, middleware.GetUserID(c))
}

func (h *FileHandler) list(c *gin.Context, op access.Operation, uploaderID string) {
	p := utils.ParsePagination(c)

	files, total, err := h.fileService.List(c.Request.Context(), filedto.ListFilesRequest{
		Page:           p.Page,
		PageSize:       p.PageSize,
		ModuleName:     c.Query("module_name"),
		UploaderID:     uploaderID,
		IncludeDeleted: uploaderID == "" && utils.ParseQueryBool(c, "include_deleted"),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", shapedList(c, h.shaper, op, shaping.KindFile, files, total, p))
}

// GetFile handles GET /files/:id
//
//	@Summary		Get file metadata
//	@Tags			files
//	@Produce		json
//	@Security		Bearer
//	@Param			id	path		string									true	"File ID"
//	@Success		200	{object}	utils.APIResponse{data=filedto.FileDTO}	"File"
//	@Failure		404	{object}	utils.APIResponse						"Not found"
//	@Router			/files/{id} [get]
func (h *FileHandler) GetFile(c *gin.Context) {
	fileID, err := parseIDParam(c, "id", "file")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	f, err := h.fileService.Get(c.Request.Context(), fileID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", shape(c, h.shaper, access.OpFilesGet, shaping.KindFile, f))
}

// DownloadFile handles GET /files/:id/download
//
//	@Summary		Download file
//	@Tags			files
//	@Produce		octet-stream
//	@Security		Bearer
//	@Param			id	path		string				true	"File ID"
//	@Success		200	{file}		binary				"File content"
//	@Failure		404	{object}	utils.APIResponse	"File not found"
//	@Router			/files/{id}/download [get]
func (h *FileHandler) DownloadFile(c *gin.Context) {
	fileID, err := parseIDParam(c, "id", "file")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	dl, err := h.fileService.Download(c.Request.Context(), fileID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	defer dl.Content.Close()

	c.Header("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": dl.File.FileName}))
	c.Header("Content-Type", dl.File.FileType)
	if dl.File.FileSize > 0 {
		c.Header("Content-Length", strconv.FormatInt(dl.File.FileSize, 10))
	}
	c.Status(http.StatusOK)
	if _, err := io.Copy(c.Writer, dl.Content); err != nil {
		h.logger.Warnw("file download interrupted", "file_id", fileID, "error", err)
	}
}

// UpdateFile handles PATCH /files/:id
//
//	@Summary		Update file metadata
//	@Tags			files
//	@Accept			json
//	@Produce		json
//	@Security		Bearer
//	@Param			id		path		string									true	"File ID"
//	@Param			file	body		filedto.UpdateFileRequest				true	"Fields to change"
//	@Success		200		{object}	utils.APIResponse{data=filedto.FileDTO}	"File updated"
//	@Router			/files/{id} [patch]
func (h *FileHandler) UpdateFile(c *gin.Context) {
	fileID, err := parseIDParam(c, "id", "file")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req filedto.UpdateFileRequest
	if err := bindJSON(c, &req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	f, err := h.fileService.Update(c.Request.Context(), fileID, req)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "File updated successfully", shape(c, h.shaper, access.OpFilesUpdate, shaping.KindFile, f))
}

// DeleteFile handles DELETE /files/:id
//
//	@Summary		Soft delete file
//	@Tags			files
//	@Security		Bearer
//	@Param			id	path	string	true	"File ID"
//	@Success		204	"Deleted"
//	@Router			/files/{id} [delete]
func (h *FileHandler) DeleteFile(c *gin.Context) {
	fileID, err := parseIDParam(c, "id", "file")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if err := h.fileService.Delete(c.Request.Context(), fileID); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.NoContentResponse(c)
}

// RestoreFile handles PUT /files/:id/restore
//
//	@Summary		Restore file
//	@Tags			files
//	@Produce		json
//	@Security		Bearer
//	@Param			id	path		string									true	"File ID"
//	@Success		200	{object}	utils.APIResponse{data=filedto.FileDTO}	"File restored"
//	@Router			/files/{id}/restore [put]
func (h *FileHandler) RestoreFile(c *gin.Context) {
	fileID, err := parseIDParam(c, "id", "file")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	f, err := h.fileService.Restore(c.Request.Context(), fileID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "File restored successfully", shape(c, h.shaper, access.OpFilesRestore, shaping.KindFile, f))
}

// HardDeleteFile handles DELETE /files/:id/hard
//
//	@Summary		Permanently delete file
//	@Description	Removes the stored bytes and the metadata row
//	@Tags			files
//	@Security		Bearer
//	@Param			id	path	string	true	"File ID"
//	@Success		204	"Deleted"
//	@Router			/files/{id}/hard [delete]
func (h *FileHandler) HardDeleteFile(c *gin.Context) {
	fileID, err := parseIDParam(c, "id", "file")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if err := h.fileService.HardDelete(c.Request.Context(), fileID); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	h.logger.Infow("file permanently deleted", "file_id", fileID, "user_id", middleware.GetUserID(c))
	utils.NoContentResponse(c)
}
