package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/labpool/labpool/internal/application/access"
	permdto "github.com/labpool/labpool/internal/application/permission/dto"
	"github.com/labpool/labpool/internal/application/shaping"
	"github.com/labpool/labpool/internal/shared/logger"
	"github.com/labpool/labpool/internal/shared/utils"
)

type PermissionHandler struct {
	permissionService permissionService
	shaper            *shaping.Shaper
	logger            logger.Interface
}

func NewPermissionHandler(permissionService permissionService, shaper *shaping.Shaper, log logger.Interface) *PermissionHandler {
	return &PermissionHandler{permissionService: permissionService, shaper: shaper, logger: log}
}

// CreatePermission handles POST /permissions
//
//	@Summary		Create permission
//	@Tags			permissions
//	@Accept			json
//	@Produce		json
//	@Security		Bearer
//	@Param			permission	body		permdto.CreatePermissionRequest					true	"Permission data"
//	@Success		201			{object}	utils.APIResponse{data=permdto.PermissionDTO}	"Permission created"
//	@Failure		409			{object}	utils.APIResponse								"Name already in use"
//	@Router			/permissions [post]
func (h *PermissionHandler) CreatePermission(c *gin.Context) {
	var req permdto.CreatePermissionRequest
	if err := bindJSON(c, &req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	perm, err := h.permissionService.Create(c.Request.Context(), req)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, shape(c, h.shaper, access.OpPermissionsCreate, shaping.KindPermission, perm), "Permission created successfully")
}

// BulkCreatePermissions handles POST /permissions/bulk
//
//	@Summary		Create several permissions at once
//	@Description	All permissions are created in one transaction; any conflict rolls back the batch
//	@Tags			permissions
//	@Accept			json
//	@Produce		json
//	@Security		Bearer
//	@Param			permissions	body		permdto.BulkCreatePermissionsRequest				true	"Permissions"
//	@Success		201			{object}	utils.APIResponse{data=[]permdto.PermissionDTO}	"Permissions created"
//	@Router			/permissions/bulk [post]
func (h *PermissionHandler) BulkCreatePermissions(c *gin.Context) {
	var req permdto.BulkCreatePermissionsRequest
	if err := bindJSON(c, &req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	perms, err := h.permissionService.BulkCreate(c.Request.Context(), req)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	h.logger.Infow("permissions created in bulk", "count", len(perms))
	utils.CreatedResponse(c, shape(c, h.shaper, access.OpPermissionsBulkCreate, shaping.KindPermission, perms), "Permissions created successfully")
}

// ListPermissions handles GET /permissions
//
//	@Summary		List permissions
//	@Tags			permissions
//	@Produce		json
//	@Security		Bearer
//	@Param			page			query		int		false	"Page"
//	@Param			page_size		query		int		false	"Page size"
//	@Param			search			query		string	false	"Name contains"
//	@Param			resource		query		string	false	"Resource filter"
//	@Param			include_deleted	query		bool	false	"Include soft-deleted permissions"
//	@Success		200				{object}	utils.APIResponse{data=utils.ListResponse}	"Permissions"
//	@Router			/permissions [get]
func (h *PermissionHandler) ListPermissions(c *gin.Context) {
	p := utils.ParsePagination(c)

	perms, total, err := h.permissionService.List(c.Request.Context(), permdto.ListPermissionsRequest{
		Page:           p.Page,
		PageSize:       p.PageSize,
		Search:         c.Query("search"),
		Resource:       c.Query("resource"),
		IncludeDeleted: utils.ParseQueryBool(c, "include_deleted"),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", shapedList(c, h.shaper, access.OpPermissionsList, shaping.KindPermission, perms, total, p))
}

// GetPermission handles GET /permissions/:id
//
//	@Summary		Get permission
//	@Tags			permissions
//	@Produce		json
//	@Security		Bearer
//	@Param			id	path		string											true	"Permission ID"
//	@Success		200	{object}	utils.APIResponse{data=permdto.PermissionDTO}	"Permission"
//	@Failure		404	{object}	utils.APIResponse								"Not found"
//	@Router			/permissions/{id} [get]
func (h *PermissionHandler) GetPermission(c *gin.Context) {
	permID, err := parseIDParam(c, "id", "permission")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	perm, err := h.permissionService.Get(c.Request.Context(), permID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", shape(c, h.shaper, access.OpPermissionsGet, shaping.KindPermission, perm))
}

// UpdatePermission handles PATCH /permissions/:id
//
//	@Summary		Update permission
//	@Description	Resource and action are fixed once created
//	@Tags			permissions
//	@Accept			json
//	@Produce		json
//	@Security		Bearer
//	@Param			id			path		string											true	"Permission ID"
//	@Param			permission	body		permdto.UpdatePermissionRequest					true	"Fields to change"
//	@Success		200			{object}	utils.APIResponse{data=permdto.PermissionDTO}	"Permission updated"
//	@Router			/permissions/{id} [patch]
func (h *PermissionHandler) UpdatePermission(c *gin.Context) {
	permID, err := parseIDParam(c, "id", "permission")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req permdto.UpdatePermissionRequest
	if err := bindJSON(c, &req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	perm, err := h.permissionService.Update(c.Request.Context(), permID, req)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Permission updated successfully", shape(c, h.shaper, access.OpPermissionsUpdate, shaping.KindPermission, perm))
}

// DeletePermission handles DELETE /permissions/:id
//
//	@Summary		Soft delete permission
//	@Tags			permissions
//	@Security		Bearer
//	@Param			id	path	string	true	"Permission ID"
//	@Success		204	"Deleted"
//	@Router			/permissions/{id} [delete]
func (h *PermissionHandler) DeletePermission(c *gin.Context) {
	permID, err := parseIDParam(c, "id", "permission")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if err := h.permissionService.Delete(c.Request.Context(), permID); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.NoContentResponse(c)
}

// RestorePermission handles PUT /permissions/:id/restore
//
//	@Summary		Restore permission
//	@Tags			permissions
//	@Produce		json
//	@Security		Bearer
//	@Param			id	path		string											true	"Permission ID"
//	@Success		200	{object}	utils.APIResponse{data=permdto.PermissionDTO}	"Permission restored"
//	@Router			/permissions/{id}/restore [put]
func (h *PermissionHandler) RestorePermission(c *gin.Context) {
	permID, err := parseIDParam(c, "id", "permission")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	perm, err := h.permissionService.Restore(c.Request.Context(), permID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Permission restored successfully", shape(c, h.shaper, access.OpPermissionsRestore, shaping.KindPermission, perm))
}
