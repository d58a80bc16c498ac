package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/labpool/labpool/internal/application/access"
	roledto "github.com/labpool/labpool/internal/application/role/dto"
	"github.com/labpool/labpool/internal/application/shaping"
	"github.com/labpool/labpool/internal/shared/logger"
	"github.com/labpool/labpool/internal/shared/utils"
)

type RoleHandler struct {
	roleService roleService
	shaper      *shaping.Shaper
	logger      logger.Interface
}

func NewRoleHandler(roleService roleService, shaper *shaping.Shaper, log logger.Interface) *RoleHandler {
	return &RoleHandler{roleService: roleService, shaper: shaper, logger: log}
}

// CreateRole handles POST /roles
//
//	@Summary		Create role
//	@Tags			roles
//	@Accept			json
//	@Produce		json
//	@Security		Bearer
//	@Param			role	body		roledto.CreateRoleRequest				true	"Role data"
//	@Success		201		{object}	utils.APIResponse{data=roledto.RoleDTO}	"Role created"
//	@Failure		409		{object}	utils.APIResponse						"Name already in use"
//	@Router			/roles [post]
func (h *RoleHandler) CreateRole(c *gin.Context) {
	var req roledto.CreateRoleRequest
	if err := bindJSON(c, &req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	role, err := h.roleService.Create(c.Request.Context(), req)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, shape(c, h.shaper, access.OpRolesCreate, shaping.KindRole, role), "Role created successfully")
}

// ListRoles handles GET /roles
//
//	@Summary		List roles
//	@Tags			roles
//	@Produce		json
//	@Security		Bearer
//	@Param			page			query		int		false	"Page"
//	@Param			page_size		query		int		false	"Page size"
//	@Param			search			query		string	false	"Name contains"
//	@Param			include_deleted	query		bool	false	"Include soft-deleted roles"
//	@Success		200				{object}	utils.APIResponse{data=utils.ListResponse}	"Roles"
//	@Router			/roles [get]
func (h *RoleHandler) ListRoles(c *gin.Context) {
	p := utils.ParsePagination(c)

	roles, total, err := h.roleService.List(c.Request.Context(), roledto.ListRolesRequest{
		Page:           p.Page,
		PageSize:       p.PageSize,
		Search:         c.Query("search"),
		IncludeDeleted: utils.ParseQueryBool(c, "include_deleted"),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", shapedList(c, h.shaper, access.OpRolesList, shaping.KindRole, roles, total, p))
}

// GetRole handles GET /roles/:id
//
//	@Summary		Get role
//	@Tags			roles
//	@Produce		json
//	@Security		Bearer
//	@Param			id	path		string									true	"Role ID"
//	@Success		200	{object}	utils.APIResponse{data=roledto.RoleDTO}	"Role"
//	@Failure		404	{object}	utils.APIResponse						"Not found"
//	@Router			/roles/{id} [get]
func (h *RoleHandler) GetRole(c *gin.Context) {
	roleID, err := parseIDParam(c, "id", "role")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	role, err := h.roleService.Get(c.Request.Context(), roleID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", shape(c, h.shaper, access.OpRolesGet, shaping.KindRole, role))
}

// UpdateRole handles PATCH /roles/:id
//
//	@Summary		Update role
//	@Tags			roles
//	@Accept			json
//	@Produce		json
//	@Security		Bearer
//	@Param			id		path		string									true	"Role ID"
//	@Param			role	body		roledto.UpdateRoleRequest				true	"Fields to change"
//	@Success		200		{object}	utils.APIResponse{data=roledto.RoleDTO}	"Role updated"
//	@Failure		404		{object}	utils.APIResponse						"Not found"
//	@Failure		409		{object}	utils.APIResponse						"Name already in use"
//	@Router			/roles/{id} [patch]
func (h *RoleHandler) UpdateRole(c *gin.Context) {
	roleID, err := parseIDParam(c, "id", "role")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req roledto.UpdateRoleRequest
	if err := bindJSON(c, &req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	role, err := h.roleService.Update(c.Request.Context(), roleID, req)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Role updated successfully", shape(c, h.shaper, access.OpRolesUpdate, shaping.KindRole, role))
}

// DeleteRole handles DELETE /roles/:id
//
//	@Summary		Soft delete role
//	@Tags			roles
//	@Security		Bearer
//	@Param			id	path	string	true	"Role ID"
//	@Success		204	"Deleted"
//	@Failure		409	{object}	utils.APIResponse	"Cannot delete superadmin role"
//	@Router			/roles/{id} [delete]
func (h *RoleHandler) DeleteRole(c *gin.Context) {
	roleID, err := parseIDParam(c, "id", "role")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if err := h.roleService.Delete(c.Request.Context(), roleID); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	h.logger.Infow("role deleted", "role_id", roleID)
	utils.NoContentResponse(c)
}

// RestoreRole handles PUT /roles/:id/restore
//
//	@Summary		Restore role
//	@Tags			roles
//	@Produce		json
//	@Security		Bearer
//	@Param			id	path		string									true	"Role ID"
//	@Success		200	{object}	utils.APIResponse{data=roledto.RoleDTO}	"Role restored"
//	@Failure		404	{object}	utils.APIResponse						"Not found or not deleted"
//	@Router			/roles/{id}/restore [put]
func (h *RoleHandler) RestoreRole(c *gin.Context) {
	roleID, err := parseIDParam(c, "id", "role")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	role, err := h.roleService.Restore(c.Request.Context(), roleID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Role restored successfully", shape(c, h.shaper, access.OpRolesRestore, shaping.KindRole, role))
}

// AssignPermissions handles POST /roles/:id/permissions
//
//	@Summary		Replace a role's permissions
//	@Tags			roles
//	@Accept			json
//	@Produce		json
//	@Security		Bearer
//	@Param			id			path		string									true	"Role ID"
//	@Param			permissions	body		roledto.PermissionIDsRequest			true	"Permission IDs"
//	@Success		200			{object}	utils.APIResponse{data=roledto.RoleDTO}	"Permissions assigned"
//	@Failure		404			{object}	utils.APIResponse						"Role or permission not found"
//	@Router			/roles/{id}/permissions [post]
func (h *RoleHandler) AssignPermissions(c *gin.Context) {
	h.changePermissions(c, access.OpRolesAssignPermissions, h.roleService.AssignPermissions, "Permissions assigned successfully")
}

// RemovePermissions handles DELETE /roles/:id/permissions
//
//	@Summary		Remove permissions from a role
//	@Tags			roles
//	@Accept			json
//	@Produce		json
//	@Security		Bearer
//	@Param			id			path		string									true	"Role ID"
//	@Param			permissions	body		roledto.PermissionIDsRequest			true	"Permission IDs"
//	@Success		200			{object}	utils.APIResponse{data=roledto.RoleDTO}	"Permissions removed"
//	@Router			/roles/{id}/permissions [delete]
func (h *RoleHandler) RemovePermissions(c *gin.Context) {
	h.changePermissions(c, access.OpRolesRemovePermissions, h.roleService.RemovePermissions, "Permissions removed successfully")
}

type permissionChange func(ctx context.Context, id string, req roledto.PermissionIDsRequest) (*roledto.RoleDTO, error)

func (h *RoleHandler) changePermissions(c *gin.Context, op access.Operation, apply permissionChange, message string) {
	roleID, err := parseIDParam(c, "id", "role")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req roledto.PermissionIDsRequest
	if err := bindJSON(c, &req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	role, err := apply(c.Request.Context(), roleID, req)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, message, shape(c, h.shaper, op, shaping.KindRole, role))
}
