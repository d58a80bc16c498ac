package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/labpool/labpool/internal/application/access"
	pooldto "github.com/labpool/labpool/internal/application/pool/dto"
	"github.com/labpool/labpool/internal/application/shaping"
	"github.com/labpool/labpool/internal/interfaces/http/middleware"
	"github.com/labpool/labpool/internal/shared/logger"
	"github.com/labpool/labpool/internal/shared/utils"
)

type PoolHandler struct {
	poolService poolService
	shaper      *shaping.Shaper
	logger      logger.Interface
}

func NewPoolHandler(poolService poolService, shaper *shaping.Shaper, log logger.Interface) *PoolHandler {
	return &PoolHandler{poolService: poolService, shaper: shaper, logger: log}
}

// CreatePool handles POST /pools
//
//	@Summary		Create pool
//	@Description	The caller becomes the owner. New pools await approval before they are listed
//	@Tags			pools
//	@Accept			json
//	@Produce		json
//	@Security		Bearer
//	@Param			pool	body		pooldto.CreatePoolRequest				true	"Pool data"
//	@Success		201		{object}	utils.APIResponse{data=pooldto.PoolDTO}	"Pool created"
//	@Failure		404		{object}	utils.APIResponse						"Category or image not found"
//	@Failure		409		{object}	utils.APIResponse						"Batch number already used for this category"
//	@Router			/pools [post]
func (h *PoolHandler) CreatePool(c *gin.Context) {
	var req pooldto.CreatePoolRequest
	if err := bindJSON(c, &req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	p, err := h.poolService.Create(c.Request.Context(), middleware.GetUserID(c), req)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, shape(c, h.shaper, access.OpPoolsCreate, shaping.KindPool, p), "Pool created successfully")
}

// ListPools handles GET /pools
//
//	@Summary		List pools
//	@Tags			pools
//	@Produce		json
//	@Security		Bearer
//	@Param			page				query		int		false	"Page"
//	@Param			page_size			query		int		false	"Page size"
//	@Param			include_inactive	query		bool	false	"Include inactive pools"
//	@Param			include_deleted		query		bool	false	"Include soft-deleted pools"
//	@Param			include_unapproved	query		bool	false	"Include pools awaiting approval"
//	@Success		200					{object}	utils.APIResponse{data=utils.ListResponse}	"Pools"
//	@Router			/pools [get]
func (h *PoolHandler) ListPools(c *gin.Context) {
	p := utils.ParsePagination(c)

	pools, total, err := h.poolService.List(c.Request.Context(), pooldto.ListPoolsRequest{
		Page:              p.Page,
		PageSize:          p.PageSize,
		IncludeInactive:   utils.ParseQueryBool(c, "include_inactive"),
		IncludeDeleted:    utils.ParseQueryBool(c, "include_deleted"),
		IncludeUnapproved: utils.ParseQueryBool(c, "include_unapproved"),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", shapedList(c, h.shaper, access.OpPoolsList, shaping.KindPool, pools, total, p))
}

// ListMyPools handles GET /pools/my-pools
//
//	@Summary		List the caller's pools
//	@Tags			pools
//	@Produce		json
//	@Security		Bearer
//	@Param			page		query		int	false	"Page"
//	@Param			page_size	query		int	false	"Page size"
//	@Success		200			{object}	utils.APIResponse{data=utils.ListResponse}	"Pools"
//	@Router			/pools/my-pools [get]
func (h *PoolHandler) ListMyPools(c *gin.Context) {
	p := utils.ParsePagination(c)

	pools, total, err := h.poolService.ListMine(c.Request.Context(), middleware.GetUserID(c), p.Page, p.PageSize)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", shapedList(c, h.shaper, access.OpPoolsMine, shaping.KindPool, pools, total, p))
}

// GetPool handles GET /pools/:id
//
//	@Summary		Get pool
//	@Tags			pools
//	@Produce		json
//	@Security		Bearer
//	@Param			id	path		string									true	"Pool ID"
//	@Success		200	{object}	utils.APIResponse{data=pooldto.PoolDTO}	"Pool"
//	@Failure		404	{object}	utils.APIResponse						"Not found"
//	@Router			/pools/{id} [get]
func (h *PoolHandler) GetPool(c *gin.Context) {
	poolID, err := parseIDParam(c, "id", "pool")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	p, err := h.poolService.Get(c.Request.Context(), poolID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", shape(c, h.shaper, access.OpPoolsGet, shaping.KindPool, p))
}

// UpdatePool handles PUT and PATCH /pools/:id
//
//	@Summary		Update pool
//	@Description	Only the owner may update a pool
//	@Tags			pools
//	@Accept			json
//	@Produce		json
//	@Security		Bearer
//	@Param			id		path		string									true	"Pool ID"
//	@Param			pool	body		pooldto.UpdatePoolRequest				true	"Fields to change"
//	@Success		200		{object}	utils.APIResponse{data=pooldto.PoolDTO}	"Pool updated"
//	@Failure		403		{object}	utils.APIResponse						"Not the owner"
//	@Router			/pools/{id} [patch]
func (h *PoolHandler) UpdatePool(c *gin.Context) {
	poolID, err := parseIDParam(c, "id", "pool")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req pooldto.UpdatePoolRequest
	if err := bindJSON(c, &req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	p, err := h.poolService.Update(c.Request.Context(), middleware.GetUserID(c), poolID, req)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Pool updated successfully", shape(c, h.shaper, access.OpPoolsUpdate, shaping.KindPool, p))
}

// DeletePool handles DELETE /pools/:id
//
//	@Summary		Soft delete pool
//	@Description	Only the owner may delete a pool
//	@Tags			pools
//	@Security		Bearer
//	@Param			id	path	string	true	"Pool ID"
//	@Success		204	"Deleted"
//	@Failure		403	{object}	utils.APIResponse	"Not the owner"
//	@Router			/pools/{id} [delete]
func (h *PoolHandler) DeletePool(c *gin.Context) {
	poolID, err := parseIDParam(c, "id", "pool")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if err := h.poolService.Delete(c.Request.Context(), middleware.GetUserID(c), poolID); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.NoContentResponse(c)
}

// HardDeletePool handles DELETE /pools/:id/hard
//
//	@Summary		Permanently delete pool
//	@Tags			pools
//	@Security		Bearer
//	@Param			id	path	string	true	"Pool ID"
//	@Success		204	"Deleted"
//	@Router			/pools/{id}/hard [delete]
func (h *PoolHandler) HardDeletePool(c *gin.Context) {
	poolID, err := parseIDParam(c, "id", "pool")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if err := h.poolService.HardDelete(c.Request.Context(), poolID); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	h.logger.Infow("pool permanently deleted", "pool_id", poolID, "user_id", middleware.GetUserID(c))
	utils.NoContentResponse(c)
}

// RestorePool handles PUT /pools/:id/restore
//
//	@Summary		Restore pool
//	@Tags			pools
//	@Produce		json
//	@Security		Bearer
//	@Param			id	path		string									true	"Pool ID"
//	@Success		200	{object}	utils.APIResponse{data=pooldto.PoolDTO}	"Pool restored"
//	@Router			/pools/{id}/restore [put]
func (h *PoolHandler) RestorePool(c *gin.Context) {
	h.moderate(c, access.OpPoolsRestore, h.poolService.Restore, "Pool restored successfully")
}

// ApprovePool handles PUT /pools/:id/approve
//
//	@Summary		Approve pool
//	@Tags			pools
//	@Produce		json
//	@Security		Bearer
//	@Param			id	path		string									true	"Pool ID"
//	@Success		200	{object}	utils.APIResponse{data=pooldto.PoolDTO}	"Pool approved"
//	@Router			/pools/{id}/approve [put]
func (h *PoolHandler) ApprovePool(c *gin.Context) {
	h.moderate(c, access.OpPoolsApprove, h.poolService.Approve, "Pool approved successfully")
}

// RejectPool handles PUT /pools/:id/reject
//
//	@Summary		Reject pool
//	@Tags			pools
//	@Produce		json
//	@Security		Bearer
//	@Param			id	path		string									true	"Pool ID"
//	@Success		200	{object}	utils.APIResponse{data=pooldto.PoolDTO}	"Pool rejected"
//	@Router			/pools/{id}/reject [put]
func (h *PoolHandler) RejectPool(c *gin.Context) {
	h.moderate(c, access.OpPoolsReject, h.poolService.Reject, "Pool rejected successfully")
}

func (h *PoolHandler) moderate(c *gin.Context, op access.Operation, action func(ctx context.Context, id string) (*pooldto.PoolDTO, error), message string) {
	poolID, err := parseIDParam(c, "id", "pool")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	p, err := action(c.Request.Context(), poolID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	h.logger.Infow("pool moderated", "pool_id", poolID, "user_id", middleware.GetUserID(c), "message", message)
	utils.SuccessResponse(c, http.StatusOK, message, shape(c, h.shaper, op, shaping.KindPool, p))
}
