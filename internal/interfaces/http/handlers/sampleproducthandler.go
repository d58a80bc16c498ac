package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/labpool/labpool/internal/application/access"
	spdto "github.com/labpool/labpool/internal/application/sampleproduct/dto"
	"github.com/labpool/labpool/internal/application/shaping"
	"github.com/labpool/labpool/internal/shared/logger"
	"github.com/labpool/labpool/internal/shared/utils"
)

// SampleProductHandler serves the catalog of testable products that pools
// are categorised by.
type SampleProductHandler struct {
	service sampleProductService
	shaper  *shaping.Shaper
	logger  logger.Interface
}

func NewSampleProductHandler(service sampleProductService, shaper *shaping.Shaper, log logger.Interface) *SampleProductHandler {
	return &SampleProductHandler{service: service, shaper: shaper, logger: log}
}

// Create handles POST /sample-products
//
//	@Summary		Create sample product
//	@Tags			sample-products
//	@Accept			json
//	@Produce		json
//	@Security		Bearer
//	@Param			product	body		spdto.CreateSampleProductRequest				true	"Product data"
//	@Success		201		{object}	utils.APIResponse{data=spdto.SampleProductDTO}	"Sample product created"
//	@Failure		409		{object}	utils.APIResponse								"Name or code already in use"
//	@Router			/sample-products [post]
func (h *SampleProductHandler) Create(c *gin.Context) {
	var req spdto.CreateSampleProductRequest
	if err := bindJSON(c, &req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	sp, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, shape(c, h.shaper, access.OpSampleProductsCreate, shaping.KindSampleProduct, sp), "Sample product created successfully")
}

// List handles GET /sample-products
//
//	@Summary		List sample products
//	@Tags			sample-products
//	@Produce		json
//	@Security		Bearer
//	@Param			page				query		int		false	"Page"
//	@Param			page_size			query		int		false	"Page size"
//	@Param			include_inactive	query		bool	false	"Include inactive products"
//	@Param			include_deleted		query		bool	false	"Include soft-deleted products"
//	@Success		200					{object}	utils.APIResponse{data=utils.ListResponse}	"Sample products"
//	@Router			/sample-products [get]
func (h *SampleProductHandler) List(c *gin.Context) {
	p := utils.ParsePagination(c)

	list, total, err := h.service.List(c.Request.Context(), spdto.ListSampleProductsRequest{
		Page:            p.Page,
		PageSize:        p.PageSize,
		IncludeInactive: utils.ParseQueryBool(c, "include_inactive"),
		IncludeDeleted:  utils.ParseQueryBool(c, "include_deleted"),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", shapedList(c, h.shaper, access.OpSampleProductsList, shaping.KindSampleProduct, list, total, p))
}

// Get handles GET /sample-products/:id
//
//	@Summary		Get sample product
//	@Tags			sample-products
//	@Produce		json
//	@Security		Bearer
//	@Param			id	path		string											true	"Sample product ID"
//	@Success		200	{object}	utils.APIResponse{data=spdto.SampleProductDTO}	"Sample product"
//	@Failure		404	{object}	utils.APIResponse								"Not found"
//	@Router			/sample-products/{id} [get]
func (h *SampleProductHandler) Get(c *gin.Context) {
	spID, err := parseIDParam(c, "id", "sample product")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	sp, err := h.service.Get(c.Request.Context(), spID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", shape(c, h.shaper, access.OpSampleProductsGet, shaping.KindSampleProduct, sp))
}

// Update handles PATCH /sample-products/:id
//
//	@Summary		Update sample product
//	@Tags			sample-products
//	@Accept			json
//	@Produce		json
//	@Security		Bearer
//	@Param			id		path		string											true	"Sample product ID"
//	@Param			product	body		spdto.UpdateSampleProductRequest				true	"Fields to change"
//	@Success		200		{object}	utils.APIResponse{data=spdto.SampleProductDTO}	"Sample product updated"
//	@Router			/sample-products/{id} [patch]
func (h *SampleProductHandler) Update(c *gin.Context) {
	spID, err := parseIDParam(c, "id", "sample product")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req spdto.UpdateSampleProductRequest
	if err := bindJSON(c, &req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	sp, err := h.service.Update(c.Request.Context(), spID, req)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Sample product updated successfully", shape(c, h.shaper, access.OpSampleProductsUpdate, shaping.KindSampleProduct, sp))
}

// Delete handles DELETE /sample-products/:id
//
//	@Summary		Soft delete sample product
//	@Tags			sample-products
//	@Security		Bearer
//	@Param			id	path	string	true	"Sample product ID"
//	@Success		204	"Deleted"
//	@Router			/sample-products/{id} [delete]
func (h *SampleProductHandler) Delete(c *gin.Context) {
	spID, err := parseIDParam(c, "id", "sample product")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if err := h.service.Delete(c.Request.Context(), spID); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.NoContentResponse(c)
}

// Restore handles PUT /sample-products/:id/restore
//
//	@Summary		Restore sample product
//	@Tags			sample-products
//	@Produce		json
//	@Security		Bearer
//	@Param			id	path		string											true	"Sample product ID"
//	@Success		200	{object}	utils.APIResponse{data=spdto.SampleProductDTO}	"Sample product restored"
//	@Failure		404	{object}	utils.APIResponse								"Not found or not deleted"
//	@Router			/sample-products/{id}/restore [put]
func (h *SampleProductHandler) Restore(c *gin.Context) {
	spID, err := parseIDParam(c, "id", "sample product")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	sp, err := h.service.Restore(c.Request.Context(), spID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Sample product restored successfully", shape(c, h.shaper, access.OpSampleProductsRestore, shaping.KindSampleProduct, sp))
}
