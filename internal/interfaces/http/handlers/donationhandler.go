package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/labpool/labpool/internal/application/access"
	donationdto "github.com/labpool/labpool/internal/application/donation/dto"
	donationusecases "github.com/labpool/labpool/internal/application/donation/usecases"
	"github.com/labpool/labpool/internal/application/shaping"
	"github.com/labpool/labpool/internal/domain/donation"
	"github.com/labpool/labpool/internal/interfaces/http/middleware"
	"github.com/labpool/labpool/internal/shared/logger"
	"github.com/labpool/labpool/internal/shared/money"
	"github.com/labpool/labpool/internal/shared/utils"
)

// poolStatsResponse keeps the aggregate figures as they are and shapes only
// the donation list it carries.
type poolStatsResponse struct {
	*donationdto.PoolStatsDTO
	Donations any `json:"donations"`
}

type DonationHandler struct {
	createOrderUC   createOrderUseCase
	verifyPaymentUC verifyPaymentUseCase
	queries         donationQueries
	shaper          *shaping.Shaper
	logger          logger.Interface
}

func NewDonationHandler(
	createOrderUC createOrderUseCase,
	verifyPaymentUC verifyPaymentUseCase,
	queries donationQueries,
	shaper *shaping.Shaper,
	log logger.Interface,
) *DonationHandler {
	return &DonationHandler{
		createOrderUC:   createOrderUC,
		verifyPaymentUC: verifyPaymentUC,
		queries:         queries,
		shaper:          shaper,
		logger:          log,
	}
}

// CreateOrder handles POST /donations/create-order
//
//	@Summary		Create donation order
//	@Description	Opens a payment order for a pool. Signed-in donors are linked to their account; anonymous donors must give a name and email
//	@Tags			donations
//	@Accept			json
//	@Produce		json
//	@Param			order	body		donationdto.CreateOrderRequest							true	"Order data"
//	@Success		201		{object}	utils.APIResponse{data=donationdto.CreateOrderResponse}	"Order created"
//	@Failure		400		{object}	utils.APIResponse										"Pool cannot accept this donation"
//	@Failure		404		{object}	utils.APIResponse										"Pool not found"
//	@Failure		502		{object}	utils.APIResponse										"Payment provider unavailable"
//	@Router			/donations/create-order [post]
func (h *DonationHandler) CreateOrder(c *gin.Context) {
	var req donationdto.CreateOrderRequest
	if err := bindJSON(c, &req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	resp, err := h.createOrderUC.Execute(c.Request.Context(), donationusecases.CreateOrderCommand{
		PoolID:  req.PoolID,
		Amount:  money.ToMinor(req.Amount),
		Message: req.Message,
		Donor: donation.Donor{
			UserID: middleware.GetUserID(c),
			Name:   req.AnonymousDonorName,
			Email:  req.AnonymousDonorEmail,
			Phone:  req.AnonymousDonorPhone,
		},
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, resp, "Order created successfully")
}

// VerifyPayment handles POST /donations/verify-payment
//
//	@Summary		Verify payment
//	@Description	Checks the provider signature and credits the pool exactly once
//	@Tags			donations
//	@Accept			json
//	@Produce		json
//	@Param			payment	body		donationdto.VerifyPaymentRequest							true	"Provider callback"
//	@Success		200		{object}	utils.APIResponse{data=donationdto.VerifyPaymentResponse}	"Payment verified"
//	@Failure		400		{object}	utils.APIResponse											"Invalid payment signature"
//	@Failure		404		{object}	utils.APIResponse											"Donation not found"
//	@Failure		409		{object}	utils.APIResponse											"Payment already verified"
//	@Router			/donations/verify-payment [post]
func (h *DonationHandler) VerifyPayment(c *gin.Context) {
	var req donationdto.VerifyPaymentRequest
	if err := bindJSON(c, &req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	resp, err := h.verifyPaymentUC.Execute(c.Request.Context(), donationusecases.VerifyPaymentCommand{
		OrderID:   req.OrderID,
		PaymentID: req.PaymentID,
		Signature: req.Signature,
	})
	if err != nil {
		h.logger.Warnw("payment verification rejected", "order_id", req.OrderID, "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, resp.Message, gin.H{
		"success":  resp.Success,
		"message":  resp.Message,
		"donation": shape(c, h.shaper, access.OpDonationsVerifyPayment, shaping.KindDonation, resp.Donation),
	})
}

// ListDonations handles GET /donations
//
//	@Summary		List donations
//	@Tags			donations
//	@Produce		json
//	@Security		Bearer
//	@Param			page		query		int		false	"Page"
//	@Param			page_size	query		int		false	"Page size"
//	@Param			pool_id		query		string	false	"Pool filter"
//	@Param			user_id		query		string	false	"Donor filter"
//	@Param			status		query		string	false	"Pending, Success or Failed"
//	@Success		200			{object}	utils.APIResponse{data=utils.ListResponse}	"Donations"
//	@Router			/donations [get]
func (h *DonationHandler) ListDonations(c *gin.Context) {
	p := utils.ParsePagination(c)

	list, total, err := h.queries.List(c.Request.Context(), donationdto.ListDonationsRequest{
		Page:     p.Page,
		PageSize: p.PageSize,
		PoolID:   c.Query("pool_id"),
		UserID:   c.Query("user_id"),
		Status:   c.Query("status"),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", shapedList(c, h.shaper, access.OpDonationsList, shaping.KindDonation, list, total, p))
}

// GetDonation handles GET /donations/:id
//
//	@Summary		Get donation
//	@Tags			donations
//	@Produce		json
//	@Param			id	path		string											true	"Donation ID"
//	@Success		200	{object}	utils.APIResponse{data=donationdto.DonationDTO}	"Donation"
//	@Failure		404	{object}	utils.APIResponse								"Not found"
//	@Router			/donations/{id} [get]
func (h *DonationHandler) GetDonation(c *gin.Context) {
	donationID, err := parseIDParam(c, "id", "donation")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	d, err := h.queries.Get(c.Request.Context(), donationID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", shape(c, h.shaper, access.OpDonationsGet, shaping.KindDonation, d))
}

// ListPoolDonations handles GET /donations/pool/:poolId
//
//	@Summary		Successful donations to a pool
//	@Tags			donations
//	@Produce		json
//	@Param			poolId		path		string	true	"Pool ID"
//	@Param			page		query		int		false	"Page"
//	@Param			page_size	query		int		false	"Page size"
//	@Success		200			{object}	utils.APIResponse{data=utils.ListResponse}	"Donations"
//	@Failure		404			{object}	utils.APIResponse							"Pool not found"
//	@Router			/donations/pool/{poolId} [get]
func (h *DonationHandler) ListPoolDonations(c *gin.Context) {
	poolID, err := parseIDParam(c, "poolId", "pool")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	p := utils.ParsePagination(c)

	list, total, err := h.queries.ListByPool(c.Request.Context(), poolID, p.Page, p.PageSize)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", shapedList(c, h.shaper, access.OpDonationsByPool, shaping.KindDonation, list, total, p))
}

// PoolStats handles GET /donations/pool/:poolId/stats
//
//	@Summary		Funding progress of a pool
//	@Tags			donations
//	@Produce		json
//	@Param			poolId	path		string												true	"Pool ID"
//	@Success		200		{object}	utils.APIResponse{data=donationdto.PoolStatsDTO}	"Stats"
//	@Failure		404		{object}	utils.APIResponse									"Pool not found"
//	@Router			/donations/pool/{poolId}/stats [get]
func (h *DonationHandler) PoolStats(c *gin.Context) {
	poolID, err := parseIDParam(c, "poolId", "pool")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	stats, err := h.queries.PoolStats(c.Request.Context(), poolID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", poolStatsResponse{
		PoolStatsDTO: stats,
		Donations:    shape(c, h.shaper, access.OpDonationsPoolStats, shaping.KindDonation, stats.Donations),
	})
}

// ListMyDonations handles GET /donations/user/my-donations
//
//	@Summary		The caller's donations
//	@Tags			donations
//	@Produce		json
//	@Security		Bearer
//	@Param			page		query		int	false	"Page"
//	@Param			page_size	query		int	false	"Page size"
//	@Success		200			{object}	utils.APIResponse{data=utils.ListResponse}	"Donations"
//	@Failure		401			{object}	utils.APIResponse							"Unauthorized"
//	@Router			/donations/user/my-donations [get]
func (h *DonationHandler) ListMyDonations(c *gin.Context) {
	p := utils.ParsePagination(c)

	list, total, err := h.queries.ListMine(c.Request.Context(), middleware.GetUserID(c), p.Page, p.PageSize)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", shapedList(c, h.shaper, access.OpDonationsMine, shaping.KindDonation, list, total, p))
}
