package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/labpool/labpool/internal/application/access"
	"github.com/labpool/labpool/internal/application/shaping"
	userdto "github.com/labpool/labpool/internal/application/user/dto"
	"github.com/labpool/labpool/internal/interfaces/http/middleware"
	"github.com/labpool/labpool/internal/shared/constants"
	"github.com/labpool/labpool/internal/shared/logger"
	"github.com/labpool/labpool/internal/shared/utils"
)

type AuthHandler struct {
	authService authService
	shaper      *shaping.Shaper
	logger      logger.Interface
}

func NewAuthHandler(authService authService, shaper *shaping.Shaper, logger logger.Interface) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		shaper:      shaper,
		logger:      logger,
	}
}

// Login handles POST /auth/login
//
//	@Summary		Login
//	@Description	Exchange email and password for an access and refresh token pair
//	@Tags			auth
//	@Accept			json
//	@Produce		json
//	@Param			credentials	body		userdto.LoginRequest							true	"Credentials"
//	@Success		200			{object}	utils.APIResponse{data=userdto.LoginResponse}	"Login successful"
//	@Failure		400			{object}	utils.APIResponse								"Bad request"
//	@Failure		401			{object}	utils.APIResponse								"Invalid credentials"
//	@Router			/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req userdto.LoginRequest
	if err := bindJSON(c, &req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	resp, err := h.authService.Login(c.Request.Context(), req)
	if err != nil {
		h.logger.Warnw("login failed", "email", utils.MaskEmail(req.Email), "client_ip", c.ClientIP(), "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Login successful", resp)
}

// Refresh handles POST /auth/refresh
//
//	@Summary		Refresh tokens
//	@Tags			auth
//	@Accept			json
//	@Produce		json
//	@Param			token	body		userdto.RefreshRequest							true	"Refresh token"
//	@Success		200		{object}	utils.APIResponse{data=userdto.LoginResponse}	"Token refreshed"
//	@Failure		401		{object}	utils.APIResponse								"Invalid refresh token"
//	@Router			/auth/refresh [post]
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req userdto.RefreshRequest
	if err := bindJSON(c, &req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	resp, err := h.authService.Refresh(c.Request.Context(), req)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Token refreshed", resp)
}

// Profile handles GET /auth/profile
//
//	@Summary		Current user
//	@Tags			auth
//	@Produce		json
//	@Security		Bearer
//	@Success		200	{object}	utils.APIResponse{data=userdto.UserDTO}	"Profile"
//	@Failure		401	{object}	utils.APIResponse						"Unauthorized"
//	@Router			/auth/profile [get]
func (h *AuthHandler) Profile(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		utils.ErrorResponse(c, http.StatusUnauthorized, constants.ErrMsgAuthRequired)
		return
	}

	profile, err := h.authService.Profile(c.Request.Context(), userID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", shape(c, h.shaper, access.OpAuthProfile, shaping.KindUser, profile))
}
