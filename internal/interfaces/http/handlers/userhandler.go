package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/labpool/labpool/internal/application/access"
	"github.com/labpool/labpool/internal/application/shaping"
	userdto "github.com/labpool/labpool/internal/application/user/dto"
	"github.com/labpool/labpool/internal/shared/logger"
	"github.com/labpool/labpool/internal/shared/utils"
)

// UserHandler handles HTTP requests for user operations
type UserHandler struct {
	userService userService
	shaper      *shaping.Shaper
	logger      logger.Interface
}

func NewUserHandler(userService userService, shaper *shaping.Shaper, log logger.Interface) *UserHandler {
	return &UserHandler{
		userService: userService,
		shaper:      shaper,
		logger:      log,
	}
}

// CreateUser handles POST /users
//
//	@Summary		Create user
//	@Tags			users
//	@Accept			json
//	@Produce		json
//	@Security		Bearer
//	@Param			user	body		userdto.CreateUserRequest				true	"User data"
//	@Success		201		{object}	utils.APIResponse{data=userdto.UserDTO}	"User created"
//	@Failure		400		{object}	utils.APIResponse						"Bad request"
//	@Failure		409		{object}	utils.APIResponse						"Email already in use"
//	@Router			/users [post]
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req userdto.CreateUserRequest
	if err := bindJSON(c, &req); err != nil {
		h.logger.Warnw("invalid request body for create user", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	userResp, err := h.userService.Create(c.Request.Context(), req)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, shape(c, h.shaper, access.OpUsersCreate, shaping.KindUser, userResp), "User created successfully")
}

// GetUser handles GET /users/:id
//
//	@Summary		Get user
//	@Tags			users
//	@Produce		json
//	@Security		Bearer
//	@Param			id	path		string									true	"User ID"
//	@Success		200	{object}	utils.APIResponse{data=userdto.UserDTO}	"User"
//	@Failure		404	{object}	utils.APIResponse						"Not found"
//	@Router			/users/{id} [get]
func (h *UserHandler) GetUser(c *gin.Context) {
	userID, err := parseIDParam(c, "id", "user")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	userResp, err := h.userService.Get(c.Request.Context(), userID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", shape(c, h.shaper, access.OpUsersGet, shaping.KindUser, userResp))
}

// UpdateUser handles PATCH /users/:id
//
//	@Summary		Update user
//	@Tags			users
//	@Accept			json
//	@Produce		json
//	@Security		Bearer
//	@Param			id		path		string									true	"User ID"
//	@Param			user	body		userdto.UpdateUserRequest				true	"Fields to change"
//	@Success		200		{object}	utils.APIResponse{data=userdto.UserDTO}	"User updated"
//	@Failure		404		{object}	utils.APIResponse						"Not found"
//	@Failure		409		{object}	utils.APIResponse						"Email already in use"
//	@Router			/users/{id} [patch]
func (h *UserHandler) UpdateUser(c *gin.Context) {
	userID, err := parseIDParam(c, "id", "user")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req userdto.UpdateUserRequest
	if err := bindJSON(c, &req); err != nil {
		h.logger.Warnw("invalid request body for update user", "user_id", userID, "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	userResp, err := h.userService.Update(c.Request.Context(), userID, req)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "User updated successfully", shape(c, h.shaper, access.OpUsersUpdate, shaping.KindUser, userResp))
}

// DeleteUser handles DELETE /users/:id
//
//	@Summary		Delete user
//	@Tags			users
//	@Security		Bearer
//	@Param			id	path	string	true	"User ID"
//	@Success		204	"Deleted"
//	@Failure		404	{object}	utils.APIResponse	"Not found"
//	@Router			/users/{id} [delete]
func (h *UserHandler) DeleteUser(c *gin.Context) {
	userID, err := parseIDParam(c, "id", "user")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if err := h.userService.Delete(c.Request.Context(), userID); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.NoContentResponse(c)
}

// ListUsers handles GET /users
//
//	@Summary		List users
//	@Tags			users
//	@Produce		json
//	@Security		Bearer
//	@Param			page		query		int		false	"Page"
//	@Param			page_size	query		int		false	"Page size"
//	@Param			search		query		string	false	"Name or email contains"
//	@Success		200			{object}	utils.APIResponse{data=utils.ListResponse}	"Users"
//	@Router			/users [get]
func (h *UserHandler) ListUsers(c *gin.Context) {
	p := utils.ParsePagination(c)

	users, total, err := h.userService.List(c.Request.Context(), userdto.ListUsersRequest{
		Page:     p.Page,
		PageSize: p.PageSize,
		Search:   c.Query("search"),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", shapedList(c, h.shaper, access.OpUsersList, shaping.KindUser, users, total, p))
}

// AssignRoles handles POST /users/:id/roles
//
//	@Summary		Replace a user's roles
//	@Tags			users
//	@Accept			json
//	@Produce		json
//	@Security		Bearer
//	@Param			id		path		string									true	"User ID"
//	@Param			roles	body		userdto.AssignRolesRequest				true	"Role IDs"
//	@Success		200		{object}	utils.APIResponse{data=userdto.UserDTO}	"Roles assigned"
//	@Failure		404		{object}	utils.APIResponse						"User or role not found"
//	@Router			/users/{id}/roles [post]
func (h *UserHandler) AssignRoles(c *gin.Context) {
	userID, err := parseIDParam(c, "id", "user")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req userdto.AssignRolesRequest
	if err := bindJSON(c, &req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	userResp, err := h.userService.AssignRoles(c.Request.Context(), userID, req)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Roles assigned successfully", shape(c, h.shaper, access.OpUsersAssignRoles, shaping.KindUser, userResp))
}
