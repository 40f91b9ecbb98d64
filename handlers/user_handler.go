package handlers

import (
	"net/http"

	"reviewdb-api/helper"
	"reviewdb-api/middleware"
	"reviewdb-api/models"
	"reviewdb-api/services"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userService services.UserService
	Helper      *helper.HTTPHelper
}

func NewUserHandler(userService services.UserService, h *helper.HTTPHelper) *UserHandler {
	return &UserHandler{userService: userService, Helper: h}
}

// Me handles GET /users/me/.
func (h *UserHandler) Me(c *gin.Context) {
	user := middleware.CurrentUser(c)
	c.JSON(http.StatusOK, models.NewUserResponse(user))
}

// PatchMe handles PATCH /users/me/. The role field is never applied
// through this surface, even when present in the payload.
func (h *UserHandler) PatchMe(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var req models.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Helper.SendBadRequest(c, "malformed request body")
		return
	}
	if err := h.Helper.ValidateStruct(req); err != nil {
		h.Helper.SendError(c, err)
		return
	}

	if err := h.userService.Update(user, req, models.SelfServicePolicy); err != nil {
		h.Helper.SendError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.NewUserResponse(user))
}

// List handles GET /users/ (admin).
func (h *UserHandler) List(c *gin.Context) {
	var params models.ListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		h.Helper.SendBadRequest(c, "invalid query parameters")
		return
	}

	users, total, err := h.userService.List(params)
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}

	results := make([]models.UserResponse, 0, len(users))
	for i := range users {
		results = append(results, models.NewUserResponse(&users[i]))
	}
	c.JSON(http.StatusOK, h.Helper.Paginate(total, results))
}

// Create handles POST /users/ (admin).
func (h *UserHandler) Create(c *gin.Context) {
	var req models.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Helper.SendBadRequest(c, "malformed request body")
		return
	}
	if err := h.Helper.ValidateStruct(req); err != nil {
		h.Helper.SendError(c, err)
		return
	}

	user, err := h.userService.Create(req)
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}

	c.JSON(http.StatusCreated, models.NewUserResponse(user))
}

// Get handles GET /users/{username}/ (admin).
func (h *UserHandler) Get(c *gin.Context) {
	user, err := h.userService.GetByUsername(c.Param("username"))
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.NewUserResponse(user))
}

// Patch handles PATCH /users/{username}/ (admin); role changes are
// allowed here and only here.
func (h *UserHandler) Patch(c *gin.Context) {
	user, err := h.userService.GetByUsername(c.Param("username"))
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}

	var req models.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Helper.SendBadRequest(c, "malformed request body")
		return
	}
	if err := h.Helper.ValidateStruct(req); err != nil {
		h.Helper.SendError(c, err)
		return
	}

	if err := h.userService.Update(user, req, models.AdminPolicy); err != nil {
		h.Helper.SendError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.NewUserResponse(user))
}

// Delete handles DELETE /users/{username}/ (admin).
func (h *UserHandler) Delete(c *gin.Context) {
	user, err := h.userService.GetByUsername(c.Param("username"))
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}

	if err := h.userService.Delete(user); err != nil {
		h.Helper.SendError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
