package handlers

import (
	"net/http"
	"strconv"

	"reviewdb-api/helper"
	"reviewdb-api/models"
	"reviewdb-api/services"

	"github.com/gin-gonic/gin"
)

type TitleHandler struct {
	titleService services.TitleService
	Helper       *helper.HTTPHelper
}

func NewTitleHandler(titleService services.TitleService, h *helper.HTTPHelper) *TitleHandler {
	return &TitleHandler{titleService: titleService, Helper: h}
}

func (h *TitleHandler) List(c *gin.Context) {
	var params models.TitleListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		h.Helper.SendBadRequest(c, "invalid query parameters")
		return
	}

	titles, total, err := h.titleService.List(params)
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.Helper.Paginate(total, titles))
}

func (h *TitleHandler) Create(c *gin.Context) {
	var req models.CreateTitleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Helper.SendBadRequest(c, "malformed request body")
		return
	}
	if err := h.Helper.ValidateStruct(req); err != nil {
		h.Helper.SendError(c, err)
		return
	}

	title, err := h.titleService.Create(req)
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}
	c.JSON(http.StatusCreated, title)
}

func (h *TitleHandler) Get(c *gin.Context) {
	id, ok := h.titleID(c)
	if !ok {
		return
	}

	title, err := h.titleService.Get(id)
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}
	c.JSON(http.StatusOK, title)
}

func (h *TitleHandler) Patch(c *gin.Context) {
	id, ok := h.titleID(c)
	if !ok {
		return
	}

	var req models.UpdateTitleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Helper.SendBadRequest(c, "malformed request body")
		return
	}
	if err := h.Helper.ValidateStruct(req); err != nil {
		h.Helper.SendError(c, err)
		return
	}

	title, err := h.titleService.Update(id, req)
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}
	c.JSON(http.StatusOK, title)
}

func (h *TitleHandler) Delete(c *gin.Context) {
	id, ok := h.titleID(c)
	if !ok {
		return
	}

	if err := h.titleService.Delete(id); err != nil {
		h.Helper.SendError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *TitleHandler) titleID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("title_id"), 10, 32)
	if err != nil || id == 0 {
		h.Helper.SendError(c, models.ErrorNotFound{Message: "title not found"})
		return 0, false
	}
	return uint(id), true
}
