package handlers

import (
	"net/http"
	"strconv"

	"reviewdb-api/helper"
	"reviewdb-api/middleware"
	"reviewdb-api/models"
	"reviewdb-api/permissions"
	"reviewdb-api/services"

	"github.com/gin-gonic/gin"
)

type CommentHandler struct {
	reviewService services.ReviewService
	Helper        *helper.HTTPHelper
}

func NewCommentHandler(reviewService services.ReviewService, h *helper.HTTPHelper) *CommentHandler {
	return &CommentHandler{reviewService: reviewService, Helper: h}
}

func (h *CommentHandler) List(c *gin.Context) {
	titleID, reviewID, ok := h.parentIDs(c)
	if !ok {
		return
	}

	var params models.ListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		h.Helper.SendBadRequest(c, "invalid query parameters")
		return
	}

	comments, total, err := h.reviewService.ListComments(titleID, reviewID, params)
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}

	results := make([]models.CommentResponse, 0, len(comments))
	for i := range comments {
		results = append(results, models.NewCommentResponse(&comments[i]))
	}
	c.JSON(http.StatusOK, h.Helper.Paginate(total, results))
}

func (h *CommentHandler) Create(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if err := permissions.CommentCollection(permissions.ActionCreate, c.Request.Method, user); err != nil {
		h.Helper.SendError(c, err)
		return
	}

	titleID, reviewID, ok := h.parentIDs(c)
	if !ok {
		return
	}

	var req models.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Helper.SendBadRequest(c, "malformed request body")
		return
	}
	if err := h.Helper.ValidateStruct(req); err != nil {
		h.Helper.SendError(c, err)
		return
	}

	comment, err := h.reviewService.CreateComment(titleID, reviewID, user, req)
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}
	c.JSON(http.StatusCreated, models.NewCommentResponse(comment))
}

func (h *CommentHandler) Get(c *gin.Context) {
	comment, ok := h.fetch(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, models.NewCommentResponse(comment))
}

func (h *CommentHandler) Patch(c *gin.Context) {
	comment, ok := h.fetch(c)
	if !ok {
		return
	}

	user := middleware.CurrentUser(c)
	if err := permissions.CommentObject(permissions.ActionPartialUpdate, user, comment.AuthorID); err != nil {
		h.Helper.SendError(c, err)
		return
	}

	var req models.UpdateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Helper.SendBadRequest(c, "malformed request body")
		return
	}
	if err := h.Helper.ValidateStruct(req); err != nil {
		h.Helper.SendError(c, err)
		return
	}

	if err := h.reviewService.UpdateComment(comment, req); err != nil {
		h.Helper.SendError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.NewCommentResponse(comment))
}

func (h *CommentHandler) Delete(c *gin.Context) {
	comment, ok := h.fetch(c)
	if !ok {
		return
	}

	user := middleware.CurrentUser(c)
	if err := permissions.CommentObject(permissions.ActionDestroy, user, comment.AuthorID); err != nil {
		h.Helper.SendError(c, err)
		return
	}

	if err := h.reviewService.DeleteComment(comment); err != nil {
		h.Helper.SendError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *CommentHandler) MethodNotAllowed(c *gin.Context) {
	h.Helper.SendError(c, models.ErrorMethodNotAllowed{Method: c.Request.Method})
}

func (h *CommentHandler) fetch(c *gin.Context) (*models.Comment, bool) {
	titleID, reviewID, ok := h.parentIDs(c)
	if !ok {
		return nil, false
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		h.Helper.SendError(c, models.ErrorNotFound{Message: "comment not found"})
		return nil, false
	}

	comment, err2 := h.reviewService.GetComment(titleID, reviewID, uint(id))
	if err2 != nil {
		h.Helper.SendError(c, err2)
		return nil, false
	}
	return comment, true
}

func (h *CommentHandler) parentIDs(c *gin.Context) (uint, uint, bool) {
	titleID, err := strconv.ParseUint(c.Param("title_id"), 10, 32)
	if err != nil || titleID == 0 {
		h.Helper.SendError(c, models.ErrorNotFound{Message: "title not found"})
		return 0, 0, false
	}
	reviewID, err := strconv.ParseUint(c.Param("review_id"), 10, 32)
	if err != nil || reviewID == 0 {
		h.Helper.SendError(c, models.ErrorNotFound{Message: "review not found"})
		return 0, 0, false
	}
	return uint(titleID), uint(reviewID), true
}
