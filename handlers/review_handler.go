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

type ReviewHandler struct {
	reviewService services.ReviewService
	Helper        *helper.HTTPHelper
}

func NewReviewHandler(reviewService services.ReviewService, h *helper.HTTPHelper) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService, Helper: h}
}

func (h *ReviewHandler) List(c *gin.Context) {
	titleID, ok := h.pathID(c, "title_id", "title not found")
	if !ok {
		return
	}

	var params models.ListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		h.Helper.SendBadRequest(c, "invalid query parameters")
		return
	}

	reviews, total, err := h.reviewService.ListReviews(titleID, params)
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}

	results := make([]models.ReviewResponse, 0, len(reviews))
	for i := range reviews {
		results = append(results, models.NewReviewResponse(&reviews[i]))
	}
	c.JSON(http.StatusOK, h.Helper.Paginate(total, results))
}

func (h *ReviewHandler) Create(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if err := permissions.ReviewCollection(permissions.ActionCreate, c.Request.Method, user); err != nil {
		h.Helper.SendError(c, err)
		return
	}

	titleID, ok := h.pathID(c, "title_id", "title not found")
	if !ok {
		return
	}

	var req models.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Helper.SendBadRequest(c, "malformed request body")
		return
	}
	if err := h.Helper.ValidateStruct(req); err != nil {
		h.Helper.SendError(c, err)
		return
	}

	review, err := h.reviewService.CreateReview(titleID, user, req)
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}
	c.JSON(http.StatusCreated, models.NewReviewResponse(review))
}

func (h *ReviewHandler) Get(c *gin.Context) {
	review, ok := h.fetch(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, models.NewReviewResponse(review))
}

func (h *ReviewHandler) Patch(c *gin.Context) {
	review, ok := h.fetch(c)
	if !ok {
		return
	}

	user := middleware.CurrentUser(c)
	if err := permissions.ReviewObject(permissions.ActionPartialUpdate, user, review.AuthorID); err != nil {
		h.Helper.SendError(c, err)
		return
	}

	var req models.UpdateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Helper.SendBadRequest(c, "malformed request body")
		return
	}
	if err := h.Helper.ValidateStruct(req); err != nil {
		h.Helper.SendError(c, err)
		return
	}

	if err := h.reviewService.UpdateReview(review, req); err != nil {
		h.Helper.SendError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.NewReviewResponse(review))
}

func (h *ReviewHandler) Delete(c *gin.Context) {
	review, ok := h.fetch(c)
	if !ok {
		return
	}

	user := middleware.CurrentUser(c)
	if err := permissions.ReviewObject(permissions.ActionDestroy, user, review.AuthorID); err != nil {
		h.Helper.SendError(c, err)
		return
	}

	if err := h.reviewService.DeleteReview(review); err != nil {
		h.Helper.SendError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// MethodNotAllowed serves the verbs the policy rejects outright,
// notably PUT replace on reviews and comments.
func (h *ReviewHandler) MethodNotAllowed(c *gin.Context) {
	h.Helper.SendError(c, models.ErrorMethodNotAllowed{Method: c.Request.Method})
}

func (h *ReviewHandler) fetch(c *gin.Context) (*models.Review, bool) {
	titleID, ok := h.pathID(c, "title_id", "title not found")
	if !ok {
		return nil, false
	}
	id, ok := h.pathID(c, "review_id", "review not found")
	if !ok {
		return nil, false
	}

	review, err := h.reviewService.GetReview(titleID, id)
	if err != nil {
		h.Helper.SendError(c, err)
		return nil, false
	}
	return review, true
}

func (h *ReviewHandler) pathID(c *gin.Context, name, notFound string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		h.Helper.SendError(c, models.ErrorNotFound{Message: notFound})
		return 0, false
	}
	return uint(id), true
}
