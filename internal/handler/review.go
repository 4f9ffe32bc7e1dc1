package handler

import (
	"net/http"
	"strconv"

	"finly/internal/domain"
	"finly/internal/service"

	"github.com/gin-gonic/gin"
)

type ReviewHandler struct {
	svc *service.ReviewService
}

func NewReviewHandler(svc *service.ReviewService) *ReviewHandler {
	return &ReviewHandler{svc: svc}
}

// Create godoc
// @Summary Leave a review
// @Tags reviews
// @Accept json
// @Param request body domain.ReviewDraft true "Review"
// @Success 201 {object} domain.Review
// @Failure 400 {object} map[string]string
// @Router /reviews [post]
func (h *ReviewHandler) Create(c *gin.Context) {
	id, ok := caller(c)
	if !ok {
		return
	}
	var draft domain.ReviewDraft
	if !bindJSON(c, &draft, false) {
		return
	}
	r, err := h.svc.Create(c.Request.Context(), id, draft)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, r)
}

// ListRecent godoc
// @Summary Newest reviews with their authors
// @Tags reviews
// @Param limit query int false "Page size (default 10, max 50)"
// @Success 200 {array} domain.ReviewWithAuthor
// @Router /reviews [get]
func (h *ReviewHandler) ListRecent(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			respondError(c, domain.Invalid("limit", "limit must be an integer"))
			return
		}
		limit = n
	}
	reviews, err := h.svc.ListRecent(c.Request.Context(), limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, reviews)
}
