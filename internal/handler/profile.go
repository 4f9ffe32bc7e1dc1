package handler

import (
	"net/http"

	"finly/internal/domain"
	"finly/internal/service"

	"github.com/gin-gonic/gin"
)

type ProfileHandler struct {
	svc *service.ProfileService
}

func NewProfileHandler(svc *service.ProfileService) *ProfileHandler {
	return &ProfileHandler{svc: svc}
}

// Get godoc
// @Summary Get the caller's profile, creating it on first access
// @Tags profile
// @Produce json
// @Success 200 {object} domain.Profile
// @Router /profile [get]
func (h *ProfileHandler) Get(c *gin.Context) {
	id, ok := caller(c)
	if !ok {
		return
	}
	p, err := h.svc.GetOrCreate(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// Update godoc
// @Summary Update name, income or goals
// @Description Only fields present in the body change. An empty string or null income clears it.
// @Tags profile
// @Accept json
// @Produce json
// @Param request body domain.ProfileInput true "Fields to change"
// @Success 200 {object} domain.Profile
// @Failure 400 {object} map[string]string
// @Router /profile [put]
func (h *ProfileHandler) Update(c *gin.Context) {
	id, ok := caller(c)
	if !ok {
		return
	}
	var in domain.ProfileInput
	if !bindJSON(c, &in, false) {
		return
	}
	p, err := h.svc.Update(c.Request.Context(), id, in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}
