package handler

import (
	"net/http"

	"finly/internal/service"

	"github.com/gin-gonic/gin"
)

type AdviceHandler struct {
	svc *service.AdviceService
}

func NewAdviceHandler(svc *service.AdviceService) *AdviceHandler {
	return &AdviceHandler{svc: svc}
}

// SavingTips godoc
// @Summary Personalised saving tips
// @Description The body is optional; its fields override what the profile holds.
// @Tags advice
// @Accept json
// @Param request body service.TipsInput false "Overrides"
// @Success 200 {object} map[string]string{"savingTips":""}
// @Router /advice/tips [post]
func (h *AdviceHandler) SavingTips(c *gin.Context) {
	id, ok := caller(c)
	if !ok {
		return
	}
	var in service.TipsInput
	if !bindJSON(c, &in, true) {
		return
	}
	tips, err := h.svc.SavingTips(c.Request.Context(), id, in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"savingTips": tips})
}

// SpendingAlerts godoc
// @Summary Categories whose spending jumped
// @Description Always answers 200; an unavailable advisor yields an empty list.
// @Tags advice
// @Success 200 {object} map[string][]domain.SpendingAlert
// @Router /advice/alerts [get]
func (h *AdviceHandler) SpendingAlerts(c *gin.Context) {
	id, ok := caller(c)
	if !ok {
		return
	}
	alerts, err := h.svc.SpendingAlerts(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"alerts": alerts})
}
