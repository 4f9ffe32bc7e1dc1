package handler

import (
	"net/http"

	"finly/internal/domain"
	"finly/internal/service"

	"github.com/gin-gonic/gin"
)

type ExpenseHandler struct {
	svc *service.ExpenseService
}

func NewExpenseHandler(svc *service.ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{svc: svc}
}

// List godoc
// @Summary List the caller's expenses, newest date first
// @Tags expenses
// @Produce json
// @Success 200 {array} domain.Expense
// @Failure 401 {object} map[string]string
// @Router /expenses [get]
func (h *ExpenseHandler) List(c *gin.Context) {
	id, ok := caller(c)
	if !ok {
		return
	}
	expenses, err := h.svc.For(id).List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, expenses)
}

// Create godoc
// @Summary Record an expense
// @Tags expenses
// @Accept json
// @Produce json
// @Param request body domain.ExpenseInput true "Expense"
// @Success 201 {object} domain.Expense
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /expenses [post]
func (h *ExpenseHandler) Create(c *gin.Context) {
	id, ok := caller(c)
	if !ok {
		return
	}
	var in domain.ExpenseInput
	if !bindJSON(c, &in, false) {
		return
	}
	e, err := h.svc.For(id).Create(c.Request.Context(), in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, e)
}

// Delete godoc
// @Summary Delete one of the caller's expenses
// @Tags expenses
// @Param id path string true "Expense ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /expenses/{id} [delete]
func (h *ExpenseHandler) Delete(c *gin.Context) {
	id, ok := caller(c)
	if !ok {
		return
	}
	if err := h.svc.For(id).Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Expense deleted successfully"})
}
