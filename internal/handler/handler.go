// Package handler exposes the services over gin.
package handler

import (
	"context"
	"errors"
	"io"
	"net/http"

	"finly/internal/domain"
	"finly/internal/middleware"
	"finly/internal/service"

	"github.com/gin-gonic/gin"
)

// retryAfterSeconds is sent with every 503.
const retryAfterSeconds = "5"

// Handlers groups the route handlers of the API.
type Handlers struct {
	Expenses *ExpenseHandler
	Profiles *ProfileHandler
	Reviews  *ReviewHandler
	Advice   *AdviceHandler
	Users    *UserHandler
}

// Services is everything the HTTP layer talks to.
type Services struct {
	Expenses *service.ExpenseService
	Profiles *service.ProfileService
	Reviews  *service.ReviewService
	Advice   *service.AdviceService
	Users    *service.UserService
}

func New(s Services) *Handlers {
	return &Handlers{
		Expenses: NewExpenseHandler(s.Expenses),
		Profiles: NewProfileHandler(s.Profiles),
		Reviews:  NewReviewHandler(s.Reviews),
		Advice:   NewAdviceHandler(s.Advice),
		Users:    NewUserHandler(s.Users),
	}
}

// respondError writes the status and short message for err. Store and
// collaborator text never reaches the client.
func respondError(c *gin.Context, err error) {
	_ = c.Error(err)

	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"error": verr.Error(), "field": verr.Field})
	case errors.Is(err, domain.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
	case errors.Is(err, domain.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	case errors.Is(err, domain.ErrEmailTaken):
		c.JSON(http.StatusConflict, gin.H{"error": "User with this email already exists"})
	case errors.Is(err, domain.ErrUpstream), errors.Is(err, context.DeadlineExceeded):
		c.Header("Retry-After", retryAfterSeconds)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Service temporarily unavailable"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
	}
}

// bindJSON decodes the request body into v. An empty body is an error
// unless optional is set.
func bindJSON(c *gin.Context, v any, optional bool) bool {
	err := c.ShouldBindJSON(v)
	if err == nil || (optional && errors.Is(err, io.EOF)) {
		return true
	}
	_ = c.Error(err)
	c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON"})
	return false
}

// caller returns the identity resolved by the auth middleware or answers 401.
func caller(c *gin.Context) (domain.Identity, bool) {
	id, err := middleware.IdentityFrom(c)
	if err != nil {
		respondError(c, err)
		return domain.Identity{}, false
	}
	return id, true
}

// Health godoc
// @Summary Liveness probe
// @Success 200 {object} map[string]string{"status":"ok"}
// @Router /health [get]
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
