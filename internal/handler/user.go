package handler

import (
	"net/http"

	"finly/internal/service"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	svc *service.UserService
}

func NewUserHandler(svc *service.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

// Register godoc
// @Summary Create an account
// @Tags auth
// @Accept json
// @Param request body service.RegisterInput true "Credentials"
// @Success 201 {object} domain.PublicUser
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /auth/register [post]
func (h *UserHandler) Register(c *gin.Context) {
	var in service.RegisterInput
	if !bindJSON(c, &in, false) {
		return
	}
	u, err := h.svc.Register(c.Request.Context(), in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, u.Public())
}

// Login godoc
// @Summary Exchange credentials for a bearer token
// @Tags auth
// @Accept json
// @Param request body service.LoginInput true "Credentials"
// @Success 200 {object} service.Session
// @Failure 401 {object} map[string]string
// @Router /auth/login [post]
func (h *UserHandler) Login(c *gin.Context) {
	var in service.LoginInput
	if !bindJSON(c, &in, false) {
		return
	}
	sess, err := h.svc.Login(c.Request.Context(), in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sess)
}

// Total godoc
// @Summary Number of registered users
// @Tags users
// @Success 200 {object} map[string]int{"totalUsers":0}
// @Router /users/total [get]
func (h *UserHandler) Total(c *gin.Context) {
	n, err := h.svc.Total(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"totalUsers": n})
}
