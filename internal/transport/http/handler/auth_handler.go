package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"go-catalog-api/internal/service"
	mdw "go-catalog-api/internal/transport/http/middleware"
	resp "go-catalog-api/internal/transport/http/response"
)

type AuthHandler struct {
	auth *service.AuthService
	log  *zap.Logger
}

func NewAuthHandler(auth *service.AuthService, log *zap.Logger) *AuthHandler {
	return &AuthHandler{auth: auth, log: log}
}

type registerIn struct {
	Email    string `json:"email" binding:"required,email"`
	FullName string `json:"full_name" binding:"required,max=64"`
	Password string `json:"password" binding:"required,min=6"`
}

type loginIn struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	var in registerIn
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, resp.Error(resp.CodeBadRequest, err.Error()))
		return
	}
	u, tok, err := h.auth.Register(c.Request.Context(), in.Email, in.FullName, in.Password)
	if err != nil {
		writeDomainErr(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, resp.Created(gin.H{"user": u, "token": tok}))
}

func (h *AuthHandler) Login(c *gin.Context) {
	var in loginIn
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, resp.Error(resp.CodeBadRequest, err.Error()))
		return
	}
	u, tok, err := h.auth.Login(c.Request.Context(), in.Email, in.Password)
	if err != nil {
		writeDomainErr(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, resp.OK(gin.H{"user": u, "token": tok}))
}

func (h *AuthHandler) Profile(c *gin.Context) {
	u, err := h.auth.Profile(c.Request.Context(), c.GetString(mdw.KeyUserID))
	if err != nil {
		writeDomainErr(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, resp.OK(gin.H{"user": u}))
}

// Users 管理端用户列表
func (h *AuthHandler) Users(c *gin.Context) {
	users, err := h.auth.Users(c.Request.Context())
	if err != nil {
		writeDomainErr(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, resp.OK(gin.H{"data": users}))
}
