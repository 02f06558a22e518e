package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"go-catalog-api/internal/domain"
	"go-catalog-api/internal/service"
	mdw "go-catalog-api/internal/transport/http/middleware"
	resp "go-catalog-api/internal/transport/http/response"
)

type ProductHandler struct {
	products *service.ProductService
	log      *zap.Logger
}

func NewProductHandler(products *service.ProductService, log *zap.Logger) *ProductHandler {
	return &ProductHandler{products: products, log: log}
}

type createProductIn struct {
	Name        string  `json:"name" binding:"required,max=100"`
	Price       float64 `json:"price" binding:"required"`
	Description string  `json:"description" binding:"omitempty"`
	ImageURL    string  `json:"image_url" binding:"omitempty,max=255"`
}

// updateProductIn 指针字段区分“未提供”与“零值”
type updateProductIn struct {
	Name        *string  `json:"name" binding:"omitempty,max=100"`
	Price       *float64 `json:"price"`
	Description *string  `json:"description"`
	ImageURL    *string  `json:"image_url" binding:"omitempty,max=255"`
}

type listProductsQ struct {
	Page           int    `form:"page,default=1"`
	Limit          int    `form:"limit,default=10"`
	Search         string `form:"search"`
	SortBy         string `form:"sortBy,default=created_at"`
	SortOrder      string `form:"sortOrder,default=desc"`
	IncludeDeleted bool   `form:"includeDeleted"`
}

func actorFrom(c *gin.Context) service.Actor {
	return service.Actor{ID: c.GetString(mdw.KeyUserID), Email: c.GetString(mdw.KeyEmail)}
}

func viewerIsAdmin(c *gin.Context) bool {
	return c.GetString(mdw.KeyRole) == domain.RoleAdmin
}

func (h *ProductHandler) Create(c *gin.Context) {
	var in createProductIn
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, resp.Error(resp.CodeBadRequest, err.Error()))
		return
	}
	id, err := h.products.Create(c.Request.Context(), service.CreateProductInput{
		Name:        in.Name,
		Price:       in.Price,
		Description: in.Description,
		ImageURL:    in.ImageURL,
	}, actorFrom(c))
	if err != nil {
		writeDomainErr(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, resp.Created(gin.H{"id": id}))
}

func (h *ProductHandler) Get(c *gin.Context) {
	p, err := h.products.Get(c.Request.Context(), c.Param("id"), viewerIsAdmin(c))
	if err != nil {
		writeDomainErr(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, resp.OK(p))
}

func (h *ProductHandler) List(c *gin.Context) {
	var q listProductsQ
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, resp.Error(resp.CodeBadRequest, err.Error()))
		return
	}
	page, err := h.products.List(c.Request.Context(), service.ListQuery{
		Page:           q.Page,
		Limit:          q.Limit,
		Search:         q.Search,
		SortBy:         q.SortBy,
		SortOrder:      q.SortOrder,
		IncludeDeleted: q.IncludeDeleted,
	}, viewerIsAdmin(c))
	if err != nil {
		writeDomainErr(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, resp.OK(page))
}

func (h *ProductHandler) Update(c *gin.Context) {
	var in updateProductIn
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, resp.Error(resp.CodeBadRequest, err.Error()))
		return
	}
	err := h.products.Update(c.Request.Context(), c.Param("id"), service.UpdateProductInput{
		Name:        in.Name,
		Price:       in.Price,
		Description: in.Description,
		ImageURL:    in.ImageURL,
	}, actorFrom(c))
	if err != nil {
		writeDomainErr(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, resp.OK(gin.H{"id": c.Param("id")}))
}

func (h *ProductHandler) Delete(c *gin.Context) {
	if err := h.products.Delete(c.Request.Context(), c.Param("id"), actorFrom(c)); err != nil {
		writeDomainErr(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, resp.OK(gin.H{"id": c.Param("id")}))
}

func (h *ProductHandler) Restore(c *gin.Context) {
	if err := h.products.Restore(c.Request.Context(), c.Param("id"), actorFrom(c)); err != nil {
		writeDomainErr(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, resp.OK(gin.H{"id": c.Param("id")}))
}
