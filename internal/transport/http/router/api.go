package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"go-catalog-api/internal/core/auth"
	"go-catalog-api/internal/domain"
	"go-catalog-api/internal/transport/http/handler"
	mdw "go-catalog-api/internal/transport/http/middleware"
)

type Handlers struct {
	Auth    *handler.AuthHandler
	Product *handler.ProductHandler
	Audit   *handler.AuditHandler
}

func NewAPIEngine(l *zap.Logger, jwter *auth.JWTer, h Handlers) *gin.Engine {
	r := gin.New()

	r.Use(
		mdw.RequestID(),
		mdw.RateLimit(200, 400),
		mdw.ConcurrencyLimit(300),
		mdw.MaxBodyBytes(1<<20),
		mdw.Timeout(10*time.Second),
		ginzap.RecoveryWithZap(l, true),
		mdw.Metrics(),
		mdw.AccessLog(l),
		cors.Default(), // React 客户端跨域
	)

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": 1}) })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")

	// 认证
	authGrp := api.Group("/auth")
	authGrp.POST("/register", h.Auth.Register)
	authGrp.POST("/login", h.Auth.Login)
	authGrp.GET("/profile", mdw.AuthJWT(jwter, ""), h.Auth.Profile)
	authGrp.GET("/users", mdw.AuthJWT(jwter, domain.RoleAdmin), h.Auth.Users)

	// 产品：读需要登录，写只给 admin
	products := api.Group("/products")
	products.Use(mdw.AuthJWT(jwter, ""))
	products.GET("", h.Product.List)
	products.GET("/:id", h.Product.Get)

	adminProducts := api.Group("/products")
	adminProducts.Use(mdw.AuthJWT(jwter, domain.RoleAdmin))
	adminProducts.POST("", h.Product.Create)
	adminProducts.PUT("/:id", h.Product.Update)
	adminProducts.DELETE("/:id", h.Product.Delete)
	adminProducts.PATCH("/:id/restore", h.Product.Restore)

	// 审计日志：仅 admin
	api.GET("/audit", mdw.AuthJWT(jwter, domain.RoleAdmin), h.Audit.List)

	return r
}
