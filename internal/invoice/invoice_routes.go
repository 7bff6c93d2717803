package invoice

import (
	"go-truck-business/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rbacService middleware.RBACService) {
	read := middleware.RBACAuthorize(rbacService, "invoice", "read")

	invoices := r.Group("/invoices")
	{
		invoices.GET("", read, handler.GetAll)
		invoices.GET("/year/:year", read, handler.GetByYear)
		invoices.GET("/:id", read, handler.GetByID)
		invoices.POST("", middleware.RateLimitByUser(1, 5), middleware.RBACAuthorize(rbacService, "invoice", "create"), handler.Create)
		invoices.PUT("/:id", middleware.RBACAuthorize(rbacService, "invoice", "update"), handler.Update)
		invoices.DELETE("/:id", middleware.RBACAuthorize(rbacService, "invoice", "delete"), handler.Delete)
	}
}
