package income

import (
	"go-truck-business/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rbacService middleware.RBACService) {
	read := middleware.RBACAuthorize(rbacService, "income", "read")

	incomes := r.Group("/incomes")
	{
		incomes.GET("", read, handler.GetAll)
		incomes.GET("/years", read, handler.YearTotals)
		incomes.GET("/year/:year", read, handler.GetByYear)
		incomes.GET("/:id", read, handler.GetByID)
		incomes.POST("", middleware.RateLimitByUser(1, 5), middleware.RBACAuthorize(rbacService, "income", "create"), handler.Create)
		incomes.PUT("/:id", middleware.RBACAuthorize(rbacService, "income", "update"), handler.Update)
		incomes.DELETE("/:id", middleware.RBACAuthorize(rbacService, "income", "delete"), handler.Delete)
	}
}
