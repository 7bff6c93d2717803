package monthlysummary

import (
	"go-truck-business/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rbacService middleware.RBACService) {
	read := middleware.RBACAuthorize(rbacService, "monthly_summary", "read")

	summaries := r.Group("/employee-monthly-summaries")
	{
		summaries.GET("", read, handler.GetAll)
		summaries.GET("/year/:year", read, handler.GetByYear)
		summaries.GET("/:id", read, handler.GetByID)
		summaries.GET("/:id/sheet", read, handler.DownloadSheet)
		summaries.POST("", middleware.RBACAuthorize(rbacService, "monthly_summary", "create"), handler.Create)
		summaries.PUT("/:id", middleware.RBACAuthorize(rbacService, "monthly_summary", "update"), handler.Update)
		summaries.DELETE("/:id", middleware.RBACAuthorize(rbacService, "monthly_summary", "delete"), handler.Delete)
	}
}
