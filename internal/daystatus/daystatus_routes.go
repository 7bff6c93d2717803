package daystatus

import (
	"go-truck-business/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService middleware.RBACService,
) {
	statuses := r.Group("/employee-day-status")
	{
		statuses.GET("", middleware.RBACAuthorize(rbacService, "day_status", "read"), handler.ListByDate)
		statuses.GET("/:employeeId", middleware.RBACAuthorize(rbacService, "day_status", "read"), handler.GetOne)
		statuses.POST("", middleware.RBACAuthorize(rbacService, "day_status", "write"), handler.Upsert)
		statuses.POST("/upsert", middleware.RBACAuthorize(rbacService, "day_status", "write"), handler.Upsert)
		statuses.POST("/recompute", middleware.RBACAuthorize(rbacService, "day_status", "write"), handler.Recompute)
	}
}
