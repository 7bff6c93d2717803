package leave

import (
	"go-truck-business/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService middleware.RBACService) {
	leaves := r.Group("/leaves")
	{
		leaves.GET("", middleware.RBACAuthorize(rbacService, "leave", "read"), h.GetAll)
		leaves.GET("/:id", middleware.RBACAuthorize(rbacService, "leave", "read"), h.GetByID)
		leaves.POST("", middleware.RBACAuthorize(rbacService, "leave", "create"), h.Create)
		leaves.PUT("/:id", middleware.RBACAuthorize(rbacService, "leave", "update"), h.Update)
		leaves.DELETE("/:id", middleware.RBACAuthorize(rbacService, "leave", "delete"), h.Delete)
	}
}
