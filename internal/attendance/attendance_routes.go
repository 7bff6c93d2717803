package attendance

import (
	"go-truck-business/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService middleware.RBACService) {
	read := middleware.RBACAuthorize(rbacService, "attendance", "read")
	write := middleware.RBACAuthorize(rbacService, "attendance", "write")
	check := middleware.RBACAuthorize(rbacService, "attendance", "check")

	attendance := r.Group("/attendance")
	{
		// static paths before /:id
		attendance.GET("/years", read, h.Years)
		attendance.GET("/summary", read, h.Summary)
		attendance.GET("/employee-history", read, h.EmployeeHistory)

		attendance.GET("", read, h.GetAll)
		attendance.GET("/:id", read, h.GetByID)
		attendance.POST("", write, h.Create)
		attendance.POST("/check-in", check, h.CheckIn)
		attendance.POST("/check-out", check, h.CheckOut)
		attendance.PUT("/:id", write, h.Update)
		attendance.DELETE("/:id", write, h.Delete)
	}
}
