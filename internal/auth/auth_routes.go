package auth

import (
	"go-truck-business/internal/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts login and refresh on public and the session routes on
// protected, which must already run AuthMiddleware.
func RegisterRoutes(public, protected *gin.RouterGroup, handler *Handler, rbacService middleware.RBACService) {
	open := public.Group("/auth")
	{
		open.POST("/login", middleware.RateLimitByIP(0.08, 5), handler.Login)
		open.POST("/refresh", middleware.RateLimitByIP(0.5, 5), handler.RefreshToken)
		open.POST("/logout", handler.Logout)
	}

	session := protected.Group("/auth")
	{
		session.GET("/me", handler.Me)
		session.POST("/users", middleware.RBACAuthorize(rbacService, "user", "create"), handler.CreateUser)
	}
}
