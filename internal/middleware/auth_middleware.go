package middleware

import (
	"errors"
	"net/http"
	"strings"

	autherrors "go-truck-business/internal/auth/errors"
	"go-truck-business/internal/shared/contextutil"
	"go-truck-business/internal/shared/jwtutil"
	"go-truck-business/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const accessTokenCookie = "access_token"

// AuthMiddleware accepts a Bearer header or the access_token cookie and sets
// user_id and role on the gin context.
func AuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, found := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
		if !found {
			tokenString = ""
		}
		if tokenString == "" {
			if cookie, err := c.Cookie(accessTokenCookie); err == nil {
				tokenString = cookie
			}
		}

		if tokenString == "" {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Token not found", nil)
			c.Abort()
			return
		}

		claims, err := jwtutil.Parse(secret, tokenString, jwtutil.TypeAccess)
		if err != nil {
			errObj := autherrors.ErrInvalidToken
			if errors.Is(err, jwtutil.ErrExpiredToken) {
				errObj = autherrors.ErrTokenExpired
			}
			response.Error(c, errObj.HTTPStatus, errObj.Code, errObj.Message, nil)
			c.Abort()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("role", strings.ToUpper(claims.Role))

		ctx := contextutil.WithUserID(c.Request.Context(), claims.UserID)
		reqLogger := contextutil.GetLogger(ctx, zap.L()).With(zap.String("user_id", claims.UserID))
		ctx = contextutil.WithLogger(ctx, reqLogger)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
