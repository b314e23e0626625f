package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"backoffice-client/internal/pkg/jwt"
	"backoffice-client/internal/pkg/response"
)

type AuthMiddleware struct {
	tokens *jwt.Manager
}

func NewAuthMiddleware(tokens *jwt.Manager) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens}
}

// Auth validates the bearer token and loads the account identity into the
// request context.
func (m *AuthMiddleware) Auth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			response.Unauthorized(c, "missing authorization token")
			return
		}

		claims, err := m.tokens.Verify(token)
		if err != nil {
			response.Unauthorized(c, "invalid or expired token")
			return
		}

		c.Set("user_id", claims.Subject)
		c.Set("email", claims.Email)
		c.Set("is_staff", claims.IsStaff)
		c.Set("is_superuser", claims.IsSuperuser)
		c.Set("empresa_id", claims.EmpresaID)
		c.Next()
	}
}

// extractToken pulls the Bearer credential from the Authorization header.
func extractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return parts[1]
	}
	return ""
}

// GetUserID reads the authenticated account id from context.
func GetUserID(c *gin.Context) (string, bool) {
	v, exists := c.Get("user_id")
	if !exists {
		return "", false
	}
	id, ok := v.(string)
	return id, ok
}

// IsSuperuser reports whether the authenticated account is a superuser.
func IsSuperuser(c *gin.Context) bool {
	v, exists := c.Get("is_superuser")
	if !exists {
		return false
	}
	b, ok := v.(bool)
	return ok && b
}

// EmpresaID reads the authenticated account's company scope, "" when global.
func EmpresaID(c *gin.Context) string {
	v, exists := c.Get("empresa_id")
	if !exists {
		return ""
	}
	s, _ := v.(string)
	return s
}
