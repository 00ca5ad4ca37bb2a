package middleware

import (
	"net/http"
	"strings"

	"formloom/internal/questions"
	"formloom/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const CtxAccess = "access"

// JWTAuthMiddleware validates the bearer token and stores an explicit
// AccessContext for downstream handlers, so plan/role gating never reads
// ambient state.
func JWTAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			utils.RespondError(c, http.StatusUnauthorized, "Authorization header missing or invalid")
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := utils.ValidateToken(tokenString)
		if err != nil {
			utils.RespondError(c, http.StatusUnauthorized, "Invalid or expired token")
			c.Abort()
			return
		}

		userID, err := uuid.Parse(claims.UserID)
		if err != nil {
			utils.RespondError(c, http.StatusUnauthorized, "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set(CtxAccess, questions.AccessContext{
			UserID: userID,
			Role:   questions.Role(claims.Role),
			Plan:   questions.Plan(claims.Plan),
		})
		c.Next()
	}
}

func RoleMiddleware(requiredRoles ...questions.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		access, ok := AccessFrom(c)
		if !ok {
			utils.RespondError(c, http.StatusUnauthorized, "Authorization required")
			c.Abort()
			return
		}
		for _, role := range requiredRoles {
			if access.Role == role {
				c.Next()
				return
			}
		}
		utils.RespondError(c, http.StatusForbidden, "Forbidden: insufficient permissions")
		c.Abort()
	}
}

func AccessFrom(c *gin.Context) (questions.AccessContext, bool) {
	v, exists := c.Get(CtxAccess)
	if !exists {
		return questions.AccessContext{}, false
	}
	access, ok := v.(questions.AccessContext)
	return access, ok
}
