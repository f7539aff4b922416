package middleware

import (
	"net/http"
	"strings"

	"github.com/edujournal/journal_backend/internal/core/domain"
	"github.com/edujournal/journal_backend/internal/dto"
	"github.com/gin-gonic/gin"
)

// RequireRoles creates a second-stage guard that rejects authenticated
// requests whose role is not in the permitted set. Role comparison is
// case-insensitive. A request with no identity at all is unauthorized, not
// forbidden.
func RequireRoles(roles ...domain.Role) gin.HandlerFunc {
	permitted := make(map[domain.Role]struct{}, len(roles))
	names := make([]string, len(roles))
	for i, r := range roles {
		normalized := domain.Role(strings.ToUpper(string(r)))
		permitted[normalized] = struct{}{}
		names[i] = string(normalized)
	}
	required := strings.Join(names, " or ")

	return func(c *gin.Context) {
		logger := GetLoggerFromCtx(c.Request.Context())

		authUser, ok := GetAuthUserFromContext(c)
		if !ok {
			logger.Error("Role guard reached without authenticated identity")
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse("Unauthorized", ""))
			return
		}

		if _, allowed := permitted[authUser.Role]; !allowed {
			logger.Warn("Role not permitted", "role", string(authUser.Role), "required", required)
			c.AbortWithStatusJSON(http.StatusForbidden, dto.NewErrorResponse("Access restricted to role: "+required, ""))
			return
		}

		c.Next()
	}
}
