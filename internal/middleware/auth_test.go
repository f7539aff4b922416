package middleware_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/edujournal/journal_backend/internal/core/domain"
	"github.com/edujournal/journal_backend/internal/dto"
	"github.com/edujournal/journal_backend/internal/middleware"
	"github.com/edujournal/journal_backend/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

const testSecret = "middleware-test-secret"

func signToken(t *testing.T, userID string, role domain.Role, expiry time.Duration) string {
	t.Helper()
	user := &domain.User{UserID: userID, Name: "Test User", Email: "user@school.test", Role: role}
	token, err := utils.GenerateJWT(user, testSecret, expiry, "middleware-test")
	require.NoError(t, err)
	return token
}

// authRouter wires AuthMiddleware plus any extra guards in front of a probe
// handler that echoes the identity it sees.
func authRouter(extra ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	chain := append([]gin.HandlerFunc{middleware.AuthMiddleware(testSecret)}, extra...)
	chain = append(chain, func(c *gin.Context) {
		authUser, ok := middleware.GetAuthUserFromContext(c)
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "no identity"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"userID": authUser.UserID, "role": string(authUser.Role)})
	})
	r.GET("/probe", chain...)
	return r
}

func probe(r *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(http.MethodGet, "/probe", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) dto.ErrorResponse {
	t.Helper()
	var body dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	w := probe(authRouter(), "")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Authorization header required", decodeError(t, w).Message)
}

func TestAuthMiddleware_MalformedHeader(t *testing.T) {
	for _, header := range []string{"Bearer", "Basic abc123", "token-without-scheme"} {
		w := probe(authRouter(), header)
		assert.Equal(t, http.StatusUnauthorized, w.Code, "header %q", header)
	}
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	token := signToken(t, "user-42", domain.RoleTeacher, time.Hour)

	w := probe(authRouter(), "Bearer "+token)

	assert.Equal(t, http.StatusOK, w.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "user-42", body["userID"])
	assert.Equal(t, "TEACHER", body["role"])
}

func TestAuthMiddleware_ExpiredToken(t *testing.T) {
	token := signToken(t, "user-42", domain.RoleTeacher, -time.Minute)

	w := probe(authRouter(), "Bearer "+token)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Token has expired", decodeError(t, w).Message)
}

func TestAuthMiddleware_WrongSecret(t *testing.T) {
	user := &domain.User{UserID: "user-42", Role: domain.RoleTeacher}
	token, err := utils.GenerateJWT(user, "some-other-secret", time.Hour, "middleware-test")
	require.NoError(t, err)

	w := probe(authRouter(), "Bearer "+token)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Invalid token", decodeError(t, w).Message)
}

func TestRequireRoles_PermittedRole(t *testing.T) {
	token := signToken(t, "t-1", domain.RoleTeacher, time.Hour)
	r := authRouter(middleware.RequireRoles(domain.RoleTeacher))

	w := probe(r, "Bearer "+token)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireRoles_ForbiddenRole(t *testing.T) {
	token := signToken(t, "s-1", domain.RoleStudent, time.Hour)
	r := authRouter(middleware.RequireRoles(domain.RoleTeacher))

	w := probe(r, "Bearer "+token)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "Access restricted to role: TEACHER", decodeError(t, w).Message)
}

func TestRequireRoles_MultipleRolesNamed(t *testing.T) {
	token := signToken(t, "s-1", domain.RoleStudent, time.Hour)
	r := authRouter(middleware.RequireRoles(domain.RoleTeacher, domain.RoleAdmin))

	w := probe(r, "Bearer "+token)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "Access restricted to role: TEACHER or ADMIN", decodeError(t, w).Message)
}

func TestRequireRoles_NoIdentityIsUnauthorized(t *testing.T) {
	// Guard mounted without AuthMiddleware in front of it.
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/probe", middleware.RequireRoles(domain.RoleTeacher), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := probe(r, "")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRateLimit_BlocksAfterLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rate, err := limiter.NewRateFromFormatted("2-M")
	require.NoError(t, err)
	ipLimiter := limiter.New(memory.NewStore(), rate)

	r := gin.New()
	r.GET("/limited", middleware.RateLimit(ipLimiter), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	for i := 0; i < 2; i++ {
		req, _ := http.NewRequest(http.MethodGet, "/limited", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code, "request %d should pass", i+1)
	}

	req, _ := http.NewRequest(http.MethodGet, "/limited", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
}
