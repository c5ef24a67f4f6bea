package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"muniportal/internal/api/middleware"
	"muniportal/internal/auth"
	"muniportal/internal/models"
	"muniportal/internal/testutil"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	m.Run()
}

func identityRouter(t *testing.T, capture *uuid.UUID, resolved *bool) *gin.Engine {
	t.Helper()

	authService := auth.NewService(testutil.TestConfig(), testutil.NewFakeSessionRepo())
	mw := middleware.NewAuthMiddleware(authService, testutil.NewFakeUserRepo(), testutil.NewFakeRoleRepo())

	r := gin.New()
	r.GET("/probe", mw.Identify(), func(c *gin.Context) {
		id, ok := middleware.CallerID(c)
		*capture = id
		*resolved = ok
		c.Status(http.StatusOK)
	})
	return r
}

func TestIdentify_HeaderWinsOverQuery(t *testing.T) {
	var captured uuid.UUID
	var resolved bool
	router := identityRouter(t, &captured, &resolved)

	headerID := uuid.New()
	queryID := uuid.New()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/probe?userId="+queryID.String(), nil)
	req.Header.Set("x-user-id", headerID.String())
	router.ServeHTTP(w, req)

	require.True(t, resolved)
	require.Equal(t, headerID, captured)
}

func TestIdentify_QueryParamFallback(t *testing.T) {
	var captured uuid.UUID
	var resolved bool
	router := identityRouter(t, &captured, &resolved)

	queryID := uuid.New()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/probe?userId="+queryID.String(), nil)
	router.ServeHTTP(w, req)

	require.True(t, resolved)
	require.Equal(t, queryID, captured)
}

func TestIdentify_NoIdentity(t *testing.T) {
	var captured uuid.UUID
	var resolved bool
	router := identityRouter(t, &captured, &resolved)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	router.ServeHTTP(w, req)

	require.False(t, resolved)
	require.Equal(t, uuid.Nil, captured)
}

func TestIdentify_MalformedHeaderIgnored(t *testing.T) {
	var captured uuid.UUID
	var resolved bool
	router := identityRouter(t, &captured, &resolved)

	queryID := uuid.New()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/probe?userId="+queryID.String(), nil)
	req.Header.Set("x-user-id", "not-a-uuid")
	router.ServeHTTP(w, req)

	require.True(t, resolved)
	require.Equal(t, queryID, captured)
}

func TestCallerActor_PrefersEmail(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	user := &models.User{ID: uuid.New(), Email: "rosa@muni.gob.pe"}
	c.Set("user", user)
	c.Set(middleware.CallerIDKey, user.ID)

	require.Equal(t, "rosa@muni.gob.pe", middleware.CallerActor(c))
}

func TestCallerActor_FallsBackToID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	id := uuid.New()
	c.Set(middleware.CallerIDKey, id)

	require.Equal(t, id.String(), middleware.CallerActor(c))
}

func TestCallerActor_Empty(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	require.Equal(t, "", middleware.CallerActor(c))
}
