package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"muniportal/internal/api/handlers"
	"muniportal/internal/api/middleware"
	"muniportal/internal/audit"
	"muniportal/internal/auth"
	"muniportal/internal/models"
	"muniportal/internal/testutil"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type auditFixture struct {
	auditRepo *testutil.FakeAuditRepo
	queryRepo *testutil.FakeQueryRepo
	router    *gin.Engine
	admin     *models.User
	regular   *models.User
	// asUser is injected into the request context before admin routes
	asUser *models.User
}

func newAuditFixture(t *testing.T) *auditFixture {
	t.Helper()
	testutil.SetupGin(t)

	f := &auditFixture{
		auditRepo: testutil.NewFakeAuditRepo(),
		queryRepo: testutil.NewFakeQueryRepo(),
	}

	adminRole := &models.Role{ID: uuid.New(), Name: models.RoleAdministrator}
	userRole := &models.Role{ID: uuid.New(), Name: "usuario"}
	f.admin = &models.User{ID: uuid.New(), Email: "admin@muni.gob.pe", RoleID: adminRole.ID, Role: adminRole}
	f.regular = &models.User{ID: uuid.New(), Email: "staff@muni.gob.pe", RoleID: userRole.ID, Role: userRole}

	sink := audit.NewSink(f.auditRepo, f.queryRepo)
	handler := handlers.NewAuditHandler(f.auditRepo, f.queryRepo, sink)

	f.router = gin.New()
	group := f.router.Group("/api/v1/audit-logs")
	group.GET("/mis-consultas", handler.MyQueries)
	group.Use(func(c *gin.Context) {
		if f.asUser != nil {
			c.Set("user", f.asUser)
		}
		c.Next()
	})
	group.GET("", handler.List)
	group.POST("/clear", handler.Clear)

	return f
}

func testAuthMiddleware(t *testing.T) *middleware.AuthMiddleware {
	t.Helper()
	authService := auth.NewService(testutil.TestConfig(), testutil.NewFakeSessionRepo())
	return middleware.NewAuthMiddleware(authService, testutil.NewFakeUserRepo(), testutil.NewFakeRoleRepo())
}

func TestAuditHandler_MyQueries(t *testing.T) {
	f := newAuditFixture(t)
	callerID := uuid.New()
	otherID := uuid.New()

	ctx := context.Background()
	for i := 0; i < 12; i++ {
		require.NoError(t, f.queryRepo.Create(ctx, &models.UserQueryLog{
			UserID:    callerID,
			QueryType: "dni",
			Document:  "12345678",
			Result:    models.OutcomeSuccess,
			CreatedAt: time.Now().Add(time.Duration(i) * time.Second),
		}))
	}
	require.NoError(t, f.queryRepo.Create(ctx, &models.UserQueryLog{
		UserID:    otherID,
		QueryType: "ruc",
		Document:  "20123456789",
		Result:    models.OutcomeSuccess,
	}))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/audit-logs/mis-consultas", nil)
	req.Header.Set("x-user-id", callerID.String())

	// The route resolves the caller the same way the lookup endpoints do
	r := gin.New()
	authMW := testAuthMiddleware(t)
	r.GET("/api/v1/audit-logs/mis-consultas", authMW.Identify(), func(c *gin.Context) {
		sink := audit.NewSink(f.auditRepo, f.queryRepo)
		handlers.NewAuditHandler(f.auditRepo, f.queryRepo, sink).MyQueries(c)
	})
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var summaries []models.QuerySummary
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &summaries))
	require.Len(t, summaries, 10)
	for _, s := range summaries {
		require.Equal(t, "dni", s.Tipo)
		require.Equal(t, "12345678", s.Documento)
		require.Equal(t, models.OutcomeSuccess, s.Resultado)
	}
}

func TestAuditHandler_MyQueries_MissingCaller(t *testing.T) {
	f := newAuditFixture(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/audit-logs/mis-consultas", nil)
	f.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp models.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, "No se recibió userId para registrar la consulta", resp.Error)
}

func TestAuditHandler_List(t *testing.T) {
	f := newAuditFixture(t)
	f.asUser = f.admin

	ctx := context.Background()
	require.NoError(t, f.auditRepo.Create(ctx, &models.AuditLog{
		Actor: "rosa@muni.gob.pe", Action: models.ActionLogin,
		Module: "autenticacion", Outcome: models.OutcomeSuccess, IPAddress: "127.0.0.1",
	}))
	require.NoError(t, f.auditRepo.Create(ctx, &models.AuditLog{
		Actor: "rosa@muni.gob.pe", Action: models.ActionLogin,
		Module: "autenticacion", Outcome: models.OutcomeFailure, IPAddress: "127.0.0.1",
	}))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/audit-logs?outcome=fallido", nil)
	f.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var logs []models.AuditLog
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &logs))
	require.Len(t, logs, 1)
	require.Equal(t, models.OutcomeFailure, logs[0].Outcome)
}

func TestAuditHandler_Clear(t *testing.T) {
	f := newAuditFixture(t)
	f.asUser = f.admin

	ctx := context.Background()
	for i := 0; i < 5; i++ {
		require.NoError(t, f.auditRepo.Create(ctx, &models.AuditLog{
			Actor: "rosa@muni.gob.pe", Action: models.ActionLogin,
			Module: "autenticacion", Outcome: models.OutcomeSuccess, IPAddress: "127.0.0.1",
		}))
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/audit-logs/clear", nil)
	f.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	// Only the purge record itself remains
	cleared := f.auditRepo.ByAction(models.ActionClearLogs)
	require.Len(t, cleared, 1)
	require.Equal(t, "admin@muni.gob.pe", cleared[0].Actor)
	require.Equal(t, models.OutcomeSuccess, cleared[0].Outcome)
	require.NotNil(t, cleared[0].Details)
	require.Contains(t, *cleared[0].Details, "5")

	require.Empty(t, f.auditRepo.ByAction(models.ActionLogin))
}

func TestAuditHandler_Clear_RequiresAdmin(t *testing.T) {
	f := newAuditFixture(t)
	f.asUser = f.regular

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/audit-logs/clear", nil)
	f.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusForbidden, w.Code)
}
