package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"muniportal/internal/api/handlers"
	"muniportal/internal/attempt"
	"muniportal/internal/audit"
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

type authFixture struct {
	userRepo    *testutil.FakeUserRepo
	roleRepo    *testutil.FakeRoleRepo
	sessionRepo *testutil.FakeSessionRepo
	auditRepo   *testutil.FakeAuditRepo
	queryRepo   *testutil.FakeQueryRepo
	authService *auth.Service
	tracker     *attempt.Tracker
	router      *gin.Engine
	user        *models.User
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()
	testutil.SetupGin(t)

	f := &authFixture{
		userRepo:    testutil.NewFakeUserRepo(),
		roleRepo:    testutil.NewFakeRoleRepo(),
		sessionRepo: testutil.NewFakeSessionRepo(),
		auditRepo:   testutil.NewFakeAuditRepo(),
		queryRepo:   testutil.NewFakeQueryRepo(),
		tracker:     attempt.NewTracker(),
	}
	f.authService = auth.NewService(testutil.TestConfig(), f.sessionRepo)

	role := &models.Role{ID: uuid.New(), Name: models.RoleAdministrator, IsProtected: true}
	f.roleRepo.Add(role)

	hashed, err := f.authService.HashPassword("correct-password")
	require.NoError(t, err)

	f.user = &models.User{
		ID:        uuid.New(),
		DNI:       "12345678",
		Nombres:   "Rosa",
		Apellidos: "Quispe",
		Email:     "rosa@muni.gob.pe",
		Password:  hashed,
		RoleID:    role.ID,
		Estado:    models.UserStateActive,
	}
	f.userRepo.Add(f.user)

	sink := audit.NewSink(f.auditRepo, f.queryRepo)
	handler := handlers.NewAuthHandler(f.userRepo, f.roleRepo, f.authService, sink, f.tracker)

	f.router = gin.New()
	f.router.POST("/api/v1/auth/login", handler.Login)
	f.router.POST("/api/v1/auth/logout", func(c *gin.Context) {
		c.Set("user", f.user)
		handler.Logout(c)
	})

	return f
}

func (f *authFixture) login(t *testing.T, identifier, password string) (*httptest.ResponseRecorder, models.LoginResponse) {
	t.Helper()
	body, err := json.Marshal(models.LoginRequest{EmailOrDNI: identifier, Password: password})
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	f.router.ServeHTTP(w, req)

	var resp models.LoginResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return w, resp
}

func TestAuthHandler_Login_Success(t *testing.T) {
	f := newAuthFixture(t)

	w, resp := f.login(t, "rosa@muni.gob.pe", "correct-password")

	require.Equal(t, http.StatusOK, w.Code)
	require.True(t, resp.Success)
	require.NotEmpty(t, resp.Token)
	require.NotEmpty(t, resp.SessionToken)
	require.NotNil(t, resp.User)
	require.Equal(t, "rosa@muni.gob.pe", resp.User.Email)
	require.Empty(t, resp.Warning)

	logs := f.auditRepo.ByAction(models.ActionLogin)
	require.Len(t, logs, 1)
	require.Equal(t, models.OutcomeSuccess, logs[0].Outcome)
	require.Equal(t, "rosa@muni.gob.pe", logs[0].Actor)
}

func TestAuthHandler_Login_ByDNI(t *testing.T) {
	f := newAuthFixture(t)

	w, resp := f.login(t, "12345678", "correct-password")

	require.Equal(t, http.StatusOK, w.Code)
	require.True(t, resp.Success)
}

func TestAuthHandler_Login_WrongPassword(t *testing.T) {
	f := newAuthFixture(t)

	w, resp := f.login(t, "rosa@muni.gob.pe", "wrong-password")

	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.False(t, resp.Success)
	require.Equal(t, "Credenciales incorrectas", resp.Error)
	require.Empty(t, resp.Warning)

	logs := f.auditRepo.ByAction(models.ActionLogin)
	require.Len(t, logs, 1)
	require.Equal(t, models.OutcomeFailure, logs[0].Outcome)
}

func TestAuthHandler_Login_UnknownUser(t *testing.T) {
	f := newAuthFixture(t)

	w, resp := f.login(t, "nadie@muni.gob.pe", "whatever")

	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Equal(t, "Credenciales incorrectas", resp.Error)
}

func TestAuthHandler_Login_WarningOnThirdFailure(t *testing.T) {
	f := newAuthFixture(t)

	_, resp := f.login(t, "rosa@muni.gob.pe", "wrong")
	require.Empty(t, resp.Warning)

	_, resp = f.login(t, "rosa@muni.gob.pe", "wrong")
	require.Empty(t, resp.Warning)

	_, resp = f.login(t, "rosa@muni.gob.pe", "wrong")
	require.Equal(t, models.WarningMaxAttempts, resp.Warning)

	blocked := f.auditRepo.ByAction(models.ActionLoginBlocked)
	require.Len(t, blocked, 1)
	require.Equal(t, models.OutcomeWarning, blocked[0].Outcome)
}

func TestAuthHandler_Login_WarningEmittedOnce(t *testing.T) {
	f := newAuthFixture(t)

	for i := 0; i < 3; i++ {
		f.login(t, "rosa@muni.gob.pe", "wrong")
	}

	// Fourth failure in the same window must not warn again
	_, resp := f.login(t, "rosa@muni.gob.pe", "wrong")
	require.Empty(t, resp.Warning)

	blocked := f.auditRepo.ByAction(models.ActionLoginBlocked)
	require.Len(t, blocked, 1)
}

func TestAuthHandler_Login_IdentifierCaseInsensitive(t *testing.T) {
	f := newAuthFixture(t)

	f.login(t, "ROSA@muni.gob.pe", "wrong")
	f.login(t, "rosa@MUNI.gob.pe", "wrong")
	_, resp := f.login(t, "rosa@muni.gob.pe", "wrong")

	require.Equal(t, models.WarningMaxAttempts, resp.Warning)
}

func TestAuthHandler_Login_SuccessResetsWindow(t *testing.T) {
	f := newAuthFixture(t)

	f.login(t, "rosa@muni.gob.pe", "wrong")
	f.login(t, "rosa@muni.gob.pe", "wrong")

	w, _ := f.login(t, "rosa@muni.gob.pe", "correct-password")
	require.Equal(t, http.StatusOK, w.Code)

	// The counter restarted, so two more failures stay below the threshold
	f.login(t, "rosa@muni.gob.pe", "wrong")
	_, resp := f.login(t, "rosa@muni.gob.pe", "wrong")
	require.Empty(t, resp.Warning)

	require.Empty(t, f.auditRepo.ByAction(models.ActionLoginBlocked))
}

func TestAuthHandler_Login_SuspendedUser(t *testing.T) {
	f := newAuthFixture(t)
	require.NoError(t, f.userRepo.SetEstado(context.Background(), f.user.ID, models.UserStateSuspended))

	w, resp := f.login(t, "rosa@muni.gob.pe", "correct-password")

	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Equal(t, "Usuario suspendido", resp.Error)
	require.Empty(t, resp.Warning)

	logs := f.auditRepo.ByAction(models.ActionLogin)
	require.Len(t, logs, 1)
	require.Equal(t, models.OutcomeFailure, logs[0].Outcome)
}

func TestAuthHandler_Login_AuditFailureDoesNotBlock(t *testing.T) {
	f := newAuthFixture(t)
	f.auditRepo.Err = errors.New("audit store down")

	w, resp := f.login(t, "rosa@muni.gob.pe", "correct-password")

	require.Equal(t, http.StatusOK, w.Code)
	require.True(t, resp.Success)
	require.NotEmpty(t, resp.Token)
}

func TestAuthHandler_Login_InvalidBody(t *testing.T) {
	f := newAuthFixture(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader([]byte(`{"emailOrDni":""}`)))
	req.Header.Set("Content-Type", "application/json")
	f.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthHandler_Logout(t *testing.T) {
	f := newAuthFixture(t)

	token, err := f.authService.CreateSession(context.Background(), f.user.ID)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil)
	f.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	// Without a body every session for the user is gone
	_, err = f.authService.ValidateSession(context.Background(), token)
	require.ErrorIs(t, err, auth.ErrInvalidToken)

	logs := f.auditRepo.ByAction(models.ActionLogout)
	require.Len(t, logs, 1)
	require.Equal(t, models.OutcomeSuccess, logs[0].Outcome)
}
