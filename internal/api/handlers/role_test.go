package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"muniportal/internal/api/handlers"
	"muniportal/internal/models"
	"muniportal/internal/testutil"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func newRoleRouter(t *testing.T) (*gin.Engine, *testutil.FakeRoleRepo) {
	t.Helper()
	testutil.SetupGin(t)

	roleRepo := testutil.NewFakeRoleRepo()
	handler := handlers.NewRoleHandler(roleRepo)

	r := gin.New()
	group := r.Group("/api/v1/roles")
	group.GET("", handler.List)
	group.POST("", handler.Create)
	group.PUT("/:id", handler.Update)
	group.DELETE("/:id", handler.Delete)

	return r, roleRepo
}

func TestRoleHandler_Create(t *testing.T) {
	router, _ := newRoleRouter(t)

	body, _ := json.Marshal(models.CreateRoleRequest{Name: "fiscalizador"})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/roles", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)

	var role models.Role
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &role))
	require.Equal(t, "fiscalizador", role.Name)
	require.False(t, role.IsProtected)
}

func TestRoleHandler_Create_Duplicate(t *testing.T) {
	router, roleRepo := newRoleRouter(t)
	roleRepo.Add(&models.Role{ID: uuid.New(), Name: "fiscalizador"})

	body, _ := json.Marshal(models.CreateRoleRequest{Name: "fiscalizador"})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/roles", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusConflict, w.Code)
}

func TestRoleHandler_Update_Protected(t *testing.T) {
	router, roleRepo := newRoleRouter(t)
	role := &models.Role{ID: uuid.New(), Name: models.RoleAdministrator, IsProtected: true}
	roleRepo.Add(role)

	body, _ := json.Marshal(models.UpdateRoleRequest{Name: "superadmin"})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/api/v1/roles/"+role.ID.String(), bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusConflict, w.Code)
}

func TestRoleHandler_Delete_Protected(t *testing.T) {
	router, roleRepo := newRoleRouter(t)
	role := &models.Role{ID: uuid.New(), Name: models.RoleAdministrator, IsProtected: true}
	roleRepo.Add(role)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/api/v1/roles/"+role.ID.String(), nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusConflict, w.Code)
}

func TestRoleHandler_Delete_NotFound(t *testing.T) {
	router, _ := newRoleRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/api/v1/roles/"+uuid.NewString(), nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestRoleHandler_List(t *testing.T) {
	router, roleRepo := newRoleRouter(t)
	roleRepo.Add(&models.Role{ID: uuid.New(), Name: models.RoleAdministrator, IsProtected: true})
	roleRepo.Add(&models.Role{ID: uuid.New(), Name: "usuario", IsProtected: true})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/roles", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var roles []models.Role
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &roles))
	require.Len(t, roles, 2)
}
