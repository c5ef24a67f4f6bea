package lookup

import (
	"context"
	"errors"
	"muniportal/internal/config"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func newTestClient(handler http.HandlerFunc) (*Client, *httptest.Server) {
	srv := httptest.NewServer(handler)
	client := NewClient(config.LookupConfig{
		BaseURL: srv.URL,
		Token:   "test-token",
		Timeout: 5 * time.Second,
	})
	return client, srv
}

func TestClient_LookupDNI(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/dni/12345678", r.URL.Path)
		require.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":{"numero":"12345678","nombres":"JUAN","apellido_paterno":"PEREZ","apellido_materno":"GOMEZ"}}`))
	})
	defer srv.Close()

	person, err := client.LookupDNI(context.Background(), "12345678")
	require.NoError(t, err)
	require.Equal(t, "12345678", person.DNI)
	require.Equal(t, "JUAN", person.Nombres)
	require.Equal(t, "JUAN PEREZ GOMEZ", person.NombreCompleto)
}

func TestClient_LookupRUC(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/ruc/20100113610", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"ruc":"20100113610","razonSocial":"ACME SAC","estado":"ACTIVO","condicion":"HABIDO"}`))
	})
	defer srv.Close()

	taxpayer, err := client.LookupRUC(context.Background(), "20100113610")
	require.NoError(t, err)
	require.Equal(t, "ACME SAC", taxpayer.RazonSocial)
	require.Equal(t, "ACTIVO", taxpayer.Estado)
}

func TestClient_UpstreamErrorField(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"error":"no se encontraron registros"}`))
	})
	defer srv.Close()

	_, err := client.LookupDNI(context.Background(), "99999999")
	require.Error(t, err)

	var upstream *UpstreamError
	require.True(t, errors.As(err, &upstream))
	require.Equal(t, "no se encontraron registros", upstream.Message)
}

func TestClient_UpstreamNonOKStatus(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})
	defer srv.Close()

	_, err := client.LookupRUC(context.Background(), "20100113610")
	require.Error(t, err)

	var upstream *UpstreamError
	require.True(t, errors.As(err, &upstream))
	require.Equal(t, http.StatusServiceUnavailable, upstream.StatusCode)
}

func TestClient_Unreachable(t *testing.T) {
	client := NewClient(config.LookupConfig{
		BaseURL: "http://127.0.0.1:1",
		Timeout: time.Second,
	})

	_, err := client.LookupDNI(context.Background(), "12345678")
	require.Error(t, err)

	var upstream *UpstreamError
	require.False(t, errors.As(err, &upstream), "transport failures are not upstream errors")
}
