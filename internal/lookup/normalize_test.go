package lookup

import (
	"encoding/json"
	"muniportal/internal/models"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizePerson(t *testing.T) {
	want := models.Person{
		DNI:             "12345678",
		Nombres:         "MARIA ELENA",
		ApellidoPaterno: "QUISPE",
		ApellidoMaterno: "HUAMAN",
		NombreCompleto:  "MARIA ELENA QUISPE HUAMAN",
	}

	tests := []struct {
		name string
		doc  map[string]interface{}
	}{
		{
			name: "flat camelCase",
			doc: map[string]interface{}{
				"dni":             "12345678",
				"nombres":         "MARIA ELENA",
				"apellidoPaterno": "QUISPE",
				"apellidoMaterno": "HUAMAN",
			},
		},
		{
			name: "flat snake_case",
			doc: map[string]interface{}{
				"numero_documento": "12345678",
				"nombres":          "MARIA ELENA",
				"apellido_paterno": "QUISPE",
				"apellido_materno": "HUAMAN",
			},
		},
		{
			name: "nested under data, snake_case",
			doc: map[string]interface{}{
				"success": true,
				"data": map[string]interface{}{
					"numero":           "12345678",
					"nombres":          "MARIA ELENA",
					"apellido_paterno": "QUISPE",
					"apellido_materno": "HUAMAN",
				},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, want, NormalizePerson(tt.doc))
		})
	}
}

func TestNormalizePerson_Idempotent(t *testing.T) {
	doc := map[string]interface{}{
		"data": map[string]interface{}{
			"numero_documento": "87654321",
			"nombres":          "JOSE",
			"apellido_paterno": "TORRES",
		},
	}

	first := NormalizePerson(doc)

	// Round-trip the canonical output through JSON and normalize again
	b, err := json.Marshal(first)
	require.NoError(t, err)
	var roundTrip map[string]interface{}
	require.NoError(t, json.Unmarshal(b, &roundTrip))

	require.Equal(t, first, NormalizePerson(roundTrip))
}

func TestNormalizePerson_MissingFields(t *testing.T) {
	got := NormalizePerson(map[string]interface{}{"dni": "11112222"})

	require.Equal(t, "11112222", got.DNI)
	require.Empty(t, got.Nombres)
	require.Empty(t, got.ApellidoPaterno)
	require.Empty(t, got.NombreCompleto)
}

func TestNormalizePerson_PrefersExplicitFullName(t *testing.T) {
	got := NormalizePerson(map[string]interface{}{
		"dni":            "11112222",
		"nombres":        "ANA",
		"nombreCompleto": "ANA LUCIA FLORES ROJAS",
	})
	require.Equal(t, "ANA LUCIA FLORES ROJAS", got.NombreCompleto)
}

func TestNormalizeTaxpayer(t *testing.T) {
	want := models.Taxpayer{
		RUC:         "20100113610",
		RazonSocial: "MUNICIPALIDAD PROVINCIAL DE TRUJILLO",
		Direccion:   "JR. PIZARRO 412",
		Estado:      "ACTIVO",
		Condicion:   "HABIDO",
	}

	tests := []struct {
		name string
		doc  map[string]interface{}
	}{
		{
			name: "flat camelCase",
			doc: map[string]interface{}{
				"ruc":         "20100113610",
				"razonSocial": "MUNICIPALIDAD PROVINCIAL DE TRUJILLO",
				"direccion":   "JR. PIZARRO 412",
				"estado":      "ACTIVO",
				"condicion":   "HABIDO",
			},
		},
		{
			name: "nested snake_case",
			doc: map[string]interface{}{
				"data": map[string]interface{}{
					"numero_documento": "20100113610",
					"razon_social":     "MUNICIPALIDAD PROVINCIAL DE TRUJILLO",
					"direccion":        "JR. PIZARRO 412",
					"estado":           "ACTIVO",
					"condicion":        "HABIDO",
				},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, want, NormalizeTaxpayer(tt.doc))
		})
	}
}

func TestNormalizeTaxpayer_TopLevelWinsOverNested(t *testing.T) {
	got := NormalizeTaxpayer(map[string]interface{}{
		"ruc": "20000000001",
		"data": map[string]interface{}{
			"numero_documento": "20999999999",
		},
	})
	require.Equal(t, "20000000001", got.RUC)
}
