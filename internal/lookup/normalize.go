package lookup

import (
	"muniportal/internal/models"
	"strings"
)

// The upstream identity API answers in several inconsistent shapes: flat
// camelCase, flat snake_case, or either of those nested under a "data"
// key. Normalization resolves each output field through an explicit key
// precedence list and treats any absent field as an empty string.

// field resolves the first non-empty string among the given keys, looking
// at the top level first and then under "data".
func field(doc map[string]interface{}, keys ...string) string {
	for _, k := range keys {
		if v, ok := doc[k].(string); ok && v != "" {
			return v
		}
	}
	if data, ok := doc["data"].(map[string]interface{}); ok {
		for _, k := range keys {
			if v, ok := data[k].(string); ok && v != "" {
				return v
			}
		}
	}
	return ""
}

// NormalizePerson maps any upstream DNI response variant to the canonical
// Person shape. It is pure and idempotent: feeding it a document built
// from its own output yields the same result.
func NormalizePerson(doc map[string]interface{}) models.Person {
	p := models.Person{
		DNI:             field(doc, "dni", "numeroDocumento", "numero_documento", "numero"),
		Nombres:         field(doc, "nombres", "first_name", "prenombres"),
		ApellidoPaterno: field(doc, "apellidoPaterno", "apellido_paterno"),
		ApellidoMaterno: field(doc, "apellidoMaterno", "apellido_materno"),
		NombreCompleto:  field(doc, "nombreCompleto", "nombre_completo", "fullName", "full_name"),
	}

	if p.NombreCompleto == "" {
		p.NombreCompleto = strings.TrimSpace(strings.Join([]string{p.Nombres, p.ApellidoPaterno, p.ApellidoMaterno}, " "))
		p.NombreCompleto = strings.Join(strings.Fields(p.NombreCompleto), " ")
	}

	return p
}

// NormalizeTaxpayer maps any upstream RUC response variant to the
// canonical Taxpayer shape.
func NormalizeTaxpayer(doc map[string]interface{}) models.Taxpayer {
	return models.Taxpayer{
		RUC:         field(doc, "ruc", "numeroDocumento", "numero_documento", "numero"),
		RazonSocial: field(doc, "razonSocial", "razon_social", "nombre"),
		Direccion:   field(doc, "direccion", "address"),
		Estado:      field(doc, "estado", "status"),
		Condicion:   field(doc, "condicion", "condition"),
	}
}
