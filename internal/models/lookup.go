package models

// Person is the canonical shape for a DNI lookup result, regardless of
// which of the upstream response variants produced it.
type Person struct {
	DNI             string `json:"dni"`
	Nombres         string `json:"nombres"`
	ApellidoPaterno string `json:"apellidoPaterno"`
	ApellidoMaterno string `json:"apellidoMaterno"`
	NombreCompleto  string `json:"nombreCompleto"`
}

// Taxpayer is the canonical shape for a RUC lookup result
type Taxpayer struct {
	RUC         string `json:"ruc"`
	RazonSocial string `json:"razonSocial"`
	Direccion   string `json:"direccion"`
	Estado      string `json:"estado"`
	Condicion   string `json:"condicion"`
}
