package dto

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	// Remediation acción sugerida cuando el error no es reintentable (p. ej. índice faltante).
	Remediation string `json:"remediation,omitempty"`
}

// DeletedResponse resultado de una eliminación masiva.
type DeletedResponse struct {
	Deleted int `json:"deleted"`
}
