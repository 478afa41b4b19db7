package dto

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

// IDResponse respuesta de creación.
type IDResponse struct {
	ID string `json:"id"`
}

// DeletedResponse respuesta de eliminación.
type DeletedResponse struct {
	Deleted bool `json:"deleted"`
}
