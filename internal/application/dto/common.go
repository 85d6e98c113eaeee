package dto

// IDResponse respuesta de creación.
type IDResponse struct {
	ID string `json:"id"`
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
