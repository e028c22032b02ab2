package dto

// Límites de página para listados.
const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// PageRequest paginación para listados.
type PageRequest struct {
	Limit  int `query:"limit" validate:"min=1,max=100"`
	Offset int `query:"offset" validate:"min=0"`
}

// DefaultPage aplica DefaultLimit si Limit es cero y recorta Offset negativo.
func (p *PageRequest) DefaultPage() {
	if p.Limit <= 0 {
		p.Limit = DefaultLimit
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
}

// Response arma los metadatos de la página con los n elementos devueltos.
// HasMore es una estimación: la página vino llena.
func (p PageRequest) Response(n int) PageResponse {
	return PageResponse{Limit: p.Limit, Offset: p.Offset, Count: n, HasMore: n > 0 && n == p.Limit}
}

// PageResponse metadatos de página en respuestas. Los listados no calculan totales.
type PageResponse struct {
	Limit   int  `json:"limit"`
	Offset  int  `json:"offset"`
	Count   int  `json:"count"`
	HasMore bool `json:"has_more"`
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
