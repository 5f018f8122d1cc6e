package dto

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

// PageRequest ventana de un listado (?limit=&offset=).
type PageRequest struct {
	Limit  int `query:"limit" validate:"min=1,max=100"`
	Offset int `query:"offset" validate:"min=0"`
}

// DefaultPage normaliza la ventana: limit fuera de 1..100 toma el valor por defecto o el tope.
func (p *PageRequest) DefaultPage() {
	switch {
	case p.Limit <= 0:
		p.Limit = defaultPageLimit
	case p.Limit > maxPageLimit:
		p.Limit = maxPageLimit
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
}

// FetchLimit es lo que se pide al repositorio: una fila más que Limit para saber si hay otra página.
func (p PageRequest) FetchLimit() int {
	return p.Limit + 1
}

// PageResponse metadatos de la página devuelta.
type PageResponse struct {
	Limit   int  `json:"limit"`
	Offset  int  `json:"offset"`
	HasMore bool `json:"has_more"`
}

// Paginate recorta rows (leídas con FetchLimit) a la página pedida.
func Paginate[T any](rows []T, p PageRequest) ([]T, PageResponse) {
	page := PageResponse{Limit: p.Limit, Offset: p.Offset}
	if len(rows) > p.Limit {
		rows = rows[:p.Limit]
		page.HasMore = true
	}
	return rows, page
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
