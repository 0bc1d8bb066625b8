package dto

import "github.com/jhoicas/catalogo-api/internal/domain/repository"

// Valores por defecto y límites de paginación.
const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// PageRequest paginación para listados (query string).
type PageRequest struct {
	Page    int    `query:"page"`
	Size    int    `query:"size"`
	SortBy  string `query:"sortBy"`
	SortDir string `query:"sortDir"`
}

// DefaultPage aplica valores por defecto y acota Size a 1..MaxPageSize.
func (p *PageRequest) DefaultPage() {
	if p.Size <= 0 {
		p.Size = DefaultPageSize
	}
	if p.Size > MaxPageSize {
		p.Size = MaxPageSize
	}
}

// ToDomain convierte la solicitud a repository.PageRequest validando orden y página.
func (p PageRequest) ToDomain() (repository.PageRequest, error) {
	field, err := repository.ParseSortField(p.SortBy)
	if err != nil {
		return repository.PageRequest{}, err
	}
	dir, err := repository.ParseSortDirection(p.SortDir)
	if err != nil {
		return repository.PageRequest{}, err
	}
	out := repository.PageRequest{Page: p.Page, Size: p.Size, SortBy: field, SortDir: dir}
	if err := out.Validate(); err != nil {
		return repository.PageRequest{}, err
	}
	return out, nil
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
