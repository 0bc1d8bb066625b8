package repository

import (
	"fmt"
	"math"
	"strings"

	"github.com/jhoicas/catalogo-api/internal/domain"
	"github.com/jhoicas/catalogo-api/internal/domain/entity"
)

// SortField campo de ordenamiento admitido en listados.
type SortField string

const (
	SortByID           SortField = "id"
	SortByName         SortField = "name"
	SortByDeletionDate SortField = "deletion_date"
)

// SortDirection dirección de ordenamiento.
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// PageRequest solicitud de una página ordenada.
type PageRequest struct {
	Page    int // índice base 0
	Size    int
	SortBy  SortField
	SortDir SortDirection
}

// Offset devuelve el número de filas a saltar; satura en math.MaxInt en lugar de desbordar,
// así una página fuera de rango siempre resulta vacía.
func (p PageRequest) Offset() int {
	if p.Page <= 0 || p.Size <= 0 {
		return 0
	}
	if p.Page > math.MaxInt/p.Size {
		return math.MaxInt
	}
	return p.Page * p.Size
}

// Validate verifica que la página sea utilizable por un adaptador de persistencia.
func (p PageRequest) Validate() error {
	if p.Page < 0 {
		return fmt.Errorf("%w: page debe ser >= 0", domain.ErrInvalidInput)
	}
	if p.Size <= 0 {
		return fmt.Errorf("%w: size debe ser > 0", domain.ErrInvalidInput)
	}
	if _, err := ParseSortField(string(p.SortBy)); err != nil {
		return err
	}
	if _, err := ParseSortDirection(string(p.SortDir)); err != nil {
		return err
	}
	return nil
}

// ParseSortField interpreta el campo de orden; "categoryId" se acepta como alias de id.
func ParseSortField(s string) (SortField, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "id", "categoryid":
		return SortByID, nil
	case "name":
		return SortByName, nil
	case "deletion_date", "deletiondate":
		return SortByDeletionDate, nil
	}
	return "", fmt.Errorf("%w: campo de orden desconocido %q", domain.ErrInvalidInput, s)
}

// ParseSortDirection interpreta la dirección de orden (asc por defecto).
func ParseSortDirection(s string) (SortDirection, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "asc":
		return SortAsc, nil
	case "desc":
		return SortDesc, nil
	}
	return "", fmt.Errorf("%w: dirección de orden desconocida %q", domain.ErrInvalidInput, s)
}

// Page resultado paginado de categorías.
type Page struct {
	Items []*entity.Category
	Total int64
	Page  int
	Size  int
}
