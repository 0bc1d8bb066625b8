package dto

import (
	"time"

	"github.com/jhoicas/catalogo-api/internal/domain/entity"
)

// CategoryRequest entrada para crear o renombrar una categoría.
type CategoryRequest struct {
	Name string `json:"name" validate:"required,notblank,max=128"`
}

// CategoryResponse salida de una categoría.
type CategoryResponse struct {
	ID           int64      `json:"id"`
	Name         string     `json:"name"`
	DeletionDate *time.Time `json:"deletion_date"`
}

// CategoryPage página de categorías con el total de filas que cumplen el filtro.
type CategoryPage struct {
	Items []CategoryResponse `json:"items"`
	Total int64              `json:"total"`
	Page  int                `json:"page"`
	Size  int                `json:"size"`
}

// ToCategoryResponse convierte la entidad a su representación de transporte.
func ToCategoryResponse(c *entity.Category) *CategoryResponse {
	if c == nil {
		return nil
	}
	out := &CategoryResponse{ID: c.ID, Name: c.Name}
	if c.DeletionDate != nil {
		d := *c.DeletionDate
		out.DeletionDate = &d
	}
	return out
}

// ToCategoryResponses convierte una lista de entidades; nunca devuelve nil.
func ToCategoryResponses(list []*entity.Category) []CategoryResponse {
	items := make([]CategoryResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *ToCategoryResponse(c))
	}
	return items
}
