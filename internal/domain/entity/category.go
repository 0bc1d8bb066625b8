package entity

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/jhoicas/catalogo-api/internal/domain"
)

// MaxCategoryNameLength longitud máxima del nombre, en caracteres.
const MaxCategoryNameLength = 128

// Category representa una categoría del catálogo.
// ID es asignado por el almacenamiento (0 = aún no persistida).
// DeletionDate nil indica categoría viva; con valor, borrado lógico y su fecha.
type Category struct {
	ID           int64
	Name         string
	DeletionDate *time.Time
}

// IsLive indica si la categoría no ha sido borrada lógicamente.
func (c *Category) IsLive() bool {
	return c.DeletionDate == nil
}

// ValidateCategoryName verifica que el nombre no esté vacío ni supere MaxCategoryNameLength.
// No normaliza: el nombre se guarda tal como llega.
func ValidateCategoryName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: el nombre no puede estar vacío", domain.ErrInvalidInput)
	}
	if utf8.RuneCountInString(name) > MaxCategoryNameLength {
		return fmt.Errorf("%w: el nombre admite como máximo %d caracteres", domain.ErrInvalidInput, MaxCategoryNameLength)
	}
	return nil
}
