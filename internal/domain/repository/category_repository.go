package repository

import (
	"context"
	"time"

	"github.com/jhoicas/catalogo-api/internal/domain/entity"
)

// CategoryRepository define el puerto de persistencia para Category (DIP).
// Cada operación es atómica sobre una sola fila.
type CategoryRepository interface {
	// Save inserta (ID == 0) o actualiza la categoría y devuelve la fila almacenada.
	// Devuelve domain.ErrAlreadyExists si otra categoría viva tiene el mismo nombre.
	Save(ctx context.Context, category *entity.Category) (*entity.Category, error)
	// GetByID busca entre todas las filas, vivas o borradas. Devuelve nil, nil si no existe.
	GetByID(ctx context.Context, id int64) (*entity.Category, error)
	// GetByName busca por nombre exacto. Devuelve nil, nil si no existe.
	GetByName(ctx context.Context, name string, onlyLive bool) (*entity.Category, error)
	// List pagina las categorías vivas (onlyLive) o solo las borradas (!onlyLive).
	List(ctx context.Context, onlyLive bool, page PageRequest) (*Page, error)
	// MarkDeleted fija deletion_date. Devuelve domain.ErrNotFound si no existe.
	MarkDeleted(ctx context.Context, id int64, at time.Time) error
	// Delete elimina la fila. Devuelve domain.ErrNotFound si no existe.
	Delete(ctx context.Context, id int64) error
}
