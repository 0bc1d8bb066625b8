// Package memory implementa los puertos de persistencia en memoria.
// Se usa en pruebas y con STORAGE_DRIVER=memory.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/jhoicas/catalogo-api/internal/domain"
	"github.com/jhoicas/catalogo-api/internal/domain/entity"
	"github.com/jhoicas/catalogo-api/internal/domain/repository"
)

var _ repository.CategoryRepository = (*CategoryRepo)(nil)

// CategoryRepo repositorio de categorías protegido por mutex. Aplica la misma
// restricción que el índice único parcial de PostgreSQL: un nombre por categoría viva.
type CategoryRepo struct {
	mu     sync.RWMutex
	rows   map[int64]entity.Category
	nextID int64
}

// NewCategoryRepository construye un repositorio vacío.
func NewCategoryRepository() *CategoryRepo {
	return &CategoryRepo{rows: make(map[int64]entity.Category), nextID: 1}
}

// Save inserta si ID es 0; si no, reemplaza la fila existente.
func (r *CategoryRepo) Save(ctx context.Context, category *entity.Category) (*entity.Category, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	row := clone(category)
	if row.ID != 0 {
		if _, ok := r.rows[row.ID]; !ok {
			return nil, fmt.Errorf("%w: categoría %d", domain.ErrNotFound, row.ID)
		}
	}
	if row.IsLive() {
		for id, other := range r.rows {
			if id != row.ID && other.IsLive() && other.Name == row.Name {
				return nil, fmt.Errorf("%w: categoría %q", domain.ErrAlreadyExists, row.Name)
			}
		}
	}
	if row.ID == 0 {
		row.ID = r.nextID
		r.nextID++
	}
	r.rows[row.ID] = row
	out := clone(&row)
	return &out, nil
}

// GetByID devuelve nil, nil si no existe.
func (r *CategoryRepo) GetByID(ctx context.Context, id int64) (*entity.Category, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	row, ok := r.rows[id]
	if !ok {
		return nil, nil
	}
	out := clone(&row)
	return &out, nil
}

// GetByName devuelve nil, nil si no existe. Con varias borradas del mismo nombre gana la de menor ID.
func (r *CategoryRepo) GetByName(ctx context.Context, name string, onlyLive bool) (*entity.Category, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	var found *entity.Category
	for _, row := range r.rows {
		if row.Name != name || (onlyLive && !row.IsLive()) {
			continue
		}
		if found == nil || row.ID < found.ID {
			c := clone(&row)
			found = &c
		}
	}
	return found, nil
}

// List pagina vivas (onlyLive) o borradas (!onlyLive).
func (r *CategoryRepo) List(ctx context.Context, onlyLive bool, page repository.PageRequest) (*repository.Page, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := page.Validate(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	matched := make([]*entity.Category, 0, len(r.rows))
	for _, row := range r.rows {
		if row.IsLive() == onlyLive {
			c := clone(&row)
			matched = append(matched, &c)
		}
	}
	r.mu.RUnlock()

	sortCategories(matched, page.SortBy, page.SortDir)

	res := &repository.Page{Items: []*entity.Category{}, Total: int64(len(matched)), Page: page.Page, Size: page.Size}
	start := page.Offset()
	if start >= len(matched) {
		return res, nil
	}
	end := len(matched)
	if page.Size < end-start {
		end = start + page.Size
	}
	res.Items = matched[start:end]
	return res, nil
}

// MarkDeleted fija deletion_date.
func (r *CategoryRepo) MarkDeleted(ctx context.Context, id int64, at time.Time) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	row, ok := r.rows[id]
	if !ok {
		return fmt.Errorf("%w: categoría %d", domain.ErrNotFound, id)
	}
	row.DeletionDate = &at
	r.rows[id] = row
	return nil
}

// Delete elimina la fila.
func (r *CategoryRepo) Delete(ctx context.Context, id int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rows[id]; !ok {
		return fmt.Errorf("%w: categoría %d", domain.ErrNotFound, id)
	}
	delete(r.rows, id)
	return nil
}

func clone(c *entity.Category) entity.Category {
	out := entity.Category{ID: c.ID, Name: c.Name}
	if c.DeletionDate != nil {
		d := *c.DeletionDate
		out.DeletionDate = &d
	}
	return out
}

// sortCategories ordena como PostgreSQL: NULLS LAST en asc, NULLS FIRST en desc; empates por ID.
func sortCategories(list []*entity.Category, field repository.SortField, dir repository.SortDirection) {
	compare := func(a, b *entity.Category) int {
		switch field {
		case repository.SortByName:
			switch {
			case a.Name < b.Name:
				return -1
			case a.Name > b.Name:
				return 1
			}
		case repository.SortByDeletionDate:
			switch {
			case a.DeletionDate == nil && b.DeletionDate != nil:
				return 1
			case a.DeletionDate != nil && b.DeletionDate == nil:
				return -1
			case a.DeletionDate != nil && b.DeletionDate != nil:
				if c := a.DeletionDate.Compare(*b.DeletionDate); c != 0 {
					return c
				}
			}
		}
		switch {
		case a.ID < b.ID:
			return -1
		case a.ID > b.ID:
			return 1
		}
		return 0
	}
	sort.SliceStable(list, func(i, j int) bool {
		c := compare(list[i], list[j])
		if dir == repository.SortDesc {
			return c > 0
		}
		return c < 0
	})
}
