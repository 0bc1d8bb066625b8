package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/catalogo-api/internal/domain"
	"github.com/jhoicas/catalogo-api/internal/domain/entity"
	"github.com/jhoicas/catalogo-api/internal/domain/repository"
)

var _ repository.CategoryRepository = (*CategoryRepo)(nil)

// sortColumns lista blanca de columnas ordenables; nunca se interpola entrada del cliente.
var sortColumns = map[repository.SortField]string{
	repository.SortByID:           "id",
	repository.SortByName:         "name",
	repository.SortByDeletionDate: "deletion_date",
}

const categoryColumns = `id, name, deletion_date`

// CategoryRepo implementación del puerto CategoryRepository sobre PostgreSQL (usable con pool o tx).
type CategoryRepo struct {
	q Querier
}

// NewCategoryRepository construye el adaptador de persistencia para categorías. Pasar pool o tx (Querier).
func NewCategoryRepository(q Querier) *CategoryRepo {
	return &CategoryRepo{q: q}
}

func scanCategory(row pgx.Row) (*entity.Category, error) {
	var c entity.Category
	if err := row.Scan(&c.ID, &c.Name, &c.DeletionDate); err != nil {
		return nil, err
	}
	return &c, nil
}

// Save inserta (ID == 0) o actualiza la categoría y devuelve la fila almacenada.
func (r *CategoryRepo) Save(ctx context.Context, category *entity.Category) (*entity.Category, error) {
	var row pgx.Row
	if category.ID == 0 {
		row = r.q.QueryRow(ctx,
			`INSERT INTO categories (name, deletion_date) VALUES ($1, $2) RETURNING `+categoryColumns,
			category.Name, category.DeletionDate,
		)
	} else {
		row = r.q.QueryRow(ctx,
			`UPDATE categories SET name = $2, deletion_date = $3 WHERE id = $1 RETURNING `+categoryColumns,
			category.ID, category.Name, category.DeletionDate,
		)
	}
	saved, err := scanCategory(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: categoría %d", domain.ErrNotFound, category.ID)
		}
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%w: categoría %q", domain.ErrAlreadyExists, category.Name)
		}
		return nil, fmt.Errorf("save category: %w", err)
	}
	return saved, nil
}

// GetByID obtiene una categoría por ID (viva o borrada).
func (r *CategoryRepo) GetByID(ctx context.Context, id int64) (*entity.Category, error) {
	c, err := scanCategory(r.q.QueryRow(ctx,
		`SELECT `+categoryColumns+` FROM categories WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get category: %w", err)
	}
	return c, nil
}

// GetByName obtiene una categoría por nombre exacto. Entre varias borradas gana la de menor ID.
func (r *CategoryRepo) GetByName(ctx context.Context, name string, onlyLive bool) (*entity.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE name = $1`
	if onlyLive {
		query += ` AND deletion_date IS NULL`
	}
	query += ` ORDER BY id LIMIT 1`
	c, err := scanCategory(r.q.QueryRow(ctx, query, name))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get category by name: %w", err)
	}
	return c, nil
}

// List pagina vivas (onlyLive) o solo borradas (!onlyLive).
func (r *CategoryRepo) List(ctx context.Context, onlyLive bool, page repository.PageRequest) (*repository.Page, error) {
	if err := page.Validate(); err != nil {
		return nil, err
	}
	field, _ := repository.ParseSortField(string(page.SortBy))
	dir := "ASC"
	if page.SortDir == repository.SortDesc {
		dir = "DESC"
	}
	where := `deletion_date IS NOT NULL`
	if onlyLive {
		where = `deletion_date IS NULL`
	}

	var total int64
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM categories WHERE `+where).Scan(&total); err != nil {
		return nil, fmt.Errorf("count categories: %w", err)
	}

	query := fmt.Sprintf(`SELECT %s FROM categories WHERE %s ORDER BY %s %s, id %s LIMIT $1 OFFSET $2`,
		categoryColumns, where, sortColumns[field], dir, dir)
	rows, err := r.q.Query(ctx, query, page.Size, page.Offset())
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	items := make([]*entity.Category, 0, page.Size)
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		items = append(items, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return &repository.Page{Items: items, Total: total, Page: page.Page, Size: page.Size}, nil
}

// MarkDeleted fija deletion_date.
func (r *CategoryRepo) MarkDeleted(ctx context.Context, id int64, at time.Time) error {
	cmd, err := r.q.Exec(ctx, `UPDATE categories SET deletion_date = $2 WHERE id = $1`, id, at)
	if err != nil {
		return fmt.Errorf("mark category deleted: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("%w: categoría %d", domain.ErrNotFound, id)
	}
	return nil
}

// Delete elimina la categoría por ID.
func (r *CategoryRepo) Delete(ctx context.Context, id int64) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("%w: categoría %d", domain.ErrNotFound, id)
	}
	return nil
}
