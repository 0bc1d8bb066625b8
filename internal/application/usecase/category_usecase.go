package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/catalogo-api/internal/application/dto"
	"github.com/jhoicas/catalogo-api/internal/domain"
	"github.com/jhoicas/catalogo-api/internal/domain/entity"
	"github.com/jhoicas/catalogo-api/internal/domain/repository"
)

// CategoryUseCase ciclo de vida de categorías: unicidad de nombre entre vivas,
// existencia, borrado lógico y borrado físico. No guarda estado propio.
type CategoryUseCase struct {
	repo repository.CategoryRepository
	now  func() time.Time
}

// Option configura el caso de uso.
type Option func(*CategoryUseCase)

// WithClock reemplaza la fuente de tiempo usada para deletion_date.
func WithClock(now func() time.Time) Option {
	return func(uc *CategoryUseCase) { uc.now = now }
}

// NewCategoryUseCase construye el caso de uso.
func NewCategoryUseCase(repo repository.CategoryRepository, opts ...Option) *CategoryUseCase {
	uc := &CategoryUseCase{
		repo: repo,
		now:  func() time.Time { return time.Now().UTC().Truncate(time.Microsecond) },
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// ListLive lista categorías vivas.
func (uc *CategoryUseCase) ListLive(ctx context.Context, page repository.PageRequest) (*dto.CategoryPage, error) {
	return uc.list(ctx, true, page)
}

// ListDeleted lista categorías con borrado lógico.
func (uc *CategoryUseCase) ListDeleted(ctx context.Context, page repository.PageRequest) (*dto.CategoryPage, error) {
	return uc.list(ctx, false, page)
}

func (uc *CategoryUseCase) list(ctx context.Context, onlyLive bool, page repository.PageRequest) (*dto.CategoryPage, error) {
	if err := page.Validate(); err != nil {
		return nil, err
	}
	res, err := uc.repo.List(ctx, onlyLive, page)
	if err != nil {
		return nil, fmt.Errorf("listar categorías: %w", err)
	}
	return &dto.CategoryPage{
		Items: dto.ToCategoryResponses(res.Items),
		Total: res.Total,
		Page:  page.Page,
		Size:  page.Size,
	}, nil
}

// GetByID obtiene una categoría por ID, esté viva o borrada.
func (uc *CategoryUseCase) GetByID(ctx context.Context, id int64) (*dto.CategoryResponse, error) {
	c, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.ToCategoryResponse(c), nil
}

// GetByName obtiene la categoría viva con ese nombre exacto.
func (uc *CategoryUseCase) GetByName(ctx context.Context, name string) (*dto.CategoryResponse, error) {
	c, err := uc.repo.GetByName(ctx, name, true)
	if err != nil {
		return nil, fmt.Errorf("buscar categoría por nombre: %w", err)
	}
	if c == nil {
		return nil, fmt.Errorf("%w: categoría %q", domain.ErrNotFound, name)
	}
	return dto.ToCategoryResponse(c), nil
}

// Create crea una categoría viva. Falla con ErrAlreadyExists si el nombre ya lo usa otra viva.
func (uc *CategoryUseCase) Create(ctx context.Context, in dto.CategoryRequest) (*dto.CategoryResponse, error) {
	if err := entity.ValidateCategoryName(in.Name); err != nil {
		return nil, err
	}
	holder, err := uc.repo.GetByName(ctx, in.Name, true)
	if err != nil {
		return nil, fmt.Errorf("verificar nombre: %w", err)
	}
	if holder != nil {
		return nil, fmt.Errorf("%w: categoría %q", domain.ErrAlreadyExists, in.Name)
	}
	saved, err := uc.repo.Save(ctx, &entity.Category{Name: in.Name})
	if err != nil {
		return nil, fmt.Errorf("crear categoría: %w", err)
	}
	return dto.ToCategoryResponse(saved), nil
}

// Update renombra una categoría. Solo cambia el nombre; deletion_date no se toca.
func (uc *CategoryUseCase) Update(ctx context.Context, id int64, in dto.CategoryRequest) (*dto.CategoryResponse, error) {
	if err := entity.ValidateCategoryName(in.Name); err != nil {
		return nil, err
	}
	holder, err := uc.repo.GetByName(ctx, in.Name, true)
	if err != nil {
		return nil, fmt.Errorf("verificar nombre: %w", err)
	}
	if holder != nil && holder.ID != id {
		return nil, fmt.Errorf("%w: categoría %q", domain.ErrAlreadyExists, in.Name)
	}
	c, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	c.Name = in.Name
	saved, err := uc.repo.Save(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("actualizar categoría: %w", err)
	}
	return dto.ToCategoryResponse(saved), nil
}

// SoftDelete marca la categoría como borrada con la hora actual.
// Sobre una categoría ya borrada vuelve a fijar la fecha.
func (uc *CategoryUseCase) SoftDelete(ctx context.Context, id int64) (*dto.CategoryResponse, error) {
	c, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	at := uc.now()
	if err := uc.repo.MarkDeleted(ctx, id, at); err != nil {
		return nil, fmt.Errorf("borrar categoría: %w", err)
	}
	c.DeletionDate = &at
	return dto.ToCategoryResponse(c), nil
}

// HardDelete elimina la categoría de forma permanente.
func (uc *CategoryUseCase) HardDelete(ctx context.Context, id int64) error {
	if _, err := uc.load(ctx, id); err != nil {
		return err
	}
	if err := uc.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("eliminar categoría: %w", err)
	}
	return nil
}

func (uc *CategoryUseCase) load(ctx context.Context, id int64) (*entity.Category, error) {
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("obtener categoría: %w", err)
	}
	if c == nil {
		return nil, fmt.Errorf("%w: categoría %d", domain.ErrNotFound, id)
	}
	return c, nil
}
