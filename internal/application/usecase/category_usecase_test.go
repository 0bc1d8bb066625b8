package usecase_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/catalogo-api/internal/application/dto"
	"github.com/jhoicas/catalogo-api/internal/application/usecase"
	"github.com/jhoicas/catalogo-api/internal/domain"
	"github.com/jhoicas/catalogo-api/internal/domain/entity"
	"github.com/jhoicas/catalogo-api/internal/domain/repository"
	"github.com/jhoicas/catalogo-api/internal/infrastructure/memory"
)

var firstPage = repository.PageRequest{Page: 0, Size: 10, SortBy: repository.SortByID, SortDir: repository.SortAsc}

// fixedClock devuelve instantes crecientes de un segundo a partir de una fecha fija.
func fixedClock() func() time.Time {
	t := time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC)
	return func() time.Time {
		t = t.Add(time.Second)
		return t
	}
}

func newUseCase() (*usecase.CategoryUseCase, *memory.CategoryRepo) {
	repo := memory.NewCategoryRepository()
	return usecase.NewCategoryUseCase(repo, usecase.WithClock(fixedClock())), repo
}

func create(t *testing.T, uc *usecase.CategoryUseCase, name string) *dto.CategoryResponse {
	t.Helper()
	out, err := uc.Create(context.Background(), dto.CategoryRequest{Name: name})
	require.NoError(t, err)
	return out
}

func listIDs(p *dto.CategoryPage) []int64 {
	out := make([]int64, 0, len(p.Items))
	for _, c := range p.Items {
		out = append(out, c.ID)
	}
	return out
}

func TestCreate_ThenGetByID(t *testing.T) {
	uc, _ := newUseCase()
	created := create(t, uc, "Groceries")

	got, err := uc.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, "Groceries", got.Name)
	assert.Nil(t, got.DeletionDate)
}

func TestCreate_DuplicateName(t *testing.T) {
	uc, _ := newUseCase()
	create(t, uc, "Groceries")

	_, err := uc.Create(context.Background(), dto.CategoryRequest{Name: "Groceries"})
	assert.ErrorIs(t, err, domain.ErrAlreadyExists)
}

func TestCreate_NameComparisonIsExact(t *testing.T) {
	uc, _ := newUseCase()
	create(t, uc, "Groceries")
	create(t, uc, "groceries")
	create(t, uc, "Groceries ")
}

func TestCreate_NameFreedBySoftDelete(t *testing.T) {
	uc, _ := newUseCase()
	ctx := context.Background()
	first := create(t, uc, "Groceries")
	_, err := uc.SoftDelete(ctx, first.ID)
	require.NoError(t, err)

	second := create(t, uc, "Groceries")
	assert.NotEqual(t, first.ID, second.ID)
}

func TestCreate_RejectsInvalidNames(t *testing.T) {
	uc, repo := newUseCase()
	ctx := context.Background()
	for _, name := range []string{"", "   ", strings.Repeat("x", entity.MaxCategoryNameLength+1)} {
		_, err := uc.Create(ctx, dto.CategoryRequest{Name: name})
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "nombre %q", name)
	}
	page, err := repo.List(ctx, true, firstPage)
	require.NoError(t, err)
	assert.Zero(t, page.Total, "no debe persistir nada")
}

func TestGetByID_Missing(t *testing.T) {
	uc, _ := newUseCase()
	_, err := uc.GetByID(context.Background(), 99)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGetByID_IncludesSoftDeleted(t *testing.T) {
	uc, _ := newUseCase()
	ctx := context.Background()
	c := create(t, uc, "Archive")
	_, err := uc.SoftDelete(ctx, c.ID)
	require.NoError(t, err)

	got, err := uc.GetByID(ctx, c.ID)
	require.NoError(t, err)
	assert.NotNil(t, got.DeletionDate)
}

func TestGetByName_OnlyLive(t *testing.T) {
	uc, _ := newUseCase()
	ctx := context.Background()
	c := create(t, uc, "Books")

	got, err := uc.GetByName(ctx, "Books")
	require.NoError(t, err)
	assert.Equal(t, c.ID, got.ID)

	_, err = uc.SoftDelete(ctx, c.ID)
	require.NoError(t, err)
	_, err = uc.GetByName(ctx, "Books")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdate_Renames(t *testing.T) {
	uc, _ := newUseCase()
	ctx := context.Background()
	c := create(t, uc, "Groceries")

	out, err := uc.Update(ctx, c.ID, dto.CategoryRequest{Name: "Food"})
	require.NoError(t, err)
	assert.Equal(t, "Food", out.Name)

	got, err := uc.GetByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "Food", got.Name)
}

func TestUpdate_SameNameOnSameCategory(t *testing.T) {
	uc, _ := newUseCase()
	c := create(t, uc, "Groceries")

	out, err := uc.Update(context.Background(), c.ID, dto.CategoryRequest{Name: "Groceries"})
	require.NoError(t, err)
	assert.Equal(t, "Groceries", out.Name)
}

func TestUpdate_NameTakenByAnotherLeavesRecordUnchanged(t *testing.T) {
	uc, _ := newUseCase()
	ctx := context.Background()
	a := create(t, uc, "A")
	create(t, uc, "B")

	_, err := uc.Update(ctx, a.ID, dto.CategoryRequest{Name: "B"})
	assert.ErrorIs(t, err, domain.ErrAlreadyExists)

	got, err := uc.GetByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "A", got.Name)
}

func TestUpdate_ConflictCheckedBeforeExistence(t *testing.T) {
	uc, _ := newUseCase()
	create(t, uc, "Taken")

	_, err := uc.Update(context.Background(), 404, dto.CategoryRequest{Name: "Taken"})
	assert.ErrorIs(t, err, domain.ErrAlreadyExists)
}

func TestUpdate_Missing(t *testing.T) {
	uc, _ := newUseCase()
	_, err := uc.Update(context.Background(), 404, dto.CategoryRequest{Name: "Free"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdate_KeepsDeletionDate(t *testing.T) {
	uc, _ := newUseCase()
	ctx := context.Background()
	c := create(t, uc, "Old")
	deleted, err := uc.SoftDelete(ctx, c.ID)
	require.NoError(t, err)

	out, err := uc.Update(ctx, c.ID, dto.CategoryRequest{Name: "Renamed"})
	require.NoError(t, err)
	require.NotNil(t, out.DeletionDate)
	assert.True(t, deleted.DeletionDate.Equal(*out.DeletionDate))
}

func TestSoftDelete_MovesBetweenListings(t *testing.T) {
	uc, _ := newUseCase()
	ctx := context.Background()
	a := create(t, uc, "A")
	b := create(t, uc, "B")

	out, err := uc.SoftDelete(ctx, a.ID)
	require.NoError(t, err)
	require.NotNil(t, out.DeletionDate)

	live, err := uc.ListLive(ctx, firstPage)
	require.NoError(t, err)
	assert.Equal(t, []int64{b.ID}, listIDs(live))
	assert.Equal(t, int64(1), live.Total)

	deleted, err := uc.ListDeleted(ctx, firstPage)
	require.NoError(t, err)
	assert.Equal(t, []int64{a.ID}, listIDs(deleted))
}

func TestSoftDelete_RestampsWhenRepeated(t *testing.T) {
	uc, _ := newUseCase()
	ctx := context.Background()
	c := create(t, uc, "A")

	first, err := uc.SoftDelete(ctx, c.ID)
	require.NoError(t, err)
	second, err := uc.SoftDelete(ctx, c.ID)
	require.NoError(t, err)
	assert.True(t, second.DeletionDate.After(*first.DeletionDate))

	got, err := uc.GetByID(ctx, c.ID)
	require.NoError(t, err)
	assert.True(t, second.DeletionDate.Equal(*got.DeletionDate))
}

func TestSoftDelete_Missing(t *testing.T) {
	uc, _ := newUseCase()
	_, err := uc.SoftDelete(context.Background(), 5)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestHardDelete(t *testing.T) {
	uc, _ := newUseCase()
	ctx := context.Background()
	c := create(t, uc, "A")

	require.NoError(t, uc.HardDelete(ctx, c.ID))
	_, err := uc.GetByID(ctx, c.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.ErrorIs(t, uc.HardDelete(ctx, c.ID), domain.ErrNotFound, "repetir no es un éxito silencioso")
}

func TestHardDelete_AfterSoftDelete(t *testing.T) {
	uc, _ := newUseCase()
	ctx := context.Background()
	c := create(t, uc, "A")
	_, err := uc.SoftDelete(ctx, c.ID)
	require.NoError(t, err)

	require.NoError(t, uc.HardDelete(ctx, c.ID))
	deleted, err := uc.ListDeleted(ctx, firstPage)
	require.NoError(t, err)
	assert.Empty(t, deleted.Items)
}

func TestList_OutOfRangePageIsEmpty(t *testing.T) {
	uc, _ := newUseCase()
	create(t, uc, "A")

	out, err := uc.ListLive(context.Background(), repository.PageRequest{Page: 5, Size: 10, SortBy: repository.SortByID, SortDir: repository.SortAsc})
	require.NoError(t, err)
	assert.Empty(t, out.Items)
	assert.NotNil(t, out.Items)
	assert.Equal(t, int64(1), out.Total)
}

func TestList_HugePageIsEmpty(t *testing.T) {
	uc, _ := newUseCase()
	create(t, uc, "A")

	huge := repository.PageRequest{Page: 1 << 62, Size: 10, SortBy: repository.SortByID, SortDir: repository.SortAsc}
	var out *dto.CategoryPage
	require.NotPanics(t, func() {
		var err error
		out, err = uc.ListLive(context.Background(), huge)
		require.NoError(t, err)
	})
	assert.Empty(t, out.Items)
	assert.Equal(t, int64(1), out.Total)
}

func TestList_InvalidPage(t *testing.T) {
	uc, _ := newUseCase()
	_, err := uc.ListLive(context.Background(), repository.PageRequest{Page: -1, Size: 10})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestScenario_Lifecycle(t *testing.T) {
	uc, _ := newUseCase()
	ctx := context.Background()

	c := create(t, uc, "Groceries")
	assert.Equal(t, int64(1), c.ID)

	_, err := uc.Create(ctx, dto.CategoryRequest{Name: "Groceries"})
	assert.ErrorIs(t, err, domain.ErrAlreadyExists)

	updated, err := uc.Update(ctx, 1, dto.CategoryRequest{Name: "Food"})
	require.NoError(t, err)
	assert.Equal(t, "Food", updated.Name)

	deleted, err := uc.SoftDelete(ctx, 1)
	require.NoError(t, err)
	assert.NotNil(t, deleted.DeletionDate)
	live, err := uc.ListLive(ctx, firstPage)
	require.NoError(t, err)
	assert.Empty(t, live.Items)

	require.NoError(t, uc.HardDelete(ctx, 1))
	_, err = uc.GetByID(ctx, 1)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// failingRepo simula una falla de infraestructura en todas las operaciones.
type failingRepo struct{ err error }

func (f failingRepo) Save(context.Context, *entity.Category) (*entity.Category, error) {
	return nil, f.err
}
func (f failingRepo) GetByID(context.Context, int64) (*entity.Category, error) { return nil, f.err }
func (f failingRepo) GetByName(context.Context, string, bool) (*entity.Category, error) {
	return nil, f.err
}
func (f failingRepo) List(context.Context, bool, repository.PageRequest) (*repository.Page, error) {
	return nil, f.err
}
func (f failingRepo) MarkDeleted(context.Context, int64, time.Time) error { return f.err }
func (f failingRepo) Delete(context.Context, int64) error                 { return f.err }

func TestRepositoryErrorsArePropagated(t *testing.T) {
	boom := errors.New("conexión perdida")
	uc := usecase.NewCategoryUseCase(failingRepo{err: boom})
	ctx := context.Background()

	_, err := uc.ListLive(ctx, firstPage)
	assert.ErrorIs(t, err, boom)
	_, err = uc.GetByID(ctx, 1)
	assert.ErrorIs(t, err, boom)
	_, err = uc.GetByName(ctx, "x")
	assert.ErrorIs(t, err, boom)
	_, err = uc.Create(ctx, dto.CategoryRequest{Name: "x"})
	assert.ErrorIs(t, err, boom)
	_, err = uc.Update(ctx, 1, dto.CategoryRequest{Name: "x"})
	assert.ErrorIs(t, err, boom)
	_, err = uc.SoftDelete(ctx, 1)
	assert.ErrorIs(t, err, boom)
	assert.ErrorIs(t, uc.HardDelete(ctx, 1), boom)
}

// racingRepo simula una carrera: la verificación previa no ve al otro escritor,
// pero el índice único rechaza la inserción.
type racingRepo struct {
	*memory.CategoryRepo
}

func (r racingRepo) GetByName(context.Context, string, bool) (*entity.Category, error) {
	return nil, nil
}

func TestCreate_StorageConstraintWinsRace(t *testing.T) {
	repo := racingRepo{memory.NewCategoryRepository()}
	uc := usecase.NewCategoryUseCase(repo)
	ctx := context.Background()

	_, err := uc.Create(ctx, dto.CategoryRequest{Name: "Race"})
	require.NoError(t, err)
	_, err = uc.Create(ctx, dto.CategoryRequest{Name: "Race"})
	assert.ErrorIs(t, err, domain.ErrAlreadyExists)
}
