package http

import (
	"net/url"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/catalogo-api/internal/application/dto"
	"github.com/jhoicas/catalogo-api/internal/application/usecase"
	"github.com/jhoicas/catalogo-api/pkg/logger"
)

// HeaderTotalCount total de filas del listado, sin paginar.
const HeaderTotalCount = "X-Total-Count"

// CategoryHandler maneja las peticiones HTTP para Category.
type CategoryHandler struct {
	uc       *usecase.CategoryUseCase
	log      *logger.Logger
	validate *validator.Validate
	basePath string
}

// NewCategoryHandler construye el handler. basePath se usa en la cabecera Location, ej. /api/v1.
func NewCategoryHandler(uc *usecase.CategoryUseCase, log *logger.Logger, basePath string) *CategoryHandler {
	return &CategoryHandler{uc: uc, log: log, validate: newValidator(), basePath: basePath}
}

// List godoc
// @Summary      Listar categorías vivas
// @Tags         categories
// @Produce      json
// @Param        page     query  int     false  "Página (base 0)"  default(0)
// @Param        size     query  int     false  "Tamaño"           default(10)
// @Param        sortBy   query  string  false  "id | name | deletion_date"  default(id)
// @Param        sortDir  query  string  false  "asc | desc"       default(asc)
// @Success      200      {array}   dto.CategoryResponse
// @Failure      400      {object}  dto.ErrorResponse
// @Router       /api/v1/categories [get]
func (h *CategoryHandler) List(c *fiber.Ctx) error {
	return h.list(c, false)
}

// ListDeleted godoc
// @Summary      Listar categorías borradas
// @Tags         categories
// @Produce      json
// @Param        page     query  int     false  "Página (base 0)"  default(0)
// @Param        size     query  int     false  "Tamaño"           default(10)
// @Param        sortBy   query  string  false  "id | name | deletion_date"  default(id)
// @Param        sortDir  query  string  false  "asc | desc"       default(asc)
// @Success      200      {array}   dto.CategoryResponse
// @Failure      400      {object}  dto.ErrorResponse
// @Router       /api/v1/categories/deleted [get]
func (h *CategoryHandler) ListDeleted(c *fiber.Ctx) error {
	return h.list(c, true)
}

func (h *CategoryHandler) list(c *fiber.Ctx, deleted bool) error {
	var in dto.PageRequest
	if err := c.QueryParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_PAGE", Message: "parámetros de paginación inválidos"})
	}
	in.DefaultPage()
	page, err := in.ToDomain()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_PAGE", Message: err.Error()})
	}

	var out *dto.CategoryPage
	if deleted {
		out, err = h.uc.ListDeleted(c.UserContext(), page)
	} else {
		out, err = h.uc.ListLive(c.UserContext(), page)
	}
	if err != nil {
		return writeDomainError(c, h.log, err)
	}
	c.Set(HeaderTotalCount, strconv.FormatInt(out.Total, 10))
	return c.JSON(out.Items)
}

// GetByID godoc
// @Summary      Obtener categoría por ID (viva o borrada)
// @Tags         categories
// @Produce      json
// @Param        id   path  int  true  "ID de la categoría"
// @Success      200  {object}  dto.CategoryResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/v1/categories/{id} [get]
func (h *CategoryHandler) GetByID(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return invalidID(c)
	}
	out, err := h.uc.GetByID(c.UserContext(), id)
	if err != nil {
		return writeDomainError(c, h.log, err)
	}
	return c.JSON(out)
}

// GetByName godoc
// @Summary      Obtener categoría viva por nombre exacto
// @Tags         categories
// @Produce      json
// @Param        name  path  string  true  "Nombre"
// @Success      200   {object}  dto.CategoryResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/v1/categories/by-name/{name} [get]
func (h *CategoryHandler) GetByName(c *fiber.Ctx) error {
	name, err := url.PathUnescape(c.Params("name"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "nombre mal codificado"})
	}
	out, err := h.uc.GetByName(c.UserContext(), name)
	if err != nil {
		return writeDomainError(c, h.log, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear categoría
// @Tags         categories
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CategoryRequest  true  "Datos de la categoría"
// @Success      201   {object}  dto.CategoryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/v1/categories [post]
func (h *CategoryHandler) Create(c *fiber.Ctx) error {
	in, ok, err := h.parseBody(c)
	if !ok {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return writeDomainError(c, h.log, err)
	}
	c.Location(h.basePath + "/categories/" + strconv.FormatInt(out.ID, 10))
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Renombrar categoría
// @Tags         categories
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "ID de la categoría"
// @Param        body  body  dto.CategoryRequest  true  "Nuevo nombre"
// @Success      200   {object}  dto.CategoryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/v1/categories/{id} [put]
func (h *CategoryHandler) Update(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return invalidID(c)
	}
	in, ok, err := h.parseBody(c)
	if !ok {
		return err
	}
	out, err := h.uc.Update(c.UserContext(), id, in)
	if err != nil {
		return writeDomainError(c, h.log, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Borrar categoría (lógico por defecto, físico con hard=true)
// @Tags         categories
// @Security     Bearer
// @Produce      json
// @Param        id    path   int   true   "ID de la categoría"
// @Param        hard  query  bool  false  "Borrado físico"  default(false)
// @Success      200   {object}  dto.CategoryResponse
// @Success      204
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/v1/categories/{id} [delete]
func (h *CategoryHandler) Delete(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return invalidID(c)
	}
	if isHardDelete(c) {
		if err := h.uc.HardDelete(c.UserContext(), id); err != nil {
			return writeDomainError(c, h.log, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
	out, err := h.uc.SoftDelete(c.UserContext(), id)
	if err != nil {
		return writeDomainError(c, h.log, err)
	}
	return c.JSON(out)
}

// parseBody decodifica y valida el cuerpo. Si ok es false, la respuesta ya fue escrita y err es su resultado.
func (h *CategoryHandler) parseBody(c *fiber.Ctx) (in dto.CategoryRequest, ok bool, err error) {
	if err := c.BodyParser(&in); err != nil {
		return in, false, c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.validate.Struct(in); err != nil {
		return in, false, c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: validationMessage(err)})
	}
	return in, true, nil
}

func isHardDelete(c *fiber.Ctx) bool {
	return c.QueryBool("hard", false)
}

func parseID(c *fiber.Ctx) (int64, bool) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func invalidID(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "id debe ser un entero positivo"})
}
