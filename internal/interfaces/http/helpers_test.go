package http_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/catalogo-api/internal/application/usecase"
	apphttp "github.com/jhoicas/catalogo-api/internal/interfaces/http"
	"github.com/jhoicas/catalogo-api/internal/infrastructure/memory"
	"github.com/jhoicas/catalogo-api/pkg/logger"
)

const (
	testBasePath  = "/api/v1"
	testJWTSecret = "test-secret-key-for-unit-tests"
	testIssuer    = "catalogo-test"
)

// buildApp construye la aplicación completa sobre un repositorio en memoria.
func buildApp(t *testing.T, jwtSecret string) *fiber.App {
	t.Helper()
	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		CategoryUC: usecase.NewCategoryUseCase(memory.NewCategoryRepository()),
		Logger:     logger.Nop(),
		BasePath:   testBasePath,
		JWTSecret:  jwtSecret,
	})
	return app
}

// do lanza la petición; body vacío significa sin cuerpo.
func do(t *testing.T, app *fiber.App, method, path, body string, headers ...string) *http.Response {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}
