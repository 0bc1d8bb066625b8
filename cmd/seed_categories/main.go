// seed_categories carga categorías desde un archivo de texto plano, un nombre por línea,
// usando el mismo caso de uso que la API (misma validación y unicidad).
//
// Uso: go run ./cmd/seed_categories [-latin1] [ruta/categorias.txt]
// Por defecto lee categorias.txt en el directorio actual. Líneas vacías y las que
// empiezan por # se ignoran. Con -latin1 el archivo se decodifica como ISO-8859-1.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/catalogo-api/internal/application/dto"
	"github.com/jhoicas/catalogo-api/internal/application/usecase"
	"github.com/jhoicas/catalogo-api/internal/domain"
	"github.com/jhoicas/catalogo-api/internal/infrastructure/storage"
	"github.com/jhoicas/catalogo-api/pkg/config"
	"github.com/jhoicas/catalogo-api/pkg/logger"
)

func main() {
	latin1 := flag.Bool("latin1", false, "decodificar el archivo como ISO-8859-1")
	flag.Parse()

	path := "categorias.txt"
	if flag.NArg() > 0 {
		path = flag.Arg(0)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	f, err := os.Open(path)
	if err != nil {
		log.Fatal().Err(err).Str("path", path).Msg("abrir archivo")
	}
	defer f.Close()

	names, err := readNames(f, *latin1)
	if err != nil {
		log.Fatal().Err(err).Msg("leer nombres")
	}

	ctx := context.Background()
	repo, closeRepo, err := storage.OpenCategoryRepository(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("almacenamiento")
	}
	defer closeRepo()

	res, err := seed(ctx, usecase.NewCategoryUseCase(repo), names)
	for _, name := range res.Skipped {
		log.Warn().Str("name", name).Msg("ya existe, se omite")
	}
	if err != nil {
		log.Error().Err(err).Int("created", res.Created).Msg("carga interrumpida")
		closeRepo()
		os.Exit(1)
	}
	log.Info().Int("created", res.Created).Int("skipped", len(res.Skipped)).Msg("carga terminada")
}

// readNames devuelve los nombres no vacíos del archivo, respetando el texto de cada línea
// salvo los espacios en los extremos.
func readNames(r io.Reader, latin1 bool) ([]string, error) {
	if latin1 {
		r = transform.NewReader(r, charmap.ISO8859_1.NewDecoder())
	}
	var names []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		names = append(names, line)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return names, nil
}

type seedResult struct {
	Created int
	Skipped []string
}

// seed crea cada nombre; los duplicados se omiten y cualquier otro error detiene la carga.
func seed(ctx context.Context, uc *usecase.CategoryUseCase, names []string) (seedResult, error) {
	var res seedResult
	for _, name := range names {
		_, err := uc.Create(ctx, dto.CategoryRequest{Name: name})
		switch {
		case err == nil:
			res.Created++
		case errors.Is(err, domain.ErrAlreadyExists):
			res.Skipped = append(res.Skipped, name)
		default:
			return res, fmt.Errorf("crear %q: %w", name, err)
		}
	}
	return res, nil
}
