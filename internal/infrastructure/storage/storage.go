// Package storage elige el adaptador de persistencia según STORAGE_DRIVER.
package storage

import (
	"context"
	"fmt"

	"github.com/jhoicas/catalogo-api/internal/domain/repository"
	"github.com/jhoicas/catalogo-api/internal/infrastructure/memory"
	"github.com/jhoicas/catalogo-api/internal/infrastructure/postgres"
	"github.com/jhoicas/catalogo-api/pkg/config"
	"github.com/jhoicas/catalogo-api/pkg/logger"
)

// OpenCategoryRepository devuelve el repositorio configurado y la función que libera sus recursos.
func OpenCategoryRepository(ctx context.Context, cfg *config.Config, log *logger.Logger) (repository.CategoryRepository, func(), error) {
	switch cfg.Storage.Driver {
	case config.StorageMemory:
		log.Warn().Msg("almacenamiento en memoria: los datos se pierden al reiniciar")
		return memory.NewCategoryRepository(), func() {}, nil
	case config.StoragePostgres:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
		}
		if cfg.DB.AutoMigrate {
			if err := postgres.Migrate(ctx, pool); err != nil {
				pool.Close()
				return nil, nil, fmt.Errorf("migraciones: %w", err)
			}
			log.Info().Msg("migraciones aplicadas")
		}
		return postgres.NewCategoryRepository(pool), pool.Close, nil
	}
	return nil, nil, fmt.Errorf("driver de almacenamiento desconocido %q", cfg.Storage.Driver)
}
