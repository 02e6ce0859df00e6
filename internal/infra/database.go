package infra

import (
	"fmt"

	"github.com/mherrera31/app-cierres-caja-sub000/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx, runs AutoMigrate
// for the service's tables, then applies the partial unique indexes that GORM
// cannot express. Those indexes are the system's only concurrency guard for
// create-if-absent operations, so startup fails if they cannot be applied.
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := db.AutoMigrate(
		&model.Cierre{},
		&model.CierreCDE{},
		&model.Gasto{},
		&model.IngresoAdicional{},
		&model.VentaPago{},
		&model.ReglaPago{},
		&model.Socio{},
		&model.CategoriaGasto{},
	); err != nil {
		return nil, fmt.Errorf("AutoMigrate: %w", err)
	}

	if err := applySchemaPatches(db); err != nil {
		return nil, fmt.Errorf("schema patches: %w", err)
	}

	return db, nil
}

// applySchemaPatches runs idempotent DDL that AutoMigrate cannot handle:
// partial unique indexes scoped to estado='abierto'. Re-running on an
// already-patched DB is a no-op.
func applySchemaPatches(db *gorm.DB) error {
	patches := []string{
		// At most one open cierre per (usuario, sucursal, fecha). Closed
		// records are unlimited; reopening works because the reopened row
		// simply re-enters the constrained set.
		`CREATE UNIQUE INDEX IF NOT EXISTS uni_cierres_abierto
		     ON cierres (usuario_id, sucursal_id, fecha)
		     WHERE estado = 'abierto'`,
		// At most one open CDE per (sucursal, fecha), any user.
		`CREATE UNIQUE INDEX IF NOT EXISTS uni_cierre_cdes_abierto
		     ON cierre_cdes (sucursal_id, fecha)
		     WHERE estado = 'abierto'`,
	}

	for _, sql := range patches {
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("patch %q: %w", sql[:min(len(sql), 60)], err)
		}
	}
	return nil
}
