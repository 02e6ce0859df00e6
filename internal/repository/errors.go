package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// EsDuplicado reports whether err is a uniqueness-constraint violation.
// The partial unique indexes (one abierto cierre per usuario/sucursal/fecha,
// one ingreso per cierre/socio/metodo) are the only concurrency guard in the
// system, so callers recover from this by re-fetching the existing row.
func EsDuplicado(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// EsNoEncontrado reports whether err means the record does not exist.
func EsNoEncontrado(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
