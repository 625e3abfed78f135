package postgres

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// Código SQLSTATE de unique_violation.
const uniqueViolationCode = "23505"

// isUniqueViolation detecta una violación de constraint único. Los repos la
// traducen a ErrDuplicate (emails, nombres de rol/permiso, número de mesa).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == uniqueViolationCode
	}
	// Drivers intermedios pueden aplanar el error a texto.
	return strings.Contains(err.Error(), uniqueViolationCode)
}
