package postgres

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/inventory-dashboard/internal/domain/repository"
)

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	return hasCode(err, "23505")
}

// isForeignKeyViolation verifica si un error es una violación de clave foránea (23503).
func isForeignKeyViolation(err error) bool {
	return hasCode(err, "23503")
}

func hasCode(err error, code string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == code
	}
	return strings.Contains(err.Error(), code)
}

// validID indica si id es un UUID; las columnas id son de tipo UUID y un texto
// cualquiera haría fallar la consulta en lugar de devolver "no encontrado".
func validID(id string) bool {
	return uuid.Validate(id) == nil
}

// movementWhere arma la cláusula WHERE de un MovementFilter. dateCol es la
// columna de fecha del movimiento (purchased_at / sold_at).
func movementWhere(f repository.MovementFilter, dateCol string) (string, []any, bool) {
	var (
		conds []string
		args  []any
	)
	add := func(cond string, v any) {
		args = append(args, v)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}
	if f.ProductID != "" {
		if !validID(f.ProductID) {
			return "", nil, false
		}
		add("product_id = $%d", f.ProductID)
	}
	if f.ExcludeID != "" && validID(f.ExcludeID) {
		add("id <> $%d", f.ExcludeID)
	}
	if f.From != nil {
		add(dateCol+" >= $%d", f.From.UTC())
	}
	if f.To != nil {
		add(dateCol+" <= $%d", f.To.UTC())
	}
	if len(conds) == 0 {
		return "", nil, true
	}
	return " WHERE " + strings.Join(conds, " AND "), args, true
}

// utc normaliza las fechas leídas de TIMESTAMPTZ.
func utc(ts ...*time.Time) {
	for _, t := range ts {
		*t = t.UTC()
	}
}
