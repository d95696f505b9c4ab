package postgres

import (
	"errors"

	"github.com/attthulll/Learnsphere---Backend/backend/apperr"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
)

func sqlState(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

func isUniqueViolation(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey) || sqlState(err) == uniqueViolation
}

func isForeignKeyViolation(err error) bool {
	return errors.Is(err, gorm.ErrForeignKeyViolated) || sqlState(err) == foreignKeyViolation
}

// translate maps driver errors onto the apperr kinds. Messages are only used for
// the matching kind; anything unrecognised is Internal.
func translate(op string, err error, notFound, conflict string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return apperr.Wrap(op, apperr.ErrNotFound, notFound, err)
	case conflict != "" && isUniqueViolation(err):
		return apperr.Wrap(op, apperr.ErrConflict, conflict, err)
	default:
		return apperr.Internal(op, err)
	}
}
