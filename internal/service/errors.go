package service

import (
	"github.com/rs/zerolog"

	"surveyapi/internal/errs"
)

// dbError logs known database errors under msg and wraps them in errs.DatabaseError.
// Anything else is returned unchanged.
func dbError(log zerolog.Logger, err error, msg string) error {
	pgErr, ok := errs.IsKnownDatabaseError(err)
	if !ok {
		return err
	}
	log.Error().Err(err).Str("pg_code", pgErr.Code).Msg(msg)
	return &errs.DatabaseError{Message: pgErr.Message, Err: err}
}
