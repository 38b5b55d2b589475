package services

import (
	"database/sql"
	stderrors "errors"
)

func isNoRows(err error) bool {
	return stderrors.Is(err, sql.ErrNoRows)
}
