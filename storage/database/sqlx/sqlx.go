// Package sqlxrepos implements the repositories on top of Postgres.
package sqlxrepos

import (
	"database/sql"
	"database/sql/driver"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/pkg/errors"

	"github.com/gurumantra/backend/core/course"
)

const uniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	pqErr, ok := errors.Cause(err).(*pq.Error)
	return ok && pqErr.Code == uniqueViolation
}

func isNoRows(err error) bool {
	return errors.Cause(err) == sql.ErrNoRows
}

// validID reports whether id can be compared against a UUID column.
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// blocks stores a chapters sequence in a JSONB column.
type blocks []course.Block

func (b blocks) Value() (driver.Value, error) {
	if b == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(b)
}

func (b *blocks) Scan(src interface{}) error {
	var data []byte
	switch v := src.(type) {
	case nil:
		*b = blocks{}
		return nil
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return errors.Errorf("sqlxrepos: cannot scan %T into chapters", src)
	}
	return json.Unmarshal(data, (*[]course.Block)(b))
}
