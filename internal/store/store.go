// Package store implements the domain consistency core over the relational
// schema: the soft-delete lifecycle, composite-key associations, group
// membership, the workflow/status model and the task dependency graph.
//
// Every multi-row mutation runs inside one transaction. Duplicate checks are
// performed explicitly for clean error messages; the database uniqueness
// constraints remain the final arbiter, and a constraint violation raced past
// the explicit check is translated into the same error kind.
package store

import (
	"errors"

	"gorm.io/gorm"
)

type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// duplicateKey reports whether err is the driver's translated
// unique/primary-key violation. Requires gorm's TranslateError config.
func duplicateKey(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

func foreignKeyViolated(err error) bool {
	return errors.Is(err, gorm.ErrForeignKeyViolated)
}

func isRecordNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
