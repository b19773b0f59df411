package repo

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrCartChanged is returned when the cart rows read at checkout start no
// longer match the rows seen inside the placing transaction.
var ErrCartChanged = errors.New("cart changed during checkout")

type GormRepo struct {
	DB *gorm.DB
}

// lockForUpdate applies a row lock on dialects that support it.
// sqlite (used by tests) has no FOR UPDATE.
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "postgres" {
		return tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return tx
}
