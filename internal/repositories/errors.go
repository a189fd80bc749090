package repositories

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned when the requested record does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when a unique column (name or slug) is already taken.
	ErrDuplicate = errors.New("record already exists")
	// ErrConstraint is returned for foreign key and check constraint violations.
	ErrConstraint = errors.New("constraint violated")
)

// translate wraps a GORM error with the matching repository sentinel.
func translate(op string, err error) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%s: %w", op, ErrDuplicate)
	case errors.Is(err, gorm.ErrForeignKeyViolated), errors.Is(err, gorm.ErrCheckConstraintViolated):
		return fmt.Errorf("%s: %w: %v", op, ErrConstraint, err)
	default:
		return fmt.Errorf("failed to %s: %w", op, err)
	}
}

// exists reports whether a row of model has column = value, ignoring the
// row whose id is excludeID.
func exists(db *gorm.DB, model interface{}, column, value, excludeID string) (bool, error) {
	var n int64
	q := db.Model(model).Where(column+" = ?", value)
	if excludeID != "" {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}
