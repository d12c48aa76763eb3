package repository

import (
	"fmt"
	"strings"
)

// modernc.org/sqlite surfaces constraint failures as plain errors whose
// text carries the SQLITE_CONSTRAINT_UNIQUE message. translateUnique
// maps those onto ErrUniqueViolation so callers can errors.Is on a
// stable sentinel instead of driver strings.
func translateUnique(op string, err error) error {
	if err == nil {
		return nil
	}
	if strings.Contains(err.Error(), "UNIQUE constraint failed") {
		return fmt.Errorf("%s: %w", op, ErrUniqueViolation)
	}
	return fmt.Errorf("%s: %w", op, err)
}
