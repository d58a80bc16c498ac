package repository

import (
	stderrors "errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/labpool/labpool/internal/shared/errors"
)

// translate maps gorm failures onto the application taxonomy. Anything it
// does not recognise is wrapped with op for the log.
func translate(err error, op, notFoundMsg, conflictMsg string) error {
	switch {
	case err == nil:
		return nil
	case stderrors.Is(err, gorm.ErrRecordNotFound):
		return errors.NewNotFoundError(notFoundMsg)
	case conflictMsg != "" && errors.IsDuplicateError(err):
		return errors.NewConflictError(conflictMsg)
	case errors.IsForeignKeyError(err):
		return errors.NewConflictError("Record is still referenced by other records")
	case errors.IsAppError(err):
		return err
	default:
		return fmt.Errorf("failed to %s: %w", op, err)
	}
}

// likeEscape is the ESCAPE clause that goes with likePattern. "!" behaves
// the same in MySQL and SQLite string literals.
const likeEscape = " ESCAPE '!'"

// likePattern escapes LIKE wildcards in user input.
func likePattern(s string) string {
	r := strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")
	return "%" + r.Replace(strings.TrimSpace(s)) + "%"
}
