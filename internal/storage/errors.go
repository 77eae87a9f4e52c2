package storage

import (
	"fmt"

	"wordgate/internal/models"
)

// storageErr tags a database failure with the ErrStorageUnavailable sentinel
// so callers can fail closed without inspecting driver errors.
func storageErr(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", models.ErrStorageUnavailable, op, err)
}
