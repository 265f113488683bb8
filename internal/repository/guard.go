package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/otcheredev/clinic-pos/internal/store"
)

// createGuarded runs the two-layer duplicate-prevention protocol: an
// advisory tenant-scoped pre-check for a fast, friendly rejection, then the
// write itself. The pre-check is never the source of truth; two concurrent
// callers can both pass it, and only the storage constraint decides the
// race. A constraint violation on the write is translated through duplicate;
// every other storage failure propagates unchanged.
func createGuarded(
	ctx context.Context,
	sc *store.Scoped,
	entity store.TenantOwned,
	exists func(tx *gorm.DB) (bool, error),
	duplicate func() error,
) error {
	tx, err := sc.Query(ctx, entity)
	if err != nil {
		return err
	}

	found, err := exists(tx)
	if err != nil {
		return fmt.Errorf("duplicate pre-check failed: %w", err)
	}
	if found {
		return duplicate()
	}

	if err := sc.Create(ctx, entity); err != nil {
		if store.IsUniqueViolation(err) {
			return duplicate()
		}
		return err
	}
	return nil
}
