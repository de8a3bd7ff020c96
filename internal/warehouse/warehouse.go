package warehouse

import (
	"context"
	"fmt"

	"artistpulse/internal/config"
	"artistpulse/internal/model"
)

// Lookup finds a user's business record. A missing record is reported
// with found=false and a nil error.
type Lookup interface {
	Get(ctx context.Context, userID string) (rec model.BusinessRecord, found bool, err error)
}

// Store is a Lookup backed by a resource that must be released.
type Store interface {
	Lookup
	Close() error
}

// Open returns the store selected by cfg.Driver.
func Open(cfg config.WarehouseConfig) (Store, error) {
	switch cfg.Driver {
	case "", "json":
		return OpenJSON(cfg.Path)
	case "sqlite":
		return OpenSQLite(cfg.Path)
	default:
		return nil, fmt.Errorf("warehouse: unknown driver %q", cfg.Driver)
	}
}

// Import copies every record of src into dst and returns how many were written.
func Import(ctx context.Context, src *JSONStore, dst *SQLiteStore) (int, error) {
	n := 0
	for _, rec := range src.Records() {
		if err := ctx.Err(); err != nil {
			return n, err
		}
		if err := dst.Put(ctx, rec); err != nil {
			return n, fmt.Errorf("import %s: %w", rec.UserID, err)
		}
		n++
	}
	return n, nil
}
