package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Execer is satisfied by *sql.DB and *sql.Tx.
type Execer interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

// WriteAudit appends one row to audit_log. Callers treat a failure as
// non-fatal and only log it.
func WriteAudit(ctx context.Context, db Execer, entityType, entityID, action string, details map[string]interface{}, at time.Time) error {
	detailsJSON, err := json.Marshal(details)
	if err != nil {
		detailsJSON = []byte("{}")
	}

	_, err = db.ExecContext(ctx, `
		INSERT INTO audit_log (id, entity_type, entity_id, action, details, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		uuid.New().String(),
		entityType,
		entityID,
		action,
		detailsJSON,
		at,
	)
	if err != nil {
		return fmt.Errorf("audit %s %s: %w", entityType, action, err)
	}
	return nil
}
