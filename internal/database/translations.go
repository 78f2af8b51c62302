package database

import (
	"context"
	"database/sql"
	"fmt"
)

// Template returns the reseller's override text for a template key, or ""
// when the reseller carries no override. The localization catalog falls
// back to its built-in defaults in that case.
func (db *DB) Template(ctx context.Context, resellerID int64, key string) (string, error) {
	query := `
		SELECT text
		FROM translations
		WHERE reseller_id = $1 AND key = $2
	`
	var text string
	err := db.conn.QueryRowContext(ctx, query, resellerID, key).Scan(&text)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to get translation %q for reseller %d: %w", key, resellerID, err)
	}
	return text, nil
}
