package database

import (
	"context"
	"database/sql"
	"fmt"
)

// EmailFrom returns the reseller's send-from address, or "" when the
// reseller carries no email configuration.
func (db *DB) EmailFrom(ctx context.Context, resellerID int64) (string, error) {
	query := `
		SELECT COALESCE(email_from, '')
		FROM reseller_settings
		WHERE reseller_id = $1
	`
	var emailFrom string
	err := db.conn.QueryRowContext(ctx, query, resellerID).Scan(&emailFrom)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to get send-from address for reseller %d: %w", resellerID, err)
	}
	return emailFrom, nil
}

// EmailsByPermit returns the staff addresses subscribed to a permission
// for the reseller, ordered for deterministic fan-out.
func (db *DB) EmailsByPermit(ctx context.Context, resellerID int64, permit string) ([]string, error) {
	query := `
		SELECT email
		FROM staff_subscriptions
		WHERE reseller_id = $1 AND permit = $2 AND enabled = TRUE
		ORDER BY email ASC
	`
	rows, err := db.conn.QueryContext(ctx, query, resellerID, permit)
	if err != nil {
		return nil, fmt.Errorf("failed to query staff subscriptions: %w", err)
	}
	defer rows.Close()

	var emails []string
	for rows.Next() {
		var email string
		if err := rows.Scan(&email); err != nil {
			return nil, fmt.Errorf("failed to scan staff subscription: %w", err)
		}
		emails = append(emails, email)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating staff subscriptions: %w", err)
	}

	return emails, nil
}
