package database

import (
	"context"
	"database/sql"
	"fmt"

	"returnnotifier/internal/directory"
)

// SellerByID retrieves a seller by id.
func (db *DB) SellerByID(ctx context.Context, id int64) (*directory.Seller, error) {
	query := `
		SELECT id, name
		FROM sellers
		WHERE id = $1
	`
	var seller directory.Seller
	err := db.conn.QueryRowContext(ctx, query, id).Scan(&seller.ID, &seller.Name)
	if err == sql.ErrNoRows {
		return nil, directory.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get seller %d: %w", id, err)
	}
	return &seller, nil
}

// ContractorByID retrieves a contractor by id, including its owning seller.
func (db *DB) ContractorByID(ctx context.Context, id int64) (*directory.Contractor, error) {
	query := `
		SELECT id, type, name, COALESCE(first_name, ''), COALESCE(last_name, ''),
		       COALESCE(email, ''), COALESCE(mobile, ''), seller_id
		FROM contractors
		WHERE id = $1
	`
	var c directory.Contractor
	err := db.conn.QueryRowContext(ctx, query, id).Scan(
		&c.ID,
		&c.Type,
		&c.Name,
		&c.FirstName,
		&c.LastName,
		&c.Email,
		&c.Mobile,
		&c.SellerID,
	)
	if err == sql.ErrNoRows {
		return nil, directory.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get contractor %d: %w", id, err)
	}
	return &c, nil
}

// EmployeeByID retrieves an employee by id.
func (db *DB) EmployeeByID(ctx context.Context, id int64) (*directory.Employee, error) {
	query := `
		SELECT id, COALESCE(first_name, ''), COALESCE(last_name, '')
		FROM employees
		WHERE id = $1
	`
	var e directory.Employee
	err := db.conn.QueryRowContext(ctx, query, id).Scan(&e.ID, &e.FirstName, &e.LastName)
	if err == sql.ErrNoRows {
		return nil, directory.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get employee %d: %w", id, err)
	}
	return &e, nil
}
