// Package directory defines the reference entities resolved during event
// validation: sellers, contractors (clients) and employees.
package directory

import (
	"context"
	"errors"
	"strings"
)

// ErrNotFound is returned by lookups when no record matches the id.
var ErrNotFound = errors.New("record not found")

// ContractorType distinguishes contractor roles.
type ContractorType int

// TypeCustomer marks a contractor who is a paying customer. Only customers
// receive return-status notifications.
const TypeCustomer ContractorType = 1

// Seller is the tenant on whose behalf notifications are sent. It scopes
// localization and settings lookups.
type Seller struct {
	ID   int64
	Name string
}

// Contractor is the client entity referenced by a return-status event.
type Contractor struct {
	ID        int64
	Type      ContractorType
	Name      string
	FirstName string
	LastName  string
	Email     string
	Mobile    string
	SellerID  int64
}

// FullName joins the contractor's first and last names. Returns "" when
// neither is set; callers fall back to Name in that case.
func (c *Contractor) FullName() string {
	return joinName(c.FirstName, c.LastName)
}

// DisplayName returns the full name, falling back to the raw name field.
func (c *Contractor) DisplayName() string {
	if full := c.FullName(); full != "" {
		return full
	}
	return c.Name
}

// Employee is a staff member (creator or expert) referenced by an event.
type Employee struct {
	ID        int64
	FirstName string
	LastName  string
}

// FullName joins the employee's first and last names.
func (e *Employee) FullName() string {
	return joinName(e.FirstName, e.LastName)
}

func joinName(first, last string) string {
	return strings.TrimSpace(strings.TrimSpace(first) + " " + strings.TrimSpace(last))
}

// SellerLookup resolves sellers by id.
type SellerLookup interface {
	SellerByID(ctx context.Context, id int64) (*Seller, error)
}

// ContractorLookup resolves contractors by id.
type ContractorLookup interface {
	ContractorByID(ctx context.Context, id int64) (*Contractor, error)
}

// EmployeeLookup resolves employees by id.
type EmployeeLookup interface {
	EmployeeByID(ctx context.Context, id int64) (*Employee, error)
}

// Directory bundles all entity lookups consumed by the validation stage.
type Directory interface {
	SellerLookup
	ContractorLookup
	EmployeeLookup
}
