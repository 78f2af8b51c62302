package pipeline

import (
	"context"
	"log/slog"

	"returnnotifier/internal/directory"
	"returnnotifier/internal/events"
)

// resolvedEntities holds the entities a validated event references. They
// live only for the duration of one pipeline run.
type resolvedEntities struct {
	seller  *directory.Seller
	client  *directory.Contractor
	creator *directory.Employee
	expert  *directory.Employee
}

// validate enforces required-field and referential-integrity rules on the
// event, resolving every referenced entity. Checks short-circuit on the
// first failure; all failures are 400-class and terminal for the pipeline.
func (o *Operation) validate(ctx context.Context, ev *events.Event) (*resolvedEntities, error) {
	if ev.NotificationType == 0 {
		return nil, NewInvalidInput("Empty notificationType")
	}

	seller, err := o.lookupSeller(ctx, ev.ResellerID)
	if err != nil {
		return nil, err
	}

	client, err := o.lookupClient(ctx, ev.ClientID, seller)
	if err != nil {
		return nil, err
	}

	creator, err := o.lookupEmployee(ctx, ev.CreatorID, "Creator not found!")
	if err != nil {
		return nil, err
	}

	expert, err := o.lookupEmployee(ctx, ev.ExpertID, "Expert not found!")
	if err != nil {
		return nil, err
	}

	return &resolvedEntities{
		seller:  seller,
		client:  client,
		creator: creator,
		expert:  expert,
	}, nil
}

func (o *Operation) lookupSeller(ctx context.Context, id int64) (*directory.Seller, error) {
	if id == 0 {
		return nil, NewNotFound("Seller not found!")
	}
	seller, err := o.directory.SellerByID(ctx, id)
	if err != nil {
		slog.Debug("Seller lookup failed", "seller_id", id, "error", err)
		return nil, NewNotFound("Seller not found!")
	}
	return seller, nil
}

// lookupClient resolves the contractor and enforces the referential
// constraints: the contractor must be a customer and must belong to the
// event's seller. All failure modes collapse into one error message.
func (o *Operation) lookupClient(ctx context.Context, id int64, seller *directory.Seller) (*directory.Contractor, error) {
	if id == 0 {
		return nil, NewNotFound("Client not found!")
	}
	client, err := o.directory.ContractorByID(ctx, id)
	if err != nil {
		slog.Debug("Client lookup failed", "client_id", id, "error", err)
		return nil, NewNotFound("Client not found!")
	}
	if client.Type != directory.TypeCustomer || client.SellerID != seller.ID {
		return nil, NewNotFound("Client not found!")
	}
	return client, nil
}

func (o *Operation) lookupEmployee(ctx context.Context, id int64, notFoundMsg string) (*directory.Employee, error) {
	if id == 0 {
		return nil, NewNotFound(notFoundMsg)
	}
	employee, err := o.directory.EmployeeByID(ctx, id)
	if err != nil {
		slog.Debug("Employee lookup failed", "employee_id", id, "error", err)
		return nil, NewNotFound(notFoundMsg)
	}
	return employee, nil
}
