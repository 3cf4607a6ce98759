package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"scmicro_tracker/internal/domain/entities"
	"scmicro_tracker/internal/domain/extraction"
	"scmicro_tracker/internal/usecase/interfaces"

	"github.com/google/uuid"
)

type OutcomeKind string

const (
	OutcomeCreated OutcomeKind = "created"
	OutcomeUpdated OutcomeKind = "updated"
	OutcomeFailed  OutcomeKind = "failed"
)

// Outcome is the result of reconciling one row.
type Outcome struct {
	Row      int
	Kind     OutcomeKind
	EntityID string
	Reason   string
}

func failed(row int, reason string) Outcome {
	return Outcome{Row: row, Kind: OutcomeFailed, Reason: reason}
}

// rowScoped reports whether err should fail only the current row.
func rowScoped(err error) bool {
	return errors.Is(err, interfaces.ErrConflict) ||
		errors.Is(err, interfaces.ErrRejected) ||
		errors.Is(err, ErrCustomerNameRequired) ||
		errors.Is(err, ErrAmbiguousCustomer)
}

// Reconciler upserts classified rows by natural key.
//
// Work orders are keyed on quote number only; a row without a quote is always
// a new work order. Projects are keyed on quote number when present and on
// (name, customer) otherwise.
//
// The returned error is non-nil only for failures that must abort the batch.
type Reconciler struct {
	workOrders interfaces.IWorkOrderRepository
	projects   interfaces.IProjectRepository
	now        func() time.Time
}

func NewReconciler(workOrders interfaces.IWorkOrderRepository, projects interfaces.IProjectRepository) *Reconciler {
	return &Reconciler{
		workOrders: workOrders,
		projects:   projects,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

func (r *Reconciler) ReconcileWorkOrder(ctx context.Context, row int, f extraction.Fields, customer entities.Customer) (Outcome, error) {
	if f.QuoteNumber != "" {
		matches, err := r.workOrders.FindByQuoteNumber(ctx, f.QuoteNumber)
		if err != nil {
			return r.persistenceOutcome(row, err)
		}
		switch len(matches) {
		case 0:
		case 1:
			w := applyWorkOrder(matches[0], f, r.now())
			updated, err := r.workOrders.Update(ctx, w)
			if err != nil {
				return r.persistenceOutcome(row, err)
			}
			if updated.ID == "" {
				return failed(row, fmt.Sprintf("work order %s no longer exists", w.ID)), nil
			}
			return Outcome{Row: row, Kind: OutcomeUpdated, EntityID: updated.ID}, nil
		default:
			return failed(row, fmt.Sprintf("ambiguous natural key: quote number %s matches %d work orders", f.QuoteNumber, len(matches))), nil
		}
	}

	created, err := r.workOrders.Create(ctx, newWorkOrder(f, customer, r.now()))
	if err != nil {
		return r.persistenceOutcome(row, err)
	}
	return Outcome{Row: row, Kind: OutcomeCreated, EntityID: created.ID}, nil
}

func (r *Reconciler) ReconcileProject(ctx context.Context, row int, f extraction.Fields, customer entities.Customer) (Outcome, error) {
	matches, err := r.projects.FindByQuoteNumberOrNameAndCustomer(ctx, f.QuoteNumber, f.ProjectName, customer.ID)
	if err != nil {
		return r.persistenceOutcome(row, err)
	}
	switch len(matches) {
	case 0:
		created, err := r.projects.Create(ctx, newProject(f, customer, r.now()))
		if err != nil {
			return r.persistenceOutcome(row, err)
		}
		return Outcome{Row: row, Kind: OutcomeCreated, EntityID: created.ID}, nil
	case 1:
		p := applyProject(matches[0], f, r.now())
		updated, err := r.projects.Update(ctx, p)
		if err != nil {
			return r.persistenceOutcome(row, err)
		}
		if updated.ID == "" {
			return failed(row, fmt.Sprintf("project %s no longer exists", p.ID)), nil
		}
		return Outcome{Row: row, Kind: OutcomeUpdated, EntityID: updated.ID}, nil
	default:
		key := fmt.Sprintf("name %q", f.ProjectName)
		if f.QuoteNumber != "" {
			key = "quote number " + f.QuoteNumber
		}
		return failed(row, fmt.Sprintf("ambiguous natural key: %s matches %d projects", key, len(matches))), nil
	}
}

func (r *Reconciler) persistenceOutcome(row int, err error) (Outcome, error) {
	if rowScoped(err) {
		return failed(row, err.Error()), nil
	}
	return Outcome{}, err
}

func newWorkOrder(f extraction.Fields, customer entities.Customer, now time.Time) entities.WorkOrder {
	w := entities.WorkOrder{
		ID:             uuid.NewString(),
		CustomerID:     customer.ID,
		Details:        f.Description,
		Type:           f.Type,
		Status:         f.WorkOrderStatus,
		Priority:       f.Priority,
		QuoteNumber:    f.QuoteNumber,
		PONumber:       f.PONumber,
		InvoiceNumber:  f.InvoiceNumber,
		ReportRef:      f.ReportRef,
		Quantity:       f.Quantity,
		EnteredDate:    f.EnteredDate,
		TargetDate:     f.TargetDate,
		CompletionDate: f.CompletionDate,
		Notes:          f.Comments,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if f.Amount.Valid {
		w.AmountInvoiced = f.Amount.Decimal
	}
	return w
}

// applyWorkOrder overwrites the mutable fields the row actually carries.
// Inferred fields are always refreshed.
func applyWorkOrder(w entities.WorkOrder, f extraction.Fields, now time.Time) entities.WorkOrder {
	w.Type = f.Type
	w.Status = f.WorkOrderStatus
	w.Priority = f.Priority
	if f.Has(extraction.FieldDescription) || f.Has(extraction.FieldComments) {
		w.Details = f.Description
	}
	if f.Has(extraction.FieldComments) {
		w.Notes = f.Comments
	}
	if f.Has(extraction.FieldPONumber) {
		w.PONumber = f.PONumber
	}
	if f.Has(extraction.FieldInvoiceNumber) {
		w.InvoiceNumber = f.InvoiceNumber
	}
	if f.Has(extraction.FieldReportRef) {
		w.ReportRef = f.ReportRef
	}
	if f.Has(extraction.FieldQuantity) {
		w.Quantity = f.Quantity
	}
	if f.Amount.Valid {
		w.AmountInvoiced = f.Amount.Decimal
	}
	if f.EnteredDate != nil {
		w.EnteredDate = f.EnteredDate
	}
	if f.TargetDate != nil {
		w.TargetDate = f.TargetDate
	}
	if f.CompletionDate != nil {
		w.CompletionDate = f.CompletionDate
	}
	w.UpdatedAt = now
	return w
}

func newProject(f extraction.Fields, customer entities.Customer, now time.Time) entities.Project {
	p := entities.Project{
		ID:             uuid.NewString(),
		CustomerID:     customer.ID,
		Name:           f.ProjectName,
		Description:    f.Description,
		Type:           f.Type,
		Status:         f.ProjectStatus,
		Priority:       f.Priority,
		StartDate:      f.StartDate,
		TargetDate:     f.TargetDate,
		CompletionDate: f.CompletionDate,
		QuoteNumber:    f.QuoteNumber,
		PONumber:       f.PONumber,
		InvoiceNumber:  f.InvoiceNumber,
		Manager:        f.Manager,
		TechnicalLead:  f.TechnicalLead,
		Notes:          f.Comments,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if f.Amount.Valid {
		p.Budget = f.Amount.Decimal
	}
	if f.ActualCost.Valid {
		p.ActualCost = f.ActualCost.Decimal
	}
	return p
}

func applyProject(p entities.Project, f extraction.Fields, now time.Time) entities.Project {
	p.Type = f.Type
	p.Status = f.ProjectStatus
	p.Priority = f.Priority
	if f.Has(extraction.FieldProjectName) {
		p.Name = f.ProjectName
	}
	if f.Has(extraction.FieldDescription) || f.Has(extraction.FieldComments) {
		p.Description = f.Description
	}
	if f.Has(extraction.FieldComments) {
		p.Notes = f.Comments
	}
	if f.Has(extraction.FieldPONumber) {
		p.PONumber = f.PONumber
	}
	if f.Has(extraction.FieldInvoiceNumber) {
		p.InvoiceNumber = f.InvoiceNumber
	}
	if f.Has(extraction.FieldManager) {
		p.Manager = f.Manager
	}
	if f.Has(extraction.FieldTechnicalLead) {
		p.TechnicalLead = f.TechnicalLead
	}
	if f.Amount.Valid {
		p.Budget = f.Amount.Decimal
	}
	if f.ActualCost.Valid {
		p.ActualCost = f.ActualCost.Decimal
	}
	if f.StartDate != nil {
		p.StartDate = f.StartDate
	}
	if f.TargetDate != nil {
		p.TargetDate = f.TargetDate
	}
	if f.CompletionDate != nil {
		p.CompletionDate = f.CompletionDate
	}
	p.UpdatedAt = now
	return p
}
