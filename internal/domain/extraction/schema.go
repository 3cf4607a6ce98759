// Package extraction maps vendor spreadsheet headers onto canonical work order
// and project fields.
package extraction

import (
	"errors"
	"strings"
)

// Schema selects the alias set and natural key applied to a batch.
type Schema string

const (
	SchemaWorkOrder Schema = "work_order"
	SchemaProject   Schema = "project"
)

var ErrUnknownSchema = errors.New("unknown import type")

// ParseSchema accepts the upload type selector in its current and legacy spellings.
func ParseSchema(s string) (Schema, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "work_orders", "work_order", "workorders", "work-orders":
		return SchemaWorkOrder, nil
	case "projects", "project":
		return SchemaProject, nil
	}
	return "", ErrUnknownSchema
}

// Selector is the value used by the upload and template endpoints.
func (s Schema) Selector() string {
	if s == SchemaProject {
		return "projects"
	}
	return "work_orders"
}

// Field names a canonical extracted value.
type Field string

const (
	FieldCustomer       Field = "customer"
	FieldContact        Field = "contact"
	FieldProjectName    Field = "project_name"
	FieldDescription    Field = "description"
	FieldComments       Field = "comments"
	FieldStatus         Field = "status"
	FieldQuoteNumber    Field = "quote_number"
	FieldPONumber       Field = "po_number"
	FieldInvoiceNumber  Field = "invoice_number"
	FieldReportRef      Field = "report_ref"
	FieldQuantity       Field = "quantity"
	FieldAmount         Field = "amount"
	FieldActualCost     Field = "actual_cost"
	FieldEnteredDate    Field = "entered_date"
	FieldStartDate      Field = "start_date"
	FieldTargetDate     Field = "target_date"
	FieldCompletionDate Field = "completion_date"
	FieldManager        Field = "manager"
	FieldTechnicalLead  Field = "technical_lead"
)
