package entities

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ProjectType is the process family of a project or work order.

type ProjectType string

const (
	ProjectTypeWirebond      ProjectType = "wirebond"
	ProjectTypeDieAttach     ProjectType = "die-attach"
	ProjectTypeFlipChip      ProjectType = "flip-chip"
	ProjectTypeEncapsulation ProjectType = "encapsulation"
	ProjectTypeAssembly      ProjectType = "assembly"
	ProjectTypeTesting       ProjectType = "testing"
	ProjectTypeOther         ProjectType = "other"
)

var projectTypes = []ProjectType{
	ProjectTypeWirebond,
	ProjectTypeDieAttach,
	ProjectTypeFlipChip,
	ProjectTypeEncapsulation,
	ProjectTypeAssembly,
	ProjectTypeTesting,
	ProjectTypeOther,
}

// ParseProjectType accepts both dash and underscore spellings; unknown is other.
func ParseProjectType(s string) ProjectType {
	v := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "_", "-")
	for _, t := range projectTypes {
		if v == string(t) {
			return t
		}
	}
	return ProjectTypeOther
}

type ProjectStatus string

const (
	ProjectStatusPlanning  ProjectStatus = "planning"
	ProjectStatusActive    ProjectStatus = "active"
	ProjectStatusOnHold    ProjectStatus = "on-hold"
	ProjectStatusCompleted ProjectStatus = "completed"
	ProjectStatusCancelled ProjectStatus = "cancelled"
)

var projectStatuses = []ProjectStatus{
	ProjectStatusPlanning,
	ProjectStatusActive,
	ProjectStatusOnHold,
	ProjectStatusCompleted,
	ProjectStatusCancelled,
}

// ParseProjectStatus defaults to planning.
func ParseProjectStatus(s string) ProjectStatus {
	v := strings.ToLower(strings.TrimSpace(s))
	for _, st := range projectStatuses {
		if v == string(st) {
			return st
		}
	}
	return ProjectStatusPlanning
}

// Project groups work for a customer with its own lifecycle.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI1 (quote_number-index): quote_number
//   - GSI2 (customer_id-index): customer_id
type Project struct {
	ID             string          `json:"id"`
	CustomerID     string          `json:"customer_id"`
	Name           string          `json:"name"`
	Description    string          `json:"description"`
	Type           ProjectType     `json:"type"`
	Status         ProjectStatus   `json:"status"`
	Priority       Priority        `json:"priority"`
	Budget         decimal.Decimal `json:"budget"`
	ActualCost     decimal.Decimal `json:"actual_cost"`
	StartDate      *time.Time      `json:"start_date,omitempty"`
	TargetDate     *time.Time      `json:"target_date,omitempty"`
	CompletionDate *time.Time      `json:"completion_date,omitempty"`
	QuoteNumber    string          `json:"quote_number"`
	PONumber       string          `json:"po_number"`
	InvoiceNumber  string          `json:"invoice_number"`
	Manager        string          `json:"manager"`
	TechnicalLead  string          `json:"technical_lead"`
	Notes          string          `json:"notes"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}
