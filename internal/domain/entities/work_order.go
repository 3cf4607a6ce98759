package entities

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// WorkOrderStatus is the lifecycle of a work order (work request).

type WorkOrderStatus string

const (
	WorkOrderStatusPending    WorkOrderStatus = "pending"
	WorkOrderStatusInProgress WorkOrderStatus = "in-progress"
	WorkOrderStatusQuoted     WorkOrderStatus = "quoted"
	WorkOrderStatusPOReceived WorkOrderStatus = "po-received"
	WorkOrderStatusCompleted  WorkOrderStatus = "completed"
	WorkOrderStatusShipped    WorkOrderStatus = "shipped"
	WorkOrderStatusPayment    WorkOrderStatus = "payment"
	WorkOrderStatusCancelled  WorkOrderStatus = "cancelled"
)

var workOrderStatuses = []WorkOrderStatus{
	WorkOrderStatusPending,
	WorkOrderStatusInProgress,
	WorkOrderStatusQuoted,
	WorkOrderStatusPOReceived,
	WorkOrderStatusCompleted,
	WorkOrderStatusShipped,
	WorkOrderStatusPayment,
	WorkOrderStatusCancelled,
}

// ParseWorkOrderStatus returns the enumerated status for s; anything unrecognized is pending.
func ParseWorkOrderStatus(s string) WorkOrderStatus {
	v := strings.ToLower(strings.TrimSpace(s))
	for _, st := range workOrderStatuses {
		if v == string(st) {
			return st
		}
	}
	return WorkOrderStatusPending
}

// Priority is shared by work orders and projects.

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// ParsePriority defaults to medium.
func ParsePriority(s string) Priority {
	switch Priority(strings.ToLower(strings.TrimSpace(s))) {
	case PriorityLow:
		return PriorityLow
	case PriorityHigh:
		return PriorityHigh
	case PriorityUrgent:
		return PriorityUrgent
	default:
		return PriorityMedium
	}
}

// WorkOrder is a single production task for a customer.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI1 (quote_number-index): quote_number
//   - uniqueness sentinel item "work_order#quote#<quote_number>" when quoted
//
// Monetary representation:
//   - AmountInvoiced is a decimal, persisted as its string form.
type WorkOrder struct {
	ID             string          `json:"id"`
	CustomerID     string          `json:"customer_id"`
	Details        string          `json:"details"`
	Type           ProjectType     `json:"type"`
	Status         WorkOrderStatus `json:"status"`
	Priority       Priority        `json:"priority"`
	QuoteNumber    string          `json:"quote_number"`
	PONumber       string          `json:"po_number"`
	InvoiceNumber  string          `json:"invoice_number"`
	ReportRef      string          `json:"report_ref"`
	Quantity       int             `json:"quantity"`
	AmountInvoiced decimal.Decimal `json:"amount_invoiced"`
	EnteredDate    *time.Time      `json:"entered_date,omitempty"`
	TargetDate     *time.Time      `json:"target_date,omitempty"`
	CompletionDate *time.Time      `json:"completion_date,omitempty"`
	Notes          string          `json:"notes"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}
