package extraction

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"scmicro_tracker/internal/domain/entities"
	"scmicro_tracker/internal/domain/tabular"

	"github.com/shopspring/decimal"
)

const projectNameDescriptionLimit = 50

// ValidationFailure is a row-scoped problem with a mandatory field. It is
// returned as a value so the caller can record it and move on.
type ValidationFailure struct {
	Field   Field
	Message string
}

func (v *ValidationFailure) Error() string { return v.Message }

// Fields holds canonical values for one row. Text fields use "" for absent,
// numbers use decimal.NullDecimal and dates use nil; Has reports whether a
// value came from the row rather than from a default.
//
// Type, WorkOrderStatus, ProjectStatus and Priority are filled by the
// classification rules.
type Fields struct {
	Schema Schema

	Customer      string
	Contact       string
	ProjectName   string
	Description   string
	Comments      string
	StatusText    string
	QuoteNumber   string
	PONumber      string
	InvoiceNumber string
	ReportRef     string
	Manager       string
	TechnicalLead string

	Quantity   int
	Amount     decimal.NullDecimal
	ActualCost decimal.NullDecimal

	EnteredDate    *time.Time
	StartDate      *time.Time
	TargetDate     *time.Time
	CompletionDate *time.Time

	Type            entities.ProjectType
	WorkOrderStatus entities.WorkOrderStatus
	ProjectStatus   entities.ProjectStatus
	Priority        entities.Priority

	present map[Field]bool
}

// Has reports whether field was read from the row.
func (f Fields) Has(field Field) bool {
	return f.present[field]
}

func (f *Fields) mark(field Field) {
	if f.present == nil {
		f.present = make(map[Field]bool)
	}
	f.present[field] = true
}

// Result is the outcome of extracting one row.
type Result struct {
	Fields  Fields
	Failure *ValidationFailure
}

func (r Result) OK() bool { return r.Failure == nil }

// Extract maps row onto the canonical fields of schema. Unknown headers are
// ignored and unparseable numbers or dates are treated as absent.
func Extract(row tabular.Row, schema Schema) Result {
	aliases := workOrderAliases
	if schema == SchemaProject {
		aliases = projectAliases
	}
	lookup := func(field Field) (string, bool) {
		for _, header := range aliases[field] {
			if v, ok := row.Get(header); ok {
				if v = strings.TrimSpace(v); v != "" {
					return v, true
				}
			}
		}
		return "", false
	}

	f := Fields{Schema: schema}
	text := func(field Field, dst *string) {
		if v, ok := lookup(field); ok {
			*dst = v
			f.mark(field)
		}
	}
	amount := func(field Field, dst *decimal.NullDecimal) {
		if v, ok := lookup(field); ok {
			if d, ok := ParseAmount(v); ok {
				*dst = decimal.NewNullDecimal(d)
				f.mark(field)
			}
		}
	}
	date := func(field Field, dst **time.Time) {
		if v, ok := lookup(field); ok {
			if t, ok := ParseDate(v); ok {
				*dst = &t
				f.mark(field)
			}
		}
	}

	text(FieldCustomer, &f.Customer)
	text(FieldContact, &f.Contact)
	text(FieldDescription, &f.Description)
	text(FieldComments, &f.Comments)
	text(FieldStatus, &f.StatusText)
	text(FieldQuoteNumber, &f.QuoteNumber)
	text(FieldPONumber, &f.PONumber)
	text(FieldInvoiceNumber, &f.InvoiceNumber)
	amount(FieldAmount, &f.Amount)
	date(FieldTargetDate, &f.TargetDate)
	date(FieldCompletionDate, &f.CompletionDate)

	switch schema {
	case SchemaProject:
		text(FieldProjectName, &f.ProjectName)
		text(FieldManager, &f.Manager)
		text(FieldTechnicalLead, &f.TechnicalLead)
		amount(FieldActualCost, &f.ActualCost)
		date(FieldStartDate, &f.StartDate)
	default:
		text(FieldReportRef, &f.ReportRef)
		date(FieldEnteredDate, &f.EnteredDate)
		f.Quantity = 1
		if v, ok := lookup(FieldQuantity); ok {
			if n, ok := ParseQuantity(v); ok {
				f.Quantity = n
				f.mark(FieldQuantity)
			}
		}
	}

	if f.Customer == "" {
		return Result{Fields: f, Failure: &ValidationFailure{
			Field:   FieldCustomer,
			Message: "missing required field: customer name",
		}}
	}

	// Older exports carry the job description only in the comments column.
	if f.Description == "" && f.Comments != "" {
		f.Description = f.Comments
	}
	if schema == SchemaWorkOrder && f.Description == "" {
		f.Description = fmt.Sprintf("Work order for %s - QTY: %d", f.Customer, f.Quantity)
	}
	if schema == SchemaProject && f.ProjectName == "" {
		f.ProjectName = DeriveProjectName(f.Customer, f.Description)
	}
	return Result{Fields: f}
}

// DeriveProjectName builds "<customer> - <description prefix>" for exports
// without a project name column.
func DeriveProjectName(customer, description string) string {
	description = strings.TrimSpace(description)
	if description == "" {
		return customer + " - Project"
	}
	if utf8.RuneCountInString(description) > projectNameDescriptionLimit {
		description = strings.TrimSpace(string([]rune(description)[:projectNameDescriptionLimit]))
	}
	return customer + " - " + description
}
