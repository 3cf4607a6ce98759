package classification

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"scmicro_tracker/internal/domain/entities"
	"scmicro_tracker/internal/domain/extraction"
	"scmicro_tracker/internal/domain/tabular"
)

type keywordMatch[T any] struct {
	keywords []string
	value    T
}

// firstMatch returns the value of the first entry with a keyword that starts a
// word in text. Keywords may end mid-word ("cancel" matches "cancelled").
func firstMatch[T any](text string, table []keywordMatch[T]) (T, bool) {
	text = strings.ToLower(text)
	for _, m := range table {
		for _, kw := range m.keywords {
			if hasWordPrefix(text, kw) {
				return m.value, true
			}
		}
	}
	var zero T
	return zero, false
}

func hasWordPrefix(text, kw string) bool {
	for from := 0; from < len(text); {
		i := strings.Index(text[from:], kw)
		if i < 0 {
			return false
		}
		i += from
		prev, _ := utf8.DecodeLastRuneInString(text[:i])
		if i == 0 || !(unicode.IsLetter(prev) || unicode.IsDigit(prev)) {
			return true
		}
		from = i + 1
	}
	return false
}

var typeKeywords = []keywordMatch[entities.ProjectType]{
	{keywords: []string{"wirebond", "wire bond", "wire-bond"}, value: entities.ProjectTypeWirebond},
	{keywords: []string{"die attach", "die-attach"}, value: entities.ProjectTypeDieAttach},
	{keywords: []string{"flip chip", "flip-chip"}, value: entities.ProjectTypeFlipChip},
	{keywords: []string{"encapsulation"}, value: entities.ProjectTypeEncapsulation},
}

// TypeRule scans description and comments for process keywords. Work orders
// default to wirebond, projects to other.
type TypeRule struct{}

func (TypeRule) Name() string { return "type_from_description" }

func (TypeRule) Applies(extraction.Schema) bool { return true }

func (TypeRule) Apply(_ tabular.Row, f extraction.Fields) extraction.Fields {
	if t, ok := firstMatch(f.Description+"\n"+f.Comments, typeKeywords); ok {
		f.Type = t
		return f
	}
	if f.Schema == extraction.SchemaProject {
		f.Type = entities.ProjectTypeOther
	} else {
		f.Type = entities.ProjectTypeWirebond
	}
	return f
}

var workOrderStatusKeywords = []keywordMatch[entities.WorkOrderStatus]{
	{keywords: []string{"cancel"}, value: entities.WorkOrderStatusCancelled},
	{keywords: []string{"incomplete", "not complete"}, value: entities.WorkOrderStatusInProgress},
	{keywords: []string{"complete", "shipped"}, value: entities.WorkOrderStatusCompleted},
	{keywords: []string{"payment"}, value: entities.WorkOrderStatusPayment},
	{keywords: []string{"po received", "po-received", "po rcvd"}, value: entities.WorkOrderStatusPOReceived},
	{keywords: []string{"quoted"}, value: entities.WorkOrderStatusQuoted},
	{keywords: []string{"wip", "active", "in progress", "in-progress"}, value: entities.WorkOrderStatusInProgress},
	{keywords: []string{"pending"}, value: entities.WorkOrderStatusPending},
}

// WorkOrderStatusRule prefers a recognized explicit status and otherwise falls
// back to proxy evidence from reference numbers and dates.
type WorkOrderStatusRule struct{}

func (WorkOrderStatusRule) Name() string { return "work_order_status" }

func (WorkOrderStatusRule) Applies(s extraction.Schema) bool { return s == extraction.SchemaWorkOrder }

func (WorkOrderStatusRule) Apply(_ tabular.Row, f extraction.Fields) extraction.Fields {
	if st, ok := firstMatch(f.StatusText, workOrderStatusKeywords); ok {
		f.WorkOrderStatus = st
		return f
	}
	switch {
	case f.InvoiceNumber != "" && f.CompletionDate != nil:
		f.WorkOrderStatus = entities.WorkOrderStatusCompleted
	case f.QuoteNumber != "" && f.InvoiceNumber == "":
		f.WorkOrderStatus = entities.WorkOrderStatusPending
	case f.PONumber != "":
		f.WorkOrderStatus = entities.WorkOrderStatusInProgress
	default:
		f.WorkOrderStatus = entities.WorkOrderStatusPending
	}
	return f
}

// ProjectStatusRule infers project status from completion and billing evidence.
type ProjectStatusRule struct{}

func (ProjectStatusRule) Name() string { return "project_status" }

func (ProjectStatusRule) Applies(s extraction.Schema) bool { return s == extraction.SchemaProject }

func (ProjectStatusRule) Apply(_ tabular.Row, f extraction.Fields) extraction.Fields {
	switch {
	case f.CompletionDate != nil:
		f.ProjectStatus = entities.ProjectStatusCompleted
	case f.InvoiceNumber != "" || f.QuoteNumber != "":
		f.ProjectStatus = entities.ProjectStatusActive
	default:
		f.ProjectStatus = entities.ProjectStatusPlanning
	}
	return f
}

var institutionalMarkers = []string{"university", ".edu"}

// PriorityRule ranks academic customers low and strategic accounts high.
type PriorityRule struct {
	strategic []string
}

// NewPriorityRule normalizes the strategic account list; blank entries are dropped.
func NewPriorityRule(strategicAccounts []string) PriorityRule {
	names := make([]string, 0, len(strategicAccounts))
	for _, s := range strategicAccounts {
		if s = strings.ToLower(strings.TrimSpace(s)); s != "" {
			names = append(names, s)
		}
	}
	return PriorityRule{strategic: names}
}

func (PriorityRule) Name() string { return "priority_from_customer" }

func (PriorityRule) Applies(extraction.Schema) bool { return true }

func (r PriorityRule) Apply(_ tabular.Row, f extraction.Fields) extraction.Fields {
	customer := strings.ToLower(f.Customer)
	f.Priority = entities.PriorityMedium
	for _, m := range institutionalMarkers {
		if strings.Contains(customer, m) {
			f.Priority = entities.PriorityLow
			return f
		}
	}
	for _, s := range r.strategic {
		if strings.Contains(customer, s) {
			f.Priority = entities.PriorityHigh
			return f
		}
	}
	return f
}
