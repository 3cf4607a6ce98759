package usecase

// RowError is one row-scoped failure. Row numbers count data rows from 1.
type RowError struct {
	Row     int
	Message string
}

// BatchReport summarizes one ingestion batch.
type BatchReport struct {
	Processed        int
	Created          int
	Updated          int
	CustomersCreated int
	Errors           []RowError
}

// ReportBuilder accumulates row outcomes in row order.
type ReportBuilder struct {
	report BatchReport
}

func NewReportBuilder() *ReportBuilder {
	return &ReportBuilder{report: BatchReport{Errors: []RowError{}}}
}

func (b *ReportBuilder) Record(o Outcome) {
	b.report.Processed++
	switch o.Kind {
	case OutcomeCreated:
		b.report.Created++
	case OutcomeUpdated:
		b.report.Updated++
	default:
		b.report.Errors = append(b.report.Errors, RowError{Row: o.Row, Message: o.Reason})
	}
}

func (b *ReportBuilder) CustomerCreated() {
	b.report.CustomersCreated++
}

// Report returns a copy of the counters collected so far.
func (b *ReportBuilder) Report() BatchReport {
	r := b.report
	r.Errors = append([]RowError{}, b.report.Errors...)
	return r
}
