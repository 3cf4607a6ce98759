package extraction

import (
	"bytes"
	"encoding/csv"
)

var workOrderTemplate = [][]string{
	{"Date Entered", "Customer", "Contact", "Status", "Quote #", "QTY", "PO#", "Invoice #", "Amount Invoiced ($)", "Completion Date", "Project Information", "Comments"},
	{"2024-07-15", "TechCorp Industries", "John Smith", "Pending", "Q-2024-006", "50", "PO-2024-006", "", "", "", "Wirebond assembly for RF chips", ""},
	{"2024-07-15", "Innovate Solutions", "Sarah Johnson", "In Progress", "Q-2024-007", "25", "PO-2024-007", "INV-2024-007", "15,000.00", "", "Die attach for MEMS sensors", "Rush order"},
	{"2024-07-16", "Startup.io", "Mike Chen", "Completed", "Q-2024-008", "1", "PO-2024-008", "INV-2024-008", "4,965.94", "2024-08-01", "Flip chip rework", ""},
}

var projectTemplate = [][]string{
	{"Project Name", "Customer", "Contact", "Project Information", "Status", "Quote #", "PO#", "Invoice #", "Budget", "Actual Cost", "Start Date", "Target Date", "Completion Date", "PIC Name", "Comments"},
	{"RF Module Assembly", "TechCorp Industries", "John Smith", "Wirebond assembly for RF modules", "Active", "Q-2024-001", "PO-2024-001", "", "25,000.00", "12,500.00", "2024-01-15", "2024-06-30", "", "Alice Brown", ""},
	{"MEMS Sensor Packaging", "Innovate Solutions", "Sarah Johnson", "Encapsulation of MEMS sensors", "Planning", "Q-2024-002", "", "", "18000", "", "2024-02-01", "2024-08-15", "", "Bob Wilson", "Awaiting PO"},
	{"IoT Device Prototype", "State University", "", "Flip chip assembly for IoT prototype", "Completed", "Q-2024-003", "PO-2024-003", "INV-2024-003", "$15,000", "14,200", "2024-03-10", "2024-09-01", "2024-08-20", "Carol Davis", ""},
}

// Template returns the example layout (header first) for schema.
func Template(schema Schema) [][]string {
	src := workOrderTemplate
	if schema == SchemaProject {
		src = projectTemplate
	}
	out := make([][]string, len(src))
	for i, row := range src {
		out[i] = append([]string(nil), row...)
	}
	return out
}

// TemplateFilename is the attachment name offered for download.
func TemplateFilename(schema Schema) string {
	if schema == SchemaProject {
		return "projects-template.csv"
	}
	return "work-orders-template.csv"
}

// TemplateCSV renders Template(schema) as CSV.
func TemplateCSV(schema Schema) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.WriteAll(Template(schema)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
