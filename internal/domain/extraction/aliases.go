package extraction

// Header spellings seen across vendor exports. Matching is case-sensitive and
// the first alias with a non-empty cell wins, so order matters.

var commonAliases = map[Field][]string{
	FieldCustomer:       {"Customer", "Company Name", "Company", "Customer Name", "Client"},
	FieldContact:        {"Contact", "Contact Name", "Customer Contact"},
	FieldDescription:    {"Project Information", "Work Request Details", "Project Description", "Description", "Details"},
	FieldComments:       {"Comments", "Notes", "Remarks"},
	FieldStatus:         {"Status", "Status2", "Current Status", "Order Status"},
	FieldQuoteNumber:    {"Quote #", "Quote#", "Quote Number", "Quote No", "Xero Quote #"},
	FieldPONumber:       {"PO#", "PO #", "PO Number", "Purchase Order"},
	FieldInvoiceNumber:  {"Invoice #", "Invoice#", "Invoice Number", "Invoice No"},
	FieldTargetDate:     {"Target Date", "Ship Date", "Due Date"},
	FieldCompletionDate: {"Completion Date", "Date Completed", "Completed"},
}

var workOrderAliases = merge(commonAliases, map[Field][]string{
	FieldReportRef:   {"SC Micro Report", "Report", "Report Link"},
	FieldQuantity:    {"QTY", "Qty", "Quantity"},
	FieldAmount:      {"Amount Invoiced ($)", "Amt Invoiced ($)", "Amount", "Invoice Amount"},
	FieldEnteredDate: {"Date Entered", "Entered", "Order Date"},
})

var projectAliases = merge(commonAliases, map[Field][]string{
	FieldProjectName:   {"Project Name", "Project"},
	FieldAmount:        {"Budget", "Budget ($)", "Amount Invoiced ($)", "Amt Invoiced ($)", "Amount"},
	FieldActualCost:    {"Actual Cost", "Actual Cost ($)"},
	FieldStartDate:     {"Start Date", "Date Entered"},
	FieldManager:       {"Project Manager", "PIC Name", "Manager"},
	FieldTechnicalLead: {"Technical Lead", "Tech Lead", "PIC Name"},
})

// Aliases returns the header spellings accepted for field under schema.
func Aliases(schema Schema, field Field) []string {
	src := workOrderAliases
	if schema == SchemaProject {
		src = projectAliases
	}
	out := make([]string, len(src[field]))
	copy(out, src[field])
	return out
}

func merge(base, extra map[Field][]string) map[Field][]string {
	out := make(map[Field][]string, len(base)+len(extra))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range extra {
		out[k] = v
	}
	return out
}
