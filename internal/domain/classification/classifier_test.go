package classification

import (
	"testing"

	"scmicro_tracker/internal/domain/entities"
	"scmicro_tracker/internal/domain/extraction"
	"scmicro_tracker/internal/domain/tabular"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var strategic = []string{"Texas Instruments", " Northrop Grumman ", ""}

func classify(t *testing.T, schema extraction.Schema, cells map[string]string) extraction.Fields {
	t.Helper()
	row := tabular.Row{Number: 1, Cells: cells}
	res := extraction.Extract(row, schema)
	require.True(t, res.OK(), "extraction failed: %v", res.Failure)
	return Default(strategic).Classify(row, res.Fields)
}

func TestDefaultRuleOrder(t *testing.T) {
	assert.Equal(t,
		[]string{"type_from_description", "work_order_status", "project_status", "priority_from_customer"},
		Default(nil).RuleNames())
}

func TestTypeRule(t *testing.T) {
	cases := []struct {
		name   string
		schema extraction.Schema
		text   string
		want   entities.ProjectType
	}{
		{name: "wire bond spaced", schema: extraction.SchemaWorkOrder, text: "Gold WIRE BOND on ceramic", want: entities.ProjectTypeWirebond},
		{name: "die attach", schema: extraction.SchemaProject, text: "Die Attach of MEMS", want: entities.ProjectTypeDieAttach},
		{name: "flip chip", schema: extraction.SchemaProject, text: "flip-chip bumping", want: entities.ProjectTypeFlipChip},
		{name: "encapsulation", schema: extraction.SchemaWorkOrder, text: "Glob top encapsulation", want: entities.ProjectTypeEncapsulation},
		{name: "first keyword in list wins", schema: extraction.SchemaProject, text: "flip chip then wirebond", want: entities.ProjectTypeWirebond},
		{name: "project default", schema: extraction.SchemaProject, text: "Consulting", want: entities.ProjectTypeOther},
		{name: "work order default", schema: extraction.SchemaWorkOrder, text: "Consulting", want: entities.ProjectTypeWirebond},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := classify(t, tc.schema, map[string]string{"Customer": "Acme", "Project Information": tc.text})
			assert.Equal(t, tc.want, f.Type)
		})
	}

	t.Run("comments are scanned", func(t *testing.T) {
		f := classify(t, extraction.SchemaProject, map[string]string{
			"Customer":            "Acme",
			"Project Information": "Prototype",
			"Comments":            "needs die-attach",
		})
		assert.Equal(t, entities.ProjectTypeDieAttach, f.Type)
	})
}

func TestWorkOrderStatusRule(t *testing.T) {
	cases := []struct {
		name  string
		cells map[string]string
		want  entities.WorkOrderStatus
	}{
		{name: "invoice and completion date", cells: map[string]string{"Invoice #": "INV-100", "Completion Date": "2024-06-01"}, want: entities.WorkOrderStatusCompleted},
		{name: "po only", cells: map[string]string{"PO#": "PO-9"}, want: entities.WorkOrderStatusInProgress},
		{name: "nothing", cells: map[string]string{}, want: entities.WorkOrderStatusPending},
		{name: "quote without invoice", cells: map[string]string{"Quote #": "Q-1", "PO#": "PO-9"}, want: entities.WorkOrderStatusPending},
		{name: "invoice without completion falls to po", cells: map[string]string{"Quote #": "Q-1", "Invoice #": "INV-1", "PO#": "PO-9"}, want: entities.WorkOrderStatusInProgress},
		{name: "explicit complete", cells: map[string]string{"Status": "COMPLETE"}, want: entities.WorkOrderStatusCompleted},
		{name: "explicit shipped", cells: map[string]string{"Status": "Shipped 6/3"}, want: entities.WorkOrderStatusCompleted},
		{name: "explicit wip", cells: map[string]string{"Status": "WIP"}, want: entities.WorkOrderStatusInProgress},
		{name: "explicit active", cells: map[string]string{"Status": "ACTIVE"}, want: entities.WorkOrderStatusInProgress},
		{name: "explicit quoted", cells: map[string]string{"Status": "QUOTED", "Invoice #": "INV-1", "Completion Date": "2024-01-01"}, want: entities.WorkOrderStatusQuoted},
		{name: "explicit po received", cells: map[string]string{"Status": "PO Received"}, want: entities.WorkOrderStatusPOReceived},
		{name: "explicit payment", cells: map[string]string{"Status": "Awaiting Payment"}, want: entities.WorkOrderStatusPayment},
		{name: "explicit cancelled", cells: map[string]string{"Status": "Cancelled"}, want: entities.WorkOrderStatusCancelled},
		{name: "incomplete is not completed", cells: map[string]string{"Status": "Incomplete"}, want: entities.WorkOrderStatusInProgress},
		{name: "inactive is not active", cells: map[string]string{"Status": "Inactive"}, want: entities.WorkOrderStatusPending},
		{name: "inactive uses proxy", cells: map[string]string{"Status": "INACTIVE", "Invoice #": "INV-1", "Completion Date": "2024-01-01"}, want: entities.WorkOrderStatusCompleted},
		{name: "keyword after punctuation", cells: map[string]string{"Status": "(active)"}, want: entities.WorkOrderStatusInProgress},
		{name: "secondary status column", cells: map[string]string{"Status2": "Shipped"}, want: entities.WorkOrderStatusCompleted},
		{name: "unrecognized explicit uses proxy", cells: map[string]string{"Status": "???", "PO#": "PO-1"}, want: entities.WorkOrderStatusInProgress},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cells := map[string]string{"Customer": "Acme"}
			for k, v := range tc.cells {
				cells[k] = v
			}
			f := classify(t, extraction.SchemaWorkOrder, cells)
			assert.Equal(t, tc.want, f.WorkOrderStatus)
			assert.Empty(t, f.ProjectStatus)
		})
	}
}

func TestProjectStatusRule(t *testing.T) {
	cases := []struct {
		name  string
		cells map[string]string
		want  entities.ProjectStatus
	}{
		{name: "completion date", cells: map[string]string{"Completion Date": "2024-06-01", "Quote #": "Q-1"}, want: entities.ProjectStatusCompleted},
		{name: "invoice", cells: map[string]string{"Invoice #": "INV-1"}, want: entities.ProjectStatusActive},
		{name: "quote", cells: map[string]string{"Quote #": "Q-1"}, want: entities.ProjectStatusActive},
		{name: "nothing", cells: map[string]string{}, want: entities.ProjectStatusPlanning},
		{name: "explicit status ignored", cells: map[string]string{"Status": "Completed"}, want: entities.ProjectStatusPlanning},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cells := map[string]string{"Customer": "Acme"}
			for k, v := range tc.cells {
				cells[k] = v
			}
			f := classify(t, extraction.SchemaProject, cells)
			assert.Equal(t, tc.want, f.ProjectStatus)
			assert.Empty(t, f.WorkOrderStatus)
		})
	}
}

func TestPriorityRule(t *testing.T) {
	cases := map[string]entities.Priority{
		"State University":                entities.PriorityLow,
		"labs.mit.edu":                    entities.PriorityLow,
		"TEXAS INSTRUMENTS Dallas":        entities.PriorityHigh,
		"Northrop Grumman":                entities.PriorityHigh,
		"University of Texas Instruments": entities.PriorityLow,
		"Acme":                            entities.PriorityMedium,
	}
	for customer, want := range cases {
		t.Run(customer, func(t *testing.T) {
			f := classify(t, extraction.SchemaWorkOrder, map[string]string{"Customer": customer})
			assert.Equal(t, want, f.Priority)
		})
	}
}

type overrideRule struct{}

func (overrideRule) Name() string                   { return "override" }
func (overrideRule) Applies(extraction.Schema) bool { return true }
func (overrideRule) Apply(_ tabular.Row, f extraction.Fields) extraction.Fields {
	f.Priority = entities.PriorityUrgent
	return f
}

func TestClassifier_LastApplicableRuleWins(t *testing.T) {
	row := tabular.Row{Number: 1, Cells: map[string]string{"Customer": "State University"}}
	res := extraction.Extract(row, extraction.SchemaWorkOrder)
	require.True(t, res.OK())

	rules := append(DefaultRules(nil), overrideRule{})
	f := New(rules...).Classify(row, res.Fields)
	assert.Equal(t, entities.PriorityUrgent, f.Priority)

	rules = append([]Rule{overrideRule{}}, DefaultRules(nil)...)
	f = New(rules...).Classify(row, res.Fields)
	assert.Equal(t, entities.PriorityLow, f.Priority)
}
