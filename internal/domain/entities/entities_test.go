package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseWorkOrderStatus(t *testing.T) {
	assert.Equal(t, WorkOrderStatusInProgress, ParseWorkOrderStatus(" In-Progress "))
	assert.Equal(t, WorkOrderStatusPOReceived, ParseWorkOrderStatus("po-received"))
	assert.Equal(t, WorkOrderStatusPending, ParseWorkOrderStatus("waiting on customer"))
}

func TestParseProjectType(t *testing.T) {
	assert.Equal(t, ProjectTypeDieAttach, ParseProjectType("die_attach"))
	assert.Equal(t, ProjectTypeFlipChip, ParseProjectType("Flip-Chip"))
	assert.Equal(t, ProjectTypeOther, ParseProjectType("laser marking"))
}

func TestParseProjectStatus(t *testing.T) {
	assert.Equal(t, ProjectStatusOnHold, ParseProjectStatus("ON-HOLD"))
	assert.Equal(t, ProjectStatusPlanning, ParseProjectStatus(""))
}

func TestParsePriorityAndTier(t *testing.T) {
	assert.Equal(t, PriorityUrgent, ParsePriority("Urgent"))
	assert.Equal(t, PriorityMedium, ParsePriority("whenever"))
	assert.Equal(t, CustomerTierGold, ParseCustomerTier(" gold"))
	assert.Equal(t, CustomerTierBronze, ParseCustomerTier(""))
}

func TestCustomerIdentity(t *testing.T) {
	c := Customer{Company: "Acme Corp", Contact: "Jane Doe"}
	assert.True(t, c.SameCompany("  ACME corp "))
	assert.True(t, c.SameIdentity("acme corp", "jane doe"))
	assert.False(t, c.SameIdentity("acme corp", ""))
	assert.Equal(t, "acme corp", CompanyKey(" Acme Corp"))
}
