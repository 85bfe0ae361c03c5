package subscriptions

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlanTypeFromProduct(t *testing.T) {
	tests := []struct {
		name        string
		productName string
		expected    string
	}{
		{
			name:        "Exact magic plan name",
			productName: "plano mágico",
			expected:    PlanMagic,
		},
		{
			name:        "Exact family plan name",
			productName: "plano família",
			expected:    PlanFamily,
		},
		{
			name:        "Mixed case family plan",
			productName: "Plano Família",
			expected:    PlanFamily,
		},
		{
			name:        "Surrounding whitespace",
			productName: "  PLANO MÁGICO  ",
			expected:    PlanMagic,
		},
		{
			name:        "Unknown product defaults to magic",
			productName: "Plano Premium",
			expected:    PlanMagic,
		},
		{
			name:        "Empty product defaults to magic",
			productName: "",
			expected:    PlanMagic,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, PlanTypeFromProduct(tt.productName))
		})
	}
}

func TestNormalizeStatus(t *testing.T) {
	assert.Equal(t, StatusActive, NormalizeStatus("Active"))
	assert.Equal(t, StatusActive, NormalizeStatus("paid"))
	assert.Equal(t, StatusCanceled, NormalizeStatus("refunded"))
	assert.Equal(t, StatusCanceled, NormalizeStatus("cancelled"))
	assert.Equal(t, StatusLate, NormalizeStatus("past_due"))
	assert.Equal(t, "weird", NormalizeStatus(" Weird "))
}
