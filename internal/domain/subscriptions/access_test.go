package subscriptions

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestComputeAccessState(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	inWindow := func(status string) *Subscription {
		return &Subscription{
			Status:    status,
			StartDate: now.AddDate(0, 0, -10),
			EndDate:   now.AddDate(0, 0, 20),
		}
	}

	tests := []struct {
		name     string
		sub      *Subscription
		expected AccessState
	}{
		{
			name:     "No subscription",
			sub:      nil,
			expected: AccessNone,
		},
		{
			name:     "Active inside window",
			sub:      inWindow(StatusActive),
			expected: AccessActive,
		},
		{
			name: "Active but window passed",
			sub: &Subscription{
				Status:    StatusActive,
				StartDate: now.AddDate(0, -2, 0),
				EndDate:   now.AddDate(0, -1, 0),
			},
			expected: AccessExpired,
		},
		{
			name: "Active but window not started",
			sub: &Subscription{
				Status:    StatusActive,
				StartDate: now.AddDate(0, 0, 1),
				EndDate:   now.AddDate(0, 1, 0),
			},
			expected: AccessExpired,
		},
		{
			name:     "Late keeps dates but blocks access",
			sub:      inWindow(StatusLate),
			expected: AccessLate,
		},
		{
			name:     "Canceled inside window still blocks access",
			sub:      inWindow(StatusCanceled),
			expected: AccessCanceled,
		},
		{
			name:     "Expired status",
			sub:      inWindow(StatusExpired),
			expected: AccessExpired,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ComputeAccessState(now, tt.sub))
			assert.Equal(t, tt.expected == AccessActive, HasEffectiveAccess(now, tt.sub))
		})
	}
}
