package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStepOrder(t *testing.T) {
	cases := []struct {
		status AssignmentStatus
		order  float64
	}{
		{StatusNewRequest, 1},
		{StatusWorkStarted, 2},
		{StatusInProgress, 3},
		{StatusWaitingForParts, 3.5},
		{StatusCompleted, 4},
		{StatusOnHold, 0},
		{StatusCancelled, 0},
		{AssignmentStatus("no_such_status"), 0},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.order, StepOrder(tc.status), "status %s", tc.status)
	}
}

func TestIsStepActiveMatrix(t *testing.T) {
	steps := ProgressSteps()
	require.Len(t, steps, 5)

	// active steps per status, keyed by step order
	expected := map[AssignmentStatus][]float64{
		StatusNewRequest:      {1},
		StatusWorkStarted:     {1, 2},
		StatusInProgress:      {1, 2, 3},
		StatusWaitingForParts: {1, 2, 3, 3.5},
		StatusCompleted:       {1, 2, 3, 3.5, 4},
		StatusOnHold:          {},
		StatusCancelled:       {},
	}
	for status, activeOrders := range expected {
		for _, step := range steps {
			want := false
			for _, order := range activeOrders {
				if step.Order == order {
					want = true
				}
			}
			assert.Equal(t, want, IsStepActive(status, step), "status %s step %s", status, step.Key)
		}
	}
}

func TestBarStepsExcludesWaiting(t *testing.T) {
	steps := BarSteps()
	require.Len(t, steps, 4)
	for _, step := range steps {
		assert.NotEqual(t, StatusWaitingForParts, step.Key)
	}
}

func TestSuspendsProgress(t *testing.T) {
	assert.True(t, SuspendsProgress(StatusOnHold))
	assert.True(t, SuspendsProgress(StatusCancelled))
	assert.False(t, SuspendsProgress(StatusInProgress))
	assert.False(t, SuspendsProgress(StatusCompleted))
}
