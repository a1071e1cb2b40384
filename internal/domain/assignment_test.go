package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAssignmentStatus(t *testing.T) {
	for _, status := range AssignmentStatuses() {
		parsed, err := ParseAssignmentStatus(string(status))
		require.NoError(t, err)
		assert.Equal(t, status, parsed)
	}

	_, err := ParseAssignmentStatus("shipped")
	assert.Error(t, err)

	_, err = ParseAssignmentStatus("")
	assert.Error(t, err)
}

func TestParseAssignmentPriority(t *testing.T) {
	parsed, err := ParseAssignmentPriority("urgent")
	require.NoError(t, err)
	assert.Equal(t, PriorityUrgent, parsed)

	_, err = ParseAssignmentPriority("critical")
	assert.Error(t, err)
}

func TestAssignmentStatusTerminal(t *testing.T) {
	assert.True(t, StatusCompleted.Terminal())
	assert.True(t, StatusCancelled.Terminal())
	assert.False(t, StatusOnHold.Terminal())
	assert.False(t, StatusInProgress.Terminal())
}

func TestParseRuleTrigger(t *testing.T) {
	for _, trigger := range []RuleTrigger{TriggerStatusChange, TriggerServiceCompleted, TriggerServiceOnHold, TriggerNewService} {
		parsed, err := ParseRuleTrigger(string(trigger))
		require.NoError(t, err)
		assert.Equal(t, trigger, parsed)
	}
	_, err := ParseRuleTrigger("assignment_deleted")
	assert.Error(t, err)
}

func TestParseChannel(t *testing.T) {
	parsed, err := ParseChannel("whatsapp")
	require.NoError(t, err)
	assert.Equal(t, ChannelWhatsapp, parsed)

	_, err = ParseChannel("fax")
	assert.Error(t, err)
}
