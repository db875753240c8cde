package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	assert.True(t, StatusPending.CanTransition(StatusAccepted))
	assert.True(t, StatusPending.CanTransition(StatusRejected))
	assert.True(t, StatusAccepted.CanTransition(StatusCompleted))

	assert.False(t, StatusPending.CanTransition(StatusCompleted))
	assert.False(t, StatusRejected.CanTransition(StatusAccepted))
	assert.False(t, StatusCompleted.CanTransition(StatusAccepted))
	assert.False(t, StatusAccepted.CanTransition(StatusAccepted))
}

func TestParseTargetStatus(t *testing.T) {
	_, ok := ParseTargetStatus("InvalidState")
	assert.False(t, ok)
	_, ok = ParseTargetStatus("Pending")
	assert.False(t, ok)
	st, ok := ParseTargetStatus("Completed")
	assert.True(t, ok)
	assert.Equal(t, StatusCompleted, st)
}

func TestRoomName(t *testing.T) {
	assert.Equal(t, "chat:42", RoomName(42))
}
