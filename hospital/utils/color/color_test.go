package color

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDisable_LeavesTextPlain(t *testing.T) {
	Disable()
	assert.Equal(t, "done", Success("done"))
	assert.Equal(t, "careful", Warning("careful"))
	assert.Equal(t, "boom", Error("boom"))
	assert.Equal(t, "note", Info("note"))
}
