package storage

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestObjectKey(t *testing.T) {
	a := ObjectKey("X-Ray.PNG")
	b := ObjectKey("X-Ray.PNG")

	assert.NotEqual(t, a, b)
	assert.True(t, strings.HasPrefix(a, "consultations/"))
	assert.True(t, strings.HasSuffix(a, ".png"))
	assert.False(t, strings.Contains(ObjectKey("noext"), "."))
	assert.False(t, strings.HasSuffix(ObjectKey("weird.extension-too-long"), "too-long"))
}
