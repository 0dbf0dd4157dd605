package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusText(t *testing.T) {
	s := New()
	assert.Equal(t, PlaceholderTypeName, s.StatusText())

	s.LastResultTypeName = "int"
	assert.Equal(t, "int", s.StatusText())

	s.LastResultTypeName = ""
	assert.Equal(t, PlaceholderTypeName, s.StatusText())
}
