package util

import (
	"testing"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewULID(t *testing.T) {
	first := NewULID()
	second := NewULID()

	assert.Len(t, first, ulid.EncodedSize)
	assert.NotEqual(t, first, second)
	assert.Less(t, first, second)

	_, err := ulid.ParseStrict(first)
	require.NoError(t, err)
}
