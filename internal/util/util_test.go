package util

import (
	"testing"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
)

func TestNewULID(t *testing.T) {
	id := NewULID()
	assert.Len(t, id, ulid.EncodedSize)

	_, err := ulid.ParseStrict(id)
	assert.NoError(t, err)
	assert.NotEqual(t, id, NewULID())
}

func TestStringToNullString(t *testing.T) {
	assert.False(t, StringToNullString("").Valid)

	ns := StringToNullString("A")
	assert.True(t, ns.Valid)
	assert.Equal(t, "A", ns.String)
}
