package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseKind(t *testing.T) {
	k, err := ParseKind("solar")
	require.NoError(t, err)
	assert.Equal(t, KindSolar, k)

	k, err = ParseKind("")
	require.NoError(t, err)
	assert.Equal(t, KindCustom, k)

	_, err = ParseKind("fusion")
	assert.Error(t, err)
}

func TestKindDefaultsExhaustive(t *testing.T) {
	for _, k := range AllKinds() {
		d := DefaultsFor(k)
		assert.NotEmpty(t, d.Label, "kind %s has no default label", k)
		assert.NotEmpty(t, d.Emoji, "kind %s has no default emoji", k)
		assert.NotEmpty(t, d.Unit, "kind %s has no default unit", k)
	}
	assert.Len(t, kindDefaults, len(AllKinds()))
}
