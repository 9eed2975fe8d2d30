package records

import (
	"encoding/json"
	"testing"

	"github.com/go-faker/faker/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchesSubset(t *testing.T) {
	name := faker.Name()
	fields := Submission{"name": name, "msg": faker.Sentence()}

	t.Run("Given an empty subset", func(t *testing.T) {
		matched, err := MatchesSubset(fields, json.RawMessage(`{}`))
		require.NoError(t, err)
		assert.True(t, matched)
	})

	t.Run("Given a matching subset", func(t *testing.T) {
		subset, err := json.Marshal(map[string]string{"name": name})
		require.NoError(t, err)
		matched, err := MatchesSubset(fields, subset)
		require.NoError(t, err)
		assert.True(t, matched)
	})

	t.Run("Given a differing value", func(t *testing.T) {
		subset, err := json.Marshal(map[string]string{"name": name + " Jr."})
		require.NoError(t, err)
		matched, err := MatchesSubset(fields, subset)
		require.NoError(t, err)
		assert.False(t, matched)
	})

	t.Run("Given invalid JSON", func(t *testing.T) {
		_, err := MatchesSubset(fields, json.RawMessage(`{"name":`))
		assert.Error(t, err)
	})
}

func TestFieldEquals(t *testing.T) {
	fields := Submission{"name": "Ann", "msg": "Hi"}

	matched, err := FieldEquals(fields, "name", "Ann")
	require.NoError(t, err)
	assert.True(t, matched)

	matched, err = FieldEquals(fields, "msg", "Bye")
	require.NoError(t, err)
	assert.False(t, matched)

	matched, err = FieldEquals(fields, "missing", "Ann")
	require.NoError(t, err)
	assert.False(t, matched, "missing fields never match")

	_, err = FieldEquals(fields, " ", "Ann")
	assert.Error(t, err)
}
