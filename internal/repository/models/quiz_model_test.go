package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStringSlice_NilValuesAsEmptyArray(t *testing.T) {
	var s StringSlice
	val, err := s.Value()
	require.NoError(t, err)
	assert.Equal(t, "[]", val)
}

func TestStringSlice_ScanHandlesNullAndEmpty(t *testing.T) {
	for _, raw := range []interface{}{nil, "", []byte(""), "null"} {
		var s StringSlice
		require.NoError(t, s.Scan(raw))
		assert.Empty(t, s)
		assert.NotNil(t, s)
	}
}

func TestStringSlice_ScanRejectsUnsupportedType(t *testing.T) {
	var s StringSlice
	assert.Error(t, s.Scan(42))
}

func TestEntityMap_Scan(t *testing.T) {
	var m EntityMap
	require.NoError(t, m.Scan(`{"people":["Rob Pike"]}`))
	assert.Equal(t, []string{"Rob Pike"}, m["people"])
}

func TestQuestionList_Scan(t *testing.T) {
	var q QuestionList
	require.NoError(t, q.Scan([]byte(`[{"question":"Who?","options":["a","b"],"answer":"a"}]`)))
	require.Len(t, q, 1)
	assert.Equal(t, "Who?", q[0].Question)
	assert.Equal(t, []string{"a", "b"}, q[0].Options)
}
