package assistant

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArgsNumericCoercion(t *testing.T) {
	a := args{
		"float":    12.5,
		"quoted":   "42",
		"badtext":  "sporo",
		"negative": -3.0,
	}

	f, ok := a.num("float")
	require.True(t, ok)
	assert.InDelta(t, 12.5, f, 1e-9)

	// Models like quoting numbers.
	f, ok = a.num("quoted")
	require.True(t, ok)
	assert.InDelta(t, 42, f, 1e-9)

	_, ok = a.num("badtext")
	assert.False(t, ok)
	_, ok = a.num("missing")
	assert.False(t, ok)

	assert.Equal(t, 42, a.intOr("quoted", 7))
	assert.Equal(t, 7, a.intOr("badtext", 7))
	assert.Equal(t, 7, a.intOr("negative", 7), "non-positive falls back to default")

	require.NotNil(t, a.floatPtr("float"))
	assert.Nil(t, a.floatPtr("missing"))
	assert.Nil(t, a.int64Ptr("negative"))
}

func TestArgsBoolCoercion(t *testing.T) {
	a := args{"flag": true, "text": "false", "noise": "chyba"}

	assert.True(t, a.boolOr("flag", false))
	assert.False(t, a.boolOr("text", true))
	assert.True(t, a.boolOr("noise", true))

	ptr := a.boolPtr("text")
	require.NotNil(t, ptr)
	assert.False(t, *ptr)
	assert.Nil(t, a.boolPtr("noise"))
	assert.Nil(t, a.boolPtr("missing"))
}

func TestFilterParams(t *testing.T) {
	tool, ok := FindTool("get_expenses_by_date")
	require.True(t, ok)

	kept, dropped := filterParams(tool, map[string]any{
		"start_date": "2026-08-01",
		"end_date":   "2026-08-31",
		"user_id":    5,
		"verbose":    true,
	})
	assert.Equal(t, args{"start_date": "2026-08-01", "end_date": "2026-08-31"}, kept)
	assert.Equal(t, []string{"user_id", "verbose"}, dropped)
}

func TestMissingRequired(t *testing.T) {
	tool, ok := FindTool("get_expenses_by_category")
	require.True(t, ok)

	missing := missingRequired(tool, args{"category": "Jedzenie", "start_date": ""})
	assert.Equal(t, []string{"start_date", "end_date"}, missing)

	missing = missingRequired(tool, args{
		"category": "Jedzenie", "start_date": "2026-08-01", "end_date": "2026-08-31",
	})
	assert.Empty(t, missing)
}
