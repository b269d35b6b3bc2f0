package expand

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAssignments(t *testing.T) {
	settings, errs := parseAssignments(`
CurrentModule = store
Depth = 3
Private = false
Pages = ["api.md", "types.md"]
Title = "Getting Started"
`)
	require.Empty(t, errs)

	assert.Equal(t, "store", settings["CurrentModule"])
	assert.Equal(t, 3, settings["Depth"])
	assert.Equal(t, false, settings["Private"])
	assert.Equal(t, []any{"api.md", "types.md"}, settings["Pages"])
	assert.Equal(t, "Getting Started", settings["Title"])
}

func TestParseAssignments_BadLinesDegrade(t *testing.T) {
	settings, errs := parseAssignments("Depth = 2\nnot an assignment\nPages = [\n")
	assert.Equal(t, 2, settings["Depth"])
	require.Len(t, errs, 2)
	assert.Contains(t, errs[0].Error(), "not a Key = value assignment")
	assert.Contains(t, errs[1].Error(), "unterminated list")
}

func TestParseValue(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  any
	}{
		{"true", "true", true},
		{"false", "false", false},
		{"int", "42", 42},
		{"quoted string", `"a b"`, "a b"},
		{"bare identifier", "store", "store"},
		{"dotted identifier", "store.Cache", "store.Cache"},
		{"path identifier", "pkg/store", "pkg/store"},
		{"empty list", "[]", []any{}},
		{"mixed list", "[store, 2]", []any{"store", 2}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := parseValue(tc.input)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}

	t.Run("rejects garbage", func(t *testing.T) {
		_, err := parseValue("a b c")
		assert.Error(t, err)
	})

	t.Run("rejects empty list element", func(t *testing.T) {
		_, err := parseValue("[a,,b]")
		assert.Error(t, err)
	})
}

func TestStringList(t *testing.T) {
	settings := map[string]any{
		"One":  "solo.md",
		"Many": []any{"a.md", "b.md"},
		"N":    7,
	}
	assert.Equal(t, []string{"solo.md"}, stringList(settings, "One"), "scalars promote to one-element lists")
	assert.Equal(t, []string{"a.md", "b.md"}, stringList(settings, "Many"))
	assert.Nil(t, stringList(settings, "N"))
	assert.Nil(t, stringList(settings, "Absent"))
}

func TestBoolIntDefaults(t *testing.T) {
	settings := map[string]any{"B": false, "I": 5}
	assert.False(t, boolOr(settings, "B", true))
	assert.True(t, boolOr(settings, "Missing", true))
	assert.Equal(t, 5, intOr(settings, "I", 2))
	assert.Equal(t, 2, intOr(settings, "Missing", 2))
}
