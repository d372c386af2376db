package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeArgs(t *testing.T) {
	store := NewMetaStore(Commands)
	tests := []struct {
		name string
		cmd  string
		args []string
		want []string
	}{
		{"enums canonicalized", "canny", []string{"Kernel159", "MidPoint", "0.01"}, []string{"kernel159", "midpoint", "0.01"}},
		{"optional left empty", "canny", nil, []string{"", "", ""}},
		{"int trimmed", "ditherLevels", []string{" 4 "}, []string{"4"}},
		{"float normalized", "threshold", []string{"0.50"}, []string{"0.5"}},
		{"no args", "dither", nil, []string{}},
		{"rotate enum", "rotate", []string{"270"}, []string{"270"}},
		{"seed optional", "jitter", []string{"3"}, []string{"3", ""}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeArgs(store, tt.cmd, tt.args)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizeArgsErrors(t *testing.T) {
	store := NewMetaStore(Commands)
	tests := []struct {
		name string
		cmd  string
		args []string
		msg  string
	}{
		{"below min", "ditherLevels", []string{"1"}, "min"},
		{"above max", "noise", []string{"uniform", "1.5"}, "max"},
		{"not an int", "posterize", []string{"many"}, "expected integer"},
		{"not a float", "threshold", []string{"half"}, "expected float"},
		{"missing required", "stages", nil, "missing required parameter: stage"},
		{"bad enum", "rotate", []string{"45"}, "not one of"},
		{"too many", "dither", []string{"1"}, "at most 0"},
		{"unknown", "sharpen", nil, "unknown command"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NormalizeArgs(store, tt.cmd, tt.args)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}

	_, err := NormalizeArgs(nil, "canny", nil)
	assert.Error(t, err)
}

func TestResolve(t *testing.T) {
	store := NewMetaStore(Commands)

	name, err := store.Resolve("post")
	require.NoError(t, err)
	assert.Equal(t, "posterize", name)

	name, err = store.Resolve("DITHER")
	require.NoError(t, err)
	assert.Equal(t, "dither", name)

	name, err = store.Resolve("b")
	require.NoError(t, err)
	assert.Equal(t, "braille", name)

	_, err = store.Resolve("d")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ditherLevels")

	_, err = store.Resolve("zzz")
	assert.Error(t, err)
}

func TestValidationRules(t *testing.T) {
	c, ok := LookupCommand("noise")
	require.True(t, ok)
	rules := GenerateValidationRules(c)

	assert.Equal(t, ParamTypeEnum, rules["type"].Type)
	assert.Equal(t, []string{"gaussian", "uniform"}, rules["type"].EnumOptions)
	require.NotNil(t, rules["amount"].Min)
	require.NotNil(t, rules["amount"].Max)
	assert.Equal(t, 0.0, *rules["amount"].Min)
	assert.Equal(t, 1.0, *rules["amount"].Max)
	assert.False(t, rules["seed"].Required)
}

func TestTooltip(t *testing.T) {
	store := NewMetaStore(Commands)
	tip, err := store.GetTooltip("canny")
	require.NoError(t, err)
	assert.Contains(t, tip, "parameters:")
	assert.Contains(t, tip, "- smoothing (enum, optional): separable|kernel159 (default: separable)")

	tip, err = store.GetTooltip("grayscale")
	require.NoError(t, err)
	assert.Contains(t, tip, "(no parameters)")

	_, _, err = store.GetCommandHelp("nope")
	assert.Error(t, err)
}

func TestCommandsAreConsistent(t *testing.T) {
	seen := map[string]bool{}
	for _, c := range Commands {
		assert.False(t, seen[c.Name], "duplicate command %s", c.Name)
		seen[c.Name] = true
		assert.NotEmpty(t, c.Description, c.Name)
		for _, a := range c.Args {
			if a.Type == "enum" {
				assert.Contains(t, a.Description, "|", "%s.%s lists no options", c.Name, a.Name)
			}
		}
	}
}

func TestParseBoolLike(t *testing.T) {
	for _, in := range []string{"yes", "ON", "1", "t"} {
		got, err := parseBoolLikeToString(in)
		require.NoError(t, err)
		assert.Equal(t, "true", got)
	}
	got, err := parseBoolLikeToString("off")
	require.NoError(t, err)
	assert.Equal(t, "false", got)
	_, err = parseBoolLikeToString("maybe")
	assert.Error(t, err)
}
