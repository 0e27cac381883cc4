package tool

import (
	"context"
	"encoding/json"
	"testing"

	ai "github.com/spetersoncode/scout"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func calc(t *testing.T, h Handler, expr string) (string, error) {
	t.Helper()
	args, err := json.Marshal(map[string]string{"expression": expr})
	require.NoError(t, err)
	return h(context.Background(), ai.ToolCall{ID: "c", Name: CalculatorToolName, Arguments: string(args)})
}

func TestCalculatorTool(t *testing.T) {
	tl, h := NewCalculatorTool()
	assert.Equal(t, CalculatorToolName, tl.Name)

	tests := []struct {
		expr string
		want string
	}{
		{"1 + 2", "3"},
		{"7 / 2", "3.5"},
		{"(37.5 - 12) * 4 / 3", "34"},
		{"-3 * 2", "-6"},
		{"2.5e2 + 1", "251"},
		{"1000000 * 3", "3e+06"},
		{"10 > 3", "true"},
		{"1 == 2", "false"},
	}
	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			got, err := calc(t, h, tt.expr)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("rejects", func(t *testing.T) {
		for _, expr := range []string{
			"",
			"1 +",
			"1 / 0",
			"os.exit(1)",
			"x * 2",
			"'abc'",
		} {
			_, err := calc(t, h, expr)
			assert.Error(t, err, expr)
		}
	})
}

func TestPromoteIntLiterals(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"1 + 2", "1.0 + 2.0"},
		{"1.5 + 2", "1.5 + 2.0"},
		{"1e3", "1e3"},
		{"1e-3 * 4", "1e-3 * 4.0"},
		{"0x1F", "0x1F"},
		{"3u", "3u"},
		{"x1 + 2", "x1 + 2.0"},
		{"'a1' + \"2\"", "'a1' + \"2\""},
		{"(10)", "(10.0)"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, promoteIntLiterals(tt.in))
		})
	}
}
