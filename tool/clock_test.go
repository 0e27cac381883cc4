package tool

import (
	"context"
	"testing"
	"time"

	ai "github.com/spetersoncode/scout"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClockTool(t *testing.T) {
	fixed := time.Date(2024, time.March, 9, 14, 30, 0, 0, time.UTC)
	tl, h := NewClockTool(WithNow(func() time.Time { return fixed }))
	assert.Equal(t, ClockToolName, tl.Name)

	tests := []struct {
		name string
		args string
		want string
	}{
		{"default", `{}`, "2024-03-09T14:30:00Z"},
		{"empty arguments", ``, "2024-03-09T14:30:00Z"},
		{"unix", `{"format":"unix"}`, "1709994600"},
		{"human", `{"format":"human"}`, "Saturday, March 9, 2024 14:30 UTC"},
		{"timezone", `{"timezone":"Asia/Tokyo"}`, "2024-03-09T23:30:00+09:00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := h(context.Background(), ai.ToolCall{ID: "c", Name: ClockToolName, Arguments: tt.args})
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("errors", func(t *testing.T) {
		_, err := h(context.Background(), ai.ToolCall{Arguments: `{"format":"julian"}`})
		assert.Error(t, err)
		_, err = h(context.Background(), ai.ToolCall{Arguments: `{"timezone":"Mars/Olympus"}`})
		assert.Error(t, err)
	})
}
