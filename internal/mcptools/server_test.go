package mcptools

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/the-papers-must-flow/internal/rename"
	"github.com/Veraticus/the-papers-must-flow/internal/store"
)

func TestNewServer(t *testing.T) {
	st, err := store.New(t.TempDir())
	require.NoError(t, err)

	s := NewServer("test", Deps{Store: st, Executor: rename.NewExecutor(st)})
	assert.NotNil(t, s)
}

func TestSplitList(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{name: "empty", input: "", want: nil},
		{name: "single", input: "pdf", want: []string{"pdf"}},
		{name: "spaces trimmed", input: "pdf, jpg , png", want: []string{"pdf", "jpg", "png"}},
		{name: "empty items dropped", input: ",pdf,,jpg,", want: []string{"pdf", "jpg"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, splitList(tt.input))
		})
	}
}

func TestRenderSuggestedName(t *testing.T) {
	ctx := context.Background()
	st, err := store.New(t.TempDir())
	require.NoError(t, err)

	fields := map[string]any{
		"date":     "2024-03-15",
		"merchant": "Whole Foods",
		"amount":   "$42.10",
	}

	t.Run("raw template bypasses stored rules", func(t *testing.T) {
		got, err := renderSuggestedName(ctx, st, "receipt", fields, "", "{Merchant} - {Amount}")
		require.NoError(t, err)
		assert.Equal(t, "Whole Foods - $42.10", got["suggested_name"])
		assert.Equal(t, "{Merchant} - {Amount}", got["pattern"])
		assert.NotContains(t, got, "pattern_id")
	})

	t.Run("raw template and pattern_id are mutually exclusive", func(t *testing.T) {
		_, err := renderSuggestedName(ctx, st, "receipt", fields, "receipt_default", "{Merchant}")
		assert.ErrorContains(t, err, "mutually exclusive")
	})

	t.Run("pattern_id renders that rule", func(t *testing.T) {
		got, err := renderSuggestedName(ctx, st, "receipt", fields, "receipt_default", "")
		require.NoError(t, err)
		assert.Equal(t, "receipt_default", got["pattern_id"])
		assert.Equal(t, "2024-03-15 - Whole Foods - $42.10", got["suggested_name"])
	})

	t.Run("without either the best rule is selected", func(t *testing.T) {
		got, err := renderSuggestedName(ctx, st, "receipt", fields, "", "")
		require.NoError(t, err)
		assert.Equal(t, "receipt_default", got["pattern_id"])
		assert.Equal(t, "2024-03-15 - Whole Foods - $42.10", got["suggested_name"])
	})

	t.Run("unknown pattern_id errors", func(t *testing.T) {
		_, err := renderSuggestedName(ctx, st, "receipt", fields, "no_such_rule", "")
		assert.Error(t, err)
	})
}
