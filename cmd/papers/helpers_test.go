package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/the-papers-must-flow/internal/model"
)

func TestParseFields(t *testing.T) {
	t.Run("key=value pairs", func(t *testing.T) {
		fields, err := parseFields([]string{"date=2024-03-15", "merchant=Whole Foods", "amount=$42.10"})
		require.NoError(t, err)
		assert.Equal(t, "2024-03-15", fields["date"])
		assert.Equal(t, "Whole Foods", fields["merchant"])
		assert.Equal(t, "$42.10", fields["amount"])
	})

	t.Run("value may contain equals", func(t *testing.T) {
		fields, err := parseFields([]string{"description=a=b"})
		require.NoError(t, err)
		assert.Equal(t, "a=b", fields["description"])
	})

	t.Run("missing separator errors", func(t *testing.T) {
		_, err := parseFields([]string{"dangling"})
		assert.ErrorContains(t, err, "expected key=value")
	})

	t.Run("empty key errors", func(t *testing.T) {
		_, err := parseFields([]string{"=value"})
		assert.ErrorContains(t, err, "expected key=value")
	})
}

func TestDocFromFlags(t *testing.T) {
	doc, err := docFromFlags("receipt", []string{"date=2024-03-15", "merchant=Whole Foods"})
	require.NoError(t, err)
	assert.Equal(t, model.DocTypeReceipt, doc.DocumentType)
	assert.Equal(t, "2024-03-15", doc.Date)
	assert.Equal(t, "Whole Foods", doc.Merchant)

	doc, err = docFromFlags("", nil)
	require.NoError(t, err)
	assert.Equal(t, model.DocTypeGeneral, doc.DocumentType, "omitted type falls back to general")
}

func TestSplitCSV(t *testing.T) {
	assert.Nil(t, splitCSV(""))
	assert.Equal(t, []string{"pdf", "jpg"}, splitCSV("pdf, jpg"))
	assert.Equal(t, []string{"fidelity"}, splitCSV(",fidelity,"))
}

func TestFormatSize(t *testing.T) {
	assert.Equal(t, "512 B", formatSize(512))
	assert.Equal(t, "1.0 KB", formatSize(1024))
	assert.Equal(t, "1.5 MB", formatSize(1536*1024))
}
