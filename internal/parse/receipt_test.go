package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTextFiltersNoise(t *testing.T) {
	text := "Café latte 2 1800\n--\nAgua mineral 800\n_\nJugo natural"
	items, err := ParseText(text)
	require.NoError(t, err)
	require.Len(t, items, 3)

	assert.Equal(t, "Café latte", items[0].Product)
	assert.Equal(t, "Agua mineral", items[1].Product)
	assert.Equal(t, "Jugo natural", items[2].Product)
}

func TestParseTextPreservesLineOrder(t *testing.T) {
	text := "Pan 1 350\nLeche 2 900\nQueso 1 1200"
	items, err := ParseText(text)
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, "Pan", items[0].Product)
	assert.Equal(t, "Leche", items[1].Product)
	assert.Equal(t, "Queso", items[2].Product)
}

func TestParseTextNoUsableInput(t *testing.T) {
	cases := []struct {
		name string
		text string
	}{
		{name: "empty", text: ""},
		{name: "whitespace only", text: "   \n  \n"},
		{name: "only noise lines", text: "--\n_\n..\na\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			items, err := ParseText(tc.text)
			assert.ErrorIs(t, err, ErrNoUsableInput)
			assert.Empty(t, items)
		})
	}
}

func TestParseTextTrimsWindowsLineEndings(t *testing.T) {
	items, err := ParseText("Café 2 1800\r\nPan 1 350\r\n")
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Café", items[0].Product)
	assert.Equal(t, "Pan", items[1].Product)
}
