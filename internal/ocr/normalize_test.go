package ocr

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanText(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{name: "empty", in: "", want: ""},
		{name: "crlf folded", in: "Café 2 1800\r\nPan 1 350", want: "Café 2 1800\nPan 1 350"},
		{name: "tabs and runs of spaces", in: "Café\t\t2    1800", want: "Café 2 1800"},
		{name: "ruled separators dropped", in: "----\nCafé 2 1800\n____", want: "Café 2 1800"},
		{name: "blank runs collapsed", in: "Café 2 1800\n\n\n\n\nPan 1 350", want: "Café 2 1800\n\nPan 1 350"},
		{name: "trailing spaces trimmed per line", in: "Café 2 1800   \nPan 1 350  ", want: "Café 2 1800\nPan 1 350"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, CleanText(tc.in))
		})
	}
}
