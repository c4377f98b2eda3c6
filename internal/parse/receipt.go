package parse

import (
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/PMCGrupo4/handwritely-excelizer-73/internal/entity"
)

// ErrNoUsableInput reports that an OCR attempt produced nothing parseable:
// empty text, every line filtered as noise, or a response with neither items
// nor text. It is a signal for the caller to ask for a retake, not a failure.
var ErrNoUsableInput = errors.New("no usable input")

// Lines with fewer trimmed characters are OCR noise: stray punctuation,
// underscores, header fragments.
const minLineRunes = 3

// ParseText splits a full OCR text block into rows, one per surviving line,
// in source order. Returns ErrNoUsableInput when nothing survives filtering.
func ParseText(text string) ([]entity.LineItem, error) {
	lines := strings.Split(text, "\n")
	items := make([]entity.LineItem, 0, len(lines))
	for _, raw := range lines {
		line := strings.TrimSpace(raw)
		if utf8.RuneCountInString(line) < minLineRunes {
			continue
		}
		items = append(items, ParseLine(line, len(items)+1))
	}
	if len(items) == 0 {
		return nil, ErrNoUsableInput
	}
	return items, nil
}
