package parse

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/PMCGrupo4/handwritely-excelizer-73/internal/entity"
)

// Kind classifies what an OCR backend actually returned. The decision is made
// once, at the boundary, so the parsing code never null-checks optional fields.
type Kind int

const (
	// NoData means the response carried neither items nor text.
	NoData Kind = iota
	// StructuredItems means the backend already segmented the receipt.
	StructuredItems
	// RawText means only undifferentiated recognized text is available.
	RawText
)

// Item is one pre-segmented entry from a structured OCR backend.
type Item struct {
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
	Price    float64 `json:"price"`
	Subtotal float64 `json:"subtotal"`
}

// Result is the payload of one OCR attempt, either shape.
type Result struct {
	Items []Item `json:"items,omitempty"`
	Text  string `json:"text,omitempty"`
}

// Classify picks the parsing path for a result.
func (r Result) Classify() Kind {
	switch {
	case len(r.Items) > 0:
		return StructuredItems
	case strings.TrimSpace(r.Text) != "":
		return RawText
	default:
		return NoData
	}
}

// Normalize maps an OCR result to rows. On the structured path the backend's
// subtotal is taken as-is, even if it disagrees with quantity*price — a
// structured backend is assumed to have validated its own arithmetic. The
// text path delegates to ParseText, which always recomputes totals.
func Normalize(r Result) ([]entity.LineItem, error) {
	switch r.Classify() {
	case StructuredItems:
		items := make([]entity.LineItem, 0, len(r.Items))
		for i, it := range r.Items {
			name := strings.TrimSpace(it.Name)
			if name == "" {
				name = fmt.Sprintf("Product %d", i+1)
			}
			items = append(items, entity.LineItem{
				ID:        uuid.New(),
				Product:   name,
				Quantity:  it.Quantity,
				UnitPrice: it.Price,
				Total:     it.Subtotal,
			})
		}
		return items, nil
	case RawText:
		return ParseText(r.Text)
	default:
		return nil, ErrNoUsableInput
	}
}
