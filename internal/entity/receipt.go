package entity

import (
	"time"

	"github.com/google/uuid"
)

// LineItem is one row of a digitized comanda: a single product together with
// the quantity and unit price recognized for it (or defaulted when the source
// line did not carry them).
type LineItem struct {
	ID        uuid.UUID `json:"id"`
	Product   string    `json:"product"`
	Quantity  float64   `json:"quantity"`
	UnitPrice float64   `json:"unit_price"`
	Total     float64   `json:"total"`
}

// Recompute refreshes Total after Quantity or UnitPrice was edited.
func (li *LineItem) Recompute() {
	li.Total = li.Quantity * li.UnitPrice
}

// Receipt aggregates the rows parsed from one comanda image. Items keep the
// order of the source lines; the core never reorders them.
type Receipt struct {
	ID          uuid.UUID  `json:"id"`
	UserID      string     `json:"user_id"`
	ImageSource string     `json:"image_source,omitempty"`
	Items       []LineItem `json:"items"`
	CreatedAt   time.Time  `json:"created_at"`
}

// Total sums the per-row totals.
func (r *Receipt) Total() float64 {
	var sum float64
	for _, li := range r.Items {
		sum += li.Total
	}
	return sum
}
