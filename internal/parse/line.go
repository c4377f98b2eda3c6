package parse

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/PMCGrupo4/handwritely-excelizer-73/internal/entity"
)

var (
	reNumber  = regexp.MustCompile(`\d+(?:[.,]\d+)?`)
	reSymbols = regexp.MustCompile(`[^\p{L}\s]+`)
	reSpaces  = regexp.MustCompile(`\s+`)
)

// ParseLine converts a single trimmed OCR line into a best-effort row.
// position is the 1-based position of the row within the receipt; it is only
// used for the placeholder name when the line carries no product text.
//
// Assignment policy, first match wins:
//   - two or more numbers: quantity = first, unit price = second, the rest of
//     the numbers are ignored ("product quantity price" layout)
//   - exactly one number: unit price = that number, quantity = 1
//   - no numbers: quantity = 1, unit price = 0, the whole line is the product
//
// The total is always recomputed from quantity*price; handwritten per-line
// totals are not trusted. This never fails: OCR noise is the common case and
// a human edits the rows afterward.
func ParseLine(line string, position int) entity.LineItem {
	nums := extractNumbers(line)

	var qty, price float64
	switch {
	case len(nums) >= 2:
		qty, price = nums[0], nums[1]
	case len(nums) == 1:
		qty, price = 1, nums[0]
	default:
		qty, price = 1, 0
	}

	product := line
	if len(nums) > 0 {
		product = stripToProduct(line)
	}
	if product == "" {
		product = fmt.Sprintf("Product %d", position)
	}

	return entity.LineItem{
		ID:        uuid.New(),
		Product:   product,
		Quantity:  qty,
		UnitPrice: price,
		Total:     qty * price,
	}
}

// extractNumbers collects every numeric token in left-to-right order,
// accepting both "." and "," as the decimal separator. Tokens that still fail
// to parse are skipped rather than failing the line.
func extractNumbers(line string) []float64 {
	tokens := reNumber.FindAllString(line, -1)
	nums := make([]float64, 0, len(tokens))
	for _, tok := range tokens {
		v, err := strconv.ParseFloat(strings.ReplaceAll(tok, ",", "."), 64)
		if err != nil {
			continue
		}
		nums = append(nums, v)
	}
	return nums
}

// stripToProduct removes numeric tokens and stray symbols, keeping letters in
// any script (handwritten comandas are mostly Spanish, accents included), and
// collapses the leftover whitespace.
func stripToProduct(line string) string {
	s := reNumber.ReplaceAllString(line, " ")
	s = reSymbols.ReplaceAllString(s, " ")
	s = reSpaces.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}
