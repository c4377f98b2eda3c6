package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/PMCGrupo4/handwritely-excelizer-73/internal/entity"
)

func TestReceiptXLSX(t *testing.T) {
	r := &entity.Receipt{
		ID:        uuid.New(),
		UserID:    "demo-user",
		CreatedAt: time.Date(2025, 3, 14, 12, 30, 0, 0, time.UTC),
		Items: []entity.LineItem{
			{ID: uuid.New(), Product: "Café latte", Quantity: 2, UnitPrice: 1800, Total: 3600},
			{ID: uuid.New(), Product: "Agua mineral", Quantity: 1, UnitPrice: 800, Total: 800},
		},
	}

	data, err := NewService(nil).ReceiptXLSX(r)
	require.NoError(t, err)
	require.NotEmpty(t, data)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	const sheet = "Comanda"

	get := func(cell string) string {
		v, err := f.GetCellValue(sheet, cell)
		require.NoError(t, err)
		return v
	}

	assert.Equal(t, "Product", get("A1"))
	assert.Equal(t, "Quantity", get("B1"))
	assert.Equal(t, "Unit Price", get("C1"))
	assert.Equal(t, "Total", get("D1"))
	assert.Equal(t, "Date", get("E1"))

	assert.Equal(t, "Café latte", get("A2"))
	assert.Equal(t, "2", get("B2"))
	assert.Equal(t, "1800", get("C2"))
	assert.Equal(t, "3600", get("D2"))
	assert.Equal(t, "2025-03-14", get("E2"))

	assert.Equal(t, "Agua mineral", get("A3"))

	// Grand total row
	assert.Equal(t, "Total", get("A4"))
	assert.Equal(t, "4400", get("D4"))
}

func TestReceiptXLSXEmptyReceipt(t *testing.T) {
	r := &entity.Receipt{ID: uuid.New(), CreatedAt: time.Now()}

	data, err := NewService(nil).ReceiptXLSX(r)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	v, err := f.GetCellValue("Comanda", "A2")
	require.NoError(t, err)
	assert.Equal(t, "Total", v)
}
