package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PMCGrupo4/handwritely-excelizer-73/internal/common"
	"github.com/PMCGrupo4/handwritely-excelizer-73/internal/entity"
	"github.com/PMCGrupo4/handwritely-excelizer-73/internal/export"
	"github.com/PMCGrupo4/handwritely-excelizer-73/internal/parse"
)

type stubRecognizer struct {
	result parse.Result
	err    error
}

func (s stubRecognizer) Recognize(context.Context, string, string) (parse.Result, error) {
	return s.result, s.err
}

type memoryRepo struct {
	byID map[uuid.UUID]*entity.Receipt
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{byID: map[uuid.UUID]*entity.Receipt{}}
}

func (m *memoryRepo) Save(_ context.Context, r *entity.Receipt) error {
	m.byID[r.ID] = r
	return nil
}

func (m *memoryRepo) Get(_ context.Context, id uuid.UUID) (*entity.Receipt, error) {
	r, ok := m.byID[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	return r, nil
}

func (m *memoryRepo) ListByUser(_ context.Context, userID string) ([]*entity.Receipt, error) {
	var out []*entity.Receipt
	for _, r := range m.byID {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memoryRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := m.byID[id]; !ok {
		return common.ErrNotFound
	}
	delete(m.byID, id)
	return nil
}

func postCommand(t *testing.T, rec stubRecognizer, repo *memoryRepo) *http.Response {
	t.Helper()
	app := New(Deps{OCR: rec, Commands: repo, Exporter: export.NewService(nil)})

	body, err := json.Marshal(CreateCommandRequest{UserID: "demo-user", Image: "aW1hZ2U="})
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/api/commands", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestCreateCommandParsesAndPersists(t *testing.T) {
	repo := newMemoryRepo()
	resp := postCommand(t, stubRecognizer{result: parse.Result{Text: "Café latte 2 1800\nAgua 800"}}, repo)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var out CommandResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.True(t, out.Detected)
	require.Len(t, out.Items, 2)
	assert.Equal(t, "Café latte", out.Items[0].Product)
	assert.Equal(t, 3600.0, out.Items[0].Total)

	saved, err := repo.Get(context.Background(), out.ID)
	require.NoError(t, err)
	assert.Equal(t, "demo-user", saved.UserID)
	assert.Len(t, saved.Items, 2)
}

func TestCreateCommandNothingDetected(t *testing.T) {
	repo := newMemoryRepo()
	resp := postCommand(t, stubRecognizer{result: parse.Result{}}, repo)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out CommandResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.False(t, out.Detected)
	assert.Empty(t, out.Items)
	assert.Empty(t, repo.byID)
}

func TestCreateCommandOCRFailure(t *testing.T) {
	resp := postCommand(t, stubRecognizer{err: assert.AnError}, newMemoryRepo())
	require.Equal(t, http.StatusBadGateway, resp.StatusCode)

	var out ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, "OCR_FAILED", out.Code)
}

func TestCreateCommandValidation(t *testing.T) {
	app := New(Deps{OCR: stubRecognizer{}, Commands: newMemoryRepo(), Exporter: export.NewService(nil)})

	req := httptest.NewRequest(http.MethodPost, "/api/commands", bytes.NewReader([]byte(`{"user_id":""}`)))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestExportCommand(t *testing.T) {
	repo := newMemoryRepo()
	rec := &entity.Receipt{
		ID:     uuid.New(),
		UserID: "demo-user",
		Items: []entity.LineItem{
			{ID: uuid.New(), Product: "Sandwich", Quantity: 1, UnitPrice: 1200, Total: 1200},
		},
	}
	require.NoError(t, repo.Save(context.Background(), rec))

	app := New(Deps{OCR: stubRecognizer{}, Commands: repo, Exporter: export.NewService(nil)})
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/commands/"+rec.ID.String()+"/export", nil), -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "spreadsheetml")
	assert.Contains(t, resp.Header.Get("Content-Disposition"), rec.ID.String())
}

func TestDeleteCommandNotFound(t *testing.T) {
	app := New(Deps{OCR: stubRecognizer{}, Commands: newMemoryRepo(), Exporter: export.NewService(nil)})
	resp, err := app.Test(httptest.NewRequest(http.MethodDelete, "/api/commands/"+uuid.NewString(), nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
