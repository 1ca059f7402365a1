package httpx

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baharkarakas/ppob-wallet/internal/apperr"
)

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestWriteOK(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteOK(rec, "Sukses", map[string]int{"balance": 5})

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.EqualValues(t, 0, body["status"])
	assert.Equal(t, "Sukses", body["message"])
	assert.Equal(t, map[string]any{"balance": float64(5)}, body["data"])
}

func TestWriteErrorClient(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/topup", nil)
	WriteError(rec, req, nil, "", apperr.Validation("Parameter email tidak sesuai format"))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decode(t, rec)
	assert.EqualValues(t, 400, body["status"])
	assert.Equal(t, "Parameter email tidak sesuai format", body["message"])
	assert.NotContains(t, body, "data")
}

func TestWriteErrorContractCode(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/profile", nil)
	e := apperr.Unauthenticated("Token tidak valid atau kadaluwarsa")
	e.Code = 108
	WriteError(rec, req, nil, "", e)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"status":108,"message":"Token tidak valid atau kadaluwarsa","data":null}`, rec.Body.String())
}

func TestWriteErrorInternalIsLogged(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewJSONHandler(&buf, nil))
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/balance", nil)

	WriteError(rec, req, log, "req-1", errors.New("pool exhausted"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decode(t, rec)
	assert.EqualValues(t, 500, body["status"])
	assert.Equal(t, "Internal Server Error", body["message"])
	id, _ := body["errorId"].(string)
	require.NotEmpty(t, id)
	assert.NotContains(t, rec.Body.String(), "pool exhausted")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, id, entry["error_id"])
	assert.Equal(t, "req-1", entry["request_id"])
	assert.Equal(t, "pool exhausted", entry["err"])
}
