package httpapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/nba-player-search/internal/usecase"
	"github.com/stretchr/testify/require"
)

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, sonic.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "2.0", body["apiVersion"])
	return body
}

func TestWriteSuccess_DataOnly(t *testing.T) {
	rec := httptest.NewRecorder()
	writeSuccess(context.Background(), rec, http.StatusOK, map[string]string{"state": "success"})

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	body := decodeBody(t, rec)
	require.Contains(t, body, "data")
	require.NotContains(t, body, "error")
}

func TestWriteError_CarriesReasonAndMessage(t *testing.T) {
	rec := httptest.NewRecorder()
	writeError(context.Background(), rec, crerr.Mark(crerr.New("bad payload"), usecase.ErrInvalidInput))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	errorObj, ok := decodeBody(t, rec)["error"].(map[string]any)
	require.True(t, ok)
	require.Equal(t, "INVALID_ARGUMENT", errorObj["status"])
	require.EqualValues(t, http.StatusBadRequest, errorObj["code"])

	items, ok := errorObj["errors"].([]any)
	require.True(t, ok)
	require.Len(t, items, 1)
	item := items[0].(map[string]any)
	require.Equal(t, "nba-player-search", item["domain"])
	require.Equal(t, "invalidInput", item["reason"])
	require.Contains(t, item["message"], "bad payload")
}

func TestWriteError_NilIsInternal(t *testing.T) {
	rec := httptest.NewRecorder()
	writeError(context.Background(), rec, nil)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	errorObj := decodeBody(t, rec)["error"].(map[string]any)
	require.Equal(t, "internal server error", errorObj["message"])
}

func TestMapError_SearchFailureKinds(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "not found wins over network", err: crerr.Mark(crerr.Mark(crerr.New("404"), usecase.ErrNotFound), usecase.ErrNetwork), want: http.StatusNotFound},
		{name: "network", err: crerr.Mark(crerr.New("refused"), usecase.ErrNetwork), want: http.StatusBadGateway},
		{name: "parse", err: crerr.Mark(crerr.New("bad json"), usecase.ErrParse), want: http.StatusBadGateway},
		{name: "decode", err: crerr.Mark(crerr.New("bad image"), usecase.ErrDecode), want: http.StatusUnprocessableEntity},
		{name: "circuit open", err: crerr.Mark(crerr.Mark(crerr.New("open"), usecase.ErrDependencyUnavailable), usecase.ErrNetwork), want: http.StatusServiceUnavailable},
		{name: "unknown", err: crerr.New("boom"), want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := mapError(context.Background(), tt.err).HTTPStatus; got != tt.want {
				t.Fatalf("mapError status=%d want=%d", got, tt.want)
			}
		})
	}
}
