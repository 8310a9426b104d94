package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/waterfall/pkg/errors"
	"github.com/matzehuels/waterfall/pkg/observability"
	wfrender "github.com/matzehuels/waterfall/pkg/render"
)

const quarterJSON = `{
  "title": "Quarter",
  "steps": [
    {"name": "Q1", "value": 100},
    {"name": "Q2", "value": 140},
    {"name": "Q3", "value": 120}
  ]
}`

const quarterTOML = `
title = "Quarter"
values = [100, 140, 120]
step_names = ["Q1", "Q2", "Q3"]
`

func testServer(t *testing.T, cfg Config) http.Handler {
	t.Helper()
	t.Cleanup(observability.Reset)
	if cfg.MaxBodyBytes == 0 {
		cfg.MaxBodyBytes = 1 << 20
	}
	return New(cfg, log.New(io.Discard)).Handler()
}

func do(t *testing.T, h http.Handler, method, target, contentType, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) errorResponse {
	t.Helper()
	var resp errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp), rec.Body.String())
	return resp
}

func TestHealth(t *testing.T) {
	h := testServer(t, Config{})
	rec := do(t, h, http.MethodGet, "/healthz", "", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get(RequestIDHeader))

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp["status"])
	assert.Contains(t, resp, "version")
}

func TestRequestIDIsEchoed(t *testing.T) {
	h := testServer(t, Config{})
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, "abc-123", rec.Header().Get(RequestIDHeader))
}

func TestRender(t *testing.T) {
	h := testServer(t, Config{})

	tests := []struct {
		target      string
		contentType string
		prefix      []byte
	}{
		{"/render", "image/svg+xml", []byte("<svg")},
		{"/render?format=svg&background=black", "image/svg+xml", []byte("<svg")},
		{"/render?format=png&scale=0.5", "image/png", []byte("\x89PNG")},
		{"/render?format=json", "application/json", []byte("{")},
	}
	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			rec := do(t, h, http.MethodPost, tt.target, "application/json", quarterJSON)
			require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
			assert.Equal(t, tt.contentType, rec.Header().Get("Content-Type"))
			assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), tt.prefix))
		})
	}
}

func TestRenderTOMLBody(t *testing.T) {
	h := testServer(t, Config{})
	rec := do(t, h, http.MethodPost, "/render", "application/toml", quarterTOML)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), "Quarter")
}

func TestRenderErrors(t *testing.T) {
	h := testServer(t, Config{})

	tests := []struct {
		name        string
		target      string
		contentType string
		body        string
		status      int
		code        errors.Code
	}{
		{"bad format", "/render?format=gif", "", quarterJSON, http.StatusBadRequest, errors.ErrCodeInvalidFormat},
		{"bad scale", "/render?format=png&scale=-1", "", quarterJSON, http.StatusBadRequest, errors.ErrCodeInvalidInput},
		{"bad background", "/render?background=sky", "", quarterJSON, http.StatusBadRequest, errors.ErrCodeInvalidColor},
		{"unsupported body", "/render", "text/csv", "a,1", http.StatusBadRequest, errors.ErrCodeInvalidFormat},
		{"unknown field", "/render", "", `{"values":[1],"colour":"red"}`, http.StatusBadRequest, errors.ErrCodeInvalidConfiguration},
		{"no steps", "/render", "", `{}`, http.StatusBadRequest, errors.ErrCodeInvalidConfiguration},
		{"shape mismatch", "/render", "", `{"values":[1,2],"step_names":["a"]}`, http.StatusBadRequest, errors.ErrCodeShapeMismatch},
		{"bad label mode", "/render", "", `{"values":[1],"labels":"maybe"}`, http.StatusBadRequest, errors.ErrCodeInvalidConfiguration},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, h, http.MethodPost, tt.target, tt.contentType, tt.body)
			assert.Equal(t, tt.status, rec.Code, rec.Body.String())

			resp := decodeError(t, rec)
			assert.Equal(t, tt.code, resp.Code)
			assert.NotEmpty(t, resp.Message)
			assert.Equal(t, rec.Header().Get(RequestIDHeader), resp.RequestID)
		})
	}
}

func TestRenderBodyTooLarge(t *testing.T) {
	h := testServer(t, Config{MaxBodyBytes: 16})

	tests := []struct {
		contentType string
		body        string
	}{
		{"application/json", quarterJSON},
		{"application/toml", quarterTOML},
		{"application/yaml", "title: Quarter\nvalues: [100, 140, 120]\n"},
		{xlsxContentType, "PK\x03\x04 not really a workbook"},
	}
	for _, tt := range tests {
		t.Run(tt.contentType, func(t *testing.T) {
			rec := do(t, h, http.MethodPost, "/render", tt.contentType, tt.body)
			require.Equal(t, http.StatusRequestEntityTooLarge, rec.Code, rec.Body.String())

			resp := decodeError(t, rec)
			assert.Equal(t, errors.ErrCodeTooLarge, resp.Code)
			assert.Equal(t, "request body exceeds 16 bytes", resp.Message)
		})
	}
}

func TestRenderPDFWithoutConverter(t *testing.T) {
	old := wfrender.RSVGConvert
	wfrender.RSVGConvert = filepath.Join(t.TempDir(), "missing-rsvg-convert")
	t.Cleanup(func() { wfrender.RSVGConvert = old })

	h := testServer(t, Config{})
	rec := do(t, h, http.MethodPost, "/render?format=pdf", "", quarterJSON)

	assert.Equal(t, http.StatusNotImplemented, rec.Code)
	assert.Equal(t, errors.ErrCodeUnsupported, decodeError(t, rec).Code)
}

func TestTable(t *testing.T) {
	h := testServer(t, Config{})
	rec := do(t, h, http.MethodPost, "/table", "", quarterJSON)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		Title  string `json:"title"`
		Metric string `json:"metric"`
		Rows   []struct {
			Label    string  `json:"label"`
			Delta    float64 `json:"delta"`
			Role     string  `json:"role"`
			BarColor string  `json:"bar_color"`
			Display  string  `json:"display"`
		} `json:"rows"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Quarter", resp.Title)
	assert.Equal(t, "Value", resp.Metric)
	require.Len(t, resp.Rows, 4)
	assert.Equal(t, "Q1", resp.Rows[0].Label)
	assert.Equal(t, "start", resp.Rows[0].Role)
	assert.Equal(t, "negative", resp.Rows[2].Role)
	assert.Equal(t, "salmon", resp.Rows[2].BarColor)
	assert.Equal(t, "-20", resp.Rows[2].Display)
	assert.Equal(t, "Final Value", resp.Rows[3].Label)
}

func TestTableXLSX(t *testing.T) {
	h := testServer(t, Config{})
	rec := do(t, h, http.MethodPost, "/table?format=xlsx", "", quarterJSON)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, xlsxContentType, rec.Header().Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("PK")))
}

func TestTableBadFormat(t *testing.T) {
	h := testServer(t, Config{})
	rec := do(t, h, http.MethodPost, "/table?format=csv", "", quarterJSON)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, errors.ErrCodeInvalidFormat, decodeError(t, rec).Code)
}

func TestMetrics(t *testing.T) {
	h := testServer(t, Config{})
	require.Equal(t, http.StatusOK, do(t, h, http.MethodPost, "/render", "", quarterJSON).Code)
	require.Equal(t, http.StatusBadRequest, do(t, h, http.MethodPost, "/render", "", `{"values":[1,2],"step_names":["a"]}`).Code)

	rec := do(t, h, http.MethodGet, "/metrics", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `waterfall_plots_total{outcome="ok"} 1`)
	assert.Contains(t, body, `waterfall_plots_total{outcome="error"} 1`)
	assert.Contains(t, body, `waterfall_exports_total{format="svg",outcome="ok"} 1`)
	assert.Contains(t, body, `waterfall_stage_duration_seconds_count{stage="plot"} 2`)
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, statusFor(errors.New(errors.ErrCodeShapeMismatch, "x")))
	assert.Equal(t, http.StatusInternalServerError, statusFor(errors.New(errors.ErrCodeInternal, "x")))
	assert.Equal(t, http.StatusInternalServerError, statusFor(io.ErrUnexpectedEOF))
	assert.Equal(t, http.StatusRequestEntityTooLarge, statusFor(
		errors.Wrap(errors.ErrCodeInvalidConfiguration, &http.MaxBytesError{Limit: 1}, "decode")))
	assert.Equal(t, http.StatusRequestEntityTooLarge, statusFor(errors.New(errors.ErrCodeTooLarge, "x")))
	assert.Equal(t, http.StatusNotImplemented, statusFor(
		fmt.Errorf("export pdf: %w", errors.New(errors.ErrCodeUnsupported, "x"))))
}

func TestLoadConfig(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, int64(1<<20), cfg.MaxBodyBytes)
	assert.Equal(t, 15*time.Second, cfg.ReadTimeout)

	t.Setenv("WATERFALL_ADDR", "127.0.0.1:9000")
	t.Setenv("WATERFALL_MAX_BODY_BYTES", "2048")
	t.Setenv("WATERFALL_READ_TIMEOUT", "3s")
	cfg, err = LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:9000", cfg.Addr)
	assert.Equal(t, int64(2048), cfg.MaxBodyBytes)
	assert.Equal(t, 3*time.Second, cfg.ReadTimeout)

	t.Setenv("WATERFALL_READ_TIMEOUT", "soon")
	_, err = LoadConfig()
	assert.Error(t, err)
}
