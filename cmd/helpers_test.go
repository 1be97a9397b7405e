package main

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/conduitapp/conduit/internal/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApplication() *application {
	return &application{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func TestReadJSON(t *testing.T) {
	app := newTestApplication()

	type payload struct {
		Name string `json:"name"`
	}

	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{"well formed", `{"name": "alice"}`, false},
		{"empty body", ``, true},
		{"malformed", `{"name": `, true},
		{"wrong type", `{"name": 12}`, true},
		{"unknown field", `{"nope": "x"}`, true},
		{"multiple values", `{"name": "a"}{"name": "b"}`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			w := httptest.NewRecorder()

			var dst payload
			err := app.readJSON(w, r, &dst)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, "alice", dst.Name)
			}
		})
	}
}

func TestWriteJSON(t *testing.T) {
	app := newTestApplication()

	w := httptest.NewRecorder()
	err := app.writeJSON(w, http.StatusCreated, envelope{"hello": "world"}, http.Header{"X-Custom": []string{"yes"}})
	require.NoError(t, err)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "application/json; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Equal(t, "yes", w.Header().Get("X-Custom"))
	assert.Contains(t, w.Body.String(), `"hello"`)
}

func TestReadInt(t *testing.T) {
	app := newTestApplication()

	qs := url.Values{}
	qs.Set("limit", "50")
	qs.Set("offset", "nope")

	v := validator.New()
	assert.Equal(t, int64(50), app.readInt(qs, "limit", 20, v))
	assert.Equal(t, int64(20), app.readInt(qs, "missing", 20, v))
	assert.True(t, v.IsValid())

	assert.Equal(t, int64(0), app.readInt(qs, "offset", 0, v))
	assert.False(t, v.IsValid())
}
