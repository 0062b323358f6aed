package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/diaglens/pkg/pipeline"
	"github.com/matzehuels/diaglens/pkg/store"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	logger := log.NewWithOptions(io.Discard, log.Options{})
	runner := pipeline.NewRunner(nil, nil, logger)
	srv := New(runner, nil, nil, logger)
	ts := httptest.NewServer(srv.Router())
	t.Cleanup(ts.Close)
	return ts
}

func postJSON(t *testing.T, ts *httptest.Server, path string, body any) *http.Response {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)
	resp, err := http.Post(ts.URL+path, "application/json", bytes.NewReader(data))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
}

func errorCode(t *testing.T, resp *http.Response) string {
	t.Helper()
	var body struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	decodeBody(t, resp, &body)
	return body.Error.Code
}

func TestHealthz(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]string
	decodeBody(t, resp, &body)
	assert.Equal(t, "ok", body["status"])
}

func TestAnalyzeMarkdown(t *testing.T) {
	ts := newTestServer(t)

	markdown := "# Doc\n\n```mermaid\ngraph TD\nA --> B\nB --> C\n```\n"
	resp := postJSON(t, ts, "/v1/analyze", map[string]any{
		"markdown":  markdown,
		"file_path": "docs/arch.md",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var run store.Run
	decodeBody(t, resp, &run)
	_, err := uuid.Parse(run.ID)
	assert.NoError(t, err, "run ID should be a uuid")
	assert.Equal(t, "default", run.Profile)
	assert.Equal(t, 1, run.Summary.Diagrams)
	require.Len(t, run.Results, 1)
	assert.Equal(t, "docs/arch.md", run.Results[0].Diagram.FilePath)
	assert.Equal(t, 3, run.Results[0].Metrics.NodeCount)

	// The stored run is retrievable afterwards.
	getResp, err := http.Get(ts.URL + "/v1/runs/" + run.ID)
	require.NoError(t, err)
	defer getResp.Body.Close()
	require.Equal(t, http.StatusOK, getResp.StatusCode)

	var fetched store.Run
	decodeBody(t, getResp, &fetched)
	assert.Equal(t, run.ID, fetched.ID)
}

func TestAnalyzeDiagramBlocks(t *testing.T) {
	ts := newTestServer(t)

	resp := postJSON(t, ts, "/v1/analyze", map[string]any{
		"diagrams": []map[string]any{
			{"content": "graph TD\no1 --> x2", "file_path": "docs/a.md", "start_line": 7},
		},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var run store.Run
	decodeBody(t, resp, &run)
	require.Len(t, run.Results, 1)
	assert.Equal(t, 7, run.Results[0].Diagram.StartLine)
	// Both identifiers look like link-shape syntax, so the lexical rule fires.
	assert.Equal(t, 2, run.Summary.Warnings)
}

func TestAnalyzeProfileOverride(t *testing.T) {
	ts := newTestServer(t)

	resp := postJSON(t, ts, "/v1/analyze", map[string]any{
		"markdown": "```mermaid\ngraph TD\nA --> B\n```\n",
		"profile":  "narrow",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var run store.Run
	decodeBody(t, resp, &run)
	assert.Equal(t, "narrow", run.Profile)
}

func TestAnalyzeBadRequests(t *testing.T) {
	ts := newTestServer(t)

	tests := []struct {
		name     string
		body     any
		wantCode string
	}{
		{"no diagrams", map[string]any{"markdown": "just prose"}, "INVALID_INPUT"},
		{"unknown profile", map[string]any{"markdown": "```mermaid\ngraph TD\nA --> B\n```", "profile": "ultrawide"}, "INVALID_PROFILE"},
		{"absolute path", map[string]any{"markdown": "```mermaid\ngraph TD\nA --> B\n```", "file_path": "/etc/passwd"}, "INVALID_PATH"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := postJSON(t, ts, "/v1/analyze", tt.body)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			assert.Equal(t, tt.wantCode, errorCode(t, resp))
		})
	}
}

func TestAnalyzeMalformedBody(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Post(ts.URL+"/v1/analyze", "application/json", bytes.NewReader([]byte("{not json")))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestGetRunNotFound(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/v1/runs/" + uuid.NewString())
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "RUN_NOT_FOUND", errorCode(t, resp))
}

func TestGetRunInvalidID(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/v1/runs/not-a-uuid")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestListRuns(t *testing.T) {
	ts := newTestServer(t)

	for range 3 {
		resp := postJSON(t, ts, "/v1/analyze", map[string]any{
			"markdown": "```mermaid\ngraph TD\nA --> B\n```\n",
		})
		require.Equal(t, http.StatusOK, resp.StatusCode)
	}

	resp, err := http.Get(ts.URL + "/v1/runs?limit=2")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Runs []*store.Run `json:"runs"`
	}
	decodeBody(t, resp, &body)
	assert.Len(t, body.Runs, 2)
}

func TestListRunsBadLimit(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/v1/runs?limit=0")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
