package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/tagkit/pkg/cache"
	"github.com/matzehuels/tagkit/pkg/observability"
	"github.com/matzehuels/tagkit/pkg/pipeline"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	logger := log.New(io.Discard)
	srv := New(Config{}, pipeline.NewRunner(fc, nil, logger), logger)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(func() {
		ts.Close()
		srv.Close()
	})
	return ts
}

func post(t *testing.T, ts *httptest.Server, path, body string) (*http.Response, []byte) {
	t.Helper()
	resp, err := http.Post(ts.URL+path, "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("POST %s: %v", path, err)
	}
	defer resp.Body.Close()
	data, _ := io.ReadAll(resp.Body)
	return resp, data
}

func get(t *testing.T, ts *httptest.Server, path string) (*http.Response, []byte) {
	t.Helper()
	resp, err := http.Get(ts.URL + path)
	if err != nil {
		t.Fatalf("GET %s: %v", path, err)
	}
	defer resp.Body.Close()
	data, _ := io.ReadAll(resp.Body)
	return resp, data
}

func TestHealthz(t *testing.T) {
	ts := newTestServer(t)
	resp, body := get(t, ts, "/healthz")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if !bytes.Contains(body, []byte(`"ok"`)) {
		t.Errorf("body = %s", body)
	}
}

func TestHeatmapRoundTrip(t *testing.T) {
	ts := newTestServer(t)
	body := `{"data": [[1, 2], [3, 4]], "xs": ["a", "b"], "options": {"top_bar": true}}`

	resp, data := post(t, ts, "/v1/heatmaps", body)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("status = %d, body %s", resp.StatusCode, data)
	}
	var first RenderResponse
	if err := json.Unmarshal(data, &first); err != nil {
		t.Fatal(err)
	}
	if _, err := uuid.Parse(first.ID); err != nil {
		t.Errorf("id %q is not a uuid", first.ID)
	}
	if first.Format != "svg" || first.Cached {
		t.Errorf("response = %+v", first)
	}

	resp, svg := get(t, ts, "/v1/artifacts/"+first.ID)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("artifact status = %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "image/svg+xml" {
		t.Errorf("Content-Type = %q", ct)
	}
	if !bytes.HasPrefix(svg, []byte("<svg")) {
		t.Errorf("artifact = %.40q", svg)
	}

	_, data = post(t, ts, "/v1/heatmaps", body)
	var second RenderResponse
	if err := json.Unmarshal(data, &second); err != nil {
		t.Fatal(err)
	}
	if !second.Cached {
		t.Error("second render should be served from the cache")
	}
	if second.ID == first.ID {
		t.Error("every publish should get a new id")
	}
}

func TestLegendTerminal(t *testing.T) {
	ts := newTestServer(t)
	resp, data := post(t, ts, "/v1/legends", `{"texts": ["alpha", "beta"], "colors": ["red"], "direction": "row", "format": "TERM"}`)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("status = %d, body %s", resp.StatusCode, data)
	}
	var out RenderResponse
	_ = json.Unmarshal(data, &out)
	if out.Format != "term" {
		t.Errorf("format = %q, want term", out.Format)
	}

	resp, text := get(t, ts, "/v1/artifacts/"+out.ID)
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/plain") {
		t.Errorf("Content-Type = %q", ct)
	}
	if !strings.Contains(string(text), "alpha") || !strings.Contains(string(text), "beta") {
		t.Errorf("artifact = %q", text)
	}
}

func TestErrors(t *testing.T) {
	ts := newTestServer(t)

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		status int
		code   string
	}{
		{"malformed json", http.MethodPost, "/v1/heatmaps", `{"data": [`, http.StatusBadRequest, "INVALID_INPUT"},
		{"unknown field", http.MethodPost, "/v1/heatmaps", `{"data": [[1]], "colour": "red"}`, http.StatusBadRequest, "INVALID_INPUT"},
		{"ragged grid", http.MethodPost, "/v1/heatmaps", `{"data": [[1, 2], [3]]}`, http.StatusBadRequest, "INVALID_INPUT"},
		{"bad colormap", http.MethodPost, "/v1/heatmaps", `{"data": [[1]], "options": {"colormap": "nope"}}`, http.StatusBadRequest, "INVALID_COLORMAP"},
		{"bad format", http.MethodPost, "/v1/heatmaps", `{"data": [[1]], "format": "gif"}`, http.StatusBadRequest, "INVALID_FORMAT"},
		{"empty legend", http.MethodPost, "/v1/legends", `{"texts": []}`, http.StatusBadRequest, "INVALID_INPUT"},
		{"bad colour", http.MethodPost, "/v1/legends", `{"texts": ["a"], "colors": ["nope"]}`, http.StatusBadRequest, "INVALID_INPUT"},
		{"bad id", http.MethodGet, "/v1/artifacts/not-a-uuid", "", http.StatusBadRequest, "INVALID_INPUT"},
		{"unknown id", http.MethodGet, "/v1/artifacts/" + uuid.NewString(), "", http.StatusNotFound, "NOT_FOUND"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var resp *http.Response
			var data []byte
			if tt.method == http.MethodPost {
				resp, data = post(t, ts, tt.path, tt.body)
			} else {
				resp, data = get(t, ts, tt.path)
			}
			if resp.StatusCode != tt.status {
				t.Fatalf("status = %d, want %d (body %s)", resp.StatusCode, tt.status, data)
			}
			var er ErrorResponse
			if err := json.Unmarshal(data, &er); err != nil {
				t.Fatalf("decode error body: %v", err)
			}
			if er.Code != tt.code || er.Error == "" {
				t.Errorf("error = %+v, want code %s", er, tt.code)
			}
			if er.RequestID == "" {
				t.Error("request id missing")
			}
		})
	}
}

type recordingHooks struct {
	observability.NoopHTTPHooks
	mu       sync.Mutex
	routes   []string
	statuses []int
	errors   int
}

func (h *recordingHooks) OnResponse(_ context.Context, _, route string, status int, _ time.Duration) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.routes = append(h.routes, route)
	h.statuses = append(h.statuses, status)
}

func (h *recordingHooks) OnError(context.Context, string, string, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.errors++
}

func TestHTTPHooks(t *testing.T) {
	hooks := &recordingHooks{}
	observability.SetHTTPHooks(hooks)
	defer observability.Reset()

	ts := newTestServer(t)
	get(t, ts, "/healthz")
	get(t, ts, "/v1/artifacts/"+uuid.NewString())

	hooks.mu.Lock()
	defer hooks.mu.Unlock()
	want := []string{"/healthz", "/v1/artifacts/{id}"}
	if strings.Join(hooks.routes, " ") != strings.Join(want, " ") {
		t.Errorf("routes = %v, want %v", hooks.routes, want)
	}
	if hooks.statuses[0] != http.StatusOK || hooks.statuses[1] != http.StatusNotFound {
		t.Errorf("statuses = %v", hooks.statuses)
	}
	if hooks.errors != 1 {
		t.Errorf("errors = %d, want 1", hooks.errors)
	}
}

func TestBodyLimit(t *testing.T) {
	fc, _ := cache.NewFileCache(t.TempDir())
	srv := New(Config{MaxBodyBytes: 16}, pipeline.NewRunner(fc, nil, log.New(io.Discard)), log.New(io.Discard))
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	resp, _ := post(t, ts, "/v1/heatmaps", `{"data": [[1, 2, 3, 4, 5, 6, 7, 8]]}`)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func TestStatusFor(t *testing.T) {
	if got := statusFor(io.EOF); got != http.StatusInternalServerError {
		t.Errorf("plain error = %d, want 500", got)
	}
}
