package http

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"wordspy/internal/config"
	"wordspy/internal/game"
	"wordspy/internal/words"
)

func newTestServer(t *testing.T) (*Server, *game.Registry) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	registry := game.NewRegistry(game.DefaultSettings(), words.Static{{Word: "A", ImposterWord: "B"}}, logger)
	t.Cleanup(registry.Close)

	cfg := &config.Config{
		Server: config.ServerConfig{Bind: "127.0.0.1", Port: 8080},
	}
	return NewServer(cfg, registry, logger), registry
}

func doRequest(t *testing.T, s *Server, method, path, body string) (*httptest.ResponseRecorder, Response) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	rec := httptest.NewRecorder()
	s.server.Handler.ServeHTTP(rec, req)

	var resp Response
	if rec.Body.Len() > 0 {
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode response: %v\n%s", err, rec.Body.String())
		}
	}
	return rec, resp
}

func TestCreateSession(t *testing.T) {
	s, registry := newTestServer(t)

	rec, resp := doRequest(t, s, http.MethodPost, "/api/sessions", `{"gameId":"ROOM1"}`)
	if rec.Code != http.StatusOK || !resp.Success {
		t.Fatalf("status = %d, success = %v", rec.Code, resp.Success)
	}
	if _, ok := registry.Get("ROOM1"); !ok {
		t.Fatal("session was not created in the registry")
	}

	// Posting the same id again must not reset the session.
	before, _ := registry.Get("ROOM1")
	rec, _ = doRequest(t, s, http.MethodPost, "/api/sessions", `{"gameId":"ROOM1"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("repeat create status = %d", rec.Code)
	}
	after, _ := registry.Get("ROOM1")
	if before != after {
		t.Fatal("repeat create replaced the session")
	}
}

func TestCreateSessionBadRequest(t *testing.T) {
	s, _ := newTestServer(t)

	for _, body := range []string{"", "not json", `{"gameId":""}`} {
		rec, resp := doRequest(t, s, http.MethodPost, "/api/sessions", body)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("body %q: status = %d, want 400", body, rec.Code)
		}
		if resp.Error == nil || resp.Error.Code != "INVALID_REQUEST" {
			t.Fatalf("body %q: error = %+v", body, resp.Error)
		}
	}
}

func TestGetSession(t *testing.T) {
	s, registry := newTestServer(t)
	registry.CreateOrGet("ROOM2")

	rec, resp := doRequest(t, s, http.MethodGet, "/api/sessions/ROOM2", "")
	if rec.Code != http.StatusOK || !resp.Success {
		t.Fatalf("status = %d, success = %v", rec.Code, resp.Success)
	}

	rec, resp = doRequest(t, s, http.MethodGet, "/api/sessions/NOPE", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("missing session status = %d, want 404", rec.Code)
	}
	if resp.Error == nil || resp.Error.Code != "SESSION_NOT_FOUND" {
		t.Fatalf("missing session error = %+v", resp.Error)
	}
}

func TestHealthAndStats(t *testing.T) {
	s, registry := newTestServer(t)
	registry.CreateOrGet("ROOM3")

	rec, resp := doRequest(t, s, http.MethodGet, "/api/health", "")
	if rec.Code != http.StatusOK || !resp.Success {
		t.Fatalf("health status = %d, success = %v", rec.Code, resp.Success)
	}

	rec, resp = doRequest(t, s, http.MethodGet, "/api/stats", "")
	if rec.Code != http.StatusOK || !resp.Success {
		t.Fatalf("stats status = %d, success = %v", rec.Code, resp.Success)
	}
	counts := resp.Data.(map[string]any)
	if counts["sessions"].(float64) != 1 {
		t.Fatalf("stats sessions = %v, want 1", counts["sessions"])
	}
}

func TestCORSPreflight(t *testing.T) {
	s, _ := newTestServer(t)

	rec, _ := doRequest(t, s, http.MethodOptions, "/api/health", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("preflight status = %d, want 200", rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Fatalf("allow-origin = %q, want *", got)
	}
}
