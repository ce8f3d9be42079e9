package webui

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"weatherbot/internal/nlu"
)

type fakeResponder struct{}

func (fakeResponder) Chat(_ context.Context, text string) (string, nlu.Intent) {
	if strings.Contains(strings.ToLower(text), "hello") {
		return "Hello!", nlu.Greetings
	}
	return "I don't understand.", nlu.Unknown
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	s, err := NewServer(fakeResponder{}, Options{
		AllowedOrigins: []string{"http://localhost:*"},
		Cities:         []string{"Paris", "Lyon", "Parma"},
		Logger:         zerolog.Nop(),
	})
	if err != nil {
		t.Fatalf("NewServer: %v", err)
	}
	srv := httptest.NewServer(s.Handler())
	t.Cleanup(srv.Close)
	return srv
}

func TestHandleChat(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		name       string
		body       string
		wantStatus int
		want       ChatResponse
	}{
		{"greeting", `{"message":"hello bot"}`, http.StatusOK, ChatResponse{Reply: "Hello!", Intent: "greetings"}},
		{"unknown", `{"message":"blorp"}`, http.StatusOK, ChatResponse{Reply: "I don't understand.", Intent: "unknown"}},
		{"empty message", `{"message":"  "}`, http.StatusBadRequest, ChatResponse{Error: "message is required"}},
		{"bad json", `{`, http.StatusBadRequest, ChatResponse{Error: "invalid request body"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := http.Post(srv.URL+"/api/chat", "application/json", strings.NewReader(tt.body))
			if err != nil {
				t.Fatalf("POST: %v", err)
			}
			defer resp.Body.Close()

			if resp.StatusCode != tt.wantStatus {
				t.Fatalf("status = %d, want %d", resp.StatusCode, tt.wantStatus)
			}
			var got ChatResponse
			if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if got != tt.want {
				t.Fatalf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestChatRejectsGet(t *testing.T) {
	srv := newTestServer(t)
	resp, err := http.Get(srv.URL + "/api/chat")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want 405", resp.StatusCode)
	}
}

func TestHandleStatus(t *testing.T) {
	srv := newTestServer(t)
	resp, err := http.Get(srv.URL + "/api/status")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer resp.Body.Close()

	var got map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got["status"] != "online" || got["cities"] != float64(3) {
		t.Fatalf("unexpected status %v", got)
	}
}

func TestHandleCities(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/api/cities?q=pars")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer resp.Body.Close()
	var got struct {
		Cities []string `json:"cities"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got.Cities) != 1 || got.Cities[0] != "Paris" {
		t.Fatalf("cities = %v", got.Cities)
	}

	bad, err := http.Get(srv.URL + "/api/cities?q=par&limit=zero")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	bad.Body.Close()
	if bad.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", bad.StatusCode)
	}
}

func TestCORSPreflight(t *testing.T) {
	srv := newTestServer(t)

	req, _ := http.NewRequest(http.MethodOptions, srv.URL+"/api/chat", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", "POST")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("OPTIONS: %v", err)
	}
	resp.Body.Close()
	if got := resp.Header.Get("Access-Control-Allow-Origin"); got != "http://localhost:3000" {
		t.Fatalf("Access-Control-Allow-Origin = %q", got)
	}
}

func TestIndexPage(t *testing.T) {
	srv := newTestServer(t)
	resp, err := http.Get(srv.URL + "/")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK || !strings.Contains(string(body), "<title>WeatherBot</title>") {
		t.Fatalf("unexpected index page (%d): %.80s", resp.StatusCode, body)
	}
}

func TestWebSocketChat(t *testing.T) {
	srv := newTestServer(t)
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/ws"

	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	defer conn.Close()

	if err := conn.WriteJSON(wsRequest{Content: "hello"}); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}
	var first wsResponse
	if err := conn.ReadJSON(&first); err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}
	if first.Type != "response" || first.Content != "Hello!" || first.Intent != "greetings" || first.SessionID == "" {
		t.Fatalf("unexpected response %+v", first)
	}

	// Same connection keeps its session id; empty content is an error frame.
	if err := conn.WriteJSON(wsRequest{Content: " "}); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}
	var second wsResponse
	if err := conn.ReadJSON(&second); err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}
	if second.Type != "error" || second.SessionID != first.SessionID {
		t.Fatalf("unexpected error frame %+v", second)
	}

	if err := conn.WriteMessage(websocket.TextMessage, []byte("not json")); err != nil {
		t.Fatalf("WriteMessage: %v", err)
	}
	var third wsResponse
	if err := conn.ReadJSON(&third); err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}
	if third.Type != "error" || third.Content != "invalid message format" {
		t.Fatalf("unexpected frame %+v", third)
	}
}

func TestAllowOrigin(t *testing.T) {
	local := []string{"http://localhost:*", "https://Weather.example"}
	tests := []struct {
		allowed []string
		origin  string
		want    bool
	}{
		{local, "http://localhost:5173", true},
		{local, "https://weather.example", true},
		{local, "https://evil.example", false},
		{local, "http://localhost.evil.example", false},
		{[]string{"*"}, "https://evil.example", true},
		{nil, "https://evil.example", true},
	}
	for _, tt := range tests {
		if got := allowOrigin(tt.allowed, tt.origin); got != tt.want {
			t.Errorf("allowOrigin(%v, %q) = %v, want %v", tt.allowed, tt.origin, got, tt.want)
		}
	}
}

func TestWebSocketChecksOrigin(t *testing.T) {
	srv := newTestServer(t)
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/ws"

	foreign := http.Header{"Origin": {"https://evil.example"}}
	conn, resp, err := websocket.DefaultDialer.Dial(url, foreign)
	if err == nil {
		conn.Close()
		t.Fatalf("handshake from a foreign origin should fail")
	}
	if resp == nil || resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403 for a foreign origin, got %v", resp)
	}

	local := http.Header{"Origin": {"http://localhost:5173"}}
	conn, _, err = websocket.DefaultDialer.Dial(url, local)
	if err != nil {
		t.Fatalf("Dial from an allowed origin: %v", err)
	}
	conn.Close()
}
