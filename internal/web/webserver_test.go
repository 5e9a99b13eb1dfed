package web

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/go-while/go-helloapi/internal/config"
)

func newTestServer() *WebServer {
	settings := config.NewDefaultSettings()
	settings.AppName = "go-helloapi"
	settings.AppVersion = "test"
	return NewServer(settings)
}

func doRequest(s *WebServer, method, path string, header http.Header) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	for k, vals := range header {
		for _, v := range vals {
			req.Header.Add(k, v)
		}
	}
	w := httptest.NewRecorder()
	s.Router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("response is not valid JSON: %v\nbody: %s", err, w.Body.String())
	}
	return body
}

func TestGetRoot(t *testing.T) {
	s := newTestServer()
	w := doRequest(s, http.MethodGet, "/", nil)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	body := decodeBody(t, w)
	if body["message"] != "Hello World" {
		t.Errorf("message = %v, want Hello World", body["message"])
	}
}

func TestGetGreeting(t *testing.T) {
	s := newTestServer()

	testCases := []struct {
		name string
		want string
	}{
		{"Aqsa", "Hello, Aqsa!"},
		{"world", "Hello, world!"},
		{"Jos%C3%A9", "Hello, José!"},
	}

	for _, tc := range testCases {
		w := doRequest(s, http.MethodGet, "/api/v1/hello/"+tc.name, nil)
		if w.Code != http.StatusOK {
			t.Errorf("GET /api/v1/hello/%s: status = %d, want 200", tc.name, w.Code)
			continue
		}
		body := decodeBody(t, w)
		if body["message"] != tc.want {
			t.Errorf("GET /api/v1/hello/%s: message = %v, want %q", tc.name, body["message"], tc.want)
		}
	}
}

func TestGetGreetingLocalized(t *testing.T) {
	s := newTestServer()

	header := http.Header{}
	header.Set("Accept-Language", "es-MX,es;q=0.9")
	w := doRequest(s, http.MethodGet, "/api/v1/hello/Aqsa", header)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	body := decodeBody(t, w)
	if body["message"] != "Hola, Aqsa!" {
		t.Errorf("message = %v, want Hola, Aqsa!", body["message"])
	}
}

func TestGetGreetingInvalidName(t *testing.T) {
	s := newTestServer()

	longName := strings.Repeat("a", 65)
	w := doRequest(s, http.MethodGet, "/api/v1/hello/"+longName, nil)

	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", w.Code)
	}
	body := decodeBody(t, w)
	if body["error"] == nil || body["error"] == "" {
		t.Error("422 response is missing the error field")
	}
}

func TestGetHealth(t *testing.T) {
	s := newTestServer()
	w := doRequest(s, http.MethodGet, "/api/v1/health", nil)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	body := decodeBody(t, w)
	if body["status"] != "healthy" {
		t.Errorf("status field = %v, want healthy", body["status"])
	}
}

func TestGetWelcome(t *testing.T) {
	s := newTestServer()
	for _, path := range []string{"/api/v1", "/api/v1/"} {
		w := doRequest(s, http.MethodGet, path, nil)
		if w.Code != http.StatusOK {
			t.Errorf("GET %s: status = %d, want 200", path, w.Code)
			continue
		}
		body := decodeBody(t, w)
		msg, _ := body["message"].(string)
		if !strings.Contains(msg, "Welcome") {
			t.Errorf("GET %s: message = %q, want a welcome message", path, msg)
		}
	}
}

func TestGetInfo(t *testing.T) {
	s := newTestServer()
	w := doRequest(s, http.MethodGet, "/api/v1/info", nil)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	body := decodeBody(t, w)
	if body["name"] != "go-helloapi" {
		t.Errorf("name = %v, want go-helloapi", body["name"])
	}
	if body["version"] != "test" {
		t.Errorf("version = %v, want test", body["version"])
	}
}

func TestNotFound(t *testing.T) {
	s := newTestServer()
	w := doRequest(s, http.MethodGet, "/nonexistent", nil)

	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
	body := decodeBody(t, w)
	if body["error"] == nil {
		t.Error("404 response is missing the error field")
	}
}

func TestPing(t *testing.T) {
	s := newTestServer()
	w := doRequest(s, http.MethodGet, "/ping", nil)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if w.Body.String() != "pong" {
		t.Errorf("body = %q, want pong", w.Body.String())
	}
}

func TestProcessTimeHeaderOnEveryResponse(t *testing.T) {
	s := newTestServer()

	paths := []string{"/", "/api/v1/hello/Aqsa", "/api/v1/health", "/nonexistent", "/ping"}
	for _, path := range paths {
		w := doRequest(s, http.MethodGet, path, nil)

		raw := w.Header().Get(ProcessTimeHeader)
		if raw == "" {
			t.Errorf("GET %s: missing %s header", path, ProcessTimeHeader)
			continue
		}
		elapsed, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			t.Errorf("GET %s: %s = %q is not numeric", path, ProcessTimeHeader, raw)
			continue
		}
		if elapsed < 0 {
			t.Errorf("GET %s: %s = %f is negative", path, ProcessTimeHeader, elapsed)
		}
	}
}

func TestCORSAllowedOrigin(t *testing.T) {
	settings := config.NewDefaultSettings()
	settings.AllowedOrigins = []string{"https://allowed.example"}
	s := NewServer(settings)

	header := http.Header{}
	header.Set("Origin", "https://allowed.example")
	w := doRequest(s, http.MethodGet, "/api/v1/health", header)
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "https://allowed.example" {
		t.Errorf("Access-Control-Allow-Origin = %q, want the allowed origin", got)
	}

	header.Set("Origin", "https://evil.example")
	w = doRequest(s, http.MethodGet, "/api/v1/health", header)
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("Access-Control-Allow-Origin = %q for unlisted origin, want empty", got)
	}
	// caches must see Vary: Origin on denied responses too
	if got := w.Header().Get("Vary"); got != "Origin" {
		t.Errorf("Vary = %q for unlisted origin, want Origin", got)
	}
}

func TestReverseProxyClientAddress(t *testing.T) {
	s := newTestServer()

	var remoteAddr string
	s.Router.GET("/clientaddr", func(c *gin.Context) {
		remoteAddr = c.Request.RemoteAddr
		c.String(http.StatusOK, "ok")
	})

	testCases := []struct {
		name   string
		header http.Header
		want   string
	}{
		{
			"x-forwarded-for takes first hop",
			http.Header{"X-Forwarded-For": []string{"203.0.113.7, 10.0.0.1"}},
			"203.0.113.7:0",
		},
		{
			"x-real-ip",
			http.Header{"X-Real-Ip": []string{"198.51.100.9"}},
			"198.51.100.9:0",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			remoteAddr = ""
			w := doRequest(s, http.MethodGet, "/clientaddr", tc.header)
			if w.Code != http.StatusOK {
				t.Fatalf("status = %d, want 200", w.Code)
			}
			if remoteAddr != tc.want {
				t.Errorf("RemoteAddr = %q, want %q", remoteAddr, tc.want)
			}
		})
	}
}

func TestCORSPreflight(t *testing.T) {
	s := newTestServer()

	header := http.Header{}
	header.Set("Origin", "https://anywhere.example")
	w := doRequest(s, http.MethodOptions, "/api/v1/hello/Aqsa", header)

	if w.Code != http.StatusNoContent {
		t.Fatalf("preflight status = %d, want 204", w.Code)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "https://anywhere.example" {
		t.Errorf("Access-Control-Allow-Origin = %q, want the requesting origin", got)
	}
}

func TestSecurityHeaders(t *testing.T) {
	s := newTestServer()
	w := doRequest(s, http.MethodGet, "/", nil)

	if got := w.Header().Get("X-Content-Type-Options"); got != "nosniff" {
		t.Errorf("X-Content-Type-Options = %q, want nosniff", got)
	}
	if got := w.Header().Get("X-Frame-Options"); got != "DENY" {
		t.Errorf("X-Frame-Options = %q, want DENY", got)
	}
}
