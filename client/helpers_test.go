package client

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

type stubNotifier struct {
	successes []string
	errors    []string
}

func (n *stubNotifier) Success(message string) { n.successes = append(n.successes, message) }
func (n *stubNotifier) Error(message string)   { n.errors = append(n.errors, message) }

func (n *stubNotifier) lastSuccess() string {
	if len(n.successes) == 0 {
		return ""
	}
	return n.successes[len(n.successes)-1]
}

func (n *stubNotifier) lastError() string {
	if len(n.errors) == 0 {
		return ""
	}
	return n.errors[len(n.errors)-1]
}

type stubNavigator struct {
	paths []string
}

func (n *stubNavigator) Navigate(path string) { n.paths = append(n.paths, path) }

func (n *stubNavigator) lastPath() string {
	if len(n.paths) == 0 {
		return ""
	}
	return n.paths[len(n.paths)-1]
}

type stubConfirmer struct {
	answer  bool
	prompts []string
}

func (c *stubConfirmer) Confirm(prompt string) bool {
	c.prompts = append(c.prompts, prompt)
	return c.answer
}

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	api, err := New(server.URL)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return api
}

func decodeTestJSON(t *testing.T, r *http.Request, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		t.Fatalf("decode request body: %v", err)
	}
}

func writeTestJSON(t *testing.T, w http.ResponseWriter, status int, v interface{}) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		t.Errorf("encode response: %v", err)
	}
}
