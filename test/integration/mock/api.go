//go:build integration

// Package mock provides in-process stand-ins for the services the API depends on.
package mock

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
)

// ApiMock is an HTTP server that records requests and answers with canned responses.
type ApiMock struct {
	mu        sync.Mutex
	server    *httptest.Server
	requests  map[string][]map[string]any
	responses map[string]cannedResponse
}

type cannedResponse struct {
	status int
	body   any
}

// NewApiServer creates a mock that answers 200 with an empty object until told otherwise.
func NewApiServer() *ApiMock {
	return &ApiMock{
		requests:  map[string][]map[string]any{},
		responses: map[string]cannedResponse{},
	}
}

// Start begins serving.
func (a *ApiMock) Start() {
	a.server = httptest.NewServer(http.HandlerFunc(a.handle))
}

// Close stops the server.
func (a *ApiMock) Close() {
	if a.server != nil {
		a.server.Close()
	}
}

// GetUrl returns the base URL of the mock.
func (a *ApiMock) GetUrl() string {
	return a.server.URL
}

// SetResponse sets the reply for method and path.
func (a *ApiMock) SetResponse(method, path string, status int, body any) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.responses[method+path] = cannedResponse{status: status, body: body}
}

// Requests returns the JSON bodies received for method and path.
func (a *ApiMock) Requests(method, path string) []map[string]any {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]map[string]any(nil), a.requests[method+path]...)
}

// Clear forgets every request and response.
func (a *ApiMock) Clear() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.requests = map[string][]map[string]any{}
	a.responses = map[string]cannedResponse{}
}

func (a *ApiMock) handle(w http.ResponseWriter, r *http.Request) {
	key := r.Method + r.URL.Path

	body, _ := io.ReadAll(r.Body)
	request := map[string]any{}
	_ = json.Unmarshal(body, &request)

	a.mu.Lock()
	a.requests[key] = append(a.requests[key], request)
	resp, ok := a.responses[key]
	a.mu.Unlock()

	if !ok {
		resp = cannedResponse{status: http.StatusOK, body: map[string]any{}}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(resp.status)
	_ = json.NewEncoder(w).Encode(resp.body)
}
