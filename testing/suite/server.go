package suite

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
)

// Handler - produces the envelope status and body for one request.
type Handler func(params url.Values) (int, any)

// GameServer - in-process stand-in for the remote game server.
type GameServer struct {
	*httptest.Server

	mu       sync.Mutex
	handlers map[string]Handler
	calls    map[string][]url.Values
}

func NewGameServer(t *testing.T) *GameServer {
	t.Helper()

	gs := &GameServer{
		handlers: make(map[string]Handler),
		calls:    make(map[string][]url.Values),
	}

	gs.Server = httptest.NewServer(http.HandlerFunc(gs.serve))
	t.Cleanup(gs.Close)

	return gs
}

// Handle - replaces the handler of endpoint.
func (that *GameServer) Handle(endpoint string, handler Handler) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.handlers[endpoint] = handler
}

// Reply - endpoint always answers with status and body.
func (that *GameServer) Reply(endpoint string, status int, body any) {
	that.Handle(endpoint, func(url.Values) (int, any) {
		return status, body
	})
}

// Calls - query parameters of every request made to endpoint, in order.
func (that *GameServer) Calls(endpoint string) []url.Values {
	that.mu.Lock()
	defer that.mu.Unlock()

	return append([]url.Values(nil), that.calls[endpoint]...)
}

func (that *GameServer) serve(w http.ResponseWriter, r *http.Request) {
	that.mu.Lock()
	that.calls[r.URL.Path] = append(that.calls[r.URL.Path], r.URL.Query())
	handler, ok := that.handlers[r.URL.Path]
	that.mu.Unlock()

	if !ok {
		http.NotFound(w, r)
		return
	}

	status, body := handler(r.URL.Query())

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(map[string]any{"status": status, "body": body}); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
