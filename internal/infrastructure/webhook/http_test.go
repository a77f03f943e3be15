package webhook

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sidequesthq/sidequest/internal/application/ports"
)

func TestEmitDeliversPayload(t *testing.T) {
	var got map[string]interface{}
	var apiKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		apiKey = r.Header.Get("X-Api-Key")
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode: %v", err)
		}
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	e := NewHTTPEmitter(srv.URL, WithHeader("X-Api-Key", "k1"))
	err := e.Emit(context.Background(), ports.AuditEvent{
		Event:   "user.login",
		UserID:  "u1",
		IP:      "10.0.0.1",
		Success: false,
		Err:     "invalid email or password",
	})
	if err != nil {
		t.Fatalf("emit: %v", err)
	}
	if apiKey != "k1" {
		t.Errorf("api key header = %q", apiKey)
	}
	if got["event"] != "user.login" || got["user_id"] != "u1" || got["success"] != false {
		t.Errorf("payload: %v", got)
	}
	if got["error"] != "invalid email or password" {
		t.Errorf("error field: %v", got["error"])
	}
	if got["sent_at"] == nil {
		t.Error("sent_at missing")
	}
}

func TestEmitNon2xxIsAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	e := NewHTTPEmitter(srv.URL)
	if err := e.Emit(context.Background(), ports.AuditEvent{Event: "user.register"}); err == nil {
		t.Fatal("expected an error for a 502 response")
	}
}
