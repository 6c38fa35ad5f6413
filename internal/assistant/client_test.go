// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package assistant

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jeranaias/aura-tui/internal/model"
)

func newTestClient(url string) *Client {
	return NewClientWithConfig(&ClientConfig{BaseURL: url})
}

func TestDeriveUserID(t *testing.T) {
	tests := []struct {
		email string
		want  string
	}{
		{"alice@example.com", "alice_example_com"},
		{"bob.smith@corp.example.org", "bob_smith_corp_example_org"},
		{"plain", "plain"},
	}
	for _, tt := range tests {
		if got := DeriveUserID(tt.email); got != tt.want {
			t.Errorf("DeriveUserID(%q) = %q, want %q", tt.email, got, tt.want)
		}
	}
}

func TestCreateSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if r.URL.Path != "/apps/AURA/users/alice_example_com/sessions" {
			t.Errorf("path = %s", r.URL.Path)
		}
		var body createSessionRequest
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("request body not decodable: %v", err)
		}
		json.NewEncoder(w).Encode(map[string]string{"id": "sess-123"})
	}))
	defer srv.Close()

	id, err := newTestClient(srv.URL).CreateSession(context.Background(), "alice_example_com")
	if err != nil {
		t.Fatalf("CreateSession() error = %v", err)
	}
	if id != "sess-123" {
		t.Errorf("id = %q, want sess-123", id)
	}
}

func TestCreateSessionFailureMapsToSessionError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).CreateSession(context.Background(), "alice")
	if !errors.Is(err, ErrSessionCreation) {
		t.Errorf("error = %v, want ErrSessionCreation", err)
	}
}

func TestRunRequiresSession(t *testing.T) {
	// No server: the call must fail locally before any network use.
	err := newTestClient("http://127.0.0.1:1").Run(context.Background(),
		TurnRequest{UserID: "alice", Text: "hi"}, func(Event) {})
	if !errors.Is(err, ErrNoActiveSession) {
		t.Errorf("error = %v, want ErrNoActiveSession", err)
	}
}

func TestRunStreamsEvents(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/run_sse" {
			t.Errorf("path = %s, want /run_sse", r.URL.Path)
		}
		var body runRequest
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("bad request body: %v", err)
		}
		if body.AppName != "AURA" || body.SessionID != "sess-1" || !body.Streaming {
			t.Errorf("unexpected payload: %+v", body)
		}
		if body.NewMessage.Role != "user" {
			t.Errorf("role = %q, want user", body.NewMessage.Role)
		}

		w.Header().Set("Content-Type", "text/event-stream")
		w.Write([]byte("data: {\"content\":{\"parts\":[{\"text\":\"par\"}]},\"partial\":true}\n\n"))
		w.Write([]byte("data: {\"content\":{\"parts\":[{\"text\":\"partial answer\"}]},\"partial\":false}\n\n"))
	}))
	defer srv.Close()

	var acc Accumulator
	err := newTestClient(srv.URL).Run(context.Background(), TurnRequest{
		UserID:    "alice",
		SessionID: "sess-1",
		Text:      "help",
	}, acc.Apply)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if got := acc.Text(); got != "partial answer" {
		t.Errorf("final text = %q, want %q", got, "partial answer")
	}
}

func TestRunSendsAttachmentParts(t *testing.T) {
	turn := TurnRequest{
		UserID:    "alice",
		SessionID: "s",
		Text:      "see attached",
	}
	turn.Attachments = append(turn.Attachments, model.Attachment{
		Name:     "log.txt",
		MIMEType: "text/plain",
		Data:     "aGVsbG8=",
	})

	payload := turn.payload("AURA")
	if len(payload.NewMessage.Parts) != 2 {
		t.Fatalf("got %d parts, want text part plus attachment part", len(payload.NewMessage.Parts))
	}
	inline := payload.NewMessage.Parts[1].InlineData
	if inline == nil || inline.DisplayName != "log.txt" || inline.MIMEType != "text/plain" {
		t.Errorf("inline part = %+v", inline)
	}
}

func TestRunStatusMapping(t *testing.T) {
	tests := []struct {
		status int
		want   ErrorType
	}{
		{http.StatusNotFound, ErrTypeUnavailable},
		{http.StatusBadRequest, ErrTypeBadRequest},
		{http.StatusInternalServerError, ErrTypeBackend},
		{http.StatusTeapot, ErrTypeTransport},
	}

	for _, tt := range tests {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tt.status)
		}))

		err := newTestClient(srv.URL).Run(context.Background(),
			TurnRequest{UserID: "a", SessionID: "s", Text: "x"}, func(Event) {})
		srv.Close()

		var cerr *ClientError
		if !errors.As(err, &cerr) {
			t.Fatalf("status %d: error = %v, want *ClientError", tt.status, err)
		}
		if cerr.Type != tt.want {
			t.Errorf("status %d: type = %v, want %v", tt.status, cerr.Type, tt.want)
		}
	}
}

func TestRunConnectionRefusedIsTransport(t *testing.T) {
	err := newTestClient("http://127.0.0.1:1").Run(context.Background(),
		TurnRequest{UserID: "a", SessionID: "s", Text: "x"}, func(Event) {})
	if !errors.Is(err, ErrTransport) {
		t.Errorf("error = %v, want ErrTransport", err)
	}
}
