package gateway

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dadihq/dadi-gateway/internal/types"
)

func TestGetChatMode_Default(t *testing.T) {
	h := NewHandler(&mockChat{}, &memPrefs{}, nil, nil, nil)

	w := httptest.NewRecorder()
	h.GetChatMode(w, authedRequest("GET", "/api/userprefs/chatmode", ""))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var resp types.ChatModeResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if resp.ChatMode != "fun" {
		t.Errorf("expected default fun mode, got %q", resp.ChatMode)
	}
}

func TestSetChatMode(t *testing.T) {
	prefs := &memPrefs{}
	h := NewHandler(&mockChat{}, prefs, nil, nil, nil)

	w := httptest.NewRecorder()
	h.SetChatMode(w, authedRequest("PUT", "/api/userprefs/chatmode", `{"chatMode":"normal"}`))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var resp types.ChatModeResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if resp.ChatMode != "normal" {
		t.Errorf("expected normal, got %q", resp.ChatMode)
	}
	if prefs.modes["u-1"] != "normal" {
		t.Errorf("preference not persisted: %+v", prefs.modes)
	}
}

func TestSetChatMode_RejectsUnknownMode(t *testing.T) {
	h := NewHandler(&mockChat{}, &memPrefs{}, nil, nil, nil)

	w := httptest.NewRecorder()
	h.SetChatMode(w, authedRequest("PUT", "/api/userprefs/chatmode", `{"chatMode":"serious"}`))

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestUserInfo(t *testing.T) {
	h := NewHandler(&mockChat{}, nil, nil, nil, nil)

	w := httptest.NewRecorder()
	h.UserInfo(w, authedRequest("GET", "/api/user", ""))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var resp types.UserInfoResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if resp.Email != "kari@example.no" || !resp.IsAuthenticated {
		t.Errorf("unexpected user info: %+v", resp)
	}
	if resp.UserID != "u-1" || resp.Provider != "aad" {
		t.Errorf("principal fields not forwarded: %+v", resp)
	}
}

func TestCreateIssue_NotConfigured(t *testing.T) {
	h := NewHandler(&mockChat{}, nil, nil, nil, nil)

	w := httptest.NewRecorder()
	h.CreateIssue(w, authedRequest("POST", "/api/issues", `{"title":"Bug"}`))

	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("expected 503 without a tracker, got %d", w.Code)
	}
}
