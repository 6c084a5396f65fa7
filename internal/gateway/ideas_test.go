package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/dadihq/dadi-gateway/internal/types"
)

func TestSubmitIdea(t *testing.T) {
	ideas := &memIdeas{}
	h := NewHandler(&mockChat{}, nil, ideas, nil, nil)

	w := httptest.NewRecorder()
	h.SubmitIdea(w, authedRequest("POST", "/api/ideas", `{"text":"Flere kattebilder"}`))

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	var resp types.SubmitIdeaResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if resp.ID == "" {
		t.Error("expected a generated idea ID")
	}
	if resp.Message != "Idé lagret." {
		t.Errorf("unexpected confirmation message: %q", resp.Message)
	}

	if len(ideas.ideas) != 1 {
		t.Fatalf("expected one stored idea, got %d", len(ideas.ideas))
	}
	stored := ideas.ideas[0]
	if stored.Author != "Kari Nordmann" || stored.AuthorEmail != "kari@example.no" {
		t.Errorf("idea not attributed to the caller: %+v", stored)
	}
	if stored.Timestamp.IsZero() {
		t.Error("expected a stored timestamp")
	}
}

func TestSubmitIdea_Validation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"empty text", `{"text":""}`},
		{"whitespace only", `{"text":"   "}`},
		{"over limit", `{"text":"` + strings.Repeat("a", 501) + `"}`},
		{"malformed json", `{`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(&mockChat{}, nil, &memIdeas{}, nil, nil)
			w := httptest.NewRecorder()
			h.SubmitIdea(w, authedRequest("POST", "/api/ideas", tt.body))

			if w.Code != http.StatusBadRequest {
				t.Errorf("expected 400, got %d", w.Code)
			}
		})
	}
}

func TestListIdeas_EmptyIsArray(t *testing.T) {
	h := NewHandler(&mockChat{}, nil, &memIdeas{}, nil, nil)

	w := httptest.NewRecorder()
	h.ListIdeas(w, authedRequest("GET", "/api/ideas", ""))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if got := strings.TrimSpace(w.Body.String()); got != "[]" {
		t.Errorf("expected empty JSON array, got %q", got)
	}
}

func TestDeleteIdea(t *testing.T) {
	ideas := &memIdeas{ideas: []types.IdeaRecord{{ID: "idea-1", Text: "x"}}}
	h := NewHandler(&mockChat{}, nil, ideas, nil, nil)

	req := authedRequest("DELETE", "/api/ideas/idea-1", "")
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", "idea-1")
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

	w := httptest.NewRecorder()
	h.DeleteIdea(w, req)

	if w.Code != http.StatusNoContent {
		t.Errorf("expected 204, got %d", w.Code)
	}
	if len(ideas.ideas) != 0 {
		t.Errorf("idea not removed: %+v", ideas.ideas)
	}
}

func TestDeleteIdea_NotFound(t *testing.T) {
	h := NewHandler(&mockChat{}, nil, &memIdeas{}, nil, nil)

	req := authedRequest("DELETE", "/api/ideas/nope", "")
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", "nope")
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

	w := httptest.NewRecorder()
	h.DeleteIdea(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}
