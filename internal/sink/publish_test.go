package sink

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/openroles/jobfeed/internal/domain"
)

func TestPublish(t *testing.T) {
	var gotPath, gotAuth string
	var gotBody map[string]interface{}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &gotBody)
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id": 101}`))
	}))
	defer srv.Close()

	client := NewPublishClient(&PublishConfig{APIURL: srv.URL, APIKey: "secret-token"})

	job := domain.Job{
		"title":               "Backend Engineer",
		"company_name":        "Acme Corp",
		"ai_title":            "Backend Engineer (Go)",
		"ai_confidence_score": 0.95,
	}

	if err := client.Publish(context.Background(), job); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotPath != "/job_platform" {
		t.Errorf("unexpected path %q", gotPath)
	}
	if gotAuth != "Bearer secret-token" {
		t.Errorf("unexpected auth header %q", gotAuth)
	}
	if _, present := gotBody["ai_confidence_score"]; present {
		t.Error("internal confidence score leaked to the platform")
	}
	if gotBody["ai_title"] != "Backend Engineer (Go)" {
		t.Errorf("enriched fields missing from payload: %v", gotBody)
	}

	// The caller's copy keeps its score.
	if _, ok := job.ConfidenceScore(); !ok {
		t.Error("publish mutated the caller's job")
	}
}

func TestPublish_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream unavailable", http.StatusBadGateway)
	}))
	defer srv.Close()

	client := NewPublishClient(&PublishConfig{APIURL: srv.URL, APIKey: "secret-token"})

	err := client.Publish(context.Background(), domain.Job{"title": "Backend Engineer"})
	if err == nil {
		t.Fatal("expected error for non-2xx response")
	}
}
