package assistant

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/acmesaas/assistant/internal/log"
)

func TestDocsToolsValidation(t *testing.T) {
	ctx := context.Background()
	if _, err := DocsTools(ctx, nil, DocsConfig{APIKey: "k"}, log.NewNop()); err == nil {
		t.Error("missing server URL did not fail")
	}
	if _, err := DocsTools(ctx, nil, DocsConfig{ServerURL: "https://example.com"}, log.NewNop()); err == nil {
		t.Error("missing API key did not fail")
	}
}

func TestBearerTransport(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
	}))
	defer srv.Close()

	client := &http.Client{Transport: &bearerTransport{token: "kapa-key"}}
	req, err := http.NewRequest(http.MethodGet, srv.URL, nil)
	if err != nil {
		t.Fatalf("NewRequest: %v", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("Do: %v", err)
	}
	resp.Body.Close()

	if gotAuth != "Bearer kapa-key" {
		t.Errorf("Authorization = %q, want %q", gotAuth, "Bearer kapa-key")
	}
	// The original request is left untouched.
	if req.Header.Get("Authorization") != "" {
		t.Error("transport mutated the caller's request")
	}
}
