package discovery

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestFetchDirectory(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"kind": "discovery#directoryList",
			"items": [
				{"name": "library", "version": "v1", "title": "Library API", "discoveryRestUrl": "https://example.com/library/v1/rest", "preferred": true},
				{"name": "library", "version": "v1beta", "title": "Library API", "discoveryRestUrl": "https://example.com/library/v1beta/rest", "preferred": false}
			]
		}`))
	}))
	defer srv.Close()

	dir, err := FetchDirectory(context.Background(), srv.Client(), srv.URL)
	if err != nil {
		t.Fatalf("FetchDirectory: %v", err)
	}
	if len(dir.Items) != 2 {
		t.Fatalf("got %d items, expected 2", len(dir.Items))
	}

	pref := dir.Preferred()
	if len(pref) != 1 {
		t.Fatalf("got %d preferred items, expected 1", len(pref))
	}
	if pref[0].Version != "v1" {
		t.Errorf("preferred version = %q, expected v1", pref[0].Version)
	}
}

func TestFetchDocument(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(sampleDoc))
	}))
	defer srv.Close()

	doc, err := FetchDocument(context.Background(), srv.Client(), srv.URL)
	if err != nil {
		t.Fatalf("FetchDocument: %v", err)
	}
	if doc.Name != "library" {
		t.Errorf("name = %q, expected %q", doc.Name, "library")
	}
}

func TestFetchDocumentNon200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusNotFound)
	}))
	defer srv.Close()

	if _, err := FetchDocument(context.Background(), srv.Client(), srv.URL); err == nil {
		t.Error("expected error for 404 response")
	}
}
