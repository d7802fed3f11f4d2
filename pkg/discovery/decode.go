package discovery

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
)

// Decode reads a discovery document from r
func Decode(r io.Reader) (*Document, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decoding discovery document: %w", err)
	}
	if doc.Name == "" {
		return nil, fmt.Errorf("discovery document has no name")
	}
	return &doc, nil
}

// DecodeBytes decodes a discovery document from raw JSON
func DecodeBytes(b []byte) (*Document, error) {
	return Decode(bytes.NewReader(b))
}

// Load loads a discovery document from a local file path or an HTTP(S) URL
func Load(ctx context.Context, input string) (*Document, error) {
	return LoadWithClient(ctx, http.DefaultClient, input)
}

// LoadWithClient loads a discovery document using a custom HTTP client
func LoadWithClient(ctx context.Context, hc *http.Client, input string) (*Document, error) {
	// If it looks like http(s), fetch via URL
	if u, err := url.Parse(input); err == nil && (u.Scheme == "http" || u.Scheme == "https") {
		return FetchDocument(ctx, hc, input)
	}
	// Fallback to reading from filesystem path
	f, err := os.Open(input)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", input, err)
	}
	defer f.Close()
	return Decode(f)
}
